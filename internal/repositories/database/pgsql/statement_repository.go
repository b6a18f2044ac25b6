package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altruvo/fundledger/internal/apperrors"
	"github.com/altruvo/fundledger/internal/core/domain"
	portsrepo "github.com/altruvo/fundledger/internal/core/ports/repositories"
	"github.com/altruvo/fundledger/internal/models"
)

type PgxStatementRepository struct {
	BaseRepository
}

// newPgxStatementRepository creates a new repository for statement aggregation
// and snapshots.
func newPgxStatementRepository(pool *pgxpool.Pool) portsrepo.StatementRepository {
	return &PgxStatementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StatementRepository = (*PgxStatementRepository)(nil)

// balanceQuery sums the posted debit/credit columns per account. The date
// predicate comes in as a SUM filter rather than a JOIN condition so accounts
// without activity still surface with zero sums.
const balanceQuery = `
	SELECT
		a.account_id, a.account_number, a.name, a.account_type, a.normal_balance,
		a.statement_section, a.display_order,
		COALESCE(SUM(CASE WHEN e.status = 'POSTED' AND %s THEN l.debit ELSE 0 END), 0)  AS total_debits,
		COALESCE(SUM(CASE WHEN e.status = 'POSTED' AND %s THEN l.credit ELSE 0 END), 0) AS total_credits
	FROM accounts a
	LEFT JOIN journal_lines l ON l.account_id = a.account_id
	LEFT JOIN journal_entries e ON e.entry_id = l.entry_id
	WHERE a.organization_id = $1 AND a.is_active
	GROUP BY a.account_id, a.account_number, a.name, a.account_type, a.normal_balance,
	         a.statement_section, a.display_order
	ORDER BY a.display_order, a.account_number
`

func scanBalances(rows pgx.Rows) ([]domain.AccountBalance, error) {
	balances := make([]domain.AccountBalance, 0)
	for rows.Next() {
		var b domain.AccountBalance
		err := rows.Scan(
			&b.AccountID, &b.AccountNumber, &b.AccountName, &b.AccountType,
			&b.NormalBalance, &b.StatementSection, &b.DisplayOrder,
			&b.TotalDebits, &b.TotalCredits,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan balance row", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating balance rows", err)
	}
	return balances, nil
}

// GetBalancesAsOf sums posted activity dated on or before asOf.
func (r *PgxStatementRepository) GetBalancesAsOf(ctx context.Context, organizationID string, asOf time.Time) ([]domain.AccountBalance, error) {
	query := formatBalanceQuery("e.entry_date <= $2")
	rows, err := r.Pool.Query(ctx, query, organizationID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate balances", err)
	}
	defer rows.Close()
	return scanBalances(rows)
}

// GetBalancesForRange sums posted activity dated within [from, to].
func (r *PgxStatementRepository) GetBalancesForRange(ctx context.Context, organizationID string, from, to time.Time) ([]domain.AccountBalance, error) {
	query := formatBalanceQuery("e.entry_date >= $2 AND e.entry_date <= $3")
	rows, err := r.Pool.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate range balances", err)
	}
	defer rows.Close()
	return scanBalances(rows)
}

func formatBalanceQuery(datePredicate string) string {
	return fmt.Sprintf(balanceQuery, datePredicate, datePredicate)
}

// SaveGeneratedStatement appends an immutable statement snapshot.
func (r *PgxStatementRepository) SaveGeneratedStatement(ctx context.Context, stmt domain.GeneratedStatement) error {
	m := models.GeneratedStatement{
		StatementID:    stmt.StatementID,
		OrganizationID: stmt.OrganizationID,
		StatementType:  string(stmt.StatementType),
		PeriodStart:    stmt.PeriodStart,
		PeriodEnd:      stmt.PeriodEnd,
		Body:           []byte(stmt.Body),
		GeneratedBy:    stmt.GeneratedBy,
		GeneratedAt:    stmt.GeneratedAt,
	}
	query := `
		INSERT INTO generated_statements (
			statement_id, organization_id, statement_type, period_start, period_end,
			body, generated_by, generated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.Pool.Exec(ctx, query,
		m.StatementID, m.OrganizationID, m.StatementType, m.PeriodStart,
		m.PeriodEnd, m.Body, m.GeneratedBy, m.GeneratedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert statement snapshot "+m.StatementID, err)
	}
	return nil
}

// ListGeneratedStatements returns an organization's snapshots, newest first.
func (r *PgxStatementRepository) ListGeneratedStatements(ctx context.Context, organizationID string) ([]domain.GeneratedStatement, error) {
	query := `
		SELECT statement_id, organization_id, statement_type, period_start, period_end,
		       body, generated_by, generated_at
		FROM generated_statements
		WHERE organization_id = $1
		ORDER BY generated_at DESC
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list statement snapshots", err)
	}
	defer rows.Close()

	stmts := make([]domain.GeneratedStatement, 0)
	for rows.Next() {
		var m models.GeneratedStatement
		err := rows.Scan(
			&m.StatementID, &m.OrganizationID, &m.StatementType, &m.PeriodStart,
			&m.PeriodEnd, &m.Body, &m.GeneratedBy, &m.GeneratedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan statement row", err)
		}
		stmts = append(stmts, domain.GeneratedStatement{
			StatementID:    m.StatementID,
			OrganizationID: m.OrganizationID,
			StatementType:  domain.GeneratedStatementType(m.StatementType),
			PeriodStart:    m.PeriodStart,
			PeriodEnd:      m.PeriodEnd,
			Body:           json.RawMessage(m.Body),
			GeneratedBy:    m.GeneratedBy,
			GeneratedAt:    m.GeneratedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating statement rows", err)
	}
	return stmts, nil
}

// ListTemplates returns the organization's templates plus the global
// defaults, global ones last.
func (r *PgxStatementRepository) ListTemplates(ctx context.Context, organizationID string) ([]domain.StatementTemplate, error) {
	query := `
		SELECT template_id, organization_id, statement_type, name, sections,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM statement_templates
		WHERE organization_id = $1 OR organization_id IS NULL
		ORDER BY organization_id NULLS LAST, name
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list statement templates", err)
	}
	defer rows.Close()

	templates := make([]domain.StatementTemplate, 0)
	for rows.Next() {
		var m models.StatementTemplate
		err := rows.Scan(
			&m.TemplateID, &m.OrganizationID, &m.StatementType, &m.Name,
			&m.Sections, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan template row", err)
		}

		var sections []domain.TemplateSection
		if len(m.Sections) > 0 {
			if err := json.Unmarshal(m.Sections, &sections); err != nil {
				return nil, apperrors.NewAppError(500, "failed to decode template sections for "+m.TemplateID, err)
			}
		}

		templates = append(templates, domain.StatementTemplate{
			TemplateID:     m.TemplateID,
			OrganizationID: m.OrganizationID,
			StatementType:  domain.GeneratedStatementType(m.StatementType),
			Name:           m.Name,
			Sections:       sections,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating template rows", err)
	}
	return templates, nil
}
