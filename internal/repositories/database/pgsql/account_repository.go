package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altruvo/fundledger/internal/apperrors"
	"github.com/altruvo/fundledger/internal/core/domain"
	portsrepo "github.com/altruvo/fundledger/internal/core/ports/repositories"
	"github.com/altruvo/fundledger/internal/models"
	"github.com/altruvo/fundledger/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `
	account_id, organization_id, account_number, name, account_type, category,
	statement_type, statement_section, display_order, normal_balance,
	net_asset_class, description, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

const insertAccountQuery = `
	INSERT INTO accounts (
		account_id, organization_id, account_number, name, account_type, category,
		statement_type, statement_section, display_order, normal_balance,
		net_asset_class, description, is_active,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID, &m.OrganizationID, &m.AccountNumber, &m.Name, &m.AccountType,
		&m.Category, &m.StatementType, &m.StatementSection, &m.DisplayOrder,
		&m.NormalBalance, &m.NetAssetClass, &m.Description, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func accountInsertArgs(m models.Account) []any {
	return []any{
		m.AccountID, m.OrganizationID, m.AccountNumber, m.Name, m.AccountType,
		m.Category, m.StatementType, m.StatementSection, m.DisplayOrder,
		m.NormalBalance, m.NetAssetClass, m.Description, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

// SaveAccount inserts a new account row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := r.Pool.Exec(ctx, insertAccountQuery, accountInsertArgs(m)...)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert account "+m.AccountID, err)
	}
	return nil
}

// SaveAccounts inserts a batch of accounts, skipping rows whose
// (organization, account number) already exists. Returns the inserted count.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) (int, error) {
	if len(accounts) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	query := insertAccountQuery + ` ON CONFLICT (organization_id, account_number) DO NOTHING`

	inserted := 0
	for _, account := range accounts {
		m := mapping.ToModelAccount(account)
		tag, err := tx.Exec(ctx, query, accountInsertArgs(m)...)
		if err != nil {
			return 0, apperrors.NewAppError(500, "failed to insert account "+m.AccountNumber, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return inserted, nil
}

// FindAccountByID retrieves an account by ID, active or not.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query account "+accountID, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountsByIDs retrieves the given accounts of one organization, keyed
// by account ID. IDs that do not resolve are simply absent from the map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND account_id = ANY($2)`
	rows, err := r.Pool.Query(ctx, query, organizationID, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating account rows", err)
	}
	return result, nil
}

// FindAccountsByNumbers retrieves accounts by their org-scoped numbers, keyed
// by account number.
func (r *PgxAccountRepository) FindAccountsByNumbers(ctx context.Context, organizationID string, numbers []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(numbers))
	if len(numbers) == 0 {
		return result, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND account_number = ANY($2)`
	rows, err := r.Pool.Query(ctx, query, organizationID, numbers)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by numbers", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[m.AccountNumber] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating account rows", err)
	}
	return result, nil
}

// ListAccounts returns an organization's accounts in display order.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1`
	if !includeInactive {
		query += ` AND is_active`
	}
	query += ` ORDER BY display_order, account_number`

	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating account rows", err)
	}
	return accounts, nil
}

// UpdateAccount persists the mutable attributes of an account. Account type
// and normal balance are deliberately not part of the SET list.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2, description = $3, category = $4, statement_section = $5,
		    display_order = $6, last_updated_at = $7, last_updated_by = $8
		WHERE account_id = $1
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.Name, m.Description, m.Category, m.StatementSection,
		m.DisplayOrder, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount soft-deletes an account.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, updatedBy string, at time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, at, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
