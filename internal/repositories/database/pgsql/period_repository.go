package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altruvo/fundledger/internal/apperrors"
	"github.com/altruvo/fundledger/internal/core/domain"
	portsrepo "github.com/altruvo/fundledger/internal/core/ports/repositories"
	"github.com/altruvo/fundledger/internal/models"
	"github.com/altruvo/fundledger/internal/utils/mapping"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting-period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepository {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepository = (*PgxPeriodRepository)(nil)

const periodOverlapConstraint = "excl_periods_no_overlap"

const periodColumns = `
	period_id, organization_id, name, fiscal_year, start_date, end_date, status,
	closed_by, closed_at, created_at, created_by, last_updated_at, last_updated_by
`

func scanPeriod(row pgx.Row) (models.Period, error) {
	var m models.Period
	err := row.Scan(
		&m.PeriodID, &m.OrganizationID, &m.Name, &m.FiscalYear, &m.StartDate,
		&m.EndDate, &m.Status, &m.ClosedBy, &m.ClosedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriod inserts a new period row.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelPeriod(period)
	query := `
		INSERT INTO accounting_periods (
			period_id, organization_id, name, fiscal_year, start_date, end_date, status,
			closed_by, closed_at, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID, m.OrganizationID, m.Name, m.FiscalYear, m.StartDate, m.EndDate,
		m.Status, m.ClosedBy, m.ClosedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.ErrDuplicate
		}
		// The overlap pre-check in the service can lose a race; the
		// exclusion constraint on the period window is the backstop.
		if isExclusionViolation(err, periodOverlapConstraint) {
			return fmt.Errorf("%w: period overlaps an existing period", apperrors.ErrValidation)
		}
		return apperrors.NewAppError(500, "failed to insert period "+m.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a period by ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE period_id = $1`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query period "+periodID, err)
	}
	d := mapping.ToDomainPeriod(m)
	return &d, nil
}

// FindPeriodContaining returns the period whose window contains the date,
// any status. Windows never overlap, so at most one row matches.
func (r *PgxPeriodRepository) FindPeriodContaining(ctx context.Context, organizationID string, date time.Time) (*domain.AccountingPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE organization_id = $1 AND start_date <= $2 AND end_date >= $2
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, organizationID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query period containing date", err)
	}
	d := mapping.ToDomainPeriod(m)
	return &d, nil
}

// ListPeriods returns all periods of an organization ordered by start date.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, organizationID string) ([]domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE organization_id = $1 ORDER BY start_date`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list periods", err)
	}
	defer rows.Close()

	periods := make([]domain.AccountingPeriod, 0)
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row", err)
		}
		periods = append(periods, mapping.ToDomainPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating period rows", err)
	}
	return periods, nil
}

// HasOverlappingPeriod reports whether any period of the organization
// overlaps the [start, end] window.
func (r *PgxPeriodRepository) HasOverlappingPeriod(ctx context.Context, organizationID string, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM accounting_periods
			WHERE organization_id = $1 AND start_date <= $3 AND end_date >= $2
		)
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, organizationID, start, end).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check period overlap", err)
	}
	return exists, nil
}

// ClosePeriod flips OPEN -> CLOSED with a compare-and-swap on status, so two
// concurrent closes cannot both succeed.
func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, periodID string, closedBy string, at time.Time) error {
	query := `
		UPDATE accounting_periods
		SET status = 'CLOSED', closed_by = $2, closed_at = $3,
		    last_updated_at = $3, last_updated_by = $2
		WHERE period_id = $1 AND status = 'OPEN'
	`
	tag, err := r.Pool.Exec(ctx, query, periodID, closedBy, at)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close period "+periodID, err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing period from one already closed.
		var status string
		err := r.Pool.QueryRow(ctx, `SELECT status FROM accounting_periods WHERE period_id = $1`, periodID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return apperrors.NewAppError(500, "failed to re-check period "+periodID, err)
		}
		return apperrors.ErrImmutablePeriod
	}
	return nil
}
