package repositories

import (
	"context"
	"time"

	"github.com/altruvo/fundledger/internal/core/domain"
)

// PeriodRepository defines persistence operations for accounting periods.
type PeriodRepository interface {
	// SavePeriod inserts a new period.
	SavePeriod(ctx context.Context, period domain.AccountingPeriod) error

	// FindPeriodByID retrieves a period by ID.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)

	// FindPeriodContaining returns the period of the organization whose date
	// range contains the given date, regardless of status. Callers decide
	// whether a closed period is an error. apperrors.ErrNotFound when none.
	FindPeriodContaining(ctx context.Context, organizationID string, date time.Time) (*domain.AccountingPeriod, error)

	// ListPeriods returns all periods of an organization ordered by start date.
	ListPeriods(ctx context.Context, organizationID string) ([]domain.AccountingPeriod, error)

	// HasOverlappingPeriod reports whether any existing period of the
	// organization overlaps [start, end].
	HasOverlappingPeriod(ctx context.Context, organizationID string, start, end time.Time) (bool, error)

	// ClosePeriod transitions OPEN -> CLOSED with an audit stamp, using a
	// compare-and-swap on status. Returns apperrors.ErrImmutablePeriod when
	// the period is already closed and apperrors.ErrNotFound when it does
	// not exist.
	ClosePeriod(ctx context.Context, periodID string, closedBy string, at time.Time) error
}
