package repositories

import (
	"context"
	"time"

	"github.com/altruvo/fundledger/internal/core/domain"
)

// AccountRepository defines persistence operations for the chart of accounts.
type AccountRepository interface {
	// SaveAccount inserts a new account. A duplicate (organization, account
	// number) pair yields apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveAccounts inserts a batch of accounts in one transaction, skipping
	// rows whose (organization, account number) already exists. It returns
	// the number of rows actually inserted. Used by chart seeding.
	SaveAccounts(ctx context.Context, accounts []domain.Account) (int, error)

	// FindAccountByID retrieves an account by its ID, active or not.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the given accounts of one organization,
	// keyed by account ID. Missing IDs are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountsByNumbers retrieves accounts by their org-scoped account
	// numbers, keyed by number. Used to resolve the seeded default accounts.
	FindAccountsByNumbers(ctx context.Context, organizationID string, numbers []string) (map[string]domain.Account, error)

	// ListAccounts returns an organization's accounts ordered by display
	// order then account number. Inactive accounts are excluded unless
	// includeInactive is set.
	ListAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.Account, error)

	// UpdateAccount persists mutable account attributes (name, description,
	// category, statement placement). Type and normal balance never change.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, accountID string, updatedBy string, at time.Time) error
}
