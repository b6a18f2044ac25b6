package repositories

import (
	"context"
	"time"

	"github.com/altruvo/fundledger/internal/core/domain"
)

// StatementRepository aggregates posted activity for the statement generator
// and persists the resulting snapshots.
type StatementRepository interface {
	// GetBalancesAsOf returns per-account debit/credit sums over posted
	// entries dated on or before asOf, for every active account of the
	// organization (accounts without activity appear with zero sums).
	GetBalancesAsOf(ctx context.Context, organizationID string, asOf time.Time) ([]domain.AccountBalance, error)

	// GetBalancesForRange returns per-account debit/credit sums over posted
	// entries dated within [from, to].
	GetBalancesForRange(ctx context.Context, organizationID string, from, to time.Time) ([]domain.AccountBalance, error)

	// SaveGeneratedStatement appends an immutable statement snapshot.
	SaveGeneratedStatement(ctx context.Context, stmt domain.GeneratedStatement) error

	// ListGeneratedStatements returns an organization's snapshots, newest first.
	ListGeneratedStatements(ctx context.Context, organizationID string) ([]domain.GeneratedStatement, error)

	// ListTemplates returns the organization's statement templates plus the
	// global defaults.
	ListTemplates(ctx context.Context, organizationID string) ([]domain.StatementTemplate, error)
}
