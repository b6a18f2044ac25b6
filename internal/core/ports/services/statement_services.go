package services

import (
	"context"
	"time"

	"github.com/altruvo/fundledger/internal/core/domain"
)

// StatementSvcFacade generates and persists financial statements.
type StatementSvcFacade interface {
	TrialBalance(ctx context.Context, organizationID string, asOf time.Time) (*domain.TrialBalance, error)
	StatementOfActivity(ctx context.Context, organizationID string, from, to time.Time) (*domain.ActivityStatement, error)
	StatementOfPosition(ctx context.Context, organizationID string, asOf time.Time) (*domain.PositionStatement, error)

	// SaveGeneratedStatement persists an immutable snapshot of a computed
	// statement for audit history.
	SaveGeneratedStatement(ctx context.Context, organizationID string, stmtType domain.GeneratedStatementType, periodStart, periodEnd time.Time, body any, generatedBy string) (*domain.GeneratedStatement, error)

	ListGeneratedStatements(ctx context.Context, organizationID string) ([]domain.GeneratedStatement, error)
	ListTemplates(ctx context.Context, organizationID string) ([]domain.StatementTemplate, error)
}
