package services

import (
	"context"
	"time"

	"github.com/altruvo/fundledger/internal/core/domain"
	"github.com/altruvo/fundledger/internal/dto"
)

// PeriodSvcFacade is the accounting-period manager surface.
type PeriodSvcFacade interface {
	CreatePeriod(ctx context.Context, organizationID string, req dto.CreatePeriodRequest, creatorUserID string) (*domain.AccountingPeriod, error)
	GetPeriodByID(ctx context.Context, organizationID, periodID string) (*domain.AccountingPeriod, error)
	// GetCurrentPeriod returns the open period containing at. It returns
	// apperrors.ErrNoOpenPeriod when no period covers the date and
	// apperrors.ErrImmutablePeriod when the covering period is closed.
	GetCurrentPeriod(ctx context.Context, organizationID string, at time.Time) (*domain.AccountingPeriod, error)
	ListPeriods(ctx context.Context, organizationID string) ([]domain.AccountingPeriod, error)
	ClosePeriod(ctx context.Context, organizationID, periodID string, closedBy string) (*domain.AccountingPeriod, error)
}
