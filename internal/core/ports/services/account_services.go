package services

import (
	"context"

	"github.com/altruvo/fundledger/internal/core/domain"
	"github.com/altruvo/fundledger/internal/dto"
)

// AccountSvcFacade is the chart-of-accounts registry surface.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, organizationID, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, organizationID, accountID string, updaterUserID string) error
	SeedDefaultChart(ctx context.Context, organizationID string, req dto.SeedChartRequest, creatorUserID string) ([]domain.Account, error)
}
