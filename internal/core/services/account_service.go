package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/altruvo/fundledger/internal/apperrors"
	"github.com/altruvo/fundledger/internal/core/domain"
	portsrepo "github.com/altruvo/fundledger/internal/core/ports/repositories"
	portssvc "github.com/altruvo/fundledger/internal/core/ports/services"
	"github.com/altruvo/fundledger/internal/dto"
)

// accountService implements the chart-of-accounts registry.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account registry service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new account. The normal balance side
// is derived from the account type and fixed from then on.
func (s *accountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	accountType := domain.AccountType(req.AccountType)
	statementType := statementTypeFor(accountType)

	var class *domain.NetAssetClass
	if req.NetAssetClass != nil {
		c := domain.NetAssetClass(*req.NetAssetClass)
		class = &c
	}
	if class != nil && accountType != domain.NetAsset && accountType != domain.Revenue {
		return nil, fmt.Errorf("%w: net-asset classification only applies to net-asset and revenue accounts", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:        uuid.NewString(),
		OrganizationID:   organizationID,
		AccountNumber:    req.AccountNumber,
		Name:             req.Name,
		AccountType:      accountType,
		Category:         req.Category,
		StatementType:    statementType,
		StatementSection: req.StatementSection,
		DisplayOrder:     req.DisplayOrder,
		NormalBalance:    domain.NormalBalanceFor(accountType),
		NetAssetClass:    class,
		Description:      req.Description,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("organization_id", organizationID),
			slog.String("account_number", req.AccountNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_number", account.AccountNumber),
		slog.String("organization_id", organizationID))
	return &account, nil
}

// GetAccountByID fetches one account, scoped to the organization.
func (s *accountService) GetAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.OrganizationID != organizationID {
		// Obscure existence across organizations.
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetAccountsByIDs fetches several accounts of one organization keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, organizationID, accountIDs)
}

// ListAccounts returns the organization's chart, active-only by default.
func (s *accountService) ListAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, organizationID, includeInactive)
}

// UpdateAccount applies mutable attribute changes only.
func (s *accountService) UpdateAccount(ctx context.Context, organizationID, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Category != nil {
		account.Category = *req.Category
		updated = true
	}
	if req.StatementSection != nil {
		account.StatementSection = *req.StatementSection
		updated = true
	}
	if req.DisplayOrder != nil {
		account.DisplayOrder = *req.DisplayOrder
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = updaterUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// DeactivateAccount soft-deletes an account; historical lines keep referencing it.
func (s *accountService) DeactivateAccount(ctx context.Context, organizationID, accountID string, updaterUserID string) error {
	if _, err := s.GetAccountByID(ctx, organizationID, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, updaterUserID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

// SeedDefaultChart installs the canned chart for the organization. Numbers
// that already exist are skipped, so re-seeding is safe.
func (s *accountService) SeedDefaultChart(ctx context.Context, organizationID string, req dto.SeedChartRequest, creatorUserID string) ([]domain.Account, error) {
	chart := defaultChartFor(req.OrgType)
	if chart == nil {
		return nil, fmt.Errorf("%w: unknown organization type %q", apperrors.ErrValidation, req.OrgType)
	}

	now := time.Now().UTC()
	accounts := make([]domain.Account, len(chart))
	for i, entry := range chart {
		var class *domain.NetAssetClass
		if entry.NetAssetClass != "" {
			c := entry.NetAssetClass
			class = &c
		}
		accounts[i] = domain.Account{
			AccountID:        uuid.NewString(),
			OrganizationID:   organizationID,
			AccountNumber:    entry.Number,
			Name:             entry.Name,
			AccountType:      entry.Type,
			Category:         entry.Category,
			StatementType:    statementTypeFor(entry.Type),
			StatementSection: entry.Section,
			DisplayOrder:     entry.Order,
			NormalBalance:    domain.NormalBalanceFor(entry.Type),
			NetAssetClass:    class,
			IsActive:         true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}

	inserted, err := s.accountRepo.SaveAccounts(ctx, accounts)
	if err != nil {
		s.LogError(ctx, err, "Failed to seed default chart", slog.String("organization_id", organizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Default chart seeded",
		slog.String("organization_id", organizationID),
		slog.Int("accounts_inserted", inserted),
		slog.Int("accounts_in_chart", len(chart)))
	return accounts, nil
}

// statementTypeFor maps account types onto their statement placement.
func statementTypeFor(t domain.AccountType) domain.StatementType {
	switch t {
	case domain.Revenue, domain.Expense:
		return domain.StatementActivity
	default:
		return domain.StatementPosition
	}
}
