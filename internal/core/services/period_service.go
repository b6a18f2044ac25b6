package services

import (
	"context"
	"errors"
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

// periodService implements the accounting period manager.
type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepository
}

// NewPeriodService creates a new period manager service.
func NewPeriodService(periodRepo portsrepo.PeriodRepository) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod opens a new fiscal window. Overlapping windows within the same
// organization are rejected.
func (s *periodService) CreatePeriod(ctx context.Context, organizationID string, req dto.CreatePeriodRequest, creatorUserID string) (*domain.AccountingPeriod, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: period end date must be after start date", apperrors.ErrValidation)
	}

	overlaps, err := s.periodRepo.HasOverlappingPeriod(ctx, organizationID, req.StartDate, req.EndDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to check period overlap", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to check period overlap: %w", err)
	}
	if overlaps {
		return nil, fmt.Errorf("%w: period overlaps an existing period", apperrors.ErrValidation)
	}

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("FY%d %s", req.FiscalYear, req.StartDate.Format("Jan 2006"))
	}

	now := time.Now().UTC()
	period := domain.AccountingPeriod{
		PeriodID:       uuid.NewString(),
		OrganizationID: organizationID,
		Name:           name,
		FiscalYear:     req.FiscalYear,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Status:         domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "Failed to save period", slog.String("organization_id", organizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Accounting period created",
		slog.String("period_id", period.PeriodID),
		slog.Int("fiscal_year", period.FiscalYear),
		slog.String("organization_id", organizationID))
	return &period, nil
}

// GetPeriodByID fetches one period, scoped to the organization.
func (s *periodService) GetPeriodByID(ctx context.Context, organizationID, periodID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return period, nil
}

// GetCurrentPeriod resolves the open period containing the given date.
// A covering-but-closed period yields ErrImmutablePeriod so callers can
// distinguish "closed" from "never existed".
func (s *periodService) GetCurrentPeriod(ctx context.Context, organizationID string, at time.Time) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodContaining(ctx, organizationID, at)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNoOpenPeriod, at.Format("2006-01-02"))
		}
		return nil, err
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: period %s", apperrors.ErrImmutablePeriod, period.PeriodID)
	}
	return period, nil
}

// ListPeriods returns all periods of the organization ordered by start date.
func (s *periodService) ListPeriods(ctx context.Context, organizationID string) ([]domain.AccountingPeriod, error) {
	return s.periodRepo.ListPeriods(ctx, organizationID)
}

// ClosePeriod transitions a period to its terminal CLOSED state.
func (s *periodService) ClosePeriod(ctx context.Context, organizationID, periodID string, closedBy string) (*domain.AccountingPeriod, error) {
	if _, err := s.GetPeriodByID(ctx, organizationID, periodID); err != nil {
		return nil, err
	}

	closedAt := time.Now().UTC()
	if err := s.periodRepo.ClosePeriod(ctx, periodID, closedBy, closedAt); err != nil {
		if errors.Is(err, apperrors.ErrImmutablePeriod) {
			s.LogWarn(ctx, "Attempted to close an already-closed period", slog.String("period_id", periodID))
		} else {
			s.LogError(ctx, err, "Failed to close period", slog.String("period_id", periodID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Accounting period closed",
		slog.String("period_id", periodID),
		slog.String("closed_by", closedBy))
	return s.GetPeriodByID(ctx, organizationID, periodID)
}
