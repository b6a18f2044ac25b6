package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/altruvo/fundledger/internal/apperrors"
	"github.com/altruvo/fundledger/internal/core/domain"
	portsrepo "github.com/altruvo/fundledger/internal/core/ports/repositories"
	portssvc "github.com/altruvo/fundledger/internal/core/ports/services"
	"github.com/altruvo/fundledger/internal/dto"
)

// donationService turns settled donation facts into posted journal entries.
type donationService struct {
	BaseService
	donationRepo portsrepo.DonationRepository
	journalRepo  portsrepo.JournalRepository
	accountRepo  portsrepo.AccountRepository
	periodRepo   portsrepo.PeriodRepository
}

// NewDonationService creates a new donation auto-poster.
func NewDonationService(donationRepo portsrepo.DonationRepository, journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository, periodRepo portsrepo.PeriodRepository) portssvc.DonationSvcFacade {
	return &donationService{
		donationRepo: donationRepo,
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		periodRepo:   periodRepo,
	}
}

var _ portssvc.DonationSvcFacade = (*donationService)(nil)

// postingAccounts are the resolved targets of one auto-posting run.
type postingAccounts struct {
	cash    domain.Account
	revenue domain.Account
	fee     domain.Account
}

// IngestDonation records an inbound donation fact. Replays of the same
// donation ID are silently absorbed.
func (s *donationService) IngestDonation(ctx context.Context, donation domain.Donation) error {
	if donation.DonationID == "" || donation.OrganizationID == "" {
		return fmt.Errorf("%w: donation ID and organization ID are required", apperrors.ErrValidation)
	}
	if !donation.Amount.IsPositive() {
		return fmt.Errorf("%w: donation amount must be positive", apperrors.ErrValidation)
	}
	if donation.FeeAmount.IsNegative() || donation.FeeAmount.GreaterThan(donation.Amount) {
		return fmt.Errorf("%w: fee amount must be within [0, amount]", apperrors.ErrValidation)
	}
	if donation.ReceivedAt.IsZero() {
		donation.ReceivedAt = time.Now().UTC()
	}

	if err := s.donationRepo.SaveDonation(ctx, donation); err != nil {
		s.LogError(ctx, err, "Failed to ingest donation", slog.String("donation_id", donation.DonationID))
		return err
	}

	s.LogInfo(ctx, "Donation fact ingested",
		slog.String("donation_id", donation.DonationID),
		slog.String("organization_id", donation.OrganizationID),
		slog.String("amount", donation.Amount.String()))
	return nil
}

// AutoPostDonations posts every unposted donation in scope as its own
// already-posted entry. One bad donation does not stop the run; its error is
// collected in the summary. Misconfiguration (missing target period or
// missing default accounts) aborts before anything is posted.
func (s *donationService) AutoPostDonations(ctx context.Context, organizationID string, req dto.AutoPostRequest, actorUserID string) (*dto.AutoPostSummary, error) {
	period, err := s.resolveTargetPeriod(ctx, organizationID, req)
	if err != nil {
		return nil, err
	}

	from, to := period.StartDate, period.EndDate
	if req.FromDate != nil {
		from = *req.FromDate
	}
	if req.ToDate != nil {
		to = *req.ToDate
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: toDate precedes fromDate", apperrors.ErrValidation)
	}
	// Entries carry the target period's ID, so a range reaching outside that
	// period's window would post entries dated outside their period.
	if from.Before(period.StartDate) || to.After(period.EndDate) {
		return nil, fmt.Errorf("%w: date range exceeds the window of period %s", apperrors.ErrValidation, period.Name)
	}

	accounts, err := s.resolvePostingAccounts(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	donations, err := s.donationRepo.ListUnpostedDonations(ctx, organizationID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unposted donations", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to retrieve unposted donations: %w", err)
	}

	summary := &dto.AutoPostSummary{
		TotalAmount: decimal.Zero,
		Errors:      []dto.AutoPostError{},
	}

	for i := range donations {
		donation := donations[i]
		entry, lines := s.buildDonationEntry(&donation, period, accounts, actorUserID)

		if _, err := s.journalRepo.CreateEntry(ctx, entry, lines); err != nil {
			if errors.Is(err, apperrors.ErrDuplicatePosting) {
				summary.Skipped++
				s.LogDebug(ctx, "Donation already posted, skipping",
					slog.String("donation_id", donation.DonationID))
				continue
			}
			summary.Errors = append(summary.Errors, dto.AutoPostError{
				DonationID: donation.DonationID,
				Error:      err.Error(),
			})
			s.LogWarn(ctx, "Failed to post donation, continuing run",
				slog.String("donation_id", donation.DonationID),
				slog.String("error", err.Error()))
			continue
		}

		summary.EntriesCreated++
		summary.TotalAmount = summary.TotalAmount.Add(donation.Amount)
	}

	s.LogInfo(ctx, "Donation auto-posting run finished",
		slog.String("organization_id", organizationID),
		slog.String("period_id", period.PeriodID),
		slog.Int("entries_created", summary.EntriesCreated),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", len(summary.Errors)))
	return summary, nil
}

// resolveTargetPeriod picks the period a run posts into: the explicitly
// requested one, the one covering the requested range start, or the current
// open period. A closed target always aborts the run.
func (s *donationService) resolveTargetPeriod(ctx context.Context, organizationID string, req dto.AutoPostRequest) (*domain.AccountingPeriod, error) {
	var (
		period *domain.AccountingPeriod
		err    error
	)
	switch {
	case req.PeriodID != nil:
		period, err = s.periodRepo.FindPeriodByID(ctx, *req.PeriodID)
		if err != nil {
			return nil, err
		}
		if period.OrganizationID != organizationID {
			return nil, apperrors.ErrNotFound
		}
	case req.FromDate != nil:
		period, err = s.periodRepo.FindPeriodContaining(ctx, organizationID, *req.FromDate)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: no period covers %s", apperrors.ErrNoOpenPeriod, req.FromDate.Format("2006-01-02"))
			}
			return nil, err
		}
	default:
		period, err = s.periodRepo.FindPeriodContaining(ctx, organizationID, time.Now().UTC())
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: no current period", apperrors.ErrNoOpenPeriod)
			}
			return nil, err
		}
	}

	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: period %s (%s)", apperrors.ErrImmutablePeriod, period.Name, period.PeriodID)
	}
	return period, nil
}

// resolvePostingAccounts looks up the conventional cash, revenue and fee
// accounts. Any missing or inactive account is an ErrConfiguration that
// aborts the run, pointing operators at chart seeding.
func (s *donationService) resolvePostingAccounts(ctx context.Context, organizationID string) (*postingAccounts, error) {
	numbers := []string{DefaultCashAccountNumber, DefaultRevenueAccountNumber, DefaultFeeAccountNumber}
	byNumber, err := s.accountRepo.FindAccountsByNumbers(ctx, organizationID, numbers)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve posting accounts: %w", err)
	}

	for _, number := range numbers {
		acc, found := byNumber[number]
		if !found {
			return nil, fmt.Errorf("%w: account %s not found, seed the default chart first", apperrors.ErrConfiguration, number)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s (%s) is inactive", apperrors.ErrConfiguration, number, acc.Name)
		}
	}

	return &postingAccounts{
		cash:    byNumber[DefaultCashAccountNumber],
		revenue: byNumber[DefaultRevenueAccountNumber],
		fee:     byNumber[DefaultFeeAccountNumber],
	}, nil
}

// buildDonationEntry assembles the posted entry for one donation: debit cash
// for the net proceeds, credit revenue for the gross amount and debit fee
// expense for the processor's cut. Lines always balance to the gross amount.
// When the fee consumes the whole donation the cash line is omitted, because
// every persisted line must carry a positive amount on exactly one side.
func (s *donationService) buildDonationEntry(donation *domain.Donation, period *domain.AccountingPeriod, accounts *postingAccounts, actorUserID string) (domain.JournalEntry, []domain.JournalLine) {
	now := time.Now().UTC()
	entryID := uuid.NewString()
	unrestricted := domain.Unrestricted

	net := donation.Amount.Sub(donation.FeeAmount)

	lines := make([]domain.JournalLine, 0, 3)
	if net.IsPositive() {
		lines = append(lines, domain.JournalLine{
			EntryID:     entryID,
			AccountID:   accounts.cash.AccountID,
			Description: fmt.Sprintf("Donation %s net proceeds", donation.DonationID),
			Debit:       net,
			Credit:      decimal.Zero,
		})
	}
	lines = append(lines, domain.JournalLine{
		EntryID:       entryID,
		AccountID:     accounts.revenue.AccountID,
		Description:   fmt.Sprintf("Donation %s", donation.DonationID),
		Debit:         decimal.Zero,
		Credit:        donation.Amount,
		NetAssetClass: &unrestricted,
	})
	if donation.FeeAmount.IsPositive() {
		lines = append(lines, domain.JournalLine{
			EntryID:     entryID,
			AccountID:   accounts.fee.AccountID,
			Description: fmt.Sprintf("Donation %s processing fee", donation.DonationID),
			Debit:       donation.FeeAmount,
			Credit:      decimal.Zero,
		})
	}
	for i := range lines {
		lines[i].LineNumber = i + 1
	}

	sourceID := donation.DonationID
	entry := domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: donation.OrganizationID,
		PeriodID:       period.PeriodID,
		EntryDate:      donation.OccurredAt,
		EntryType:      domain.EntryStandard,
		SourceType:     domain.SourceDonation,
		SourceID:       &sourceID,
		Memo:           fmt.Sprintf("Auto-posted donation %s", donation.DonationID),
		Status:         domain.Posted,
		TotalDebits:    donation.Amount,
		TotalCredits:   donation.Amount,
		PostedBy:       &actorUserID,
		PostedAt:       &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	return entry, lines
}
