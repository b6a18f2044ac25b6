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
	"github.com/altruvo/fundledger/internal/utils/accounting"
)

// journalService implements the journal entry engine.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
	periodRepo  portsrepo.PeriodRepository
	accountSvc  portssvc.AccountSvcFacade
}

// NewJournalService creates a new journal entry engine.
func NewJournalService(journalRepo portsrepo.JournalRepository, periodRepo portsrepo.PeriodRepository, accountSvc portssvc.AccountSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		periodRepo:  periodRepo,
		accountSvc:  accountSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// resolvePeriodFor finds the period covering the given date and requires it
// to be open. A covering-but-closed period is ErrImmutablePeriod; no covering
// period at all is ErrNoOpenPeriod. Posting never creates periods implicitly.
func (s *journalService) resolvePeriodFor(ctx context.Context, organizationID string, date time.Time) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodContaining(ctx, organizationID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNoOpenPeriod, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to resolve accounting period: %w", err)
	}
	if period.Status != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: period %s (%s)", apperrors.ErrImmutablePeriod, period.Name, period.PeriodID)
	}
	return period, nil
}

// validateLineAccounts checks every referenced account exists, is active and
// belongs to the entry's organization.
func (s *journalService) validateLineAccounts(ctx context.Context, organizationID string, lines []domain.JournalLine) error {
	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, organizationID, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s (%s) is inactive", apperrors.ErrValidation, acc.AccountNumber, id)
		}
	}
	return nil
}

// CreateEntry validates and persists a balanced draft entry.
func (s *journalService) CreateEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	entryType := domain.EntryType(req.EntryType)
	if entryType == "" {
		entryType = domain.EntryStandard
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		var class *domain.NetAssetClass
		if lineReq.NetAssetClass != nil {
			c := domain.NetAssetClass(*lineReq.NetAssetClass)
			class = &c
		}
		lines[i] = domain.JournalLine{
			EntryID:       entryID,
			LineNumber:    i + 1,
			AccountID:     lineReq.AccountID,
			Description:   lineReq.Description,
			Debit:         lineReq.Debit,
			Credit:        lineReq.Credit,
			NetAssetClass: class,
			DepartmentID:  lineReq.DepartmentID,
			CampaignID:    lineReq.CampaignID,
		}
	}

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.validateLineAccounts(ctx, organizationID, lines); err != nil {
		return nil, err
	}

	period, err := s.resolvePeriodFor(ctx, organizationID, req.EntryDate)
	if err != nil {
		return nil, err
	}

	totalDebits, totalCredits := accounting.EntryTotals(lines)

	entry := domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: organizationID,
		PeriodID:       period.PeriodID,
		EntryDate:      req.EntryDate,
		EntryType:      entryType,
		SourceType:     domain.SourceManual,
		Memo:           req.Memo,
		Status:         domain.Draft,
		TotalDebits:    totalDebits,
		TotalCredits:   totalCredits,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.journalRepo.CreateEntry(ctx, entry, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to create journal entry", slog.String("organization_id", organizationID))
		return nil, err
	}
	saved.Lines = lines

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", saved.EntryID),
		slog.String("entry_number", saved.EntryNumber),
		slog.String("organization_id", organizationID))
	return saved, nil
}

// PostEntry transitions a draft to posted, re-checking that the entry's
// period has not closed in the meantime.
func (s *journalService) PostEntry(ctx context.Context, organizationID, entryID string, approverUserID string) (*domain.JournalEntry, error) {
	entry, err := s.getOwnedEntry(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s, expected DRAFT", apperrors.ErrConflict, entry.EntryNumber, entry.Status)
	}

	postedAt := time.Now().UTC()
	if err := s.journalRepo.MarkEntryPosted(ctx, entryID, approverUserID, postedAt); err != nil {
		if errors.Is(err, apperrors.ErrImmutablePeriod) {
			s.LogWarn(ctx, "Posting rejected: period closed since entry was drafted",
				slog.String("entry_id", entryID))
		} else {
			s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("posted_by", approverUserID))
	return s.GetEntryByID(ctx, organizationID, entryID)
}

// ReverseEntry creates and posts the mirror of a posted entry in the current
// open period. The original is never mutated beyond its reversal flag, and a
// reversal (or an already-reversed entry) cannot be reversed again.
func (s *journalService) ReverseEntry(ctx context.Context, organizationID, entryID string, actorUserID, reason string) (*domain.JournalEntry, error) {
	original, err := s.getOwnedEntry(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: entry %s is %s, expected POSTED", apperrors.ErrConflict, original.EntryNumber, original.Status)
	}
	if original.IsReversed {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyReversed, original.EntryNumber)
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: entry %s is itself a reversal", apperrors.ErrAlreadyReversed, original.EntryNumber)
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}

	now := time.Now().UTC()

	// The reversal lands in today's open period, which is not necessarily
	// the original's period.
	period, err := s.resolvePeriodFor(ctx, organizationID, now)
	if err != nil {
		return nil, err
	}

	reversalID := uuid.NewString()
	reversalLines := make([]domain.JournalLine, len(originalLines))
	for i, line := range originalLines {
		mirrored := accounting.MirrorLine(line)
		mirrored.EntryID = reversalID
		reversalLines[i] = mirrored
	}

	reversal := domain.JournalEntry{
		EntryID:        reversalID,
		OrganizationID: organizationID,
		PeriodID:       period.PeriodID,
		EntryDate:      now,
		EntryType:      domain.EntryAdjusting,
		SourceType:     domain.SourceManual,
		Memo:           fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, reason),
		Status:         domain.Posted,
		TotalDebits:    original.TotalCredits,
		TotalCredits:   original.TotalDebits,
		ReversesEntry:  &original.EntryID,
		PostedBy:       &actorUserID,
		PostedAt:       &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	saved, err := s.journalRepo.SaveReversal(ctx, reversal, reversalLines, original.EntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyReversed) {
			s.LogWarn(ctx, "Reversal lost a race: entry already reversed", slog.String("entry_id", entryID))
		} else {
			s.LogError(ctx, err, "Failed to save reversal", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	saved.Lines = reversalLines

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("original_entry_id", original.EntryID),
		slog.String("reversal_entry_id", saved.EntryID),
		slog.String("reversal_entry_number", saved.EntryNumber))
	return saved, nil
}

// GetEntryByID returns an entry with its lines in line-number order.
func (s *journalService) GetEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.getOwnedEntry(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries returns a filtered page of entries, each grouped back together
// with its ordered lines.
func (s *journalService) ListEntries(ctx context.Context, organizationID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	filter := portsrepo.ListEntriesFilter{PeriodID: params.PeriodID}
	if params.Status != nil {
		status := domain.EntryStatus(*params.Status)
		filter.Status = &status
	}
	if params.SourceType != nil {
		sourceType := domain.SourceType(*params.SourceType)
		filter.SourceType = &sourceType
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, organizationID, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	if len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i, entry := range entries {
			entryIDs[i] = entry.EntryID
		}
		linesMap, err := s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve entry lines: %w", err)
		}
		for i := range entries {
			entries[i].Lines = linesMap[entries[i].EntryID]
		}
	}

	responses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToEntryResponse(&entries[i])
	}

	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// getOwnedEntry fetches an entry header and hides entries of other organizations.
func (s *journalService) getOwnedEntry(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}
