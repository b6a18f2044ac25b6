package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/altruvo/fundledger/internal/apperrors"
	"github.com/altruvo/fundledger/internal/core/domain"
	portsrepo "github.com/altruvo/fundledger/internal/core/ports/repositories"
	portssvc "github.com/altruvo/fundledger/internal/core/ports/services"
	"github.com/altruvo/fundledger/internal/core/services"
	"github.com/altruvo/fundledger/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockPeriodRepo  *MockPeriodRepository
	mockAccountSvc  *MockAccountService
	service         portssvc.JournalSvcFacade

	organizationID string
	userID         string
	openPeriod     domain.AccountingPeriod
	cashAccount    domain.Account
	revenueAccount domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockPeriodRepo, suite.mockAccountSvc)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.openPeriod = domain.AccountingPeriod{
		PeriodID:       uuid.NewString(),
		OrganizationID: suite.organizationID,
		Name:           "FY2026 Q1",
		FiscalYear:     2026,
		StartDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:         domain.PeriodOpen,
	}
	suite.cashAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountNumber:  "1000",
		Name:           "Cash and Cash Equivalents",
		AccountType:    domain.Asset,
		NormalBalance:  domain.DebitSide,
		IsActive:       true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountNumber:  "4000",
		Name:           "Contribution Revenue",
		AccountType:    domain.Revenue,
		NormalBalance:  domain.CreditSide,
		IsActive:       true,
	}
}

func (suite *JournalServiceTestSuite) accountsByID(accounts ...domain.Account) map[string]domain.Account {
	out := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		out[acc.AccountID] = acc
	}
	return out
}

func (suite *JournalServiceTestSuite) balancedRequest(amount decimal.Decimal) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		EntryDate: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		Memo:      "February donation batch",
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: amount},
			{AccountID: suite.revenueAccount.AccountID, Credit: amount},
		},
	}
}

func (suite *JournalServiceTestSuite) TestCreateEntrySuccess() {
	ctx := context.Background()
	amount := decimal.NewFromFloat(250.00)
	req := suite.balancedRequest(amount)

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.organizationID,
		[]string{suite.cashAccount.AccountID, suite.revenueAccount.AccountID}).
		Return(suite.accountsByID(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodContaining", ctx, suite.organizationID, req.EntryDate).
		Return(&suite.openPeriod, nil).Once()
	saved := domain.JournalEntry{
		OrganizationID: suite.organizationID,
		EntryNumber:    "JE-2026-001",
		PeriodID:       suite.openPeriod.PeriodID,
		Status:         domain.Draft,
	}
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.JournalEntry)
			lines := args.Get(2).([]domain.JournalLine)
			suite.Equal(domain.Draft, entry.Status)
			suite.Equal(domain.EntryStandard, entry.EntryType)
			suite.Equal(domain.SourceManual, entry.SourceType)
			suite.Equal(suite.openPeriod.PeriodID, entry.PeriodID)
			suite.True(entry.TotalDebits.Equal(amount))
			suite.True(entry.TotalCredits.Equal(amount))
			suite.Len(lines, 2)
			suite.Equal(1, lines[0].LineNumber)
			suite.Equal(2, lines[1].LineNumber)
		}).
		Return(&saved, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("JE-2026-001", entry.EntryNumber)
	suite.Len(entry.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockPeriodRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntryUnbalancedFails() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		EntryDate: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		Memo:      "Does not balance",
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(90)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntrySingleLineFails() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		EntryDate: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		Memo:      "One-sided",
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntryBothSidesOnOneLineFails() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		EntryDate: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		Memo:      "Line carries both sides",
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(50)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(0)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntryUnknownAccountFails() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(100))

	// Only the cash account resolves; the revenue account is missing.
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.organizationID, mock.AnythingOfType("[]string")).
		Return(suite.accountsByID(suite.cashAccount), nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntryInactiveAccountFails() {
	ctx := context.Background()
	inactive := suite.revenueAccount
	inactive.IsActive = false
	req := suite.balancedRequest(decimal.NewFromInt(100))

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.organizationID, mock.AnythingOfType("[]string")).
		Return(suite.accountsByID(suite.cashAccount, inactive), nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntryNoPeriodFails() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(100))

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.organizationID, mock.AnythingOfType("[]string")).
		Return(suite.accountsByID(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodContaining", ctx, suite.organizationID, req.EntryDate).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoOpenPeriod)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntryClosedPeriodFails() {
	ctx := context.Background()
	closed := suite.openPeriod
	closed.Status = domain.PeriodClosed
	req := suite.balancedRequest(decimal.NewFromInt(100))

	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.organizationID, mock.AnythingOfType("[]string")).
		Return(suite.accountsByID(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodContaining", ctx, suite.organizationID, req.EntryDate).
		Return(&closed, nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrImmutablePeriod)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) draftEntry() domain.JournalEntry {
	amount := decimal.NewFromInt(100)
	return domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.organizationID,
		EntryNumber:    "JE-2026-007",
		PeriodID:       suite.openPeriod.PeriodID,
		EntryDate:      time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		EntryType:      domain.EntryStandard,
		SourceType:     domain.SourceManual,
		Memo:           "February donation batch",
		Status:         domain.Draft,
		TotalDebits:    amount,
		TotalCredits:   amount,
	}
}

func (suite *JournalServiceTestSuite) entryLines(entryID string, amount decimal.Decimal) []domain.JournalLine {
	return []domain.JournalLine{
		{EntryID: entryID, LineNumber: 1, AccountID: suite.cashAccount.AccountID, Debit: amount, Credit: decimal.Zero},
		{EntryID: entryID, LineNumber: 2, AccountID: suite.revenueAccount.AccountID, Debit: decimal.Zero, Credit: amount},
	}
}

func (suite *JournalServiceTestSuite) TestPostEntrySuccess() {
	ctx := context.Background()
	draft := suite.draftEntry()
	posted := draft
	posted.Status = domain.Posted

	suite.mockJournalRepo.On("FindEntryByID", ctx, draft.EntryID).Return(&draft, nil).Once()
	suite.mockJournalRepo.On("MarkEntryPosted", ctx, draft.EntryID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, draft.EntryID).Return(&posted, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, draft.EntryID).
		Return(suite.entryLines(draft.EntryID, draft.TotalDebits), nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.organizationID, draft.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, entry.Status)
	suite.Len(entry.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntryAlreadyPostedFails() {
	ctx := context.Background()
	entry := suite.draftEntry()
	entry.Status = domain.Posted

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.organizationID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkEntryPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntryPeriodClosedSinceDraft() {
	ctx := context.Background()
	draft := suite.draftEntry()

	suite.mockJournalRepo.On("FindEntryByID", ctx, draft.EntryID).Return(&draft, nil).Once()
	suite.mockJournalRepo.On("MarkEntryPosted", ctx, draft.EntryID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrImmutablePeriod).Once()

	_, err := suite.service.PostEntry(ctx, suite.organizationID, draft.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrImmutablePeriod)
}

func (suite *JournalServiceTestSuite) TestPostEntryForeignOrganizationHidden() {
	ctx := context.Background()
	entry := suite.draftEntry()
	entry.OrganizationID = uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.organizationID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestReverseEntrySuccess() {
	ctx := context.Background()
	amount := decimal.NewFromFloat(100.00)
	original := suite.draftEntry()
	original.Status = domain.Posted
	originalLines := suite.entryLines(original.EntryID, amount)
	savedReversal := domain.JournalEntry{
		OrganizationID: suite.organizationID,
		EntryNumber:    "JE-2026-008",
		PeriodID:       suite.openPeriod.PeriodID,
		Status:         domain.Posted,
		ReversesEntry:  &original.EntryID,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(&original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, original.EntryID).Return(originalLines, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodContaining", ctx, suite.organizationID, mock.AnythingOfType("time.Time")).
		Return(&suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("SaveReversal", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), original.EntryID).
		Run(func(args mock.Arguments) {
			reversal := args.Get(1).(domain.JournalEntry)
			lines := args.Get(2).([]domain.JournalLine)
			suite.Equal(domain.Posted, reversal.Status)
			suite.Equal(domain.EntryAdjusting, reversal.EntryType)
			suite.Require().NotNil(reversal.ReversesEntry)
			suite.Equal(original.EntryID, *reversal.ReversesEntry)
			suite.Contains(reversal.Memo, "Reversal of JE-2026-007")
			suite.Require().Len(lines, 2)
			// Debits and credits trade places.
			suite.True(lines[0].Credit.Equal(amount))
			suite.True(lines[0].Debit.IsZero())
			suite.True(lines[1].Debit.Equal(amount))
			suite.True(lines[1].Credit.IsZero())
		}).
		Return(&savedReversal, nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, suite.organizationID, original.EntryID, suite.userID, "posted to wrong account")

	suite.Require().NoError(err)
	suite.Equal("JE-2026-008", reversal.EntryNumber)
	suite.Len(reversal.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntryDraftFails() {
	ctx := context.Background()
	draft := suite.draftEntry()

	suite.mockJournalRepo.On("FindEntryByID", ctx, draft.EntryID).Return(&draft, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.organizationID, draft.EntryID, suite.userID, "mistake")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntryTwiceFails() {
	ctx := context.Background()
	original := suite.draftEntry()
	original.Status = domain.Posted
	original.IsReversed = true

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(&original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.organizationID, original.EntryID, suite.userID, "again")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyReversed)
}

func (suite *JournalServiceTestSuite) TestReverseAReversalFails() {
	ctx := context.Background()
	originalID := uuid.NewString()
	reversal := suite.draftEntry()
	reversal.Status = domain.Posted
	reversal.ReversesEntry = &originalID

	suite.mockJournalRepo.On("FindEntryByID", ctx, reversal.EntryID).Return(&reversal, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.organizationID, reversal.EntryID, suite.userID, "undo the undo")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyReversed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntryRaceDetectedByRepo() {
	ctx := context.Background()
	original := suite.draftEntry()
	original.Status = domain.Posted

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(&original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, original.EntryID).
		Return(suite.entryLines(original.EntryID, original.TotalDebits), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodContaining", ctx, suite.organizationID, mock.AnythingOfType("time.Time")).
		Return(&suite.openPeriod, nil).Once()
	suite.mockJournalRepo.On("SaveReversal", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), original.EntryID).
		Return(nil, apperrors.ErrAlreadyReversed).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.organizationID, original.EntryID, suite.userID, "raced")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyReversed)
}

func (suite *JournalServiceTestSuite) TestGetEntryByIDAttachesLines() {
	ctx := context.Background()
	entry := suite.draftEntry()
	lines := suite.entryLines(entry.EntryID, entry.TotalDebits)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()

	got, err := suite.service.GetEntryByID(ctx, suite.organizationID, entry.EntryID)

	suite.Require().NoError(err)
	suite.Len(got.Lines, 2)
	suite.Equal(1, got.Lines[0].LineNumber)
}

func (suite *JournalServiceTestSuite) TestListEntriesGroupsLines() {
	ctx := context.Background()
	first := suite.draftEntry()
	second := suite.draftEntry()
	token := "b3BhcXVl"
	params := dto.ListEntriesParams{Limit: 2}

	suite.mockJournalRepo.On("ListEntries", ctx, suite.organizationID, portsrepo.ListEntriesFilter{}, 2, (*string)(nil)).
		Return([]domain.JournalEntry{first, second}, &token, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryIDs", ctx, []string{first.EntryID, second.EntryID}).
		Return(map[string][]domain.JournalLine{
			first.EntryID:  suite.entryLines(first.EntryID, first.TotalDebits),
			second.EntryID: suite.entryLines(second.EntryID, second.TotalDebits),
		}, nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.organizationID, params)

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 2)
	suite.Len(resp.Entries[0].Lines, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListEntriesTranslatesFilter() {
	ctx := context.Background()
	status := "POSTED"
	sourceType := "DONATION"
	wantStatus := domain.Posted
	wantSource := domain.SourceDonation
	params := dto.ListEntriesParams{Status: &status, SourceType: &sourceType}

	suite.mockJournalRepo.On("ListEntries", ctx, suite.organizationID,
		portsrepo.ListEntriesFilter{Status: &wantStatus, SourceType: &wantSource}, 0, (*string)(nil)).
		Return([]domain.JournalEntry{}, nil, nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.organizationID, params)

	suite.Require().NoError(err)
	suite.Empty(resp.Entries)
	suite.Nil(resp.NextToken)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindLinesByEntryIDs", mock.Anything, mock.Anything)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
