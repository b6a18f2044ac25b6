package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/altruvo/fundledger/internal/core/domain"
	portsrepo "github.com/altruvo/fundledger/internal/core/ports/repositories"
	portssvc "github.com/altruvo/fundledger/internal/core/ports/services"
	"github.com/altruvo/fundledger/internal/dto"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) (int, error) {
	args := m.Called(ctx, accounts)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByNumbers(ctx context.Context, organizationID string, numbers []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, numbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, updatedBy string, at time.Time) error {
	args := m.Called(ctx, accountID, updatedBy, at)
	return args.Error(0)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepository = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodContaining(ctx context.Context, organizationID string, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, organizationID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, organizationID string) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) HasOverlappingPeriod(ctx context.Context, organizationID string, start, end time.Time) (bool, error) {
	args := m.Called(ctx, organizationID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockPeriodRepository) ClosePeriod(ctx context.Context, periodID string, closedBy string, at time.Time) error {
	args := m.Called(ctx, periodID, closedBy, at)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepository = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, organizationID string, filter portsrepo.ListEntriesFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, organizationID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		returnedToken = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.JournalEntry), returnedToken, args.Error(2)
}

func (m *MockJournalRepository) MarkEntryPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) error {
	args := m.Called(ctx, entryID, postedBy, postedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, originalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, reversal, lines, originalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock DonationRepository ---

type MockDonationRepository struct {
	mock.Mock
}

var _ portsrepo.DonationRepository = (*MockDonationRepository)(nil)

func (m *MockDonationRepository) SaveDonation(ctx context.Context, donation domain.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *MockDonationRepository) FindDonationByID(ctx context.Context, donationID string) (*domain.Donation, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) ListUnpostedDonations(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Donation, error) {
	args := m.Called(ctx, organizationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donation), args.Error(1)
}

// --- Mock StatementRepository ---

type MockStatementRepository struct {
	mock.Mock
}

var _ portsrepo.StatementRepository = (*MockStatementRepository)(nil)

func (m *MockStatementRepository) GetBalancesAsOf(ctx context.Context, organizationID string, asOf time.Time) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, organizationID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

func (m *MockStatementRepository) GetBalancesForRange(ctx context.Context, organizationID string, from, to time.Time) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, organizationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

func (m *MockStatementRepository) SaveGeneratedStatement(ctx context.Context, stmt domain.GeneratedStatement) error {
	args := m.Called(ctx, stmt)
	return args.Error(0)
}

func (m *MockStatementRepository) ListGeneratedStatements(ctx context.Context, organizationID string) ([]domain.GeneratedStatement, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedStatement), args.Error(1)
}

func (m *MockStatementRepository) ListTemplates(ctx context.Context, organizationID string) ([]domain.StatementTemplate, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatementTemplate), args.Error(1)
}

// --- Mock AccountSvcFacade (as used by the journal service) ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, organizationID, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, organizationID, accountID string, updaterUserID string) error {
	args := m.Called(ctx, organizationID, accountID, updaterUserID)
	return args.Error(0)
}

func (m *MockAccountService) SeedDefaultChart(ctx context.Context, organizationID string, req dto.SeedChartRequest, creatorUserID string) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
