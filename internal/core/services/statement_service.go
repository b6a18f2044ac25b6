package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/altruvo/fundledger/internal/apperrors"
	"github.com/altruvo/fundledger/internal/core/domain"
	portsrepo "github.com/altruvo/fundledger/internal/core/ports/repositories"
	portssvc "github.com/altruvo/fundledger/internal/core/ports/services"
)

// statementService computes financial statements from posted activity. The
// repository does the raw per-account summing; sign conventions, sectioning
// and check totals live here so they can be verified without a database.
type statementService struct {
	BaseService
	statementRepo portsrepo.StatementRepository
}

// NewStatementService creates a new statement generator.
func NewStatementService(statementRepo portsrepo.StatementRepository) portssvc.StatementSvcFacade {
	return &statementService{statementRepo: statementRepo}
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// TrialBalance lists every account with activity as of a date, its net
// balance placed on its normal side. Column totals always come out equal
// when the posted ledger is internally balanced.
func (s *statementService) TrialBalance(ctx context.Context, organizationID string, asOf time.Time) (*domain.TrialBalance, error) {
	balances, err := s.statementRepo.GetBalancesAsOf(ctx, organizationID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate balances", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to compute trial balance: %w", err)
	}

	tb := &domain.TrialBalance{
		OrganizationID: organizationID,
		AsOf:           asOf,
		Rows:           []domain.TrialBalanceRow{},
		TotalDebits:    decimal.Zero,
		TotalCredits:   decimal.Zero,
	}

	for _, b := range sortedBalances(balances) {
		if b.TotalDebits.IsZero() && b.TotalCredits.IsZero() {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:     b.AccountID,
			AccountNumber: b.AccountNumber,
			AccountName:   b.AccountName,
			AccountType:   b.AccountType,
			Debit:         decimal.Zero,
			Credit:        decimal.Zero,
		}
		net := b.Net()
		side := b.NormalBalance
		// A balance carried against the normal side flips columns.
		if net.IsNegative() {
			net = net.Neg()
			if side == domain.DebitSide {
				side = domain.CreditSide
			} else {
				side = domain.DebitSide
			}
		}
		if side == domain.DebitSide {
			row.Debit = net
			tb.TotalDebits = tb.TotalDebits.Add(net)
		} else {
			row.Credit = net
			tb.TotalCredits = tb.TotalCredits.Add(net)
		}
		tb.Rows = append(tb.Rows, row)
	}

	return tb, nil
}

// StatementOfActivity reports revenue versus expenses over a date range.
func (s *statementService) StatementOfActivity(ctx context.Context, organizationID string, from, to time.Time) (*domain.ActivityStatement, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: toDate precedes fromDate", apperrors.ErrValidation)
	}

	balances, err := s.statementRepo.GetBalancesForRange(ctx, organizationID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate range balances", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to compute statement of activity: %w", err)
	}

	stmt := &domain.ActivityStatement{
		OrganizationID: organizationID,
		FromDate:       from,
		ToDate:         to,
		Revenue:        emptySection("Revenue and Support"),
		Expenses:       emptySection("Expenses"),
	}

	for _, b := range sortedBalances(balances) {
		switch b.AccountType {
		case domain.Revenue:
			appendLine(&stmt.Revenue, b)
		case domain.Expense:
			appendLine(&stmt.Expenses, b)
		}
	}

	stmt.TotalRevenue = stmt.Revenue.Subtotal
	stmt.TotalExpenses = stmt.Expenses.Subtotal
	stmt.ChangeInNetAssets = stmt.TotalRevenue.Sub(stmt.TotalExpenses)
	return stmt, nil
}

// StatementOfPosition reports assets, liabilities and net assets as of a
// date. Accumulated activity not yet rolled into a net-asset account shows up
// as a synthetic change-in-net-assets line, keeping total assets equal to
// total liabilities plus total net assets.
func (s *statementService) StatementOfPosition(ctx context.Context, organizationID string, asOf time.Time) (*domain.PositionStatement, error) {
	balances, err := s.statementRepo.GetBalancesAsOf(ctx, organizationID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate balances", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to compute statement of position: %w", err)
	}

	stmt := &domain.PositionStatement{
		OrganizationID: organizationID,
		AsOf:           asOf,
		Assets:         emptySection("Assets"),
		Liabilities:    emptySection("Liabilities"),
		NetAssets:      emptySection("Net Assets"),
	}

	activityNet := decimal.Zero

	for _, b := range sortedBalances(balances) {
		switch b.AccountType {
		case domain.Asset:
			appendLine(&stmt.Assets, b)
		case domain.Liability:
			appendLine(&stmt.Liabilities, b)
		case domain.NetAsset:
			appendLine(&stmt.NetAssets, b)
		case domain.Revenue:
			activityNet = activityNet.Add(b.Net())
		case domain.Expense:
			activityNet = activityNet.Sub(b.Net())
		}
	}

	if !activityNet.IsZero() {
		stmt.NetAssets.Lines = append(stmt.NetAssets.Lines, domain.StatementLine{
			Name:   "Change in Net Assets",
			Amount: activityNet,
		})
		stmt.NetAssets.Subtotal = stmt.NetAssets.Subtotal.Add(activityNet)
	}

	stmt.TotalAssets = stmt.Assets.Subtotal
	stmt.TotalLiabilities = stmt.Liabilities.Subtotal
	stmt.TotalNetAssets = stmt.NetAssets.Subtotal
	return stmt, nil
}

// SaveGeneratedStatement snapshots a computed statement for audit history.
func (s *statementService) SaveGeneratedStatement(ctx context.Context, organizationID string, stmtType domain.GeneratedStatementType, periodStart, periodEnd time.Time, body any, generatedBy string) (*domain.GeneratedStatement, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode statement body: %v", apperrors.ErrInternal, err)
	}

	stmt := domain.GeneratedStatement{
		StatementID:    uuid.NewString(),
		OrganizationID: organizationID,
		StatementType:  stmtType,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		Body:           raw,
		GeneratedBy:    generatedBy,
		GeneratedAt:    time.Now().UTC(),
	}

	if err := s.statementRepo.SaveGeneratedStatement(ctx, stmt); err != nil {
		s.LogError(ctx, err, "Failed to save statement snapshot", slog.String("organization_id", organizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Statement snapshot saved",
		slog.String("statement_id", stmt.StatementID),
		slog.String("statement_type", string(stmtType)))
	return &stmt, nil
}

// ListGeneratedStatements returns an organization's snapshots, newest first.
func (s *statementService) ListGeneratedStatements(ctx context.Context, organizationID string) ([]domain.GeneratedStatement, error) {
	return s.statementRepo.ListGeneratedStatements(ctx, organizationID)
}

// ListTemplates returns the organization's layouts plus the global defaults.
func (s *statementService) ListTemplates(ctx context.Context, organizationID string) ([]domain.StatementTemplate, error) {
	return s.statementRepo.ListTemplates(ctx, organizationID)
}

// sortedBalances orders balances by display order then account number without
// mutating the input slice.
func sortedBalances(balances []domain.AccountBalance) []domain.AccountBalance {
	out := make([]domain.AccountBalance, len(balances))
	copy(out, balances)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].AccountNumber < out[j].AccountNumber
	})
	return out
}

func emptySection(title string) domain.StatementSection {
	return domain.StatementSection{
		Title:    title,
		Lines:    []domain.StatementLine{},
		Subtotal: decimal.Zero,
	}
}

func appendLine(section *domain.StatementSection, b domain.AccountBalance) {
	section.Lines = append(section.Lines, domain.StatementLine{
		AccountID:     b.AccountID,
		AccountNumber: b.AccountNumber,
		Name:          b.AccountName,
		Amount:        b.Net(),
	})
	section.Subtotal = section.Subtotal.Add(b.Net())
}
