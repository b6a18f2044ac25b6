package dto

import (
	"time"

	"github.com/altruvo/fundledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse is one row of the trial balance report.
type TrialBalanceRowResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse is the trial balance report.
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// StatementLineResponse is one account line within a statement section.
type StatementLineResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
}

// StatementSectionResponse is an ordered statement section with subtotal.
type StatementSectionResponse struct {
	Title    string                  `json:"title"`
	Lines    []StatementLineResponse `json:"lines"`
	Subtotal decimal.Decimal         `json:"subtotal"`
}

// ActivityStatementResponse is the statement of activity report.
type ActivityStatementResponse struct {
	FromDate string                   `json:"fromDate"`
	ToDate   string                   `json:"toDate"`
	Revenue  StatementSectionResponse `json:"revenue"`
	Expenses StatementSectionResponse `json:"expenses"`
	Summary  struct {
		TotalRevenue      decimal.Decimal `json:"totalRevenue"`
		TotalExpenses     decimal.Decimal `json:"totalExpenses"`
		ChangeInNetAssets decimal.Decimal `json:"changeInNetAssets"`
	} `json:"summary"`
}

// PositionStatementResponse is the statement of financial position report.
type PositionStatementResponse struct {
	AsOf        string                   `json:"asOf"`
	Assets      StatementSectionResponse `json:"assets"`
	Liabilities StatementSectionResponse `json:"liabilities"`
	NetAssets   StatementSectionResponse `json:"netAssets"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalNetAssets   decimal.Decimal `json:"totalNetAssets"`
	} `json:"summary"`
}

func toStatementSectionResponse(s domain.StatementSection) StatementSectionResponse {
	lines := make([]StatementLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = StatementLineResponse{
			AccountID:     l.AccountID,
			AccountNumber: l.AccountNumber,
			Name:          l.Name,
			Amount:        l.Amount,
		}
	}
	return StatementSectionResponse{Title: s.Title, Lines: lines, Subtotal: s.Subtotal}
}

// ToTrialBalanceResponse converts a domain trial balance to its API representation.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf: tb.AsOf.Format("2006-01-02"),
		Rows: make([]TrialBalanceRowResponse, len(tb.Rows)),
	}
	for i, row := range tb.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:     row.AccountID,
			AccountNumber: row.AccountNumber,
			AccountName:   row.AccountName,
			AccountType:   string(row.AccountType),
			Debit:         row.Debit,
			Credit:        row.Credit,
		}
	}
	response.Totals.Debit = tb.TotalDebits
	response.Totals.Credit = tb.TotalCredits
	return response
}

// ToActivityStatementResponse converts a domain activity statement.
func ToActivityStatementResponse(s *domain.ActivityStatement) ActivityStatementResponse {
	response := ActivityStatementResponse{
		FromDate: s.FromDate.Format("2006-01-02"),
		ToDate:   s.ToDate.Format("2006-01-02"),
		Revenue:  toStatementSectionResponse(s.Revenue),
		Expenses: toStatementSectionResponse(s.Expenses),
	}
	response.Summary.TotalRevenue = s.TotalRevenue
	response.Summary.TotalExpenses = s.TotalExpenses
	response.Summary.ChangeInNetAssets = s.ChangeInNetAssets
	return response
}

// ToPositionStatementResponse converts a domain position statement.
func ToPositionStatementResponse(s *domain.PositionStatement) PositionStatementResponse {
	response := PositionStatementResponse{
		AsOf:        s.AsOf.Format("2006-01-02"),
		Assets:      toStatementSectionResponse(s.Assets),
		Liabilities: toStatementSectionResponse(s.Liabilities),
		NetAssets:   toStatementSectionResponse(s.NetAssets),
	}
	response.Summary.TotalAssets = s.TotalAssets
	response.Summary.TotalLiabilities = s.TotalLiabilities
	response.Summary.TotalNetAssets = s.TotalNetAssets
	return response
}

// GeneratedStatementResponse is the API representation of a persisted snapshot.
type GeneratedStatementResponse struct {
	StatementID   string    `json:"statementID"`
	StatementType string    `json:"statementType"`
	PeriodStart   time.Time `json:"periodStart"`
	PeriodEnd     time.Time `json:"periodEnd"`
	GeneratedBy   string    `json:"generatedBy"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

// ToGeneratedStatementResponses converts persisted snapshots, omitting bodies.
func ToGeneratedStatementResponses(stmts []domain.GeneratedStatement) []GeneratedStatementResponse {
	responses := make([]GeneratedStatementResponse, len(stmts))
	for i, s := range stmts {
		responses[i] = GeneratedStatementResponse{
			StatementID:   s.StatementID,
			StatementType: string(s.StatementType),
			PeriodStart:   s.PeriodStart,
			PeriodEnd:     s.PeriodEnd,
			GeneratedBy:   s.GeneratedBy,
			GeneratedAt:   s.GeneratedAt,
		}
	}
	return responses
}
