package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the per-account aggregation of posted activity that the
// statement generator works from. TotalDebits/TotalCredits are the raw column
// sums over posted journal lines.
type AccountBalance struct {
	AccountID        string
	AccountNumber    string
	AccountName      string
	AccountType      AccountType
	NormalBalance    BalanceSide
	StatementSection string
	DisplayOrder     int
	TotalDebits      decimal.Decimal
	TotalCredits     decimal.Decimal
}

// Net returns the balance signed toward the account's normal side: a positive
// value means the account carries a balance on its normal side.
func (b AccountBalance) Net() decimal.Decimal {
	if b.NormalBalance == DebitSide {
		return b.TotalDebits.Sub(b.TotalCredits)
	}
	return b.TotalCredits.Sub(b.TotalDebits)
}

// TrialBalanceRow places an account's net balance on its debit or credit
// column. A negative net balance flips to the opposite column, so both
// columns stay non-negative and their totals stay equal.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TrialBalance is the full listing as of a date plus the global check totals.
type TrialBalance struct {
	OrganizationID string            `json:"organizationID"`
	AsOf           time.Time         `json:"asOf"`
	Rows           []TrialBalanceRow `json:"rows"`
	TotalDebits    decimal.Decimal   `json:"totalDebits"`
	TotalCredits   decimal.Decimal   `json:"totalCredits"`
}

// StatementLine is one account row within a statement section.
type StatementLine struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
}

// StatementSection is an ordered group of lines with a subtotal.
type StatementSection struct {
	Title    string          `json:"title"`
	Lines    []StatementLine `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// ActivityStatement is the nonprofit income statement: revenue and support
// versus expenses over a date range.
type ActivityStatement struct {
	OrganizationID    string           `json:"organizationID"`
	FromDate          time.Time        `json:"fromDate"`
	ToDate            time.Time        `json:"toDate"`
	Revenue           StatementSection `json:"revenue"`
	Expenses          StatementSection `json:"expenses"`
	TotalRevenue      decimal.Decimal  `json:"totalRevenue"`
	TotalExpenses     decimal.Decimal  `json:"totalExpenses"`
	ChangeInNetAssets decimal.Decimal  `json:"changeInNetAssets"`
}

// PositionStatement is the nonprofit balance sheet: assets, liabilities and
// net assets as of a date, with totalAssets == totalLiabilities + totalNetAssets.
type PositionStatement struct {
	OrganizationID   string           `json:"organizationID"`
	AsOf             time.Time        `json:"asOf"`
	Assets           StatementSection `json:"assets"`
	Liabilities      StatementSection `json:"liabilities"`
	NetAssets        StatementSection `json:"netAssets"`
	TotalAssets      decimal.Decimal  `json:"totalAssets"`
	TotalLiabilities decimal.Decimal  `json:"totalLiabilities"`
	TotalNetAssets   decimal.Decimal  `json:"totalNetAssets"`
}

// GeneratedStatementType tags a persisted statement snapshot.
type GeneratedStatementType string

const (
	GeneratedTrialBalance GeneratedStatementType = "TRIAL_BALANCE"
	GeneratedActivity     GeneratedStatementType = "ACTIVITY"
	GeneratedPosition     GeneratedStatementType = "POSITION"
)

// GeneratedStatement is an append-only audit snapshot of a statement
// computation. Immutable once saved.
type GeneratedStatement struct {
	StatementID    string                 `json:"statementID"`
	OrganizationID string                 `json:"organizationID"`
	StatementType  GeneratedStatementType `json:"statementType"`
	PeriodStart    time.Time              `json:"periodStart"`
	PeriodEnd      time.Time              `json:"periodEnd"`
	Body           json.RawMessage        `json:"body"`
	GeneratedBy    string                 `json:"generatedBy"`
	GeneratedAt    time.Time              `json:"generatedAt"`
}

// TemplateSection is one ordered section of a statement layout.
type TemplateSection struct {
	Title        string      `json:"title"`
	AccountType  AccountType `json:"accountType"`
	DisplayOrder int         `json:"displayOrder"`
}

// StatementTemplate is a reusable layout a statement renders against.
// OrganizationID is nil for the global defaults.
type StatementTemplate struct {
	TemplateID     string                 `json:"templateID"`
	OrganizationID *string                `json:"organizationID,omitempty"`
	StatementType  GeneratedStatementType `json:"statementType"`
	Name           string                 `json:"name"`
	Sections       []TemplateSection      `json:"sections"`
	AuditFields
}
