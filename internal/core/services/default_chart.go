package services

import "github.com/altruvo/fundledger/internal/core/domain"

// chartEntry is one row of a canned chart of accounts.
type chartEntry struct {
	Number        string
	Name          string
	Type          domain.AccountType
	Category      string
	Section       string
	Order         int
	NetAssetClass domain.NetAssetClass // zero value means none
}

// DefaultCashAccountNumber and friends are the account numbers the donation
// auto-poster targets by convention. Changing them is a breaking change for
// every downstream consumer of the seeded chart.
const (
	DefaultCashAccountNumber    = "1000"
	DefaultRevenueAccountNumber = "4000"
	DefaultFeeAccountNumber     = "6200"
)

// nonprofitChart is the canonical seed for nonprofit organizations. Numbers
// are stable and versioned with the code.
var nonprofitChart = []chartEntry{
	// Assets (1xxx)
	{Number: "1000", Name: "Cash and Cash Equivalents", Type: domain.Asset, Category: "Cash", Section: "Current Assets", Order: 10},
	{Number: "1100", Name: "Savings and Reserves", Type: domain.Asset, Category: "Cash", Section: "Current Assets", Order: 20},
	{Number: "1200", Name: "Pledges Receivable", Type: domain.Asset, Category: "Receivables", Section: "Current Assets", Order: 30},
	{Number: "1300", Name: "Grants Receivable", Type: domain.Asset, Category: "Receivables", Section: "Current Assets", Order: 40},
	{Number: "1500", Name: "Prepaid Expenses", Type: domain.Asset, Category: "Other", Section: "Current Assets", Order: 50},
	{Number: "1700", Name: "Property and Equipment", Type: domain.Asset, Category: "Fixed Assets", Section: "Fixed Assets", Order: 60},

	// Liabilities (2xxx)
	{Number: "2000", Name: "Accounts Payable", Type: domain.Liability, Category: "Payables", Section: "Current Liabilities", Order: 10},
	{Number: "2100", Name: "Accrued Expenses", Type: domain.Liability, Category: "Payables", Section: "Current Liabilities", Order: 20},
	{Number: "2300", Name: "Deferred Revenue", Type: domain.Liability, Category: "Other", Section: "Current Liabilities", Order: 30},

	// Net assets (3xxx)
	{Number: "3000", Name: "Unrestricted Net Assets", Type: domain.NetAsset, Category: "Net Assets", Section: "Net Assets", Order: 10, NetAssetClass: domain.Unrestricted},
	{Number: "3100", Name: "Restricted Net Assets", Type: domain.NetAsset, Category: "Net Assets", Section: "Net Assets", Order: 20, NetAssetClass: domain.TemporarilyRestricted},

	// Revenue (4xxx-5xxx)
	{Number: "4000", Name: "Contribution Revenue", Type: domain.Revenue, Category: "Contributions", Section: "Revenue and Support", Order: 10, NetAssetClass: domain.Unrestricted},
	{Number: "4100", Name: "Restricted Contribution Revenue", Type: domain.Revenue, Category: "Contributions", Section: "Revenue and Support", Order: 20, NetAssetClass: domain.TemporarilyRestricted},
	{Number: "4500", Name: "Grant Revenue", Type: domain.Revenue, Category: "Grants", Section: "Revenue and Support", Order: 30, NetAssetClass: domain.Unrestricted},
	{Number: "5000", Name: "Program Service Revenue", Type: domain.Revenue, Category: "Earned Revenue", Section: "Revenue and Support", Order: 40, NetAssetClass: domain.Unrestricted},

	// Expenses (6xxx)
	{Number: "6000", Name: "Program Expenses", Type: domain.Expense, Category: "Program", Section: "Expenses", Order: 10},
	{Number: "6100", Name: "Management and General", Type: domain.Expense, Category: "Administrative", Section: "Expenses", Order: 20},
	{Number: "6150", Name: "Fundraising Expenses", Type: domain.Expense, Category: "Fundraising", Section: "Expenses", Order: 30},
	{Number: "6200", Name: "Payment Processing Fees", Type: domain.Expense, Category: "Administrative", Section: "Expenses", Order: 40},
	{Number: "6300", Name: "Occupancy", Type: domain.Expense, Category: "Administrative", Section: "Expenses", Order: 50},
}

// defaultChartFor returns the canned chart for the given organization type.
func defaultChartFor(orgType string) []chartEntry {
	switch orgType {
	case "NONPROFIT":
		return nonprofitChart
	default:
		return nil
	}
}
