package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	NetAsset  AccountType = "NET_ASSET"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// BalanceSide indicates which side of an entry increases an account.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DEBIT"
	CreditSide BalanceSide = "CREDIT"
)

// NormalBalanceFor returns the conventional normal balance side for an account type.
func NormalBalanceFor(t AccountType) BalanceSide {
	switch t {
	case Asset, Expense:
		return DebitSide
	default:
		return CreditSide
	}
}

// StatementType identifies which financial statement an account rolls up into.
type StatementType string

const (
	StatementActivity StatementType = "ACTIVITY"
	StatementPosition StatementType = "POSITION"
)

// NetAssetClass is the nonprofit restriction bucket for net assets and revenue.
type NetAssetClass string

const (
	Unrestricted          NetAssetClass = "UNRESTRICTED"
	TemporarilyRestricted NetAssetClass = "TEMPORARILY_RESTRICTED"
	PermanentlyRestricted NetAssetClass = "PERMANENTLY_RESTRICTED"
)

// Account represents one entry in an organization's chart of accounts.
// AccountNumber is unique within the organization; NormalBalance is fixed at
// creation and never flips. Accounts are deactivated, never hard-deleted, so
// historical journal lines keep a valid reference.
type Account struct {
	AccountID        string         `json:"accountID"`      // Primary key (UUID)
	OrganizationID   string         `json:"organizationID"` // Tenant scope (NON-NULL)
	AccountNumber    string         `json:"accountNumber"`  // e.g. "1000"; unique per org
	Name             string         `json:"name"`
	AccountType      AccountType    `json:"accountType"`
	Category         string         `json:"category"` // Free-form sub-classification
	StatementType    StatementType  `json:"statementType"`
	StatementSection string         `json:"statementSection"` // e.g. "Current Assets"
	DisplayOrder     int            `json:"displayOrder"`
	NormalBalance    BalanceSide    `json:"normalBalance"`
	NetAssetClass    *NetAssetClass `json:"netAssetClass,omitempty"` // Only for net-asset/revenue accounts
	Description      string         `json:"description"`
	IsActive         bool           `json:"isActive"`
	AuditFields
}
