package models

// AccountType mirrors domain.AccountType for storage.
type AccountType string

// BalanceSide mirrors domain.BalanceSide for storage.
type BalanceSide string

// StatementType mirrors domain.StatementType for storage.
type StatementType string

// Account is the accounts table row.
type Account struct {
	AccountID        string        `db:"account_id"`
	OrganizationID   string        `db:"organization_id"`
	AccountNumber    string        `db:"account_number"`
	Name             string        `db:"name"`
	AccountType      AccountType   `db:"account_type"`
	Category         string        `db:"category"`
	StatementType    StatementType `db:"statement_type"`
	StatementSection string        `db:"statement_section"`
	DisplayOrder     int           `db:"display_order"`
	NormalBalance    BalanceSide   `db:"normal_balance"`
	NetAssetClass    *string       `db:"net_asset_class"` // Nullable
	Description      string        `db:"description"`
	IsActive         bool          `db:"is_active"`
	AuditFields
}
