package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal_entries table row.
type JournalEntry struct {
	EntryID         string          `db:"entry_id"`
	OrganizationID  string          `db:"organization_id"`
	EntryNumber     string          `db:"entry_number"`
	PeriodID        string          `db:"period_id"`
	EntryDate       time.Time       `db:"entry_date"`
	EntryType       string          `db:"entry_type"`
	SourceType      string          `db:"source_type"`
	SourceID        *string         `db:"source_id"`
	Memo            string          `db:"memo"`
	Status          string          `db:"status"`
	TotalDebits     decimal.Decimal `db:"total_debits"`
	TotalCredits    decimal.Decimal `db:"total_credits"`
	IsReversed      bool            `db:"is_reversed"`
	ReversedByEntry *string         `db:"reversed_by_entry_id"`
	ReversesEntry   *string         `db:"reverses_entry_id"`
	PostedBy        *string         `db:"posted_by"`
	PostedAt        *time.Time      `db:"posted_at"`
	AuditFields
}

// JournalLine is the journal_lines table row, keyed by (entry_id, line_number).
type JournalLine struct {
	EntryID       string          `db:"entry_id"`
	LineNumber    int             `db:"line_number"`
	AccountID     string          `db:"account_id"`
	Description   string          `db:"description"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	NetAssetClass *string         `db:"net_asset_class"`
	DepartmentID  *string         `db:"department_id"`
	CampaignID    *string         `db:"campaign_id"`
}
