package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
)

// EntryType classifies the accounting intent of an entry.
type EntryType string

const (
	EntryStandard  EntryType = "STANDARD"
	EntryAdjusting EntryType = "ADJUSTING"
	EntryClosing   EntryType = "CLOSING"
)

// SourceType records what produced an entry. Non-manual sources carry a
// SourceID back-reference and participate in the exactly-once posting guard.
type SourceType string

const (
	SourceManual   SourceType = "MANUAL"
	SourceDonation SourceType = "DONATION"
	SourceOther    SourceType = "OTHER"
)

// JournalEntry is a balanced, multi-line financial event. The balance
// invariant sum(line debits) == sum(line credits) == TotalDebits ==
// TotalCredits holds for every entry, reversals included. Posted entries are
// immutable except for the reversal flag.
type JournalEntry struct {
	EntryID          string      `json:"entryID"`        // Primary key (UUID)
	OrganizationID   string      `json:"organizationID"` // Tenant scope
	EntryNumber      string      `json:"entryNumber"`    // e.g. "JE-2026-042", unique per org
	PeriodID         string      `json:"periodID"`       // FK -> accounting_periods
	EntryDate        time.Time   `json:"entryDate"`
	EntryType        EntryType   `json:"entryType"`
	SourceType       SourceType  `json:"sourceType"`
	SourceID         *string     `json:"sourceID,omitempty"` // Back-reference, not an ownership link
	Memo             string      `json:"memo"`
	Status           EntryStatus `json:"status"`
	TotalDebits      decimal.Decimal
	TotalCredits     decimal.Decimal
	IsReversed       bool       `json:"isReversed"`
	ReversedByEntry  *string    `json:"reversedByEntryID,omitempty"` // Set on the original
	ReversesEntry    *string    `json:"reversesEntryID,omitempty"`   // Set on the reversal
	PostedBy         *string    `json:"postedBy,omitempty"`
	PostedAt         *time.Time `json:"postedAt,omitempty"`
	Lines            []JournalLine
	AuditFields
}

// IsReversal reports whether this entry was created to undo another entry.
func (e JournalEntry) IsReversal() bool {
	return e.ReversesEntry != nil
}

// JournalLine is a single debit or credit within an entry. Exactly one of
// Debit/Credit is positive; the other is zero. Lines are exclusively owned by
// their parent entry and ordered by LineNumber.
type JournalLine struct {
	EntryID       string          `json:"entryID"`
	LineNumber    int             `json:"lineNumber"`
	AccountID     string          `json:"accountID"`
	Description   string          `json:"description"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	NetAssetClass *NetAssetClass  `json:"netAssetClass,omitempty"`
	DepartmentID  *string         `json:"departmentID,omitempty"` // Cost-center reference
	CampaignID    *string         `json:"campaignID,omitempty"`   // Cost-center reference
}
