package dto

import (
	"time"

	"github.com/altruvo/fundledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one debit or credit line of a new entry. Exactly one of
// debit/credit must be positive.
type EntryLineRequest struct {
	AccountID     string          `json:"accountID" binding:"required"`
	Description   string          `json:"description"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	NetAssetClass *string         `json:"netAssetClass" binding:"omitempty,oneof=UNRESTRICTED TEMPORARILY_RESTRICTED PERMANENTLY_RESTRICTED"`
	DepartmentID  *string         `json:"departmentID"`
	CampaignID    *string         `json:"campaignID"`
}

// CreateEntryRequest is the payload for creating a draft journal entry.
type CreateEntryRequest struct {
	EntryDate time.Time          `json:"entryDate" binding:"required"`
	EntryType string             `json:"entryType" binding:"omitempty,oneof=STANDARD ADJUSTING CLOSING"`
	Memo      string             `json:"memo" binding:"required"`
	Lines     []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ReverseEntryRequest carries the reason recorded on the reversal memo.
type ReverseEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListEntriesParams narrows and paginates entry listings.
type ListEntriesParams struct {
	PeriodID   *string `form:"periodID"`
	Status     *string `form:"status" binding:"omitempty,oneof=DRAFT POSTED"`
	SourceType *string `form:"sourceType" binding:"omitempty,oneof=MANUAL DONATION OTHER"`
	Limit      int     `form:"limit"`
	NextToken  *string `form:"nextToken"`
}

// EntryLineResponse is the API representation of a journal line.
type EntryLineResponse struct {
	LineNumber    int             `json:"lineNumber"`
	AccountID     string          `json:"accountID"`
	Description   string          `json:"description"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	NetAssetClass *string         `json:"netAssetClass,omitempty"`
	DepartmentID  *string         `json:"departmentID,omitempty"`
	CampaignID    *string         `json:"campaignID,omitempty"`
}

// EntryResponse is the API representation of a journal entry with its lines.
type EntryResponse struct {
	EntryID        string              `json:"entryID"`
	OrganizationID string              `json:"organizationID"`
	EntryNumber    string              `json:"entryNumber"`
	PeriodID       string              `json:"periodID"`
	EntryDate      time.Time           `json:"entryDate"`
	EntryType      string              `json:"entryType"`
	SourceType     string              `json:"sourceType"`
	SourceID       *string             `json:"sourceID,omitempty"`
	Memo           string              `json:"memo"`
	Status         string              `json:"status"`
	TotalDebits    decimal.Decimal     `json:"totalDebits"`
	TotalCredits   decimal.Decimal     `json:"totalCredits"`
	IsReversed     bool                `json:"isReversed"`
	ReversedBy     *string             `json:"reversedByEntryID,omitempty"`
	Reverses       *string             `json:"reversesEntryID,omitempty"`
	PostedBy       *string             `json:"postedBy,omitempty"`
	PostedAt       *time.Time          `json:"postedAt,omitempty"`
	Lines          []EntryLineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse wraps a page of entries plus the pagination cursor.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain.JournalLine.
func ToEntryLineResponse(l *domain.JournalLine) EntryLineResponse {
	var class *string
	if l.NetAssetClass != nil {
		s := string(*l.NetAssetClass)
		class = &s
	}
	return EntryLineResponse{
		LineNumber:    l.LineNumber,
		AccountID:     l.AccountID,
		Description:   l.Description,
		Debit:         l.Debit,
		Credit:        l.Credit,
		NetAssetClass: class,
		DepartmentID:  l.DepartmentID,
		CampaignID:    l.CampaignID,
	}
}

// ToEntryResponse converts a domain.JournalEntry with its lines.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i := range e.Lines {
		lines[i] = ToEntryLineResponse(&e.Lines[i])
	}
	return EntryResponse{
		EntryID:        e.EntryID,
		OrganizationID: e.OrganizationID,
		EntryNumber:    e.EntryNumber,
		PeriodID:       e.PeriodID,
		EntryDate:      e.EntryDate,
		EntryType:      string(e.EntryType),
		SourceType:     string(e.SourceType),
		SourceID:       e.SourceID,
		Memo:           e.Memo,
		Status:         string(e.Status),
		TotalDebits:    e.TotalDebits,
		TotalCredits:   e.TotalCredits,
		IsReversed:     e.IsReversed,
		ReversedBy:     e.ReversedByEntry,
		Reverses:       e.ReversesEntry,
		PostedBy:       e.PostedBy,
		PostedAt:       e.PostedAt,
		Lines:          lines,
	}
}
