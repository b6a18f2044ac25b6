package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AutoPostRequest scopes an automatic posting run. PeriodID selects the
// target period explicitly; otherwise the current open period is used. The
// date range defaults to the target period's window.
type AutoPostRequest struct {
	PeriodID *string    `json:"periodID"`
	FromDate *time.Time `json:"fromDate"`
	ToDate   *time.Time `json:"toDate"`
}

// IngestDonationRequest records a settled donation fact by hand, mirroring
// what the event stream delivers. Replays of the same donation ID are no-ops.
type IngestDonationRequest struct {
	DonationID string          `json:"donationID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	FeeAmount  decimal.Decimal `json:"feeAmount"`
	OccurredAt time.Time       `json:"occurredAt" binding:"required"`
}

// AutoPostError records a single donation that could not be posted during a
// run that otherwise continued.
type AutoPostError struct {
	DonationID string `json:"donationID"`
	Error      string `json:"error"`
}

// AutoPostSummary reports the outcome of an auto-posting run.
type AutoPostSummary struct {
	EntriesCreated int             `json:"entriesCreated"`
	Skipped        int             `json:"skipped"` // Already posted (race-detected duplicates)
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Errors         []AutoPostError `json:"errors"`
}
