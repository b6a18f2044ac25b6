package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation is the donations fact table row. The ledger treats these rows as
// read-only; only the ingestion path inserts them.
type Donation struct {
	DonationID     string          `db:"donation_id"`
	OrganizationID string          `db:"organization_id"`
	Amount         decimal.Decimal `db:"amount"`
	FeeAmount      decimal.Decimal `db:"fee_amount"`
	OccurredAt     time.Time       `db:"occurred_at"`
	ReceivedAt     time.Time       `db:"received_at"`
}
