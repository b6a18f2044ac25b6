package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation is a read-only, immutable-once-settled fact from the payment
// pipeline. The ledger never mutates donations; it only consumes them when
// auto-posting revenue.
type Donation struct {
	DonationID     string          `json:"donationID"`
	OrganizationID string          `json:"organizationID"`
	Amount         decimal.Decimal `json:"amount"`    // Gross donation amount
	FeeAmount      decimal.Decimal `json:"feeAmount"` // Payment-processor fee withheld
	OccurredAt     time.Time       `json:"occurredAt"`
	ReceivedAt     time.Time       `json:"receivedAt"` // When the fact reached the ledger
}
