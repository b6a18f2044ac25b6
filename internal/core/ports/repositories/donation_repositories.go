package repositories

import (
	"context"
	"time"

	"github.com/altruvo/fundledger/internal/core/domain"
)

// DonationRepository exposes the inbound donation fact feed. Facts are
// immutable once settled; SaveDonation exists only for the ingestion path.
type DonationRepository interface {
	// SaveDonation inserts a donation fact idempotently: replaying the same
	// donation ID is a no-op.
	SaveDonation(ctx context.Context, donation domain.Donation) error

	// FindDonationByID retrieves a single donation fact.
	FindDonationByID(ctx context.Context, donationID string) (*domain.Donation, error)

	// ListUnpostedDonations returns donations of the organization that
	// occurred within [from, to] and have no posted journal entry with
	// source type DONATION referencing them, ordered by occurrence time.
	ListUnpostedDonations(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Donation, error)
}
