package mapping

import (
	"github.com/altruvo/fundledger/internal/core/domain"
	"github.com/altruvo/fundledger/internal/models"
)

// ToDomainDonation converts a model Donation to a domain Donation.
func ToDomainDonation(m models.Donation) domain.Donation {
	return domain.Donation{
		DonationID:     m.DonationID,
		OrganizationID: m.OrganizationID,
		Amount:         m.Amount,
		FeeAmount:      m.FeeAmount,
		OccurredAt:     m.OccurredAt,
		ReceivedAt:     m.ReceivedAt,
	}
}

// ToModelDonation converts a domain Donation to a model Donation.
func ToModelDonation(d domain.Donation) models.Donation {
	return models.Donation{
		DonationID:     d.DonationID,
		OrganizationID: d.OrganizationID,
		Amount:         d.Amount,
		FeeAmount:      d.FeeAmount,
		OccurredAt:     d.OccurredAt,
		ReceivedAt:     d.ReceivedAt,
	}
}
