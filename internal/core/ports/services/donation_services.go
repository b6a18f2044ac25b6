package services

import (
	"context"

	"github.com/altruvo/fundledger/internal/core/domain"
	"github.com/altruvo/fundledger/internal/dto"
)

// DonationSvcFacade bridges settled donation facts into journal entries.
type DonationSvcFacade interface {
	// AutoPostDonations posts each unposted donation in scope as its own
	// balanced, immediately-posted entry. Individual failures are collected
	// in the summary; configuration errors abort the whole run.
	AutoPostDonations(ctx context.Context, organizationID string, req dto.AutoPostRequest, actorUserID string) (*dto.AutoPostSummary, error)

	// IngestDonation records an inbound donation fact idempotently.
	IngestDonation(ctx context.Context, donation domain.Donation) error
}
