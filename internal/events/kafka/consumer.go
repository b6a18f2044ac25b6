package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/altruvo/fundledger/internal/core/domain"
	portssvc "github.com/altruvo/fundledger/internal/core/ports/services"
)

// donationSettledEvent is the payload the payment pipeline publishes when a
// donation finishes settling.
type donationSettledEvent struct {
	DonationID     string          `json:"donationID"`
	OrganizationID string          `json:"organizationID"`
	Amount         decimal.Decimal `json:"amount"`
	FeeAmount      decimal.Decimal `json:"feeAmount"`
	OccurredAt     time.Time       `json:"occurredAt"`
}

// DonationConsumer reads donation-settled events and records them as ledger
// donation facts. Ingestion is idempotent, so at-least-once delivery is fine.
type DonationConsumer struct {
	reader      *kafka.Reader
	donationSvc portssvc.DonationSvcFacade
	logger      *slog.Logger
}

// NewDonationConsumer creates a consumer bound to the donations topic.
func NewDonationConsumer(brokers []string, topic, groupID string, donationSvc portssvc.DonationSvcFacade, logger *slog.Logger) *DonationConsumer {
	return &DonationConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
		donationSvc: donationSvc,
		logger:      logger,
	}
}

// Run consumes until the context is cancelled. A malformed or rejected event
// is logged and skipped; its offset is still committed so the partition does
// not wedge on one bad message.
func (c *DonationConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		if err := c.handle(ctx, msg.Value); err != nil {
			c.logger.Warn("Skipping donation event",
				slog.String("error", err.Error()),
				slog.Int64("offset", msg.Offset))
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

func (c *DonationConsumer) handle(ctx context.Context, payload []byte) error {
	var event donationSettledEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	donation := domain.Donation{
		DonationID:     event.DonationID,
		OrganizationID: event.OrganizationID,
		Amount:         event.Amount,
		FeeAmount:      event.FeeAmount,
		OccurredAt:     event.OccurredAt,
		ReceivedAt:     time.Now().UTC(),
	}
	if err := c.donationSvc.IngestDonation(ctx, donation); err != nil {
		return err
	}

	c.logger.Info("Donation fact ingested from event stream",
		slog.String("donation_id", event.DonationID),
		slog.String("organization_id", event.OrganizationID))
	return nil
}

// Close releases the underlying reader.
func (c *DonationConsumer) Close() error {
	return c.reader.Close()
}
