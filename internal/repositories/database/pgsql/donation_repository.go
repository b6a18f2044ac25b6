package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altruvo/fundledger/internal/apperrors"
	"github.com/altruvo/fundledger/internal/core/domain"
	portsrepo "github.com/altruvo/fundledger/internal/core/ports/repositories"
	"github.com/altruvo/fundledger/internal/models"
	"github.com/altruvo/fundledger/internal/utils/mapping"
)

type PgxDonationRepository struct {
	BaseRepository
}

// newPgxDonationRepository creates a new repository for donation facts.
func newPgxDonationRepository(pool *pgxpool.Pool) portsrepo.DonationRepository {
	return &PgxDonationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DonationRepository = (*PgxDonationRepository)(nil)

const donationColumns = `
	donation_id, organization_id, amount, fee_amount, occurred_at, received_at
`

func scanDonation(row pgx.Row) (models.Donation, error) {
	var m models.Donation
	err := row.Scan(
		&m.DonationID, &m.OrganizationID, &m.Amount, &m.FeeAmount,
		&m.OccurredAt, &m.ReceivedAt,
	)
	return m, err
}

// SaveDonation inserts a donation fact. Replays of the same donation ID are
// absorbed by the conflict clause, which is what makes at-least-once delivery
// from the payment pipeline safe.
func (r *PgxDonationRepository) SaveDonation(ctx context.Context, donation domain.Donation) error {
	m := mapping.ToModelDonation(donation)
	query := `
		INSERT INTO donations (` + donationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (donation_id) DO NOTHING
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DonationID, m.OrganizationID, m.Amount, m.FeeAmount, m.OccurredAt, m.ReceivedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert donation "+m.DonationID, err)
	}
	return nil
}

// FindDonationByID retrieves a single donation fact.
func (r *PgxDonationRepository) FindDonationByID(ctx context.Context, donationID string) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE donation_id = $1`
	m, err := scanDonation(r.Pool.QueryRow(ctx, query, donationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query donation "+donationID, err)
	}
	d := mapping.ToDomainDonation(m)
	return &d, nil
}

// ListUnpostedDonations returns donations in the window that no journal entry
// with source type DONATION references yet, oldest first.
func (r *PgxDonationRepository) ListUnpostedDonations(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Donation, error) {
	query := `
		SELECT ` + donationColumns + `
		FROM donations d
		WHERE d.organization_id = $1
		  AND d.occurred_at >= $2 AND d.occurred_at <= $3
		  AND NOT EXISTS (
			SELECT 1 FROM journal_entries e
			WHERE e.organization_id = d.organization_id
			  AND e.source_type = 'DONATION'
			  AND e.source_id = d.donation_id
		  )
		ORDER BY d.occurred_at, d.donation_id
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list unposted donations", err)
	}
	defer rows.Close()

	donations := make([]domain.Donation, 0)
	for rows.Next() {
		m, err := scanDonation(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan donation row", err)
		}
		donations = append(donations, mapping.ToDomainDonation(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating donation rows", err)
	}
	return donations, nil
}
