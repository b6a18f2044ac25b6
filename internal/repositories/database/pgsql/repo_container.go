package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/altruvo/fundledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		PeriodRepo:    newPgxPeriodRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		DonationRepo:  newPgxDonationRepository(dbPool),
		StatementRepo: newPgxStatementRepository(dbPool),
	}
}
