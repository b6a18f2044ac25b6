package services

import (
	portsrepo "github.com/altruvo/fundledger/internal/core/ports/repositories"
	portssvc "github.com/altruvo/fundledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Period = NewPeriodService(repos.PeriodRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.PeriodRepo, container.Account)
	container.Donation = NewDonationService(repos.DonationRepo, repos.JournalRepo, repos.AccountRepo, repos.PeriodRepo)
	container.Statement = NewStatementService(repos.StatementRepo)

	return container
}
