package mapping

import (
	"github.com/altruvo/fundledger/internal/core/domain"
	"github.com/altruvo/fundledger/internal/models"
)

// ToModelPeriod converts a domain AccountingPeriod to a model Period.
func ToModelPeriod(d domain.AccountingPeriod) models.Period {
	return models.Period{
		PeriodID:       d.PeriodID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		FiscalYear:     d.FiscalYear,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		Status:         string(d.Status),
		ClosedBy:       d.ClosedBy,
		ClosedAt:       d.ClosedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model Period to a domain AccountingPeriod.
func ToDomainPeriod(m models.Period) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:       m.PeriodID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		FiscalYear:     m.FiscalYear,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		Status:         domain.PeriodStatus(m.Status),
		ClosedBy:       m.ClosedBy,
		ClosedAt:       m.ClosedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
