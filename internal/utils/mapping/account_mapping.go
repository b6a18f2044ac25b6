package mapping

import (
	"github.com/altruvo/fundledger/internal/core/domain"
	"github.com/altruvo/fundledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	var class *string
	if d.NetAssetClass != nil {
		s := string(*d.NetAssetClass)
		class = &s
	}
	return models.Account{
		AccountID:        d.AccountID,
		OrganizationID:   d.OrganizationID,
		AccountNumber:    d.AccountNumber,
		Name:             d.Name,
		AccountType:      models.AccountType(d.AccountType),
		Category:         d.Category,
		StatementType:    models.StatementType(d.StatementType),
		StatementSection: d.StatementSection,
		DisplayOrder:     d.DisplayOrder,
		NormalBalance:    models.BalanceSide(d.NormalBalance),
		NetAssetClass:    class,
		Description:      d.Description,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	var class *domain.NetAssetClass
	if m.NetAssetClass != nil {
		c := domain.NetAssetClass(*m.NetAssetClass)
		class = &c
	}
	return domain.Account{
		AccountID:        m.AccountID,
		OrganizationID:   m.OrganizationID,
		AccountNumber:    m.AccountNumber,
		Name:             m.Name,
		AccountType:      domain.AccountType(m.AccountType),
		Category:         m.Category,
		StatementType:    domain.StatementType(m.StatementType),
		StatementSection: m.StatementSection,
		DisplayOrder:     m.DisplayOrder,
		NormalBalance:    domain.BalanceSide(m.NormalBalance),
		NetAssetClass:    class,
		Description:      m.Description,
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
