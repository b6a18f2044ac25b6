package mapping

import (
	"github.com/altruvo/fundledger/internal/core/domain"
	"github.com/altruvo/fundledger/internal/models"
)

// ToModelEntry converts a domain JournalEntry to a model JournalEntry.
// Lines are converted separately; the header row does not carry them.
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		OrganizationID:  d.OrganizationID,
		EntryNumber:     d.EntryNumber,
		PeriodID:        d.PeriodID,
		EntryDate:       d.EntryDate,
		EntryType:       string(d.EntryType),
		SourceType:      string(d.SourceType),
		SourceID:        d.SourceID,
		Memo:            d.Memo,
		Status:          string(d.Status),
		TotalDebits:     d.TotalDebits,
		TotalCredits:    d.TotalCredits,
		IsReversed:      d.IsReversed,
		ReversedByEntry: d.ReversedByEntry,
		ReversesEntry:   d.ReversesEntry,
		PostedBy:        d.PostedBy,
		PostedAt:        d.PostedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model JournalEntry to a domain JournalEntry.
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		OrganizationID:  m.OrganizationID,
		EntryNumber:     m.EntryNumber,
		PeriodID:        m.PeriodID,
		EntryDate:       m.EntryDate,
		EntryType:       domain.EntryType(m.EntryType),
		SourceType:      domain.SourceType(m.SourceType),
		SourceID:        m.SourceID,
		Memo:            m.Memo,
		Status:          domain.EntryStatus(m.Status),
		TotalDebits:     m.TotalDebits,
		TotalCredits:    m.TotalCredits,
		IsReversed:      m.IsReversed,
		ReversedByEntry: m.ReversedByEntry,
		ReversesEntry:   m.ReversesEntry,
		PostedBy:        m.PostedBy,
		PostedAt:        m.PostedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLine converts a domain JournalLine to a model JournalLine.
func ToModelLine(d domain.JournalLine) models.JournalLine {
	var class *string
	if d.NetAssetClass != nil {
		s := string(*d.NetAssetClass)
		class = &s
	}
	return models.JournalLine{
		EntryID:       d.EntryID,
		LineNumber:    d.LineNumber,
		AccountID:     d.AccountID,
		Description:   d.Description,
		Debit:         d.Debit,
		Credit:        d.Credit,
		NetAssetClass: class,
		DepartmentID:  d.DepartmentID,
		CampaignID:    d.CampaignID,
	}
}

// ToDomainLine converts a model JournalLine to a domain JournalLine.
func ToDomainLine(m models.JournalLine) domain.JournalLine {
	var class *domain.NetAssetClass
	if m.NetAssetClass != nil {
		c := domain.NetAssetClass(*m.NetAssetClass)
		class = &c
	}
	return domain.JournalLine{
		EntryID:       m.EntryID,
		LineNumber:    m.LineNumber,
		AccountID:     m.AccountID,
		Description:   m.Description,
		Debit:         m.Debit,
		Credit:        m.Credit,
		NetAssetClass: class,
		DepartmentID:  m.DepartmentID,
		CampaignID:    m.CampaignID,
	}
}

// ToDomainLineSlice converts a slice of model JournalLines to domain JournalLines.
func ToDomainLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLine(m)
	}
	return ds
}
