package domain

import "time"

// PeriodStatus is the lifecycle state of an accounting period.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// AccountingPeriod is a bounded fiscal window. Only OPEN periods accept new
// postings; the open->closed transition is terminal.
type AccountingPeriod struct {
	PeriodID       string       `json:"periodID"`
	OrganizationID string       `json:"organizationID"`
	Name           string       `json:"name"` // e.g. "FY2026 Q1"
	FiscalYear     int          `json:"fiscalYear"`
	StartDate      time.Time    `json:"startDate"`
	EndDate        time.Time    `json:"endDate"`
	Status         PeriodStatus `json:"status"`
	ClosedBy       *string      `json:"closedBy,omitempty"`
	ClosedAt       *time.Time   `json:"closedAt,omitempty"`
	AuditFields
}

// Contains reports whether the given date falls inside the period window,
// boundaries included.
func (p AccountingPeriod) Contains(t time.Time) bool {
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}
