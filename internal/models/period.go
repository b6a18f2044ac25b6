package models

import "time"

// Period is the accounting_periods table row.
type Period struct {
	PeriodID       string     `db:"period_id"`
	OrganizationID string     `db:"organization_id"`
	Name           string     `db:"name"`
	FiscalYear     int        `db:"fiscal_year"`
	StartDate      time.Time  `db:"start_date"`
	EndDate        time.Time  `db:"end_date"`
	Status         string     `db:"status"`
	ClosedBy       *string    `db:"closed_by"`
	ClosedAt       *time.Time `db:"closed_at"`
	AuditFields
}
