package models

import (
	"time"
)

// GeneratedStatement is the generated_statements table row. Append-only.
type GeneratedStatement struct {
	StatementID    string    `db:"statement_id"`
	OrganizationID string    `db:"organization_id"`
	StatementType  string    `db:"statement_type"`
	PeriodStart    time.Time `db:"period_start"`
	PeriodEnd      time.Time `db:"period_end"`
	Body           []byte    `db:"body"` // JSONB snapshot of the computed document
	GeneratedBy    string    `db:"generated_by"`
	GeneratedAt    time.Time `db:"generated_at"`
}

// StatementTemplate is the statement_templates table row. Sections are stored
// as a JSONB array.
type StatementTemplate struct {
	TemplateID     string  `db:"template_id"`
	OrganizationID *string `db:"organization_id"` // NULL for global templates
	StatementType  string  `db:"statement_type"`
	Name           string  `db:"name"`
	Sections       []byte  `db:"sections"`
	AuditFields
}
