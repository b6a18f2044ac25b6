package dto

import (
	"time"

	"github.com/altruvo/fundledger/internal/core/domain"
)

// CreatePeriodRequest is the payload for opening a new accounting period.
type CreatePeriodRequest struct {
	Name       string    `json:"name"`
	FiscalYear int       `json:"fiscalYear" binding:"required"`
	StartDate  time.Time `json:"startDate" binding:"required"`
	EndDate    time.Time `json:"endDate" binding:"required"`
}

// PeriodResponse is the API representation of an accounting period.
type PeriodResponse struct {
	PeriodID       string     `json:"periodID"`
	OrganizationID string     `json:"organizationID"`
	Name           string     `json:"name"`
	FiscalYear     int        `json:"fiscalYear"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        time.Time  `json:"endDate"`
	Status         string     `json:"status"`
	ClosedBy       *string    `json:"closedBy,omitempty"`
	ClosedAt       *time.Time `json:"closedAt,omitempty"`
}

// ToPeriodResponse converts a domain.AccountingPeriod to its API representation.
func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:       p.PeriodID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		FiscalYear:     p.FiscalYear,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Status:         string(p.Status),
		ClosedBy:       p.ClosedBy,
		ClosedAt:       p.ClosedAt,
	}
}

// ToPeriodResponses converts a slice of domain periods.
func ToPeriodResponses(periods []domain.AccountingPeriod) []PeriodResponse {
	responses := make([]PeriodResponse, len(periods))
	for i := range periods {
		responses[i] = ToPeriodResponse(&periods[i])
	}
	return responses
}
