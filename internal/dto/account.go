package dto

import (
	"github.com/altruvo/fundledger/internal/core/domain"
)

// CreateAccountRequest is the payload for creating one chart-of-accounts entry.
type CreateAccountRequest struct {
	AccountNumber    string  `json:"accountNumber" binding:"required"`
	Name             string  `json:"name" binding:"required"`
	AccountType      string  `json:"accountType" binding:"required,oneof=ASSET LIABILITY NET_ASSET REVENUE EXPENSE"`
	Category         string  `json:"category"`
	StatementSection string  `json:"statementSection"`
	DisplayOrder     int     `json:"displayOrder"`
	NetAssetClass    *string `json:"netAssetClass" binding:"omitempty,oneof=UNRESTRICTED TEMPORARILY_RESTRICTED PERMANENTLY_RESTRICTED"`
	Description      string  `json:"description"`
}

// UpdateAccountRequest carries the mutable account attributes. Account type
// and normal balance are fixed at creation and deliberately absent here.
type UpdateAccountRequest struct {
	Name             *string `json:"name"`
	Category         *string `json:"category"`
	StatementSection *string `json:"statementSection"`
	DisplayOrder     *int    `json:"displayOrder"`
	Description      *string `json:"description"`
}

// SeedChartRequest selects a canned chart of accounts variant.
type SeedChartRequest struct {
	OrgType string `json:"orgType" binding:"required,oneof=NONPROFIT"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID        string  `json:"accountID"`
	OrganizationID   string  `json:"organizationID"`
	AccountNumber    string  `json:"accountNumber"`
	Name             string  `json:"name"`
	AccountType      string  `json:"accountType"`
	Category         string  `json:"category"`
	StatementType    string  `json:"statementType"`
	StatementSection string  `json:"statementSection"`
	DisplayOrder     int     `json:"displayOrder"`
	NormalBalance    string  `json:"normalBalance"`
	NetAssetClass    *string `json:"netAssetClass,omitempty"`
	Description      string  `json:"description"`
	IsActive         bool    `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	var class *string
	if a.NetAssetClass != nil {
		s := string(*a.NetAssetClass)
		class = &s
	}
	return AccountResponse{
		AccountID:        a.AccountID,
		OrganizationID:   a.OrganizationID,
		AccountNumber:    a.AccountNumber,
		Name:             a.Name,
		AccountType:      string(a.AccountType),
		Category:         a.Category,
		StatementType:    string(a.StatementType),
		StatementSection: a.StatementSection,
		DisplayOrder:     a.DisplayOrder,
		NormalBalance:    string(a.NormalBalance),
		NetAssetClass:    class,
		Description:      a.Description,
		IsActive:         a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
