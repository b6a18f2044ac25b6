package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/altruvo/fundledger/internal/core/domain"
)

func TestAccountingPeriod_Contains(t *testing.T) {
	period := domain.AccountingPeriod{
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"inside window", time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), true},
		{"start boundary", period.StartDate, true},
		{"end boundary", period.EndDate, true},
		{"before window", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), false},
		{"after window", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, period.Contains(tt.date))
		})
	}
}

func TestAccountBalance_Net(t *testing.T) {
	tests := []struct {
		name    string
		balance domain.AccountBalance
		want    string
	}{
		{
			name: "debit-normal account with debit balance",
			balance: domain.AccountBalance{
				NormalBalance: domain.DebitSide,
				TotalDebits:   decimal.RequireFromString("1000.00"),
				TotalCredits:  decimal.RequireFromString("150.00"),
			},
			want: "850.00",
		},
		{
			name: "credit-normal account with credit balance",
			balance: domain.AccountBalance{
				NormalBalance: domain.CreditSide,
				TotalDebits:   decimal.RequireFromString("0"),
				TotalCredits:  decimal.RequireFromString("1000.00"),
			},
			want: "1000.00",
		},
		{
			name: "debit-normal account driven negative",
			balance: domain.AccountBalance{
				NormalBalance: domain.DebitSide,
				TotalDebits:   decimal.RequireFromString("100.00"),
				TotalCredits:  decimal.RequireFromString("250.00"),
			},
			want: "-150.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.balance.Net().Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", tt.balance.Net(), tt.want)
		})
	}
}
