package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/altruvo/fundledger/internal/core/domain"
)

func stringPtr(s string) *string {
	return &s
}

func TestJournalEntry_IsReversal(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.JournalEntry
		want  bool
	}{
		{
			name:  "plain entry",
			entry: domain.JournalEntry{},
			want:  false,
		},
		{
			name:  "reversal entry",
			entry: domain.JournalEntry{ReversesEntry: stringPtr("entry-1")},
			want:  true,
		},
		{
			name:  "reversed original is not itself a reversal",
			entry: domain.JournalEntry{IsReversed: true, ReversedByEntry: stringPtr("entry-2")},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.IsReversal())
		})
	}
}

func TestNormalBalanceFor(t *testing.T) {
	assert.Equal(t, domain.DebitSide, domain.NormalBalanceFor(domain.Asset))
	assert.Equal(t, domain.DebitSide, domain.NormalBalanceFor(domain.Expense))
	assert.Equal(t, domain.CreditSide, domain.NormalBalanceFor(domain.Liability))
	assert.Equal(t, domain.CreditSide, domain.NormalBalanceFor(domain.NetAsset))
	assert.Equal(t, domain.CreditSide, domain.NormalBalanceFor(domain.Revenue))
}
