package accounting

import (
	"fmt"

	"github.com/altruvo/fundledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateLine checks that exactly one of debit/credit is positive and the
// other is zero. Standard practice: a line is one side of the entry, never both.
func ValidateLine(line domain.JournalLine) error {
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return fmt.Errorf("line %d: amounts must not be negative", line.LineNumber)
	}
	debitSet := line.Debit.IsPositive()
	creditSet := line.Credit.IsPositive()
	if debitSet == creditSet {
		return fmt.Errorf("line %d: exactly one of debit or credit must be positive", line.LineNumber)
	}
	return nil
}

// EntryTotals sums the debit and credit columns across the given lines.
func EntryTotals(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// ValidateEntryBalance checks every line and the double-entry invariant
// sum(debits) == sum(credits).
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("entry must have at least two lines")
	}
	for _, line := range lines {
		if err := ValidateLine(line); err != nil {
			return err
		}
	}
	debits, credits := EntryTotals(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("entry does not balance: debits sum is %s and credits sum is %s",
			debits.String(), credits.String())
	}
	return nil
}

// SignedEffect returns the line's effect on an account's balance, signed
// toward the account's normal side: a debit to a debit-normal account is
// positive, a credit to it negative, and vice versa for credit-normal accounts.
func SignedEffect(line domain.JournalLine, normal domain.BalanceSide) decimal.Decimal {
	net := line.Debit.Sub(line.Credit)
	if normal == domain.CreditSide {
		return net.Neg()
	}
	return net
}

// MirrorLine produces the reversal counterpart of a line: debit and credit
// swapped, everything else preserved.
func MirrorLine(line domain.JournalLine) domain.JournalLine {
	mirrored := line
	mirrored.Debit = line.Credit
	mirrored.Credit = line.Debit
	return mirrored
}
