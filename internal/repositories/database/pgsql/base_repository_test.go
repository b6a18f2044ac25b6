package pgsql

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_journal_entries_source"}

	assert.True(t, isUniqueViolation(uniqueErr, ""))
	assert.True(t, isUniqueViolation(uniqueErr, "uq_journal_entries_source"))
	assert.False(t, isUniqueViolation(uniqueErr, "uq_accounts_org_number"))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert failed: %w", uniqueErr), ""))
	assert.False(t, isUniqueViolation(assert.AnError, ""))
}

func TestIsExclusionViolation(t *testing.T) {
	exclusionErr := &pgconn.PgError{Code: "23P01", ConstraintName: periodOverlapConstraint}

	assert.True(t, isExclusionViolation(exclusionErr, ""))
	assert.True(t, isExclusionViolation(exclusionErr, periodOverlapConstraint))
	assert.False(t, isExclusionViolation(exclusionErr, "some_other_constraint"))
	assert.True(t, isExclusionViolation(fmt.Errorf("insert failed: %w", exclusionErr), periodOverlapConstraint))
	assert.False(t, isExclusionViolation(&pgconn.PgError{Code: "23505"}, ""))
	assert.False(t, isExclusionViolation(assert.AnError, ""))
}
