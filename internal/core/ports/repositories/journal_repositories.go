package repositories

import (
	"context"
	"time"

	"github.com/altruvo/fundledger/internal/core/domain"
)

// ListEntriesFilter narrows ListEntries results. Nil fields are ignored.
type ListEntriesFilter struct {
	PeriodID   *string
	Status     *domain.EntryStatus
	SourceType *domain.SourceType
}

// JournalRepository defines persistence operations for journal entries and
// their lines. Multi-row operations are atomic: either the header, all lines
// and any sequence/flag updates commit together, or nothing does.
type JournalRepository interface {
	// CreateEntry persists a header plus its lines in one transaction. It
	// locks the target period row and rejects when the period is no longer
	// open (apperrors.ErrImmutablePeriod), claims the per-(organization,
	// fiscal year) sequence and stamps the formatted entry number onto the
	// returned entry. A non-manual (source type, source id) pair that has
	// already been posted yields apperrors.ErrDuplicatePosting.
	CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error)

	// FindEntryByID retrieves an entry header.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves an entry's lines ordered by line number.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for several entries at once, keyed
	// by entry ID with lines ordered by line number.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)

	// ListEntries returns a filtered, cursor-paginated list of entry headers
	// ordered by entry date then creation time, newest first.
	ListEntries(ctx context.Context, organizationID string, filter ListEntriesFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// MarkEntryPosted transitions DRAFT -> POSTED, re-checking inside the
	// transaction that the entry's period is still open.
	MarkEntryPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) error

	// SaveReversal persists the reversing entry (with its lines, sequence
	// claim and period lock, as in CreateEntry) and flags the original as
	// reversed in the same transaction. A zero-row flag update means another
	// caller won the race: apperrors.ErrAlreadyReversed.
	SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, originalEntryID string) (*domain.JournalEntry, error)
}
