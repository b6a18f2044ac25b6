package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altruvo/fundledger/internal/apperrors"
	"github.com/altruvo/fundledger/internal/core/domain"
	portsrepo "github.com/altruvo/fundledger/internal/core/ports/repositories"
	"github.com/altruvo/fundledger/internal/models"
	"github.com/altruvo/fundledger/internal/utils/mapping"
	"github.com/altruvo/fundledger/internal/utils/pagination"
)

const (
	defaultEntryPageSize = 50
	maxEntryPageSize     = 100

	// Named in the migrations; used to turn unique violations into the
	// right sentinel.
	sourcePostingConstraint = "uq_journal_entries_source"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

const entryColumns = `
	entry_id, organization_id, entry_number, period_id, entry_date, entry_type,
	source_type, source_id, memo, status, total_debits, total_credits,
	is_reversed, reversed_by_entry_id, reverses_entry_id, posted_by, posted_at,
	created_at, created_by, last_updated_at, last_updated_by
`

const lineColumns = `
	entry_id, line_number, account_id, description, debit, credit,
	net_asset_class, department_id, campaign_id
`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.OrganizationID, &m.EntryNumber, &m.PeriodID, &m.EntryDate,
		&m.EntryType, &m.SourceType, &m.SourceID, &m.Memo, &m.Status,
		&m.TotalDebits, &m.TotalCredits, &m.IsReversed, &m.ReversedByEntry,
		&m.ReversesEntry, &m.PostedBy, &m.PostedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.EntryID, &m.LineNumber, &m.AccountID, &m.Description, &m.Debit,
		&m.Credit, &m.NetAssetClass, &m.DepartmentID, &m.CampaignID,
	)
	return m, err
}

// lockOpenPeriod takes a row lock on the target period, serializing every
// concurrent posting and close against it, and returns its fiscal year.
func lockOpenPeriod(ctx context.Context, tx pgx.Tx, periodID string) (int, error) {
	var (
		fiscalYear int
		status     string
	)
	query := `SELECT fiscal_year, status FROM accounting_periods WHERE period_id = $1 FOR UPDATE`
	if err := tx.QueryRow(ctx, query, periodID).Scan(&fiscalYear, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, apperrors.NewAppError(500, "failed to lock period "+periodID, err)
	}
	if status != string(domain.PeriodOpen) {
		return 0, apperrors.ErrImmutablePeriod
	}
	return fiscalYear, nil
}

// claimEntryNumber atomically advances the per-(organization, fiscal year)
// sequence and formats the entry number. The upsert serializes concurrent
// claims on the sequence row, so no two entries ever share a number.
func claimEntryNumber(ctx context.Context, tx pgx.Tx, organizationID string, fiscalYear int) (string, error) {
	query := `
		INSERT INTO entry_sequences (organization_id, fiscal_year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (organization_id, fiscal_year)
		DO UPDATE SET last_value = entry_sequences.last_value + 1
		RETURNING last_value
	`
	var seq int64
	if err := tx.QueryRow(ctx, query, organizationID, fiscalYear).Scan(&seq); err != nil {
		return "", apperrors.NewAppError(500, "failed to claim entry sequence", err)
	}
	return fmt.Sprintf("JE-%d-%03d", fiscalYear, seq), nil
}

// insertEntryTx writes one header row within the transaction.
func insertEntryTx(ctx context.Context, tx pgx.Tx, m models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID, m.OrganizationID, m.EntryNumber, m.PeriodID, m.EntryDate,
		m.EntryType, m.SourceType, m.SourceID, m.Memo, m.Status,
		m.TotalDebits, m.TotalCredits, m.IsReversed, m.ReversedByEntry,
		m.ReversesEntry, m.PostedBy, m.PostedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, sourcePostingConstraint) {
			return apperrors.ErrDuplicatePosting
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}
	return nil
}

// insertLinesTx batch-inserts an entry's lines within the transaction.
func insertLinesTx(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, line := range lines {
		m := mapping.ToModelLine(line)
		batch.Queue(query,
			m.EntryID, m.LineNumber, m.AccountID, m.Description, m.Debit,
			m.Credit, m.NetAssetClass, m.DepartmentID, m.CampaignID,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert journal line", err)
		}
	}
	return nil
}

// CreateEntry persists a header plus its lines in one transaction. The target
// period row is locked for the duration, the entry number is claimed from the
// per-year sequence, and a non-manual source that has already been posted
// surfaces as ErrDuplicatePosting.
func (r *PgxJournalRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	fiscalYear, err := lockOpenPeriod(ctx, tx, entry.PeriodID)
	if err != nil {
		return nil, err
	}

	entryNumber, err := claimEntryNumber(ctx, tx, entry.OrganizationID, fiscalYear)
	if err != nil {
		return nil, err
	}
	entry.EntryNumber = entryNumber

	if err := insertEntryTx(ctx, tx, mapping.ToModelEntry(entry)); err != nil {
		return nil, err
	}
	if err := insertLinesTx(ctx, tx, lines); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindEntryByID retrieves an entry header.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query entry "+entryID, err)
	}
	d := mapping.ToDomainEntry(m)
	return &d, nil
}

// FindLinesByEntryID retrieves an entry's lines in line-number order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY line_number`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := make([]domain.JournalLine, 0)
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row", err)
		}
		lines = append(lines, mapping.ToDomainLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating line rows", err)
	}
	return lines, nil
}

// FindLinesByEntryIDs retrieves lines for several entries at once, keyed by
// entry ID with lines in line-number order.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	result := make(map[string][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_number`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entries", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row", err)
		}
		result[m.EntryID] = append(result[m.EntryID], mapping.ToDomainLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating line rows", err)
	}
	return result, nil
}

// ListEntries returns a filtered page of entry headers in (entry_date,
// created_at) descending order with cursor pagination.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, organizationID string, filter portsrepo.ListEntriesFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = defaultEntryPageSize
	}
	if limit > maxEntryPageSize {
		limit = maxEntryPageSize
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE organization_id = $1`
	args := []any{organizationID}

	if filter.PeriodID != nil {
		args = append(args, *filter.PeriodID)
		query += fmt.Sprintf(" AND period_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.SourceType != nil {
		args = append(args, string(*filter.SourceType))
		query += fmt.Sprintf(" AND source_type = $%d", len(args))
	}

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, entryDate, createdAt)
		query += fmt.Sprintf(" AND (entry_date, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	// Fetch one extra row to learn whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY entry_date DESC, created_at DESC LIMIT $%d", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, limit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, mapping.ToDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed iterating entry rows", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}

// MarkEntryPosted transitions DRAFT -> POSTED, re-checking inside the
// transaction that the entry's period is still open.
func (r *PgxJournalRepository) MarkEntryPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var periodID string
	lookup := `SELECT period_id FROM journal_entries WHERE entry_id = $1`
	if err := tx.QueryRow(ctx, lookup, entryID).Scan(&periodID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to query entry "+entryID, err)
	}

	if _, err := lockOpenPeriod(ctx, tx, periodID); err != nil {
		return err
	}

	update := `
		UPDATE journal_entries
		SET status = 'POSTED', posted_by = $2, posted_at = $3,
		    last_updated_at = $3, last_updated_by = $2
		WHERE entry_id = $1 AND status = 'DRAFT'
	`
	tag, err := tx.Exec(ctx, update, entryID, postedBy, postedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to post entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	return r.Commit(ctx, tx)
}

// SaveReversal persists the reversing entry and flags the original as
// reversed in the same transaction. A zero-row flag update means another
// caller already reversed the original.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, originalEntryID string) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	fiscalYear, err := lockOpenPeriod(ctx, tx, reversal.PeriodID)
	if err != nil {
		return nil, err
	}

	entryNumber, err := claimEntryNumber(ctx, tx, reversal.OrganizationID, fiscalYear)
	if err != nil {
		return nil, err
	}
	reversal.EntryNumber = entryNumber

	if err := insertEntryTx(ctx, tx, mapping.ToModelEntry(reversal)); err != nil {
		return nil, err
	}
	if err := insertLinesTx(ctx, tx, lines); err != nil {
		return nil, err
	}

	flag := `
		UPDATE journal_entries
		SET is_reversed = TRUE, reversed_by_entry_id = $2,
		    last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1 AND is_reversed = FALSE
	`
	tag, err := tx.Exec(ctx, flag, originalEntryID, reversal.EntryID, reversal.CreatedAt, reversal.CreatedBy)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to flag entry "+originalEntryID+" as reversed", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrAlreadyReversed
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &reversal, nil
}
