package services

import (
	"context"

	"github.com/altruvo/fundledger/internal/core/domain"
	"github.com/altruvo/fundledger/internal/dto"
)

// JournalSvcFacade is the journal entry engine surface.
type JournalSvcFacade interface {
	// CreateEntry validates and persists a balanced draft entry.
	CreateEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// PostEntry transitions a draft to posted while its period is still open.
	PostEntry(ctx context.Context, organizationID, entryID string, approverUserID string) (*domain.JournalEntry, error)

	// ReverseEntry creates and posts the mirror entry of a posted,
	// not-yet-reversed entry in the current open period.
	ReverseEntry(ctx context.Context, organizationID, entryID string, actorUserID, reason string) (*domain.JournalEntry, error)

	// GetEntryByID returns an entry with its lines ordered by line number.
	GetEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error)

	// ListEntries returns a filtered, paginated projection of entries with lines.
	ListEntries(ctx context.Context, organizationID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
