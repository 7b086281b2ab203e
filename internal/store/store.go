// Package store provides the interaction storage interface and SQLite
// implementation.
package store

import (
	"context"

	"github.com/rcliao/chat-memory/internal/model"
)

// SaveParams holds parameters for logging an interaction.
type SaveParams struct {
	SessionID string
	Prompt    string
	Response  string
	Tags      []string
}

// Store defines the interaction storage interface. Implementations must be
// transactional: a reader never observes a partially applied write, and reads
// within the same process see prior writes.
type Store interface {
	// Save appends one interaction. Returns the created record.
	Save(ctx context.Context, p SaveParams) (*model.Interaction, error)

	// All returns every interaction. Order is not part of the contract;
	// callers that need recency must use Recent.
	All(ctx context.Context) ([]model.Interaction, error)

	// BySession returns interactions whose session id matches exactly.
	BySession(ctx context.Context, sessionID string) ([]model.Interaction, error)

	// ByTags returns interactions whose tag set intersects the given tags
	// (OR semantics).
	ByTags(ctx context.Context, tags []string) ([]model.Interaction, error)

	// Search returns interactions whose prompt or response contains the
	// query, case-insensitively.
	Search(ctx context.Context, query string) ([]model.Interaction, error)

	// Recent returns the newest interactions by timestamp, newest first.
	// A non-positive limit defaults to 10.
	Recent(ctx context.Context, limit int) ([]model.Interaction, error)

	// Remove deletes one interaction. Removing an absent id is a no-op,
	// not an error.
	Remove(ctx context.Context, id string) error

	// Clear deletes all interactions.
	Clear(ctx context.Context) error

	// Count returns the total number of interactions.
	Count(ctx context.Context) (int, error)

	// CountByTag returns the number of interactions carrying the tag.
	CountByTag(ctx context.Context, tag string) (int, error)

	// Close closes the store.
	Close() error
}
