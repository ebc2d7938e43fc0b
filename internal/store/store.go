package store

import (
	"context"

	"github.com/roach88/gripe/internal/grievance"
)

// Store is the full set of grievance operations. Callers never touch the
// backing file or database directly.
//
// All mutating operations either fully persist or persist nothing.
// "Not found" conditions are reported as *NotFoundError and leave
// storage unmodified.
type Store interface {
	// Add validates, normalizes, and persists a new grievance with the
	// next available id, status open, zero votes, and the current time.
	// Returns *ValidationError if any field is empty after trimming.
	Add(ctx context.Context, title, description, author string) (grievance.Grievance, error)

	// List returns grievances, optionally filtered by exact status
	// match (empty status matches all), ordered by the given sort key.
	// Neither filtering nor sorting touches persisted storage.
	List(ctx context.Context, status grievance.Status, key grievance.SortKey) ([]grievance.Grievance, error)

	// Get returns the grievance with the given id.
	Get(ctx context.Context, id int) (grievance.Grievance, error)

	// Vote increments the up or down counter by exactly one and
	// returns the updated record.
	Vote(ctx context.Context, id int, dir grievance.VoteDirection) (grievance.Grievance, error)

	// Resolve sets status to resolved. Resolving an already-resolved
	// grievance succeeds with no observable change.
	Resolve(ctx context.Context, id int) (grievance.Grievance, error)

	// Delete removes the record permanently. No tombstone; the id is
	// never reissued unless it was the maximum.
	Delete(ctx context.Context, id int) error

	// Close releases any backend resources.
	Close() error
}

// normalizeFields applies NFC normalization and trimming to the three
// required fields and validates that none is empty.
func normalizeFields(title, description, author string) (string, string, string, error) {
	title = grievance.NormalizeField(title)
	description = grievance.NormalizeField(description)
	author = grievance.NormalizeField(author)

	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if description == "" {
		missing = append(missing, "description")
	}
	if author == "" {
		missing = append(missing, "author")
	}
	if len(missing) > 0 {
		return "", "", "", &ValidationError{Fields: missing}
	}
	return title, description, author, nil
}
