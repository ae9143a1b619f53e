package storage

import (
	"context"

	"github.com/poiesic/candidex/core"
)

// CandidateStore persists candidate records. Implementations must be
// thread-safe and preserve insertion order across ReadAll calls: the index
// relies on stable record ordering when rebuilding.
type CandidateStore interface {
	// ReadAll returns every stored candidate record in insertion order.
	ReadAll(ctx context.Context) ([]*core.CandidateRecord, error)

	// WriteAll replaces the full candidate set with the given records,
	// in the given order. The replacement is atomic: readers never
	// observe a mix of old and new records.
	WriteAll(ctx context.Context, records []*core.CandidateRecord) error

	// DeleteByKey removes the record with the given identity key.
	// Returns false, without error, when the key is not present.
	DeleteByKey(ctx context.Context, identityKey string) (bool, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close closes the store and releases resources.
	Close() error
}

// AuditLog records user-facing actions for later review.
type AuditLog interface {
	// Append stores one audit entry. A zero Timestamp is set to now.
	Append(ctx context.Context, entry *core.AuditEntry) error

	// Recent returns up to limit entries, most recent first.
	Recent(ctx context.Context, limit int) ([]*core.AuditEntry, error)

	// Close closes the log and releases resources.
	Close() error
}
