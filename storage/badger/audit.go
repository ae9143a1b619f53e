// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/candidex/core"
	"github.com/poiesic/candidex/storage"
)

// AuditLog implements storage.AuditLog for BadgerDB. Entries are keyed by
// timestamp plus a sequence number, so chronological order falls out of
// lexicographic key order and same-microsecond entries never collide.
type AuditLog struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.AuditLog = (*AuditLog)(nil)

// NewAuditLog creates a new AuditLog.
func NewAuditLog(backend *Backend) (*AuditLog, error) {
	seq, err := backend.GetSequence(auditEntrySeq)
	if err != nil {
		return nil, err
	}

	return &AuditLog{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the sequence.
func (l *AuditLog) Close() error {
	return l.seq.Release()
}

// Append stores one audit entry. A zero Timestamp is set to now.
func (l *AuditLog) Append(ctx context.Context, entry *core.AuditEntry) error {
	if err := core.ValidateAuditEntry(entry); err != nil {
		return err
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	seq, err := l.seq.Next()
	if err != nil {
		return err
	}

	return l.backend.WithTx(func(tx *badger.Txn) error {
		key := makeAuditKey(entry.Timestamp, seq)
		if err := tx.Set(key, storage.MarshalAuditEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Recent returns up to limit entries, most recent first.
func (l *AuditLog) Recent(ctx context.Context, limit int) ([]*core.AuditEntry, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var entries []*core.AuditEntry

	err := l.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(auditEntryPrefix + ":")

		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// In reverse mode, seek past the end of the prefix range to land
		// on the newest entry.
		seekKey := append(append([]byte{}, prefix...), 0xFF)
		for iter.Seek(seekKey); iter.Valid() && len(entries) < limit; iter.Next() {
			var entry *core.AuditEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalAuditEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return entries, nil
}
