package badger

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/candidex/core"
	"github.com/poiesic/candidex/storage"
)

// CandidateStore implements storage.CandidateStore for BadgerDB.
//
// Layout: each record lives under a primary key derived from its identity
// key, with an insertion-order index (position to record key) so ReadAll
// returns records in the order they were written, and a reverse position
// lookup so deletion can remove the order entry without a scan.
type CandidateStore struct {
	backend *Backend
}

var _ storage.CandidateStore = (*CandidateStore)(nil)

// NewCandidateStore creates a new CandidateStore.
func NewCandidateStore(backend *Backend) (*CandidateStore, error) {
	return &CandidateStore{backend: backend}, nil
}

// Close releases store resources. The backend is owned by the caller and
// stays open.
func (s *CandidateStore) Close() error {
	return nil
}

// recordKey derives the primary storage key for a record. Records without
// an identity key fall back to a position-derived key so they never collide
// with each other.
func recordKey(record *core.CandidateRecord, position int) core.Key {
	if record.IdentityKey != "" {
		return core.KeyFromContent(record.IdentityKey)
	}
	return core.KeyFromContent(fmt.Sprintf("anonymous:%d", position))
}

// ReadAll returns every stored candidate record in insertion order.
func (s *CandidateStore) ReadAll(ctx context.Context) ([]*core.CandidateRecord, error) {
	var records []*core.CandidateRecord

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(candidateOrderPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var key core.Key
			err := iter.Item().Value(func(val []byte) error {
				var err error
				key, err = storage.UnmarshalKey(val)
				return err
			})
			if err != nil {
				return err
			}

			item, err := tx.Get(makeCandidateRecordKey(key))
			if err != nil {
				return err
			}

			var record *core.CandidateRecord
			err = item.Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalCandidateRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return records, nil
}

// WriteAll replaces the full candidate set with the given records.
func (s *CandidateStore) WriteAll(ctx context.Context, records []*core.CandidateRecord) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := deleteByPrefixes(tx,
			candidateRecordPrefix+":",
			candidateOrderPrefix+":",
			candidatePositionPrefix+":"); err != nil {
			return err
		}

		for position, record := range records {
			key := recordKey(record, position)

			if err := tx.Set(makeCandidateRecordKey(key), storage.MarshalCandidateRecord(record)); err != nil {
				return err
			}
			if err := tx.Set(makeOrderKey(uint64(position)), storage.MarshalKey(key)); err != nil {
				return err
			}

			positionValue := make([]byte, 8)
			binary.BigEndian.PutUint64(positionValue, uint64(position))
			if err := tx.Set(makePositionKey(key), positionValue); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// DeleteByKey removes the record with the given identity key.
// Returns false, without error, when the key is not present.
func (s *CandidateStore) DeleteByKey(ctx context.Context, identityKey string) (bool, error) {
	key := core.KeyFromContent(identityKey)
	found := false

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makePositionKey(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		var position uint64
		err = item.Value(func(val []byte) error {
			if len(val) != 8 {
				return storage.ErrSerializationFailed
			}
			position = binary.BigEndian.Uint64(val)
			return nil
		})
		if err != nil {
			return err
		}

		if err := tx.Delete(makeCandidateRecordKey(key)); err != nil {
			return err
		}
		if err := tx.Delete(makeOrderKey(position)); err != nil {
			return err
		}
		if err := tx.Delete(makePositionKey(key)); err != nil {
			return err
		}

		found = true
		return tx.Commit()
	}, true)

	if err != nil {
		return false, err
	}
	return found, nil
}

// Count returns the number of stored records.
func (s *CandidateStore) Count(ctx context.Context) (int, error) {
	count := 0

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(candidateOrderPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)

	if err != nil {
		return 0, err
	}
	return count, nil
}

// deleteByPrefixes removes every key under the given prefixes within tx.
// Keys are collected before deletion; mutating while iterating is not safe.
func deleteByPrefixes(tx *badger.Txn, prefixes ...string) error {
	for _, prefix := range prefixes {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false

		var keys [][]byte
		iter := tx.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
	}
	return nil
}
