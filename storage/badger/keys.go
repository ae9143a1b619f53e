package badger

import (
	"encoding/binary"
	"time"

	"github.com/poiesic/candidex/core"
)

// Key prefixes for different data types
const (
	candidateRecordPrefix   = "canrec"
	candidateOrderPrefix    = "canord"
	candidatePositionPrefix = "canpos"
	auditEntryPrefix        = "audlog"
	auditEntrySeq           = "audlogseq"
)

// makeCandidateRecordKey generates the primary key for a candidate record.
// Format: prefix:key
func makeCandidateRecordKey(key core.Key) []byte {
	prefix := candidateRecordPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(key))
	return buf
}

// makeOrderKey generates a key for the insertion-order index.
// Format: prefix:position, BigEndian so lexicographic iteration follows
// insertion order.
func makeOrderKey(position uint64) []byte {
	prefix := candidateOrderPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], position)
	return buf
}

// makePositionKey generates a key for the record-key-to-position lookup,
// used to locate a record's order entry on deletion.
// Format: prefix:key
func makePositionKey(key core.Key) []byte {
	prefix := candidatePositionPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(key))
	return buf
}

// makeAuditKey generates a composite key for an audit entry.
// Format: prefix:timestamp:seq, BigEndian so lexicographic sort is
// chronological; seq disambiguates entries in the same microsecond.
func makeAuditKey(timestamp time.Time, seq uint64) []byte {
	prefix := auditEntryPrefix + ":"
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}
