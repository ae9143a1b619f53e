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


package core

import (
	"fmt"
	"time"
)

// ValidateCandidateRecord validates a CandidateRecord according to domain rules.
//
// Validation rules:
//   - the record must not be nil
//   - IngestedAt must not be in the future
//
// NOT validated (a record with missing fields is degraded, never rejected):
//   - IdentityKey (records without one pass through un-deduplicated)
//   - SkillsTags and Summary (populated by the normalizer)
func ValidateCandidateRecord(record *CandidateRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidCandidateRecord)
	}

	if !record.IngestedAt.IsZero() && !IsValidTimestamp(record.IngestedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidCandidateRecord, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateAuditEntry validates an AuditEntry according to domain rules.
//
// Validation rules:
//   - the entry must not be nil
//   - Action must not be empty
//   - Timestamp must not be in the future
func ValidateAuditEntry(entry *AuditEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidAuditEntry)
	}

	if entry.Action == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAuditEntry, ErrEmptyAction)
	}

	if !entry.Timestamp.IsZero() && !IsValidTimestamp(entry.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidAuditEntry, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
