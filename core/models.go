package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Key is a stable 64-bit identifier derived from a record's identity key.
// It is generated using content-based hashing so the same profile URL
// always maps to the same storage key.
type Key uint64

// KeyFromContent generates a deterministic Key from text using BLAKE2b hashing.
// This ensures that identical identity keys produce identical storage keys.
func KeyFromContent(text string) Key {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return Key(binary.LittleEndian.Uint64(sum))
}

// Canonical field names for CandidateRecord, as they appear in raw record
// sources (spreadsheet columns, JSON exports).
const (
	FieldIdentityKey    = "identity_key"
	FieldName           = "name"
	FieldHeadline       = "headline"
	FieldEducation      = "education"
	FieldCurrentCompany = "current_company"
	FieldLocation       = "location"
	FieldSummary        = "summary"
	FieldSource         = "source"
)

// CandidateRecord is the normalized representation of one candidate profile.
// String fields default to "" when absent; SkillsTags and Summary are derived
// by the normalizer. Unknown source columns are preserved in Extra.
type CandidateRecord struct {
	IdentityKey    string // unique identity, e.g. a profile URL
	Name           string
	Headline       string
	Education      string
	CurrentCompany string
	Location       string
	SkillsTags     []string // category labels assigned by the normalizer
	Summary        string   // derived human-readable synthesis
	Source         string   // provenance tag
	IngestedAt     time.Time
	Extra          map[string]string
}

// Field returns the value of a named string field, or "" if the name is not
// a known field and not present in Extra. This is the single best-effort
// accessor used wherever raw column names cross the record boundary.
func (r *CandidateRecord) Field(name string) string {
	switch name {
	case FieldIdentityKey:
		return r.IdentityKey
	case FieldName:
		return r.Name
	case FieldHeadline:
		return r.Headline
	case FieldEducation:
		return r.Education
	case FieldCurrentCompany:
		return r.CurrentCompany
	case FieldLocation:
		return r.Location
	case FieldSummary:
		return r.Summary
	case FieldSource:
		return r.Source
	default:
		return r.Extra[name]
	}
}

// SetField sets a named string field, routing unknown names to Extra.
func (r *CandidateRecord) SetField(name, value string) {
	switch name {
	case FieldIdentityKey:
		r.IdentityKey = value
	case FieldName:
		r.Name = value
	case FieldHeadline:
		r.Headline = value
	case FieldEducation:
		r.Education = value
	case FieldCurrentCompany:
		r.CurrentCompany = value
	case FieldLocation:
		r.Location = value
	case FieldSummary:
		r.Summary = value
	case FieldSource:
		r.Source = value
	default:
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		r.Extra[name] = value
	}
}

// StringFieldNames lists the known string fields in canonical order.
// Used by the normalizer when cleaning records field by field.
var StringFieldNames = []string{
	FieldIdentityKey,
	FieldName,
	FieldHeadline,
	FieldEducation,
	FieldCurrentCompany,
	FieldLocation,
	FieldSummary,
	FieldSource,
}

// FromMap builds a CandidateRecord from a raw field-name-to-value mapping.
func FromMap(fields map[string]string) *CandidateRecord {
	r := &CandidateRecord{}
	for name, value := range fields {
		r.SetField(name, value)
	}
	return r
}

// ToMap flattens the record's string fields, Extra entries included, into a
// field-name-to-value mapping. Empty fields are omitted.
func (r *CandidateRecord) ToMap() map[string]string {
	fields := make(map[string]string, len(StringFieldNames)+len(r.Extra))
	for _, name := range StringFieldNames {
		if value := r.Field(name); value != "" {
			fields[name] = value
		}
	}
	for name, value := range r.Extra {
		if value != "" {
			fields[name] = value
		}
	}
	return fields
}

// Clone returns a deep copy of the record.
func (r *CandidateRecord) Clone() *CandidateRecord {
	c := *r
	if r.SkillsTags != nil {
		c.SkillsTags = append([]string(nil), r.SkillsTags...)
	}
	if r.Extra != nil {
		c.Extra = make(map[string]string, len(r.Extra))
		for k, v := range r.Extra {
			c.Extra[k] = v
		}
	}
	return &c
}

// SearchHit is a CandidateRecord returned by the index, augmented with its
// similarity score and 1-based rank within one query's result set.
type SearchHit struct {
	Record          *CandidateRecord
	SimilarityScore float32
	Rank            int
}

// AuditEntry records one action taken against the candidate store or index.
type AuditEntry struct {
	Action    string // update, reindex, search, delete
	User      string
	Details   map[string]string
	Timestamp time.Time
}
