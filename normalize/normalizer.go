package normalize

import (
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/candidex/core"
)

// DefaultSource is the provenance tag applied to records that arrive without one.
const DefaultSource = "phantombuster"

// Truncation limits applied when synthesizing record summaries.
const (
	maxSummaryHeadline  = 100
	maxSummaryEducation = 80
	maxSummaryCompany   = 60
	maxSummaryTags      = 3
)

// Normalizer turns raw heterogeneous candidate records into a consistent
// shape ready for embedding. The pipeline is deterministic: the same input
// always yields the same output, and a malformed record degrades (fields
// omitted) rather than failing the batch.
type Normalizer struct {
	taxonomy      []SkillCategory
	defaultSource string
	now           func() time.Time
	logger        *slog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer) error

// WithTaxonomy replaces the default category-to-keyword table.
func WithTaxonomy(taxonomy []SkillCategory) Option {
	return func(n *Normalizer) error {
		if taxonomy == nil {
			taxonomy = DefaultTaxonomy
		}
		n.taxonomy = taxonomy
		return nil
	}
}

// WithDefaultSource overrides the provenance tag applied to untagged records.
func WithDefaultSource(source string) Option {
	return func(n *Normalizer) error {
		n.defaultSource = source
		return nil
	}
}

// WithClock sets the time source used for IngestedAt defaults.
// Default is time.Now. Mainly useful in tests.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) error {
		if now == nil {
			now = time.Now
		}
		n.now = now
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		n.logger = logger
		return nil
	}
}

// NewNormalizer creates a new normalizer.
func NewNormalizer(opts ...Option) (*Normalizer, error) {
	n := &Normalizer{
		taxonomy:      DefaultTaxonomy,
		defaultSource: DefaultSource,
		now:           time.Now,
		logger:        slog.Default().With("component", "normalizer"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}

	return n, nil
}

// Clean returns cleaned copies of the records. For every string field it
// trims surrounding whitespace, collapses whitespace runs to one space, and
// capitalizes the first letter of each sentence-like segment. The identity
// key and source fields are treated as opaque values and only trimmed, since
// capitalization corrupts profile URLs. Source defaults to the configured
// provenance tag and IngestedAt to the current time when absent.
func (n *Normalizer) Clean(records []*core.CandidateRecord) []*core.CandidateRecord {
	cleaned := make([]*core.CandidateRecord, 0, len(records))

	for _, record := range records {
		if record == nil {
			continue
		}
		c := record.Clone()

		for _, field := range core.StringFieldNames {
			value := collapseWhitespace(c.Field(field))
			if field != core.FieldIdentityKey && field != core.FieldSource {
				value = capitalizeSentences(value)
			}
			c.SetField(field, value)
		}
		for key, value := range c.Extra {
			c.Extra[key] = capitalizeSentences(collapseWhitespace(value))
		}

		if c.Source == "" {
			c.Source = n.defaultSource
		}
		if c.IngestedAt.IsZero() {
			c.IngestedAt = n.now().UTC()
		}

		cleaned = append(cleaned, c)
	}

	return cleaned
}

// Dedupe removes records sharing the same identity key, keeping the first
// occurrence. Records missing the key are retained unconditionally and the
// order of survivors is preserved.
func (n *Normalizer) Dedupe(records []*core.CandidateRecord) []*core.CandidateRecord {
	return n.DedupeByField(records, core.FieldIdentityKey)
}

// DedupeByField removes records sharing the same value for the named field,
// keeping the first occurrence. Records with an empty value for the field
// are retained unconditionally.
func (n *Normalizer) DedupeByField(records []*core.CandidateRecord, field string) []*core.CandidateRecord {
	seen := make(map[string]bool, len(records))
	unique := make([]*core.CandidateRecord, 0, len(records))

	for _, record := range records {
		if record == nil {
			continue
		}
		key := record.Field(field)
		if key == "" {
			// Records without the key may still be valid; keep them.
			unique = append(unique, record)
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, record)
	}

	if dropped := len(records) - len(unique); dropped > 0 {
		n.logger.Debug("removed duplicate records", "field", field, "dropped", dropped)
	}

	return unique
}

// TagSkills assigns skill category labels to each record by keyword matching
// against the lowercased concatenation of headline, education, and current
// company. A record may receive zero, one, or multiple labels; labels are
// emitted in taxonomy order so the result is deterministic.
func (n *Normalizer) TagSkills(records []*core.CandidateRecord) []*core.CandidateRecord {
	for _, record := range records {
		if record == nil {
			continue
		}

		scratch := strings.ToLower(record.Headline + " " + record.Education + " " + record.CurrentCompany)

		var tags []string
		for _, category := range n.taxonomy {
			for _, keyword := range category.Keywords {
				if strings.Contains(scratch, keyword) {
					tags = append(tags, category.Category)
					break
				}
			}
		}
		record.SkillsTags = tags
	}

	return records
}

// Summarise builds a pipe-delimited human-readable summary for each record
// from name, headline, education, current company, and up to three skill
// tags. Absent fields are omitted rather than rendered as empty placeholders.
func (n *Normalizer) Summarise(records []*core.CandidateRecord) []*core.CandidateRecord {
	for _, record := range records {
		if record == nil {
			continue
		}

		var parts []string
		if record.Name != "" {
			parts = append(parts, "Name: "+record.Name)
		}
		if record.Headline != "" {
			parts = append(parts, "Profile: "+truncateRunes(record.Headline, maxSummaryHeadline))
		}
		if record.Education != "" {
			parts = append(parts, "Education: "+truncateRunes(record.Education, maxSummaryEducation))
		}
		if record.CurrentCompany != "" {
			parts = append(parts, "Company: "+truncateRunes(record.CurrentCompany, maxSummaryCompany))
		}
		if len(record.SkillsTags) > 0 {
			tags := record.SkillsTags
			if len(tags) > maxSummaryTags {
				tags = tags[:maxSummaryTags]
			}
			parts = append(parts, "Skills: "+strings.Join(tags, ", "))
		}

		record.Summary = strings.Join(parts, " | ")
	}

	return records
}

// NormalizeAll runs the full pipeline: Clean, Dedupe, TagSkills, then
// Summarise. The order matters: deduplication happens before tagging and
// summarizing to avoid wasted work on discarded records, and cleaning must
// precede tagging because keyword matching is case- and whitespace-sensitive.
func (n *Normalizer) NormalizeAll(records []*core.CandidateRecord) []*core.CandidateRecord {
	n.logger.Debug("normalizing records", "count", len(records))

	cleaned := n.Clean(records)
	deduped := n.Dedupe(cleaned)
	tagged := n.TagSkills(deduped)
	summarised := n.Summarise(tagged)

	n.logger.Info("normalized records", "in", len(records), "out", len(summarised))
	return summarised
}
