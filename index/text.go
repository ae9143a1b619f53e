package index

import (
	"strings"

	"github.com/poiesic/candidex/core"
)

// EmbeddingText synthesizes the embedding-input string for one record.
// Non-empty fields are concatenated in a fixed order and separated by " | ";
// empty fields are skipped, matching the normalizer's omission behavior so
// indexed text stays consistent with record summaries.
func EmbeddingText(record *core.CandidateRecord) string {
	if record == nil {
		return ""
	}

	var parts []string
	if record.Name != "" {
		parts = append(parts, record.Name)
	}
	if record.Headline != "" {
		parts = append(parts, record.Headline)
	}
	if record.Education != "" {
		parts = append(parts, record.Education)
	}
	if record.CurrentCompany != "" {
		parts = append(parts, record.CurrentCompany)
	}
	if record.Location != "" {
		parts = append(parts, record.Location)
	}
	if len(record.SkillsTags) > 0 {
		parts = append(parts, strings.Join(record.SkillsTags, ", "))
	}
	if record.Summary != "" {
		parts = append(parts, record.Summary)
	}

	return strings.Join(parts, " | ")
}
