package answer

import (
	"fmt"
	"strings"

	"github.com/poiesic/candidex/core"
)

const systemPrompt = "You are a recruitment assistant specialized in analyzing candidate profiles. " +
	"Answer clearly and professionally, referencing only the candidates provided."

// maxContextCandidates caps how many hits are described to the text
// generator; prompts past the strongest matches add tokens, not signal.
const maxContextCandidates = 5

const fieldPlaceholder = "N/A"

func orPlaceholder(value string) string {
	if value == "" {
		return fieldPlaceholder
	}
	return value
}

// candidateContext renders the top hits as a numbered plain-text block for
// inclusion in the generation prompt.
func candidateContext(hits []*core.SearchHit) string {
	var parts []string
	for i, hit := range hits {
		if i >= maxContextCandidates {
			break
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Candidate %d:\n", i+1)
		fmt.Fprintf(&b, "- Name: %s\n", orPlaceholder(hit.Record.Name))
		fmt.Fprintf(&b, "- Profile: %s\n", orPlaceholder(hit.Record.Headline))
		fmt.Fprintf(&b, "- Education: %s\n", orPlaceholder(hit.Record.Education))
		fmt.Fprintf(&b, "- Current company: %s\n", orPlaceholder(hit.Record.CurrentCompany))
		fmt.Fprintf(&b, "- Skills: %s\n", strings.Join(hit.Record.SkillsTags, ", "))
		fmt.Fprintf(&b, "- Relevance score: %.3f\n", hit.SimilarityScore)
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n")
}

// userPrompt assembles the full question-plus-context prompt.
func userPrompt(question, context string) string {
	return fmt.Sprintf(`Based on the following candidates, answer the recruiter's question clearly and helpfully.

Question: %s

Candidates found:
%s

Please:
1. Answer the question directly
2. Mention only the most relevant candidates (at most 3-4)
3. Briefly explain why each candidate is relevant
4. Keep the answer concise but informative

Answer:
`, question, context)
}
