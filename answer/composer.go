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


package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/candidex/ai"
	"github.com/poiesic/candidex/core"
)

// Relevance tiers and match-percentage conversion. These are tuning
// constants carried over unchanged; they have no empirical derivation and
// are candidates for product-level calibration.
const (
	HighRelevanceThreshold     float32 = 0.8
	ModerateRelevanceThreshold float32 = 0.6

	matchPercentFactor = 20
	maxMatchPercent    = 95
)

const (
	maxJustifications      = 3
	maxJustificationSkills = 2

	// Education entries at or below this length are treated as noise.
	minEducationLength = 10
)

// NoMatchAnswer is returned verbatim when a search produced no hits.
const NoMatchAnswer = "No candidates were found matching your search."

// Response is the structured output of answer composition.
type Response struct {
	AnswerText     string
	Justifications []string
	Sources        []Source
}

// Source cites one hit for downstream rendering. Unlike justifications,
// sources cover every hit, not just the top few.
type Source struct {
	Name            string
	ProfileURL      string
	Rank            int
	SimilarityScore float32
}

// Composer turns ranked search hits into a justified natural-language
// response. Prose generation is delegated to a text-generation service;
// ranking, justification, and citation logic stay local, so a generation
// outage degrades the answer text but never the structured payload.
type Composer struct {
	generator ai.TextGenerator
	logger    *slog.Logger
}

// Option configures a Composer.
type Option func(*Composer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// New creates a Composer backed by the given text generator.
func New(generator ai.TextGenerator, opts ...Option) (*Composer, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	c := &Composer{
		generator: generator,
		logger:    slog.Default().With("component", "answer"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ComposeAnswer builds the full response for a question and its ranked hits.
// With no hits it returns the fixed no-match message and empty justification
// and source lists without contacting the text generator. If the generator
// fails, a templated summary of the top candidates stands in for the prose
// so callers still receive a complete response.
func (c *Composer) ComposeAnswer(ctx context.Context, hits []*core.SearchHit, question string) (*Response, error) {
	if len(hits) == 0 {
		return &Response{
			AnswerText:     NoMatchAnswer,
			Justifications: []string{},
			Sources:        []Source{},
		}, nil
	}

	intent := ClassifyIntent(question)
	c.logger.Debug("composing answer", "hits", len(hits), "intent", intent)

	prompt := userPrompt(question, candidateContext(hits))

	answerText, err := c.generator.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		c.logger.Warn("text generation failed, using templated answer", "err", err)
		answerText = templatedAnswer(hits)
	}

	return &Response{
		AnswerText:     answerText,
		Justifications: justifications(hits),
		Sources:        sources(hits),
	}, nil
}

// justifications builds one tiered explanation per top hit.
func justifications(hits []*core.SearchHit) []string {
	result := make([]string, 0, maxJustifications)

	for i, hit := range hits {
		if i >= maxJustifications {
			break
		}

		var parts []string

		switch {
		case hit.SimilarityScore > HighRelevanceThreshold:
			parts = append(parts, "High relevance")
		case hit.SimilarityScore > ModerateRelevanceThreshold:
			parts = append(parts, "Moderate relevance")
		default:
			parts = append(parts, "Low relevance")
		}

		if len(hit.Record.SkillsTags) > 0 {
			tags := hit.Record.SkillsTags
			if len(tags) > maxJustificationSkills {
				tags = tags[:maxJustificationSkills]
			}
			parts = append(parts, "Relevant skills: "+strings.Join(tags, ", "))
		}

		if len([]rune(hit.Record.Education)) > minEducationLength {
			parts = append(parts, "Relevant education")
		}

		result = append(result, strings.Join(parts, " | "))
	}

	return result
}

// sources builds one citation entry per hit. The identity key doubles as
// the external profile link; raw sources key candidates by profile URL.
func sources(hits []*core.SearchHit) []Source {
	result := make([]Source, 0, len(hits))
	for _, hit := range hits {
		result = append(result, Source{
			Name:            orPlaceholder(hit.Record.Name),
			ProfileURL:      hit.Record.IdentityKey,
			Rank:            hit.Rank,
			SimilarityScore: hit.SimilarityScore,
		})
	}
	return result
}

// MatchPercent converts a similarity score into a display percentage,
// capped below 100 so results never read as certain matches.
func MatchPercent(score float32) int {
	percent := int(score * matchPercentFactor)
	if percent > maxMatchPercent {
		return maxMatchPercent
	}
	if percent < 0 {
		return 0
	}
	return percent
}

// templatedAnswer is the degraded answer used when text generation is
// unavailable. It lists the strongest candidates with match percentages.
func templatedAnswer(hits []*core.SearchHit) string {
	var b strings.Builder
	b.WriteString("Top matching candidates:\n")
	for i, hit := range hits {
		if i >= maxContextCandidates {
			break
		}
		fmt.Fprintf(&b, "%d. %s (%d%% match)", hit.Rank, orPlaceholder(hit.Record.Name), MatchPercent(hit.SimilarityScore))
		if hit.Record.Headline != "" {
			fmt.Fprintf(&b, " - %s", hit.Record.Headline)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// SearchSuggestions returns example questions for first-time users.
func SearchSuggestions() []string {
	return []string{
		"Who has a master's degree in finance?",
		"Who has experience in risk analysis?",
		"Who has worked in digital marketing?",
		"Who has skills in Python and data science?",
		"Who has experience managing teams?",
		"Who has worked at startups?",
		"Who has an engineering background?",
		"Who has international experience?",
	}
}
