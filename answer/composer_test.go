package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/candidex/ai/mock"
	"github.com/poiesic/candidex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hit(rank int, score float32, record *core.CandidateRecord) *core.SearchHit {
	return &core.SearchHit{Record: record, SimilarityScore: score, Rank: rank}
}

func TestNew(t *testing.T) {
	t.Run("requires generator", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrGeneratorRequired)
	})
}

func TestComposeAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("no hits returns fixed message without generation", func(t *testing.T) {
		generator := mock.NewMockTextGenerator()
		composer, err := New(generator)
		require.NoError(t, err)

		response, err := composer.ComposeAnswer(ctx, nil, "any question")
		require.NoError(t, err)

		assert.Equal(t, NoMatchAnswer, response.AnswerText)
		assert.Empty(t, response.Justifications)
		assert.Empty(t, response.Sources)
		assert.Equal(t, 0, generator.CallCount())
	})

	t.Run("delegates prose to generator", func(t *testing.T) {
		generator := mock.NewMockTextGenerator()
		generator.CompleteFunc = func(_ context.Context, system, user string) (string, error) {
			assert.Contains(t, system, "recruitment assistant")
			assert.Contains(t, user, "Who knows finance?")
			assert.Contains(t, user, "Maria Silva")
			return "Maria Silva is the strongest match.", nil
		}
		composer, err := New(generator)
		require.NoError(t, err)

		hits := []*core.SearchHit{
			hit(1, 0.85, &core.CandidateRecord{
				IdentityKey: "https://linkedin.com/in/maria",
				Name:        "Maria Silva",
				Headline:    "Finance Manager",
				SkillsTags:  []string{"finanças"},
			}),
		}

		response, err := composer.ComposeAnswer(ctx, hits, "Who knows finance?")
		require.NoError(t, err)
		assert.Equal(t, "Maria Silva is the strongest match.", response.AnswerText)
	})

	t.Run("generator failure degrades to templated answer", func(t *testing.T) {
		generator := mock.NewMockTextGenerator()
		generator.CompleteFunc = func(context.Context, string, string) (string, error) {
			return "", errors.New("completion service down")
		}
		composer, err := New(generator)
		require.NoError(t, err)

		hits := []*core.SearchHit{
			hit(1, 0.9, &core.CandidateRecord{Name: "Maria Silva", Headline: "Finance Manager"}),
			hit(2, 0.5, &core.CandidateRecord{Name: "João Costa"}),
		}

		response, err := composer.ComposeAnswer(ctx, hits, "Who knows finance?")
		require.NoError(t, err)

		assert.Contains(t, response.AnswerText, "Maria Silva")
		assert.Contains(t, response.AnswerText, "Finance Manager")
		assert.Len(t, response.Justifications, 2)
		assert.Len(t, response.Sources, 2)
	})

	t.Run("context caps at five candidates", func(t *testing.T) {
		var captured string
		generator := mock.NewMockTextGenerator()
		generator.CompleteFunc = func(_ context.Context, _, user string) (string, error) {
			captured = user
			return "ok", nil
		}
		composer, err := New(generator)
		require.NoError(t, err)

		var hits []*core.SearchHit
		names := []string{"Ana", "Bruno", "Carla", "Diogo", "Eva", "Filipe", "Gabriela"}
		for i, name := range names {
			hits = append(hits, hit(i+1, 0.9, &core.CandidateRecord{Name: name}))
		}

		_, err = composer.ComposeAnswer(ctx, hits, "question")
		require.NoError(t, err)

		assert.Contains(t, captured, "Eva")
		assert.NotContains(t, captured, "Filipe")
		assert.NotContains(t, captured, "Gabriela")
		assert.Equal(t, 5, strings.Count(captured, "Candidate "))
	})
}

func TestJustifications(t *testing.T) {
	t.Run("tiers by score", func(t *testing.T) {
		hits := []*core.SearchHit{
			hit(1, 0.85, &core.CandidateRecord{Name: "A"}),
			hit(2, 0.55, &core.CandidateRecord{Name: "B"}),
		}

		result := justifications(hits)
		require.Len(t, result, 2)
		assert.Contains(t, result[0], "High relevance")
		assert.Contains(t, result[1], "Low relevance")
	})

	t.Run("moderate tier between thresholds", func(t *testing.T) {
		result := justifications([]*core.SearchHit{hit(1, 0.7, &core.CandidateRecord{})})
		require.Len(t, result, 1)
		assert.Contains(t, result[0], "Moderate relevance")
	})

	t.Run("boundary scores fall into lower tier", func(t *testing.T) {
		result := justifications([]*core.SearchHit{
			hit(1, 0.8, &core.CandidateRecord{}),
			hit(2, 0.6, &core.CandidateRecord{}),
		})
		require.Len(t, result, 2)
		assert.Contains(t, result[0], "Moderate relevance")
		assert.Contains(t, result[1], "Low relevance")
	})

	t.Run("caps at three and appends skills and education", func(t *testing.T) {
		record := &core.CandidateRecord{
			SkillsTags: []string{"finanças", "análise", "gestão"},
			Education:  "Magíster en Finanzas",
		}
		hits := []*core.SearchHit{
			hit(1, 0.9, record),
			hit(2, 0.9, record),
			hit(3, 0.9, record),
			hit(4, 0.9, record),
		}

		result := justifications(hits)
		require.Len(t, result, 3)
		assert.Contains(t, result[0], "Relevant skills: finanças, análise")
		assert.NotContains(t, result[0], "gestão")
		assert.Contains(t, result[0], "Relevant education")
	})

	t.Run("short education is ignored", func(t *testing.T) {
		result := justifications([]*core.SearchHit{
			hit(1, 0.9, &core.CandidateRecord{Education: "MBA"}),
		})
		require.Len(t, result, 1)
		assert.NotContains(t, result[0], "education")
	})
}

func TestSources(t *testing.T) {
	hits := []*core.SearchHit{
		hit(1, 0.9, &core.CandidateRecord{IdentityKey: "https://linkedin.com/in/a", Name: "Ana"}),
		hit(2, 0.8, &core.CandidateRecord{IdentityKey: "https://linkedin.com/in/b", Name: "Bruno"}),
		hit(3, 0.7, &core.CandidateRecord{Name: ""}),
		hit(4, 0.6, &core.CandidateRecord{Name: "Diogo"}),
	}

	result := sources(hits)
	require.Len(t, result, 4) // every hit, not just the top 3

	assert.Equal(t, "Ana", result[0].Name)
	assert.Equal(t, "https://linkedin.com/in/a", result[0].ProfileURL)
	assert.Equal(t, 1, result[0].Rank)
	assert.InDelta(t, 0.9, result[0].SimilarityScore, 1e-6)
	assert.Equal(t, "N/A", result[2].Name)
}

func TestMatchPercent(t *testing.T) {
	tests := []struct {
		score float32
		want  int
	}{
		{0, 0},
		{0.5, 10},
		{2.5, 50},
		{4.75, 95},
		{5.0, 95},
		{100, 95},
		{-1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchPercent(tt.score), "score %v", tt.score)
	}
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		query string
		want  Intent
	}{
		{"Quem tem mestrado em finanças?", IntentEducation},
		{"Quem trabalhou em marketing digital?", IntentExperience},
		{"Quem tem skills em Python?", IntentSkills},
		{"Quem está na cidade do Porto?", IntentLocation},
		{"Quem fala alemão?", IntentGeneral},
		{"Who has a degree in engineering?", IntentEducation},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyIntent(tt.query), "query %q", tt.query)
	}
}

func TestAnalyzeQuery(t *testing.T) {
	analysis := AnalyzeQuery("Quem tem mestrado em finanças?")

	assert.Equal(t, IntentEducation, analysis.Intent)
	assert.True(t, analysis.HasQuestionMark)
	assert.Equal(t, len("Quem tem mestrado em finanças?"), analysis.QueryLength)
	assert.Equal(t, []string{"Quem", "mestrado", "finanças?"}, analysis.Keywords)
}

func TestSearchSuggestions(t *testing.T) {
	suggestions := SearchSuggestions()
	assert.Len(t, suggestions, 8)
	for _, s := range suggestions {
		assert.NotEmpty(t, s)
	}
}
