package answer

import "strings"

// Intent classifies what a recruiter question is asking about. Intent is
// recorded for analytics and audit trails only; it never alters ranking.
type Intent string

const (
	IntentEducation  Intent = "education"
	IntentExperience Intent = "experience"
	IntentSkills     Intent = "skills"
	IntentLocation   Intent = "location"
	IntentGeneral    Intent = "general"
)

// Keyword groups checked in order; the first group with a hit wins.
// Portuguese terms dominate because that is the recruiter base this
// system was built for.
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentEducation, []string{"mestrado", "licenciatura", "doutoramento", "formação", "educação", "degree", "education"}},
	{IntentExperience, []string{"experiência", "trabalhou", "trabalha", "empresa", "experience", "worked"}},
	{IntentSkills, []string{"skills", "conhecimento", "tecnologia", "ferramenta", "knowledge"}},
	{IntentLocation, []string{"localização", "cidade", "país", "região", "location", "city"}},
}

// ClassifyIntent returns the intent of a question based on fixed keyword
// sets, falling back to IntentGeneral when nothing matches.
func ClassifyIntent(query string) Intent {
	lowered := strings.ToLower(query)
	for _, group := range intentKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(lowered, keyword) {
				return group.intent
			}
		}
	}
	return IntentGeneral
}

// QueryAnalysis holds derived features of a user query.
type QueryAnalysis struct {
	Intent          Intent
	QueryLength     int
	HasQuestionMark bool
	Keywords        []string
}

// AnalyzeQuery extracts intent and simple structural features from a query.
// Keywords are whitespace-separated tokens longer than 3 characters.
func AnalyzeQuery(query string) QueryAnalysis {
	var keywords []string
	for _, word := range strings.Fields(query) {
		if len([]rune(word)) > 3 {
			keywords = append(keywords, word)
		}
	}

	return QueryAnalysis{
		Intent:          ClassifyIntent(query),
		QueryLength:     len(query),
		HasQuestionMark: strings.Contains(query, "?"),
		Keywords:        keywords,
	}
}
