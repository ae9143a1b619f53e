package normalize

// SkillCategory maps a category label to the lowercase keywords that assign it.
// Categories are evaluated in order so tagging output is deterministic.
type SkillCategory struct {
	Category string
	Keywords []string
}

// DefaultTaxonomy is the fixed category-to-keyword table used by TagSkills.
// A keyword matches by substring containment against the lowercased
// concatenation of headline, education, and current company.
var DefaultTaxonomy = []SkillCategory{
	{Category: "finanças", Keywords: []string{"finanças", "finance", "financial", "contabilidade", "accounting"}},
	{Category: "marketing", Keywords: []string{"marketing", "digital marketing", "social media", "branding"}},
	{Category: "tecnologia", Keywords: []string{"python", "javascript", "java", "react", "node.js", "sql", "data science"}},
	{Category: "gestão", Keywords: []string{"gestão", "management", "leadership", "project management", "agile"}},
	{Category: "vendas", Keywords: []string{"vendas", "sales", "business development", "commercial"}},
	{Category: "recursos humanos", Keywords: []string{"rh", "hr", "recursos humanos", "human resources", "recrutamento"}},
	{Category: "análise", Keywords: []string{"análise", "analysis", "analytics", "business intelligence", "reporting"}},
	{Category: "design", Keywords: []string{"design", "ui", "ux", "graphic design", "web design"}},
	{Category: "comunicação", Keywords: []string{"comunicação", "communication", "public relations", "content"}},
	{Category: "logística", Keywords: []string{"logística", "logistics", "supply chain", "operations"}},
}
