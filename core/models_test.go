package core

import (
	"testing"
)

func TestKeyFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "profile url",
			content: "https://www.linkedin.com/in/some-profile",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "https://www.linkedin.com/in/a-much-longer-profile-slug-that-should-still-hash-consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k1 := KeyFromContent(tt.content)
			k2 := KeyFromContent(tt.content)

			if k1 != k2 {
				t.Errorf("KeyFromContent() produced different keys for same content: %d vs %d", k1, k2)
			}
		})
	}
}

func TestKeyFromContent_Different(t *testing.T) {
	k1 := KeyFromContent("https://example.com/profile-a")
	k2 := KeyFromContent("https://example.com/profile-b")

	if k1 == k2 {
		t.Errorf("KeyFromContent() produced same key for different content")
	}
}

func TestCandidateRecord_Field(t *testing.T) {
	record := &CandidateRecord{
		IdentityKey:    "https://example.com/p/1",
		Name:           "Ana Silva",
		Headline:       "Finance Manager",
		Education:      "MSc Finance",
		CurrentCompany: "Acme",
		Location:       "Lisboa",
		Summary:        "Ana Silva | Finance Manager",
		Source:         "phantombuster",
		Extra:          map[string]string{"connections": "500+"},
	}

	tests := []struct {
		field string
		want  string
	}{
		{FieldIdentityKey, "https://example.com/p/1"},
		{FieldName, "Ana Silva"},
		{FieldHeadline, "Finance Manager"},
		{FieldEducation, "MSc Finance"},
		{FieldCurrentCompany, "Acme"},
		{FieldLocation, "Lisboa"},
		{FieldSummary, "Ana Silva | Finance Manager"},
		{FieldSource, "phantombuster"},
		{"connections", "500+"},
		{"missing_field", ""},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := record.Field(tt.field); got != tt.want {
				t.Errorf("Field(%q) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestCandidateRecord_SetField(t *testing.T) {
	record := &CandidateRecord{}

	record.SetField(FieldName, "Bruno Costa")
	record.SetField("followers", "1200")

	if record.Name != "Bruno Costa" {
		t.Errorf("SetField did not set Name, got %q", record.Name)
	}
	if record.Extra["followers"] != "1200" {
		t.Errorf("SetField did not route unknown field into Extra, got %v", record.Extra)
	}
}

func TestFromMap(t *testing.T) {
	record := FromMap(map[string]string{
		FieldIdentityKey: "https://example.com/p/2",
		FieldHeadline:    "Marketing Lead",
		"scraped_page":   "3",
	})

	if record.IdentityKey != "https://example.com/p/2" {
		t.Errorf("FromMap IdentityKey = %q", record.IdentityKey)
	}
	if record.Headline != "Marketing Lead" {
		t.Errorf("FromMap Headline = %q", record.Headline)
	}
	if record.Extra["scraped_page"] != "3" {
		t.Errorf("FromMap did not keep unknown column, got %v", record.Extra)
	}
}

func TestCandidateRecord_ToMap(t *testing.T) {
	record := FromMap(map[string]string{
		FieldIdentityKey: "https://example.com/p/2",
		FieldHeadline:    "Marketing Lead",
		"scraped_page":   "3",
	})

	fields := record.ToMap()

	if len(fields) != 3 {
		t.Errorf("ToMap returned %d fields, want 3: %v", len(fields), fields)
	}
	if fields[FieldHeadline] != "Marketing Lead" {
		t.Errorf("ToMap Headline = %q", fields[FieldHeadline])
	}
	if fields["scraped_page"] != "3" {
		t.Errorf("ToMap dropped unknown column, got %v", fields)
	}
	if _, ok := fields[FieldName]; ok {
		t.Errorf("ToMap kept empty field, got %v", fields)
	}
}

func TestCandidateRecord_Clone(t *testing.T) {
	record := &CandidateRecord{
		IdentityKey: "https://example.com/p/3",
		SkillsTags:  []string{"finanças", "análise"},
		Extra:       map[string]string{"connections": "500+"},
	}

	clone := record.Clone()
	clone.SkillsTags[0] = "marketing"
	clone.Extra["connections"] = "10"

	if record.SkillsTags[0] != "finanças" {
		t.Errorf("Clone shares SkillsTags with original")
	}
	if record.Extra["connections"] != "500+" {
		t.Errorf("Clone shares Extra with original")
	}
}
