package analysis

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var vocabularyYAML []byte

const (
	CategoryTechnicalSkills = "technical_skills"
	CategorySoftSkills      = "soft_skills"
	CategoryCertifications  = "certifications"
	CategoryEducation       = "education"
)

// SkillVocabulary is the versioned keyword table the engine matches
// against. It is loaded once at process start and never mutated.
type SkillVocabulary struct {
	Version    int                 `yaml:"version"`
	Categories map[string][]string `yaml:"categories"`
}

// LoadVocabulary parses the embedded vocabulary table. Callers share the
// returned value across analyses; it is read-only by contract.
func LoadVocabulary() (*SkillVocabulary, error) {
	var v SkillVocabulary
	if err := yaml.Unmarshal(vocabularyYAML, &v); err != nil {
		return nil, fmt.Errorf("parse embedded vocabulary: %w", err)
	}
	for _, category := range []string{
		CategoryTechnicalSkills,
		CategorySoftSkills,
		CategoryCertifications,
		CategoryEducation,
	} {
		if len(v.Categories[category]) == 0 {
			return nil, fmt.Errorf("embedded vocabulary missing category %q", category)
		}
	}
	return &v, nil
}

// Entries returns the ordered entry list for a category, or nil for an
// unknown category.
func (v *SkillVocabulary) Entries(category string) []string {
	return v.Categories[category]
}
