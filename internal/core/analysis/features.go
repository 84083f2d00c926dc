package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

// Experience patterns are tried in order; the first capture wins and no
// aggregation happens across multiple mentions.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*years?\s*of\s*experience`),
	regexp.MustCompile(`experience:\s*(\d+)\s*years?`),
	regexp.MustCompile(`(\d+)\s*years?\s*in\s*the\s*field`),
}

var degreePatterns = []struct {
	pattern *regexp.Regexp
	label   string
}{
	{regexp.MustCompile(`bachelor[^s]*s?\s*degree`), "bachelor's degree"},
	{regexp.MustCompile(`master[^s]*s?\s*degree`), "master's degree"},
	{regexp.MustCompile(`ph\.?d\.?`), "doctorate"},
	{regexp.MustCompile(`associate[^s]*s?\s*degree`), "associate's degree"},
}

// ExtractSkills searches the raw (pre-normalization) text for every
// technical and soft skill vocabulary entry. Matching is substring
// based without word boundaries; short entries can over-match inside
// longer words, which is the documented contract of this engine. A
// boundary-aware variant would change scores for existing inputs and
// must be introduced as a separate opt-in mode.
func (e *Engine) ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	var skills []string
	seen := make(map[string]struct{})
	for _, category := range []string{CategoryTechnicalSkills, CategorySoftSkills} {
		for _, entry := range e.vocabulary.Entries(category) {
			if _, ok := seen[entry]; ok {
				continue
			}
			if strings.Contains(lower, entry) {
				seen[entry] = struct{}{}
				skills = append(skills, entry)
			}
		}
	}
	return skills
}

// ExtractExperienceYears returns the years-of-experience figure from
// the first matching pattern, or nil when no pattern matches.
func (e *Engine) ExtractExperienceYears(text string) *int {
	lower := strings.ToLower(text)
	for _, pattern := range experiencePatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		years, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		return &years
	}
	return nil
}

// ExtractEducation reports which degree levels the text mentions.
// Presence only; fields of study are not captured.
func (e *Engine) ExtractEducation(text string) []string {
	lower := strings.ToLower(text)
	var labels []string
	for _, degree := range degreePatterns {
		if degree.pattern.MatchString(lower) {
			labels = append(labels, degree.label)
		}
	}
	return labels
}
