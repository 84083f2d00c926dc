package analysis

import (
	"fmt"
	"strings"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
)

const minResumeKeywords = 20

// Suggest derives advisory improvement suggestions. Rules are evaluated
// in fixed order and every applicable rule fires; emission order is the
// only ranking they carry.
func (e *Engine) Suggest(resumeTokens, missing *domain.TokenSet) []string {
	var suggestions []string

	if missing.Len() > 0 {
		top := missing.Tokens()
		if len(top) > 5 {
			top = top[:5]
		}
		suggestions = append(suggestions,
			fmt.Sprintf("Add these keywords to your resume: %s", strings.Join(top, ", ")))
	}

	if resumeTokens.Len() < minResumeKeywords {
		suggestions = append(suggestions,
			"Consider adding more specific skills and keywords to your resume")
	}

	if !e.anyTokenInCategory(resumeTokens, CategorySoftSkills) {
		suggestions = append(suggestions,
			"Include soft skills like leadership, communication, and teamwork")
	}

	if !e.anyTokenInCategory(resumeTokens, CategoryTechnicalSkills) {
		suggestions = append(suggestions,
			"Add technical skills relevant to your target position")
	}

	return suggestions
}

func (e *Engine) anyTokenInCategory(tokens *domain.TokenSet, category string) bool {
	for _, entry := range e.vocabulary.Entries(category) {
		if tokens.Contains(entry) {
			return true
		}
	}
	return false
}
