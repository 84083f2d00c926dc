package analysis

import (
	"math"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
)

// Score computes the set-overlap compatibility score between resume and
// job token sets. No weighting by frequency or importance: the score is
// min(100, 100 * |matched| / |job|) rounded to two decimals, so a
// resume whose tokens are a superset of the job's scores exactly 100.
// An empty job set yields a zero score and empty matched/missing sets.
func (e *Engine) Score(resumeTokens, jobTokens *domain.TokenSet) (float64, *domain.TokenSet, *domain.TokenSet) {
	if jobTokens.Len() == 0 {
		return 0.0, domain.NewTokenSet(), domain.NewTokenSet()
	}

	matched := resumeTokens.Intersect(jobTokens)
	missing := jobTokens.Subtract(resumeTokens)

	score := float64(matched.Len()) / float64(jobTokens.Len()) * 100.0
	score = math.Min(score, 100.0)
	score = math.Round(score*100.0) / 100.0

	return score, matched, missing
}
