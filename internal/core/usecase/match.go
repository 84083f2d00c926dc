package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/analysis"
	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
)

// MatchJobUseCase scores plain resume text against a job description.
// It normalizes the text directly instead of routing through the file
// extractor, since there is no container format to open.
type MatchJobUseCase struct {
	engine *analysis.Engine
}

func NewMatchJobUseCase(engine *analysis.Engine) *MatchJobUseCase {
	return &MatchJobUseCase{engine: engine}
}

func (uc *MatchJobUseCase) Match(_ context.Context, resumeText, jobDescription string) (*domain.JobMatch, error) {
	if resumeText == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "match job", errors.New("resume_text is required"))
	}
	if jobDescription == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "match job", errors.New("job_description is required"))
	}

	resumeTokens := uc.engine.Normalize(resumeText)
	jobTokens := uc.engine.Normalize(jobDescription)
	score, _, missing := uc.engine.Score(resumeTokens, jobTokens)

	gaps := missing.Tokens()
	resources := make([]string, 0, 5)
	for _, gap := range gaps {
		if len(resources) == 5 {
			break
		}
		resources = append(resources, fmt.Sprintf("Learn %s: https://example.com/learn/%s", gap, gap))
	}

	return &domain.JobMatch{
		MatchPercentage:   score,
		Gaps:              gaps,
		LearningResources: resources,
		PassProbability:   math.Min(score+20, 100),
	}, nil
}
