package usecase

import (
	"context"
	"testing"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
)

func TestMatchRejectsEmptyInputs(t *testing.T) {
	uc := NewMatchJobUseCase(newUsecaseEngine(t))

	if _, err := uc.Match(context.Background(), "", "job text"); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput for empty resume text", err)
	}
	if _, err := uc.Match(context.Background(), "resume text", ""); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput for empty job description", err)
	}
}

func TestMatchScoresPlainText(t *testing.T) {
	uc := NewMatchJobUseCase(newUsecaseEngine(t))

	match, err := uc.Match(
		context.Background(),
		"Python developer with SQL and Docker experience",
		"Looking for Python, SQL, leadership",
	)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}

	if match.MatchPercentage != 50.0 {
		t.Fatalf("MatchPercentage = %v, want 50.0", match.MatchPercentage)
	}
	if match.PassProbability != 70.0 {
		t.Fatalf("PassProbability = %v, want 70.0", match.PassProbability)
	}
	if len(match.Gaps) != 2 {
		t.Fatalf("Gaps = %v, want two entries", match.Gaps)
	}
	var hasLeadership bool
	for _, gap := range match.Gaps {
		if gap == "leadership" {
			hasLeadership = true
		}
	}
	if !hasLeadership {
		t.Fatalf("Gaps = %v, want leadership present", match.Gaps)
	}
	if len(match.LearningResources) != len(match.Gaps) {
		t.Fatalf("LearningResources = %v, want one per gap", match.LearningResources)
	}
}

func TestMatchPassProbabilityCappedAtHundred(t *testing.T) {
	uc := NewMatchJobUseCase(newUsecaseEngine(t))

	match, err := uc.Match(
		context.Background(),
		"python sql docker leadership communication",
		"python sql",
	)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if match.MatchPercentage != 100.0 {
		t.Fatalf("MatchPercentage = %v, want 100.0", match.MatchPercentage)
	}
	if match.PassProbability != 100.0 {
		t.Fatalf("PassProbability = %v, want 100.0", match.PassProbability)
	}
}

func TestMatchLearningResourcesCappedAtFive(t *testing.T) {
	uc := NewMatchJobUseCase(newUsecaseEngine(t))

	match, err := uc.Match(
		context.Background(),
		"unrelated text here",
		"python sql docker kubernetes tensorflow pytorch leadership",
	)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(match.Gaps) <= 5 {
		t.Fatalf("Gaps = %v, expected more than five for this job text", match.Gaps)
	}
	if len(match.LearningResources) != 5 {
		t.Fatalf("LearningResources = %v, want exactly five", match.LearningResources)
	}
}
