package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/analysis"
	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
	"github.com/kirillkom/ats-resume-analyzer/internal/core/ports"
)

// AnalyzeResumeUseCase runs the full analysis pipeline over raw
// document bytes: extract, normalize, derive features, score against
// the optional job description and generate suggestions. Results are
// memoized by content fingerprint.
//
// The fingerprint covers document bytes only, not the job description:
// a hit returns the stored result even when the current call carries a
// different job description. This mirrors the upstream contract; fold
// the job description into the key if that trade-off ever changes.
type AnalyzeResumeUseCase struct {
	extractor ports.TextExtractor
	cache     ports.ResultCache
	engine    *analysis.Engine
	cacheTTL  time.Duration
	now       func() time.Time
}

func NewAnalyzeResumeUseCase(
	extractor ports.TextExtractor,
	cache ports.ResultCache,
	engine *analysis.Engine,
	cacheTTL time.Duration,
) *AnalyzeResumeUseCase {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &AnalyzeResumeUseCase{
		extractor: extractor,
		cache:     cache,
		engine:    engine,
		cacheTTL:  cacheTTL,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (uc *AnalyzeResumeUseCase) Analyze(
	ctx context.Context,
	content []byte,
	filename, jobDescription string,
) (*domain.AnalysisResult, error) {
	fingerprint := Fingerprint(content)
	if cached, ok := uc.cache.Get(ctx, fingerprint); ok {
		return cached, nil
	}

	text, err := uc.extractor.Extract(ctx, content, filename)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.WrapError(domain.ErrEmptyExtraction, "extract text",
			errors.New("empty or whitespace-only extraction"))
	}

	keywords := uc.engine.Normalize(text)
	skills := uc.engine.ExtractSkills(text)
	experienceYears := uc.engine.ExtractExperienceYears(text)
	education := uc.engine.ExtractEducation(text)

	score := 0.0
	matched := domain.NewTokenSet()
	missing := domain.NewTokenSet()
	if jobDescription != "" {
		jobKeywords := uc.engine.Normalize(jobDescription)
		score, matched, missing = uc.engine.Score(keywords, jobKeywords)
	}

	result := &domain.AnalysisResult{
		ExtractedText:   text,
		Keywords:        keywords.Tokens(),
		Skills:          skills,
		ExperienceYears: experienceYears,
		Education:       education,
		ATSScore:        score,
		Suggestions:     uc.engine.Suggest(keywords, missing),
		MatchedKeywords: matched.Tokens(),
		MissingKeywords: missing.Tokens(),
		AnalyzedAt:      uc.now(),
	}

	uc.cache.Set(ctx, fingerprint, result, uc.cacheTTL)
	return result, nil
}

// Fingerprint derives the cache key for a document's raw bytes.
func Fingerprint(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
