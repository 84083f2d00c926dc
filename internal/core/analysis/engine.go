package analysis

import (
	"fmt"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
)

// Engine bundles the pure analysis primitives: normalization, feature
// extraction, scoring and suggestion generation. It holds only the
// shared read-only vocabulary and lemmatizer dictionary, so one Engine
// serves concurrent analyses.
type Engine struct {
	vocabulary *SkillVocabulary
	normalizer *Normalizer
}

func NewEngine(vocabulary *SkillVocabulary) (*Engine, error) {
	if vocabulary == nil {
		return nil, fmt.Errorf("engine requires a vocabulary")
	}
	normalizer, err := NewNormalizer()
	if err != nil {
		return nil, fmt.Errorf("init normalizer: %w", err)
	}
	return &Engine{vocabulary: vocabulary, normalizer: normalizer}, nil
}

func (e *Engine) Vocabulary() *SkillVocabulary {
	return e.vocabulary
}

func (e *Engine) Normalize(text string) *domain.TokenSet {
	return e.normalizer.Normalize(text)
}
