package domain

import "time"

// TokenSet is an ordered set of normalized tokens. Uniqueness is
// enforced on insert; iteration order is first-occurrence order, which
// keeps missing-keyword suggestions stable across runs.
type TokenSet struct {
	tokens []string
	index  map[string]struct{}
}

func NewTokenSet(tokens ...string) *TokenSet {
	s := &TokenSet{index: make(map[string]struct{}, len(tokens))}
	for _, t := range tokens {
		s.Add(t)
	}
	return s
}

func (s *TokenSet) Add(token string) {
	if token == "" {
		return
	}
	if _, ok := s.index[token]; ok {
		return
	}
	s.index[token] = struct{}{}
	s.tokens = append(s.tokens, token)
}

func (s *TokenSet) Contains(token string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[token]
	return ok
}

func (s *TokenSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tokens)
}

// Tokens returns a copy of the tokens in insertion order.
func (s *TokenSet) Tokens() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Intersect keeps this set's tokens that are also in other, preserving
// this set's order.
func (s *TokenSet) Intersect(other *TokenSet) *TokenSet {
	out := NewTokenSet()
	if s == nil || other == nil {
		return out
	}
	for _, t := range s.tokens {
		if other.Contains(t) {
			out.Add(t)
		}
	}
	return out
}

// Subtract keeps this set's tokens that are absent from other,
// preserving this set's order.
func (s *TokenSet) Subtract(other *TokenSet) *TokenSet {
	out := NewTokenSet()
	if s == nil {
		return out
	}
	for _, t := range s.tokens {
		if !other.Contains(t) {
			out.Add(t)
		}
	}
	return out
}

// AnalysisResult is the immutable output of one analysis run. It is
// cached by content fingerprint and persisted as-is on the resume
// record.
type AnalysisResult struct {
	ExtractedText   string    `json:"extracted_text"`
	Keywords        []string  `json:"keywords"`
	Skills          []string  `json:"skills"`
	ExperienceYears *int      `json:"experience_years"`
	Education       []string  `json:"education"`
	ATSScore        float64   `json:"ats_score"`
	Suggestions     []string  `json:"suggestions"`
	MatchedKeywords []string  `json:"matched_keywords"`
	MissingKeywords []string  `json:"missing_keywords"`
	AnalyzedAt      time.Time `json:"analyzed_at"`
}
