package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	// Everything outside word characters, whitespace and basic
	// punctuation is replaced by a space before tokenization.
	disallowedChars = regexp.MustCompile(`[^\w\s.,!?-]`)
	tokenBoundaries = regexp.MustCompile(`[\s.,!?]+`)
)

const minTokenLength = 3

// Normalizer turns raw text into a canonical token set: cleaned,
// lower-cased, stopword-filtered, lemmatized, deduplicated. Given the
// fixed stopword list and dictionary it is fully deterministic.
type Normalizer struct {
	lemmatizer *golem.Lemmatizer
}

func NewNormalizer() (*Normalizer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemmatizer dictionary: %w", err)
	}
	return &Normalizer{lemmatizer: lemmatizer}, nil
}

// CleanText collapses whitespace, strips disallowed characters and
// lower-cases. Exposed separately because feature extraction matches
// against cleaned-but-untokenized text.
func CleanText(text string) string {
	text = whitespaceRuns.ReplaceAllString(strings.TrimSpace(text), " ")
	text = disallowedChars.ReplaceAllString(text, " ")
	return strings.ToLower(text)
}

// Normalize produces the canonical token set for a text body. Tokens
// shorter than three characters or present in the stopword list are
// dropped before lemmatization.
func (n *Normalizer) Normalize(text string) *domain.TokenSet {
	set := domain.NewTokenSet()
	for _, token := range tokenBoundaries.Split(CleanText(text), -1) {
		if token == "" || isStopword(token) {
			continue
		}
		if len([]rune(token)) < minTokenLength {
			continue
		}
		set.Add(n.lemmatizer.Lemma(token))
	}
	return set
}
