package validation

import (
	"fmt"
	"regexp"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// Keyword density bounds as percentages of total words.
const (
	minKeywordDensity = 0.5
	maxKeywordDensity = 2.5
)

// KeywordDensityChecker verifies the focus keyword appears often enough
// to rank without tripping over-optimization penalties.
type KeywordDensityChecker struct {
	errs []string
}

// NewKeywordDensityChecker creates a KeywordDensityChecker.
func NewKeywordDensityChecker() *KeywordDensityChecker {
	return &KeywordDensityChecker{}
}

// Name returns the checker's aggregation key.
func (c *KeywordDensityChecker) Name() string {
	return "keyword_density"
}

// Errors returns the violations recorded by the last failing Check.
func (c *KeywordDensityChecker) Errors() []string {
	return c.errs
}

// Check computes density = whole-word, case-insensitive occurrences of
// the focus keyword over total whitespace-delimited tokens of the
// tag-stripped body, times 100.
func (c *KeywordDensityChecker) Check(body string, req *domain.GenerationRequest) bool {
	c.errs = nil

	density := KeywordDensity(body, req.FocusKeyword)

	switch {
	case density < minKeywordDensity:
		c.errs = append(c.errs, fmt.Sprintf(
			"keyword density %.2f%% for %q is below the minimum %.1f%%: keyword too sparse",
			density, req.FocusKeyword, minKeywordDensity))
	case density > maxKeywordDensity:
		c.errs = append(c.errs, fmt.Sprintf(
			"keyword density %.2f%% for %q exceeds the maximum %.1f%%: keyword stuffing",
			density, req.FocusKeyword, maxKeywordDensity))
	}

	return len(c.errs) == 0
}

// KeywordDensity returns the density percentage of keyword in the
// tag-stripped body. An empty body or keyword yields 0.
func KeywordDensity(body, keyword string) float64 {
	text := stripTags(body)
	total := countWords(text)
	if total == 0 || keyword == "" {
		return 0
	}

	pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	occurrences := len(pattern.FindAllStringIndex(text, -1))

	return float64(occurrences) / float64(total) * 100
}
