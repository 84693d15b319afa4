package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// profanityThreshold is how many profanity hits a document tolerates
// before the compliance screen fails it.
const profanityThreshold = 3

// Blocklists for the compliance screen. Any single hit in the first four
// fails the document; profanity fails only past the threshold.
var (
	adultTerms = []string{
		"pornography", "explicit adult content", "xxx rated", "escort service", "strip club",
	}

	violenceHateTerms = []string{
		"ethnic cleansing", "racial slur", "incite violence", "mass shooting", "glorify terrorism",
	}

	illegalActivityTerms = []string{
		"buy illegal drugs", "counterfeit documents", "stolen credit card", "money laundering scheme", "hire a hacker",
	}

	dangerousProductTerms = []string{
		"untraceable firearm", "pipe bomb", "ghost gun kit", "homemade explosive", "poison recipe",
	}

	profanityTerms = []string{
		"damn", "bastard", "bullshit", "asshole", "piss off",
	}
)

// ComplianceChecker screens the visible text against fixed blocklists of
// terms that would make the article unpublishable.
type ComplianceChecker struct {
	errs []string
}

// NewComplianceChecker creates a ComplianceChecker.
func NewComplianceChecker() *ComplianceChecker {
	return &ComplianceChecker{}
}

// Name returns the checker's aggregation key.
func (c *ComplianceChecker) Name() string {
	return "compliance"
}

// Errors returns the violations recorded by the last failing Check.
func (c *ComplianceChecker) Errors() []string {
	return c.errs
}

// Check lowercases the tag-stripped text and scans the blocklists.
func (c *ComplianceChecker) Check(body string, _ *domain.GenerationRequest) bool {
	c.errs = nil

	text := strings.ToLower(stripTags(body))

	categories := []struct {
		label string
		terms []string
	}{
		{"adult content", adultTerms},
		{"violence or hate speech", violenceHateTerms},
		{"illegal activity", illegalActivityTerms},
		{"dangerous products", dangerousProductTerms},
	}

	for _, cat := range categories {
		for _, term := range cat.terms {
			if strings.Contains(text, term) {
				c.errs = append(c.errs, fmt.Sprintf(
					"content contains blocked %s term %q", cat.label, term))
			}
		}
	}

	// Profanity is tolerated in small doses; count whole-word hits.
	profanityCount := 0
	for _, term := range profanityTerms {
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
		profanityCount += len(pattern.FindAllStringIndex(text, -1))
	}
	if profanityCount > profanityThreshold {
		c.errs = append(c.errs, fmt.Sprintf(
			"content contains %d profanity occurrences, more than the allowed %d",
			profanityCount, profanityThreshold))
	}

	return len(c.errs) == 0
}
