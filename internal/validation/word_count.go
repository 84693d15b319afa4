package validation

import (
	"fmt"
	"strings"

	"github.com/draftforge/draftforge-api/internal/domain"
	"golang.org/x/net/html"
)

// sectionTolerance is how far an intro/conclusion section may deviate
// from its requested word target, as a fraction.
const sectionTolerance = 0.10

// Heading markers used to locate the intro and conclusion sections.
var (
	introMarkers      = []string{"introduction", "intro", "getting started"}
	conclusionMarkers = []string{"conclusion", "summary", "final thoughts", "wrapping up"}
)

// WordCountChecker verifies the total word count sits inside the
// requested bounds and that the located intro and conclusion sections hit
// their per-section targets within tolerance.
type WordCountChecker struct {
	errs []string
}

// NewWordCountChecker creates a WordCountChecker.
func NewWordCountChecker() *WordCountChecker {
	return &WordCountChecker{}
}

// Name returns the checker's aggregation key.
func (c *WordCountChecker) Name() string {
	return "word_count"
}

// Errors returns the violations recorded by the last failing Check.
func (c *WordCountChecker) Errors() []string {
	return c.errs
}

// Check strips markup and counts words overall and per located section.
func (c *WordCountChecker) Check(body string, req *domain.GenerationRequest) bool {
	c.errs = nil

	total := countWords(stripTags(body))
	if total < req.WordCountMin {
		c.errs = append(c.errs, fmt.Sprintf(
			"total word count %d is below the minimum %d", total, req.WordCountMin))
	}
	if total > req.WordCountMax {
		c.errs = append(c.errs, fmt.Sprintf(
			"total word count %d exceeds the maximum %d", total, req.WordCountMax))
	}

	sections := splitSections(body)

	if req.IntroWordCount > 0 {
		if words, found := introWords(sections); found {
			c.checkSection("introduction", words, req.IntroWordCount)
		}
	}

	if req.ConclusionWordCount > 0 {
		if words, found := conclusionWords(sections); found {
			c.checkSection("conclusion", words, req.ConclusionWordCount)
		}
	}

	return len(c.errs) == 0
}

func (c *WordCountChecker) checkSection(label string, words, target int) {
	tolerance := float64(target) * sectionTolerance
	deviation := float64(words - target)
	if deviation < 0 {
		deviation = -deviation
	}
	if deviation > tolerance {
		c.errs = append(c.errs, fmt.Sprintf(
			"%s word count %d deviates more than %.0f%% from the target %d",
			label, words, sectionTolerance*100, target))
	}
}

// section is one H2-delimited slice of the document. The zero-index
// section is the preamble before the first H2 and has an empty heading.
type section struct {
	heading string
	text    string
}

// splitSections walks the parsed document in order, cutting a new section
// at every H2 element.
func splitSections(body string) []section {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return []section{{text: body}}
	}

	sections := []section{{}}
	builders := []*strings.Builder{{}}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if headingLevel(n) == 2 {
			sections = append(sections, section{heading: nodeText(n)})
			builders = append(builders, &strings.Builder{})
			return
		}
		if n.Type == html.TextNode {
			b := builders[len(builders)-1]
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	for i := range sections {
		sections[i].text = strings.TrimSpace(builders[i].String())
	}
	return sections
}

// introWords locates the introduction: a section whose heading carries an
// intro marker, else the preamble before the first H2.
func introWords(sections []section) (int, bool) {
	for _, s := range sections {
		if headingMatches(s.heading, introMarkers) {
			return countWords(s.text), true
		}
	}
	if len(sections) > 0 && countWords(sections[0].text) > 0 {
		return countWords(sections[0].text), true
	}
	return 0, false
}

// conclusionWords locates the conclusion: the last H2 whose heading
// carries a conclusion marker, plus everything after it.
func conclusionWords(sections []section) (int, bool) {
	for i := len(sections) - 1; i > 0; i-- {
		if !headingMatches(sections[i].heading, conclusionMarkers) {
			continue
		}
		words := 0
		for _, s := range sections[i:] {
			words += countWords(s.text)
		}
		return words, true
	}
	return 0, false
}

func headingMatches(heading string, markers []string) bool {
	lowered := strings.ToLower(heading)
	for _, marker := range markers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
