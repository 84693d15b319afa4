package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/draftforge/draftforge-api/internal/domain"
	"golang.org/x/net/html"
)

// maxBareTextLength is the longest run of visible text allowed outside a
// recognized text-container element.
const maxBareTextLength = 20

// markdownPatterns detect Markdown syntax leaking into what must be pure
// HTML. Tested against the raw body before any HTML parsing.
var markdownPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s`),     // heading markers
	regexp.MustCompile(`\*\*[^*\n]+\*\*`),          // bold
	regexp.MustCompile(`(?m)(^|\s)_[^_\n]+_(\s|$)`), // italic
	regexp.MustCompile(`\[[^\]\n]+\]\([^)\n]+\)`),  // link syntax
	regexp.MustCompile("```"),                      // code fence
	regexp.MustCompile("`[^`\n]+`"),                // code span
}

// textContainers are the elements whose descendants may carry prose.
var textContainers = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "td": true, "th": true, "blockquote": true, "caption": true, "figcaption": true,
	"a": true,
}

// StructureChecker enforces the HTML shape of the article: no Markdown
// leakage, no inline styling or scripting, a sane heading hierarchy, and
// all prose inside text containers.
type StructureChecker struct {
	errs []string
}

// NewStructureChecker creates a StructureChecker.
func NewStructureChecker() *StructureChecker {
	return &StructureChecker{}
}

// Name returns the checker's aggregation key.
func (c *StructureChecker) Name() string {
	return "structure"
}

// Errors returns the violations recorded by the last failing Check.
func (c *StructureChecker) Errors() []string {
	return c.errs
}

// Check runs the Markdown screen on the raw body, then parses it as HTML
// and walks the tree.
func (c *StructureChecker) Check(body string, _ *domain.GenerationRequest) bool {
	c.errs = nil

	for _, pattern := range markdownPatterns {
		if pattern.MatchString(body) {
			c.errs = append(c.errs, fmt.Sprintf(
				"content contains Markdown syntax (%s); only HTML markup is allowed", pattern.String()))
			break
		}
	}

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		c.errs = append(c.errs, fmt.Sprintf("content is not parseable HTML: %v", err))
		return false
	}

	h2Count := 0
	prevLevel := 0

	var walk func(n *html.Node, inContainer bool)
	walk = func(n *html.Node, inContainer bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "style":
				c.errs = append(c.errs, "content must not contain <style> elements")
				return
			case "script":
				c.errs = append(c.errs, "content must not contain <script> elements")
				return
			}

			if _, ok := attrVal(n, "style"); ok {
				c.errs = append(c.errs, fmt.Sprintf(
					"element <%s> carries an inline style attribute", n.Data))
			}

			if level := headingLevel(n); level > 0 {
				if level == 2 {
					h2Count++
				}
				if prevLevel > 0 && level > prevLevel+1 {
					c.errs = append(c.errs, fmt.Sprintf(
						"heading hierarchy skips from H%d to H%d", prevLevel, level))
				}
				prevLevel = level
			}

			if textContainers[n.Data] {
				inContainer = true
			}
		}

		if n.Type == html.TextNode && !inContainer {
			text := strings.TrimSpace(n.Data)
			if utf8.RuneCountInString(text) > maxBareTextLength {
				c.errs = append(c.errs, fmt.Sprintf(
					"visible text %q must be wrapped in a text container element",
					truncate(text, 40)))
			}
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child, inContainer)
		}
	}
	walk(doc, false)

	if h2Count < 2 {
		c.errs = append(c.errs, fmt.Sprintf(
			"content must contain at least 2 H2 headings, found %d", h2Count))
	}

	return len(c.errs) == 0
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
