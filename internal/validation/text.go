package validation

import (
	"strings"

	"golang.org/x/net/html"
)

// stripTags parses the body as HTML and returns its visible text with
// tags removed. Script and style subtrees contribute nothing. Parsing is
// lenient, matching how the content will be rendered downstream.
func stripTags(body string) string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		// Fall back to the raw body; the structure checker owns
		// reporting unparseable markup.
		return body
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(b.String())
}

// countWords tokenizes on whitespace and returns the token count.
func countWords(text string) int {
	return len(strings.Fields(text))
}

// WordCount strips markup from the body and counts whitespace-delimited
// words, the same way the word-count checker does.
func WordCount(body string) int {
	return countWords(stripTags(body))
}

// attrVal returns the value of the named attribute on the node, or "".
func attrVal(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// headingLevel returns 1..6 for h1..h6 element nodes and 0 otherwise.
func headingLevel(n *html.Node) int {
	if n.Type != html.ElementNode || len(n.Data) != 2 || n.Data[0] != 'h' {
		return 0
	}
	if n.Data[1] < '1' || n.Data[1] > '6' {
		return 0
	}
	return int(n.Data[1] - '0')
}

// nodeText returns the concatenated visible text of a subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
