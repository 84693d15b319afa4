package validation

import (
	"fmt"
	"strings"

	"github.com/draftforge/draftforge-api/internal/domain"
	"golang.org/x/net/html"
)

// socialMediaDomains are destinations an article must never link to.
// Matched as case-insensitive substrings of the anchor destination.
var socialMediaDomains = []string{
	"facebook.com", "twitter.com", "x.com", "instagram.com", "linkedin.com",
	"tiktok.com", "youtube.com", "pinterest.com", "reddit.com", "snapchat.com",
}

// anchor is one <a> element with the attributes the checker cares about.
type anchor struct {
	href     string
	newTab   bool // target="_blank"
	noFollow bool // rel contains "nofollow"
}

// ContactLinkChecker enforces the outbound-link policy: no social media
// destinations, and exactly one link to the configured contact URL that
// opens in a new tab and carries nofollow; no other anchor may carry
// either marker.
type ContactLinkChecker struct {
	errs []string
}

// NewContactLinkChecker creates a ContactLinkChecker.
func NewContactLinkChecker() *ContactLinkChecker {
	return &ContactLinkChecker{}
}

// Name returns the checker's aggregation key.
func (c *ContactLinkChecker) Name() string {
	return "contact_link"
}

// Errors returns the violations recorded by the last failing Check.
func (c *ContactLinkChecker) Errors() []string {
	return c.errs
}

// Check parses the anchors and applies the link policy.
func (c *ContactLinkChecker) Check(body string, req *domain.GenerationRequest) bool {
	c.errs = nil

	anchors := collectAnchors(body)
	contact := NormalizeURL(req.ContactURL)

	contactMatches := 0
	for _, a := range anchors {
		lowered := strings.ToLower(a.href)
		for _, blocked := range socialMediaDomains {
			if strings.Contains(lowered, blocked) {
				c.errs = append(c.errs, fmt.Sprintf(
					"anchor %q links to a social media domain (%s)", a.href, blocked))
			}
		}

		if NormalizeURL(a.href) == contact {
			contactMatches++
			if !a.newTab || !a.noFollow {
				c.errs = append(c.errs, fmt.Sprintf(
					"contact link %q must open in a new tab and carry rel=\"nofollow\"", a.href))
			}
			continue
		}

		if a.newTab {
			c.errs = append(c.errs, fmt.Sprintf(
				"anchor %q must not carry target=\"_blank\"; only the contact link may", a.href))
		}
		if a.noFollow {
			c.errs = append(c.errs, fmt.Sprintf(
				"anchor %q must not carry rel=\"nofollow\"; only the contact link may", a.href))
		}
	}

	if contactMatches == 0 {
		c.errs = append(c.errs, fmt.Sprintf(
			"content must contain exactly one link to the contact URL %q, found none", req.ContactURL))
	}
	if contactMatches > 1 {
		c.errs = append(c.errs, fmt.Sprintf(
			"content must contain exactly one link to the contact URL %q, found %d",
			req.ContactURL, contactMatches))
	}

	return len(c.errs) == 0
}

// collectAnchors returns every <a> element in document order.
func collectAnchors(body string) []anchor {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var anchors []anchor
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href, _ := attrVal(n, "href")
			target, _ := attrVal(n, "target")
			rel, _ := attrVal(n, "rel")
			anchors = append(anchors, anchor{
				href:     href,
				newTab:   strings.EqualFold(strings.TrimSpace(target), "_blank"),
				noFollow: strings.Contains(strings.ToLower(rel), "nofollow"),
			})
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return anchors
}

// NormalizeURL canonicalizes a URL for comparison: lowercase, scheme and
// leading "www." stripped, trailing slash removed.
func NormalizeURL(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimSuffix(s, "/")
	return s
}
