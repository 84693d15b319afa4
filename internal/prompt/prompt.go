// Package prompt assembles the model prompt from a generation request and
// its author persona. The orchestration core treats the builder as an
// opaque string producer; the wording here is not load-bearing for any
// control flow.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// Builder produces the model prompt for one request.
type Builder interface {
	Build(req *domain.GenerationRequest) (string, error)
}

const articleTemplate = `You are {{.Author.Name}}, {{.Author.JobTitle}} at {{.Author.Company}}.
Expertise: {{join .Author.Expertise ", "}}.
Bio: {{.Author.Bio}}

Write a {{.ContentType}} article in {{.Locale.Name}} for readers in {{.Locale.Country}} (currency {{.Locale.Currency}}).
Focus keyword: "{{.FocusKeyword}}". Search intent: {{.SearchIntent}}.
Related keywords: {{join .RelatedKeywords ", "}}.

Requirements:
- Total length between {{.WordCountMin}} and {{.WordCountMax}} words.
- Introduction of about {{.IntroWordCount}} words before the first H2 heading.
- Conclusion section of about {{.ConclusionWordCount}} words under an H2 heading titled "Conclusion".
- Main sections of about {{.SectionWordCount}} words, each under its own H2 heading; use at least two H2 headings and never skip heading levels.
- Pure HTML only: paragraphs, headings, lists, tables. No Markdown, no inline styles, no scripts.
- Include at least {{.MinFAQCount}} FAQ entries.
- Link exactly once to {{.ContactURL}} with target="_blank" and rel="nofollow". Do not link to social media.

Respond with a single JSON object with the keys "title", "meta_description", "excerpt", "content" and "faqs" (an array of objects with "question" and "answer").`

// TemplateBuilder renders the built-in article template.
type TemplateBuilder struct {
	tmpl *template.Template
}

// NewTemplateBuilder parses the built-in template.
func NewTemplateBuilder() (*TemplateBuilder, error) {
	tmpl, err := template.New("article").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(articleTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse article prompt template: %w", err)
	}
	return &TemplateBuilder{tmpl: tmpl}, nil
}

// Build renders the prompt for the request.
func (b *TemplateBuilder) Build(req *domain.GenerationRequest) (string, error) {
	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// StaticBuilder returns a fixed prompt; used in tests.
type StaticBuilder struct {
	Prompt string
	Err    error
}

// Build returns the configured prompt or error.
func (b *StaticBuilder) Build(_ *domain.GenerationRequest) (string, error) {
	return b.Prompt, b.Err
}
