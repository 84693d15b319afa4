package domain

import (
	"sort"
	"strings"
	"time"
)

// FAQ is one question/answer pair attached to an article.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GeneratedDocument is the mutable intermediate produced by parsing raw
// provider output. It lives only inside one generation attempt: validation
// failures discard it and the next attempt builds a fresh one.
type GeneratedDocument struct {
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	Excerpt         string `json:"excerpt"`
	Content         string `json:"content"`
	FAQs            []FAQ  `json:"faqs"`
}

// ImageResult is one candidate image returned by an image provider.
type ImageResult struct {
	URL         string  `json:"url"`
	AltText     string  `json:"alt_text"`
	Attribution string  `json:"attribution,omitempty"`
	Relevance   float64 `json:"relevance"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
}

// SortImagesByRelevance orders images descending by relevance score.
// Ordering between equal scores is stable.
func SortImagesByRelevance(images []ImageResult) {
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Relevance > images[j].Relevance
	})
}

// GenerationResponse is the durable artifact of one successful generation.
// It is created once per successful attempt and never mutated afterwards.
type GenerationResponse struct {
	Title           string        `json:"title"`
	MetaDescription string        `json:"meta_description"`
	Excerpt         string        `json:"excerpt"`
	FocusKeyword    string        `json:"focus_keyword"`
	Content         string        `json:"content"`
	FAQs            []FAQ         `json:"faqs"`
	Images          []ImageResult `json:"images"`
	WordCount       int           `json:"word_count"`
	GeneratedAt     time.Time     `json:"generated_at"`
}

// NewGenerationResponse assembles the final response from a validated
// document, its images, and the originating request.
func NewGenerationResponse(doc *GeneratedDocument, images []ImageResult, req *GenerationRequest, wordCount int) *GenerationResponse {
	return &GenerationResponse{
		Title:           doc.Title,
		MetaDescription: doc.MetaDescription,
		Excerpt:         doc.Excerpt,
		FocusKeyword:    req.FocusKeyword,
		Content:         doc.Content,
		FAQs:            doc.FAQs,
		Images:          images,
		WordCount:       wordCount,
		GeneratedAt:     time.Now().UTC(),
	}
}

// ValidationErrors maps a checker name to the ordered violation messages
// it reported. An empty map means the document passed every checker.
type ValidationErrors map[string][]string

// Add appends messages under the given checker name.
func (v ValidationErrors) Add(checker string, messages ...string) {
	v[checker] = append(v[checker], messages...)
}

// Valid reports whether no checker recorded a violation.
func (v ValidationErrors) Valid() bool {
	return len(v) == 0
}

// Error implements the error interface, rendering one line per checker.
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "no validation errors"
	}

	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, name := range names {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(strings.Join(v[name], ", "))
	}
	return b.String()
}
