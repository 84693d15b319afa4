package service

import (
	"errors"
	"testing"

	"github.com/draftforge/draftforge-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedOutput = `Sure! Here is the article you asked for:

{
  "title": "Standing Desk Setup Guide",
  "meta_description": "How to set up a standing desk correctly.",
  "excerpt": "A practical guide to standing desks.",
  "content": "<h2>Why</h2><p>Because posture matters.</p><h2>How</h2><p>Raise the desk.</p>",
  "faqs": [
    {"question": "How tall?", "answer": "Elbow height."},
    {"question": "How long?", "answer": "Alternate hourly."}
  ]
}

Let me know if you need revisions.`

func TestParseDocumentTolerantOfProse(t *testing.T) {
	t.Parallel()

	doc, err := parseDocument(wellFormedOutput)
	require.NoError(t, err)

	assert.Equal(t, "Standing Desk Setup Guide", doc.Title)
	assert.Equal(t, "How to set up a standing desk correctly.", doc.MetaDescription)
	assert.Equal(t, "A practical guide to standing desks.", doc.Excerpt)
	assert.Contains(t, doc.Content, "<h2>Why</h2>")
	require.Len(t, doc.FAQs, 2)
	assert.Equal(t, "How tall?", doc.FAQs[0].Question)
}

func TestParseDocumentFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
	}{
		{"no_json", "I could not produce an article this time."},
		{"unbalanced", "here { is nothing"},
		{"invalid_json", "{not json at all}"},
		{"missing_field", `{"title": "T", "meta_description": "M", "excerpt": "E", "content": "<p>C</p>"}`},
		{"empty_title", `{"title": "", "meta_description": "M", "excerpt": "E", "content": "<p>C</p>", "faqs": []}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseDocument(tc.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, generation.ErrMalformedOutput),
				"expected ErrMalformedOutput, got %v", err)
		})
	}
}
