package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
)

// requiredFields are the keys the provider's JSON object must carry.
var requiredFields = []string{"title", "meta_description", "excerpt", "content", "faqs"}

// parseDocument extracts the structured document from raw provider
// output. Providers wrap the JSON object in prose more often than not, so
// the object is located by the first '{' and the last '}' in the text.
func parseDocument(raw string) (*domain.GeneratedDocument, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object found in provider output", generation.ErrMalformedOutput)
	}

	blob := []byte(raw[start : end+1])

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(blob, &keys); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrMalformedOutput, err)
	}

	for _, field := range requiredFields {
		if _, ok := keys[field]; !ok {
			return nil, fmt.Errorf("%w: missing required field %q", generation.ErrMalformedOutput, field)
		}
	}

	var doc domain.GeneratedDocument
	if err := json.Unmarshal(blob, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrMalformedOutput, err)
	}

	if doc.Title == "" || doc.Content == "" {
		return nil, fmt.Errorf("%w: empty title or content", generation.ErrMalformedOutput)
	}

	return &doc, nil
}
