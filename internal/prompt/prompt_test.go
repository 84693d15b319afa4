package prompt

import (
	"testing"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateBuilder(t *testing.T) {
	t.Parallel()

	builder, err := NewTemplateBuilder()
	require.NoError(t, err)

	req := &domain.GenerationRequest{
		FocusKeyword:    "standing desk",
		RelatedKeywords: []string{"ergonomics", "home office"},
		SearchIntent:    domain.IntentInformational,
		ContentType:     domain.ContentTypeHowTo,
		Locale: domain.Locale{
			Code: "en_US", Name: "English (US)", Country: "United States", Currency: "USD",
		},
		Author: domain.AuthorPersona{
			Name: "Dana Whitfield", Company: "Uplift Labs", JobTitle: "Ergonomics Consultant",
			Expertise: []string{"workplace health", "office design"},
			Bio:       "Fifteen years advising on office ergonomics.",
		},
		WordCountMin: 800, WordCountMax: 1200,
		IntroWordCount: 100, ConclusionWordCount: 100, SectionWordCount: 200,
		MinFAQCount: 3,
		ContactURL:  "https://uplift-labs.example/contact",
	}

	prompt, err := builder.Build(req)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Dana Whitfield")
	assert.Contains(t, prompt, "standing desk")
	assert.Contains(t, prompt, "ergonomics, home office")
	assert.Contains(t, prompt, "workplace health, office design")
	assert.Contains(t, prompt, "between 800 and 1200 words")
	assert.Contains(t, prompt, "https://uplift-labs.example/contact")
	assert.Contains(t, prompt, `"faqs"`)
}
