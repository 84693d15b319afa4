package validation

import (
	"strings"
	"testing"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplianceCheckerCleanContent(t *testing.T) {
	t.Parallel()

	checker := NewComplianceChecker()
	req := &domain.GenerationRequest{}

	ok := checker.Check("<p>A friendly article about brewing coffee at home.</p>", req)
	require.True(t, ok)
	assert.Empty(t, checker.Errors())
}

func TestComplianceCheckerHardBlocklists(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"adult", "<p>Visit our escort service today.</p>"},
		{"violence", "<p>They planned to incite violence downtown.</p>"},
		{"illegal", "<p>Learn about a money laundering scheme.</p>"},
		{"dangerous", "<p>How to build a ghost gun kit.</p>"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			checker := NewComplianceChecker()
			ok := checker.Check(tc.body, &domain.GenerationRequest{})
			require.False(t, ok, "a single hit must fail the screen")
			assert.NotEmpty(t, checker.Errors())
		})
	}
}

func TestComplianceCheckerCaseInsensitive(t *testing.T) {
	t.Parallel()

	checker := NewComplianceChecker()
	ok := checker.Check("<p>MONEY LAUNDERING SCHEME exposed</p>", &domain.GenerationRequest{})
	require.False(t, ok)
}

func TestComplianceCheckerProfanityThreshold(t *testing.T) {
	t.Parallel()

	checker := NewComplianceChecker()
	req := &domain.GenerationRequest{}

	// Three hits are tolerated.
	body := "<p>" + strings.Repeat("damn annoying thing. ", 3) + "</p>"
	assert.True(t, checker.Check(body, req), "3 profanity hits should pass")

	// The fourth hit fails the screen.
	body = "<p>" + strings.Repeat("damn annoying thing. ", 4) + "</p>"
	require.False(t, checker.Check(body, req))
	require.Len(t, checker.Errors(), 1)
	assert.Contains(t, checker.Errors()[0], "profanity")
}
