package validation

import (
	"strings"
	"testing"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// words builds a paragraph with exactly n words.
func words(n int) string {
	return "<p>" + strings.TrimSpace(strings.Repeat("word ", n)) + "</p>"
}

func TestWordCountCheckerTotalBounds(t *testing.T) {
	t.Parallel()

	req := &domain.GenerationRequest{WordCountMin: 100, WordCountMax: 200}

	checker := NewWordCountChecker()
	ok := checker.Check(words(150), req)
	require.True(t, ok, "errors: %v", checker.Errors())

	checker = NewWordCountChecker()
	require.False(t, checker.Check(words(50), req))
	assert.Contains(t, checker.Errors()[0], "below the minimum")

	checker = NewWordCountChecker()
	require.False(t, checker.Check(words(250), req))
	assert.Contains(t, checker.Errors()[0], "exceeds the maximum")

	// Bounds are inclusive.
	checker = NewWordCountChecker()
	assert.True(t, checker.Check(words(100), req))
	checker = NewWordCountChecker()
	assert.True(t, checker.Check(words(200), req))
}

func TestWordCountCheckerIntroBeforeFirstH2(t *testing.T) {
	t.Parallel()

	req := &domain.GenerationRequest{
		WordCountMin:   50,
		WordCountMax:   500,
		IntroWordCount: 100,
	}

	// Intro of 100 words before the first H2: on target.
	body := words(100) + "<h2>Body</h2>" + words(100)
	checker := NewWordCountChecker()
	require.True(t, checker.Check(body, req), "errors: %v", checker.Errors())

	// Intro of 50 words deviates more than 10% from the 100-word target.
	body = words(50) + "<h2>Body</h2>" + words(100)
	checker = NewWordCountChecker()
	require.False(t, checker.Check(body, req))
	assert.Contains(t, checker.Errors()[0], "introduction")

	// 10% deviation is the edge of tolerance: 110 words pass.
	body = words(110) + "<h2>Body</h2>" + words(100)
	checker = NewWordCountChecker()
	assert.True(t, checker.Check(body, req), "errors: %v", checker.Errors())
}

func TestWordCountCheckerIntroByHeadingMarker(t *testing.T) {
	t.Parallel()

	req := &domain.GenerationRequest{
		WordCountMin:   50,
		WordCountMax:   500,
		IntroWordCount: 100,
	}

	// The section under an "Introduction" H2 wins over the preamble.
	body := "<h2>Introduction</h2>" + words(100) + "<h2>Body</h2>" + words(100)
	checker := NewWordCountChecker()
	require.True(t, checker.Check(body, req), "errors: %v", checker.Errors())

	body = "<h2>Introduction</h2>" + words(40) + "<h2>Body</h2>" + words(160)
	checker = NewWordCountChecker()
	require.False(t, checker.Check(body, req))
	assert.Contains(t, checker.Errors()[0], "introduction")
}

func TestWordCountCheckerConclusion(t *testing.T) {
	t.Parallel()

	req := &domain.GenerationRequest{
		WordCountMin:        50,
		WordCountMax:        500,
		ConclusionWordCount: 80,
	}

	// Conclusion section on target.
	body := words(100) + "<h2>Body</h2>" + words(100) + "<h2>Conclusion</h2>" + words(80)
	checker := NewWordCountChecker()
	require.True(t, checker.Check(body, req), "errors: %v", checker.Errors())

	// Conclusion far off target.
	body = words(100) + "<h2>Body</h2>" + words(160) + "<h2>Final Thoughts</h2>" + words(20)
	checker = NewWordCountChecker()
	require.False(t, checker.Check(body, req))
	assert.Contains(t, checker.Errors()[0], "conclusion")
}

func TestWordCountCheckerNoSectionTargets(t *testing.T) {
	t.Parallel()

	// Zero targets disable the section checks entirely.
	req := &domain.GenerationRequest{WordCountMin: 50, WordCountMax: 500}
	body := words(10) + "<h2>Body</h2>" + words(100)
	checker := NewWordCountChecker()
	assert.True(t, checker.Check(body, req), "errors: %v", checker.Errors())
}
