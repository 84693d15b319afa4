package generation

import (
	"context"
	"sync"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// StubTextGenerator is a deterministic, network-free TextGenerator used to
// exercise the orchestration core in tests. It can return fixed output,
// report itself unavailable, or fail with a configured error; when Outputs
// is set, successive calls walk the slice and the last entry repeats.
type StubTextGenerator struct {
	ProviderName string
	Output       string
	Outputs      []string
	Err          error
	Errs         []error
	Unavailable  bool
	CredsErr     error

	mu    sync.Mutex
	calls int
}

// Generate returns the configured output or error for the current call.
func (s *StubTextGenerator) Generate(_ context.Context, _ string, _ GenerateOptions) (string, error) {
	s.mu.Lock()
	call := s.calls
	s.calls++
	s.mu.Unlock()

	if len(s.Errs) > 0 {
		idx := call
		if idx >= len(s.Errs) {
			idx = len(s.Errs) - 1
		}
		if err := s.Errs[idx]; err != nil {
			return "", err
		}
	} else if s.Err != nil {
		return "", s.Err
	}

	if len(s.Outputs) > 0 {
		idx := call
		if idx >= len(s.Outputs) {
			idx = len(s.Outputs) - 1
		}
		return s.Outputs[idx], nil
	}
	return s.Output, nil
}

// Available reports the configured availability.
func (s *StubTextGenerator) Available() bool {
	return !s.Unavailable
}

// Name returns the configured provider name, defaulting to "stub".
func (s *StubTextGenerator) Name() string {
	if s.ProviderName == "" {
		return "stub"
	}
	return s.ProviderName
}

// ValidateCredentials returns the configured credential error, if any.
func (s *StubTextGenerator) ValidateCredentials(_ context.Context) error {
	return s.CredsErr
}

// Calls returns how many times Generate has been invoked.
func (s *StubTextGenerator) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// StubImageSearcher is a deterministic, network-free ImageSearcher.
type StubImageSearcher struct {
	ProviderName string
	Results      []domain.ImageResult
	Err          error
	Unavailable  bool

	mu    sync.Mutex
	calls int
}

// Search returns the configured results, truncated to limit.
func (s *StubImageSearcher) Search(_ context.Context, _ string, limit int) ([]domain.ImageResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	results := s.Results
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	out := make([]domain.ImageResult, len(results))
	copy(out, results)
	return out, nil
}

// Available reports the configured availability.
func (s *StubImageSearcher) Available() bool {
	return !s.Unavailable
}

// Name returns the configured provider name, defaulting to "stub-images".
func (s *StubImageSearcher) Name() string {
	if s.ProviderName == "" {
		return "stub-images"
	}
	return s.ProviderName
}

// Calls returns how many times Search has been invoked.
func (s *StubImageSearcher) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
