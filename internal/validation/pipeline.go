package validation

import (
	"log/slog"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/samber/lo"
)

// Checker is one independent rule in the validation pipeline. Errors is
// only meaningful immediately after a Check call that returned false.
// Checkers are stateful and therefore not safe for concurrent use; build
// a fresh Pipeline per generation request.
type Checker interface {
	// Check inspects the document body against the request, returning
	// true when the rule passes.
	Check(body string, req *domain.GenerationRequest) bool

	// Errors returns the violations recorded by the last failing Check.
	Errors() []string

	// Name returns the stable checker name used as the aggregation key.
	Name() string
}

// Pipeline runs every checker unconditionally and aggregates failures
// into a domain.ValidationErrors set keyed by checker name.
type Pipeline struct {
	checkers []Checker
	logger   *slog.Logger
}

// DefaultCheckers returns fresh instances of all built-in checkers in
// their canonical order.
func DefaultCheckers() []Checker {
	return []Checker{
		NewKeywordDensityChecker(),
		NewComplianceChecker(),
		NewStructureChecker(),
		NewWordCountChecker(),
		NewContactLinkChecker(),
	}
}

// NewPipeline builds a pipeline of fresh built-in checkers. enabled
// filters by checker name; empty means all.
func NewPipeline(enabled []string, logger *slog.Logger) *Pipeline {
	checkers := DefaultCheckers()
	if len(enabled) > 0 {
		checkers = lo.Filter(checkers, func(c Checker, _ int) bool {
			return lo.Contains(enabled, c.Name())
		})
	}
	return &Pipeline{checkers: checkers, logger: logger}
}

// NewPipelineWith builds a pipeline over explicit checker instances,
// primarily for tests and for callers appending custom rules.
func NewPipelineWith(logger *slog.Logger, checkers ...Checker) *Pipeline {
	return &Pipeline{checkers: checkers, logger: logger}
}

// Run checks the document body with every configured checker. An empty
// result means the document passes.
func (p *Pipeline) Run(body string, req *domain.GenerationRequest) domain.ValidationErrors {
	errs := domain.ValidationErrors{}
	for _, checker := range p.checkers {
		if checker.Check(body, req) {
			continue
		}
		messages := checker.Errors()
		errs.Add(checker.Name(), messages...)
		p.logger.Warn("validation checker failed",
			"checker", checker.Name(),
			"violations", len(messages))
	}
	return errs
}
