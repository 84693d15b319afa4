package generation

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/samber/lo"
)

// Registry holds named provider instances per capability. Providers are
// registered explicitly at startup; lookups are safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	text  map[string]TextGenerator
	image map[string]ImageSearcher
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		text:  make(map[string]TextGenerator),
		image: make(map[string]ImageSearcher),
	}
}

// RegisterText adds a text provider under its own name. Registering the
// same name twice replaces the earlier instance.
func (r *Registry) RegisterText(p TextGenerator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text[p.Name()] = p
}

// RegisterImage adds an image provider under its own name.
func (r *Registry) RegisterImage(p ImageSearcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.image[p.Name()] = p
}

// Text looks up a text provider by name.
func (r *Registry) Text(name string) (TextGenerator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.text[name]
	return p, ok
}

// Image looks up an image provider by name.
func (r *Registry) Image(name string) (ImageSearcher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.image[name]
	return p, ok
}

// TextNames returns the registered text provider names, sorted.
func (r *Registry) TextNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := lo.Keys(r.text)
	sort.Strings(names)
	return names
}

// ImageNames returns the registered image provider names, sorted.
func (r *Registry) ImageNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := lo.Keys(r.image)
	sort.Strings(names)
	return names
}

// SelectorConfig fixes the default choice and fallback order per capability.
type SelectorConfig struct {
	DefaultText   string
	TextFallbacks []string

	DefaultImage   string
	ImageFallbacks []string
}

// Selector picks a provider for one request. Candidate order: explicit
// session override, then the name carried on the request, then the
// configured default; whichever of those resolves first is the primary.
// If the primary is unregistered or unavailable the configured fallback
// list is walked in order.
type Selector struct {
	registry *Registry
	cfg      SelectorConfig
	logger   *slog.Logger
}

// NewSelector creates a Selector over the given registry.
func NewSelector(registry *Registry, cfg SelectorConfig, logger *slog.Logger) *Selector {
	return &Selector{registry: registry, cfg: cfg, logger: logger}
}

// SelectText resolves the text provider for a request. override is the
// session-level override, requested the name carried on the request;
// either may be empty. Returns ErrNoProvider when no candidate is
// registered and available.
func (s *Selector) SelectText(override, requested string) (TextGenerator, error) {
	for _, name := range s.candidates(override, requested, s.cfg.DefaultText, s.cfg.TextFallbacks) {
		p, ok := s.registry.Text(name)
		if !ok {
			s.logger.Warn("text provider not registered", "provider", name)
			continue
		}
		if !p.Available() {
			s.logger.Warn("text provider unavailable", "provider", name)
			continue
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: text generation", ErrNoProvider)
}

// SelectImage resolves the image provider for a request. Callers treat
// ErrNoProvider as non-fatal: generation proceeds without images.
func (s *Selector) SelectImage(override, requested string) (ImageSearcher, error) {
	for _, name := range s.candidates(override, requested, s.cfg.DefaultImage, s.cfg.ImageFallbacks) {
		p, ok := s.registry.Image(name)
		if !ok {
			s.logger.Warn("image provider not registered", "provider", name)
			continue
		}
		if !p.Available() {
			s.logger.Warn("image provider unavailable", "provider", name)
			continue
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: image search", ErrNoProvider)
}

// candidates builds the ordered candidate list: the first non-empty of
// (override, requested, default) is the primary, followed by the fallback
// list with duplicates of the primary removed.
func (s *Selector) candidates(override, requested, def string, fallbacks []string) []string {
	primary := override
	if primary == "" {
		primary = requested
	}
	if primary == "" {
		primary = def
	}

	out := make([]string, 0, len(fallbacks)+1)
	if primary != "" {
		out = append(out, primary)
	}
	for _, name := range fallbacks {
		if name != "" && name != primary {
			out = append(out, name)
		}
	}
	return out
}
