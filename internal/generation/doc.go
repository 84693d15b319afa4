// Package generation defines the provider contracts and the orchestration
// primitives built on them: the provider registry with fallback selection,
// the retrying invoker with exponential backoff, and the error taxonomy
// that drives retry decisions. Concrete providers live under
// internal/platform; deterministic test doubles live here so dependent
// packages can exercise the full control flow without network access.
package generation
