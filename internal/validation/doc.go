// Package validation implements the content compliance pipeline: an
// ordered set of independent rule checkers that each inspect a candidate
// article body against the originating request, with failures aggregated
// per checker. The pipeline never short-circuits; every checker runs so
// the caller sees the full violation picture at once.
package validation
