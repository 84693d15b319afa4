// Package service implements the generation orchestration loop: prompt
// assembly, provider selection with fallback, retried invocation, output
// parsing, image attachment, validation, and bounded regeneration. It is
// the programmatic entry point of the engine.
package service
