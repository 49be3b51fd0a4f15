// Package pipeline runs the refine flow without a human in the loop.
//
// A run is a sequence of steps (analyze, decide, generate, guard), each
// receiving the report built by the previous ones. Every run owns a fresh
// session, so the BatchProcessor can refine many documents concurrently
// with errgroup while each session keeps a single owner.
//
// Decisions replace the interactive review: starting from the opt-out
// defaults, they only deselect what they name.
package pipeline
