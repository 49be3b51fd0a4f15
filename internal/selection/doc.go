// Package selection derives and updates the per-item approval state of a
// review.
//
// Selection follows an opt-out model: Initialize accepts every structure
// suggestion and keeps every link of the audit, so a wrong "invalid" verdict
// never silently drops a real link. The user deselects what they reject.
//
// All functions are pure. A State is never modified in place; every update
// returns a new State, so callers can keep earlier values for comparison or
// undo.
//
// Links are keyed by URL. Link reviews that share a URL collapse into one
// selection entry and are toggled together.
package selection
