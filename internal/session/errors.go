package session

import "errors"

// ErrStaleGeneration is returned by CommitGeneration when a newer generation
// has already been committed or the audit was replaced since the ticket was
// issued. The stored markup is left untouched.
var ErrStaleGeneration = errors.New("stale generation result discarded")
