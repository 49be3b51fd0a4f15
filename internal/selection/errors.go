package selection

import "errors"

// Selection errors. Both leave the state unchanged.
var (
	// ErrUnknownSuggestion is returned when an id is not part of the audit
	// the state was initialized from.
	ErrUnknownSuggestion = errors.New("unknown structure suggestion")

	// ErrUnknownLink is returned when a URL is not reviewed by the audit
	// the state was initialized from.
	ErrUnknownLink = errors.New("unknown link")
)
