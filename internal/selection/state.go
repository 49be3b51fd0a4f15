package selection

import (
	"fmt"
	"slices"

	"github.com/nao1215/blogrefresh/internal/model"
)

// State is the approval state of one review.
type State struct {
	// accepted holds the ids of approved structure suggestions.
	accepted Set

	// kept holds the URLs of links that stay in the generated content.
	kept Set

	// suggestions and links are the audit's ids and URLs in audit order.
	// They bound what toggles may touch and are shared between states.
	suggestions []string
	links       []string
}

// Initialize returns the default state for a freshly loaded audit:
// every suggestion accepted and every link kept.
//
// Design decision: Review is opt-out. The user usually wants most of the
// audit applied, so rejecting the few unwanted items is fewer keystrokes
// than approving the rest.
func Initialize(audit *model.AuditResult) State {
	suggestions := audit.SuggestionIDs()
	links := audit.LinkURLs()
	return State{
		accepted:    NewSet(suggestions...),
		kept:        NewSet(links...),
		suggestions: suggestions,
		links:       links,
	}
}

// ToggleSuggestion flips the approval of suggestion id.
func ToggleSuggestion(s State, id string) (State, error) {
	if !s.knowsSuggestion(id) {
		return s, fmt.Errorf("%w: %q", ErrUnknownSuggestion, id)
	}
	next := s.clone()
	if next.accepted.Has(id) {
		delete(next.accepted, id)
	} else {
		next.accepted[id] = struct{}{}
	}
	return next, nil
}

// ToggleLink flips whether the link at url is kept.
func ToggleLink(s State, url string) (State, error) {
	if !s.knowsLink(url) {
		return s, fmt.Errorf("%w: %q", ErrUnknownLink, url)
	}
	next := s.clone()
	if next.kept.Has(url) {
		delete(next.kept, url)
	} else {
		next.kept[url] = struct{}{}
	}
	return next, nil
}

// RejectSuggestion removes id from the accepted set. Unlike
// ToggleSuggestion it is idempotent.
func RejectSuggestion(s State, id string) (State, error) {
	if !s.knowsSuggestion(id) {
		return s, fmt.Errorf("%w: %q", ErrUnknownSuggestion, id)
	}
	next := s.clone()
	delete(next.accepted, id)
	return next, nil
}

// RemoveLink removes url from the kept set. Unlike ToggleLink it is
// idempotent.
func RemoveLink(s State, url string) (State, error) {
	if !s.knowsLink(url) {
		return s, fmt.Errorf("%w: %q", ErrUnknownLink, url)
	}
	next := s.clone()
	delete(next.kept, url)
	return next, nil
}

// SelectAllSuggestions returns the full id set of audit, for a bulk
// "Select All".
func SelectAllSuggestions(audit *model.AuditResult) Set {
	return NewSet(audit.SuggestionIDs()...)
}

// SelectNoSuggestions returns the empty set, for a bulk "Reject All".
func SelectNoSuggestions() Set {
	return NewSet()
}

// WithAccepted replaces the accepted set. Ids the audit does not know are
// dropped.
func WithAccepted(s State, accepted Set) State {
	next := s.clone()
	next.accepted = NewSet()
	for _, id := range s.suggestions {
		if accepted.Has(id) {
			next.accepted[id] = struct{}{}
		}
	}
	return next
}

// IsAccepted reports whether suggestion id is approved.
func (s State) IsAccepted(id string) bool {
	return s.accepted.Has(id)
}

// IsKept reports whether the link at url is kept.
func (s State) IsKept(url string) bool {
	return s.kept.Has(url)
}

// AcceptedIDs returns the accepted ids in audit order.
func (s State) AcceptedIDs() []string {
	return s.accepted.Ordered(s.suggestions)
}

// KeptURLs returns the kept URLs in audit order.
func (s State) KeptURLs() []string {
	return s.kept.Ordered(s.links)
}

// AcceptedCount returns the number of accepted suggestions.
func (s State) AcceptedCount() int {
	return s.accepted.Len()
}

// KeptCount returns the number of kept links.
func (s State) KeptCount() int {
	return s.kept.Len()
}

// Equal reports whether both states select the same items.
func (s State) Equal(other State) bool {
	return s.accepted.Equal(other.accepted) && s.kept.Equal(other.kept)
}

func (s State) clone() State {
	return State{
		accepted:    s.accepted.Clone(),
		kept:        s.kept.Clone(),
		suggestions: s.suggestions,
		links:       s.links,
	}
}

func (s State) knowsSuggestion(id string) bool {
	return slices.Contains(s.suggestions, id)
}

func (s State) knowsLink(url string) bool {
	return slices.Contains(s.links, url)
}
