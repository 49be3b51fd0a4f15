package session

// Screen is a step of the review flow.
type Screen int

const (
	// ScreenEntry asks for a document URL.
	ScreenEntry Screen = iota

	// ScreenReview shows the audit for approval.
	ScreenReview

	// ScreenResult shows the generated content.
	ScreenResult
)

// String returns the screen name.
func (s Screen) String() string {
	switch s {
	case ScreenEntry:
		return "entry"
	case ScreenReview:
		return "review"
	case ScreenResult:
		return "result"
	default:
		return "unknown"
	}
}

// Navigator tracks the current screen of a session and applies the
// precondition redirects of Store.Resolve on every transition.
type Navigator struct {
	store   *Store
	current Screen
}

// NewNavigator returns a Navigator positioned on the entry screen.
func NewNavigator(store *Store) *Navigator {
	return &Navigator{store: store, current: ScreenEntry}
}

// Current returns the screen being shown.
func (n *Navigator) Current() Screen {
	return n.current
}

// Go moves to target, or to the entry screen when target's precondition is
// missing. It returns the screen actually reached.
func (n *Navigator) Go(target Screen) Screen {
	n.current = n.store.Resolve(target)
	return n.current
}

// Refresh re-checks the current screen's precondition.
func (n *Navigator) Refresh() Screen {
	return n.Go(n.current)
}

// StartOver returns to the entry screen. Session state is kept.
func (n *Navigator) StartOver() Screen {
	n.current = ScreenEntry
	return n.current
}
