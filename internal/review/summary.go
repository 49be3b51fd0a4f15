package review

import "fmt"

// Summary holds the review screen counters.
type Summary struct {
	// Accepted is the number of approved suggestions out of Suggestions.
	Accepted    int
	Suggestions int

	// Kept is the number of kept links out of Links (distinct URLs).
	Kept  int
	Links int
}

// StructureLabel returns the structure counter, e.g. "Structure: 2 changes".
func (s Summary) StructureLabel() string {
	return fmt.Sprintf("Structure: %d changes", s.Accepted)
}

// LinksLabel returns the link counter, e.g. "Links: 3 kept".
func (s Summary) LinksLabel() string {
	return fmt.Sprintf("Links: %d kept", s.Kept)
}

// Rejected returns the number of deselected suggestions.
func (s Summary) Rejected() int {
	return s.Suggestions - s.Accepted
}

// Removed returns the number of dropped links.
func (s Summary) Removed() int {
	return s.Links - s.Kept
}
