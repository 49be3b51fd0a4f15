package selection

// Set is a set of suggestion ids or link URLs.
type Set map[string]struct{}

// NewSet returns a set holding items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Has reports whether item is in the set.
func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Len returns the number of items.
func (s Set) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for item := range s {
		c[item] = struct{}{}
	}
	return c
}

// Equal reports whether both sets hold the same items.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for item := range s {
		if !other.Has(item) {
			return false
		}
	}
	return true
}

// Ordered returns the members of s in the order they appear in order.
// Items of order that are not members are skipped.
func (s Set) Ordered(order []string) []string {
	out := make([]string, 0, len(s))
	for _, item := range order {
		if s.Has(item) {
			out = append(out, item)
		}
	}
	return out
}
