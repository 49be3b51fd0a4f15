package model

import "fmt"

// AuditResult is the backend's analysis of a source document.
// It is created once per analyze call and replaced, never merged, by the next.
type AuditResult struct {
	StructureSuggestions []StructureSuggestion `json:"structure_suggestions"`
	LinkReviews          []LinkReview          `json:"link_reviews"`
}

// ValidationError describes why a decoded value breaks the data model.
type ValidationError struct {
	// Field is the JSON path of the offending value.
	Field string

	// Reason is a short description of the problem.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks the audit against the data model: every suggestion has a
// unique non-empty id and a known kind, and every link review has a URL.
// Duplicate link URLs are allowed; they collapse into one selection entry.
func (a *AuditResult) Validate() error {
	seen := make(map[string]struct{}, len(a.StructureSuggestions))
	for i, s := range a.StructureSuggestions {
		field := fmt.Sprintf("structure_suggestions[%d]", i)
		if s.ID == "" {
			return &ValidationError{Field: field + ".id", Reason: "missing id"}
		}
		if _, dup := seen[s.ID]; dup {
			return &ValidationError{Field: field + ".id", Reason: fmt.Sprintf("duplicate id %q", s.ID)}
		}
		seen[s.ID] = struct{}{}
		if !s.Kind.Valid() {
			return &ValidationError{Field: field + ".type", Reason: fmt.Sprintf("unknown kind %q", s.Kind)}
		}
	}

	for i, l := range a.LinkReviews {
		if l.URL == "" {
			return &ValidationError{Field: fmt.Sprintf("link_reviews[%d].url", i), Reason: "missing url"}
		}
	}
	return nil
}

// SuggestionIDs returns the suggestion ids in audit order.
func (a *AuditResult) SuggestionIDs() []string {
	ids := make([]string, 0, len(a.StructureSuggestions))
	for _, s := range a.StructureSuggestions {
		ids = append(ids, s.ID)
	}
	return ids
}

// LinkURLs returns the distinct link URLs in order of first appearance.
func (a *AuditResult) LinkURLs() []string {
	urls := make([]string, 0, len(a.LinkReviews))
	seen := make(map[string]struct{}, len(a.LinkReviews))
	for _, l := range a.LinkReviews {
		if _, dup := seen[l.URL]; dup {
			continue
		}
		seen[l.URL] = struct{}{}
		urls = append(urls, l.URL)
	}
	return urls
}

// HasSuggestion reports whether id names a suggestion of this audit.
func (a *AuditResult) HasSuggestion(id string) bool {
	for _, s := range a.StructureSuggestions {
		if s.ID == id {
			return true
		}
	}
	return false
}

// HasLink reports whether url is reviewed by this audit.
func (a *AuditResult) HasLink(url string) bool {
	for _, l := range a.LinkReviews {
		if l.URL == url {
			return true
		}
	}
	return false
}

// Suggestions returns the full suggestion list, never nil.
func (a *AuditResult) Suggestions() []StructureSuggestion {
	if a.StructureSuggestions == nil {
		return []StructureSuggestion{}
	}
	return a.StructureSuggestions
}
