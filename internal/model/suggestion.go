package model

import (
	"bytes"
	"encoding/json"
)

// SuggestionKind is the operation a structure suggestion proposes.
type SuggestionKind string

const (
	// SuggestionKindMerge combines the target sections under a new heading.
	SuggestionKindMerge SuggestionKind = "merge"

	// SuggestionKindDelete removes the target sections.
	SuggestionKindDelete SuggestionKind = "delete"
)

// Valid reports whether k is one of the kinds the backend may propose.
func (k SuggestionKind) Valid() bool {
	return k == SuggestionKindMerge || k == SuggestionKindDelete
}

// String returns the wire representation of the kind.
func (k SuggestionKind) String() string {
	return string(k)
}

// ParseSuggestionKind converts a user supplied string into a SuggestionKind.
// It returns false when the string names no known kind.
func ParseSuggestionKind(s string) (SuggestionKind, bool) {
	k := SuggestionKind(s)
	return k, k.Valid()
}

// StructureSuggestion is a proposed structural change to the audited document.
//
// The JSON object received from the backend is retained verbatim and emitted
// again by MarshalJSON. The generate endpoint reconstructs the final structure
// from the full candidate list, so fields this program does not model must
// survive the round trip unchanged.
//
// Design decision: We keep the raw bytes next to the decoded fields rather
// than adding catch-all map fields, so the backend can extend the schema
// without this program re-encoding and reordering what it sent.
type StructureSuggestion struct {
	// ID identifies the suggestion. Unique within one AuditResult.
	ID string

	// Kind is merge or delete.
	Kind SuggestionKind

	// ProposedHeading is the heading of the merged section. Nil for deletes
	// and for merges that keep the original heading.
	ProposedHeading *string

	// Rationale explains why the change is proposed.
	Rationale string

	// TargetSectionIDs lists the sections the change applies to.
	TargetSectionIDs []int

	raw json.RawMessage
}

// suggestionWire is the JSON shape of a suggestion.
type suggestionWire struct {
	ID               string  `json:"id"`
	Kind             string  `json:"type"`
	ProposedHeading  *string `json:"new_heading,omitempty"`
	Rationale        string  `json:"reason"`
	TargetSectionIDs []int   `json:"target_section_ids"`
}

// UnmarshalJSON decodes a suggestion and keeps a copy of the raw object.
func (s *StructureSuggestion) UnmarshalJSON(data []byte) error {
	var w suggestionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	s.ID = w.ID
	s.Kind = SuggestionKind(w.Kind)
	s.ProposedHeading = w.ProposedHeading
	s.Rationale = w.Rationale
	s.TargetSectionIDs = w.TargetSectionIDs
	s.raw = bytes.Clone(data)
	return nil
}

// MarshalJSON emits the object exactly as it was received. Suggestions built
// in code are encoded from their fields.
func (s StructureSuggestion) MarshalJSON() ([]byte, error) {
	if len(s.raw) > 0 {
		return s.raw, nil
	}
	return json.Marshal(suggestionWire{
		ID:               s.ID,
		Kind:             string(s.Kind),
		ProposedHeading:  s.ProposedHeading,
		Rationale:        s.Rationale,
		TargetSectionIDs: s.TargetSectionIDs,
	})
}

// Heading returns the proposed heading, or "Remove Section" when the
// suggestion carries none.
func (s StructureSuggestion) Heading() string {
	if s.ProposedHeading != nil && *s.ProposedHeading != "" {
		return *s.ProposedHeading
	}
	return "Remove Section"
}
