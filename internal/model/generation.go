package model

// GenerationRequest is the payload of the generate endpoint.
// AllSuggestions is always the complete, unfiltered candidate list;
// the selection only shapes AcceptedSuggestionIDs and KeptLinkURLs.
type GenerationRequest struct {
	AcceptedSuggestionIDs []string              `json:"accepted_suggestion_ids"`
	AllSuggestions        []StructureSuggestion `json:"all_suggestions"`
	KeptLinkURLs          []string              `json:"kept_link_urls"`
}

// GeneratedContent is the markup returned by the generate endpoint.
// It is stored as received and replaced wholesale by the next generation.
type GeneratedContent struct {
	HTML string `json:"html"`
}
