package model

// LinkStatus is the backend's validity verdict for a link. The raw string is
// kept as received; Verdict maps it onto the three states the review uses.
type LinkStatus string

const (
	// LinkStatusValid means the backend could resolve the link.
	LinkStatusValid LinkStatus = "valid"

	// LinkStatusInvalid means the backend considers the link broken.
	LinkStatusInvalid LinkStatus = "invalid"

	// LinkStatusUnknown covers missing and unrecognized statuses.
	LinkStatusUnknown LinkStatus = "unknown"
)

// Verdict normalizes the status to valid, invalid or unknown.
func (s LinkStatus) Verdict() LinkStatus {
	switch s {
	case LinkStatusValid, LinkStatusInvalid:
		return s
	default:
		return LinkStatusUnknown
	}
}

// LinkReview is the audit's verdict for one hyperlink of the source document.
// URL is the selection key; reviews sharing a URL collapse into one entry.
type LinkReview struct {
	URL       string     `json:"url"`
	Status    LinkStatus `json:"status,omitempty"`
	Rationale string     `json:"reason"`
}
