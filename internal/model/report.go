package model

import "time"

// RefreshReport is the outcome of one refine run over a single document URL.
// The pipeline fills it step by step; report writers read it.
type RefreshReport struct {
	// === Input ===

	// URL is the document that was audited.
	URL string `json:"url"`

	// DateRefined is when the run started.
	DateRefined time.Time `json:"date_refined"`

	// === Audit ===

	// AuditID is the identity assigned to the audit when it was stored.
	AuditID string `json:"audit_id,omitempty"`

	// Audit is the backend audit, nil when analysis failed.
	Audit *AuditResult `json:"audit,omitempty"`

	// === Generation ===

	// Request is the payload sent (or, in dry-run mode, prepared) for generation.
	Request *GenerationRequest `json:"request,omitempty"`

	// HTML is the generated markup.
	HTML string `json:"html,omitempty"`

	// Renderable is true when HTML passed the result guard.
	Renderable bool `json:"renderable"`

	// GuardMessage explains a failed guard verdict.
	GuardMessage string `json:"guard_message,omitempty"`

	// === Run State ===

	// PerformedSteps lists the pipeline steps that completed.
	PerformedSteps []string `json:"performed_steps"`

	// DryRun is true when generation was skipped on purpose.
	DryRun bool `json:"dry_run,omitempty"`

	// Error is the error that stopped the run.
	Error error `json:"-"`

	// ErrorMessage is Error rendered for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewRefreshReport creates an empty report for url.
func NewRefreshReport(url string) *RefreshReport {
	return &RefreshReport{
		URL:            url,
		DateRefined:    time.Now(),
		PerformedSteps: make([]string, 0),
	}
}

// SuggestionCount returns the number of suggestions in the audit.
func (r *RefreshReport) SuggestionCount() int {
	if r.Audit == nil {
		return 0
	}
	return len(r.Audit.StructureSuggestions)
}

// LinkCount returns the number of distinct links in the audit.
func (r *RefreshReport) LinkCount() int {
	if r.Audit == nil {
		return 0
	}
	return len(r.Audit.LinkURLs())
}

// AcceptedCount returns how many suggestions the request accepts.
func (r *RefreshReport) AcceptedCount() int {
	if r.Request == nil {
		return 0
	}
	return len(r.Request.AcceptedSuggestionIDs)
}

// KeptCount returns how many links the request keeps.
func (r *RefreshReport) KeptCount() int {
	if r.Request == nil {
		return 0
	}
	return len(r.Request.KeptLinkURLs)
}

// Failed reports whether the run stopped on an error.
func (r *RefreshReport) Failed() bool {
	return r.Error != nil || r.ErrorMessage != ""
}
