package review

import "errors"

var (
	// ErrEmptyURL is returned when Analyze is called without a URL.
	ErrEmptyURL = errors.New("please enter a URL")

	// ErrAnalysisInProgress is returned when an analysis is already pending.
	ErrAnalysisInProgress = errors.New("analysis already in progress")

	// ErrGenerationInProgress is returned when a generation is already pending.
	ErrGenerationInProgress = errors.New("generation already in progress")

	// ErrNoAudit is returned when the session holds no audit to review.
	ErrNoAudit = errors.New("no audit loaded")
)
