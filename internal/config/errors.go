package config

import (
	"errors"
	"fmt"
)

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoTarget is returned when a non-interactive run has no article URL.
	ErrNoTarget = errors.New("no target specified: provide at least one article URL with --yes or --dry-run")

	// ErrInvalidTarget is returned when a target URL is blank.
	ErrInvalidTarget = errors.New("invalid target: article URL must not be blank")

	// ErrInvalidAPIURL is returned when the backend URL is not an absolute http(s) URL.
	ErrInvalidAPIURL = errors.New("invalid API URL: must be an absolute http or https URL")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidMinContentLength is returned when the guard threshold is negative.
	ErrInvalidMinContentLength = errors.New("invalid minimum content length: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidRejectKind is wrapped by KindError.
	ErrInvalidRejectKind = errors.New("invalid suggestion kind: must be merge or delete")
)

// KindError reports an unknown suggestion kind in --reject-kind or a preset.
type KindError struct {
	Kind string
}

func (e *KindError) Error() string {
	return fmt.Sprintf("%v: %q", ErrInvalidRejectKind, e.Kind)
}

// Unwrap lets errors.Is match ErrInvalidRejectKind.
func (e *KindError) Unwrap() error {
	return ErrInvalidRejectKind
}
