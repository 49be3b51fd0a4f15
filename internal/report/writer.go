package report

import (
	"io"

	"github.com/nao1215/blogrefresh/internal/model"
	"github.com/nao1215/blogrefresh/internal/review"
	"github.com/nao1215/blogrefresh/internal/selection"
)

// ReviewView is the content of the review screen.
type ReviewView struct {
	// URL is the audited document.
	URL string

	// Audit is the loaded audit.
	Audit *model.AuditResult

	// Selection is the current approval state.
	Selection selection.State

	// Summary holds the counters shown above the lists.
	Summary review.Summary
}

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the result of one refine run.
	Write(report *model.RefreshReport) (int, error)

	// WriteReview outputs the review screen.
	WriteReview(view *ReviewView) (int, error)
}

// MultiWriter writes to multiple Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.RefreshReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteReview outputs the review screen to all configured Writers.
func (m *MultiWriter) WriteReview(view *ReviewView) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteReview(view)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteAll writes each report in order.
func WriteAll(w Writer, reports []*model.RefreshReport) (int, error) {
	var total int
	for _, r := range reports {
		n, err := w.Write(r)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
