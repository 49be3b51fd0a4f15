package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/blogrefresh/internal/model"
)

// JSONWriter outputs reports in JSON format for scripts and CI jobs.
// Each Write emits one document followed by a newline, so batch output is
// newline-delimited JSON.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the refine result. ErrorMessage is filled from Error when
// it is empty.
func (w *JSONWriter) Write(report *model.RefreshReport) (int, error) {
	if report.ErrorMessage == "" && report.Error != nil {
		report.ErrorMessage = report.Error.Error()
	}
	return w.writeJSON(report)
}

// reviewJSON is the JSON shape of the review screen.
type reviewJSON struct {
	URL                   string             `json:"url"`
	Audit                 *model.AuditResult `json:"audit"`
	AcceptedSuggestionIDs []string           `json:"accepted_suggestion_ids"`
	KeptLinkURLs          []string           `json:"kept_link_urls"`
	Summary               map[string]int     `json:"summary"`
}

// WriteReview outputs the review screen.
func (w *JSONWriter) WriteReview(view *ReviewView) (int, error) {
	return w.writeJSON(reviewJSON{
		URL:                   view.URL,
		Audit:                 view.Audit,
		AcceptedSuggestionIDs: view.Selection.AcceptedIDs(),
		KeptLinkURLs:          view.Selection.KeptURLs(),
		Summary: map[string]int{
			"accepted":    view.Summary.Accepted,
			"suggestions": view.Summary.Suggestions,
			"kept":        view.Summary.Kept,
			"links":       view.Summary.Links,
		},
	})
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
