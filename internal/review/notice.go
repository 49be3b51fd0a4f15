package review

import (
	"errors"

	"github.com/nao1215/blogrefresh/internal/backend"
)

// Notice returns the text of the blocking notification for err, carrying
// the backend's detail when there is one.
func Notice(err error) string {
	if err == nil {
		return ""
	}

	var aerr *backend.AnalysisError
	var gerr *backend.GenerationError
	var merr *backend.MalformedResponseError
	switch {
	case errors.As(err, &aerr):
		return "Analysis failed: " + aerr.Message()
	case errors.As(err, &gerr):
		return "Generation failed: " + gerr.Message()
	case errors.As(err, &merr):
		return "Unexpected backend response: " + merr.Error()
	default:
		return err.Error()
	}
}
