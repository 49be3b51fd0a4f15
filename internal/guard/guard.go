package guard

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MinContentLength is the default threshold in characters. Content must be
// strictly longer to render.
const MinContentLength = 100

// ErrDegenerateContent is returned when generated content is too short.
var ErrDegenerateContent = errors.New("generated content is too short to be a full article")

// Panel texts shown instead of the article.
const (
	PanelTitle    = "Rendering Error"
	PanelGuidance = "The backend returned an incomplete article. Go back to the review screen and generate again."
)

// Verdict is the outcome of a check.
type Verdict struct {
	// Renderable is true when the content may be shown as an article.
	Renderable bool

	// Length is the content length in characters (Unicode code points).
	Length int

	// Threshold is the length the content had to exceed.
	Threshold int
}

// Err returns ErrDegenerateContent with details, or nil when renderable.
func (v Verdict) Err() error {
	if v.Renderable {
		return nil
	}
	return fmt.Errorf("%w: %d characters, need more than %d", ErrDegenerateContent, v.Length, v.Threshold)
}

// Message returns the text of the rendering-error panel, or "" when
// renderable.
func (v Verdict) Message() string {
	if v.Renderable {
		return ""
	}
	return fmt.Sprintf("%s: the generated content has only %d characters. %s", PanelTitle, v.Length, PanelGuidance)
}

// Guard checks generated markup against a length threshold.
type Guard struct {
	threshold int
}

// New returns a Guard with the given threshold. Negative values fall back
// to MinContentLength; zero renders any non-empty content.
func New(threshold int) *Guard {
	if threshold < 0 {
		threshold = MinContentLength
	}
	return &Guard{threshold: threshold}
}

// Threshold returns the configured threshold.
func (g *Guard) Threshold() int {
	return g.threshold
}

// Check returns the verdict for html.
func (g *Guard) Check(html string) Verdict {
	n := utf8.RuneCountInString(html)
	return Verdict{
		Renderable: n > g.threshold,
		Length:     n,
		Threshold:  g.threshold,
	}
}

// Check applies the default threshold.
func Check(html string) Verdict {
	return New(MinContentLength).Check(html)
}
