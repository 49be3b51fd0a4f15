package render

import (
	"strconv"
	"strings"
	"unicode"
)

type listState struct {
	ordered bool
	count   int
}

// textWriter accumulates rendered text and collapses whitespace the way a
// browser would outside <pre>.
type textWriter struct {
	buf strings.Builder

	// lineStart is true when nothing has been written on the current line.
	lineStart bool

	// space is true when a separating space is pending.
	space bool

	// newlines counts the trailing newlines in buf.
	newlines int

	pre   int
	lists []listState
}

func (w *textWriter) text(s string) {
	if s == "" {
		return
	}
	if unicode.IsSpace(rune(s[0])) {
		w.space = true
	}
	words := strings.Fields(s)
	for i, word := range words {
		if (i > 0 || w.space) && !w.lineStart {
			w.buf.WriteByte(' ')
		}
		w.write(word)
	}
	if len(words) > 0 && unicode.IsSpace(rune(s[len(s)-1])) {
		w.space = true
	}
}

func (w *textWriter) raw(s string) {
	for _, line := range strings.SplitAfter(s, "\n") {
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, "\n") {
			w.buf.WriteString(strings.TrimSuffix(line, "\n"))
			w.newline()
			continue
		}
		w.write(line)
	}
}

// prefix writes s at the start of a line, e.g. a list marker.
func (w *textWriter) prefix(s string) {
	w.write(s)
	w.lineStart = true
}

func (w *textWriter) write(s string) {
	w.buf.WriteString(s)
	w.lineStart = false
	w.space = false
	w.newlines = 0
}

func (w *textWriter) newline() {
	w.buf.WriteByte('\n')
	w.newlines++
	w.lineStart = true
	w.space = false
}

// breakLine ends the current line unless it is empty.
func (w *textWriter) breakLine() {
	if w.buf.Len() > 0 && w.newlines == 0 {
		w.newline()
	}
}

// paragraph ends the current line and leaves one blank line.
func (w *textWriter) paragraph() {
	if w.buf.Len() == 0 {
		return
	}
	w.breakLine()
	if w.newlines < 2 {
		w.newline()
	}
}

func (w *textWriter) listMarker() string {
	depth := len(w.lists)
	if depth == 0 {
		return "- "
	}
	indent := strings.Repeat("  ", depth-1)
	l := &w.lists[depth-1]
	l.count++
	if l.ordered {
		return indent + strconv.Itoa(l.count) + ". "
	}
	return indent + "- "
}
