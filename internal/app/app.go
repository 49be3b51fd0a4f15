package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nao1215/blogrefresh/internal/guard"
	"github.com/nao1215/blogrefresh/internal/report"
	"github.com/nao1215/blogrefresh/internal/review"
	"github.com/nao1215/blogrefresh/internal/session"
)

// Backend is the remote service the session talks to.
type Backend interface {
	review.Analyzer
	review.Generator
}

// errQuit ends the loop without an error.
var errQuit = errors.New("quit")

// Session is one interactive run of the Entry, Review and Result screens.
type Session struct {
	in  *bufio.Scanner
	out io.Writer

	store  *session.Store
	nav    *session.Navigator
	entry  *review.EntryController
	review *review.Controller
	guard  *guard.Guard
	view   *report.SimpleWriter

	logger    *slog.Logger
	verbose   bool
	queue     []string
	writeFile func(name string, data []byte) error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger passed to the controllers.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithMinContentLength sets the result guard threshold.
func WithMinContentLength(n int) Option {
	return func(s *Session) {
		s.guard = guard.New(n)
	}
}

// WithVerbose shows section ids and rationales on the screens.
func WithVerbose(verbose bool) Option {
	return func(s *Session) {
		s.verbose = verbose
	}
}

// WithURLs queues URLs that are submitted on the entry screen in turn
// instead of prompting for them.
func WithURLs(urls ...string) Option {
	return func(s *Session) {
		s.queue = append(s.queue, urls...)
	}
}

// WithFileWriter replaces the function used by the save command.
func WithFileWriter(fn func(name string, data []byte) error) Option {
	return func(s *Session) {
		s.writeFile = fn
	}
}

// New creates a Session reading commands from in and drawing screens on out.
func New(b Backend, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		in:     bufio.NewScanner(in),
		out:    out,
		store:  session.New(),
		guard:  guard.New(guard.MinContentLength),
		logger: slog.Default(),
		writeFile: func(name string, data []byte) error {
			return os.WriteFile(name, data, 0600) //nolint:gosec // user-chosen output path
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.nav = session.NewNavigator(s.store)
	s.entry = review.NewEntryController(s.store, b, review.WithLogger(s.logger))
	s.review = review.NewController(s.store, b, review.WithLogger(s.logger))
	s.view = report.NewSimpleWriter(out, report.WithVerbose(s.verbose))
	return s
}

// Store returns the session state.
func (s *Session) Store() *session.Store {
	return s.store
}

// Run drives the screens until the user quits, input ends or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			next session.Screen
			err  error
		)
		switch s.nav.Refresh() {
		case session.ScreenReview:
			next, err = s.reviewScreen(ctx)
		case session.ScreenResult:
			next, err = s.resultScreen()
		default:
			next, err = s.entryScreen(ctx)
		}
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			s.println("Bye.")
			return nil
		}
		if err != nil {
			return err
		}
		if next == session.ScreenEntry {
			s.nav.StartOver()
			continue
		}
		s.nav.Go(next)
	}
}

// prompt prints label and reads one trimmed line. io.EOF means input ended.
func (s *Session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Session) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Session) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

// notice prints a blocking notification for err.
func (s *Session) notice(err error) {
	s.printf("! %s\n", review.Notice(err))
}
