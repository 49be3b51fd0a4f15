package app

import (
	"context"
	"strconv"
	"strings"

	"github.com/nao1215/blogrefresh/internal/guard"
	"github.com/nao1215/blogrefresh/internal/model"
	"github.com/nao1215/blogrefresh/internal/report"
	"github.com/nao1215/blogrefresh/internal/session"
)

const reviewHelp = `Commands:
  list            show the suggestions and links again
  s <n|id>        accept or reject a structure suggestion
  l <n|url>       keep or remove a link
  all             accept every suggestion
  none            reject every suggestion
  generate        generate the refreshed article
  restart         analyze another URL
  quit            exit`

const resultHelp = `Commands:
  show            show the article again
  html            print the generated HTML
  save <path>     write the generated HTML to a file
  back            return to the review screen
  restart         analyze another URL
  quit            exit`

func (s *Session) entryScreen(ctx context.Context) (session.Screen, error) {
	s.println("\nEnter the URL of the blog post to refresh ('quit' to exit).")
	for {
		var pageURL string
		if len(s.queue) > 0 {
			pageURL, s.queue = s.queue[0], s.queue[1:]
			s.printf("URL> %s\n", pageURL)
		} else {
			line, err := s.prompt("URL> ")
			if err != nil {
				return session.ScreenEntry, err
			}
			pageURL = line
		}

		if isQuit(pageURL) {
			return session.ScreenEntry, errQuit
		}
		if strings.TrimSpace(pageURL) != "" {
			s.printf("Analyzing %s ...\n", strings.TrimSpace(pageURL))
		}
		if _, err := s.entry.Analyze(ctx, pageURL); err != nil {
			if ctx.Err() != nil {
				return session.ScreenEntry, ctx.Err()
			}
			s.notice(err)
			continue
		}
		return session.ScreenReview, nil
	}
}

func (s *Session) reviewScreen(ctx context.Context) (session.Screen, error) {
	if _, err := s.review.Load(); err != nil {
		return session.ScreenEntry, nil
	}
	if err := s.showReview(); err != nil {
		return session.ScreenReview, err
	}

	for {
		line, err := s.prompt("review> ")
		if err != nil {
			return session.ScreenReview, err
		}
		cmd, arg := splitCommand(line)
		switch cmd {
		case "":
		case "list", "ls":
			if err := s.showReview(); err != nil {
				return session.ScreenReview, err
			}
		case "s", "suggestion":
			s.toggleSuggestion(arg)
		case "l", "link":
			s.toggleLink(arg)
		case "all":
			s.apply(s.review.SelectAllSuggestions())
		case "none":
			s.apply(s.review.RejectAllSuggestions())
		case "generate", "g":
			if s.generate(ctx) {
				return session.ScreenResult, nil
			}
			if ctx.Err() != nil {
				return session.ScreenReview, ctx.Err()
			}
		case "restart":
			return session.ScreenEntry, nil
		case "help", "?":
			s.println(reviewHelp)
		case "quit", "q", "exit":
			return session.ScreenReview, errQuit
		default:
			s.printf("unknown command %q, type 'help' for the list\n", cmd)
		}
	}
}

func (s *Session) resultScreen() (session.Screen, error) {
	html := s.store.FinalHTML()
	verdict := s.guard.Check(html)
	if err := s.showResult(html, verdict); err != nil {
		return session.ScreenResult, err
	}

	for {
		line, err := s.prompt("result> ")
		if err != nil {
			return session.ScreenResult, err
		}
		cmd, arg := splitCommand(line)
		switch cmd {
		case "":
		case "show":
			if err := s.showResult(html, verdict); err != nil {
				return session.ScreenResult, err
			}
		case "html":
			if !verdict.Renderable {
				s.println(verdict.Message())
				continue
			}
			s.println(html)
		case "save":
			s.save(arg, html, verdict)
		case "back", "b":
			return session.ScreenReview, nil
		case "restart":
			return session.ScreenEntry, nil
		case "help", "?":
			s.println(resultHelp)
		case "quit", "q", "exit":
			return session.ScreenResult, errQuit
		default:
			s.printf("unknown command %q, type 'help' for the list\n", cmd)
		}
	}
}

func (s *Session) showReview() error {
	audit := s.review.Audit()
	state, err := s.review.Selection()
	if err != nil {
		return err
	}
	summary, err := s.review.Summary()
	if err != nil {
		return err
	}
	_, err = s.view.WriteReview(&report.ReviewView{
		URL:       s.store.URL(),
		Audit:     audit,
		Selection: state,
		Summary:   summary,
	})
	if err != nil {
		return err
	}
	s.println("Type 'help' for commands.")
	return nil
}

func (s *Session) showResult(html string, verdict guard.Verdict) error {
	audit, id, _ := s.store.Audit()
	r := model.NewRefreshReport(s.store.URL())
	r.AuditID = id
	r.Audit = audit
	r.HTML = html
	r.Renderable = verdict.Renderable
	r.GuardMessage = verdict.Message()
	if req, err := s.review.BuildRequest(); err == nil {
		r.Request = &req
	}
	if _, err := s.view.Write(r); err != nil {
		return err
	}
	if !verdict.Renderable {
		s.println("Type 'back' to return to the review screen.")
	}
	return nil
}

func (s *Session) toggleSuggestion(arg string) {
	if arg == "" {
		s.println("usage: s <number|id>")
		return
	}
	id := arg
	var err error
	// A matching id wins over a position, so "s 1" toggles the suggestion
	// whose id is "1" when there is one.
	if n, convErr := strconv.Atoi(arg); convErr == nil && !s.knowsSuggestion(arg) {
		id, err = s.review.ToggleSuggestionAt(n)
	} else {
		err = s.review.ToggleSuggestion(arg)
	}
	if err != nil {
		s.notice(err)
		return
	}
	if state, err := s.review.Selection(); err == nil {
		s.printf("%s: %s\n", id, report.SuggestionDecision(state.IsAccepted(id)))
	}
	s.showSummary()
}

func (s *Session) toggleLink(arg string) {
	if arg == "" {
		s.println("usage: l <number|url>")
		return
	}
	url := arg
	var err error
	if n, convErr := strconv.Atoi(arg); convErr == nil && !s.knowsLink(arg) {
		url, err = s.review.ToggleLinkAt(n)
	} else {
		err = s.review.ToggleLink(arg)
	}
	if err != nil {
		s.notice(err)
		return
	}
	if state, err := s.review.Selection(); err == nil {
		s.printf("%s: %s\n", url, report.LinkDecision(state.IsKept(url)))
	}
	s.showSummary()
}

func (s *Session) knowsSuggestion(id string) bool {
	audit := s.review.Audit()
	return audit != nil && audit.HasSuggestion(id)
}

func (s *Session) knowsLink(url string) bool {
	audit := s.review.Audit()
	return audit != nil && audit.HasLink(url)
}

func (s *Session) apply(err error) {
	if err != nil {
		s.notice(err)
		return
	}
	s.showSummary()
}

func (s *Session) showSummary() {
	summary, err := s.review.Summary()
	if err != nil {
		s.notice(err)
		return
	}
	s.printf("%s    %s\n", summary.StructureLabel(), summary.LinksLabel())
}

// generate submits the selection and reports whether markup was committed.
func (s *Session) generate(ctx context.Context) bool {
	s.println("Generating the refreshed article ...")
	if _, err := s.review.Generate(ctx); err != nil {
		if ctx.Err() == nil {
			s.notice(err)
		}
		return false
	}
	return true
}

func (s *Session) save(path, html string, verdict guard.Verdict) {
	if path == "" {
		s.println("usage: save <path>")
		return
	}
	if !verdict.Renderable {
		s.println(verdict.Message())
		return
	}
	if err := s.writeFile(path, []byte(html)); err != nil {
		s.notice(err)
		return
	}
	s.printf("Saved %d bytes to %s\n", len(html), path)
}

// splitCommand splits a line into a lower-cased command and the rest.
func splitCommand(line string) (cmd, arg string) {
	line = strings.TrimSpace(line)
	cmd, arg, _ = strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

func isQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "quit", "q", "exit":
		return true
	}
	return false
}
