package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/blogrefresh/internal/model"
	"github.com/nao1215/blogrefresh/internal/render"
)

const ruleWidth = 70

// SimpleWriter outputs human-readable text for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose adds rationales and raw section ids.
	verbose bool

	// article controls whether the rendered article is printed.
	article bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithArticle controls whether Write prints the article text.
func WithArticle(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.article = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		article:    true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteReview outputs the review screen.
func (w *SimpleWriter) WriteReview(view *ReviewView) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "REVIEW CHANGES")
	fmt.Fprintf(&sb, "URL: %s\n", view.URL)
	fmt.Fprintf(&sb, "%s    %s\n\n", view.Summary.StructureLabel(), view.Summary.LinksLabel())

	writeSection(&sb, "STRUCTURE SUGGESTIONS")
	if len(view.Audit.StructureSuggestions) == 0 {
		sb.WriteString("  No structure suggestions\n")
	}
	for i, s := range view.Audit.StructureSuggestions {
		fmt.Fprintf(&sb, "  %s %2d. %-6s %s  (%s)\n",
			checkbox(view.Selection.IsAccepted(s.ID)), i+1, KindLabel(s.Kind), s.Heading(), s.ID)
		if s.Rationale != "" {
			fmt.Fprintf(&sb, "         %s\n", s.Rationale)
		}
		if w.verbose {
			fmt.Fprintf(&sb, "         Sections: %s\n", sectionList(s.TargetSectionIDs))
		}
	}
	sb.WriteString("\n")

	writeSection(&sb, "LINK REVIEW")
	if len(view.Audit.LinkReviews) == 0 {
		sb.WriteString("  No links found\n")
	}
	for i, l := range view.Audit.LinkReviews {
		kept := view.Selection.IsKept(l.URL)
		fmt.Fprintf(&sb, "  %s %2d. %-7s %s  %s\n",
			checkbox(kept), i+1, StatusLabel(l.Status), l.URL, LinkDecision(kept))
		if l.Rationale != "" {
			fmt.Fprintf(&sb, "         %s\n", l.Rationale)
		}
	}
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// Write outputs the result of a refine run.
func (w *SimpleWriter) Write(report *model.RefreshReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	if report.Audit != nil {
		w.writeDecisions(&sb, report)
	}
	switch {
	case report.DryRun && report.Request != nil:
		w.writeRequest(&sb, report.Request)
	case report.GuardMessage != "":
		writeSection(&sb, "RENDERING ERROR")
		fmt.Fprintf(&sb, "  %s\n\n", report.GuardMessage)
	case report.Renderable && w.article:
		w.writeArticle(&sb, report)
	}

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.RefreshReport) {
	writeBanner(sb, "BLOG REFRESH REPORT")
	fmt.Fprintf(sb, "URL:         %s\n", report.URL)
	fmt.Fprintf(sb, "Date:        %s\n", report.DateRefined.Format("2006-01-02 15:04:05 MST"))
	if report.AuditID != "" {
		fmt.Fprintf(sb, "Audit ID:    %s\n", report.AuditID)
	}
	fmt.Fprintf(sb, "Status:      %s\n", statusText(report))
	if report.Request != nil {
		fmt.Fprintf(sb, "Structure:   %d of %d changes accepted\n", report.AcceptedCount(), report.SuggestionCount())
		fmt.Fprintf(sb, "Links:       %d of %d kept\n", report.KeptCount(), report.LinkCount())
	}
	if w.verbose && len(report.PerformedSteps) > 0 {
		fmt.Fprintf(sb, "Steps:       %s\n", strings.Join(report.PerformedSteps, ", "))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeDecisions(sb *strings.Builder, report *model.RefreshReport) {
	d := newDecisions(report.Request)

	writeSection(sb, "STRUCTURE DECISIONS")
	if len(report.Audit.StructureSuggestions) == 0 {
		sb.WriteString("  No structure suggestions\n")
	}
	for _, s := range report.Audit.StructureSuggestions {
		fmt.Fprintf(sb, "  %-8s %-6s %s  (%s)\n", SuggestionDecision(d.accepted[s.ID]), KindLabel(s.Kind), s.Heading(), s.ID)
		if w.verbose && s.Rationale != "" {
			fmt.Fprintf(sb, "           %s\n", s.Rationale)
		}
	}
	sb.WriteString("\n")

	writeSection(sb, "LINK DECISIONS")
	if len(report.Audit.LinkReviews) == 0 {
		sb.WriteString("  No links found\n")
	}
	for _, url := range report.Audit.LinkURLs() {
		fmt.Fprintf(sb, "  %-8s %s\n", LinkDecision(d.kept[url]), url)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeRequest(sb *strings.Builder, req *model.GenerationRequest) {
	writeSection(sb, "GENERATION REQUEST")
	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		fmt.Fprintf(sb, "  (unable to encode request: %v)\n\n", err)
		return
	}
	sb.Write(data)
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeArticle(sb *strings.Builder, report *model.RefreshReport) {
	writeSection(sb, "ARTICLE")
	doc, err := render.Parse(strings.NewReader(report.HTML))
	if err != nil {
		sb.WriteString(report.HTML)
		sb.WriteString("\n\n")
		return
	}
	fmt.Fprintf(sb, "Words: %d    Headings: %d    Links: %d\n\n", doc.Words, len(doc.Headings), len(doc.Links))
	sb.WriteString(doc.Text)
	sb.WriteString("\n\n")

	if leftovers := removedLinks(report, doc.Links); len(leftovers) > 0 {
		writeSection(sb, "REMOVED LINKS STILL PRESENT")
		for _, u := range leftovers {
			fmt.Fprintf(sb, "  %s\n", u)
		}
		sb.WriteString("\n")
	}
}

// removedLinks returns the links of the article that the request removed.
func removedLinks(report *model.RefreshReport, links []string) []string {
	if report.Audit == nil || report.Request == nil {
		return nil
	}
	d := newDecisions(report.Request)
	var out []string
	for _, u := range links {
		if report.Audit.HasLink(u) && !d.kept[u] {
			out = append(out, u)
		}
	}
	return out
}

func writeBanner(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	pad := (ruleWidth - len(title)) / 2
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}
