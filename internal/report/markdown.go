package report

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/nao1215/blogrefresh/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format, for sharing a review
// in a pull request or an issue.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteReview outputs the review screen as Markdown.
func (w *MarkdownWriter) WriteReview(view *ReviewView) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Review Changes")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + view.URL + "`"},
			{"Structure", view.Summary.StructureLabel()},
			{"Links", view.Summary.LinksLabel()},
		},
	})
	md.PlainText("")

	accepted := make(map[string]bool, len(view.Audit.StructureSuggestions))
	for _, id := range view.Selection.AcceptedIDs() {
		accepted[id] = true
	}
	kept := make(map[string]bool, len(view.Audit.LinkReviews))
	for _, u := range view.Selection.KeptURLs() {
		kept[u] = true
	}
	w.writeSuggestions(md, view.Audit, accepted)
	w.writeLinks(md, view.Audit, kept)

	return len(md.String()), md.Build()
}

// Write outputs the result of a refine run as Markdown.
func (w *MarkdownWriter) Write(report *model.RefreshReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Blog Refresh Report")
	md.PlainText("")

	rows := [][]string{
		{"URL", "`" + report.URL + "`"},
		{"Date", report.DateRefined.Format("2006-01-02 15:04:05 MST")},
		{"Status", w.getStatusText(report)},
	}
	if report.AuditID != "" {
		rows = append(rows, []string{"Audit ID", "`" + report.AuditID + "`"})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeAlert(md, report)

	if report.Audit != nil {
		d := newDecisions(report.Request)
		w.writeSummary(md, report)
		w.writeSuggestions(md, report.Audit, d.accepted)
		w.writeLinks(md, report.Audit, d.kept)
	}

	switch {
	case report.DryRun && report.Request != nil:
		md.H2("Generation Request")
		md.PlainText("")
		data, err := json.MarshalIndent(report.Request, "", "  ")
		if err == nil {
			md.CodeBlocks(markdown.SyntaxHighlight("json"), string(data))
			md.PlainText("")
		}
	case report.Renderable:
		md.H2("Article")
		md.PlainText("")
		md.Details("Generated HTML", "\n```html\n"+report.HTML+"\n```\n")
		md.PlainText("")
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) getStatusText(report *model.RefreshReport) string {
	switch {
	case report.Failed():
		return "❌ Error - " + errorMessage(report)
	case report.DryRun:
		return "📝 Dry run"
	case report.GuardMessage != "":
		return "⚠️ Rendering error"
	case report.Renderable:
		return "✅ Complete"
	default:
		return "Incomplete"
	}
}

func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.RefreshReport) {
	switch {
	case report.Failed():
		md.Cautionf("Refresh failed: %s", errorMessage(report))
	case report.GuardMessage != "":
		md.Warningf("%s", report.GuardMessage)
	case report.DryRun:
		md.Note("Generation was skipped. The request below is what would be sent.")
	case report.KeptCount() < report.LinkCount():
		md.Importantf("%d link(s) will be removed from the article.", report.LinkCount()-report.KeptCount())
	default:
		md.Tip("All reviewed links are kept.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.RefreshReport) {
	md.H2("Summary")
	md.PlainText("")

	accepted, kept := report.AcceptedCount(), report.KeptCount()
	md.Table(markdown.TableSet{
		Header: []string{"Item", "Selected", "Total"},
		Rows: [][]string{
			{"Structure changes", strconv.Itoa(accepted), strconv.Itoa(report.SuggestionCount())},
			{"Links kept", strconv.Itoa(kept), strconv.Itoa(report.LinkCount())},
		},
	})
	md.PlainText("")

	if report.LinkCount() > 0 {
		w.writePieChart(md, kept, report.LinkCount()-kept)
	}
}

// writePieChart writes a mermaid pie chart of link decisions.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, kept, removed int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Link Decisions"),
		piechart.WithShowData(true),
	)
	if kept > 0 {
		chart.LabelAndIntValue("Kept", uint64(kept))
	}
	if removed > 0 {
		chart.LabelAndIntValue("Removed", uint64(removed))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeSuggestions(md *markdown.Markdown, audit *model.AuditResult, accepted map[string]bool) {
	md.H2("Structure Suggestions")
	md.PlainText("")

	if len(audit.StructureSuggestions) == 0 {
		md.PlainText("No structure suggestions.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(audit.StructureSuggestions))
	for i, s := range audit.StructureSuggestions {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			"`" + s.ID + "`",
			KindLabel(s.Kind),
			s.Heading(),
			sectionList(s.TargetSectionIDs),
			SuggestionDecision(accepted[s.ID]),
			truncateString(s.Rationale, 60),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "ID", "Kind", "Heading", "Sections", "Decision", "Reason"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeLinks(md *markdown.Markdown, audit *model.AuditResult, kept map[string]bool) {
	md.H2("Links")
	md.PlainText("")

	if len(audit.LinkReviews) == 0 {
		md.PlainText("No links found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(audit.LinkReviews))
	for i, l := range audit.LinkReviews {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			l.URL,
			StatusLabel(l.Status),
			LinkDecision(kept[l.URL]),
			truncateString(l.Rationale, 60),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "URL", "Status", "Decision", "Reason"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [blogrefresh](https://github.com/nao1215/blogrefresh)*")
}
