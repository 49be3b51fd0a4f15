package report

import (
	"strconv"
	"strings"

	"github.com/nao1215/blogrefresh/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// KindLabel returns the display name of a suggestion kind, e.g. "Merge".
func KindLabel(k model.SuggestionKind) string {
	// Casers keep state; one per call.
	return cases.Title(language.English).String(string(k))
}

// StatusLabel returns the display name of a link status. Anything but
// valid or invalid is shown as UNKNOWN.
func StatusLabel(s model.LinkStatus) string {
	return cases.Upper(language.English).String(string(s.Verdict()))
}

// SuggestionDecision returns ACCEPTED or REJECTED.
func SuggestionDecision(accepted bool) string {
	if accepted {
		return "ACCEPTED"
	}
	return "REJECTED"
}

// LinkDecision returns KEPT or REMOVED.
func LinkDecision(kept bool) string {
	if kept {
		return "KEPT"
	}
	return "REMOVED"
}

// checkbox returns the marker of a selectable row.
func checkbox(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}

// sectionList formats target section ids, e.g. "1, 2".
func sectionList(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

// decisions indexes the accepted ids and kept URLs of a request.
type decisions struct {
	accepted map[string]bool
	kept     map[string]bool
}

func newDecisions(req *model.GenerationRequest) decisions {
	d := decisions{accepted: map[string]bool{}, kept: map[string]bool{}}
	if req == nil {
		return d
	}
	for _, id := range req.AcceptedSuggestionIDs {
		d.accepted[id] = true
	}
	for _, u := range req.KeptLinkURLs {
		d.kept[u] = true
	}
	return d
}

// statusText returns the one-line outcome of a run.
func statusText(r *model.RefreshReport) string {
	switch {
	case r.Failed():
		return "ERROR - " + errorMessage(r)
	case r.DryRun:
		return "Dry run (generation skipped)"
	case r.GuardMessage != "":
		return "RENDERING ERROR"
	case r.Renderable:
		return "Complete"
	default:
		return "Incomplete"
	}
}

func errorMessage(r *model.RefreshReport) string {
	if r.ErrorMessage != "" {
		return r.ErrorMessage
	}
	if r.Error != nil {
		return r.Error.Error()
	}
	return ""
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
