package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/nao1215/blogrefresh/internal/model"
	"github.com/nao1215/blogrefresh/internal/review"
	"github.com/nao1215/blogrefresh/internal/selection"
)

// Decisions are explicit deselections applied on top of the opt-out
// defaults. The zero value accepts every suggestion and keeps every link.
type Decisions struct {
	// RejectIDs names suggestions to reject.
	RejectIDs []string

	// RejectKinds rejects every suggestion of these kinds.
	RejectKinds []model.SuggestionKind

	// RemoveLinks names link URLs to drop.
	RemoveLinks []string
}

// Merge returns the union of d and other.
func (d Decisions) Merge(other Decisions) Decisions {
	return Decisions{
		RejectIDs:   appendUnique(d.RejectIDs, other.RejectIDs...),
		RejectKinds: appendUnique(d.RejectKinds, other.RejectKinds...),
		RemoveLinks: appendUnique(d.RemoveLinks, other.RemoveLinks...),
	}
}

// IsZero reports whether d deselects nothing.
func (d Decisions) IsZero() bool {
	return len(d.RejectIDs) == 0 && len(d.RejectKinds) == 0 && len(d.RemoveLinks) == 0
}

// Apply deselects the named items on c. Ids and URLs the audit does not
// contain are skipped with a warning, since presets are written without
// knowing which items an audit will produce.
func (d Decisions) Apply(c *review.Controller, logger *slog.Logger) error {
	for _, kind := range d.RejectKinds {
		if _, err := c.RejectKind(kind); err != nil {
			return fmt.Errorf("reject kind %s: %w", kind, err)
		}
	}
	for _, id := range d.RejectIDs {
		err := c.RejectSuggestion(id)
		switch {
		case errors.Is(err, selection.ErrUnknownSuggestion):
			logger.Warn("skipping unknown suggestion", "id", id)
		case err != nil:
			return err
		}
	}
	for _, url := range d.RemoveLinks {
		err := c.RemoveLink(url)
		switch {
		case errors.Is(err, selection.ErrUnknownLink):
			logger.Warn("skipping unknown link", "url", url)
		case err != nil:
			return err
		}
	}
	return nil
}

// appendUnique returns dst followed by the items it does not hold yet.
func appendUnique[T comparable](dst []T, items ...T) []T {
	out := slices.Clone(dst)
	for _, item := range items {
		if !slices.Contains(out, item) {
			out = append(out, item)
		}
	}
	return out
}
