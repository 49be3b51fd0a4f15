package review

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nao1215/blogrefresh/internal/model"
	"github.com/nao1215/blogrefresh/internal/selection"
	"github.com/nao1215/blogrefresh/internal/session"
	"golang.org/x/sync/semaphore"
)

// Controller drives the review screen of one session.
type Controller struct {
	store     *session.Store
	generator Generator
	inflight  *semaphore.Weighted
	logger    *slog.Logger

	// mu guards the loaded audit and its selection.
	mu       sync.Mutex
	auditID  string
	audit    *model.AuditResult
	state    selection.State
	hasState bool
}

// NewController creates a Controller reading from and writing to store.
func NewController(store *session.Store, generator Generator, opts ...Option) *Controller {
	o := newOptions(opts)
	return &Controller{
		store:     store,
		generator: generator,
		inflight:  semaphore.NewWeighted(1),
		logger:    o.logger,
	}
}

// Load picks up the session's current audit. The selection is reset to the
// opt-out defaults only when the audit identity differs from the one
// loaded before; reset reports whether that happened.
// ErrNoAudit means the review screen must not be shown.
func (c *Controller) Load() (reset bool, err error) {
	audit, id, ok := c.store.Audit()
	if !ok {
		return false, ErrNoAudit
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hasState && c.auditID == id {
		return false, nil
	}
	c.audit = audit
	c.auditID = id
	c.state = selection.Initialize(audit)
	c.hasState = true
	c.logger.Debug("selection initialized", "audit_id", id,
		"accepted", c.state.AcceptedCount(), "kept", c.state.KeptCount())
	return true, nil
}

// Audit returns the loaded audit, or nil before Load.
func (c *Controller) Audit() *model.AuditResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.audit
}

// Selection returns the current approval state.
func (c *Controller) Selection() (selection.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasState {
		return selection.State{}, ErrNoAudit
	}
	return c.state, nil
}

// ToggleSuggestion flips the approval of suggestion id.
func (c *Controller) ToggleSuggestion(id string) error {
	return c.update(func(s selection.State) (selection.State, error) {
		return selection.ToggleSuggestion(s, id)
	})
}

// ToggleLink flips whether the link at url is kept.
func (c *Controller) ToggleLink(url string) error {
	return c.update(func(s selection.State) (selection.State, error) {
		return selection.ToggleLink(s, url)
	})
}

// ToggleSuggestionAt flips the n-th suggestion (1-based, audit order) and
// returns its id.
func (c *Controller) ToggleSuggestionAt(n int) (string, error) {
	audit := c.Audit()
	if audit == nil {
		return "", ErrNoAudit
	}
	if n < 1 || n > len(audit.StructureSuggestions) {
		return "", fmt.Errorf("%w: no suggestion #%d", selection.ErrUnknownSuggestion, n)
	}
	id := audit.StructureSuggestions[n-1].ID
	return id, c.ToggleSuggestion(id)
}

// ToggleLinkAt flips the n-th reviewed link (1-based, audit order) and
// returns its URL.
func (c *Controller) ToggleLinkAt(n int) (string, error) {
	audit := c.Audit()
	if audit == nil {
		return "", ErrNoAudit
	}
	if n < 1 || n > len(audit.LinkReviews) {
		return "", fmt.Errorf("%w: no link #%d", selection.ErrUnknownLink, n)
	}
	url := audit.LinkReviews[n-1].URL
	return url, c.ToggleLink(url)
}

// RejectSuggestion deselects suggestion id. Calling it twice is harmless.
func (c *Controller) RejectSuggestion(id string) error {
	return c.update(func(s selection.State) (selection.State, error) {
		return selection.RejectSuggestion(s, id)
	})
}

// RejectKind deselects every suggestion of the given kind and returns how
// many suggestions it matched.
func (c *Controller) RejectKind(kind model.SuggestionKind) (int, error) {
	audit := c.Audit()
	if audit == nil {
		return 0, ErrNoAudit
	}
	matched := 0
	for _, s := range audit.StructureSuggestions {
		if s.Kind != kind {
			continue
		}
		if err := c.RejectSuggestion(s.ID); err != nil {
			return matched, err
		}
		matched++
	}
	return matched, nil
}

// RemoveLink drops the link at url. Calling it twice is harmless.
func (c *Controller) RemoveLink(url string) error {
	return c.update(func(s selection.State) (selection.State, error) {
		return selection.RemoveLink(s, url)
	})
}

// SelectAllSuggestions approves every suggestion. Links are untouched.
func (c *Controller) SelectAllSuggestions() error {
	return c.update(func(s selection.State) (selection.State, error) {
		return selection.WithAccepted(s, selection.SelectAllSuggestions(c.audit)), nil
	})
}

// RejectAllSuggestions deselects every suggestion. Links are untouched.
func (c *Controller) RejectAllSuggestions() error {
	return c.update(func(s selection.State) (selection.State, error) {
		return selection.WithAccepted(s, selection.SelectNoSuggestions()), nil
	})
}

// Summary returns the counters of the review screen.
func (c *Controller) Summary() (Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasState {
		return Summary{}, ErrNoAudit
	}
	return Summary{
		Accepted:    c.state.AcceptedCount(),
		Suggestions: len(c.audit.StructureSuggestions),
		Kept:        c.state.KeptCount(),
		Links:       len(c.audit.LinkURLs()),
	}, nil
}

// BuildRequest turns the current selection into a generation request.
func (c *Controller) BuildRequest() (model.GenerationRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasState {
		return model.GenerationRequest{}, ErrNoAudit
	}
	return BuildRequest(c.audit, c.state), nil
}

// Generate builds the request from the current selection and submits it.
func (c *Controller) Generate(ctx context.Context) (model.GeneratedContent, error) {
	req, err := c.BuildRequest()
	if err != nil {
		return model.GeneratedContent{}, err
	}
	return c.Submit(ctx, req)
}

// Submit sends req to the generator and commits the markup into the
// session. Only one submission may be pending; a second one returns
// ErrGenerationInProgress without calling the generator. On failure the
// session's markup is left as it was. A response overtaken by a newer one,
// or by a new audit, is dropped with session.ErrStaleGeneration.
//
// Design decision: We take a store ticket before calling the generator
// rather than holding a lock across the request because:
//  1. The generator call can take seconds and must stay cancellable
//  2. A restart or a new analysis during the call must not block on it
//  3. The ticket alone decides whether the late response still applies
func (c *Controller) Submit(ctx context.Context, req model.GenerationRequest) (model.GeneratedContent, error) {
	if !c.inflight.TryAcquire(1) {
		return model.GeneratedContent{}, ErrGenerationInProgress
	}
	defer c.inflight.Release(1)

	ticket := c.store.BeginGeneration()
	c.logger.Debug("submitting generation",
		"accepted", len(req.AcceptedSuggestionIDs),
		"suggestions", len(req.AllSuggestions),
		"kept_links", len(req.KeptLinkURLs),
	)

	content, err := c.generator.Generate(ctx, req)
	if err != nil {
		c.logger.Warn("generation failed", "error", err)
		return model.GeneratedContent{}, err
	}
	if err := c.store.CommitGeneration(ticket, content); err != nil {
		c.logger.Warn("dropping generation result", "error", err)
		return content, err
	}
	c.logger.Info("generation committed", "html_length", len(content.HTML))
	return content, nil
}

// Busy reports whether a generation is pending.
func (c *Controller) Busy() bool {
	return busy(c.inflight)
}

// update applies fn to the selection. On error the selection is unchanged.
func (c *Controller) update(fn func(selection.State) (selection.State, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasState {
		return ErrNoAudit
	}
	next, err := fn(c.state)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

// BuildRequest projects state into the generate payload. Accepted ids and
// kept URLs follow audit order; all suggestions are attached unfiltered.
// Slices are never nil so they encode as [] rather than null.
func BuildRequest(audit *model.AuditResult, state selection.State) model.GenerationRequest {
	return model.GenerationRequest{
		AcceptedSuggestionIDs: state.AcceptedIDs(),
		AllSuggestions:        audit.Suggestions(),
		KeptLinkURLs:          state.KeptURLs(),
	}
}
