package review

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nao1215/blogrefresh/internal/model"
	"github.com/nao1215/blogrefresh/internal/session"
	"golang.org/x/sync/semaphore"
)

// EntryController submits document URLs for auditing.
type EntryController struct {
	store    *session.Store
	analyzer Analyzer
	inflight *semaphore.Weighted
	logger   *slog.Logger
}

// NewEntryController creates an EntryController writing into store.
func NewEntryController(store *session.Store, analyzer Analyzer, opts ...Option) *EntryController {
	o := newOptions(opts)
	return &EntryController{
		store:    store,
		analyzer: analyzer,
		inflight: semaphore.NewWeighted(1),
		logger:   o.logger,
	}
}

// Analyze audits pageURL and loads the result into the session.
// The URL is recorded before the call. On failure the previous audit stays
// in place and the error is returned unchanged, so callers can match
// backend.AnalysisError or backend.MalformedResponseError.
func (c *EntryController) Analyze(ctx context.Context, pageURL string) (*model.AuditResult, error) {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return nil, ErrEmptyURL
	}
	if !c.inflight.TryAcquire(1) {
		return nil, ErrAnalysisInProgress
	}
	defer c.inflight.Release(1)

	c.store.SetURL(pageURL)
	c.logger.Debug("analyzing document", "url", pageURL)

	audit, err := c.analyzer.Analyze(ctx, pageURL)
	if err != nil {
		c.logger.Warn("analysis failed", "url", pageURL, "error", err)
		return nil, err
	}

	id := c.store.SetAudit(audit)
	c.logger.Info("audit loaded",
		"url", pageURL,
		"audit_id", id,
		"suggestions", len(audit.StructureSuggestions),
		"links", len(audit.LinkReviews),
	)
	return audit, nil
}

// Busy reports whether an analysis is pending.
func (c *EntryController) Busy() bool {
	return busy(c.inflight)
}

func busy(sem *semaphore.Weighted) bool {
	if sem.TryAcquire(1) {
		sem.Release(1)
		return false
	}
	return true
}
