package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nao1215/blogrefresh/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchProcessor refines multiple documents concurrently.
type BatchProcessor struct {
	// pipelineFactory creates the pipeline for one URL. Each call must
	// return a pipeline with its own session.
	pipelineFactory func(target string) *Pipeline

	// concurrency is the maximum number of concurrent runs.
	concurrency int

	logger *slog.Logger

	// progress is called as each run completes, from the worker goroutine.
	progress func(report *model.RefreshReport, index int)

	results []*model.RefreshReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent runs.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithProgress sets a function called as each run completes, in completion
// order. It is called from the worker goroutines and must be safe for
// concurrent use.
func WithProgress(fn func(report *model.RefreshReport, index int)) BatchOption {
	return func(b *BatchProcessor) {
		b.progress = fn
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func(target string) *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
		results:         make([]*model.RefreshReport, 0),
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch refines urls concurrently within the concurrency limit.
// Reports are returned in input order, including failed ones; a failed run
// does not stop the others. The error is non-nil only when ctx ended.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler, and each result is written to its input index so
// the output order never depends on which backend call returns first.
// Completion-order reporting goes through WithProgress instead.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, urls []string) ([]*model.RefreshReport, error) {
	bp.logger.Info("starting batch processing",
		"total_urls", len(urls),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	bp.results = make([]*model.RefreshReport, len(urls))

	err := bp.run(ctx, urls, func(report *model.RefreshReport, index int) {
		bp.mu.Lock()
		bp.results[index] = report
		bp.mu.Unlock()
		if bp.progress != nil {
			bp.progress(report, index)
		}
	})

	// Runs that never started because ctx ended still get a report.
	for i, r := range bp.results {
		if r == nil {
			r = model.NewRefreshReport(urls[i])
			recordError(r, ctx.Err())
			bp.results[i] = r
		}
	}

	bp.logger.Info("batch processing complete",
		"total_urls", len(urls),
		"elapsed", time.Since(startTime),
	)

	return bp.results, err
}

func (bp *BatchProcessor) run(ctx context.Context, urls []string, done func(*model.RefreshReport, int)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, target := range urls {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("refining document",
				"url", target,
				"index", i+1,
				"total", len(urls),
			)

			report := model.NewRefreshReport(target)
			if err := bp.pipelineFactory(target).Execute(ctx, report); err != nil {
				bp.logger.Warn("refine failed", "url", target, "error", err)
			} else {
				bp.logger.Info("refine completed", "url", target)
			}

			done(report, i)
			return nil
		})
	}

	return g.Wait()
}
