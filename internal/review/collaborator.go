package review

import (
	"context"
	"log/slog"

	"github.com/nao1215/blogrefresh/internal/model"
)

// Analyzer audits a document. backend.Client implements it.
type Analyzer interface {
	Analyze(ctx context.Context, pageURL string) (*model.AuditResult, error)
}

// Generator produces final markup from an approved selection.
// backend.Client implements it.
type Generator interface {
	Generate(ctx context.Context, req model.GenerationRequest) (model.GeneratedContent, error)
}

// Option configures a controller.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
