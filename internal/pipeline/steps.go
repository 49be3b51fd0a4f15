package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/blogrefresh/internal/guard"
	"github.com/nao1215/blogrefresh/internal/model"
	"github.com/nao1215/blogrefresh/internal/review"
	"github.com/nao1215/blogrefresh/internal/session"
)

// Backend is the audit and generation service. backend.Client implements it.
type Backend interface {
	review.Analyzer
	review.Generator
}

// AnalyzeStep submits the report URL for auditing.
type AnalyzeStep struct {
	entry *review.EntryController
	store *session.Store
}

// NewAnalyzeStep creates an AnalyzeStep storing into store through entry.
func NewAnalyzeStep(entry *review.EntryController, store *session.Store) *AnalyzeStep {
	return &AnalyzeStep{entry: entry, store: store}
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do executes the analysis.
func (s *AnalyzeStep) Do(ctx context.Context, report *model.RefreshReport) error {
	audit, err := s.entry.Analyze(ctx, report.URL)
	if err != nil {
		return err
	}
	report.Audit = audit
	report.AuditID = s.store.AuditID()
	return nil
}

// DecideStep loads the audit into the review controller, applies the
// decisions and records the generation request.
type DecideStep struct {
	controller *review.Controller
	decisions  Decisions
	logger     *slog.Logger
}

// NewDecideStep creates a DecideStep.
func NewDecideStep(controller *review.Controller, decisions Decisions, logger *slog.Logger) *DecideStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &DecideStep{controller: controller, decisions: decisions, logger: logger}
}

// Name returns the step name.
func (s *DecideStep) Name() string {
	return "decide"
}

// Do executes the review decisions.
func (s *DecideStep) Do(_ context.Context, report *model.RefreshReport) error {
	if _, err := s.controller.Load(); err != nil {
		return err
	}
	if err := s.decisions.Apply(s.controller, s.logger); err != nil {
		return err
	}
	req, err := s.controller.BuildRequest()
	if err != nil {
		return err
	}
	report.Request = &req
	return nil
}

// GenerateStep submits the recorded request. In dry-run mode it only marks
// the report.
type GenerateStep struct {
	controller *review.Controller
	dryRun     bool
}

// NewGenerateStep creates a GenerateStep.
func NewGenerateStep(controller *review.Controller, dryRun bool) *GenerateStep {
	return &GenerateStep{controller: controller, dryRun: dryRun}
}

// Name returns the step name.
func (s *GenerateStep) Name() string {
	return "generate"
}

// Do executes the generation.
func (s *GenerateStep) Do(ctx context.Context, report *model.RefreshReport) error {
	if s.dryRun {
		report.DryRun = true
		return nil
	}
	if report.Request == nil {
		req, err := s.controller.BuildRequest()
		if err != nil {
			return err
		}
		report.Request = &req
	}
	content, err := s.controller.Submit(ctx, *report.Request)
	if err != nil {
		return err
	}
	report.HTML = content.HTML
	return nil
}

// GuardStep checks the session's final markup. A failed check is recorded
// in the report, not returned as an error.
type GuardStep struct {
	guard *guard.Guard
	store *session.Store
}

// NewGuardStep creates a GuardStep.
func NewGuardStep(g *guard.Guard, store *session.Store) *GuardStep {
	return &GuardStep{guard: g, store: store}
}

// Name returns the step name.
func (s *GuardStep) Name() string {
	return "guard"
}

// Do executes the check.
func (s *GuardStep) Do(_ context.Context, report *model.RefreshReport) error {
	if report.DryRun {
		return nil
	}
	v := s.guard.Check(s.store.FinalHTML())
	report.Renderable = v.Renderable
	report.GuardMessage = v.Message()
	return nil
}

// RefineConfig holds the settings of a refine pipeline.
type RefineConfig struct {
	// Decisions deselect items after the opt-out defaults are loaded.
	Decisions Decisions

	// DryRun skips the generate call.
	DryRun bool

	// MinContentLength is the guard threshold.
	MinContentLength int

	// Logger is passed to the controllers and steps.
	Logger *slog.Logger
}

// RefineOption configures a RefineConfig.
type RefineOption func(*RefineConfig)

// WithDecisions sets the decisions applied by the decide step.
func WithDecisions(d Decisions) RefineOption {
	return func(c *RefineConfig) {
		c.Decisions = d
	}
}

// WithDryRun skips the generate call.
func WithDryRun(dryRun bool) RefineOption {
	return func(c *RefineConfig) {
		c.DryRun = dryRun
	}
}

// WithMinContentLength sets the guard threshold.
func WithMinContentLength(n int) RefineOption {
	return func(c *RefineConfig) {
		c.MinContentLength = n
	}
}

// WithStepLogger sets the logger used by controllers and steps.
func WithStepLogger(logger *slog.Logger) RefineOption {
	return func(c *RefineConfig) {
		c.Logger = logger
	}
}

// RefinePipeline returns a pipeline with its own session that runs
// analyze, decide, generate and guard against b.
func RefinePipeline(b Backend, pipelineOpts []Option, opts ...RefineOption) *Pipeline {
	cfg := &RefineConfig{
		MinContentLength: guard.MinContentLength,
		Logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	store := session.New()
	entry := review.NewEntryController(store, b, review.WithLogger(cfg.Logger))
	controller := review.NewController(store, b, review.WithLogger(cfg.Logger))

	p := New(pipelineOpts...)
	p.AddSteps(
		NewAnalyzeStep(entry, store),
		NewDecideStep(controller, cfg.Decisions, cfg.Logger),
		NewGenerateStep(controller, cfg.DryRun),
		NewGuardStep(guard.New(cfg.MinContentLength), store),
	)
	return p
}
