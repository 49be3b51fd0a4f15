package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/nao1215/blogrefresh/internal/app"
	"github.com/nao1215/blogrefresh/internal/backend"
	"github.com/nao1215/blogrefresh/internal/config"
	"github.com/nao1215/blogrefresh/internal/model"
	"github.com/nao1215/blogrefresh/internal/pipeline"
	"github.com/nao1215/blogrefresh/internal/report"
	"github.com/spf13/cobra"
)

// errRefineFailed is returned when at least one article could not be refreshed.
var errRefineFailed = errors.New("refresh failed")

// NewRefineCmd creates the refine command.
func NewRefineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refine [url...]",
		Short: "Audit a blog post, review the changes and regenerate it",
		Long: `Refine runs the full refresh flow for one or more blog posts.

Interactive mode (default) walks through three screens:
  1. Entry:  enter the URL of the post
  2. Review: every structure suggestion starts accepted and every link kept;
             toggle what you disagree with, then 'generate'
  3. Result: read the refreshed article, 'save' it, go 'back' or 'restart'

With --yes the defaults are accepted without prompting. --reject,
--reject-kind, --remove-link and the per-site presets of the configuration
file deselect items. Several URLs are refined concurrently (--batch).
--dry-run stops before generation and prints the request instead.

Examples:
  # Interactive review
  blogrefresh refine https://blog.example.com/2019/old-post

  # Accept everything except deletions, write Markdown
  blogrefresh refine --yes --reject-kind delete -m -o refreshed.md https://blog.example.com/post

  # Show the generation request for several posts as JSON lines
  blogrefresh refine --dry-run --json https://a.example/p1 https://a.example/p2

Configuration file (.blogrefresh) example:
  api_url: "https://refresh.example.com"
  headers:
    X-Api-Key: "..."
  defaults:
    reject_kinds: [delete]
  sites:
    blog.example.com:
      remove_links:
        - "https://dead.example.net/page"`,
		Args: cobra.ArbitraryArgs,
		RunE: runRefineCmd,
	}

	// Mode flags
	cmd.Flags().BoolP("yes", "y", false,
		"Run without the review screens, accepting the defaults")
	cmd.Flags().Bool("dry-run", false,
		"Print the generation request instead of sending it (implies --yes)")

	// Decision flags
	cmd.Flags().StringSlice("reject", nil,
		"Suggestion ids to reject in non-interactive mode")
	cmd.Flags().StringSlice("reject-kind", nil,
		"Suggestion kinds to reject in non-interactive mode (merge, delete)")
	cmd.Flags().StringSlice("remove-link", nil,
		"Link URLs to remove in non-interactive mode")

	// Run flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent refinements")
	cmd.Flags().Int("min-length", config.DefaultMinContentLength,
		"Generated content must be longer than this many characters to render")

	addReportFlags(cmd)

	return cmd
}

// runRefineCmd executes the refine command.
func runRefineCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildRefineConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := newBackend(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Interactive() {
		return runInteractive(ctx, cmd, cfg, client, logger)
	}
	return runRefine(ctx, cmd, cfg, client, logger)
}

// buildRefineConfig adds the refine-specific flags to the common config.
func buildRefineConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return nil, err
	}

	if cfg.Yes, err = cmd.Flags().GetBool("yes"); err != nil {
		return nil, err
	}
	if cfg.DryRun, err = cmd.Flags().GetBool("dry-run"); err != nil {
		return nil, err
	}
	if cfg.Reject, err = cmd.Flags().GetStringSlice("reject"); err != nil {
		return nil, err
	}
	if cfg.RejectKinds, err = cmd.Flags().GetStringSlice("reject-kind"); err != nil {
		return nil, err
	}
	if cfg.RemoveLinks, err = cmd.Flags().GetStringSlice("remove-link"); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
		return nil, err
	}
	if changed(cmd, "min-length") {
		if cfg.MinContentLength, err = cmd.Flags().GetInt("min-length"); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// runInteractive runs the screen loop on the command's stdin and stdout.
func runInteractive(ctx context.Context, cmd *cobra.Command, cfg *config.Config, client *backend.Client, logger *slog.Logger) error {
	if cfg.JSONReport || cfg.MarkdownReport || cfg.ReportFile != "" {
		logger.Warn("report flags are ignored in interactive mode; use --yes or the save command")
	}
	session := app.New(client, cmd.InOrStdin(), cmd.OutOrStdout(),
		app.WithURLs(cfg.Targets...),
		app.WithLogger(logger),
		app.WithMinContentLength(cfg.MinContentLength),
		app.WithVerbose(cfg.Verbose),
	)
	return session.Run(ctx)
}

// runRefine refines every target without prompting and writes the reports
// in input order.
func runRefine(ctx context.Context, cmd *cobra.Command, cfg *config.Config, client *backend.Client, logger *slog.Logger) error {
	decisions := make(map[string]pipeline.Decisions, len(cfg.Targets))
	for _, target := range cfg.Targets {
		d, err := decisionsFor(cfg, target)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		decisions[target] = d
	}

	bp := pipeline.NewBatchProcessor(
		func(target string) *pipeline.Pipeline {
			return pipeline.RefinePipeline(client,
				[]pipeline.Option{pipeline.WithLogger(logger)},
				pipeline.WithDecisions(decisions[target]),
				pipeline.WithDryRun(cfg.DryRun),
				pipeline.WithMinContentLength(cfg.MinContentLength),
				pipeline.WithStepLogger(logger),
			)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
		pipeline.WithProgress(newProgress(cmd.ErrOrStderr(), len(cfg.Targets))),
	)

	start := time.Now()
	reports, batchErr := bp.ProcessBatch(ctx, cfg.Targets)
	logger.Info("refine finished", "targets", len(cfg.Targets), "elapsed", time.Since(start).Round(time.Millisecond))

	out, closeOutput, err := openOutput(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput() //nolint:errcheck // best effort on the error path

	if _, err := report.WriteAll(newReportWriter(cfg, out), reports); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := closeOutput(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}
	if batchErr != nil {
		return batchErr
	}

	if failed := countFailed(reports); failed > 0 {
		return fmt.Errorf("%w: %d of %d articles", errRefineFailed, failed, len(reports))
	}
	return nil
}

// newProgress returns a batch progress printer. A single article prints
// nothing; its report follows immediately.
func newProgress(w io.Writer, total int) func(*model.RefreshReport, int) {
	if total < 2 {
		return nil
	}
	var (
		mu   sync.Mutex
		done int
	)
	return func(r *model.RefreshReport, _ int) {
		mu.Lock()
		defer mu.Unlock()
		done++
		fmt.Fprintf(w, "[%d/%d] %s: %s\n", done, total, r.URL, outcome(r))
	}
}

// outcome returns the one-word result of a run, with the error when it failed.
func outcome(r *model.RefreshReport) string {
	switch {
	case r.Failed():
		return "failed (" + r.ErrorMessage + ")"
	case r.DryRun:
		return "dry run"
	case !r.Renderable:
		return "rendering error"
	default:
		return "done"
	}
}

// countFailed counts reports that stopped on an error or produced content
// the guard rejected.
func countFailed(reports []*model.RefreshReport) int {
	var n int
	for _, r := range reports {
		if r.Failed() || (!r.DryRun && !r.Renderable) {
			n++
		}
	}
	return n
}
