package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/blogrefresh/internal/report"
	"github.com/nao1215/blogrefresh/internal/review"
	"github.com/nao1215/blogrefresh/internal/session"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Audit a blog post and print the review screen",
		Long: `Analyze sends a blog post to the refresh backend and prints the audit as it
would appear on the review screen, with the default selection: every
structure suggestion accepted and every link kept. Nothing is generated.

Examples:
  blogrefresh analyze https://blog.example.com/2019/old-post
  blogrefresh analyze --json https://blog.example.com/2019/old-post`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyzeCmd,
	}

	addReportFlags(cmd)

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
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

	store := session.New()
	entry := review.NewEntryController(store, client, review.WithLogger(logger))
	if _, err := entry.Analyze(ctx, args[0]); err != nil {
		return err
	}

	controller := review.NewController(store, client, review.WithLogger(logger))
	if _, err := controller.Load(); err != nil {
		return err
	}
	state, err := controller.Selection()
	if err != nil {
		return err
	}
	summary, err := controller.Summary()
	if err != nil {
		return err
	}

	out, closeOutput, err := openOutput(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput() //nolint:errcheck // best effort on the error path

	_, err = newReportWriter(cfg, out).WriteReview(&report.ReviewView{
		URL:       store.URL(),
		Audit:     controller.Audit(),
		Selection: state,
		Summary:   summary,
	})
	if err != nil {
		return fmt.Errorf("failed to write review: %w", err)
	}
	return closeOutput()
}
