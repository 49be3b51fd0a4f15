package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/blogrefresh/internal/backend"
	"github.com/nao1215/blogrefresh/internal/config"
	applog "github.com/nao1215/blogrefresh/internal/log"
	"github.com/nao1215/blogrefresh/internal/model"
	"github.com/nao1215/blogrefresh/internal/pipeline"
	"github.com/nao1215/blogrefresh/internal/report"
	"github.com/spf13/cobra"
)

// buildConfig creates a Config from defaults, the config file, .env, the
// environment and finally the flags the user actually set.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if err := config.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.Load(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := changedString(cmd, "api-url", &cfg.APIBaseURL); err != nil {
		return nil, err
	}
	if changed(cmd, "timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cfg.Verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
		return nil, err
	}
	if cfg.LogJSON, err = cmd.Flags().GetBool("log-json"); err != nil {
		return nil, err
	}

	if err := reportFlags(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.Targets = args
	return cfg, nil
}

// reportFlags reads --json, --markdown and --output when the command has them.
func reportFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Lookup("json") == nil {
		return nil
	}
	var err error
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return err
	}
	return nil
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to the specified file path (creates directories if needed)")
}

func changed(cmd *cobra.Command, name string) bool {
	return cmd.Flags().Lookup(name) != nil && cmd.Flags().Changed(name)
}

func changedString(cmd *cobra.Command, name string, dst *string) error {
	if !changed(cmd, name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// setupLogger creates the sanitizing logger and installs it as the default.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	logger := applog.New(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogJSON)
	slog.SetDefault(logger)
	return logger
}

// newBackend creates the HTTP client for the refresh backend.
func newBackend(cfg *config.Config, logger *slog.Logger) (*backend.Client, error) {
	client, err := backend.NewClient(cfg.APIBaseURL, cfg.Timeout,
		backend.WithHeaders(cfg.Headers),
		backend.WithUserAgent(cfg.UserAgent),
		backend.WithMaxBodySize(cfg.MaxBodySize),
		backend.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	return client, nil
}

// openOutput returns the report destination: the --output file or stdout.
// The returned close function must be called when done.
func openOutput(cfg *config.Config, stdout io.Writer) (io.Writer, func() error, error) {
	if cfg.ReportFile == "" {
		return stdout, func() error { return nil }, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports carry the article and the backend's audit; keep them owner-only.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// newReportWriter selects the writer for the configured format. JSON is
// pretty-printed for a single article and newline-delimited otherwise.
func newReportWriter(cfg *config.Config, w io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		if len(cfg.Targets) > 1 {
			return report.NewJSONWriter(w)
		}
		return report.NewJSONWriter(w, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewSimpleWriter(w, report.WithVerbose(cfg.Verbose))
	}
}

// decisionsFor combines the flag decisions with the config file preset for target.
func decisionsFor(cfg *config.Config, target string) (pipeline.Decisions, error) {
	kinds, err := cfg.SuggestionKinds()
	if err != nil {
		return pipeline.Decisions{}, err
	}
	flags := pipeline.Decisions{
		RejectIDs:   cfg.Reject,
		RejectKinds: kinds,
		RemoveLinks: cfg.RemoveLinks,
	}

	preset := cfg.File.PresetFor(target)
	if preset.IsZero() {
		return flags, nil
	}
	presetKinds := make([]model.SuggestionKind, 0, len(preset.RejectKinds))
	for _, raw := range preset.RejectKinds {
		k, ok := model.ParseSuggestionKind(raw)
		if !ok {
			return pipeline.Decisions{}, &config.KindError{Kind: raw}
		}
		presetKinds = append(presetKinds, k)
	}
	return pipeline.Decisions{
		RejectIDs:   preset.Reject,
		RejectKinds: presetKinds,
		RemoveLinks: preset.RemoveLinks,
	}.Merge(flags), nil
}
