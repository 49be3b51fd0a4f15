package main

import (
	"fmt"
	"os"

	"github.com/nao1215/blogrefresh/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for blogrefresh.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blogrefresh",
		Short: "Refresh outdated blog posts with a reviewed AI rewrite",
		Long: `blogrefresh asks the refresh backend to audit a blog post, shows the proposed
structure changes (section merges and deletions) and the link review, and
regenerates the article from the changes you approve.

Every suggestion starts accepted and every link starts kept; you only
deselect what you disagree with.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	cmd.PersistentFlags().String("api-url", config.DefaultAPIBaseURL,
		"Refresh backend base URL (env: "+config.EnvAPIURL+")")
	cmd.PersistentFlags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each backend request")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .blogrefresh in current or home directory)")

	cmd.AddCommand(NewRefineCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
