package commands

import (
	"context"
	"fmt"

	"github.com/dyluth/planrun/internal/config"
	"github.com/spf13/cobra"
)

var versionString = "dev"

// rootOptions holds the flags of the root command
type rootOptions struct {
	configPath string
	outputDir  string
	redisURL   string
	name       string
}

// NewRootCommand builds the planrun command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "planrun",
		Short: "Plan the Minecraft Skin Studio project with Holt planning agents",
		Long: `planrun asks the planning agents of a running Holt instance for a project
plan, agent assignments, milestones and test requirements, then runs the
integrated plan review. The merged results are written to a timestamped JSON
report and a Markdown summary.

The Holt instance is discovered from the current workspace through Docker,
or addressed directly with --redis-url.

Examples:
  # Plan using the instance running on this workspace
  planrun

  # Plan against an explicit blackboard, writing into ./plans
  planrun --redis-url redis://localhost:6379 --name default-1 --output-dir plans`,
		Version: versionString,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts)
		},
		// Enable strict flag parsing - unknown flags will cause an error
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
		// Errors are printed by main via the printer package
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.Flags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Config file (used only if present unless set explicitly)")
	rootCmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "Directory for the report and summary (overrides output_dir)")
	rootCmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Blackboard Redis URL, skips Docker discovery (overrides blackboard.redis_url)")
	rootCmd.Flags().StringVarP(&opts.name, "name", "n", "", "Holt instance name (auto-inferred if omitted)")

	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}

// Execute runs the planrun command tree. This is called by main.main().
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	versionString = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
