package commands

import (
	"fmt"
	"os"

	"github.com/dyluth/planrun/internal/config"
	"github.com/dyluth/planrun/internal/printer"
	"github.com/dyluth/planrun/internal/scaffold"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default planrun.yml",
		Long: `Write a default planrun.yml into the current directory.

Use --force to overwrite an existing planrun.yml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			return runInit(dir, force)
		},
	}

	// Note: Cannot use -f shorthand to keep it free for future file flags
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing planrun.yml")

	return initCmd
}

func runInit(dir string, force bool) error {
	if !force {
		if err := scaffold.CheckExisting(dir); err != nil {
			return printer.Error(
				"planrun already initialized",
				fmt.Sprintf("Found existing %s in %s.", config.DefaultPath, dir),
				[]string{"Reinitialize (overwrites existing configuration):\n  planrun init --force"},
			)
		}
	}

	if err := scaffold.Initialize(dir, force); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	scaffold.PrintSuccess()

	return nil
}
