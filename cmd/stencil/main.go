package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stencil-cli/stencil/cmd/stencil/commands"
	"github.com/stencil-cli/stencil/logger"
)

var rootCmd = &cobra.Command{
	Use:   "stencil",
	Short: "stencil - Template context resolution",
	Long: `stencil - Resolve template variables into a project context.

stencil reads a template's variable specification, renders defaults
against earlier answers, prompts the operator where input is needed,
and persists the resolved context for replay.

Available commands:
  new     - Resolve a template's variables into a context
  replay  - Inspect persisted contexts from earlier runs
  version - Show version information

Examples:
  stencil new ./my-template            # Resolve interactively
  stencil new ./my-template --no-input # Take every default
  stencil replay ls                    # List stored contexts
  stencil replay show my-template      # Show a stored context`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(false); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.AddCommand(commands.NewCmd)
	rootCmd.AddCommand(commands.ReplayCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
