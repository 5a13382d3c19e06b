package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/stencil-cli/stencil/config"
	"github.com/stencil-cli/stencil/replay"
)

// ReplayCmd groups operations on persisted contexts
var ReplayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Inspect persisted contexts from earlier runs",
	Long: `Inspect the contexts stencil persisted after earlier resolutions.

Commands:
  stencil replay ls               # List stored contexts
  stencil replay show <template>  # Show one stored context`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// ReplayLsCmd lists stored contexts
var ReplayLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		names, err := store.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			pterm.Info.Println("No stored contexts")
			return nil
		}
		for _, name := range names {
			pterm.Println(name)
		}
		return nil
	},
}

// ReplayShowCmd prints one stored context
var ReplayShowCmd = &cobra.Command{
	Use:   "show <template>",
	Short: "Show a stored context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		ctx, err := storedContext(store, args[0])
		if err != nil {
			return err
		}
		printContext(args[0], ctx)
		return nil
	},
}

func init() {
	ReplayCmd.PersistentFlags().String("replay-dir", "", "Replay directory (defaults to the configured one)")
	ReplayCmd.AddCommand(ReplayLsCmd)
	ReplayCmd.AddCommand(ReplayShowCmd)
}

func openStore(cmd *cobra.Command) (*replay.Store, error) {
	dir, _ := cmd.Flags().GetString("replay-dir")
	if dir != "" {
		return replay.NewStore(dir), nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return replay.NewStore(cfg.GetReplayDir()), nil
}
