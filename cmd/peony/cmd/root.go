package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/peony"
	"github.com/phanxgames/peony/internal/config"
	"github.com/phanxgames/peony/internal/logging"
)

// app carries the state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	verbose    bool

	cfg *config.Config
	log *zap.SugaredLogger
}

// NewRootCmd builds the peony command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "peony",
		Short: "peony - 2D layout editor tools",
		Long: `peony works with game files: layouts of points, shapes, images and sprites.

Examples:
  peony new level.json                 # Create an empty game
  peony tree level.json                # Print every layout and node
  peony hit level.json 10 20           # Show what a click at (10, 20) selects
  peony apply level.json edits.json    # Replay an edit script
  peony view level.json                # Open the interactive editor`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newNewCmd(a),
		newValidateCmd(a),
		newTreeCmd(a),
		newHitCmd(a),
		newApplyCmd(a),
		newViewCmd(a),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	log, err := logging.New(level)
	if err != nil {
		return err
	}
	peony.SetDebug(cfg.Debug || a.verbose)
	a.cfg = cfg
	a.log = log
	return nil
}
