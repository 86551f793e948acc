package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/peony/internal/imagefile"
	"github.com/phanxgames/peony/script"
)

func newApplyCmd(a *app) *cobra.Command {
	var (
		output string
		dryRun bool
	)
	c := &cobra.Command{
		Use:   "apply <game_file> <script_file>",
		Short: "Replay an edit script against a game file",
		Long: `Applies the steps of a JSON edit script in order and saves the result.

The script is a {"steps": [...]} document; each step names an action such as
add, rename, remove, move, lock, translate, rotate, scale, select, drag,
split, removePoint, recentre, createLayout or setScript.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			runner, err := script.Load(data)
			if err != nil {
				return err
			}
			runner.Images = imagefile.Loader{}

			g, err := loadGame(args[0], imagefile.Loader{})
			if err != nil {
				return err
			}
			if err := runner.Run(g); err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			a.log.Infow("applied script", "script", args[1], "steps", runner.Len())

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "Applied %d step(s), not saved\n", runner.Len())
				return nil
			}
			dest := args[0]
			if output != "" {
				dest = output
			}
			if err := saveGame(dest, g); err != nil {
				return err
			}
			fmt.Fprintf(out, "Applied %d step(s), saved %s\n", runner.Len(), dest)
			return nil
		},
	}
	c.Flags().StringVarP(&output, "output", "o", "", "write the result here instead of the game file")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "apply without saving")
	return c
}
