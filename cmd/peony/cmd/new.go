package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/peony"
)

func newNewCmd(a *app) *cobra.Command {
	var (
		name    string
		version string
		force   bool
	)
	c := &cobra.Command{
		Use:   "new <game_file>",
		Short: "Create a game file with an empty start layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			if _, err := os.Stat(file); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", file)
			}
			g := peony.NewGame()
			if name != "" {
				g.Name = name
			}
			if version != "" {
				g.Version = version
			}
			if err := saveGame(file, g); err != nil {
				return err
			}
			a.log.Infow("created game", "file", file, "name", g.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s %s)\n", file, g.Name, g.Version)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "game name (default \"untitled\")")
	c.Flags().StringVar(&version, "game-version", "", "game version (default \"1.0.0\")")
	c.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return c
}
