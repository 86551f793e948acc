package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phanxgames/peony"
	"github.com/phanxgames/peony/internal/imagefile"
)

func newHitCmd(a *app) *cobra.Command {
	var layout string
	c := &cobra.Command{
		Use:   "hit <game_file> <x> <y>",
		Short: "Show what a click at a world position selects",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("x: %w", err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("y: %w", err)
			}
			g, err := loadGame(args[0], imagefile.Loader{})
			if err != nil {
				return err
			}
			l, err := findLayout(g, layout)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			sel, ok := l.Hit(peony.Vec2{X: x, Y: y})
			if !ok {
				fmt.Fprintln(out, "nothing")
				return nil
			}
			fmt.Fprintf(out, "%s (%s)", sel.Node, sel.Node.Path())
			if sel.HasVertex() {
				fmt.Fprintf(out, " vertex %d", sel.Vertex)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	c.Flags().StringVarP(&layout, "layout", "l", "", "layout to test (default the top layout)")
	return c
}
