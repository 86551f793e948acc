package cmd

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/peony"
)

func newTreeCmd(a *app) *cobra.Command {
	var layout string
	c := &cobra.Command{
		Use:   "tree <game_file>",
		Short: "Print the layouts and node trees of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGame(args[0], nil)
			if err != nil {
				return err
			}
			l, err := findLayout(g, layout)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "game %s %s\n", g.Name, g.Version)
			if g.Atlas != nil {
				fmt.Fprintf(out, "atlas %s\n", g.Atlas.Path)
			}
			l.Walk(func(l *peony.Layout) { printLayout(out, l) })
			return nil
		},
	}
	c.Flags().StringVarP(&layout, "layout", "l", "", "only this layout and its children (e.g. /start/menu)")
	return c
}

func printLayout(w io.Writer, l *peony.Layout) {
	fmt.Fprintln(w, l.FullName())
	if l.Script != "" {
		fmt.Fprintf(w, "  script: %q\n", l.Script)
	}
	printNode(w, l.Root(), 1)
}

func printNode(w io.Writer, n *peony.Node, depth int) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), describeNode(n))
	for _, c := range n.Children() {
		printNode(w, c, depth+1)
	}
}

func describeNode(n *peony.Node) string {
	var b strings.Builder
	t := n.Transform
	fmt.Fprintf(&b, "%s at (%g, %g)", n, round(t.Translation.X), round(t.Translation.Y))
	if t.Rotation != 0 {
		fmt.Fprintf(&b, " rot %g", round(t.Rotation))
	}
	if t.Scale != 1 {
		fmt.Fprintf(&b, " scale %g", round(t.Scale))
	}
	switch {
	case n.Shape != nil:
		fmt.Fprintf(&b, " %d vertices", n.Shape.Len())
	case n.Image != nil:
		fmt.Fprintf(&b, " %s", n.Image.Path)
	case n.Sprite != nil:
		fmt.Fprintf(&b, " region %q", n.Sprite.Name)
	}
	if n.Locked {
		b.WriteString(" [locked]")
	}
	return b.String()
}

// round trims float noise from printed values.
func round(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
