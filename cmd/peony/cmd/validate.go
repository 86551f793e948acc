package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/peony"
	"github.com/phanxgames/peony/internal/imagefile"
)

func newValidateCmd(a *app) *cobra.Command {
	var strict bool
	c := &cobra.Command{
		Use:   "validate <game_file>",
		Short: "Check a game file and the resources it references",
		Long: `Decodes a game file and reports malformed documents as errors.

Missing images, unreadable atlases and unresolved sprite regions are reported
as warnings; with --strict they fail the command too.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGame(args[0], imagefile.Loader{})
			if err != nil {
				return err
			}
			problems := resourceProblems(g)
			out := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintf(out, "warning: %s\n", p)
				a.log.Debugw("resource problem", "detail", p)
			}
			if strict && len(problems) > 0 {
				return fmt.Errorf("%s: %d resource problem(s)", args[0], len(problems))
			}
			fmt.Fprintf(out, "%s: OK (%d warning(s))\n", args[0], len(problems))
			return nil
		},
	}
	c.Flags().BoolVar(&strict, "strict", false, "treat resource warnings as errors")
	return c
}

// resourceProblems lists every resource that failed to load or resolve in g.
func resourceProblems(g *peony.Game) []string {
	var problems []string
	if g.Atlas != nil && g.Atlas.Err != nil {
		problems = append(problems, fmt.Sprintf("atlas %s: %v", g.Atlas.Path, g.Atlas.Err))
	}
	g.Layout().Walk(func(l *peony.Layout) {
		l.Root().Walk(func(n *peony.Node) {
			where := l.FullName() + ":" + n.Path()
			switch {
			case n.Image != nil && n.Image.Err != nil:
				problems = append(problems, fmt.Sprintf("%s: image %s: %v", where, n.Image.Path, n.Image.Err))
			case n.Sprite != nil && n.Sprite.Region == nil:
				problems = append(problems, fmt.Sprintf("%s: sprite region %q not found", where, n.Sprite.Name))
			}
		})
	})
	return problems
}
