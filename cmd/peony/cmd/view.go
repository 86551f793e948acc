package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/peony"
	"github.com/phanxgames/peony/ebitenview"
	"github.com/phanxgames/peony/internal/config"
	"github.com/phanxgames/peony/script"
)

func newViewCmd(a *app) *cobra.Command {
	var scriptFile string
	c := &cobra.Command{
		Use:   "view <game_file>",
		Short: "Open a game file in the interactive editor",
		Long: `Opens the top layout of a game file in an Ebitengine window.

Controls:
  Left Click / Drag   - Select, move node or vertex
  Right Drag          - Pan
  Scroll Wheel        - Zoom about the cursor
  S                   - Split the edge after the selected vertex
  Delete              - Remove the selected vertex
  R                   - Recentre the selected shape
  L                   - Toggle lock on the selection
  F                   - Focus on the selection
  Tab                 - Next layout
  Escape              - Clear selection
  P                   - Save a screenshot
  Ctrl+S              - Save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			g, err := loadGame(file, ebitenview.Loader{})
			if err != nil {
				return err
			}
			opts := viewOptions(a.cfg)
			opts.Title = a.cfg.WindowTitle + " - " + file
			opts.Logger = a.log
			opts.Save = func(g *peony.Game) error { return saveGame(file, g) }
			if scriptFile != "" {
				data, err := os.ReadFile(scriptFile)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				if opts.Script, err = script.Load(data); err != nil {
					return err
				}
				opts.Script.Images = ebitenview.Loader{}
			}

			v, err := ebitenview.NewViewer(g, opts)
			if err != nil {
				return err
			}
			a.log.Infow("opening viewer", "file", file, "layout", g.Layout().FullName())
			return ebitenview.Run(v)
		},
	}
	c.Flags().StringVar(&scriptFile, "script", "", "replay this edit script, one step per frame")
	return c
}

func viewOptions(cfg *config.Config) ebitenview.Options {
	opts := ebitenview.DefaultOptions()
	opts.Width = cfg.WindowWidth
	opts.Height = cfg.WindowHeight
	opts.Title = cfg.WindowTitle
	opts.ZoomStep = cfg.ZoomStep
	opts.MinZoom = cfg.MinZoom
	opts.FocusSeconds = cfg.FocusSeconds
	opts.Background = cfg.BackgroundColour()
	opts.ScreenshotDir = cfg.ScreenshotDir
	return opts
}
