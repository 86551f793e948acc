package ebitenview

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/phanxgames/peony"
	"github.com/phanxgames/peony/script"
)

// Options configures a Viewer.
type Options struct {
	Width, Height int
	Title         string
	// ZoomStep is the zoom factor applied per wheel notch.
	ZoomStep float64
	MinZoom  float64
	// FocusSeconds is the duration of the F-key focus animation.
	FocusSeconds float64
	Background   color.Color
	// ScreenshotDir receives PNGs captured with the P key.
	ScreenshotDir string

	// Save is called on Ctrl+S. When nil, saving is disabled.
	Save func(*peony.Game) error
	// Script, when set, is replayed one step per frame.
	Script *script.Runner
	Logger *zap.SugaredLogger
}

// DefaultOptions returns options matching the tool defaults.
func DefaultOptions() Options {
	return Options{
		Width:         1280,
		Height:        720,
		Title:         "peony",
		ZoomStep:      1.1,
		MinZoom:       0.05,
		FocusSeconds:  0.4,
		Background:    color.RGBA{0xf0, 0xf0, 0xf0, 0xff},
		ScreenshotDir: "screenshots",
	}
}

// Viewer is an ebiten.Game that displays one layout of a game at a time and
// edits it with the mouse and keyboard:
//
//	left click/drag   select, move node or vertex
//	right drag        pan
//	wheel             zoom about the cursor
//	S                 split the edge after the selected vertex
//	Delete            remove the selected vertex
//	R                 recentre the selected shape
//	L                 toggle lock on the selected node
//	F                 focus the camera on the selection
//	Tab               show the next layout
//	Escape            clear the selection
//	P                 save a screenshot
//	Ctrl+S            save
type Viewer struct {
	game    *peony.Game
	layout  *peony.Layout
	camera  *Camera
	surface *Surface
	opts    Options
	log     *zap.SugaredLogger

	selection peony.Selection
	dragging  bool
	panning   bool
	pointer   pointerState

	injectQueue     []Input
	screenshotQueue []string
	keyBuf          []ebiten.Key
	status          string
}

// NewViewer returns a viewer showing the game's top layout.
func NewViewer(g *peony.Game, opts Options) (*Viewer, error) {
	if g == nil || g.Layout() == nil {
		return nil, errors.New("ebitenview: game has no layout")
	}
	if opts.ZoomStep <= 1 || opts.MinZoom <= 0 {
		return nil, fmt.Errorf("ebitenview: invalid zoom settings step=%g min=%g", opts.ZoomStep, opts.MinZoom)
	}
	if opts.Background == nil {
		opts.Background = DefaultOptions().Background
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	face, err := LoadLabelFace()
	if err != nil {
		log.Warnw("label font unavailable", "error", err)
		face = nil
	}
	viewport := peony.Rect{Width: float64(opts.Width), Height: float64(opts.Height)}
	return &Viewer{
		game:      g,
		layout:    g.Layout(),
		camera:    NewCamera(viewport, opts.MinZoom),
		surface:   NewSurface(face),
		opts:      opts,
		log:       log,
		selection: peony.NoSelection,
	}, nil
}

// Camera returns the viewer camera.
func (v *Viewer) Camera() *Camera { return v.camera }

// Selection returns the current selection.
func (v *Viewer) Selection() peony.Selection { return v.selection }

// CurrentLayout returns the layout being shown.
func (v *Viewer) CurrentLayout() *peony.Layout { return v.layout }

// ShowLayout switches the view to l and clears the selection.
func (v *Viewer) ShowLayout(l *peony.Layout) {
	v.layout = l
	v.selection = peony.NoSelection
	v.dragging = false
	v.status = l.FullName()
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	var in Input
	if len(v.injectQueue) > 0 {
		in = v.injectQueue[0]
		v.injectQueue = v.injectQueue[1:]
	} else {
		in = pollInput(v.keyBuf)
		v.keyBuf = in.Keys
	}
	v.handle(in)
	v.camera.Update(1 / float32(ebiten.TPS()))

	if r := v.opts.Script; r != nil && !r.Done() {
		if err := r.Step(v.game); err != nil {
			v.log.Errorw("script step failed", "error", err)
			v.status = err.Error()
		}
	}
	return nil
}

// handle applies one frame of input.
func (v *Viewer) handle(in Input) {
	world := v.camera.ScreenToWorld(in.Cursor)
	prev := v.pointer

	switch {
	case in.Left && !prev.left:
		v.press(world)
	case in.Left && v.dragging && in.Cursor != prev.last:
		v.selection.Drag(v.camera.ScreenToWorld(prev.last), world)
	case !in.Left && prev.left:
		v.dragging = false
	}

	switch {
	case in.Right && !prev.right:
		v.panning = true
	case in.Right && v.panning:
		v.camera.Pan(in.Cursor.X-prev.last.X, in.Cursor.Y-prev.last.Y)
	case !in.Right:
		v.panning = false
	}

	if in.Wheel != 0 {
		v.camera.ZoomAt(in.Cursor, math.Pow(v.opts.ZoomStep, in.Wheel))
	}

	v.pointer = pointerState{left: in.Left, right: in.Right, last: in.Cursor}
	v.keys(in)
}

func (v *Viewer) press(world peony.Vec2) {
	sel, ok := v.layout.Hit(world)
	if !ok {
		v.selection = peony.NoSelection
		v.dragging = false
		return
	}
	v.selection = sel
	v.dragging = true
	v.status = describe(sel)
}

func (v *Viewer) keys(in Input) {
	sel := v.selection
	switch {
	case in.pressed(ebiten.KeyS) && in.Mods&ModCtrl != 0:
		v.save()
	case in.pressed(ebiten.KeyS):
		if next, ok := sel.SplitEdge(); ok {
			v.selection = next
			v.log.Debugw("split edge", "node", sel.Node.Path(), "vertex", next.Vertex)
		}
	case in.pressed(ebiten.KeyDelete) || in.pressed(ebiten.KeyBackspace):
		if next, ok := sel.RemovePoint(); ok {
			v.selection = next
			v.log.Debugw("removed vertex", "node", sel.Node.Path(), "vertex", sel.Vertex)
		}
	case in.pressed(ebiten.KeyR):
		if sel.Node != nil && sel.Node.Recentre() {
			v.log.Debugw("recentred", "node", sel.Node.Path())
		}
	case in.pressed(ebiten.KeyL):
		if sel.Node != nil {
			sel.Node.SetLocked(!sel.Node.Locked)
		}
	case in.pressed(ebiten.KeyF):
		v.focus()
	case in.pressed(ebiten.KeyTab):
		v.ShowLayout(nextLayout(v.game.Layout(), v.layout))
	case in.pressed(ebiten.KeyEscape):
		v.selection = peony.NoSelection
	case in.pressed(ebiten.KeyP):
		v.Screenshot(v.layout.FullName())
	}
}

func (v *Viewer) focus() {
	target, ok := v.selection.Origin()
	radius := 0.0
	if !ok {
		target = peony.Vec2{}
	} else if !v.selection.HasVertex() {
		radius = v.selection.Node.WorldExtent()
	}
	v.camera.FocusOn(target, radius, float32(v.opts.FocusSeconds))
}

func (v *Viewer) save() {
	if v.opts.Save == nil {
		v.status = "saving is disabled"
		return
	}
	if err := v.opts.Save(v.game); err != nil {
		v.log.Errorw("save failed", "error", err)
		v.status = "save failed: " + err.Error()
		return
	}
	v.log.Infow("saved", "game", v.game.Name)
	v.status = "saved"
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.opts.Background)
	v.surface.Begin(screen, v.camera.Transform())
	peony.Render(v.layout.Root(), v.surface, v.selection)
	v.flushScreenshots(screen)
	ebitenutil.DebugPrintAt(screen, v.layout.FullName()+"  "+v.status, 4, screen.Bounds().Dy()-16)
}

// Layout implements ebiten.Game. The camera viewport follows the window.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.camera.Viewport.Width = float64(outsideWidth)
	v.camera.Viewport.Height = float64(outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens a window and runs the viewer until it is closed.
func Run(v *Viewer) error {
	ebiten.SetWindowSize(v.opts.Width, v.opts.Height)
	ebiten.SetWindowTitle(v.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}

func describe(sel peony.Selection) string {
	if sel.HasVertex() {
		return fmt.Sprintf("%s vertex %d", sel.Node, sel.Vertex)
	}
	return sel.Node.String()
}

// nextLayout returns the layout after cur in a pre-order walk from top,
// wrapping around.
func nextLayout(top, cur *peony.Layout) *peony.Layout {
	var order []*peony.Layout
	top.Walk(func(l *peony.Layout) { order = append(order, l) })
	for i, l := range order {
		if l == cur {
			return order[(i+1)%len(order)]
		}
	}
	return top
}
