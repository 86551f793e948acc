// Package script replays JSON edit scripts against a peony game. Each step
// names one editing action and drives the same core operations the viewer
// does, so scripts double as reproducible editing sessions and tests.
package script

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phanxgames/peony"
)

// Step is a single action in an edit script.
type Step struct {
	Action string `json:"action"`

	// Layout is the full name of the layout to act in. Empty means the
	// top layout.
	Layout string `json:"layout,omitempty"`
	// Path is the slash-separated node path below the layout root. Empty
	// means the root itself.
	Path string `json:"path,omitempty"`
	// Parent is the destination node path for add and move, or the parent
	// layout's full name for createLayout.
	Parent string `json:"parent,omitempty"`
	Index  *int   `json:"index,omitempty"`

	Kind   string `json:"kind,omitempty"`
	Name   string `json:"name,omitempty"`
	Image  string `json:"image,omitempty"`
	Region string `json:"region,omitempty"`
	Script string `json:"script,omitempty"`

	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Angle  float64 `json:"angle,omitempty"`
	Factor float64 `json:"factor,omitempty"`
}

// file is the top-level JSON structure for an edit script.
type file struct {
	Steps []Step `json:"steps"`
}

// ErrUnknownAction is returned for a step whose action is not recognised.
var ErrUnknownAction = errors.New("unknown action")

// ErrNoSelection is returned by selection actions when nothing is selected.
var ErrNoSelection = errors.New("nothing selected")

// ErrRefused is returned when the core declines an edit, such as removing
// a vertex from a triangle.
var ErrRefused = errors.New("edit refused")

// StepError reports which step of a script failed.
type StepError struct {
	Index  int
	Action string
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Action, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Runner applies script steps to a game in order. It remembers the current
// selection between steps, so select can be followed by drag, split,
// removePoint or recentre.
type Runner struct {
	// Images loads image files for add steps of kind image. When nil the
	// image node is created unloaded.
	Images peony.ImageLoader

	steps     []Step
	cursor    int
	selection peony.Selection
}

// Load parses a JSON edit script and returns a Runner ready to apply it.
func Load(jsonData []byte) (*Runner, error) {
	var f file
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse edit script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse edit script: no steps")
	}
	return &Runner{steps: f.Steps}, nil
}

// NewRunner returns a Runner for steps already in memory.
func NewRunner(steps []Step) *Runner {
	return &Runner{steps: steps}
}

// Len returns the number of steps.
func (r *Runner) Len() int {
	return len(r.steps)
}

// Done reports whether every step has been applied.
func (r *Runner) Done() bool {
	return r.cursor >= len(r.steps)
}

// Selection returns the selection left by the most recent steps.
func (r *Runner) Selection() peony.Selection {
	return r.selection
}

// Run applies every remaining step. It stops at the first failing step and
// returns a *StepError for it.
func (r *Runner) Run(g *peony.Game) error {
	for !r.Done() {
		if err := r.Step(g); err != nil {
			return err
		}
	}
	return nil
}

// Step applies the next step. It does nothing once the script is done.
func (r *Runner) Step(g *peony.Game) error {
	if r.Done() {
		return nil
	}
	st := r.steps[r.cursor]
	index := r.cursor
	r.cursor++
	if err := r.apply(g, st); err != nil {
		return &StepError{Index: index, Action: st.Action, Err: err}
	}
	return nil
}

func (r *Runner) apply(g *peony.Game, st Step) error {
	switch st.Action {
	case "createLayout":
		parent, err := findLayout(g, st.Parent)
		if err != nil {
			return err
		}
		l := g.CreateLayout(parent)
		if st.Name != "" {
			return g.RenameLayout(l, st.Name)
		}
		return nil
	case "setScript":
		l, err := findLayout(g, st.Layout)
		if err != nil {
			return err
		}
		l.Script = st.Script
		return nil
	case "select":
		l, err := findLayout(g, st.Layout)
		if err != nil {
			return err
		}
		if st.Path != "" {
			n, err := findNode(l, st.Path)
			if err != nil {
				return err
			}
			r.selection = peony.Select(n)
			return nil
		}
		sel, ok := l.Hit(peony.Vec2{X: st.X, Y: st.Y})
		if !ok {
			r.selection = peony.NoSelection
			return fmt.Errorf("nothing at (%g, %g): %w", st.X, st.Y, peony.ErrNotFound)
		}
		r.selection = sel
		return nil
	case "drag":
		return r.withSelection(func(sel peony.Selection) bool {
			return sel.Drag(peony.Vec2{X: st.FromX, Y: st.FromY}, peony.Vec2{X: st.ToX, Y: st.ToY})
		})
	case "split":
		return r.withSelection(func(sel peony.Selection) bool {
			next, ok := sel.SplitEdge()
			if ok {
				r.selection = next
			}
			return ok
		})
	case "removePoint":
		return r.withSelection(func(sel peony.Selection) bool {
			next, ok := sel.RemovePoint()
			if ok {
				r.selection = next
			}
			return ok
		})
	}

	l, err := findLayout(g, st.Layout)
	if err != nil {
		return err
	}

	switch st.Action {
	case "add":
		parent, err := findNode(l, st.Parent)
		if err != nil {
			return err
		}
		n, err := r.newNode(g, st)
		if err != nil {
			return err
		}
		n.Transform.Translation = peony.Vec2{X: st.X, Y: st.Y}
		index := -1
		if st.Index != nil {
			index = *st.Index
		}
		if err := n.MoveTo(parent, index); err != nil {
			return err
		}
		r.selection = peony.Select(n)
		return nil
	}

	n, err := findNode(l, st.Path)
	if err != nil {
		return err
	}
	switch st.Action {
	case "rename":
		n.SetName(st.Name)
	case "remove":
		if n.Parent() == nil {
			return fmt.Errorf("remove %q: %w: the layout root cannot be removed", n.Name(), ErrRefused)
		}
		n.RemoveFromParent()
		if r.selection.Node == n {
			r.selection = peony.NoSelection
		}
	case "move":
		parent, err := findNode(l, st.Parent)
		if err != nil {
			return err
		}
		index := -1
		if st.Index != nil {
			index = *st.Index
		}
		return n.MoveTo(parent, index)
	case "lock":
		n.SetLocked(true)
	case "unlock":
		n.SetLocked(false)
	case "translate":
		n.MoveBy(peony.Vec2{X: st.X, Y: st.Y})
	case "rotate":
		t := n.Transform
		t.Rotation += st.Angle
		return n.SetTransform(t)
	case "scale":
		t := n.Transform
		t.Scale *= st.Factor
		return n.SetTransform(t)
	case "recentre":
		if !n.Recentre() {
			return fmt.Errorf("recentre %s: %w", n, ErrRefused)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownAction, st.Action)
	}
	return nil
}

func (r *Runner) withSelection(fn func(peony.Selection) bool) error {
	if r.selection.Node == nil {
		return ErrNoSelection
	}
	if !fn(r.selection) {
		return fmt.Errorf("%s: %w", r.selection.Node, ErrRefused)
	}
	return nil
}

func (r *Runner) newNode(g *peony.Game, st Step) (*peony.Node, error) {
	kind := peony.KindPoint
	if st.Kind != "" {
		var ok bool
		if kind, ok = peony.ParseKind(st.Kind); !ok {
			return nil, fmt.Errorf("kind %q: %w", st.Kind, peony.ErrInvalidLeafType)
		}
	}
	switch kind {
	case peony.KindShape:
		return peony.NewShape(st.Name), nil
	case peony.KindImage:
		n := peony.NewImage(st.Name, st.Image, nil)
		if r.Images != nil {
			raster, err := r.Images.LoadImage(st.Image)
			n.SetImage(st.Image, raster, err)
		}
		return n, nil
	case peony.KindSprite:
		return peony.NewSprite(st.Name, st.Region, g.Regions()), nil
	default:
		return peony.NewPoint(st.Name), nil
	}
}

func findLayout(g *peony.Game, fullName string) (*peony.Layout, error) {
	if fullName == "" {
		return g.Layout(), nil
	}
	return g.FindLayout(fullName)
}

func findNode(l *peony.Layout, path string) (*peony.Node, error) {
	n := l.Root().Find(path)
	if n == nil {
		return nil, fmt.Errorf("node %q in %s: %w", path, l.FullName(), peony.ErrNotFound)
	}
	return n, nil
}
