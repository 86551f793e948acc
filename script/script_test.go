package script

import (
	"errors"
	"image"
	"math"
	"path/filepath"
	"testing"

	"github.com/phanxgames/peony"
)

func TestLoad(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "add", "kind": "shape", "name": "wall", "x": 10, "y": 20},
			{"action": "rename", "path": "wall", "name": "floor"},
			{"action": "lock", "path": "floor"}
		]
	}`)
	r, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Len() != 3 || r.Done() {
		t.Fatalf("Len = %d, Done = %v", r.Len(), r.Done())
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := Load([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := Load([]byte(`{"steps": []}`)); err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestRunBuildsTree(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "add", "kind": "shape", "name": "wall", "x": 10, "y": 20},
			{"action": "add", "kind": "point", "name": "spawn", "parent": "wall"},
			{"action": "add", "name": "spawn", "parent": "wall", "index": 0},
			{"action": "rename", "path": "wall", "name": "floor"},
			{"action": "lock", "path": "floor/spawn"},
			{"action": "translate", "path": "floor", "x": 5, "y": -5},
			{"action": "rotate", "path": "floor", "angle": 0.5},
			{"action": "scale", "path": "floor", "factor": 2},
			{"action": "createLayout", "name": "menu"},
			{"action": "setScript", "layout": "/start/menu", "script": "onEnter()"}
		]
	}`)
	r, err := Load(data)
	if err != nil {
		t.Fatal(err)
	}
	g := peony.NewGame()
	if err := r.Run(g); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !r.Done() {
		t.Error("runner should be done")
	}

	floor := g.Layout().Root().Find("floor")
	if floor == nil || floor.Kind != peony.KindShape {
		t.Fatalf("floor = %v", floor)
	}
	if floor.Transform.Translation != (peony.Vec2{X: 15, Y: 15}) {
		t.Errorf("Translation = %v", floor.Transform.Translation)
	}
	if floor.Transform.Rotation != 0.5 || floor.Transform.Scale != 2 {
		t.Errorf("Transform = %+v", floor.Transform)
	}
	kids := floor.Children()
	if len(kids) != 2 || kids[0].Name() != "spawn1" || kids[1].Name() != "spawn" {
		t.Errorf("children = %v", kids)
	}
	if !kids[1].Locked {
		t.Error("spawn should be locked")
	}

	menu, err := g.FindLayout("/start/menu")
	if err != nil || menu.Script != "onEnter()" {
		t.Errorf("menu = %v, %v", menu, err)
	}
}

func TestSelectionSteps(t *testing.T) {
	g := peony.NewGame()
	r := NewRunner([]Step{
		{Action: "add", Kind: "shape", Name: "s"},
		{Action: "select", X: 64, Y: 0},
		{Action: "split"},
		{Action: "split"},
		{Action: "removePoint"},
		{Action: "drag", FromX: 0, FromY: 0, ToX: 1, ToY: 2},
	})
	if err := r.Run(g); err != nil {
		t.Fatalf("Run: %v", err)
	}
	s := g.Layout().Root().Find("s")
	if s.Shape.Len() != 4 {
		t.Errorf("Len = %d, want 4", s.Shape.Len())
	}
	sel := r.Selection()
	if sel.Node != s || sel.Vertex != 1 {
		t.Errorf("selection = %+v", sel)
	}
}

func TestSelectByPathAndDragNode(t *testing.T) {
	g := peony.NewGame()
	r := NewRunner([]Step{
		{Action: "add", Name: "p", X: 3, Y: 4},
		{Action: "select", Path: "p"},
		{Action: "drag", FromX: 0, FromY: 0, ToX: 10, ToY: 0},
		{Action: "remove", Path: "p"},
	})
	g.Layout().Root().OnChange(func(ev peony.ChangeEvent) {
		if ev.Kind == peony.ChangeTransformed {
			if got := ev.Node.Transform.Translation; got != (peony.Vec2{X: 13, Y: 4}) {
				t.Errorf("dragged to %v", got)
			}
		}
	})
	if err := r.Run(g); err != nil {
		t.Fatal(err)
	}
	if g.Layout().Root().NumChildren() != 0 {
		t.Error("p should be removed")
	}
	if r.Selection().Node != nil {
		t.Error("removing the selected node clears the selection")
	}
}

func TestRecentreStep(t *testing.T) {
	g := peony.NewGame()
	r := NewRunner([]Step{
		{Action: "add", Kind: "shape", Name: "s", X: 100},
		{Action: "select", X: 164, Y: 0},
		{Action: "drag", FromX: 164, FromY: 0, ToX: 194, ToY: 0},
		{Action: "recentre", Path: "s"},
	})
	if err := r.Run(g); err != nil {
		t.Fatal(err)
	}
	s := g.Layout().Root().Find("s")
	c := s.Shape.Centroid()
	if math.Abs(c.X) > 1e-9 || math.Abs(c.Y) > 1e-9 {
		t.Errorf("centroid after recentre = %v", c)
	}
	if math.Abs(s.Transform.Translation.X-110) > 1e-9 {
		t.Errorf("Translation = %v, want x=110", s.Transform.Translation)
	}
}

type sizedLoader struct{}

func (sizedLoader) LoadImage(path string) (peony.Raster, error) {
	return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
}

func TestAddImageUsesLoader(t *testing.T) {
	g := peony.NewGame()
	r := NewRunner([]Step{{Action: "add", Kind: "image", Name: "bg", Image: "bg.png"}})
	r.Images = sizedLoader{}
	if err := r.Run(g); err != nil {
		t.Fatal(err)
	}
	bg := g.Layout().Root().Find("bg")
	if bg.Image == nil || bg.Image.Raster == nil || bg.Image.Path != "bg.png" {
		t.Errorf("image = %+v", bg.Image)
	}
}

func TestAddedImageSurvivesSaveAndLoad(t *testing.T) {
	wd, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Chdir(wd)
	docDir := filepath.Join(wd, "sub")

	g := peony.NewGame()
	r := NewRunner([]Step{{Action: "add", Kind: "image", Name: "pic", Image: "sub/pic.png"}})
	r.Images = sizedLoader{}
	if err := r.Run(g); err != nil {
		t.Fatal(err)
	}

	c := peony.Codec{Dir: docDir, Images: sizedLoader{}}
	data, err := c.EncodeGame(g)
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.DecodeGame(data)
	if err != nil {
		t.Fatal(err)
	}
	pic := got.Layout().Root().Find("pic")
	if want := filepath.Join(docDir, "pic.png"); pic == nil || pic.Image.Path != want {
		t.Errorf("reloaded image = %+v, want path %s", pic, want)
	}
}

func TestStepErrors(t *testing.T) {
	tests := []struct {
		name  string
		steps []Step
		index int
		want  error
	}{
		{"unknown action", []Step{{Action: "explode"}}, 0, ErrUnknownAction},
		{"missing node", []Step{{Action: "lock", Path: "ghost"}}, 0, peony.ErrNotFound},
		{"missing layout", []Step{{Action: "setScript", Layout: "/start/none"}}, 0, peony.ErrNotFound},
		{"bad kind", []Step{{Action: "add", Kind: "blob"}}, 0, peony.ErrInvalidLeafType},
		{"no selection", []Step{{Action: "split"}}, 0, ErrNoSelection},
		{"select miss", []Step{{Action: "select", X: 500, Y: 500}}, 0, peony.ErrNotFound},
		{"zero scale", []Step{{Action: "scale", Factor: 0}}, 0, peony.ErrZeroScale},
		{"triangle guard", []Step{
			{Action: "add", Kind: "shape", Name: "s"},
			{Action: "select", X: 64, Y: 0},
			{Action: "removePoint"},
		}, 2, ErrRefused},
		{"remove root", []Step{{Action: "remove"}}, 0, ErrRefused},
		{"move cycle", []Step{
			{Action: "add", Name: "a"},
			{Action: "add", Name: "b", Parent: "a"},
			{Action: "move", Path: "a", Parent: "a/b"},
		}, 2, peony.ErrCycle},
		{"bad layout name", []Step{{Action: "createLayout", Name: "no spaces"}}, 0, peony.ErrInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRunner(tt.steps).Run(peony.NewGame())
			var stepErr *StepError
			if !errors.As(err, &stepErr) {
				t.Fatalf("err = %v, want *StepError", err)
			}
			if stepErr.Index != tt.index {
				t.Errorf("Index = %d, want %d", stepErr.Index, tt.index)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestStepAfterDone(t *testing.T) {
	r := NewRunner([]Step{{Action: "add", Name: "p"}})
	g := peony.NewGame()
	if err := r.Step(g); err != nil {
		t.Fatal(err)
	}
	if err := r.Step(g); err != nil || !r.Done() {
		t.Errorf("Step after done = %v", err)
	}
	if g.Layout().Root().NumChildren() != 1 {
		t.Error("extra step applied")
	}
}
