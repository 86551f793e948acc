package peony

import (
	"errors"
	"testing"
)

// --- Constructors ---

func TestConstructorDefaults(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		kind Kind
	}{
		{"point", NewPoint("p"), KindPoint},
		{"shape", NewShape("s"), KindShape},
		{"image", NewImage("i", "a.png", nil), KindImage},
		{"sprite", NewSprite("sp", "hero", nil), KindSprite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.node
			if n.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", n.Kind, tt.kind)
			}
			if n.Transform != IdentityTransform() {
				t.Errorf("Transform = %+v, want identity", n.Transform)
			}
			if n.Locked {
				t.Error("new node should be unlocked")
			}
			if n.Parent() != nil || n.NumChildren() != 0 {
				t.Error("new node should be detached and childless")
			}
		})
	}
}

func TestConstructorUniqueIDs(t *testing.T) {
	a := NewPoint("a")
	b := NewPoint("b")
	if a.ID == b.ID || a.ID == 0 {
		t.Errorf("IDs = %d, %d", a.ID, b.ID)
	}
}

func TestConstructorEmptyNameUsesKind(t *testing.T) {
	if got := NewShape("").Name(); got != "shape" {
		t.Errorf("Name = %q, want shape", got)
	}
}

func TestNewShapeFromPointsTooFew(t *testing.T) {
	_, err := NewShapeFromPoints("s", []Vec2{{0, 0}, {1, 1}})
	if !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("err = %v, want ErrTooFewPoints", err)
	}
}

// --- Names ---

func TestAddChildNameSuffix(t *testing.T) {
	root := NewPoint("root")
	a := NewPoint("x")
	b := NewPoint("x")
	c := NewPoint("x")
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)
	want := []string{"x", "x1", "x2"}
	for i, n := range []*Node{a, b, c} {
		if n.Name() != want[i] {
			t.Errorf("child %d name = %q, want %q", i, n.Name(), want[i])
		}
	}
}

func TestSetNameResolvesAgainstSiblings(t *testing.T) {
	root := NewPoint("root")
	a := NewPoint("a")
	b := NewPoint("b")
	root.AddChild(a)
	root.AddChild(b)

	b.SetName("a")
	if b.Name() != "a1" {
		t.Errorf("Name = %q, want a1", b.Name())
	}
	// Renaming to its own name keeps it.
	a.SetName("a")
	if a.Name() != "a" {
		t.Errorf("Name = %q, want a", a.Name())
	}
}

func TestSetNameSuffixSkipsTaken(t *testing.T) {
	root := NewPoint("root")
	root.AddChild(NewPoint("x"))
	root.AddChild(NewPoint("x1"))
	n := NewPoint("x")
	root.AddChild(n)
	if n.Name() != "x2" {
		t.Errorf("Name = %q, want x2", n.Name())
	}
}

func TestSetNameDetached(t *testing.T) {
	n := NewPoint("a")
	n.SetName("b")
	if n.Name() != "b" {
		t.Errorf("Name = %q, want b", n.Name())
	}
}

// --- Tree manipulation ---

func TestAddChildReparents(t *testing.T) {
	p1 := NewPoint("p1")
	p2 := NewPoint("p2")
	c := NewPoint("c")
	p1.AddChild(c)
	p2.AddChild(c)
	if c.Parent() != p2 {
		t.Error("parent should be p2")
	}
	if p1.NumChildren() != 0 || p2.NumChildren() != 1 {
		t.Errorf("children = %d, %d", p1.NumChildren(), p2.NumChildren())
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil", func() { NewPoint("a").AddChild(nil) }},
		{"self", func() {
			a := NewPoint("a")
			a.AddChild(a)
		}},
		{"cycle", func() {
			a := NewPoint("a")
			b := NewPoint("b")
			a.AddChild(b)
			b.AddChild(a)
		}},
		{"index", func() { NewPoint("a").AddChildAt(NewPoint("b"), 2) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestAddChildAt(t *testing.T) {
	root := NewPoint("root")
	a, b, c := NewPoint("a"), NewPoint("b"), NewPoint("c")
	root.AddChild(a)
	root.AddChild(b)
	root.AddChildAt(c, 1)
	if root.ChildAt(0) != a || root.ChildAt(1) != c || root.ChildAt(2) != b {
		t.Errorf("order = %s %s %s", root.ChildAt(0).Name(), root.ChildAt(1).Name(), root.ChildAt(2).Name())
	}
}

func TestRemoveChild(t *testing.T) {
	root := NewPoint("root")
	c := NewPoint("c")
	root.AddChild(c)
	if !root.RemoveChild(c) {
		t.Fatal("RemoveChild should succeed")
	}
	if c.Parent() != nil || root.NumChildren() != 0 {
		t.Error("child not detached")
	}
	if root.RemoveChild(c) {
		t.Error("second RemoveChild should report false")
	}
	if root.RemoveChild(NewPoint("stranger")) {
		t.Error("removing a non-child should report false")
	}
}

func TestRemoveFromParentNoParent(t *testing.T) {
	n := NewPoint("n")
	n.RemoveFromParent() // no-op
}

func TestMoveTo(t *testing.T) {
	root := NewPoint("root")
	a, b, c := NewPoint("a"), NewPoint("b"), NewPoint("c")
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)

	if err := c.MoveTo(root, 0); err != nil {
		t.Fatalf("MoveTo: %v", err)
	}
	if root.ChildAt(0) != c || root.ChildAt(1) != a || root.ChildAt(2) != b {
		t.Error("reorder failed")
	}

	if err := a.MoveTo(b, -1); err != nil {
		t.Fatalf("MoveTo: %v", err)
	}
	if a.Parent() != b || root.NumChildren() != 2 {
		t.Error("reparent failed")
	}
}

func TestMoveToErrors(t *testing.T) {
	root := NewPoint("root")
	a := NewPoint("a")
	b := NewPoint("b")
	root.AddChild(a)
	a.AddChild(b)

	if err := a.MoveTo(b, -1); !errors.Is(err, ErrCycle) {
		t.Errorf("cycle err = %v", err)
	}
	if err := a.MoveTo(a, -1); !errors.Is(err, ErrCycle) {
		t.Errorf("self err = %v", err)
	}
	if err := b.MoveTo(root, 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("index err = %v", err)
	}
	if err := b.MoveTo(nil, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("nil err = %v", err)
	}
	if b.Parent() != a {
		t.Error("failed moves must not change the tree")
	}
}

func TestMoveToResolvesName(t *testing.T) {
	root := NewPoint("root")
	group := NewPoint("group")
	root.AddChild(NewPoint("x"))
	root.AddChild(group)
	n := NewPoint("x")
	group.AddChild(n)
	if err := n.MoveTo(root, -1); err != nil {
		t.Fatal(err)
	}
	if n.Name() != "x1" {
		t.Errorf("Name = %q, want x1", n.Name())
	}
}

// --- Queries ---

func TestLineageAndPath(t *testing.T) {
	root := NewPoint("root")
	body := NewShape("body")
	arm := NewPoint("arm")
	root.AddChild(body)
	body.AddChild(arm)

	lineage := arm.Lineage()
	if len(lineage) != 3 || lineage[0] != root || lineage[2] != arm {
		t.Errorf("lineage = %v", lineage)
	}
	if got := arm.Path(); got != "body/arm" {
		t.Errorf("Path = %q", got)
	}
	if got := root.Path(); got != "" {
		t.Errorf("root Path = %q", got)
	}
	if arm.Root() != root {
		t.Error("Root mismatch")
	}
	if root.Find("body/arm") != arm || root.Find("") != root || root.Find("body/leg") != nil {
		t.Error("Find mismatch")
	}
	if body.IndexOf(arm) != 0 || root.IndexOf(arm) != -1 {
		t.Error("IndexOf mismatch")
	}
}

func TestWalkPreOrder(t *testing.T) {
	root := NewPoint("root")
	a, b, c := NewPoint("a"), NewPoint("b"), NewPoint("c")
	root.AddChild(a)
	a.AddChild(b)
	root.AddChild(c)

	var got []string
	root.Walk(func(n *Node) { got = append(got, n.Name()) })
	want := []string{"root", "a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("walk[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// --- Mutators ---

func TestSetTransformRejectsZeroScale(t *testing.T) {
	n := NewPoint("n")
	if err := n.SetTransform(Transform{Scale: 0}); !errors.Is(err, ErrZeroScale) {
		t.Errorf("err = %v", err)
	}
	if n.Transform.Scale != 1 {
		t.Error("transform must be unchanged")
	}
}

func TestSetRegionResolves(t *testing.T) {
	regions := fakeRegions{"hero": {Name: "hero"}}
	n := NewSprite("s", "missing", regions)
	if n.Sprite.Region != nil {
		t.Error("unknown region should stay unresolved")
	}
	n.SetRegion("hero", regions)
	if n.Sprite.Region == nil || n.Sprite.Region.Name != "hero" {
		t.Errorf("Region = %+v", n.Sprite.Region)
	}
	// No-op on other kinds.
	p := NewPoint("p")
	p.SetRegion("hero", regions)
	if p.Sprite != nil {
		t.Error("SetRegion on a point must not add a sprite payload")
	}
}
