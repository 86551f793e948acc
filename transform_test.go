package peony

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > 1e-6 || math.Abs(got.Y-want.Y) > 1e-6 {
		t.Errorf("%s = (%v, %v), want (%v, %v)", name, got.X, got.Y, want.X, want.Y)
	}
}

// --- Vec2 ---

func TestVec2Arithmetic(t *testing.T) {
	a := Vec2{3, 4}
	b := Vec2{1, -2}
	assertVec(t, "Plus", a.Plus(b), Vec2{4, 2})
	assertVec(t, "Minus", a.Minus(b), Vec2{2, 6})
	assertVec(t, "Times", a.Times(2), Vec2{6, 8})
	assertNear(t, "Length", a.Length(), 5)
	assertNear(t, "Distance", a.Distance(Vec2{}), 5)
	assertNear(t, "Angle", Vec2{0, 1}.Angle(), math.Pi/2)
}

func TestVec2PureOpsDoNotMutate(t *testing.T) {
	a := Vec2{1, 1}
	_ = a.Plus(Vec2{5, 5})
	_ = a.Times(3)
	if a != (Vec2{1, 1}) {
		t.Errorf("a = %+v, want unchanged", a)
	}
}

func TestVec2InPlace(t *testing.T) {
	v := Vec2{1, 2}
	v.Add(Vec2{1, 1})
	assertVec(t, "Add", v, Vec2{2, 3})
	v.Subtract(Vec2{2, 0})
	assertVec(t, "Subtract", v, Vec2{0, 3})
	v.Multiply(2)
	assertVec(t, "Multiply", v, Vec2{0, 6})
	v.Set(7, 8)
	assertVec(t, "Set", v, Vec2{7, 8})
}

func TestFromPolar(t *testing.T) {
	assertVec(t, "0", FromPolar(0, 2), Vec2{2, 0})
	assertVec(t, "pi/2", FromPolar(math.Pi/2, 3), Vec2{0, 3})
}

// --- Transform ---

func TestIntoLocalKnownValues(t *testing.T) {
	tr := Transform{Translation: Vec2{5, 5}, Rotation: math.Pi / 2, Scale: 0.5}
	tests := []struct {
		in, want Vec2
	}{
		{Vec2{0, 2}, Vec2{6, -10}},
		{Vec2{4, 4}, Vec2{2, -2}},
	}
	for _, tt := range tests {
		assertVec(t, "IntoLocal", tr.IntoLocal(tt.in), tt.want)
		assertVec(t, "OutOfLocal", tr.OutOfLocal(tt.want), tt.in)
	}
}

func TestTransformInverseLaw(t *testing.T) {
	transforms := []Transform{
		IdentityTransform(),
		{Translation: Vec2{10, -3}, Rotation: 0.3, Scale: 2},
		{Translation: Vec2{-7, 12}, Rotation: -2.5, Scale: 0.25},
		{Rotation: math.Pi, Scale: -1.5},
	}
	points := []Vec2{{0, 0}, {1, 2}, {-30, 4.5}, {1e3, -1e3}}
	for _, tr := range transforms {
		for _, p := range points {
			assertVec(t, "out(in(p))", tr.OutOfLocal(tr.IntoLocal(p)), p)
			assertVec(t, "in(out(p))", tr.IntoLocal(tr.OutOfLocal(p)), p)
		}
	}
}

func TestIdentityTransform(t *testing.T) {
	id := IdentityTransform()
	p := Vec2{3, -9}
	assertVec(t, "IntoLocal", id.IntoLocal(p), p)
	assertVec(t, "OutOfLocal", id.OutOfLocal(p), p)
}

func TestNewTransformZeroScale(t *testing.T) {
	_, err := NewTransform(Vec2{}, 0, 0)
	if !errors.Is(err, ErrZeroScale) {
		t.Fatalf("err = %v, want ErrZeroScale", err)
	}
	tr, err := NewTransform(Vec2{1, 2}, 0.5, 3)
	if err != nil {
		t.Fatalf("NewTransform: %v", err)
	}
	if tr.Scale != 3 || tr.Rotation != 0.5 {
		t.Errorf("tr = %+v", tr)
	}
}

// --- TransformStack ---

func TestTransformStackOrder(t *testing.T) {
	outer := Transform{Translation: Vec2{100, 0}, Scale: 1}
	inner := Transform{Scale: 2}
	var s TransformStack
	s.Push(outer)
	s.Push(inner)
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	p := Vec2{1, 0}
	assertVec(t, "OutOfLocal", s.OutOfLocal(p), outer.OutOfLocal(inner.OutOfLocal(p)))
	assertVec(t, "OutOfLocal value", s.OutOfLocal(p), Vec2{102, 0})
	assertVec(t, "IntoLocal", s.IntoLocal(Vec2{102, 0}), p)

	top, ok := s.Pop()
	if !ok || top != inner {
		t.Errorf("Pop = %+v, %v", top, ok)
	}
	s.Pop()
	if _, ok := s.Pop(); ok {
		t.Error("Pop on empty stack should report false")
	}
}

func TestTransformStackDeep(t *testing.T) {
	var s TransformStack
	for range 10000 {
		s.Push(Transform{Translation: Vec2{1, 0}, Scale: 1})
	}
	assertVec(t, "deep", s.OutOfLocal(Vec2{}), Vec2{10000, 0})
}

// --- Tree-space conversion ---

func TestGlobalToLocal(t *testing.T) {
	root := NewPoint("root")
	root.Transform.Translation = Vec2{10, 0}
	child := NewPoint("child")
	child.Transform = Transform{Translation: Vec2{0, 5}, Scale: 2}
	root.AddChild(child)

	assertVec(t, "LocalToGlobal", LocalToGlobal(child, Vec2{1, 0}), Vec2{12, 5})
	assertVec(t, "GlobalToLocal", GlobalToLocal(child, Vec2{12, 5}), Vec2{1, 0})
	assertVec(t, "ParentToLocal", ParentToLocal(child, Vec2{12, 5}), Vec2{2, 5})
	assertVec(t, "ParentToLocal root", ParentToLocal(root, Vec2{12, 5}), Vec2{12, 5})
}
