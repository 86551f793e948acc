package peony

import "fmt"

// Transform maps a node's local space into its parent's space. Rotation is in
// radians; Scale must be non-zero.
type Transform struct {
	Translation Vec2
	Rotation    float64
	Scale       float64
}

// IdentityTransform returns the transform that leaves every point unchanged.
func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// NewTransform returns a validated transform.
func NewTransform(translation Vec2, rotation, scale float64) (Transform, error) {
	t := Transform{Translation: translation, Rotation: rotation, Scale: scale}
	if err := t.Validate(); err != nil {
		return Transform{}, err
	}
	return t, nil
}

// Validate reports ErrZeroScale for a transform that cannot be inverted.
func (t Transform) Validate() error {
	if t.Scale == 0 {
		return fmt.Errorf("transform: %w", ErrZeroScale)
	}
	return nil
}

// IntoLocal converts a point from parent space into local space.
func (t Transform) IntoLocal(p Vec2) Vec2 {
	d := p.Minus(t.Translation)
	return FromPolar(d.Angle()+t.Rotation, d.Length()/t.Scale)
}

// OutOfLocal converts a point from local space into parent space. It is the
// inverse of IntoLocal.
func (t Transform) OutOfLocal(p Vec2) Vec2 {
	return FromPolar(p.Angle()-t.Rotation, p.Length()*t.Scale).Plus(t.Translation)
}

// --- Transform stack ---

// TransformStack accumulates the transforms of a root-to-leaf walk. Surfaces
// use it to bring local drawing coordinates out to the target space.
type TransformStack struct {
	stack []Transform
}

// Push appends t as the innermost transform.
func (s *TransformStack) Push(t Transform) {
	s.stack = append(s.stack, t)
}

// Pop removes and returns the innermost transform.
func (s *TransformStack) Pop() (Transform, bool) {
	if len(s.stack) == 0 {
		return Transform{}, false
	}
	t := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return t, true
}

// Len returns the number of pushed transforms.
func (s *TransformStack) Len() int {
	return len(s.stack)
}

// OutOfLocal applies every transform from innermost to outermost.
func (s *TransformStack) OutOfLocal(p Vec2) Vec2 {
	for i := len(s.stack) - 1; i >= 0; i-- {
		p = s.stack[i].OutOfLocal(p)
	}
	return p
}

// IntoLocal applies every transform from outermost to innermost.
func (s *TransformStack) IntoLocal(p Vec2) Vec2 {
	for _, t := range s.stack {
		p = t.IntoLocal(p)
	}
	return p
}

// --- Tree-space conversion ---

// GlobalToLocal converts a point in the root's parent space into n's local
// space, passing through every ancestor transform.
func GlobalToLocal(n *Node, world Vec2) Vec2 {
	lineage := n.Lineage()
	for _, a := range lineage {
		world = a.Transform.IntoLocal(world)
	}
	return world
}

// LocalToGlobal converts a point in n's local space out to the root's parent
// space.
func LocalToGlobal(n *Node, local Vec2) Vec2 {
	for p := n; p != nil; p = p.parent {
		local = p.Transform.OutOfLocal(local)
	}
	return local
}

// ParentToLocal converts a world point into the space n's translation is
// expressed in (its parent's local space, or world space for a root).
func ParentToLocal(n *Node, world Vec2) Vec2 {
	if n.parent == nil {
		return world
	}
	return GlobalToLocal(n.parent, world)
}
