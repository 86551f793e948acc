package peony

import "math"

// Selection names a node and optionally one of its vertices. It is both the
// result of a hit test and the editor's current selection. The zero value
// selects nothing; use NoSelection for clarity.
type Selection struct {
	Node   *Node
	Vertex int
}

// NoSelection selects nothing.
var NoSelection = Selection{Vertex: NoVertex}

// Select returns a selection of n with no vertex.
func Select(n *Node) Selection {
	return Selection{Node: n, Vertex: NoVertex}
}

// HasVertex reports whether a vertex of a shape node is selected.
func (s Selection) HasVertex() bool {
	return s.Node != nil && s.Node.Shape != nil &&
		s.Vertex >= 0 && s.Vertex < s.Node.Shape.Len()
}

// Hit returns the topmost unlocked node under p, where p is expressed in
// the space n's transform maps into (its parent's space, or world space for
// a root). Later children are on top. A locked node is transparent to hits
// but its children are still tested.
func (n *Node) Hit(p Vec2) (Selection, bool) {
	local := n.Transform.IntoLocal(p)
	for i := len(n.children) - 1; i >= 0; i-- {
		if sel, ok := n.children[i].Hit(local); ok {
			return sel, true
		}
	}
	if n.Locked || !n.InsideLocal(local) {
		return NoSelection, false
	}
	sel := Select(n)
	if n.Shape != nil {
		if i, ok := n.Shape.PointNear(local); ok {
			sel.Vertex = i
		}
	}
	return sel, true
}

// InsideLocal reports whether p, in n's local space, lies on the node's own
// pickable area. Children are not considered.
func (n *Node) InsideLocal(p Vec2) bool {
	switch n.Kind {
	case KindPoint:
		return p.Length() < PointSelectRadius
	case KindShape:
		return n.Shape != nil && n.Shape.ContainsLocal(p)
	case KindImage:
		if w, h, ok := n.Image.Size(); ok {
			return Rect{Width: w, Height: h}.Contains(p.X, p.Y)
		}
		return p.Length() < ImageSelectRadius
	case KindSprite:
		if w, h, ok := n.Sprite.Size(); ok {
			return Rect{Width: w, Height: h}.Contains(p.X, p.Y)
		}
		return p.Length() < ImageSelectRadius
	}
	return false
}

// LocalBounds returns the node's own pickable area as an axis-aligned box in
// local space.
func (n *Node) LocalBounds() Rect {
	square := func(r float64) Rect { return Rect{X: -r, Y: -r, Width: 2 * r, Height: 2 * r} }
	switch n.Kind {
	case KindShape:
		if n.Shape != nil {
			b := n.Shape.Bounds()
			return Rect{X: b.X - PointRadius, Y: b.Y - PointRadius,
				Width: b.Width + 2*PointRadius, Height: b.Height + 2*PointRadius}
		}
	case KindImage:
		if w, h, ok := n.Image.Size(); ok {
			return Rect{Width: w, Height: h}
		}
		return square(ImageSelectRadius)
	case KindSprite:
		if w, h, ok := n.Sprite.Size(); ok {
			return Rect{Width: w, Height: h}
		}
		return square(ImageSelectRadius)
	}
	return square(PointSelectRadius)
}

// WorldExtent returns the radius of a circle around the node's world origin
// that encloses its own local bounds, taking the accumulated scale into
// account.
func (n *Node) WorldExtent() float64 {
	b := n.LocalBounds()
	r := 0.0
	for _, c := range [4]Vec2{{b.X, b.Y}, {b.X + b.Width, b.Y}, {b.X, b.Y + b.Height}, {b.X + b.Width, b.Y + b.Height}} {
		r = math.Max(r, c.Length())
	}
	for p := n; p != nil; p = p.parent {
		r *= math.Abs(p.Transform.Scale)
	}
	return r
}
