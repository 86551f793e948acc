package peony

// Drag applies a pointer drag from one world point to another to the
// selection. A selected vertex follows the pointer in the shape's local
// space; otherwise the node's translation follows it in the parent's space.
// It reports false when nothing is selected.
func (s Selection) Drag(from, to Vec2) bool {
	n := s.Node
	if n == nil {
		return false
	}
	if s.HasVertex() {
		delta := GlobalToLocal(n, to).Minus(GlobalToLocal(n, from))
		return n.SetPoint(s.Vertex, n.Shape.Point(s.Vertex).Plus(delta))
	}
	delta := ParentToLocal(n, to).Minus(ParentToLocal(n, from))
	n.MoveBy(delta)
	return true
}

// SplitEdge splits the edge that starts at the selected vertex and returns a
// selection of the inserted midpoint.
func (s Selection) SplitEdge() (Selection, bool) {
	if !s.HasVertex() {
		return s, false
	}
	at, ok := s.Node.SplitEdge(s.Vertex)
	if !ok {
		return s, false
	}
	return Selection{Node: s.Node, Vertex: at}, true
}

// RemovePoint deletes the selected vertex and returns a selection of its
// predecessor. A shape with only MinPoints vertices is left unchanged.
func (s Selection) RemovePoint() (Selection, bool) {
	if !s.HasVertex() {
		return s, false
	}
	prev, ok := s.Node.RemovePoint(s.Vertex)
	if !ok {
		return s, false
	}
	return Selection{Node: s.Node, Vertex: prev}, true
}

// Origin returns the selection's anchor in world space: the selected vertex,
// or else the node's origin.
func (s Selection) Origin() (Vec2, bool) {
	if s.Node == nil {
		return Vec2{}, false
	}
	local := Vec2{}
	if s.HasVertex() {
		local = s.Node.Shape.Point(s.Vertex)
	}
	return LocalToGlobal(s.Node, local), true
}
