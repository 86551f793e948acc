package peony

import (
	"fmt"
	"math"
)

// Polygon is the closed vertex ring of a shape node, always holding at least
// MinPoints vertices. Vertices are addressed by index; edge i runs from
// vertex i to vertex i+1, wrapping at the end.
type Polygon struct {
	points []Vec2
}

// NewPolygon copies points into a new polygon.
func NewPolygon(points []Vec2) (*Polygon, error) {
	if len(points) < MinPoints {
		return nil, fmt.Errorf("polygon with %d points: %w", len(points), ErrTooFewPoints)
	}
	return &Polygon{points: append([]Vec2(nil), points...)}, nil
}

// DefaultPolygon returns an equilateral triangle of circumradius
// DefaultShapeRadius centred on the origin, with its first vertex on +X.
func DefaultPolygon() *Polygon {
	pts := make([]Vec2, MinPoints)
	for i := range pts {
		pts[i] = FromPolar(float64(i)*2*math.Pi/MinPoints, DefaultShapeRadius)
	}
	return &Polygon{points: pts}
}

// Len returns the number of vertices.
func (p *Polygon) Len() int {
	return len(p.points)
}

// Point returns vertex i.
func (p *Polygon) Point(i int) Vec2 {
	return p.points[i]
}

// Points returns a copy of the vertex ring.
func (p *Polygon) Points() []Vec2 {
	return append([]Vec2(nil), p.points...)
}

// SetPoint overwrites vertex i. It reports false for an invalid index.
func (p *Polygon) SetPoint(i int, v Vec2) bool {
	if i < 0 || i >= len(p.points) {
		return false
	}
	p.points[i] = v
	return true
}

// PointNear returns the first vertex within PointRadius of pos.
func (p *Polygon) PointNear(pos Vec2) (int, bool) {
	for i, v := range p.points {
		if v.Distance(pos) <= PointRadius {
			return i, true
		}
	}
	return NoVertex, false
}

// ContainsLocal reports whether pos, in the shape's local space, is inside
// the polygon. Points strictly within PointRadius of a vertex count as
// inside so vertices stay pickable; otherwise the even-odd rule applies.
func (p *Polygon) ContainsLocal(pos Vec2) bool {
	for _, v := range p.points {
		if v.Distance(pos) < PointRadius {
			return true
		}
	}
	inside := false
	n := len(p.points)
	for i := range n {
		c := p.points[i]
		nx := p.points[(i+1)%n]
		if (c.Y > pos.Y) != (nx.Y > pos.Y) &&
			pos.X < (nx.X-c.X)*(pos.Y-c.Y)/(nx.Y-c.Y)+c.X {
			inside = !inside
		}
	}
	return inside
}

// SplitEdge inserts the midpoint of edge after (from vertex after to its
// successor) at index after+1 and returns that index. It reports false,
// changing nothing, for an invalid index.
func (p *Polygon) SplitEdge(after int) (int, bool) {
	n := len(p.points)
	if after < 0 || after >= n {
		return NoVertex, false
	}
	mid := p.points[after].Plus(p.points[(after+1)%n]).Times(0.5)
	at := after + 1
	p.points = append(p.points, Vec2{})
	copy(p.points[at+1:], p.points[at:])
	p.points[at] = mid
	return at, true
}

// RemovePoint deletes vertex i and returns the index of the vertex that now
// precedes the gap (the last vertex when i was 0). It refuses, reporting
// false, when only MinPoints vertices remain or i is invalid.
func (p *Polygon) RemovePoint(i int) (int, bool) {
	n := len(p.points)
	if n <= MinPoints || i < 0 || i >= n {
		return NoVertex, false
	}
	p.points = append(p.points[:i], p.points[i+1:]...)
	if i == 0 {
		return len(p.points) - 1, true
	}
	return i - 1, true
}

// Centroid returns the mean of the vertices.
func (p *Polygon) Centroid() Vec2 {
	var sum Vec2
	for _, v := range p.points {
		sum.Add(v)
	}
	return sum.Times(1 / float64(len(p.points)))
}

// Bounds returns the axis-aligned box enclosing every vertex.
func (p *Polygon) Bounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range p.points {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- Node-level editing ---

// SplitEdge splits edge after of a shape node. See Polygon.SplitEdge.
func (n *Node) SplitEdge(after int) (int, bool) {
	if n.Shape == nil {
		return NoVertex, false
	}
	at, ok := n.Shape.SplitEdge(after)
	if ok {
		n.emit(ChangeGeometry)
	}
	return at, ok
}

// RemovePoint removes vertex i of a shape node. See Polygon.RemovePoint.
func (n *Node) RemovePoint(i int) (int, bool) {
	if n.Shape == nil {
		return NoVertex, false
	}
	prev, ok := n.Shape.RemovePoint(i)
	if ok {
		n.emit(ChangeGeometry)
	}
	return prev, ok
}

// SetPoint moves vertex i of a shape node to v, in the node's local space.
func (n *Node) SetPoint(i int, v Vec2) bool {
	if n.Shape == nil || !n.Shape.SetPoint(i, v) {
		return false
	}
	n.emit(ChangeGeometry)
	return true
}

// Recentre adds the centroid of a shape node's vertices to its translation
// and subtracts it from every vertex, leaving the centroid at the local
// origin. The visual position is preserved for unrotated, unscaled nodes. It
// reports false for non-shape nodes.
func (n *Node) Recentre() bool {
	if n.Shape == nil {
		return false
	}
	mean := n.Shape.Centroid()
	n.Transform.Translation.Add(mean)
	for i := range n.Shape.points {
		n.Shape.points[i].Subtract(mean)
	}
	n.emit(ChangeGeometry)
	return true
}
