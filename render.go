package peony

import (
	"image"
	"image/color"
)

// Surface receives the drawing commands of a render walk. Coordinates are in
// the local space established by the pushed transforms.
type Surface interface {
	SetColour(c color.Color)
	DrawLine(a, b Vec2)
	DrawDottedLine(a, b Vec2)
	DrawCircle(centre Vec2, radius float64)
	DrawText(pos Vec2, text string)
	// DrawImage draws the src sub-rectangle of img into dst.
	DrawImage(img Raster, src image.Rectangle, dst Rect)
	Push(t Transform)
	Pop()
}

// Render draws the tree rooted at root onto s, highlighting sel. For each
// node it pushes the node transform, draws the node's own geometry, labels
// its origin with its name, draws dotted lines to each child's origin,
// recurses into the children and pops.
func Render(root *Node, s Surface, sel Selection) {
	if root == nil {
		return
	}
	s.Push(root.Transform)
	selected := sel.Node == root
	root.drawOwn(s, sel, selected)
	if selected {
		s.SetColour(ColourSelected)
	} else {
		s.SetColour(ColourNormal)
	}
	s.DrawText(Vec2{}, root.name)
	for _, c := range root.children {
		s.DrawDottedLine(Vec2{}, c.Transform.Translation)
	}
	for _, c := range root.children {
		Render(c, s, sel)
	}
	s.Pop()
}

func (n *Node) drawOwn(s Surface, sel Selection, selected bool) {
	normal := ColourNormal
	if selected {
		normal = ColourSelected
	}
	switch n.Kind {
	case KindPoint:
		s.SetColour(normal)
		s.DrawCircle(Vec2{}, PointRadius)
	case KindShape:
		n.drawShape(s, sel, selected, normal)
	case KindImage:
		s.SetColour(normal)
		if w, h, ok := n.Image.Size(); ok {
			s.DrawImage(n.Image.Raster, n.Image.Raster.Bounds(), Rect{Width: w, Height: h})
		} else {
			s.DrawCircle(Vec2{}, ImageSelectRadius)
		}
	case KindSprite:
		s.SetColour(normal)
		if w, h, ok := n.Sprite.Size(); ok {
			r := n.Sprite.Region
			s.DrawImage(r.Image, r.Bounds, Rect{Width: w, Height: h})
		} else {
			s.DrawCircle(Vec2{}, ImageSelectRadius)
		}
	}
}

func (n *Node) drawShape(s Surface, sel Selection, selected bool, normal color.Color) {
	if n.Shape == nil {
		return
	}
	pts := n.Shape.points
	if n.Locked {
		if selected {
			s.SetColour(ColourLockedSelected)
		} else {
			s.SetColour(ColourLocked)
		}
	}
	for i, p := range pts {
		if !n.Locked {
			if selected && sel.Vertex == i {
				s.SetColour(ColourVertex)
			} else {
				s.SetColour(normal)
			}
			s.DrawCircle(p, PointRadius)
		}
		s.DrawLine(p, pts[(i+1)%len(pts)])
	}
}
