package ebitenview

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/peony"
)

const (
	strokeWidth = 1
	dashLength  = 4
	labelSize   = 12
)

// LoadLabelFace returns the face used for node labels.
func LoadLabelFace() (*text.GoTextFace, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return &text.GoTextFace{Source: source, Size: labelSize}, nil
}

// Surface implements peony.Surface on an ebiten image. Every local
// coordinate is carried out to screen space through the transform stack,
// so the camera is simply the first transform pushed.
type Surface struct {
	dst    *ebiten.Image
	face   *text.GoTextFace
	colour color.Color
	stack  peony.TransformStack

	// converted caches ebiten copies of non-ebiten rasters.
	converted map[image.Image]*ebiten.Image
}

// NewSurface returns a surface with no target. Call Begin each frame.
// face may be nil, in which case labels are not drawn.
func NewSurface(face *text.GoTextFace) *Surface {
	return &Surface{
		face:      face,
		colour:    peony.ColourNormal,
		converted: make(map[image.Image]*ebiten.Image),
	}
}

// Begin starts a frame on dst with the camera transform outermost.
func (s *Surface) Begin(dst *ebiten.Image, camera peony.Transform) {
	s.dst = dst
	s.stack = peony.TransformStack{}
	s.stack.Push(camera)
}

// Depth returns the number of transforms currently pushed, camera included.
func (s *Surface) Depth() int {
	return s.stack.Len()
}

func (s *Surface) SetColour(c color.Color) { s.colour = c }

func (s *Surface) Push(t peony.Transform) { s.stack.Push(t) }

func (s *Surface) Pop() { s.stack.Pop() }

func (s *Surface) DrawLine(a, b peony.Vec2) {
	p, q := s.stack.OutOfLocal(a), s.stack.OutOfLocal(b)
	s.strokeLine(p, q)
}

// DrawDottedLine draws alternating dashes of dashLength screen pixels.
func (s *Surface) DrawDottedLine(a, b peony.Vec2) {
	p, q := s.stack.OutOfLocal(a), s.stack.OutOfLocal(b)
	for _, d := range dashes(p, q, dashLength) {
		s.strokeLine(d[0], d[1])
	}
}

func (s *Surface) DrawCircle(centre peony.Vec2, radius float64) {
	c := s.stack.OutOfLocal(centre)
	r := s.screenLength(centre, radius)
	vector.StrokeCircle(s.dst, float32(c.X), float32(c.Y), float32(r), strokeWidth, s.colour, true)
}

func (s *Surface) DrawText(pos peony.Vec2, label string) {
	if s.face == nil || label == "" {
		return
	}
	p := s.stack.OutOfLocal(pos)
	op := &text.DrawOptions{}
	op.GeoM.Translate(p.X+peony.PointRadius, p.Y-labelSize-peony.PointRadius)
	op.ColorScale.ScaleWithColor(s.colour)
	text.Draw(s.dst, label, s.face, op)
}

// DrawImage maps the src rectangle of img onto the transformed dst
// rectangle. Rasters that are neither ebiten images nor image.Image values
// are outlined instead.
func (s *Surface) DrawImage(img peony.Raster, src image.Rectangle, dst peony.Rect) {
	tex := s.texture(img)
	if tex == nil || src.Empty() {
		s.outline(dst)
		return
	}
	sub := tex.SubImage(src).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = quadGeoM(s.corners(dst), float64(src.Dx()), float64(src.Dy()))
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(sub, op)
}

func (s *Surface) texture(img peony.Raster) *ebiten.Image {
	switch v := img.(type) {
	case *ebiten.Image:
		return v
	case image.Image:
		if tex, ok := s.converted[v]; ok {
			return tex
		}
		tex := ebiten.NewImageFromImage(v)
		s.converted[v] = tex
		return tex
	}
	return nil
}

func (s *Surface) corners(r peony.Rect) [3]peony.Vec2 {
	return [3]peony.Vec2{
		s.stack.OutOfLocal(peony.Vec2{X: r.X, Y: r.Y}),
		s.stack.OutOfLocal(peony.Vec2{X: r.X + r.Width, Y: r.Y}),
		s.stack.OutOfLocal(peony.Vec2{X: r.X, Y: r.Y + r.Height}),
	}
}

func (s *Surface) outline(r peony.Rect) {
	tl := peony.Vec2{X: r.X, Y: r.Y}
	tr := peony.Vec2{X: r.X + r.Width, Y: r.Y}
	br := peony.Vec2{X: r.X + r.Width, Y: r.Y + r.Height}
	bl := peony.Vec2{X: r.X, Y: r.Y + r.Height}
	s.DrawLine(tl, tr)
	s.DrawLine(tr, br)
	s.DrawLine(br, bl)
	s.DrawLine(bl, tl)
}

func (s *Surface) strokeLine(p, q peony.Vec2) {
	vector.StrokeLine(s.dst, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), strokeWidth, s.colour, true)
}

// screenLength returns the on-screen length of a local distance measured
// from origin.
func (s *Surface) screenLength(origin peony.Vec2, length float64) float64 {
	a := s.stack.OutOfLocal(origin)
	b := s.stack.OutOfLocal(origin.Plus(peony.Vec2{X: length}))
	return a.Distance(b)
}

// quadGeoM returns the affine matrix taking a w*h image onto the
// parallelogram whose top-left, top-right and bottom-left corners are c.
func quadGeoM(c [3]peony.Vec2, w, h float64) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, (c[1].X-c[0].X)/w)
	m.SetElement(1, 0, (c[1].Y-c[0].Y)/w)
	m.SetElement(0, 1, (c[2].X-c[0].X)/h)
	m.SetElement(1, 1, (c[2].Y-c[0].Y)/h)
	m.SetElement(0, 2, c[0].X)
	m.SetElement(1, 2, c[0].Y)
	return m
}

// dashes splits the segment p-q into dashes of length dash separated by gaps
// of the same length.
func dashes(p, q peony.Vec2, dash float64) [][2]peony.Vec2 {
	length := p.Distance(q)
	if length == 0 {
		return nil
	}
	dir := q.Minus(p).Times(1 / length)
	n := int(math.Ceil(length / (2 * dash)))
	out := make([][2]peony.Vec2, 0, n)
	for start := 0.0; start < length; start += 2 * dash {
		end := math.Min(start+dash, length)
		out = append(out, [2]peony.Vec2{p.Plus(dir.Times(start)), p.Plus(dir.Times(end))})
	}
	return out
}
