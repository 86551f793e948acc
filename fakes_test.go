package peony

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// fakeRaster is a Raster of a fixed size.
type fakeRaster struct{ w, h int }

func (r fakeRaster) Bounds() image.Rectangle { return image.Rect(0, 0, r.w, r.h) }

// fakeRegions is a RegionProvider backed by a map.
type fakeRegions map[string]Region

func (f fakeRegions) Region(name string) (Region, bool) {
	r, ok := f[name]
	return r, ok
}

// fakeLoader serves rasters by path and records every request.
type fakeLoader struct {
	rasters   map[string]Raster
	requested []string
}

var errNoSuchFile = errors.New("no such file")

func (l *fakeLoader) LoadImage(path string) (Raster, error) {
	l.requested = append(l.requested, path)
	if r, ok := l.rasters[path]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("load %s: %w", path, errNoSuchFile)
}

// fakeAtlases serves RegionProviders by path.
type fakeAtlases map[string]RegionProvider

func (f fakeAtlases) LoadAtlas(path string) (RegionProvider, error) {
	if r, ok := f[path]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("atlas %s: %w", path, errNoSuchFile)
}

// recordingSurface records drawing commands as strings.
type recordingSurface struct {
	ops    []string
	colour color.Color
	depth  int
}

func (s *recordingSurface) SetColour(c color.Color) { s.colour = c }

func (s *recordingSurface) DrawLine(a, b Vec2) {
	s.ops = append(s.ops, fmt.Sprintf("line %v->%v %s", a, b, colourName(s.colour)))
}

func (s *recordingSurface) DrawDottedLine(a, b Vec2) {
	s.ops = append(s.ops, fmt.Sprintf("dotted %v->%v", a, b))
}

func (s *recordingSurface) DrawCircle(c Vec2, r float64) {
	s.ops = append(s.ops, fmt.Sprintf("circle %v r=%v %s", c, r, colourName(s.colour)))
}

func (s *recordingSurface) DrawText(p Vec2, text string) {
	s.ops = append(s.ops, fmt.Sprintf("text %q %s", text, colourName(s.colour)))
}

func (s *recordingSurface) DrawImage(img Raster, src image.Rectangle, dst Rect) {
	s.ops = append(s.ops, fmt.Sprintf("image %v -> %vx%v", src, dst.Width, dst.Height))
}

func (s *recordingSurface) Push(t Transform) {
	s.depth++
	s.ops = append(s.ops, "push")
}

func (s *recordingSurface) Pop() {
	s.depth--
	s.ops = append(s.ops, "pop")
}

func colourName(c color.Color) string {
	switch c {
	case ColourNormal:
		return "normal"
	case ColourSelected:
		return "selected"
	case ColourLocked:
		return "locked"
	case ColourLockedSelected:
		return "locked-selected"
	case ColourVertex:
		return "vertex"
	}
	return "?"
}
