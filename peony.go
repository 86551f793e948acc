package peony

import (
	"image"
	"image/color"
)

// Kind distinguishes the variant payload carried by a Node.
type Kind uint8

const (
	KindPoint  Kind = iota // marker with no geometry
	KindShape              // closed polygon
	KindImage              // raster loaded from a file
	KindSprite             // named region of the game atlas
)

// String returns the document tag for the kind.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindShape:
		return "shape"
	case KindImage:
		return "image"
	case KindSprite:
		return "sprite"
	default:
		return "unknown"
	}
}

// ParseKind maps a document tag back to its Kind.
func ParseKind(tag string) (Kind, bool) {
	switch tag {
	case "point":
		return KindPoint, true
	case "shape":
		return KindShape, true
	case "image":
		return KindImage, true
	case "sprite":
		return KindSprite, true
	}
	return 0, false
}

// Geometry constants shared by hit-testing, editing and rendering.
const (
	// PointRadius is the pick radius of a shape vertex.
	PointRadius = 5.0
	// DefaultShapeRadius is the circumradius of a freshly created shape.
	DefaultShapeRadius = 64.0
	// MinPoints is the fewest vertices a shape may have.
	MinPoints = 3
	// PointSelectRadius is the pick radius of a point node.
	PointSelectRadius = 32.0
	// ImageSelectRadius is the pick radius of an image or sprite with no pixels.
	ImageSelectRadius = 16.0
)

// NoVertex is the vertex index reported when no vertex is involved.
const NoVertex = -1

// Rect is an axis-aligned rectangle in local coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the half-open rectangle
// [X, X+Width) x [Y, Y+Height).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// --- Collaborator interfaces ---

// Raster is anything with pixel bounds. Both image.Image and *ebiten.Image
// satisfy it.
type Raster interface {
	Bounds() image.Rectangle
}

// Region is a named sub-rectangle of an atlas page.
type Region struct {
	Name   string
	Image  Raster
	Bounds image.Rectangle
}

// Size returns the region's width and height in pixels.
func (r Region) Size() (w, h float64) {
	return float64(r.Bounds.Dx()), float64(r.Bounds.Dy())
}

// RegionProvider resolves sprite region names.
type RegionProvider interface {
	Region(name string) (Region, bool)
}

// ImageLoader reads rasters from disk for image nodes.
type ImageLoader interface {
	LoadImage(path string) (Raster, error)
}

// AtlasLoader reads the atlas referenced by a game document.
type AtlasLoader interface {
	LoadAtlas(path string) (RegionProvider, error)
}

// --- Editor palette ---

var (
	ColourNormal         color.Color = color.Black
	ColourSelected       color.Color = color.RGBA{B: 0xff, A: 0xff}
	ColourLocked         color.Color = color.RGBA{R: 0xff, A: 0xff}
	ColourLockedSelected color.Color = color.RGBA{R: 0xff, B: 0xff, A: 0xff}
	ColourVertex         color.Color = color.RGBA{G: 0xff, A: 0xff}
)
