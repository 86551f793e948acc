// Package imagefile reads image headers from disk without decoding pixels.
// The command-line tools use it to size image nodes when no renderer is
// running.
package imagefile

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"os"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/webp" // register WebP

	"github.com/phanxgames/peony"
)

// Info is the header of an image file. It implements peony.Raster.
type Info struct {
	Path   string
	Format string
	Width  int
	Height int
}

// Bounds returns the image rectangle anchored at the origin.
func (i Info) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.Width, i.Height)
}

// Loader implements peony.ImageLoader by reading image headers.
type Loader struct{}

// LoadImage reads the header of the image at path.
func (Loader) LoadImage(path string) (peony.Raster, error) {
	info, err := Read(path)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Read decodes just enough of the file at path to learn its format and
// size.
func Read(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("imagefile: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("imagefile: %s: %w", path, err)
	}
	return Info{Path: path, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
