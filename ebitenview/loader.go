package ebitenview

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/peony"
)

// Loader implements peony.ImageLoader with ebiten images, for use with
// peony.Codec and atlas.Loader when a viewer will draw the result.
type Loader struct{}

// LoadImage decodes the image file at path into an *ebiten.Image.
func (Loader) LoadImage(path string) (peony.Raster, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("ebitenview: %w", err)
	}
	return img, nil
}
