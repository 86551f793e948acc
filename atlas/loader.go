package atlas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/peony"
)

// Loader reads atlas files from disk. It implements peony.AtlasLoader.
// Files ending in .json are read as TexturePacker JSON; anything else as
// libGDX text. Page images are resolved relative to the atlas file.
type Loader struct {
	// Images loads page images. When nil, pages are left unloaded and
	// regions carry no image.
	Images peony.ImageLoader
}

// LoadAtlas parses the atlas at path and loads its pages.
func (l Loader) LoadAtlas(path string) (peony.RegionProvider, error) {
	a, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Load is LoadAtlas returning the concrete *Atlas.
func (l Loader) Load(path string) (*Atlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("atlas: %w", err)
	}

	var a *Atlas
	if strings.EqualFold(filepath.Ext(path), ".json") {
		a, err = LoadTexturePacker(data, nil)
	} else {
		a, err = LoadGDX(data, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}

	if l.Images == nil {
		return a, nil
	}
	dir := filepath.Dir(path)
	a.Pages = make([]peony.Raster, len(a.pageNames))
	for i, name := range a.pageNames {
		if name == "" {
			continue
		}
		page, err := l.Images.LoadImage(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			return nil, fmt.Errorf("atlas: page %d of %s: %w", i, path, err)
		}
		a.Pages[i] = page
	}
	return a, nil
}
