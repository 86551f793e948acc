package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/phanxgames/peony"
	"github.com/phanxgames/peony/atlas"
)

// codecFor returns a codec that resolves paths against the directory of
// file and loads images with images.
func codecFor(file string, images peony.ImageLoader) (peony.Codec, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return peony.Codec{}, err
	}
	return peony.Codec{
		Dir:     filepath.Dir(abs),
		Images:  images,
		Atlases: atlas.Loader{Images: images},
	}, nil
}

// loadGame reads and decodes the game document at file.
func loadGame(file string, images peony.ImageLoader) (*peony.Game, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read game: %w", err)
	}
	c, err := codecFor(file, images)
	if err != nil {
		return nil, err
	}
	g, err := c.DecodeGame(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", file, err)
	}
	return g, nil
}

// saveGame encodes g and writes it to file, replacing it atomically.
func saveGame(file string, g *peony.Game) error {
	c, err := codecFor(file, nil)
	if err != nil {
		return err
	}
	data, err := c.EncodeGame(g)
	if err != nil {
		return fmt.Errorf("encode game: %w", err)
	}
	tmp := file + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write game: %w", err)
	}
	if err := os.Rename(tmp, file); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write game: %w", err)
	}
	return nil
}

// findLayout returns the named layout, or the top layout for "".
func findLayout(g *peony.Game, fullName string) (*peony.Layout, error) {
	if fullName == "" {
		return g.Layout(), nil
	}
	return g.FindLayout(fullName)
}
