package imagefile

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestReadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 12, 7))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	info, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if info.Format != "png" || info.Bounds() != image.Rect(0, 0, 12, 7) {
		t.Errorf("info = %+v", info)
	}
}

func TestReadBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, image.NewRGBA(image.Rect(0, 0, 3, 5))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	r, err := Loader{}.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if r.Bounds().Dx() != 3 || r.Bounds().Dy() != 5 {
		t.Errorf("Bounds = %v", r.Bounds())
	}
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Read(filepath.Join(dir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing err = %v", err)
	}
	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (Loader{}).LoadImage(junk); !errors.Is(err, image.ErrFormat) {
		t.Errorf("junk err = %v", err)
	}
}
