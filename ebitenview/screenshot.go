package ebitenview

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// next Draw. The PNG is written to Options.ScreenshotDir with a timestamped
// filename.
func (v *Viewer) Screenshot(label string) {
	v.screenshotQueue = append(v.screenshotQueue, label)
}

// flushScreenshots captures the rendered frame for every queued label.
func (v *Viewer) flushScreenshots(screen *ebiten.Image) {
	if len(v.screenshotQueue) == 0 {
		return
	}
	defer func() { v.screenshotQueue = v.screenshotQueue[:0] }()

	if err := os.MkdirAll(v.opts.ScreenshotDir, 0o755); err != nil {
		v.log.Errorw("screenshot failed", "dir", v.opts.ScreenshotDir, "error", err)
		return
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, w, h)

	stamp := time.Now().Format("20060102_150405")
	for _, label := range v.screenshotQueue {
		path := filepath.Join(v.opts.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			v.log.Errorw("screenshot failed", "error", err)
			continue
		}
		v.log.Infow("screenshot saved", "path", path)
		v.status = "saved " + path
	}
}

// unpremultiply wraps the premultiplied pixels read back from the screen and
// converts them to straight alpha for PNG encoding.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	rect := image.Rect(0, 0, w, h)
	src := &image.RGBA{Pix: pixels[:4*w*h], Stride: 4 * w, Rect: rect}
	dst := image.NewNRGBA(rect)
	draw.Draw(dst, rect, src, image.Point{}, draw.Src)
	return dst
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	return png.Encode(f, img)
}

// sanitizeLabel turns a layout full name such as "/start/menu" into a file
// name fragment such as "start-menu".
func sanitizeLabel(label string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '-'
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' || r == '_':
			return r
		}
		return '_'
	}, strings.TrimSpace(label))
	name = strings.Trim(name, "-")
	if name == "" {
		return "layout"
	}
	return name
}
