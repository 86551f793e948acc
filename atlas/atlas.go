// Package atlas reads sprite atlases into peony regions. Two formats are
// understood: TexturePacker JSON (hash and array variants) and the libGDX
// text format.
package atlas

import (
	"encoding/json"
	"fmt"
	"image"
	"sort"

	"github.com/phanxgames/peony"
)

// Frame describes where a region sits within an atlas page.
type Frame struct {
	Page     int             // atlas page index
	Rect     image.Rectangle // sub-image rect within the page
	Original image.Point     // untrimmed size as authored
	Offset   image.Point     // trim offset
	Rotated  bool            // stored 90 degrees clockwise in the page
}

// Atlas holds the atlas pages and a map of named frames. It implements
// peony.RegionProvider.
type Atlas struct {
	// Pages contains the page images indexed by page number. Entries may be
	// nil when the page has not been loaded.
	Pages     []peony.Raster
	pageNames []string
	frames    map[string]Frame
}

func newAtlas() *Atlas {
	return &Atlas{frames: make(map[string]Frame)}
}

// Region returns the named region. The region's Image is nil when its page
// is not loaded.
func (a *Atlas) Region(name string) (peony.Region, bool) {
	f, ok := a.frames[name]
	if !ok {
		return peony.Region{}, false
	}
	r := peony.Region{Name: name, Bounds: f.Rect}
	if f.Page >= 0 && f.Page < len(a.Pages) {
		r.Image = a.Pages[f.Page]
	}
	return r, true
}

// Frame returns the layout details of the named region.
func (a *Atlas) Frame(name string) (Frame, bool) {
	f, ok := a.frames[name]
	return f, ok
}

// Names returns every region name in sorted order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.frames))
	for name := range a.frames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of regions.
func (a *Atlas) Len() int {
	return len(a.frames)
}

// PageNames returns the page image file names in page order, as written in
// the atlas file.
func (a *Atlas) PageNames() []string {
	return a.pageNames
}

// --- TexturePacker JSON ---

// LoadTexturePacker parses TexturePacker JSON data and associates the given
// page images. Supports both the hash format (single "frames" object) and
// the array format ("textures" array with per-page frame lists).
func LoadTexturePacker(jsonData []byte, pages []peony.Raster) (*Atlas, error) {
	// Probe top-level keys to detect format.
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
		Meta     struct {
			Image string `json:"image"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("atlas: failed to parse atlas JSON: %w", err)
	}

	a := newAtlas()
	a.Pages = pages

	switch {
	case probe.Textures != nil:
		// Multi-page array format
		if err := parseArrayFormat(probe.Textures, a); err != nil {
			return nil, err
		}
	case probe.Frames != nil:
		// Single-page hash format
		if err := parseHashFrames(probe.Frames, 0, a); err != nil {
			return nil, err
		}
		a.pageNames = []string{probe.Meta.Image}
	default:
		return nil, fmt.Errorf("atlas: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	return a, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw json.RawMessage, page int, a *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("atlas: failed to parse atlas frames: %w", err)
	}
	for name, f := range frames {
		a.frames[name] = jsonToFrame(f, page)
	}
	return nil
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
func parseArrayFormat(raw json.RawMessage, a *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("atlas: failed to parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		a.pageNames = append(a.pageNames, tex.Image)
		for name, f := range tex.Frames {
			a.frames[name] = jsonToFrame(f, i)
		}
	}
	return nil
}

func jsonToFrame(f jsonFrame, page int) Frame {
	return Frame{
		Page:     page,
		Rect:     image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+f.Frame.W, f.Frame.Y+f.Frame.H),
		Original: image.Pt(f.SourceSize.W, f.SourceSize.H),
		Offset:   image.Pt(f.SpriteSourceSize.X, f.SpriteSourceSize.Y),
		Rotated:  f.Rotated,
	}
}
