package atlas

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/phanxgames/peony"
)

// gdxLexer splits a libGDX atlas into lines of "key: a, b" or bare text.
var gdxLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Text", Pattern: `[^:,\r\n \t]([^:,\r\n]*[^:,\r\n \t])?`},
})

type gdxFile struct {
	Lines []*gdxLine `@@*`
}

type gdxLine struct {
	Pos    lexer.Position
	Key    string   `@Text?`
	Values []string `( Colon @Text ( Comma @Text )* )?`
	End    string   `@Newline`
}

func (l *gdxLine) blank() bool { return l.Key == "" && len(l.Values) == 0 }
func (l *gdxLine) bare() bool  { return l.Key != "" && len(l.Values) == 0 }

var gdxParser = participle.MustBuild[gdxFile](
	participle.Lexer(gdxLexer),
	participle.Elide("Whitespace"),
)

// LoadGDX parses libGDX text atlas data and associates the given page
// images. Each page starts with its image file name followed by page
// properties; each region starts with its name followed by region
// properties. A blank line ends a page.
func LoadGDX(data []byte, pages []peony.Raster) (*Atlas, error) {
	src := string(data)
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	file, err := gdxParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("atlas: failed to parse gdx atlas: %w", err)
	}

	a := newAtlas()
	a.Pages = pages

	page := -1
	var region string
	var frame Frame
	flush := func() {
		if region != "" {
			if frame.Original == (image.Point{}) {
				frame.Original = frame.Rect.Size()
			}
			a.frames[region] = frame
		}
		region = ""
	}

	for _, line := range file.Lines {
		switch {
		case line.blank():
			flush()
			page = -1
		case line.Key == "":
			return nil, fmt.Errorf("atlas: line %d: value without a key", line.Pos.Line)
		case line.bare() && page < 0:
			a.pageNames = append(a.pageNames, line.Key)
			page = len(a.pageNames) - 1
		case line.bare():
			flush()
			region = line.Key
			frame = Frame{Page: page}
		case page < 0:
			return nil, fmt.Errorf("atlas: line %d: property %q outside a page", line.Pos.Line, line.Key)
		case region == "":
			// Page properties (size, format, filter, repeat) carry nothing a
			// region lookup needs.
		default:
			if err := applyRegionProp(&frame, line); err != nil {
				return nil, err
			}
		}
	}
	flush()
	return a, nil
}

func applyRegionProp(f *Frame, line *gdxLine) error {
	switch line.Key {
	case "rotate":
		v := line.Values[0]
		f.Rotated = v == "true" || v == "90"
		return nil
	case "xy", "size", "orig", "offset", "bounds":
	default:
		// index, split, pad and friends
		return nil
	}

	want := 2
	if line.Key == "bounds" {
		want = 4
	}
	if len(line.Values) != want {
		return fmt.Errorf("atlas: line %d: %s wants %d values, got %d", line.Pos.Line, line.Key, want, len(line.Values))
	}
	nums := make([]int, want)
	for i, v := range line.Values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("atlas: line %d: %s: %w", line.Pos.Line, line.Key, err)
		}
		nums[i] = n
	}

	switch line.Key {
	case "xy":
		f.Rect = image.Rect(nums[0], nums[1], nums[0]+f.Rect.Dx(), nums[1]+f.Rect.Dy())
	case "size":
		f.Rect.Max = image.Pt(f.Rect.Min.X+nums[0], f.Rect.Min.Y+nums[1])
	case "bounds":
		f.Rect = image.Rect(nums[0], nums[1], nums[0]+nums[2], nums[1]+nums[3])
	case "orig":
		f.Original = image.Pt(nums[0], nums[1])
	case "offset":
		f.Offset = image.Pt(nums[0], nums[1])
	}
	return nil
}
