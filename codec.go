package peony

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
)

// Document is the generic JSON object form of a node, layout or game, as
// produced by encoding/json when decoding into map[string]any.
type Document map[string]any

// Codec converts trees to and from documents. The zero value encodes and
// decodes without touching the filesystem: image nodes keep their paths but
// get no raster, and sprites stay unresolved.
type Codec struct {
	// Dir is the directory of the document. Image and atlas paths are
	// written relative to it and resolved against it when read.
	Dir string
	// Images loads rasters for image nodes. May be nil.
	Images ImageLoader
	// Atlases loads the atlas named by a game document. May be nil.
	Atlases AtlasLoader
	// Regions resolves sprite regions when decoding a node or layout on its
	// own. DecodeGame uses the game's atlas instead.
	Regions RegionProvider
}

// --- Byte-level API ---

// EncodeNode returns the indented JSON document of the tree rooted at n.
func (c Codec) EncodeNode(n *Node) ([]byte, error) {
	return marshalDocument(c.NodeDocument(n))
}

// DecodeNode parses a node document. No part of the tree is returned when
// any node is malformed.
func (c Codec) DecodeNode(data []byte) (*Node, error) {
	doc, err := unmarshalDocument(data)
	if err != nil {
		return nil, err
	}
	return c.NodeFromDocument(doc)
}

// EncodeLayout returns the indented JSON document of l and its nested layouts.
func (c Codec) EncodeLayout(l *Layout) ([]byte, error) {
	return marshalDocument(c.LayoutDocument(l))
}

// DecodeLayout parses a layout document.
func (c Codec) DecodeLayout(data []byte) (*Layout, error) {
	doc, err := unmarshalDocument(data)
	if err != nil {
		return nil, err
	}
	return c.LayoutFromDocument(doc)
}

// EncodeGame returns the indented JSON document of g.
func (c Codec) EncodeGame(g *Game) ([]byte, error) {
	return marshalDocument(c.GameDocument(g))
}

// DecodeGame parses a game document, loading its atlas first so sprites can
// be resolved.
func (c Codec) DecodeGame(data []byte) (*Game, error) {
	doc, err := unmarshalDocument(data)
	if err != nil {
		return nil, err
	}
	return c.GameFromDocument(doc)
}

func marshalDocument(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

func unmarshalDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DocumentError{Err: fmt.Errorf("%w: %v", ErrInvalidField, err)}
	}
	if doc == nil {
		return nil, &DocumentError{Err: fmt.Errorf("%w: want object, got null", ErrInvalidField)}
	}
	return doc, nil
}

// --- Encoding ---

// NodeDocument returns the document form of the tree rooted at n.
func (c Codec) NodeDocument(n *Node) Document {
	children := make([]any, 0, len(n.children))
	for _, ch := range n.children {
		children = append(children, map[string]any(c.NodeDocument(ch)))
	}
	doc := Document{
		"type":           n.Kind.String(),
		"name":           n.name,
		"locked":         n.Locked,
		"transformation": transformDocument(n.Transform),
		"children":       children,
	}
	switch n.Kind {
	case KindShape:
		poly := n.Shape
		if poly == nil {
			poly = DefaultPolygon()
		}
		pts := make([]any, 0, poly.Len())
		for _, p := range poly.points {
			pts = append(pts, vecDocument(p))
		}
		doc["points"] = pts
	case KindImage:
		if n.Image != nil && n.Image.Path != "" {
			doc["file"] = c.relPath(n.Image.Path)
		}
	case KindSprite:
		region := ""
		if n.Sprite != nil {
			region = n.Sprite.Name
		}
		doc["region"] = region
	}
	return doc
}

// LayoutDocument returns the document form of l and its nested layouts.
func (c Codec) LayoutDocument(l *Layout) Document {
	children := make([]any, 0, len(l.children))
	for _, ch := range l.children {
		children = append(children, map[string]any(c.LayoutDocument(ch)))
	}
	return Document{
		"name":     l.name,
		"script":   l.Script,
		"root":     map[string]any(c.NodeDocument(l.root)),
		"children": children,
	}
}

// GameDocument returns the document form of g.
func (c Codec) GameDocument(g *Game) Document {
	doc := Document{
		"name":    g.Name,
		"version": g.Version,
		"layout":  map[string]any(c.LayoutDocument(g.layout)),
	}
	if g.Atlas != nil && g.Atlas.Path != "" {
		doc["atlas"] = map[string]any{"path": c.relPath(g.Atlas.Path)}
	}
	return doc
}

func transformDocument(t Transform) map[string]any {
	return map[string]any{
		"translation": vecDocument(t.Translation),
		"rotation":    t.Rotation,
		"scale":       t.Scale,
	}
}

func vecDocument(v Vec2) map[string]any {
	return map[string]any{"x": v.X, "y": v.Y}
}

// --- Decoding ---

// NodeFromDocument builds a detached tree from its document form. The tag
// in "type" selects the variant; unknown tags fail with ErrInvalidLeafType.
func (c Codec) NodeFromDocument(doc Document) (*Node, error) {
	return c.decodeNode(doc, "")
}

func (c Codec) decodeNode(obj map[string]any, path string) (*Node, error) {
	tag, err := getString(obj, path, "type")
	if err != nil {
		return nil, err
	}
	kind, ok := ParseKind(tag)
	if !ok {
		return nil, &DocumentError{Path: joinPath(path, "type"),
			Err: fmt.Errorf("%w: %q", ErrInvalidLeafType, tag)}
	}
	name, err := getString(obj, path, "name")
	if err != nil {
		return nil, err
	}

	var n *Node
	switch kind {
	case KindPoint:
		n = NewPoint(name)
	case KindShape:
		n, err = c.decodeShape(obj, path, name)
	case KindImage:
		n, err = c.decodeImage(obj, path, name)
	case KindSprite:
		n, err = c.decodeSprite(obj, path, name)
	}
	if err != nil {
		return nil, err
	}
	if err := c.decodeCommon(n, obj, path); err != nil {
		return nil, err
	}
	return n, nil
}

func (c Codec) decodeShape(obj map[string]any, path, name string) (*Node, error) {
	raw, err := getArray(obj, path, "points")
	if err != nil {
		return nil, err
	}
	pts := make([]Vec2, 0, len(raw))
	for i, item := range raw {
		p, err := decodeVec(item, joinPath(path, "points")+index(i))
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	n, err := NewShapeFromPoints(name, pts)
	if err != nil {
		return nil, &DocumentError{Path: joinPath(path, "points"), Err: ErrTooFewPoints}
	}
	return n, nil
}

func (c Codec) decodeImage(obj map[string]any, path, name string) (*Node, error) {
	file := ""
	if _, ok := obj["file"]; ok {
		var err error
		if file, err = getString(obj, path, "file"); err != nil {
			return nil, err
		}
	}
	if file == "" {
		return NewImage(name, "", nil), nil
	}
	abs := c.absPath(file)
	n := NewImage(name, abs, nil)
	if c.Images != nil {
		raster, err := c.Images.LoadImage(abs)
		if err != nil {
			if globalDebug {
				debugImageLoadFailed(abs, err)
			}
			n.Image.Err = err
		} else {
			n.Image.Raster = raster
		}
	}
	return n, nil
}

func (c Codec) decodeSprite(obj map[string]any, path, name string) (*Node, error) {
	region, err := getString(obj, path, "region")
	if err != nil {
		return nil, err
	}
	return NewSprite(name, region, c.Regions), nil
}

// decodeCommon overlays the fields every variant shares onto n.
func (c Codec) decodeCommon(n *Node, obj map[string]any, path string) error {
	locked, err := getBool(obj, path, "locked")
	if err != nil {
		return err
	}
	t, err := decodeTransform(obj, path)
	if err != nil {
		return err
	}
	children, err := getArray(obj, path, "children")
	if err != nil {
		return err
	}
	n.Locked = locked
	n.Transform = t
	for i, item := range children {
		childPath := joinPath(path, "children") + index(i)
		childObj, ok := item.(map[string]any)
		if !ok {
			return invalid(childPath, "object", item)
		}
		child, err := c.decodeNode(childObj, childPath)
		if err != nil {
			return err
		}
		n.AddChild(child)
	}
	return nil
}

func decodeTransform(obj map[string]any, path string) (Transform, error) {
	t, err := getObject(obj, path, "transformation")
	if err != nil {
		return Transform{}, err
	}
	tpath := joinPath(path, "transformation")
	rawTranslation, ok := t["translation"]
	if !ok {
		return Transform{}, missing(joinPath(tpath, "translation"))
	}
	translation, err := decodeVec(rawTranslation, joinPath(tpath, "translation"))
	if err != nil {
		return Transform{}, err
	}
	rotation, err := getNumber(t, tpath, "rotation")
	if err != nil {
		return Transform{}, err
	}
	scale, err := getNumber(t, tpath, "scale")
	if err != nil {
		return Transform{}, err
	}
	if scale == 0 {
		return Transform{}, &DocumentError{Path: joinPath(tpath, "scale"), Err: ErrZeroScale}
	}
	return Transform{Translation: translation, Rotation: rotation, Scale: scale}, nil
}

func decodeVec(v any, path string) (Vec2, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Vec2{}, invalid(path, "object", v)
	}
	x, err := getNumber(obj, path, "x")
	if err != nil {
		return Vec2{}, err
	}
	y, err := getNumber(obj, path, "y")
	if err != nil {
		return Vec2{}, err
	}
	return Vec2{X: x, Y: y}, nil
}

// LayoutFromDocument builds a detached layout tree from its document form.
func (c Codec) LayoutFromDocument(doc Document) (*Layout, error) {
	return c.decodeLayout(doc, "")
}

func (c Codec) decodeLayout(obj map[string]any, path string) (*Layout, error) {
	name, err := getString(obj, path, "name")
	if err != nil {
		return nil, err
	}
	script := ""
	if _, ok := obj["script"]; ok {
		if script, err = getString(obj, path, "script"); err != nil {
			return nil, err
		}
	}
	rootObj, err := getObject(obj, path, "root")
	if err != nil {
		return nil, err
	}
	root, err := c.decodeNode(rootObj, joinPath(path, "root"))
	if err != nil {
		return nil, err
	}
	children, err := getArray(obj, path, "children")
	if err != nil {
		return nil, err
	}
	l := NewLayoutWithRoot(name, root)
	l.Script = script
	for i, item := range children {
		childPath := joinPath(path, "children") + index(i)
		childObj, ok := item.(map[string]any)
		if !ok {
			return nil, invalid(childPath, "object", item)
		}
		child, err := c.decodeLayout(childObj, childPath)
		if err != nil {
			return nil, err
		}
		l.AddChild(child)
	}
	return l, nil
}

// GameFromDocument builds a game from its document form.
func (c Codec) GameFromDocument(doc Document) (*Game, error) {
	name, err := getString(doc, "", "name")
	if err != nil {
		return nil, err
	}
	version, err := getString(doc, "", "version")
	if err != nil {
		return nil, err
	}
	g := &Game{Name: name, Version: version}
	if _, ok := doc["atlas"]; ok {
		atlasObj, err := getObject(doc, "", "atlas")
		if err != nil {
			return nil, err
		}
		p, err := getString(atlasObj, "atlas", "path")
		if err != nil {
			return nil, err
		}
		g.Atlas = c.loadAtlas(c.absPath(p))
	}
	layoutObj, err := getObject(doc, "", "layout")
	if err != nil {
		return nil, err
	}
	lc := c
	lc.Regions = g.Regions()
	l, err := lc.decodeLayout(layoutObj, "layout")
	if err != nil {
		return nil, err
	}
	g.layout = l
	return g, nil
}

func (c Codec) loadAtlas(path string) *AtlasRef {
	ref := &AtlasRef{Path: path}
	if c.Atlases == nil {
		return ref
	}
	regions, err := c.Atlases.LoadAtlas(path)
	if err != nil {
		ref.Err = err
		return ref
	}
	ref.Regions = regions
	return ref
}

// --- Paths ---

// relPath writes p relative to the document directory. A p that is not
// absolute is taken to be relative to the working directory, the same way
// the image and atlas loaders open it.
func (c Codec) relPath(p string) string {
	if c.Dir == "" {
		return filepath.ToSlash(p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	dir, err := filepath.Abs(c.Dir)
	if err != nil {
		return filepath.ToSlash(p)
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

func (c Codec) absPath(p string) string {
	p = filepath.FromSlash(p)
	if c.Dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// --- Field access ---

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func index(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

func missing(path string) error {
	return &DocumentError{Path: path, Err: ErrMissingField}
}

func invalid(path, want string, got any) error {
	return &DocumentError{Path: path, Err: fmt.Errorf("%w: want %s, got %s", ErrInvalidField, want, jsonKind(got))}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

func getString(obj map[string]any, path, key string) (string, error) {
	v, ok := obj[key]
	if !ok {
		return "", missing(joinPath(path, key))
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid(joinPath(path, key), "string", v)
	}
	return s, nil
}

func getBool(obj map[string]any, path, key string) (bool, error) {
	v, ok := obj[key]
	if !ok {
		return false, missing(joinPath(path, key))
	}
	b, ok := v.(bool)
	if !ok {
		return false, invalid(joinPath(path, key), "boolean", v)
	}
	return b, nil
}

func getNumber(obj map[string]any, path, key string) (float64, error) {
	v, ok := obj[key]
	if !ok {
		return 0, missing(joinPath(path, key))
	}
	f, ok := v.(float64)
	if !ok {
		return 0, invalid(joinPath(path, key), "number", v)
	}
	return f, nil
}

func getArray(obj map[string]any, path, key string) ([]any, error) {
	v, ok := obj[key]
	if !ok {
		return nil, missing(joinPath(path, key))
	}
	a, ok := v.([]any)
	if !ok {
		return nil, invalid(joinPath(path, key), "array", v)
	}
	return a, nil
}

func getObject(obj map[string]any, path, key string) (map[string]any, error) {
	v, ok := obj[key]
	if !ok {
		return nil, missing(joinPath(path, key))
	}
	o, ok := v.(map[string]any)
	if !ok {
		return nil, invalid(joinPath(path, key), "object", v)
	}
	return o, nil
}
