package peony

import "fmt"

// Defaults for a new game.
const (
	DefaultGameName    = "untitled"
	DefaultGameVersion = "1.0.0"
	DefaultLayoutName  = "start"
)

// AtlasRef is the game's sprite atlas. Regions is nil when the atlas could
// not be loaded; Err then holds the loader's error.
type AtlasRef struct {
	Path    string
	Regions RegionProvider
	Err     error
}

// Region resolves a sprite region, reporting false when no atlas is loaded.
func (a *AtlasRef) Region(name string) (Region, bool) {
	if a == nil || a.Regions == nil {
		return Region{}, false
	}
	return a.Regions.Region(name)
}

// Game is the top of a document: metadata, an optional atlas and the tree
// of layouts.
type Game struct {
	Name    string
	Version string
	Atlas   *AtlasRef

	layout *Layout
}

// NewGame creates an untitled game with a single "start" layout.
func NewGame() *Game {
	return &Game{
		Name:    DefaultGameName,
		Version: DefaultGameVersion,
		layout:  NewLayout(DefaultLayoutName),
	}
}

// Layout returns the top layout.
func (g *Game) Layout() *Layout {
	return g.layout
}

// SetLayout replaces the top layout. It is detached from any parent layout.
// Games do not track ownership, so l must not be the top layout of another
// game as well.
func (g *Game) SetLayout(l *Layout) {
	if l == nil {
		panic("peony: game layout cannot be nil")
	}
	if l.parent != nil {
		l.parent.RemoveChild(l)
	}
	g.layout = l
}

// Regions returns the atlas as a RegionProvider. The result is nil when no
// atlas is set.
func (g *Game) Regions() RegionProvider {
	if g.Atlas == nil || g.Atlas.Regions == nil {
		return nil
	}
	return g.Atlas.Regions
}

// SetAtlas replaces the atlas and re-resolves every sprite against it.
func (g *Game) SetAtlas(a *AtlasRef) {
	g.Atlas = a
	regions := g.Regions()
	g.layout.Walk(func(l *Layout) {
		l.root.Walk(func(n *Node) {
			if n.Kind == KindSprite {
				n.SetRegion(n.Sprite.Name, regions)
			}
		})
	})
}

// FindLayout resolves a full layout name such as "/start/menu".
func (g *Game) FindLayout(fullName string) (*Layout, error) {
	l := g.layout.Find(fullName)
	if l == nil {
		return nil, fmt.Errorf("layout %q: %w", fullName, ErrNotFound)
	}
	return l, nil
}

// CreateLayout adds a new child layout under parent.
func (g *Game) CreateLayout(parent *Layout) *Layout {
	return parent.CreateChild()
}

// RenameLayout renames a layout, refusing invalid names.
func (g *Game) RenameLayout(l *Layout, name string) error {
	return l.Rename(name)
}

// MoveLayout reparents l under parent at index. The top layout cannot be
// moved.
func (g *Game) MoveLayout(l, parent *Layout, index int) error {
	if l == g.layout {
		return fmt.Errorf("move layout %q: top layout cannot be moved: %w", l.name, ErrCycle)
	}
	return l.MoveTo(parent, index)
}
