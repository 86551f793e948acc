package peony

import (
	"errors"
	"testing"
)

func TestNewGameDefaults(t *testing.T) {
	g := NewGame()
	if g.Name != "untitled" || g.Version != "1.0.0" {
		t.Errorf("game = %q %q", g.Name, g.Version)
	}
	if g.Layout().Name() != "start" || g.Layout().Root().Name() != "root" {
		t.Error("default layout mismatch")
	}
	if g.Atlas != nil || g.Regions() != nil {
		t.Error("new game has no atlas")
	}
}

func TestGameLayoutOperations(t *testing.T) {
	g := NewGame()
	top := g.Layout()
	menu := g.CreateLayout(top)
	if err := g.RenameLayout(menu, "menu"); err != nil {
		t.Fatal(err)
	}
	found, err := g.FindLayout("/start/menu")
	if err != nil || found != menu {
		t.Fatalf("FindLayout = %v, %v", found, err)
	}
	if _, err := g.FindLayout("/start/nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v", err)
	}

	sub := g.CreateLayout(top)
	if err := g.MoveLayout(sub, menu, 0); err != nil {
		t.Fatal(err)
	}
	if sub.FullName() != "/start/menu/layout" {
		t.Errorf("FullName = %q", sub.FullName())
	}
	if err := g.MoveLayout(top, menu, 0); err == nil {
		t.Error("moving the top layout should fail")
	}
}

func TestSetAtlasResolvesSprites(t *testing.T) {
	g := NewGame()
	hero := NewSprite("hero", "hero", nil)
	g.Layout().Root().AddChild(hero)
	nested := g.Layout().CreateChild()
	villain := NewSprite("villain", "villain", nil)
	nested.Root().AddChild(villain)

	g.SetAtlas(&AtlasRef{Path: "a.json", Regions: fakeRegions{
		"hero":    {Name: "hero"},
		"villain": {Name: "villain"},
	}})
	if hero.Sprite.Region == nil || villain.Sprite.Region == nil {
		t.Error("sprites should resolve after SetAtlas")
	}

	g.SetAtlas(nil)
	if hero.Sprite.Region != nil {
		t.Error("removing the atlas should unresolve sprites")
	}
	if _, ok := (*AtlasRef)(nil).Region("hero"); ok {
		t.Error("nil atlas resolves nothing")
	}
}

func TestSetLayoutDetaches(t *testing.T) {
	g := NewGame()
	child := g.Layout().CreateChild()
	g.SetLayout(child)
	if child.Parent() != nil || g.Layout() != child {
		t.Error("SetLayout should detach the new top layout")
	}
}
