package peony

import (
	"fmt"
	"regexp"
	"strings"
)

// defaultLayoutChildName is the base name given to layouts made by CreateChild.
const defaultLayoutChildName = "layout"

var validName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidName reports whether name is usable as a layout name: a letter or
// underscore followed by letters, digits or underscores.
func ValidName(name string) bool {
	return validName.MatchString(name)
}

// LayoutEvent describes a mutation of a layout tree. For ChangeRemoved,
// Layout is already detached and Parent is the layout it left.
type LayoutEvent struct {
	Kind   ChangeKind
	Layout *Layout
	Parent *Layout
}

// Layout is one screen of the game: a scene tree and an opaque script,
// nested inside a tree of layouts with the same naming and reparenting
// rules as nodes.
type Layout struct {
	name string
	// Script is stored and saved verbatim; peony never runs it.
	Script string

	root     *Node
	rootHook Handle

	parent   *Layout
	children []*Layout

	listeners     listenerList[LayoutEvent]
	nodeListeners listenerList[ChangeEvent]
}

// NewLayout creates a layout whose scene tree is a single point named "root".
func NewLayout(name string) *Layout {
	return NewLayoutWithRoot(name, NewPoint("root"))
}

// NewLayoutWithRoot creates a layout around an existing tree. root is
// detached from any parent.
func NewLayoutWithRoot(name string, root *Node) *Layout {
	if name == "" {
		name = defaultLayoutChildName
	}
	l := &Layout{name: name}
	l.SetRoot(root)
	return l
}

// --- Scene tree ---

// Root returns the root of the layout's scene tree.
func (l *Layout) Root() *Node {
	return l.root
}

// SetRoot replaces the scene tree. root is detached from any parent node.
// Panics if root is nil or is already the root of another layout.
func (l *Layout) SetRoot(root *Node) {
	if root == nil {
		panic("peony: layout root cannot be nil")
	}
	if root.rootOf != nil && root.rootOf != l {
		panic(fmt.Sprintf("peony: node %q is already the root of layout %q", root.name, root.rootOf.name))
	}
	root.RemoveFromParent()
	l.rootHook.Remove()
	if l.root != nil && l.root != root {
		l.root.rootOf = nil
	}
	l.root = root
	root.rootOf = l
	l.rootHook = root.OnChange(l.nodeListeners.fire)
	l.emit(ChangeContent)
}

// OnNodeChange registers fn for every change in the layout's scene tree. The
// registration survives SetRoot.
func (l *Layout) OnNodeChange(fn func(ChangeEvent)) Handle {
	return l.nodeListeners.add(fn)
}

// OnChange registers fn for changes to l and every layout below it.
func (l *Layout) OnChange(fn func(LayoutEvent)) Handle {
	return l.listeners.add(fn)
}

// Hit tests a world point against the scene tree.
func (l *Layout) Hit(p Vec2) (Selection, bool) {
	return l.root.Hit(p)
}

// --- Names ---

// Name returns the layout's name, unique among its siblings.
func (l *Layout) Name() string {
	return l.name
}

// SetName renames the layout with the same collision rule as Node.SetName.
func (l *Layout) SetName(name string) {
	if name == "" {
		name = defaultLayoutChildName
	}
	resolved := uniqueLayoutName(l.parent, l, name)
	if resolved == l.name {
		return
	}
	l.name = resolved
	l.emit(ChangeRenamed)
}

// Rename validates name with ValidName before applying it with SetName.
func (l *Layout) Rename(name string) error {
	if !ValidName(name) {
		return fmt.Errorf("rename layout %q to %q: %w", l.name, name, ErrInvalidName)
	}
	l.SetName(name)
	return nil
}

func uniqueLayoutName(parent, self *Layout, base string) string {
	taken := func(name string) bool {
		if parent == nil {
			return false
		}
		for _, c := range parent.children {
			if c != self && c.name == name {
				return true
			}
		}
		return false
	}
	if !taken(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// --- Layout tree ---

// Parent returns the enclosing layout, or nil for the game's top layout.
func (l *Layout) Parent() *Layout {
	return l.parent
}

// Children returns the nested layouts. The returned slice MUST NOT be mutated by the caller.
func (l *Layout) Children() []*Layout {
	return l.children
}

// ChildByName returns the nested layout with the given name, or nil.
func (l *Layout) ChildByName(name string) *Layout {
	for _, c := range l.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// IndexOf returns the position of child among l's children, or -1.
func (l *Layout) IndexOf(child *Layout) int {
	for i, c := range l.children {
		if c == child {
			return i
		}
	}
	return -1
}

// AddChild appends child, detaching it from any previous parent and
// resolving its name. Panics on nil or a cycle.
func (l *Layout) AddChild(child *Layout) {
	if err := child.MoveTo(l, -1); err != nil {
		panic("peony: " + err.Error())
	}
}

// CreateChild appends a new empty layout named "layout" (or "layout1", ...).
func (l *Layout) CreateChild() *Layout {
	c := NewLayout(defaultLayoutChildName)
	l.AddChild(c)
	return c
}

// RemoveChild detaches child, reporting false when it is not a child of l.
func (l *Layout) RemoveChild(child *Layout) bool {
	if child == nil || child.parent != l {
		return false
	}
	l.removeChildByPtr(child)
	child.parent = nil
	l.emitFrom(LayoutEvent{Kind: ChangeRemoved, Layout: child, Parent: l})
	return true
}

// MoveTo reparents l under parent at index (-1 appends), counted after l has
// been detached.
func (l *Layout) MoveTo(parent *Layout, index int) error {
	if l == nil || parent == nil {
		return fmt.Errorf("move layout: %w: nil layout", ErrNotFound)
	}
	for p := parent; p != nil; p = p.parent {
		if p == l {
			return fmt.Errorf("move layout %q under %q: %w", l.name, parent.name, ErrCycle)
		}
	}
	limit := len(parent.children)
	if l.parent == parent {
		limit--
	}
	if index < -1 || index > limit {
		return fmt.Errorf("move layout %q to index %d: %w", l.name, index, ErrIndexOutOfRange)
	}
	old := l.parent
	if old != nil {
		old.removeChildByPtr(l)
		if old != parent {
			l.parent = nil
			old.emitFrom(LayoutEvent{Kind: ChangeRemoved, Layout: l, Parent: old})
		}
	}
	l.parent = parent
	l.name = uniqueLayoutName(parent, l, l.name)
	if index < 0 || index >= len(parent.children) {
		parent.children = append(parent.children, l)
	} else {
		parent.children = append(parent.children, nil)
		copy(parent.children[index+1:], parent.children[index:])
		parent.children[index] = l
	}
	kind := ChangeAdded
	if old == parent {
		kind = ChangeMoved
	}
	l.emit(kind)
	return nil
}

func (l *Layout) removeChildByPtr(child *Layout) {
	for i, c := range l.children {
		if c == child {
			copy(l.children[i:], l.children[i+1:])
			l.children[len(l.children)-1] = nil
			l.children = l.children[:len(l.children)-1]
			return
		}
	}
}

// Lineage returns the chain of layouts from the top down to l inclusive.
func (l *Layout) Lineage() []*Layout {
	var out []*Layout
	for p := l; p != nil; p = p.parent {
		out = append(out, p)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// FullName returns the slash-separated lineage, e.g. "/start/menu".
func (l *Layout) FullName() string {
	var b strings.Builder
	for _, a := range l.Lineage() {
		b.WriteByte('/')
		b.WriteString(a.name)
	}
	return b.String()
}

// Find resolves a full name whose first component is l's own name, e.g.
// "/start/menu" on the layout "start". It returns nil when nothing matches.
func (l *Layout) Find(fullName string) *Layout {
	parts := strings.FieldsFunc(fullName, func(r rune) bool { return r == '/' })
	if len(parts) == 0 || parts[0] != l.name {
		return nil
	}
	cur := l
	for _, part := range parts[1:] {
		cur = cur.ChildByName(part)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Walk calls fn for l and every nested layout in depth-first pre-order.
func (l *Layout) Walk(fn func(*Layout)) {
	fn(l)
	for _, c := range l.children {
		c.Walk(fn)
	}
}

func (l *Layout) emit(kind ChangeKind) {
	l.emitFrom(LayoutEvent{Kind: kind, Layout: l, Parent: l.parent})
}

func (l *Layout) emitFrom(ev LayoutEvent) {
	for p := l; p != nil; p = p.parent {
		p.listeners.fire(ev)
	}
}
