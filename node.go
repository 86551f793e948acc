package peony

import (
	"fmt"
	"strconv"
	"strings"
)

// --- ID counter ---

// nodeIDCounter is only touched from the goroutine that owns the trees.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Payloads ---

// ImageSource is the payload of an image node. Raster is nil when the file
// could not be read; Err then holds the loader's error.
type ImageSource struct {
	Path   string
	Raster Raster
	Err    error
}

// Size returns the raster dimensions, or false when no raster is loaded.
func (s *ImageSource) Size() (w, h float64, ok bool) {
	if s == nil || s.Raster == nil {
		return 0, 0, false
	}
	b := s.Raster.Bounds()
	return float64(b.Dx()), float64(b.Dy()), true
}

// SpriteSource is the payload of a sprite node. Region is nil when the name
// is unknown to the atlas, or no atlas is loaded.
type SpriteSource struct {
	Name   string
	Region *Region
}

// Resolve looks Name up in regions, clearing Region when it is not found.
func (s *SpriteSource) Resolve(regions RegionProvider) bool {
	s.Region = nil
	if regions == nil {
		return false
	}
	r, ok := regions.Region(s.Name)
	if !ok {
		if globalDebug {
			debugMissingRegion(s.Name)
		}
		return false
	}
	s.Region = &r
	return true
}

// Size returns the region dimensions, or false when unresolved.
func (s *SpriteSource) Size() (w, h float64, ok bool) {
	if s == nil || s.Region == nil {
		return 0, 0, false
	}
	w, h = s.Region.Size()
	return w, h, true
}

// --- Node ---

// Node is an element of a layout's scene tree. A single flat struct is used
// for every kind; the payload pointer matching Kind is non-nil and the others
// are nil.
type Node struct {
	// Identity
	ID   uint32
	Kind Kind
	name string

	// Hierarchy. parent is non-owning and only used for lineage and
	// reparenting.
	parent   *Node
	children []*Node
	// rootOf is the layout this node is the scene root of, if any.
	rootOf *Layout

	// Transform maps local space into the parent's space. Assigning it
	// directly does not notify listeners; use SetTransform or MoveBy.
	Transform Transform

	// Locked excludes this node (not its children) from hit-testing.
	Locked bool

	// Payloads
	Shape  *Polygon
	Image  *ImageSource
	Sprite *SpriteSource

	listeners listenerList[ChangeEvent]
}

func newNode(name string, kind Kind) *Node {
	n := &Node{ID: nextNodeID(), Kind: kind, Transform: IdentityTransform()}
	if name == "" {
		name = kind.String()
	}
	n.name = name
	return n
}

// NewPoint creates a point node: a pickable marker with no geometry.
func NewPoint(name string) *Node {
	return newNode(name, KindPoint)
}

// NewShape creates a shape node with the default triangle of circumradius
// DefaultShapeRadius.
func NewShape(name string) *Node {
	n := newNode(name, KindShape)
	n.Shape = DefaultPolygon()
	return n
}

// NewShapeFromPoints creates a shape node with the given vertices.
func NewShapeFromPoints(name string, points []Vec2) (*Node, error) {
	poly, err := NewPolygon(points)
	if err != nil {
		return nil, err
	}
	n := newNode(name, KindShape)
	n.Shape = poly
	return n, nil
}

// NewImage creates an image node for path. raster may be nil when the file
// is not (yet) loaded.
func NewImage(name, path string, raster Raster) *Node {
	n := newNode(name, KindImage)
	n.Image = &ImageSource{Path: path, Raster: raster}
	return n
}

// NewSprite creates a sprite node showing the named region. regions may be
// nil, leaving the region unresolved.
func NewSprite(name, region string, regions RegionProvider) *Node {
	n := newNode(name, KindSprite)
	n.Sprite = &SpriteSource{Name: region}
	n.Sprite.Resolve(regions)
	return n
}

// String returns a short description used in logs and CLI output.
func (n *Node) String() string {
	return fmt.Sprintf("%s %q", n.Kind, n.name)
}

// --- Names ---

// Name returns the node's name, unique among its siblings.
func (n *Node) Name() string {
	return n.name
}

// SetName renames the node. If a sibling already uses name, the first free
// name of the form name1, name2, ... is taken instead. An empty name falls
// back to the kind's tag.
func (n *Node) SetName(name string) {
	if name == "" {
		name = n.Kind.String()
	}
	resolved := uniqueChildName(n.parent, n, name)
	if resolved == n.name {
		return
	}
	n.name = resolved
	n.emit(ChangeRenamed)
}

// uniqueChildName returns base, or base followed by the smallest positive
// integer, such that no child of parent other than self carries it.
func uniqueChildName(parent, self *Node, base string) string {
	if parent == nil || !parent.hasChildNamed(base, self) {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + strconv.Itoa(i)
		if !parent.hasChildNamed(candidate, self) {
			return candidate
		}
	}
}

func (n *Node) hasChildNamed(name string, except *Node) bool {
	for _, c := range n.children {
		if c != except && c.name == name {
			return true
		}
	}
	return false
}

// --- Tree manipulation ---

// AddChild appends child to this node's children, resolving its name against
// the new siblings. If child already has a parent, it is removed from that
// parent first. Panics if child is nil or child is an ancestor of this node
// (cycle).
func (n *Node) AddChild(child *Node) {
	n.insertChild(child, -1, "AddChild")
}

// AddChildAt inserts child at the given index, counted after child has been
// detached from any previous parent. Same reparenting and cycle-check
// behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	n.insertChild(child, index, "AddChildAt")
}

func (n *Node) insertChild(child *Node, index int, op string) {
	if child == nil {
		panic("peony: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("peony: adding child would create a cycle")
	}
	limit := len(n.children)
	if child.parent == n {
		limit--
	}
	if index < -1 || index > limit {
		panic(fmt.Sprintf("peony: %s index %d out of range [0, %d]", op, index, limit))
	}
	n.attach(child, index)
}

// attach moves child under n at index (-1 appends) and notifies. Arguments
// are already validated.
func (n *Node) attach(child *Node, index int) {
	old := child.parent
	if old != nil {
		old.removeChildByPtr(child)
		if old != n {
			child.parent = nil
			old.emitFrom(ChangeEvent{Kind: ChangeRemoved, Node: child, Parent: old})
		}
	}
	child.parent = n
	child.name = uniqueChildName(n, child, child.name)
	if index < 0 || index >= len(n.children) {
		n.children = append(n.children, child)
	} else {
		n.children = append(n.children, nil)
		copy(n.children[index+1:], n.children[index:])
		n.children[index] = child
	}
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
	kind := ChangeAdded
	if old == n {
		kind = ChangeMoved
	}
	child.emit(kind)
}

// RemoveChild detaches child from this node. It reports false, changing
// nothing, when child is not a child of this node.
func (n *Node) RemoveChild(child *Node) bool {
	if child == nil || child.parent != n {
		return false
	}
	n.removeChildByPtr(child)
	child.parent = nil
	n.emitFrom(ChangeEvent{Kind: ChangeRemoved, Node: child, Parent: n})
	return true
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// MoveTo reparents this node under parent at index (-1 appends). Moving
// within the same parent reorders. The index is counted after the node has
// been detached.
func (n *Node) MoveTo(parent *Node, index int) error {
	if parent == nil {
		return fmt.Errorf("move %q: %w: nil parent", n.name, ErrNotFound)
	}
	if isAncestor(n, parent) {
		return fmt.Errorf("move %q under %q: %w", n.name, parent.name, ErrCycle)
	}
	limit := len(parent.children)
	if n.parent == parent {
		limit--
	}
	if index < -1 || index > limit {
		return fmt.Errorf("move %q to index %d: %w", n.name, index, ErrIndexOutOfRange)
	}
	parent.attach(n, index)
	return nil
}

// --- Queries ---

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// IndexOf returns the position of child among this node's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// ChildByName returns the child with the given name, or nil.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Root returns the topmost ancestor (n itself when parentless).
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Lineage returns the chain of nodes from the root down to n inclusive.
func (n *Node) Lineage() []*Node {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	out := make([]*Node, depth)
	for p := n; p != nil; p = p.parent {
		depth--
		out[depth] = p
	}
	return out
}

// Path returns the slash-separated names below the root, e.g. "body/arm".
// The root's path is empty.
func (n *Node) Path() string {
	lineage := n.Lineage()
	names := make([]string, 0, len(lineage)-1)
	for _, a := range lineage[1:] {
		names = append(names, a.name)
	}
	return strings.Join(names, "/")
}

// Find returns the descendant at the slash-separated path relative to n, or
// nil. An empty path returns n.
func (n *Node) Find(path string) *Node {
	cur := n
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		cur = cur.ChildByName(part)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Walk calls fn for n and every descendant in depth-first pre-order.
func (n *Node) Walk(fn func(*Node)) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(cur)
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i])
		}
	}
}

// --- Mutators that notify ---

// SetTransform replaces the node's transform. It returns ErrZeroScale and
// leaves the node unchanged when t.Scale is 0.
func (n *Node) SetTransform(t Transform) error {
	if err := t.Validate(); err != nil {
		return err
	}
	n.Transform = t
	n.emit(ChangeTransformed)
	return nil
}

// MoveBy adds delta to the node's translation.
func (n *Node) MoveBy(delta Vec2) {
	n.Transform.Translation.Add(delta)
	n.emit(ChangeTransformed)
}

// SetLocked locks or unlocks the node.
func (n *Node) SetLocked(locked bool) {
	if n.Locked == locked {
		return
	}
	n.Locked = locked
	n.emit(ChangeLocked)
}

// SetImage points an image node at a new file. It is a no-op on other kinds.
func (n *Node) SetImage(path string, raster Raster, err error) {
	if n.Kind != KindImage {
		return
	}
	n.Image = &ImageSource{Path: path, Raster: raster, Err: err}
	n.emit(ChangeContent)
}

// SetRegion points a sprite node at a new atlas region. It is a no-op on
// other kinds.
func (n *Node) SetRegion(name string, regions RegionProvider) {
	if n.Kind != KindSprite {
		return
	}
	n.Sprite = &SpriteSource{Name: name}
	n.Sprite.Resolve(regions)
	n.emit(ChangeContent)
}

// Changed notifies listeners that the node was modified by direct field
// access.
func (n *Node) Changed() {
	n.emit(ChangeModified)
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
