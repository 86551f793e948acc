package peony

// ChangeKind identifies what happened to a node or layout.
type ChangeKind uint8

const (
	ChangeAdded       ChangeKind = iota // attached to a parent
	ChangeRemoved                       // detached from Parent
	ChangeMoved                         // reordered within its parent
	ChangeRenamed                       // name changed
	ChangeTransformed                   // transform replaced or translated
	ChangeLocked                        // lock flag toggled
	ChangeGeometry                      // polygon vertices edited
	ChangeContent                       // image file or sprite region replaced
	ChangeModified                      // reported through Changed after direct edits
)

var changeKindNames = [...]string{
	ChangeAdded:       "added",
	ChangeRemoved:     "removed",
	ChangeMoved:       "moved",
	ChangeRenamed:     "renamed",
	ChangeTransformed: "transformed",
	ChangeLocked:      "locked",
	ChangeGeometry:    "geometry",
	ChangeContent:     "content",
	ChangeModified:    "modified",
}

func (k ChangeKind) String() string {
	if int(k) < len(changeKindNames) {
		return changeKindNames[k]
	}
	return "unknown"
}

// ChangeEvent describes a mutation of a node tree. It is delivered after the
// mutation, to listeners on the node and on every ancestor. For
// ChangeRemoved, Node is already detached and Parent is the node it left.
type ChangeEvent struct {
	Kind   ChangeKind
	Node   *Node
	Parent *Node
}

// --- Listener registry ---

type listener[E any] struct {
	id uint32
	fn func(E)
}

// listenerList is a removable callback list. The zero value is ready to use.
type listenerList[E any] struct {
	entries []listener[E]
	nextID  uint32
}

func (l *listenerList[E]) add(fn func(E)) Handle {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listener[E]{id: id, fn: fn})
	return Handle{remove: func() { l.remove(id) }}
}

// remove deletes the entry from the slice to avoid nil iteration waste.
func (l *listenerList[E]) remove(id uint32) {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *listenerList[E]) fire(ev E) {
	if len(l.entries) == 0 {
		return
	}
	// Iterate a snapshot so callbacks may remove themselves.
	snapshot := l.entries
	for _, e := range snapshot {
		e.fn(ev)
	}
}

// Handle allows removing a registered change listener.
type Handle struct {
	remove func()
}

// Remove unregisters the listener so it no longer fires. Calling Remove more
// than once, or on the zero Handle, is a no-op.
func (h Handle) Remove() {
	if h.remove != nil {
		h.remove()
	}
}

// OnChange registers fn for changes to n and to every node below it.
func (n *Node) OnChange(fn func(ChangeEvent)) Handle {
	return n.listeners.add(fn)
}

// emit reports a change of n itself, starting at n.
func (n *Node) emit(kind ChangeKind) {
	n.emitFrom(ChangeEvent{Kind: kind, Node: n, Parent: n.parent})
}

// emitFrom delivers ev to n and each of its ancestors.
func (n *Node) emitFrom(ev ChangeEvent) {
	for p := n; p != nil; p = p.parent {
		p.listeners.fire(ev)
	}
}
