package ecs

import (
	"github.com/phanxgames/peony"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// ChangeEventType is the Donburi event type for node changes. Events are
// queued on publish and delivered by ProcessEvents.
var ChangeEventType = events.NewEventType[peony.ChangeEvent]()

// NodeData is the component attached to each mirrored entity.
type NodeData struct {
	Node *peony.Node
	Kind peony.Kind
}

// NodeComponent marks entities that mirror a scene node.
var NodeComponent = donburi.NewComponentType[NodeData]()

var nodeQuery = donburi.NewQuery(filter.Contains(NodeComponent))

// Mirror keeps a Donburi world in step with a layout's node tree.
type Mirror struct {
	world    donburi.World
	layout   *peony.Layout
	entities map[*peony.Node]donburi.Entity
	handle   peony.Handle
}

// NewMirror creates an entity for every node under the layout root and
// tracks additions and removals from then on.
func NewMirror(world donburi.World, layout *peony.Layout) *Mirror {
	m := &Mirror{
		world:    world,
		layout:   layout,
		entities: make(map[*peony.Node]donburi.Entity),
	}
	m.Resync()
	m.handle = layout.OnNodeChange(m.onChange)
	return m
}

// Resync drops every mirrored entity and rebuilds from the current root.
// Call it after Layout.SetRoot.
func (m *Mirror) Resync() {
	for n, e := range m.entities {
		if m.world.Valid(e) {
			m.world.Remove(e)
		}
		delete(m.entities, n)
	}
	if root := m.layout.Root(); root != nil {
		m.addTree(root)
	}
}

// Entity returns the entity mirroring n.
func (m *Mirror) Entity(n *peony.Node) (donburi.Entity, bool) {
	e, ok := m.entities[n]
	return e, ok
}

// Len returns the number of mirrored nodes.
func (m *Mirror) Len() int {
	return len(m.entities)
}

// Count returns the number of entities in the world carrying NodeComponent.
func (m *Mirror) Count() int {
	return nodeQuery.Count(m.world)
}

// Each calls fn with the node of every mirrored entity.
func (m *Mirror) Each(fn func(donburi.Entity, *NodeData)) {
	nodeQuery.Each(m.world, func(entry *donburi.Entry) {
		fn(entry.Entity(), NodeComponent.Get(entry))
	})
}

// Close stops tracking the layout. Mirrored entities stay in the world.
func (m *Mirror) Close() {
	m.handle.Remove()
}

func (m *Mirror) onChange(ev peony.ChangeEvent) {
	switch ev.Kind {
	case peony.ChangeAdded:
		m.addTree(ev.Node)
	case peony.ChangeRemoved:
		m.removeTree(ev.Node)
	}
	ChangeEventType.Publish(m.world, ev)
}

func (m *Mirror) addTree(root *peony.Node) {
	root.Walk(func(n *peony.Node) {
		if _, ok := m.entities[n]; ok {
			return
		}
		e := m.world.Create(NodeComponent)
		NodeComponent.SetValue(m.world.Entry(e), NodeData{Node: n, Kind: n.Kind})
		m.entities[n] = e
	})
}

func (m *Mirror) removeTree(root *peony.Node) {
	root.Walk(func(n *peony.Node) {
		if e, ok := m.entities[n]; ok {
			m.world.Remove(e)
			delete(m.entities, n)
		}
	})
}
