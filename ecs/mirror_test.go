package ecs

import (
	"testing"

	"github.com/phanxgames/peony"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewMirrorCreatesEntities(t *testing.T) {
	world := donburi.NewWorld()
	l := peony.NewLayout("start")
	shape := peony.NewShape("s")
	l.Root().AddChild(shape)
	shape.AddChild(peony.NewPoint("p"))

	m := NewMirror(world, l)
	defer m.Close()

	if m.Len() != 3 || m.Count() != 3 {
		t.Fatalf("Len = %d, Count = %d, want 3", m.Len(), m.Count())
	}
	e, ok := m.Entity(shape)
	if !ok {
		t.Fatal("shape not mirrored")
	}
	data := NodeComponent.Get(world.Entry(e))
	if data.Node != shape || data.Kind != peony.KindShape {
		t.Errorf("data = %+v", data)
	}
}

func TestMirrorTracksAddAndRemove(t *testing.T) {
	world := donburi.NewWorld()
	l := peony.NewLayout("start")
	m := NewMirror(world, l)
	defer m.Close()

	sub := peony.NewPoint("sub")
	sub.AddChild(peony.NewPoint("leaf"))
	l.Root().AddChild(sub)
	if m.Len() != 3 {
		t.Fatalf("after add Len = %d, want 3", m.Len())
	}

	e, _ := m.Entity(sub)
	l.Root().RemoveChild(sub)
	if m.Len() != 1 || m.Count() != 1 {
		t.Errorf("after remove Len = %d, Count = %d", m.Len(), m.Count())
	}
	if world.Valid(e) {
		t.Error("removed node's entity should be gone")
	}
}

func TestMirrorPublishesChanges(t *testing.T) {
	world := donburi.NewWorld()
	l := peony.NewLayout("start")
	m := NewMirror(world, l)
	defer m.Close()

	var received []peony.ChangeEvent
	ChangeEventType.Subscribe(world, func(w donburi.World, ev peony.ChangeEvent) {
		received = append(received, ev)
	})

	p := peony.NewPoint("p")
	l.Root().AddChild(p)
	p.SetName("q")
	p.MoveBy(peony.Vec2{X: 1})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("delivered before ProcessEvents: %d", len(received))
	}
	ChangeEventType.ProcessEvents(world)

	want := []peony.ChangeKind{peony.ChangeAdded, peony.ChangeRenamed, peony.ChangeTransformed}
	if len(received) != len(want) {
		t.Fatalf("got %d events, want %d", len(received), len(want))
	}
	for i, k := range want {
		if received[i].Kind != k || received[i].Node != p {
			t.Errorf("event %d = %v %v", i, received[i].Kind, received[i].Node)
		}
	}
}

func TestMirrorClose(t *testing.T) {
	world := donburi.NewWorld()
	l := peony.NewLayout("start")
	m := NewMirror(world, l)

	var count int
	ChangeEventType.Subscribe(world, func(w donburi.World, ev peony.ChangeEvent) {
		count++
	})
	m.Close()
	l.Root().AddChild(peony.NewPoint("p"))
	events.ProcessAllEvents(world)

	if count != 0 || m.Len() != 1 {
		t.Errorf("count = %d, Len = %d", count, m.Len())
	}
}

func TestMirrorResync(t *testing.T) {
	world := donburi.NewWorld()
	l := peony.NewLayout("start")
	m := NewMirror(world, l)
	defer m.Close()

	fresh := peony.NewPoint("fresh")
	fresh.AddChild(peony.NewPoint("a"))
	fresh.AddChild(peony.NewPoint("b"))
	l.SetRoot(fresh)
	m.Resync()

	if m.Len() != 3 || m.Count() != 3 {
		t.Errorf("Len = %d, Count = %d, want 3", m.Len(), m.Count())
	}
	var names []string
	m.Each(func(_ donburi.Entity, d *NodeData) { names = append(names, d.Node.Name()) })
	if len(names) != 3 {
		t.Errorf("Each visited %v", names)
	}
}
