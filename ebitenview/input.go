package ebitenview

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/peony"
)

// KeyModifiers is a bitmask of held modifier keys.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Input is one frame of pointer and keyboard state, in screen space.
type Input struct {
	Cursor peony.Vec2
	Left   bool // left button held
	Right  bool // right button held
	Wheel  float64
	// Keys lists keys pressed this frame.
	Keys []ebiten.Key
	Mods KeyModifiers
}

// pressed reports whether k was pressed this frame.
func (in Input) pressed(k ebiten.Key) bool {
	for _, key := range in.Keys {
		if key == k {
			return true
		}
	}
	return false
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// pollInput samples ebiten's input state for the current frame. keys is
// reused as the backing array for Input.Keys.
func pollInput(keys []ebiten.Key) Input {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	return Input{
		Cursor: peony.Vec2{X: float64(mx), Y: float64(my)},
		Left:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		Wheel:  wy,
		Keys:   inpututil.AppendJustPressedKeys(keys[:0]),
		Mods:   readModifiers(),
	}
}

// pointerState tracks button edges across frames.
type pointerState struct {
	left, right bool
	last        peony.Vec2 // cursor at the previous frame, screen space
}

// --- Injected input ---

// Inject queues synthetic frames. While the queue is non-empty each Update
// consumes one queued frame instead of polling ebiten.
func (v *Viewer) Inject(frames ...Input) {
	v.injectQueue = append(v.injectQueue, frames...)
}

// InjectClick queues a left click at screen position (x, y): one frame
// pressed, one released.
func (v *Viewer) InjectClick(x, y float64) {
	p := peony.Vec2{X: x, Y: y}
	v.Inject(Input{Cursor: p, Left: true}, Input{Cursor: p})
}

// InjectDrag queues a left-button drag from one screen position to another,
// interpolated over the given number of frames (minimum 2).
func (v *Viewer) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		p := peony.Vec2{X: fromX + (toX-fromX)*t, Y: fromY + (toY-fromY)*t}
		v.Inject(Input{Cursor: p, Left: true})
	}
	v.Inject(Input{Cursor: peony.Vec2{X: toX, Y: toY}})
}

// InjectKey queues a frame pressing key with the given modifiers.
func (v *Viewer) InjectKey(key ebiten.Key, mods KeyModifiers) {
	v.Inject(Input{Cursor: v.pointer.last, Keys: []ebiten.Key{key}, Mods: mods})
}
