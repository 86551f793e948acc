package ebitenview

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/peony"
)

// focusAnim holds active focus tweens for camera X, Y and zoom.
type focusAnim struct {
	tweenX, tweenY, tweenZoom *gween.Tween
	doneX, doneY, doneZoom    bool
}

// Camera controls the view into a layout: the world point at the viewport
// centre and the zoom factor.
type Camera struct {
	// X and Y are the world-space position the camera centres on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// MinZoom is the smallest zoom ZoomAt allows.
	MinZoom float64
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport peony.Rect

	focus *focusAnim
}

// NewCamera creates a camera at the world origin with no zoom.
func NewCamera(viewport peony.Rect, minZoom float64) *Camera {
	return &Camera{Zoom: 1, MinZoom: minZoom, Viewport: viewport}
}

// Transform returns the camera as the outermost scene transform, mapping
// world space to screen space.
func (c *Camera) Transform() peony.Transform {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	return peony.Transform{
		Translation: peony.Vec2{X: cx - c.X*c.Zoom, Y: cy - c.Y*c.Zoom},
		Scale:       c.Zoom,
	}
}

// WorldToScreen converts a world point to screen coordinates.
func (c *Camera) WorldToScreen(p peony.Vec2) peony.Vec2 {
	return c.Transform().OutOfLocal(p)
}

// ScreenToWorld converts a screen point to world coordinates.
func (c *Camera) ScreenToWorld(p peony.Vec2) peony.Vec2 {
	return c.Transform().IntoLocal(p)
}

// Pan moves the view by a screen-space delta, so the world follows the
// pointer.
func (c *Camera) Pan(dx, dy float64) {
	c.focus = nil
	c.X -= dx / c.Zoom
	c.Y -= dy / c.Zoom
}

// ZoomAt multiplies the zoom by factor, keeping the world point under the
// screen point fixed. The result is clamped to MinZoom.
func (c *Camera) ZoomAt(screen peony.Vec2, factor float64) {
	c.focus = nil
	before := c.ScreenToWorld(screen)
	c.Zoom = math.Max(c.Zoom*factor, c.MinZoom)
	after := c.ScreenToWorld(screen)
	c.X += before.X - after.X
	c.Y += before.Y - after.Y
}

// FocusOn animates the camera to centre on target over duration seconds,
// zooming so a circle of the given world radius fills about a third of the
// smaller viewport side. A radius of zero keeps the current zoom.
func (c *Camera) FocusOn(target peony.Vec2, radius float64, duration float32) {
	zoom := c.Zoom
	if radius > 0 {
		zoom = math.Max(math.Min(c.Viewport.Width, c.Viewport.Height)/(6*radius), c.MinZoom)
	}
	if duration <= 0 {
		c.X, c.Y, c.Zoom = target.X, target.Y, zoom
		c.focus = nil
		return
	}
	c.focus = &focusAnim{
		tweenX:    gween.New(float32(c.X), float32(target.X), duration, ease.OutCubic),
		tweenY:    gween.New(float32(c.Y), float32(target.Y), duration, ease.OutCubic),
		tweenZoom: gween.New(float32(c.Zoom), float32(zoom), duration, ease.OutCubic),
	}
}

// Focusing reports whether a focus animation is running.
func (c *Camera) Focusing() bool {
	return c.focus != nil
}

// Update advances any focus animation by dt seconds.
func (c *Camera) Update(dt float32) {
	f := c.focus
	if f == nil {
		return
	}
	if !f.doneX {
		val, done := f.tweenX.Update(dt)
		c.X = float64(val)
		f.doneX = done
	}
	if !f.doneY {
		val, done := f.tweenY.Update(dt)
		c.Y = float64(val)
		f.doneY = done
	}
	if !f.doneZoom {
		val, done := f.tweenZoom.Update(dt)
		c.Zoom = float64(val)
		f.doneZoom = done
	}
	if f.doneX && f.doneY && f.doneZoom {
		c.focus = nil
	}
}

// VisibleBounds returns the world-space rectangle the viewport shows.
func (c *Camera) VisibleBounds() peony.Rect {
	tl := c.ScreenToWorld(peony.Vec2{X: c.Viewport.X, Y: c.Viewport.Y})
	br := c.ScreenToWorld(peony.Vec2{X: c.Viewport.X + c.Viewport.Width, Y: c.Viewport.Y + c.Viewport.Height})
	return peony.Rect{X: tl.X, Y: tl.Y, Width: br.X - tl.X, Height: br.Y - tl.Y}
}
