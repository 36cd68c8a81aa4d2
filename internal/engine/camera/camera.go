// Package camera provides mouse-driven control of a scene camera transform.
package camera

import (
	"github.com/Faultbox/sciviz/internal/engine/transform"
	"github.com/Faultbox/sciviz/pkg/math"
)

// Trackball rotates, pans and zooms a scene transform. The camera looks
// down -Z, so the distance to the scene origin is the negated Z offset.
type Trackball struct {
	target *transform.Transform

	// Home pose restored by Reset
	HomeRotation math.Quat
	HomeOffset   math.Vec3

	// Constraints
	MinDistance float32
	MaxDistance float32

	// Sensitivity
	DragSensitivity float32 // radians per pixel
	PanSensitivity  float32 // fraction of distance per pixel
	ZoomSensitivity float32 // fraction of distance per wheel step

	// ResetTime is how long Reset takes, in seconds.
	ResetTime float32

	resetFrom   math.Quat
	resetOffset math.Vec3
	resetAt     float32 // elapsed reset time, <0 when idle
}

// NewTrackball returns a trackball driving t. The current pose of t becomes
// the home pose.
func NewTrackball(t *transform.Transform) *Trackball {
	return &Trackball{
		target:          t,
		HomeRotation:    t.Rotation(),
		HomeOffset:      t.Offset(),
		MinDistance:     0.1,
		MaxDistance:     100,
		DragSensitivity: 0.01,
		PanSensitivity:  0.001,
		ZoomSensitivity: 0.1,
		ResetTime:       0.3,
		resetAt:         -1,
	}
}

// Distance returns how far the camera is from the scene origin.
func (c *Trackball) Distance() float32 {
	return -c.target.Offset().Z
}

// HandleDrag rotates the scene about the axis perpendicular to the drag,
// in screen space.
func (c *Trackball) HandleDrag(deltaX, deltaY float32) {
	axis := math.Vec3{X: deltaY, Y: deltaX}
	l := axis.Length()
	if l == 0 {
		return
	}
	c.resetAt = -1
	c.target.AddRotation(math.QuatFromAxisAngle(axis.DivScalar(l), l*c.DragSensitivity))
}

// HandlePan moves the scene in the screen plane. Screen y grows downwards.
func (c *Trackball) HandlePan(deltaX, deltaY float32) {
	s := c.PanSensitivity * c.Distance()
	c.resetAt = -1
	c.target.AddTranslation(math.Vec3{X: deltaX * s, Y: -deltaY * s})
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *Trackball) HandleZoom(delta float32) {
	d := c.Distance()
	d -= delta * d * c.ZoomSensitivity
	if d < c.MinDistance {
		d = c.MinDistance
	}
	if d > c.MaxDistance {
		d = c.MaxDistance
	}
	off := c.target.Offset()
	off.Z = -d
	c.target.SetTranslation(off)
}

// Reset starts an animated return to the home pose. Step advances it.
func (c *Trackball) Reset() {
	c.resetFrom = c.target.Rotation()
	c.resetOffset = c.target.Offset()
	c.resetAt = 0
}

// Resetting reports whether a reset is in progress.
func (c *Trackball) Resetting() bool { return c.resetAt >= 0 }

// Step advances a reset by dt seconds.
func (c *Trackball) Step(dt float32) {
	if c.resetAt < 0 {
		return
	}
	c.resetAt += dt
	t := float32(1)
	if c.ResetTime > 0 && c.resetAt < c.ResetTime {
		t = c.resetAt / c.ResetTime
	}
	c.target.SetRotation(c.resetFrom.Slerp(c.HomeRotation, t))
	c.target.SetTranslation(c.resetOffset.Add(c.HomeOffset.Sub(c.resetOffset).Scale(t)))
	if t >= 1 {
		c.resetAt = -1
	}
}
