// Package transform holds the model and scene placement of a visual model.
package transform

import (
	"github.com/Faultbox/sciviz/pkg/math"
)

// Transform is a translation plus a rotation. Every mutator rebuilds the
// matrix as T(offset) * R(rotation) from the stored state, so the matrix
// never accumulates drift from incremental edits.
type Transform struct {
	offset   math.Vec3
	rotation math.Quat
	matrix   math.Mat4
}

// New returns the identity transform.
func New() Transform {
	return Transform{rotation: math.QuatIdentity(), matrix: math.Identity()}
}

// At returns a transform translated to offset.
func At(offset math.Vec3) Transform {
	t := New()
	t.SetTranslation(offset)
	return t
}

func (t *Transform) recompute() {
	t.matrix = math.TranslateRotate(t.offset, t.rotation)
}

// SetTranslation replaces the offset.
func (t *Transform) SetTranslation(v math.Vec3) {
	t.offset = v
	t.recompute()
}

// AddTranslation moves the offset by v.
func (t *Transform) AddTranslation(v math.Vec3) {
	t.offset = t.offset.Add(v)
	t.recompute()
}

// SetRotation replaces the rotation.
func (t *Transform) SetRotation(r math.Quat) {
	t.rotation = r
	t.recompute()
}

// AddRotation applies r on top of the current rotation (premultiply).
func (t *Transform) AddRotation(r math.Quat) {
	t.rotation = t.rotation.Premultiply(r)
	t.recompute()
}

// SetMatrix overrides the matrix directly. The stored offset and rotation
// are left as they were; the next mutator rebuilds the matrix from them.
func (t *Transform) SetMatrix(m math.Mat4) {
	t.matrix = m
}

// Matrix returns the current matrix.
func (t *Transform) Matrix() math.Mat4 { return t.matrix }

// Offset returns the stored translation.
func (t *Transform) Offset() math.Vec3 { return t.offset }

// Rotation returns the stored rotation.
func (t *Transform) Rotation() math.Quat { return t.rotation }

// Scaling is the diagonal scale applied on top of a model transform.
type Scaling struct {
	matrix math.Mat4
}

// NewScaling returns unit scaling.
func NewScaling() Scaling {
	return Scaling{matrix: math.Identity()}
}

// SetUniform scales all three axes by s.
func (s *Scaling) SetUniform(scale float32) {
	s.matrix = math.Scale(scale, scale, scale)
}

// SetXY scales x and y, leaving z at 1.
func (s *Scaling) SetXY(x, y float32) {
	s.matrix = math.Scale(x, y, 1)
}

// Matrix returns the scale matrix.
func (s *Scaling) Matrix() math.Mat4 { return s.matrix }

// Model is a model transform with its size scaling.
type Model struct {
	Transform
	Scale Scaling
}

// NewModel returns an identity model transform with unit scaling.
func NewModel() Model {
	return Model{Transform: New(), Scale: NewScaling()}
}

// Composed returns scale * model, the matrix uploaded as the model matrix.
func (m *Model) Composed() math.Mat4 {
	return m.Scale.Matrix().Mul(m.Transform.Matrix())
}
