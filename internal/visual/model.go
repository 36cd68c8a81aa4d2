// Package visual provides renderable models and the scene that owns them.
//
// A Model couples a Geometry, which fills a mesh.Builder with triangles, to
// the GPU buffers that draw them and to a list of text labels that move
// with the model. Models are created against a Parent (normally a Scene)
// which supplies the device and the shader programs.
package visual

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/sciviz/internal/engine/gpu"
	"github.com/Faultbox/sciviz/internal/engine/mesh"
	"github.com/Faultbox/sciviz/internal/engine/text"
	"github.com/Faultbox/sciviz/internal/engine/transform"
	"github.com/Faultbox/sciviz/internal/logger"
	"github.com/Faultbox/sciviz/pkg/math"
)

var (
	ErrNoParent         = errors.New("visual: model has no parent")
	ErrParentAlreadySet = errors.New("visual: parent already set")
	ErrNoTextProgram    = errors.New("visual: parent has no text program")
)

// alphaStep is the IncAlpha/DecAlpha increment.
const alphaStep = 0.1

// Geometry fills a builder with a model's vertices and triangles.
type Geometry interface {
	InitializeVertices(b *mesh.Builder)
}

// GeometryFunc adapts a function to Geometry.
type GeometryFunc func(b *mesh.Builder)

func (f GeometryFunc) InitializeVertices(b *mesh.Builder) { f(b) }

// Parent supplies the device and programs a model renders with.
type Parent interface {
	Device() gpu.Device
	GraphicsProgram() uint32
	TextProgram() uint32
}

// Model is a renderable mesh with attached text labels.
//
// The view transform places the model (uploaded as m_matrix together with
// the size scale). The scene transform places it within the enclosing
// scene frame (uploaded as v_matrix).
type Model struct {
	id       uuid.UUID
	parent   Parent
	geometry Geometry
	builder  *mesh.Builder

	view  transform.Model
	scene transform.Transform
	frame math.Mat4

	labels []*text.Label

	alpha float32
	hide  bool

	buffers       *gpu.MeshBuffers
	uploadPending bool
	finalized     bool

	log *zap.Logger
}

// New returns a model placed at offset and attached to parent. The mesh is
// not built until Finalize.
func New(parent Parent, offset math.Vec3, g Geometry) *Model {
	m := NewDetached(offset, g)
	m.parent = parent
	return m
}

// NewDetached returns a model with no parent. SetParent must be called
// before anything that touches the GPU.
func NewDetached(offset math.Vec3, g Geometry) *Model {
	m := &Model{
		id:       uuid.New(),
		geometry: g,
		builder:  mesh.NewBuilder(),
		view:     transform.NewModel(),
		scene:    transform.New(),
		frame:    math.Identity(),
		alpha:    1,
	}
	m.view.SetTranslation(offset)
	m.log = logger.Named("visual").With(zap.Stringer("model", m.id))
	return m
}

// SetParent attaches the model to parent. It may only be called once.
func (m *Model) SetParent(p Parent) error {
	if m.parent != nil {
		return ErrParentAlreadySet
	}
	m.parent = p
	return nil
}

// SetSeed makes random primitive orientations reproducible. A model that
// was already finalized is rebuilt with the seeded builder.
func (m *Model) SetSeed(seed uint64) {
	m.builder = mesh.NewSeededBuilder(seed)
	if m.finalized {
		m.rebuild()
	}
}

// ID returns the model's registry id.
func (m *Model) ID() uuid.UUID { return m.id }

// Finalize builds the mesh and marks it for upload on the next render.
func (m *Model) Finalize() {
	m.geometry.InitializeVertices(m.builder)
	m.uploadPending = true
	m.finalized = true
	m.log.Debug("finalized",
		zap.Int("vertices", m.builder.VertexCount()),
		zap.Int("indices", len(m.builder.Indices)))
}

// Upload copies the CPU buffers to the GPU, allocating handles on first
// use. It needs a parent.
func (m *Model) Upload() error {
	if m.parent == nil {
		return ErrNoParent
	}
	if m.buffers == nil {
		m.buffers = gpu.NewMeshBuffers(m.parent.Device())
	}
	b := m.builder
	m.buffers.Upload(b.Positions, b.Normals, b.Colors, b.Indices)
	m.uploadPending = false
	return nil
}

func (m *Model) setUniforms(dev gpu.Device, prog uint32) {
	if loc := dev.UniformLocation(prog, "alpha"); loc != gpu.NoUniform {
		dev.Uniform1f(loc, m.alpha)
	}
	if loc := dev.UniformLocation(prog, "v_matrix"); loc != gpu.NoUniform {
		dev.UniformMatrix4(loc, m.SceneMatrix())
	}
	if loc := dev.UniformLocation(prog, "m_matrix"); loc != gpu.NoUniform {
		dev.UniformMatrix4(loc, m.view.Composed())
	}
}

// Render draws the model and then its labels. The program current on entry
// is current again on return.
func (m *Model) Render() {
	if m.hide {
		return
	}
	if m.parent == nil {
		m.log.Warn("render without parent")
		return
	}
	if m.uploadPending || m.buffers == nil {
		if err := m.Upload(); err != nil {
			m.log.Error("upload failed", zap.Error(err))
			return
		}
	}

	dev := m.parent.Device()
	prev := dev.CurrentProgram()
	prog := m.parent.GraphicsProgram()
	dev.UseProgram(prog)

	if m.buffers.IndexCount() > 0 {
		m.buffers.Bind()
		m.setUniforms(dev, prog)
		m.buffers.Draw()
		m.buffers.Unbind()
	}

	for _, l := range m.labels {
		l.Render()
	}

	dev.UseProgram(prev)
}

func (m *Model) rebuild() {
	m.builder.Reset()
	m.geometry.InitializeVertices(m.builder)
	m.uploadPending = true
	if m.parent != nil {
		if err := m.Upload(); err != nil {
			m.log.Error("reupload failed", zap.Error(err))
		}
	}
}

// Reinit rebuilds the mesh from the geometry and re-uploads it. Labels are
// kept.
func (m *Model) Reinit() {
	m.rebuild()
}

// ReinitWithClearTexts is Reinit that also drops every label.
func (m *Model) ReinitWithClearTexts() {
	m.ClearTexts()
	m.rebuild()
}

// Clear empties the mesh and drops every label, leaving an uploaded model
// that draws nothing.
func (m *Model) Clear() {
	m.builder.Reset()
	m.ClearTexts()
	m.uploadPending = true
	if m.parent != nil {
		if err := m.Upload(); err != nil {
			m.log.Error("reupload failed", zap.Error(err))
		}
	}
}

// ClearTexts releases and drops every label.
func (m *Model) ClearTexts() {
	for _, l := range m.labels {
		l.Close()
	}
	m.labels = nil
}

// Close releases the model's GPU buffers and labels.
func (m *Model) Close() {
	m.ClearTexts()
	if m.buffers != nil {
		m.buffers.Release()
		m.buffers = nil
	}
}

// AddLabel adds a text label at offset, relative to the model's view
// offset, and returns its extent.
func (m *Model) AddLabel(s string, offset math.Vec3, f text.Features) (text.Geometry, error) {
	_, g, err := m.AddLabelRef(s, offset, f)
	return g, err
}

// AddLabelRef is AddLabel that also returns the label so the caller can
// update it later.
func (m *Model) AddLabelRef(s string, offset math.Vec3, f text.Features) (*text.Label, text.Geometry, error) {
	if m.parent == nil {
		return nil, text.Geometry{}, ErrNoParent
	}
	prog := m.parent.TextProgram()
	if prog == 0 {
		return nil, text.Geometry{}, ErrNoTextProgram
	}
	l, err := text.NewLabel(m.parent.Device(), prog, f)
	if err != nil {
		return nil, text.Geometry{}, fmt.Errorf("add label %q: %w", s, err)
	}
	if f.CentreHorz {
		offset.X = -l.Measure(s).HalfWidth()
	}
	g := l.Setup(s, offset.Add(m.view.Offset()), f.Colour)
	l.SetAlpha(m.alpha)
	l.SetSceneMatrix(m.SceneMatrix())
	r := m.view.Rotation()
	l.SetPivot(m.view.Offset())
	l.SetSceneRotation(r)
	l.SetViewRotation(r.Invert())
	m.labels = append(m.labels, l)
	return l, g, nil
}

// Labels returns the model's labels in the order they were added.
func (m *Model) Labels() []*text.Label { return m.labels }

// SetAlpha sets the opacity of the model and its labels.
func (m *Model) SetAlpha(a float32) {
	m.alpha = a
	for _, l := range m.labels {
		l.SetAlpha(a)
	}
}

func (m *Model) Alpha() float32 { return m.alpha }

func (m *Model) IncAlpha() { m.SetAlpha(min(m.alpha+alphaStep, 1)) }

func (m *Model) DecAlpha() { m.SetAlpha(max(m.alpha-alphaStep, 0)) }

func (m *Model) SetHide(h bool) { m.hide = h }

func (m *Model) ToggleHide() { m.hide = !m.hide }

func (m *Model) Hidden() bool { return m.hide }

// ViewOffset returns the model's placement.
func (m *Model) ViewOffset() math.Vec3 { return m.view.Offset() }

// ViewRotation returns the model's rotation.
func (m *Model) ViewRotation() math.Quat { return m.view.Rotation() }

// ViewMatrix returns scale * view, the matrix uploaded as m_matrix.
func (m *Model) ViewMatrix() math.Mat4 { return m.view.Composed() }

// SceneMatrix returns the matrix uploaded as v_matrix.
func (m *Model) SceneMatrix() math.Mat4 { return m.frame.Mul(m.scene.Matrix()) }

// SetViewTranslation moves the model. Labels move with it.
func (m *Model) SetViewTranslation(v math.Vec3) {
	m.AddViewTranslation(v.Sub(m.view.Offset()))
}

// AddViewTranslation moves the model by v. Labels move with it.
func (m *Model) AddViewTranslation(v math.Vec3) {
	m.view.AddTranslation(v)
	for _, l := range m.labels {
		l.SetViewTranslation(l.Offset().Add(v))
		l.SetPivot(m.view.Offset())
	}
}

// SetViewRotation rotates the model about its view offset. Labels are
// carried round with it but keep facing the viewer.
func (m *Model) SetViewRotation(r math.Quat) {
	m.view.SetRotation(r)
	m.compensateLabels()
}

// AddViewRotation composes r onto the model's rotation, compensating labels
// like SetViewRotation.
func (m *Model) AddViewRotation(r math.Quat) {
	m.view.AddRotation(r)
	m.compensateLabels()
}

// compensateLabels turns each label's anchor with the model while undoing
// the rotation on the glyphs themselves.
func (m *Model) compensateLabels() {
	r := m.view.Rotation()
	inv := r.Invert()
	for _, l := range m.labels {
		l.SetPivot(m.view.Offset())
		l.SetSceneRotation(r)
		l.SetViewRotation(inv)
	}
}

// SetViewRotationFixTexts rotates the model and leaves its labels where
// they are.
func (m *Model) SetViewRotationFixTexts(r math.Quat) {
	m.view.SetRotation(r)
}

// SetViewMatrix overrides the view transform until its next mutation.
func (m *Model) SetViewMatrix(mat math.Mat4) {
	m.view.SetMatrix(mat)
}

func (m *Model) SetSizeScale(s float32) { m.view.Scale.SetUniform(s) }

func (m *Model) SetSizeScaleXY(x, y float32) { m.view.Scale.SetXY(x, y) }

// syncLabelFrames gives every label the model's scene matrix as its frame.
func (m *Model) syncLabelFrames() {
	sm := m.SceneMatrix()
	for _, l := range m.labels {
		l.SetSceneMatrix(sm)
	}
}

func (m *Model) SetSceneTranslation(v math.Vec3) {
	m.scene.SetTranslation(v)
	m.syncLabelFrames()
}

func (m *Model) AddSceneTranslation(v math.Vec3) {
	m.scene.AddTranslation(v)
	m.syncLabelFrames()
}

// SetSceneRotation rotates the model within the scene frame. Labels turn
// with it.
func (m *Model) SetSceneRotation(r math.Quat) {
	m.scene.SetRotation(r)
	m.syncLabelFrames()
}

func (m *Model) AddSceneRotation(r math.Quat) {
	m.scene.AddRotation(r)
	m.syncLabelFrames()
}

// SetSceneMatrix sets the enclosing scene frame for the model and its
// labels. The model's own scene translation and rotation apply inside it.
func (m *Model) SetSceneMatrix(mat math.Mat4) {
	m.frame = mat
	m.syncLabelFrames()
}

// VertexMaxMins returns the per-axis extents of the built buffers.
func (m *Model) VertexMaxMins() (mesh.Extents, error) {
	return m.builder.Extents()
}

func (m *Model) Positions() []float32 { return m.builder.Positions }

func (m *Model) Normals() []float32 { return m.builder.Normals }

func (m *Model) Colors() []float32 { return m.builder.Colors }

func (m *Model) Indices() []uint32 { return m.builder.Indices }

// Builder exposes the mesh builder, mainly for geometries that need to
// inspect what they built.
func (m *Model) Builder() *mesh.Builder { return m.builder }
