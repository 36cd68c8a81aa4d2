package visual

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sciviz/internal/engine/colour"
	"github.com/Faultbox/sciviz/internal/engine/gpu"
	"github.com/Faultbox/sciviz/internal/engine/gpu/gputest"
	"github.com/Faultbox/sciviz/internal/engine/mesh"
	"github.com/Faultbox/sciviz/internal/engine/text"
	"github.com/Faultbox/sciviz/pkg/math"
)

const (
	graphicsProg = 11
	textProg     = 12
)

type fakeParent struct {
	dev  *gputest.Device
	text uint32
}

func (p *fakeParent) Device() gpu.Device { return p.dev }

func (p *fakeParent) GraphicsProgram() uint32 { return graphicsProg }

func (p *fakeParent) TextProgram() uint32 { return p.text }

func newParent() *fakeParent {
	return &fakeParent{dev: gputest.New(), text: textProg}
}

func assertVec(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, 1e-5, "y of %v", got)
	assert.InDelta(t, want.Z, got.Z, 1e-5, "z of %v", got)
}

var unitTriangle = Triangle{
	C1:     math.Vec3{},
	C2:     math.Vec3{X: 1},
	C3:     math.Vec3{Y: 1},
	Colour: colour.Red,
}

func TestRenderUploadsOnceAndRestoresProgram(t *testing.T) {
	p := newParent()
	m := New(p, math.Vec3{}, unitTriangle)
	m.Finalize()

	p.dev.UseProgram(42)
	m.Render()
	m.Render()

	assert.Equal(t, 1, p.dev.Count("GenVertexArray"))
	assert.Equal(t, 4, p.dev.Count("GenBuffer"))
	require.Len(t, p.dev.Draws, 2)
	assert.Equal(t, uint32(graphicsProg), p.dev.Draws[0].Program)
	assert.Equal(t, int32(3), p.dev.Draws[0].Count)
	assert.NotZero(t, p.dev.Draws[0].VAO)
	assert.Equal(t, uint32(42), p.dev.CurrentProgram())

	assert.Equal(t, float32(1), p.dev.Floats[p.dev.Uniforms["alpha"]])
	assert.Equal(t, math.Identity(), p.dev.Matrices[p.dev.Uniforms["m_matrix"]])
}

func TestRenderSkipsMissingUniforms(t *testing.T) {
	p := newParent()
	delete(p.dev.Uniforms, "alpha")
	delete(p.dev.Uniforms, "v_matrix")
	m := New(p, math.Vec3{}, unitTriangle)
	m.Finalize()
	m.Render()

	assert.Zero(t, p.dev.Count("Uniform1f"))
	assert.Equal(t, 1, p.dev.Count("UniformMatrix4"), "only m_matrix resolves")
	assert.Len(t, p.dev.Draws, 1)
}

func TestHiddenModelIsNoop(t *testing.T) {
	p := newParent()
	m := New(p, math.Vec3{}, unitTriangle)
	m.Finalize()
	m.SetHide(true)
	m.Render()
	assert.Empty(t, p.dev.Calls)

	m.ToggleHide()
	assert.False(t, m.Hidden())
	m.Render()
	assert.Len(t, p.dev.Draws, 1)
}

func TestEmptyModelDrawsNothing(t *testing.T) {
	p := newParent()
	m := New(p, math.Vec3{}, GeometryFunc(func(*mesh.Builder) {}))
	m.Finalize()
	m.Render()

	assert.Empty(t, p.dev.Draws)
	assert.Equal(t, 1, p.dev.Count("GenVertexArray"), "buffers exist even when empty")
}

func TestReinitRebuildsIdentically(t *testing.T) {
	p := newParent()
	m := New(p, math.Vec3{}, Rhombo{
		Edge1:  math.Vec3{X: 1},
		Edge2:  math.Vec3{Y: 1},
		Edge3:  math.Vec3{Z: 1},
		Colour: colour.Blue,
	})
	m.Finalize()
	require.NoError(t, m.Upload())

	positions := append([]float32(nil), m.Positions()...)
	indices := append([]uint32(nil), m.Indices()...)
	require.Len(t, positions, 24*3)
	require.Len(t, indices, 36)

	_, err := m.AddLabel("keep", math.Vec3{}, text.DefaultFeatures())
	require.NoError(t, err)

	m.Reinit()
	assert.Equal(t, positions, m.Positions())
	assert.Equal(t, indices, m.Indices())
	assert.Equal(t, uint32(24), m.Builder().Idx)
	assert.Len(t, m.Labels(), 1)
	assert.Equal(t, 1, p.dev.Count("GenVertexArray"), "handles are reused")

	m.ReinitWithClearTexts()
	assert.Equal(t, positions, m.Positions())
	assert.Empty(t, m.Labels())
}

func TestClearEmptiesBuffersAndLabels(t *testing.T) {
	p := newParent()
	m := New(p, math.Vec3{}, unitTriangle)
	m.Finalize()
	_, err := m.AddLabel("gone", math.Vec3{}, text.DefaultFeatures())
	require.NoError(t, err)

	m.Clear()
	assert.Empty(t, m.Positions())
	assert.Empty(t, m.Indices())
	assert.Empty(t, m.Labels())
	assert.Zero(t, m.Builder().Idx)

	p.dev.Reset()
	m.Render()
	assert.Empty(t, p.dev.Draws)
}

func TestCloseReleasesEverything(t *testing.T) {
	p := newParent()
	m := New(p, math.Vec3{}, unitTriangle)
	m.Finalize()
	_, err := m.AddLabel("x", math.Vec3{}, text.DefaultFeatures())
	require.NoError(t, err)
	m.Render()
	require.NotZero(t, p.dev.Live())

	m.Close()
	m.Close()
	assert.Zero(t, p.dev.Live())
}

func TestSetParentOnce(t *testing.T) {
	m := NewDetached(math.Vec3{}, unitTriangle)
	assert.ErrorIs(t, m.Upload(), ErrNoParent)
	_, err := m.AddLabel("x", math.Vec3{}, text.DefaultFeatures())
	assert.ErrorIs(t, err, ErrNoParent)

	require.NoError(t, m.SetParent(newParent()))
	assert.ErrorIs(t, m.SetParent(newParent()), ErrParentAlreadySet)
}

func TestAddLabelNeedsTextProgram(t *testing.T) {
	p := newParent()
	p.text = 0
	m := New(p, math.Vec3{}, unitTriangle)

	_, err := m.AddLabel("x", math.Vec3{}, text.DefaultFeatures())
	assert.ErrorIs(t, err, ErrNoTextProgram)
	assert.Empty(t, m.Labels())
}

func TestAddLabelPlacement(t *testing.T) {
	p := newParent()
	offset := math.Vec3{X: 3, Y: 1}
	m := New(p, offset, unitTriangle)

	l, g, err := m.AddLabelRef("left", math.Vec3{X: 0.5, Y: 0.25}, text.DefaultFeatures())
	require.NoError(t, err)
	assert.Equal(t, l.Geometry(), g)
	assertVec(t, math.Vec3{X: 3.5, Y: 1.25}, l.Offset())

	f := text.DefaultFeatures()
	f.CentreHorz = true
	l, g, err = m.AddLabelRef("centred", math.Vec3{X: 9, Y: 0.25}, f)
	require.NoError(t, err)
	assertVec(t, math.Vec3{X: 3 - g.HalfWidth(), Y: 1.25}, l.Offset())

	assert.Len(t, m.Labels(), 2)
}

func TestAlphaSteps(t *testing.T) {
	m := NewDetached(math.Vec3{}, unitTriangle)
	assert.Equal(t, float32(1), m.Alpha())

	m.IncAlpha()
	assert.Equal(t, float32(1), m.Alpha())

	m.DecAlpha()
	assert.InDelta(t, 0.9, m.Alpha(), 1e-6)

	for i := 0; i < 12; i++ {
		m.DecAlpha()
	}
	assert.Equal(t, float32(0), m.Alpha())

	m.SetAlpha(0.5)
	m.IncAlpha()
	assert.InDelta(t, 0.6, m.Alpha(), 1e-6)
}

func TestLabelsTrackModelRotation(t *testing.T) {
	p := newParent()
	offset := math.Vec3{X: 2}
	m := New(p, offset, unitTriangle)

	local := math.Vec3{Y: 1}
	l, _, err := m.AddLabelRef("n", local, text.DefaultFeatures())
	require.NoError(t, err)

	quarter := math.QuatFromAxisAngle(math.UnitZ, math32.Pi/2)
	check := func() {
		t.Helper()
		// the anchor lands where the model puts its own point
		assertVec(t, m.ViewMatrix().TransformPoint(local), l.Anchor())
		// the glyphs are not rotated
		full := l.SceneMatrix().Mul(l.ViewMatrix())
		assertVec(t, math.UnitX, full.TransformDirection(math.UnitX))
		assertVec(t, math.UnitY, full.TransformDirection(math.UnitY))
	}

	m.SetViewRotation(quarter)
	check()

	m.AddViewRotation(quarter)
	check()
	assertVec(t, math.Vec3{X: 2, Y: -1}, l.Anchor())

	m.SetViewTranslation(math.Vec3{X: -1})
	check()
}

func TestFixTextsLeavesLabels(t *testing.T) {
	p := newParent()
	m := New(p, math.Vec3{}, unitTriangle)
	l, _, err := m.AddLabelRef("n", math.Vec3{Y: 1}, text.DefaultFeatures())
	require.NoError(t, err)

	before := l.Anchor()
	m.SetViewRotationFixTexts(math.QuatFromAxisAngle(math.UnitZ, 1))
	assert.Equal(t, before, l.Anchor())
}

func TestLabelAddedAfterRotationIsCompensated(t *testing.T) {
	p := newParent()
	m := New(p, math.Vec3{X: 1}, unitTriangle)
	m.SetViewRotation(math.QuatFromAxisAngle(math.UnitZ, math32.Pi/2))

	l, _, err := m.AddLabelRef("late", math.Vec3{X: 1}, text.DefaultFeatures())
	require.NoError(t, err)
	assertVec(t, m.ViewMatrix().TransformPoint(math.Vec3{X: 1}), l.Anchor())
}

func TestSceneTransformCarriesLabels(t *testing.T) {
	p := newParent()
	m := New(p, math.Vec3{}, unitTriangle)
	l, _, err := m.AddLabelRef("n", math.Vec3{}, text.DefaultFeatures())
	require.NoError(t, err)

	m.SetSceneMatrix(math.Translate(math.Vec3{Z: -5}))
	m.SetSceneTranslation(math.Vec3{X: 1})
	want := math.Translate(math.Vec3{Z: -5}).Mul(math.Translate(math.Vec3{X: 1}))
	assert.Equal(t, want, m.SceneMatrix())
	assertVec(t, math.Vec3{X: 1, Z: -5}, l.Anchor())

	m.AddSceneTranslation(math.Vec3{Y: 2})
	assertVec(t, math.Vec3{X: 1, Y: 2, Z: -5}, l.Anchor())
}

func TestSizeScaleComposesIntoModelMatrix(t *testing.T) {
	p := newParent()
	m := New(p, math.Vec3{X: 1}, unitTriangle)
	m.Finalize()
	m.SetSizeScale(2)
	m.Render()
	assert.Equal(t, math.Scale(2, 2, 2).Mul(math.Translate(math.Vec3{X: 1})), p.dev.Matrices[p.dev.Uniforms["m_matrix"]])

	m.SetSizeScaleXY(3, 4)
	assert.Equal(t, math.Scale(3, 4, 1).Mul(math.Translate(math.Vec3{X: 1})), m.ViewMatrix())
}

func TestVertexMaxMins(t *testing.T) {
	m := NewDetached(math.Vec3{}, unitTriangle)
	m.Finalize()

	e, err := m.VertexMaxMins()
	require.NoError(t, err)
	assert.Equal(t, [3]float32{0, 0, 0}, e.PositionMin)
	assert.Equal(t, [3]float32{1, 1, 0}, e.PositionMax)
	assert.Equal(t, uint32(2), e.IndexMax)

	m.Builder().Normals = m.Builder().Normals[:3]
	_, err = m.VertexMaxMins()
	assert.ErrorIs(t, err, mesh.ErrBufferMismatch)
}

func TestSetSeedAfterFinalizeRebuilds(t *testing.T) {
	cone := GeometryFunc(func(b *mesh.Builder) {
		b.Cone(math.Vec3{}, math.Vec3{Z: 1}, 0.1, colour.Green, 0.2, 8)
	})
	p := newParent()
	m := New(p, math.Vec3{}, cone)
	m.Finalize()
	m.SetSeed(5)
	require.NotEmpty(t, m.Indices())
	require.NoError(t, m.Builder().Check())

	m.Render()
	require.Len(t, p.dev.Draws, 1)
	assert.Equal(t, int32(len(m.Indices())), p.dev.Draws[0].Count)

	ref := New(newParent(), math.Vec3{}, cone)
	ref.SetSeed(5)
	ref.Finalize()
	assert.Equal(t, ref.Positions(), m.Positions())
}
