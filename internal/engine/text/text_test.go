package text

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sciviz/internal/engine/gpu/gputest"
	"github.com/Faultbox/sciviz/pkg/math"
)

func assertVec(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, 1e-5, "y of %v", got)
	assert.InDelta(t, want.Z, got.Z, 1e-5, "z of %v", got)
}

func TestGeometryDerived(t *testing.T) {
	g := Geometry{TotalAdvance: 4, MaxBearingY: 3, MaxDropY: 1}
	assert.Equal(t, float32(4), g.Width())
	assert.Equal(t, float32(4), g.Height())
	assert.Equal(t, float32(2), g.HalfWidth())
	assert.Equal(t, float32(2), g.HalfHeight())
}

func TestBasicFaceMeasure(t *testing.T) {
	f, err := LoadFace(Basic, 24)
	require.NoError(t, err)

	g := f.Measure("abc")
	assert.Equal(t, float32(21), g.TotalAdvance, "7px per glyph")
	assert.Greater(t, g.MaxBearingY, float32(0))
}

func TestOpenTypeFaceMeasure(t *testing.T) {
	for _, fnt := range []Font{GoRegular, GoMono} {
		f, err := LoadFace(fnt, 32)
		require.NoError(t, err, fnt.String())

		narrow := f.Measure("iiii")
		wide := f.Measure("WWWW")
		if fnt == GoMono {
			assert.Equal(t, narrow.TotalAdvance, wide.TotalAdvance)
		} else {
			assert.Less(t, narrow.TotalAdvance, wide.TotalAdvance)
		}

		g := f.Measure("gy")
		assert.Greater(t, g.MaxDropY, float32(0), "descenders drop below the baseline")
	}
}

func TestLoadFaceCachesAndRejects(t *testing.T) {
	a, err := LoadFace(GoRegular, 20)
	require.NoError(t, err)
	b, err := LoadFace(GoRegular, 20)
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = LoadFace(GoRegular, 0)
	assert.Error(t, err)
}

func TestRasterizeCoversGlyphs(t *testing.T) {
	f, err := LoadFace(GoRegular, 24)
	require.NoError(t, err)

	img, g := f.Rasterize("Hi")
	assert.Equal(t, int(g.TotalAdvance), img.Rect.Dx())
	assert.Equal(t, int(g.Height()), img.Rect.Dy())

	var inked int
	for _, p := range img.Pix {
		if p > 0 {
			inked++
		}
	}
	assert.Greater(t, inked, 0)

	img, _ = f.Rasterize("")
	assert.Equal(t, 1, img.Rect.Dx())
}

func TestParseFont(t *testing.T) {
	f, err := ParseFont("GoMono")
	require.NoError(t, err)
	assert.Equal(t, GoMono, f)
	_, err = ParseFont("comic")
	assert.Error(t, err)
}

func TestLabelSetupScalesToModelUnits(t *testing.T) {
	feat := DefaultFeatures()
	feat.FontSize = 0.5
	feat.FontRes = 48

	l, err := NewLabel(gputest.New(), 7, feat)
	require.NoError(t, err)

	px := l.face.Measure("label")
	g := l.Setup("label", math.Vec3{X: 1, Y: 2}, [3]float32{0, 1, 0})

	assert.InDelta(t, px.TotalAdvance*0.5/48, g.Width(), 1e-6)
	assert.Equal(t, g, l.Geometry())
	assert.Equal(t, l.Measure("label"), g)
	assert.Equal(t, math.Vec3{X: 1, Y: 2}, l.Offset())
	assertVec(t, math.Vec3{X: 1, Y: 2}, l.Anchor())
}

func TestLabelRenderUploadsOnce(t *testing.T) {
	dev := gputest.New()
	l, err := NewLabel(dev, 9, DefaultFeatures())
	require.NoError(t, err)

	l.Render()
	assert.Empty(t, dev.Calls, "empty label draws nothing")

	l.Setup("x", math.Vec3{}, [3]float32{1, 0, 0})
	l.Render()
	l.Render()

	assert.Equal(t, 1, dev.Count("GenVertexArray"))
	assert.Equal(t, 1, dev.Count("GenTexture"))
	assert.Equal(t, 1, dev.Count("TexImageAlpha"))
	require.Len(t, dev.Draws, 2)
	assert.Equal(t, uint32(9), dev.Draws[0].Program)
	assert.Equal(t, int32(6), dev.Draws[0].Count)
	assert.NotZero(t, dev.Draws[0].Texture)
	assert.Equal(t, [3]float32{1, 0, 0}, dev.Vec3s[dev.Uniforms["colour"]])

	// new text re-uploads into the same handles
	l.Setup("yy", math.Vec3{}, [3]float32{1, 0, 0})
	l.Render()
	assert.Equal(t, 1, dev.Count("GenVertexArray"))
	assert.Equal(t, 2, dev.Count("TexImageAlpha"))

	l.Close()
	l.Close()
	assert.Equal(t, 0, dev.Live())
}

func TestLabelCompensatedRotationKeepsOrientation(t *testing.T) {
	l, err := NewLabel(gputest.New(), 1, DefaultFeatures())
	require.NoError(t, err)

	parentOffset := math.Vec3{X: 2}
	local := math.Vec3{Y: 1}
	l.Setup("n", local.Add(parentOffset), [3]float32{})

	r := math.QuatFromAxisAngle(math.UnitZ, math32.Pi/2)
	l.SetPivot(parentOffset)
	l.SetSceneRotation(r)
	l.SetViewRotation(r.Invert())

	// anchor turns about the parent offset
	assertVec(t, parentOffset.Add(r.Rotate(local)), l.Anchor())

	// glyph axes stay put
	m := l.SceneMatrix().Mul(l.ViewMatrix())
	assertVec(t, math.UnitX, m.TransformDirection(math.UnitX))
	assertVec(t, math.UnitY, m.TransformDirection(math.UnitY))
}

func TestLabelSceneFrameComposes(t *testing.T) {
	l, err := NewLabel(gputest.New(), 1, DefaultFeatures())
	require.NoError(t, err)

	l.SetSceneMatrix(math.Scale(2, 2, 2))
	assert.Equal(t, math.Scale(2, 2, 2), l.SceneMatrix())

	l.SetSceneTranslation(math.Vec3{Z: -3})
	assert.Equal(t, math.Scale(2, 2, 2).Mul(math.Translate(math.Vec3{Z: -3})), l.SceneMatrix())

	// a new frame keeps the label's own translation
	l.SetSceneMatrix(math.Identity())
	assert.Equal(t, math.Translate(math.Vec3{Z: -3}), l.SceneMatrix())
}
