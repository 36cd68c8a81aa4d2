package text

import (
	"go.uber.org/zap"

	"github.com/Faultbox/sciviz/internal/engine/gpu"
	"github.com/Faultbox/sciviz/internal/engine/transform"
	"github.com/Faultbox/sciviz/internal/logger"
	"github.com/Faultbox/sciviz/pkg/math"
)

// Label is a line of text drawn as one textured quad in the plane z=0 of
// its view transform, with its own scene transform.
//
// The view matrix is uploaded as m_matrix and the scene matrix as
// v_matrix, matching the visual model program layout.
type Label struct {
	dev      gpu.Device
	prog     uint32
	features Features
	face     *Face

	text   string
	colour [3]float32
	alpha  float32
	geom   Geometry

	view  transform.Transform
	scene transform.Transform
	// frame is the enclosing scene matrix set by the parent; the label's
	// own scene transform applies inside it.
	frame math.Mat4
	// pivot is the point the scene rotation turns about.
	pivot       math.Vec3
	sceneMatrix math.Mat4

	positions []float32
	texCoords []float32
	pix       []byte
	pixW      int
	pixH      int

	vao, posBuf, uvBuf, idxBuf, tex uint32
	uploadPending                   bool
}

// NewLabel returns an empty label drawn with the text program prog.
func NewLabel(dev gpu.Device, prog uint32, f Features) (*Label, error) {
	face, err := LoadFace(f.Font, f.FontRes)
	if err != nil {
		return nil, err
	}
	l := &Label{
		dev:         dev,
		prog:        prog,
		features:    f,
		face:        face,
		alpha:       1,
		colour:      f.Colour,
		view:        transform.New(),
		scene:       transform.New(),
		frame:       math.Identity(),
		sceneMatrix: math.Identity(),
	}
	return l, nil
}

// Measure returns the geometry s would have with this label's features.
func (l *Label) Measure(s string) Geometry {
	return l.face.Measure(s).scaled(l.scaleFactor())
}

func (l *Label) scaleFactor() float32 {
	if l.features.Font == Basic {
		// bitmap face has a fixed pixel size
		return l.features.FontSize / float32(l.face.Res())
	}
	return l.features.scale()
}

// Setup rasterises s and places its baseline start at offset.
func (l *Label) Setup(s string, offset math.Vec3, col [3]float32) Geometry {
	l.text = s
	l.colour = col
	l.view.SetTranslation(offset)

	img, px := l.face.Rasterize(s)
	l.pix = img.Pix
	l.pixW = img.Rect.Dx()
	l.pixH = img.Rect.Dy()
	l.geom = px.scaled(l.scaleFactor())

	// quad spans the baseline from -drop to +bearing
	w, top, bot := l.geom.Width(), l.geom.MaxBearingY, -l.geom.MaxDropY
	l.positions = []float32{
		0, bot, 0,
		w, bot, 0,
		w, top, 0,
		0, top, 0,
	}
	// image row 0 is the top of the text
	l.texCoords = []float32{
		0, 1,
		1, 1,
		1, 0,
		0, 0,
	}
	l.uploadPending = true
	return l.geom
}

// Text returns the current string.
func (l *Label) Text() string { return l.text }

// Geometry returns the extent of the current string in model units.
func (l *Label) Geometry() Geometry { return l.geom }

// Colour returns the text colour.
func (l *Label) Colour() [3]float32 { return l.colour }

// SetAlpha sets the label opacity.
func (l *Label) SetAlpha(a float32) { l.alpha = a }

// Offset returns the label's placement in its parent's model space.
func (l *Label) Offset() math.Vec3 { return l.view.Offset() }

// ViewMatrix is uploaded as m_matrix.
func (l *Label) ViewMatrix() math.Mat4 { return l.view.Matrix() }

// SceneMatrix is uploaded as v_matrix.
func (l *Label) SceneMatrix() math.Mat4 { return l.sceneMatrix }

// Anchor returns where the start of the baseline lands after both
// transforms.
func (l *Label) Anchor() math.Vec3 {
	return l.sceneMatrix.Mul(l.view.Matrix()).TransformPoint(math.Vec3{})
}

func (l *Label) recomputeScene() {
	own := l.scene.Matrix()
	if l.pivot != (math.Vec3{}) {
		own = math.Translate(l.scene.Offset().Add(l.pivot)).
			Mul(l.scene.Rotation().ToMat4()).
			Mul(math.Translate(l.pivot.Neg()))
	}
	l.sceneMatrix = l.frame.Mul(own)
}

// SetPivot sets the point the scene rotation turns about.
func (l *Label) SetPivot(p math.Vec3) {
	l.pivot = p
	l.recomputeScene()
}

func (l *Label) SetSceneTranslation(v math.Vec3) {
	l.scene.SetTranslation(v)
	l.recomputeScene()
}

func (l *Label) AddSceneTranslation(v math.Vec3) {
	l.scene.AddTranslation(v)
	l.recomputeScene()
}

func (l *Label) SetSceneRotation(r math.Quat) {
	l.scene.SetRotation(r)
	l.recomputeScene()
}

func (l *Label) AddSceneRotation(r math.Quat) {
	l.scene.AddRotation(r)
	l.recomputeScene()
}

// SetSceneMatrix sets the enclosing frame of the label's scene transform.
func (l *Label) SetSceneMatrix(m math.Mat4) {
	l.frame = m
	l.recomputeScene()
}

func (l *Label) SetViewRotation(r math.Quat) { l.view.SetRotation(r) }

func (l *Label) AddViewRotation(r math.Quat) { l.view.AddRotation(r) }

func (l *Label) SetViewTranslation(v math.Vec3) { l.view.SetTranslation(v) }

func (l *Label) upload() {
	if l.vao == 0 {
		l.vao = l.dev.GenVertexArray()
		l.posBuf = l.dev.GenBuffer()
		l.uvBuf = l.dev.GenBuffer()
		l.idxBuf = l.dev.GenBuffer()
		l.tex = l.dev.GenTexture()
	}
	l.dev.BindVertexArray(l.vao)
	l.dev.BindBuffer(gpu.ElementArrayBuffer, l.idxBuf)
	l.dev.BufferIndices([]uint32{0, 1, 2, 0, 2, 3})
	l.dev.BindBuffer(gpu.ArrayBuffer, l.posBuf)
	l.dev.BufferFloats(gpu.ArrayBuffer, l.positions)
	l.dev.VertexAttrib(gpu.PositionLocation, 3)
	l.dev.BindBuffer(gpu.ArrayBuffer, l.uvBuf)
	l.dev.BufferFloats(gpu.ArrayBuffer, l.texCoords)
	l.dev.VertexAttrib(gpu.TexCoordLocation, 2)
	l.dev.BindVertexArray(0)

	l.dev.BindTexture(l.tex)
	l.dev.TexImageAlpha(l.pixW, l.pixH, l.pix)
	l.dev.BindTexture(0)

	l.uploadPending = false
	logger.Named("text").Debug("label uploaded",
		zap.String("text", l.text), zap.Int("width", l.pixW), zap.Int("height", l.pixH))
}

// Render draws the label with its own program. The caller restores the
// previous program.
func (l *Label) Render() {
	if l.text == "" {
		return
	}
	if l.uploadPending {
		l.upload()
	}

	l.dev.UseProgram(l.prog)
	if loc := l.dev.UniformLocation(l.prog, "alpha"); loc != gpu.NoUniform {
		l.dev.Uniform1f(loc, l.alpha)
	}
	if loc := l.dev.UniformLocation(l.prog, "colour"); loc != gpu.NoUniform {
		l.dev.Uniform3f(loc, l.colour)
	}
	if loc := l.dev.UniformLocation(l.prog, "text"); loc != gpu.NoUniform {
		l.dev.Uniform1i(loc, 0)
	}
	if loc := l.dev.UniformLocation(l.prog, "v_matrix"); loc != gpu.NoUniform {
		l.dev.UniformMatrix4(loc, l.sceneMatrix)
	}
	if loc := l.dev.UniformLocation(l.prog, "m_matrix"); loc != gpu.NoUniform {
		l.dev.UniformMatrix4(loc, l.view.Matrix())
	}

	l.dev.BindTexture(l.tex)
	l.dev.BindVertexArray(l.vao)
	l.dev.DrawTriangles(6)
	l.dev.BindVertexArray(0)
	l.dev.BindTexture(0)
}

// Close releases the label's GPU handles.
func (l *Label) Close() {
	if l.vao == 0 {
		return
	}
	l.dev.DeleteBuffer(l.posBuf)
	l.dev.DeleteBuffer(l.uvBuf)
	l.dev.DeleteBuffer(l.idxBuf)
	l.dev.DeleteTexture(l.tex)
	l.dev.DeleteVertexArray(l.vao)
	l.vao = 0
}
