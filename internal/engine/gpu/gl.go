package gpu

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/sciviz/internal/logger"
	"github.com/Faultbox/sciviz/pkg/math"
)

// GL is the Device backed by an OpenGL 4.1 core context.
type GL struct {
	clear [3]float32
}

// NewGL loads the GL function pointers and sets the default pipeline state.
// IMPORTANT: Must be called AFTER the OpenGL context is created and current.
func NewGL(clearColour [3]float32) (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.ClearColor(clearColour[0], clearColour[1], clearColour[2], 1.0)

	return &GL{clear: clearColour}, nil
}

// Resize sets the viewport.
func (g *GL) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
}

// Begin clears colour and depth for a new frame.
func (g *GL) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func glTarget(t Target) uint32 {
	if t == ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func (g *GL) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (g *GL) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (g *GL) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (g *GL) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (g *GL) DeleteBuffer(buf uint32) { gl.DeleteBuffers(1, &buf) }

func (g *GL) BindBuffer(target Target, buf uint32) { gl.BindBuffer(glTarget(target), buf) }

func (g *GL) BufferFloats(target Target, data []float32) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	gl.BufferData(glTarget(target), len(data)*4, ptr, gl.STATIC_DRAW)
}

func (g *GL) BufferIndices(data []uint32) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, ptr, gl.STATIC_DRAW)
}

func (g *GL) VertexAttrib(loc uint32, size int32) {
	gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(loc)
}

func (g *GL) CurrentProgram() uint32 {
	var prog int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &prog)
	return uint32(prog)
}

func (g *GL) UseProgram(program uint32) { gl.UseProgram(program) }

func (g *GL) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (g *GL) Uniform1f(loc int32, v float32) { gl.Uniform1f(loc, v) }

func (g *GL) Uniform1i(loc int32, v int32) { gl.Uniform1i(loc, v) }

func (g *GL) Uniform3f(loc int32, v [3]float32) { gl.Uniform3f(loc, v[0], v[1], v[2]) }

func (g *GL) UniformMatrix4(loc int32, m math.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
}

func (g *GL) GenTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (g *GL) DeleteTexture(tex uint32) { gl.DeleteTextures(1, &tex) }

func (g *GL) BindTexture(tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

func (g *GL) TexImageAlpha(width, height int, pix []byte) {
	var ptr unsafe.Pointer
	if len(pix) > 0 {
		ptr = unsafe.Pointer(&pix[0])
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(width), int32(height), 0, gl.RED, gl.UNSIGNED_BYTE, ptr)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

func (g *GL) DrawTriangles(count int32) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, count, gl.UNSIGNED_INT, 0)
}
