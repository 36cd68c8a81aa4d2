// Package gpu is the boundary between visual models and the graphics API.
//
// Models talk to a Device rather than to OpenGL directly. GL implements it
// on top of go-gl; gputest provides a recording fake for tests that run
// without a context. All calls must be made on the thread that owns the
// context.
package gpu

import (
	"github.com/Faultbox/sciviz/pkg/math"
)

// Target selects a buffer binding point.
type Target uint32

const (
	ArrayBuffer Target = iota
	ElementArrayBuffer
)

// Attribute locations fixed by the layout qualifiers of the default shaders.
const (
	PositionLocation uint32 = 0
	NormalLocation   uint32 = 1
	ColourLocation   uint32 = 2

	// label quads reuse slots 0 and 1 for position and texture coordinate
	TexCoordLocation uint32 = 1
)

// NoUniform is the location returned for a uniform the program does not use.
const NoUniform int32 = -1

// Device is the subset of the graphics API used by visual models and labels.
type Device interface {
	GenVertexArray() uint32
	DeleteVertexArray(vao uint32)
	BindVertexArray(vao uint32)

	GenBuffer() uint32
	DeleteBuffer(buf uint32)
	BindBuffer(target Target, buf uint32)
	BufferFloats(target Target, data []float32)
	BufferIndices(data []uint32)
	// VertexAttrib points attribute loc at the bound array buffer with size
	// tightly packed floats per vertex and enables it.
	VertexAttrib(loc uint32, size int32)

	CurrentProgram() uint32
	UseProgram(program uint32)
	UniformLocation(program uint32, name string) int32
	Uniform1f(loc int32, v float32)
	Uniform1i(loc int32, v int32)
	Uniform3f(loc int32, v [3]float32)
	UniformMatrix4(loc int32, m math.Mat4)

	GenTexture() uint32
	DeleteTexture(tex uint32)
	BindTexture(tex uint32)
	// TexImageAlpha uploads a single-channel 8-bit image to the bound texture.
	TexImageAlpha(width, height int, pix []byte)

	DrawTriangles(count int32)
}
