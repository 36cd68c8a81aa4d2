// Package gputest provides a gpu.Device that records calls instead of
// talking to a driver.
package gputest

import (
	"fmt"

	"github.com/Faultbox/sciviz/internal/engine/gpu"
	"github.com/Faultbox/sciviz/pkg/math"
)

// Draw is one recorded DrawTriangles call with the state it ran under.
type Draw struct {
	Program uint32
	VAO     uint32
	Texture uint32
	Count   int32
}

// Device records every call. Handles are handed out from a single counter
// starting at 1, so 0 keeps its GL meaning of "none".
type Device struct {
	// Uniforms maps uniform names to locations for every program. Names
	// not present resolve to gpu.NoUniform.
	Uniforms map[string]int32

	Calls []string
	Draws []Draw

	Floats   map[int32]float32
	Ints     map[int32]int32
	Vec3s    map[int32][3]float32
	Matrices map[int32]math.Mat4

	// Contents of every buffer object as last uploaded.
	FloatData map[uint32][]float32
	IndexData map[uint32][]uint32

	Textures map[uint32][2]int
	Attribs  map[uint32]int32

	// Every handle deleted and every program made current, in order.
	Deleted  []uint32
	Programs []uint32

	next    uint32
	program uint32
	vao     uint32
	array   uint32
	element uint32
	texture uint32
	live    map[uint32]string
}

// New returns a device that resolves the standard model and label uniforms.
func New() *Device {
	return &Device{
		Uniforms: map[string]int32{
			"alpha":    0,
			"v_matrix": 1,
			"m_matrix": 2,
			"p_matrix": 3,
			"text":     4,
			"colour":   5,
		},
		Floats:    map[int32]float32{},
		Ints:      map[int32]int32{},
		Vec3s:     map[int32][3]float32{},
		Matrices:  map[int32]math.Mat4{},
		FloatData: map[uint32][]float32{},
		IndexData: map[uint32][]uint32{},
		Textures:  map[uint32][2]int{},
		Attribs:   map[uint32]int32{},
		live:      map[uint32]string{},
	}
}

func (d *Device) record(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Device) gen(kind string) uint32 {
	d.next++
	d.live[d.next] = kind
	d.record("Gen%s %d", kind, d.next)
	return d.next
}

func (d *Device) del(kind string, h uint32) {
	d.record("Delete%s %d", kind, h)
	delete(d.live, h)
	d.Deleted = append(d.Deleted, h)
}

// Live returns the number of handles not yet deleted.
func (d *Device) Live() int { return len(d.live) }

// Count returns how many recorded calls start with prefix.
func (d *Device) Count(prefix string) int {
	n := 0
	for _, c := range d.Calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls and draws but keeps handles and uploads.
func (d *Device) Reset() {
	d.Calls = nil
	d.Draws = nil
}

func (d *Device) GenVertexArray() uint32 { return d.gen("VertexArray") }
func (d *Device) DeleteVertexArray(vao uint32) { d.del("VertexArray", vao) }
func (d *Device) GenBuffer() uint32 { return d.gen("Buffer") }
func (d *Device) DeleteBuffer(buf uint32) { d.del("Buffer", buf) }
func (d *Device) GenTexture() uint32 { return d.gen("Texture") }
func (d *Device) DeleteTexture(tex uint32) { d.del("Texture", tex) }

func (d *Device) BindVertexArray(vao uint32) {
	d.record("BindVertexArray %d", vao)
	d.vao = vao
}

func (d *Device) BindBuffer(target gpu.Target, buf uint32) {
	d.record("BindBuffer %d %d", target, buf)
	if target == gpu.ElementArrayBuffer {
		d.element = buf
	} else {
		d.array = buf
	}
}

func (d *Device) BufferFloats(target gpu.Target, data []float32) {
	d.record("BufferFloats %d", len(data))
	buf := d.array
	if target == gpu.ElementArrayBuffer {
		buf = d.element
	}
	d.FloatData[buf] = append([]float32(nil), data...)
}

func (d *Device) BufferIndices(data []uint32) {
	d.record("BufferIndices %d", len(data))
	d.IndexData[d.element] = append([]uint32(nil), data...)
}

func (d *Device) VertexAttrib(loc uint32, size int32) {
	d.record("VertexAttrib %d %d", loc, size)
	d.Attribs[loc] = size
}

func (d *Device) CurrentProgram() uint32 { return d.program }

func (d *Device) UseProgram(program uint32) {
	d.record("UseProgram %d", program)
	d.program = program
	d.Programs = append(d.Programs, program)
}

func (d *Device) UniformLocation(_ uint32, name string) int32 {
	if loc, ok := d.Uniforms[name]; ok {
		return loc
	}
	return gpu.NoUniform
}

func (d *Device) Uniform1f(loc int32, v float32) {
	d.record("Uniform1f %d", loc)
	d.Floats[loc] = v
}

func (d *Device) Uniform1i(loc int32, v int32) {
	d.record("Uniform1i %d", loc)
	d.Ints[loc] = v
}

func (d *Device) Uniform3f(loc int32, v [3]float32) {
	d.record("Uniform3f %d", loc)
	d.Vec3s[loc] = v
}

func (d *Device) UniformMatrix4(loc int32, m math.Mat4) {
	d.record("UniformMatrix4 %d", loc)
	d.Matrices[loc] = m
}

func (d *Device) BindTexture(tex uint32) {
	d.record("BindTexture %d", tex)
	d.texture = tex
}

func (d *Device) TexImageAlpha(width, height int, pix []byte) {
	d.record("TexImageAlpha %dx%d", width, height)
	d.Textures[d.texture] = [2]int{width, height}
}

func (d *Device) DrawTriangles(count int32) {
	d.record("DrawTriangles %d", count)
	d.Draws = append(d.Draws, Draw{Program: d.program, VAO: d.vao, Texture: d.texture, Count: count})
}

var _ gpu.Device = (*Device)(nil)
