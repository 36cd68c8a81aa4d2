package gpu

import (
	"go.uber.org/zap"

	"github.com/Faultbox/sciviz/internal/logger"
)

// MeshBuffers owns one vertex array and the four buffer objects behind a
// model: positions, normals, colours and indices. Handles are allocated
// once by NewMeshBuffers and re-filled by every Upload.
type MeshBuffers struct {
	dev        Device
	vao        uint32
	positions  uint32
	normals    uint32
	colours    uint32
	indices    uint32
	indexCount int32
	released   bool
}

// NewMeshBuffers allocates the vertex array and buffer objects.
func NewMeshBuffers(dev Device) *MeshBuffers {
	mb := &MeshBuffers{
		dev:       dev,
		vao:       dev.GenVertexArray(),
		indices:   dev.GenBuffer(),
		positions: dev.GenBuffer(),
		normals:   dev.GenBuffer(),
		colours:   dev.GenBuffer(),
	}
	logger.Named("gpu").Debug("mesh buffers allocated", zap.Uint32("vao", mb.vao))
	return mb
}

// Upload replaces the contents of all four buffers.
func (mb *MeshBuffers) Upload(positions, normals, colours []float32, indices []uint32) {
	mb.dev.BindVertexArray(mb.vao)

	mb.dev.BindBuffer(ElementArrayBuffer, mb.indices)
	mb.dev.BufferIndices(indices)
	mb.indexCount = int32(len(indices))

	mb.setupVBO(mb.positions, positions, PositionLocation)
	mb.setupVBO(mb.normals, normals, NormalLocation)
	mb.setupVBO(mb.colours, colours, ColourLocation)

	mb.dev.BindVertexArray(0)
}

func (mb *MeshBuffers) setupVBO(buf uint32, data []float32, loc uint32) {
	mb.dev.BindBuffer(ArrayBuffer, buf)
	mb.dev.BufferFloats(ArrayBuffer, data)
	mb.dev.VertexAttrib(loc, 3)
}

// VAO returns the vertex array handle.
func (mb *MeshBuffers) VAO() uint32 { return mb.vao }

// IndexCount returns the number of indices in the last upload.
func (mb *MeshBuffers) IndexCount() int32 { return mb.indexCount }

// Bind makes the vertex array current.
func (mb *MeshBuffers) Bind() { mb.dev.BindVertexArray(mb.vao) }

// Unbind clears the current vertex array.
func (mb *MeshBuffers) Unbind() { mb.dev.BindVertexArray(0) }

// Draw issues the indexed draw for the last upload. The vertex array must
// be bound.
func (mb *MeshBuffers) Draw() {
	if mb.indexCount > 0 {
		mb.dev.DrawTriangles(mb.indexCount)
	}
}

// Release deletes the handles. Safe to call more than once.
func (mb *MeshBuffers) Release() {
	if mb.released {
		return
	}
	mb.released = true
	for _, b := range [4]uint32{mb.indices, mb.positions, mb.normals, mb.colours} {
		mb.dev.DeleteBuffer(b)
	}
	mb.dev.DeleteVertexArray(mb.vao)
	logger.Named("gpu").Debug("mesh buffers released", zap.Uint32("vao", mb.vao))
}
