// Package mesh builds triangulated geometry for visual models.
//
// A Builder owns four parallel CPU-side buffers (positions, normals,
// colours, indices) and an index cursor. Every primitive appends its
// vertices and triangles and advances the cursor by exactly the number of
// vertices it created, so many primitives can share one contiguous mesh.
package mesh

import (
	"errors"
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"golang.org/x/exp/rand"

	"github.com/Faultbox/sciviz/pkg/math"
)

var (
	// ErrBufferMismatch is returned when the position, normal and colour
	// buffers do not hold the same number of floats.
	ErrBufferMismatch = errors.New("mesh: vertex buffers differ in length")
	// ErrIndexOutOfRange is returned when an index refers past the last vertex.
	ErrIndexOutOfRange = errors.New("mesh: index out of range")
	// ErrCursorMismatch is returned when the cursor disagrees with the vertex count.
	ErrCursorMismatch = errors.New("mesh: index cursor does not match vertex count")
)

// Builder accumulates vertex attribute and index buffers.
type Builder struct {
	Positions []float32
	Normals   []float32
	Colors    []float32
	Indices   []uint32

	// Idx is the index cursor: the index the next appended vertex will take.
	Idx uint32

	rng *rand.Rand
}

// NewBuilder returns an empty builder. Primitives that pick a random
// orientation are not reproducible across runs; use NewSeededBuilder or the
// Oriented* primitives where repeatable output matters.
func NewBuilder() *Builder {
	return NewSeededBuilder(uint64(time.Now().UnixNano()))
}

// NewSeededBuilder returns an empty builder whose random orientations are
// drawn from a source seeded with seed.
func NewSeededBuilder(seed uint64) *Builder {
	return &Builder{rng: rand.New(rand.NewSource(seed))}
}

// Reset clears all buffers and the cursor, keeping allocated capacity.
func (b *Builder) Reset() {
	b.Positions = b.Positions[:0]
	b.Normals = b.Normals[:0]
	b.Colors = b.Colors[:0]
	b.Indices = b.Indices[:0]
	b.Idx = 0
}

// Reserve grows buffer capacity for n more vertices (and 6n indices).
func (b *Builder) Reserve(n int) {
	b.Positions = grow(b.Positions, 3*n)
	b.Normals = grow(b.Normals, 3*n)
	b.Colors = grow(b.Colors, 3*n)
	if cap(b.Indices)-len(b.Indices) < 6*n {
		idx := make([]uint32, len(b.Indices), len(b.Indices)+6*n)
		copy(idx, b.Indices)
		b.Indices = idx
	}
}

func grow(s []float32, n int) []float32 {
	if cap(s)-len(s) >= n {
		return s
	}
	out := make([]float32, len(s), len(s)+n)
	copy(out, s)
	return out
}

// VertexCount returns the number of vertices in the position buffer.
func (b *Builder) VertexCount() int {
	return len(b.Positions) / 3
}

// Check verifies the buffer invariants: equal attribute lengths, whole
// triangles, in-range indices and a cursor equal to the vertex count.
func (b *Builder) Check() error {
	if len(b.Positions) != len(b.Normals) || len(b.Positions) != len(b.Colors) || len(b.Positions)%3 != 0 {
		return fmt.Errorf("%w: positions=%d normals=%d colors=%d",
			ErrBufferMismatch, len(b.Positions), len(b.Normals), len(b.Colors))
	}
	if len(b.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a whole number of triangles", ErrIndexOutOfRange, len(b.Indices))
	}
	n := uint32(b.VertexCount())
	for i, idx := range b.Indices {
		if idx >= n {
			return fmt.Errorf("%w: indices[%d]=%d, vertex count %d", ErrIndexOutOfRange, i, idx, n)
		}
	}
	if b.Idx != n {
		return fmt.Errorf("%w: cursor %d, vertex count %d", ErrCursorMismatch, b.Idx, n)
	}
	return nil
}

// Extents holds per-axis maxima and minima of the vertex attribute buffers
// and the index buffer. Minima start at +MaxFloat32 and maxima at
// -MaxFloat32, so an empty mesh reports inverted ranges.
type Extents struct {
	PositionMin, PositionMax [3]float32
	NormalMin, NormalMax     [3]float32
	ColorMin, ColorMax       [3]float32
	IndexMin, IndexMax       uint32
}

// Extents computes the maxima and minima of every buffer. The attribute
// buffers must be of equal length.
func (b *Builder) Extents() (Extents, error) {
	e := Extents{IndexMin: ^uint32(0)}
	for _, idx := range b.Indices {
		e.IndexMax = max(e.IndexMax, idx)
		e.IndexMin = min(e.IndexMin, idx)
	}

	if len(b.Positions) != len(b.Colors) || len(b.Positions) != len(b.Normals) {
		return Extents{}, fmt.Errorf("%w: positions=%d normals=%d colors=%d",
			ErrBufferMismatch, len(b.Positions), len(b.Normals), len(b.Colors))
	}

	for i := 0; i < 3; i++ {
		e.PositionMin[i], e.NormalMin[i], e.ColorMin[i] = math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32
		e.PositionMax[i], e.NormalMax[i], e.ColorMax[i] = -math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32
	}
	for i := 0; i+2 < len(b.Positions); i += 3 {
		for k := 0; k < 3; k++ {
			e.PositionMax[k] = max(e.PositionMax[k], b.Positions[i+k])
			e.PositionMin[k] = min(e.PositionMin[k], b.Positions[i+k])
			e.NormalMax[k] = max(e.NormalMax[k], b.Normals[i+k])
			e.NormalMin[k] = min(e.NormalMin[k], b.Normals[i+k])
			e.ColorMax[k] = max(e.ColorMax[k], b.Colors[i+k])
			e.ColorMin[k] = min(e.ColorMin[k], b.Colors[i+k])
		}
	}
	return e, nil
}

// push appends one vertex. It does not move the cursor.
func (b *Builder) push(p, n math.Vec3, col [3]float32) {
	b.Positions = append(b.Positions, p.X, p.Y, p.Z)
	b.Normals = append(b.Normals, n.X, n.Y, n.Z)
	b.Colors = append(b.Colors, col[0], col[1], col[2])
}

func (b *Builder) tri(a, c, d uint32) {
	b.Indices = append(b.Indices, a, c, d)
}

// fan closes a ring of n vertices starting at ringStart around centre.
// The closing triangle references ringStart, not ringStart+n.
func (b *Builder) fan(centre, ringStart, n uint32) {
	for j := uint32(0); j < n; j++ {
		next := j + 1
		if j == n-1 {
			next = 0
		}
		b.tri(centre, ringStart+j, ringStart+next)
	}
}

// band stitches the ring at ringStart to the following ring of n vertices
// with two triangles per segment.
func (b *Builder) band(ringStart, n uint32) {
	end := ringStart + n
	for j := uint32(0); j < n; j++ {
		next := j + 1
		if j == n-1 {
			next = 0
		}
		b.tri(ringStart+j, ringStart+next, end+j)
		b.tri(end+j, end+next, ringStart+next)
	}
}

// cappedBands indexes a capped solid laid out as: centre vertex at base,
// rings of n vertices each, far centre vertex last.
func (b *Builder) cappedBands(base, n, rings uint32) {
	nverts := rings*n + 2
	b.fan(base, base+1, n)
	for l := uint32(0); l < rings-1; l++ {
		b.band(base+1+l*n, n)
	}
	b.fan(base+nverts-1, base+1+(rings-1)*n, n)
}

// inPlaneAxes returns two unit vectors spanning the plane normal to v,
// derived from a random helper vector.
func (b *Builder) inPlaneAxes(v math.Vec3) (math.Vec3, math.Vec3) {
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	inplane := math.RandomVec3(b.rng).Cross(v)
	inplane.Renormalize()
	return inplane, v.Cross(inplane)
}

// circle returns the radial vector of length r at angle t in the plane of ux and uy.
func circle(ux, uy math.Vec3, t, r float32) math.Vec3 {
	s, c := math32.Sincos(t)
	return ux.Scale(s * r).Add(uy.Scale(c * r))
}

func segmentAngle(j, segments int) float32 {
	return float32(j) * math.TwoPi / float32(segments)
}
