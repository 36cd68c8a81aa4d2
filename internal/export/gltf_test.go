package export

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sciviz/internal/engine/mesh"
	"github.com/Faultbox/sciviz/pkg/math"
)

type built struct {
	b      *mesh.Builder
	offset math.Vec3
}

func (s built) VertexMaxMins() (mesh.Extents, error) { return s.b.Extents() }

func (s built) Positions() []float32 { return s.b.Positions }

func (s built) Normals() []float32 { return s.b.Normals }

func (s built) Colors() []float32 { return s.b.Colors }

func (s built) Indices() []uint32 { return s.b.Indices }

func (s built) ViewOffset() math.Vec3 { return s.offset }

func triangleAt(offset math.Vec3) built {
	b := mesh.NewSeededBuilder(1)
	b.Triangle(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Y: 1}, [3]float32{1, 0, 0})
	return built{b: b, offset: offset}
}

func TestDocumentAppliesViewOffset(t *testing.T) {
	doc, err := Document(triangleAt(math.Vec3{X: 2, Z: -1}))
	require.NoError(t, err)
	require.Len(t, doc.Meshes, 1)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, []uint32{0}, doc.Scenes[0].Nodes)
	assert.Equal(t, uint32(0), *doc.Nodes[0].Mesh)

	prim := doc.Meshes[0].Primitives[0]
	acc := doc.Accessors[prim.Attributes[gltf.POSITION]]
	pos, err := modeler.ReadPosition(doc, acc, nil)
	require.NoError(t, err)
	assert.Equal(t, [][3]float32{{2, 0, -1}, {3, 0, -1}, {2, 1, -1}}, pos)
	assert.Equal(t, []float32{2, 0, -1}, acc.Min)
	assert.Equal(t, []float32{3, 1, -1}, acc.Max)

	idx, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, idx)
}

func TestDocumentSkipsEmptyModels(t *testing.T) {
	empty := built{b: mesh.NewSeededBuilder(1)}
	doc, err := Document(empty, triangleAt(math.Vec3{}), empty)
	require.NoError(t, err)
	assert.Len(t, doc.Meshes, 1)
	assert.Equal(t, "model1", doc.Meshes[0].Name)

	_, err = Document(empty)
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestDocumentRejectsMismatchedBuffers(t *testing.T) {
	src := triangleAt(math.Vec3{})
	src.b.Colors = src.b.Colors[:3]
	_, err := Document(src)
	assert.ErrorIs(t, err, mesh.ErrBufferMismatch)
}

func TestWriteByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"scene.gltf", "scene.glb"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Write(path, triangleAt(math.Vec3{})), name)

		doc, err := gltf.Open(path)
		require.NoError(t, err, name)
		assert.Len(t, doc.Meshes, 1, name)
	}

	err := Write(filepath.Join(dir, "scene.obj"), triangleAt(math.Vec3{}))
	assert.ErrorIs(t, err, ErrFormat)
}
