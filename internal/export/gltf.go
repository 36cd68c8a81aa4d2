// Package export writes visual model meshes to glTF files.
//
// Each model becomes one node with one triangle primitive carrying
// positions, normals, vertex colours and indices. Positions are written in
// scene units with the model's view offset applied, so a file opened in any
// glTF viewer shows the models where the scene placed them.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/sciviz/internal/engine/mesh"
	"github.com/Faultbox/sciviz/internal/logger"
	"github.com/Faultbox/sciviz/pkg/math"
)

var (
	ErrNothingToExport = errors.New("export: no model has any triangles")
	ErrFormat          = errors.New("export: unsupported file extension")
)

// Source is a built mesh. *visual.Model satisfies it.
type Source interface {
	VertexMaxMins() (mesh.Extents, error)
	Positions() []float32
	Normals() []float32
	Colors() []float32
	Indices() []uint32
	ViewOffset() math.Vec3
}

// Document builds a glTF document from srcs. Models without triangles are
// skipped.
func Document(srcs ...Source) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	for i, src := range srcs {
		ext, err := src.VertexMaxMins()
		if err != nil {
			return nil, fmt.Errorf("model %d: %w", i, err)
		}
		if len(src.Indices()) == 0 {
			continue
		}
		addMesh(doc, fmt.Sprintf("model%d", i), src, ext)
	}
	if len(doc.Meshes) == 0 {
		return nil, ErrNothingToExport
	}
	return doc, nil
}

func triples(data []float32, add math.Vec3) [][3]float32 {
	out := make([][3]float32, len(data)/3)
	for i := range out {
		out[i] = [3]float32{data[3*i] + add.X, data[3*i+1] + add.Y, data[3*i+2] + add.Z}
	}
	return out
}

func addMesh(doc *gltf.Document, name string, src Source, ext mesh.Extents) {
	off := src.ViewOffset()

	pos := modeler.WritePosition(doc, triples(src.Positions(), off))
	acc := doc.Accessors[pos]
	acc.Min = []float32{
		ext.PositionMin[0] + off.X,
		ext.PositionMin[1] + off.Y,
		ext.PositionMin[2] + off.Z,
	}
	acc.Max = []float32{
		ext.PositionMax[0] + off.X,
		ext.PositionMax[1] + off.Y,
		ext.PositionMax[2] + off.Z,
	}

	attrs := gltf.Attribute{
		gltf.POSITION: pos,
		gltf.NORMAL:   modeler.WriteNormal(doc, triples(src.Normals(), math.Vec3{})),
		gltf.COLOR_0:  modeler.WriteColor(doc, triples(src.Colors(), math.Vec3{})),
	}
	idx := modeler.WriteIndices(doc, src.Indices())

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: attrs,
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name: name,
		Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
}

// Write saves srcs to path. A .glb extension writes the binary container;
// .gltf writes JSON with embedded buffers.
func Write(path string, srcs ...Source) error {
	doc, err := Document(srcs...)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb":
		err = gltf.SaveBinary(doc, path)
	case ".gltf":
		err = gltf.Save(doc, path)
	default:
		return fmt.Errorf("%w: %q", ErrFormat, path)
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	logger.Named("export").Info("exported models",
		zap.String("path", path), zap.Int("meshes", len(doc.Meshes)))
	return nil
}
