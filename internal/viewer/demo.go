package viewer

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/sciviz/internal/config"
	"github.com/Faultbox/sciviz/internal/engine/colour"
	"github.com/Faultbox/sciviz/internal/engine/mesh"
	"github.com/Faultbox/sciviz/internal/visual"
	"github.com/Faultbox/sciviz/pkg/math"
)

// helix returns n points on a helix of radius r climbing pitch per turn.
func helix(n int, r, pitch float32) []math.Vec3 {
	pts := make([]math.Vec3, n)
	for i := range pts {
		t := float32(i) / float32(n-1) * 4 * math32.Pi
		pts[i] = math.Vec3{X: r * math32.Cos(t), Y: pitch * t / (2 * math32.Pi), Z: r * math32.Sin(t)}
	}
	return pts
}

// Populate fills s with the demonstration scene: a scalar-coloured frame,
// a unit cell, outlines, a cloud of spheres and labels.
func Populate(s *visual.Scene, cfg *config.Config) ([]*visual.Model, error) {
	var models []*visual.Model
	add := func(m *visual.Model) error {
		if _, err := s.Add(m); err != nil {
			return err
		}
		models = append(models, m)
		return nil
	}
	// build finalizes a model, seeding its builder when the config asks
	// for reproducible meshes.
	build := func(offset math.Vec3, g visual.Geometry) *visual.Model {
		m := visual.New(s, offset, g)
		if cfg.Mesh.Seed != 0 {
			m.SetSeed(cfg.Mesh.Seed)
		}
		m.Finalize()
		return m
	}
	features := cfg.Features()

	coords := helix(24, 0.4, 0.25)
	data := make([]float32, len(coords))
	for i := range data {
		data[i] = float32(i)
	}
	frame := visual.NewTriFrame(coords, data)
	frame.Map = cfg.ColourMap()
	frame.SphereRings = cfg.Mesh.Rings
	frame.SphereSegs = cfg.Mesh.Segments
	if err := add(build(math.Vec3{X: -1}, frame)); err != nil {
		return nil, err
	}

	cell := build(math.Vec3{X: 0.6, Y: -0.3}, visual.Rhombo{
		Edge1:  math.Vec3{X: 0.6},
		Edge2:  math.Vec3{X: 0.2, Y: 0.55},
		Edge3:  math.Vec3{X: 0.1, Y: 0.1, Z: 0.5},
		Colour: colour.Crimson,
	})
	cell.SetAlpha(0.6)
	if err := add(cell); err != nil {
		return nil, err
	}

	square := []math.Vec3{{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5}, {X: 0.5, Y: 0.5}, {X: -0.5, Y: 0.5}}
	outline := build(math.Vec3{Y: -1}, visual.Polyline{
		Points: square,
		Normal: math.UnitZ,
		Colour: colour.Black,
		Width:  cfg.Mesh.LineWidth,
		Closed: true,
	})
	if err := add(outline); err != nil {
		return nil, err
	}

	dashed := build(math.Vec3{Y: -1.2}, visual.Polyline{
		Points:  []math.Vec3{{X: -0.5}, {X: 0.5}},
		Normal:  math.UnitZ,
		Colour:  colour.Blue,
		Width:   cfg.Mesh.LineWidth,
		DashLen: 0.05,
		GapProp: 0.5,
	})
	if err := add(dashed); err != nil {
		return nil, err
	}

	cmap := cfg.ColourMap()
	rings, segs := cfg.Mesh.Rings, cfg.Mesh.Segments
	cloud := build(math.Vec3{X: 1, Y: 0.8}, visual.GeometryFunc(func(b *mesh.Builder) {
		for i := 0; i < 8; i++ {
			a := float32(i) / 8 * 2 * math32.Pi
			c := math.Vec3{X: 0.3 * math32.Cos(a), Y: 0.3 * math32.Sin(a)}
			b.Sphere2(c, cmap.Convert(float32(i)/7), colour.White, 0.06, rings, segs)
		}
		b.Cone(math.Vec3{}, math.Vec3{Z: 0.3}, 0.1, colour.Green, 0.05, segs)
	}))
	if err := add(cloud); err != nil {
		return nil, err
	}

	if s.TextProgram() != 0 {
		for i, m := range models[:2] {
			if _, err := m.AddLabel(fmt.Sprintf("model %d", i), math.Vec3{Y: 0.7}, features); err != nil {
				return nil, err
			}
		}
		title, err := visual.NewTxt(s, cfg.Window.Title, math.Vec3{Y: 1.4}, features)
		if err != nil {
			return nil, err
		}
		if err := add(title); err != nil {
			return nil, err
		}
	}
	return models, nil
}
