package visual

import (
	"github.com/Faultbox/sciviz/internal/engine/colour"
	"github.com/Faultbox/sciviz/internal/engine/mesh"
	"github.com/Faultbox/sciviz/internal/engine/text"
	"github.com/Faultbox/sciviz/pkg/math"
)

// Triangle is a single flat triangle.
type Triangle struct {
	C1, C2, C3 math.Vec3
	Colour     [3]float32
}

func (t Triangle) InitializeVertices(b *mesh.Builder) {
	b.Triangle(t.C1, t.C2, t.C3, t.Colour)
}

// Rhombo is a parallelepiped spanned by three edges from the model origin.
type Rhombo struct {
	Edge1, Edge2, Edge3 math.Vec3
	Colour              [3]float32
}

func (r Rhombo) InitializeVertices(b *mesh.Builder) {
	b.Rhombohedron(math.Vec3{}, r.Edge1, r.Edge2, r.Edge3, r.Colour)
}

// TriFrame draws a closed loop of tubes through Coords with a sphere at each
// coordinate. Sphere colours come from Data through Map; with no data every
// sphere takes the map's colour for zero.
type TriFrame struct {
	Coords []math.Vec3
	Data   []float32
	Map    *colour.Map

	Radius       float32
	SphereRadius float32
	SphereRings  int
	SphereSegs   int
	TubeSegs     int
	TubeColour   [3]float32
}

// NewTriFrame returns a frame through coords with the default radii and
// resolution.
func NewTriFrame(coords []math.Vec3, data []float32) *TriFrame {
	return &TriFrame{
		Coords:       coords,
		Data:         data,
		Map:          colour.NewMap(colour.Jet),
		Radius:       0.05,
		SphereRadius: 0.052,
		SphereRings:  10,
		SphereSegs:   12,
		TubeSegs:     12,
		TubeColour:   colour.Grey(0.3),
	}
}

func (f *TriFrame) InitializeVertices(b *mesh.Builder) {
	n := len(f.Coords)
	if n == 0 {
		return
	}
	scaled := colour.Autoscale(f.Data)
	for i, c := range f.Coords {
		var v float32
		if i < len(scaled) {
			v = scaled[i]
		}
		b.Sphere(c, f.Map.Convert(v), f.SphereRadius, f.SphereRings, f.SphereSegs)
	}
	if n < 2 {
		return
	}
	for i, c := range f.Coords {
		next := f.Coords[(i+1)%n]
		b.Tube(c, next, f.TubeColour, f.TubeColour, f.Radius, f.TubeSegs)
	}
}

// Polyline is a flat line through Points in the plane with normal Normal.
// Interior joints are mitred. When DashLen is positive each segment is
// drawn dashed instead and joints are left open.
type Polyline struct {
	Points  []math.Vec3
	Normal  math.Vec3
	Colour  [3]float32
	Width   float32
	Closed  bool
	DashLen float32
	GapProp float32
}

func (p Polyline) InitializeVertices(b *mesh.Builder) {
	pts := p.Points
	n := len(pts)
	if n < 2 {
		return
	}
	segs := n - 1
	if p.Closed {
		segs = n
	}

	if p.DashLen > 0 {
		for i := 0; i < segs; i++ {
			b.FlatDashedLine(pts[i], pts[(i+1)%n], p.Normal, p.Colour, p.Width, 0, p.DashLen, p.GapProp)
		}
		return
	}

	if segs == 1 {
		b.FlatLine(pts[0], pts[1], p.Normal, p.Colour, p.Width, 0)
		return
	}
	for i := 0; i < segs; i++ {
		start, end := pts[i], pts[(i+1)%n]
		hasPrev := p.Closed || i > 0
		hasNext := p.Closed || i < segs-1
		prev := pts[(i-1+n)%n]
		next := pts[(i+2)%n]
		switch {
		case hasPrev && hasNext:
			b.FlatLineJoined(start, end, prev, next, p.Normal, p.Colour, p.Width)
		case hasPrev:
			b.FlatLinePrev(start, end, prev, p.Normal, p.Colour, p.Width)
		default:
			b.FlatLineNext(start, end, next, p.Normal, p.Colour, p.Width)
		}
	}
}

// NewTxt returns a model that is only a text label at offset.
func NewTxt(parent Parent, s string, offset math.Vec3, f text.Features) (*Model, error) {
	m := New(parent, offset, GeometryFunc(func(*mesh.Builder) {}))
	if _, err := m.AddLabel(s, math.Vec3{}, f); err != nil {
		return nil, err
	}
	m.Finalize()
	return m, nil
}
