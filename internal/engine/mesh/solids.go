package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sciviz/pkg/math"
)

// Tube appends a capped tube from start to end with radius r whose colour
// blends from colStart to colEnd. The angular position of the first ring
// vertex is random. Appends 4*segments+2 vertices.
func (b *Builder) Tube(start, end math.Vec3, colStart, colEnd [3]float32, r float32, segments int) {
	if segments < 1 {
		return
	}
	v := end.Sub(start)
	v.Renormalize()
	inplane, vXInplane := b.inPlaneAxes(v)
	b.tube(start, end, inplane, vXInplane, v, colStart, colEnd, r, segments, 0)
}

// OrientedTube appends a capped tube whose end faces are spanned by the unit
// vectors ux and uy, starting at angle rotation within that plane. The
// output depends only on the arguments. Appends 4*segments+2 vertices.
func (b *Builder) OrientedTube(start, end, ux, uy math.Vec3, colStart, colEnd [3]float32, r float32, segments int, rotation float32) {
	if segments < 1 {
		return
	}
	v := uy.Cross(ux)
	v.Renormalize()
	b.tube(start, end, ux, uy, v, colStart, colEnd, r, segments, rotation)
}

// tube lays out: start centre, start cap ring, start side ring, end side
// ring, end cap ring, end centre. v is the end face normal.
func (b *Builder) tube(start, end, ux, uy, v math.Vec3, colStart, colEnd [3]float32, r float32, segments int, rotation float32) {
	b.push(start, v.Neg(), colStart)
	for j := 0; j < segments; j++ {
		c := circle(ux, uy, rotation+segmentAngle(j, segments), r)
		b.push(start.Add(c), v.Neg(), colStart)
	}
	for j := 0; j < segments; j++ {
		c := circle(ux, uy, rotation+segmentAngle(j, segments), r)
		b.push(start.Add(c), c.Normalize(), colStart)
	}
	for j := 0; j < segments; j++ {
		c := circle(ux, uy, rotation+segmentAngle(j, segments), r)
		b.push(end.Add(c), c.Normalize(), colEnd)
	}
	for j := 0; j < segments; j++ {
		c := circle(ux, uy, rotation+segmentAngle(j, segments), r)
		b.push(end.Add(c), v, colEnd)
	}
	b.push(end, v, colEnd)

	n := uint32(segments)
	b.cappedBands(b.Idx, n, 4)
	b.Idx += 4*n + 2
}

// Cone appends a cone with its base centred on centre and apex at tip.
// ringOffset moves the base ring outward (positive) or inward (negative) as
// a proportion of r. The base ring orientation is random. Appends
// 3*segments+2 vertices.
func (b *Builder) Cone(centre, tip math.Vec3, ringOffset float32, col [3]float32, r float32, segments int) {
	if segments < 1 {
		return
	}
	v := tip.Sub(centre)
	v.Renormalize()
	inplane, vXInplane := b.inPlaneAxes(v)
	b.cone(centre, tip, inplane, vXInplane, v, ringOffset, col, r, segments)
}

// OrientedCone is Cone with the base ring spanned by the unit vectors ux and uy.
func (b *Builder) OrientedCone(centre, tip, ux, uy math.Vec3, ringOffset float32, col [3]float32, r float32, segments int) {
	if segments < 1 {
		return
	}
	v := tip.Sub(centre)
	v.Renormalize()
	b.cone(centre, tip, ux, uy, v, ringOffset, col, r, segments)
}

// cone lays out: base centre, base ring (normal -v), side ring on the base
// (radial normals), tip ring at the apex (radial normals), apex.
func (b *Builder) cone(centre, tip, ux, uy, v math.Vec3, ringOffset float32, col [3]float32, r float32, segments int) {
	ring := func(j int) math.Vec3 {
		c := circle(ux, uy, segmentAngle(j, segments), r)
		return c.Add(c.Scale(ringOffset))
	}

	b.push(centre, v.Neg(), col)
	for j := 0; j < segments; j++ {
		b.push(centre.Add(ring(j)), v.Neg(), col)
	}
	for j := 0; j < segments; j++ {
		c := ring(j)
		b.push(centre.Add(c), c.Normalize(), col)
	}
	for j := 0; j < segments; j++ {
		b.push(tip, ring(j).Normalize(), col)
	}
	b.push(tip, v, col)

	n := uint32(segments)
	b.cappedBands(b.Idx, n, 3)
	b.Idx += 3*n + 2
}

// Sphere appends a single-colour UV sphere. Appends 2+segments*(rings-1)
// vertices: two poles plus rings-1 latitude rings.
func (b *Builder) Sphere(centre math.Vec3, col [3]float32, r float32, rings, segments int) {
	b.sphere(centre, col, col, r, rings, segments)
}

// Sphere2 appends a two-colour sphere. The poles, the first two latitude
// rings and the last ring take capCol; the rest take col.
func (b *Builder) Sphere2(centre math.Vec3, col, capCol [3]float32, r float32, rings, segments int) {
	b.sphere(centre, col, capCol, r, rings, segments)
}

func (b *Builder) sphere(centre math.Vec3, col, capCol [3]float32, r float32, rings, segments int) {
	if rings < 2 || segments < 1 {
		return
	}
	n := uint32(segments)
	latitude := func(i int) (z, rxy float32) {
		return math32.Sincos(math32.Pi * (-0.5 + float32(i)/float32(rings)))
	}

	// bottom pole, fanned to the first ring
	b.push(centre.Add(math.Vec3{Z: -r}), math.Vec3{Z: -1}, capCol)
	capMiddle := b.Idx
	b.Idx++

	z1, r1 := latitude(1)
	for j := 0; j < segments; j++ {
		s, c := math32.Sincos(segmentAngle(j, segments))
		unit := math.Vec3{X: c * r1, Y: s * r1, Z: z1}
		b.push(centre.Add(unit.Scale(r)), unit, capCol)
		if j > 0 {
			b.tri(capMiddle, b.Idx-1, b.Idx)
		}
		b.Idx++
	}
	b.tri(capMiddle, b.Idx-1, capMiddle+1)

	// Each further ring adds one vertex per segment and stitches back to
	// the ring before it.
	ringStart := capMiddle + 1
	lastRingStart := capMiddle + 1
	for i := 2; i < rings; i++ {
		z0, r0 := latitude(i)
		ringCol := col
		if i == 2 || i > rings-2 {
			ringCol = capCol
		}
		for j := 0; j < segments; j++ {
			s, c := math32.Sincos(segmentAngle(j, segments))
			unit := math.Vec3{X: c * r0, Y: s * r0, Z: z0}
			b.push(centre.Add(unit.Scale(r)), unit, ringCol)

			if j == segments-1 {
				b.tri(ringStart, b.Idx, lastRingStart)
				b.tri(lastRingStart, b.Idx, lastRingStart+n)
			} else {
				b.tri(ringStart, b.Idx, ringStart+1)
				b.tri(ringStart+1, b.Idx, b.Idx+1)
			}
			ringStart++
			b.Idx++
		}
		lastRingStart += n
	}

	// top pole
	b.push(centre.Add(math.Vec3{Z: r}), math.Vec3{Z: 1}, capCol)
	capMiddle = b.Idx
	b.Idx++
	ringStart = lastRingStart
	for j := uint32(0); j < n; j++ {
		if j != n-1 {
			b.tri(capMiddle, ringStart, ringStart+1)
			ringStart++
		} else {
			b.tri(capMiddle, ringStart, lastRingStart)
		}
	}
}

// Line appends a solid line of rectangular cross-section from start to end.
// The cross-section is w wide (across uz) and thickness deep (along uz);
// shorten trims each end. Appends 34 vertices.
func (b *Builder) Line(start, end, uz math.Vec3, colStart, colEnd [3]float32, w, thickness, shorten float32) {
	const segments = 8

	v := end.Sub(start)
	v.Renormalize()
	if shorten > 0 {
		start = start.Add(v.Scale(shorten))
		end = end.Sub(v.Scale(shorten))
	}
	vv := v.Cross(uz)
	vv.Renormalize()

	// two vertices at each corner so each face gets its own normal
	hw, hd := w*0.5, thickness*0.5
	r := math32.Sqrt(hw*hw + hd*hd)
	a := math32.Acos(hw / r)
	angles := [segments]float32{
		a, a,
		math32.Pi - a, math32.Pi - a,
		math32.Pi + a, math32.Pi + a,
		math.TwoPi - a, math.TwoPi - a,
	}
	norms := [segments]math.Vec3{vv, uz, uz, vv.Neg(), vv.Neg(), uz.Neg(), uz.Neg(), vv}
	corner := func(j int) math.Vec3 {
		// uz takes the sine so the corners trace the rectangle in the (vv, uz) plane
		return circle(uz, vv, angles[j], r)
	}

	b.push(start, v.Neg(), colStart)
	for j := 0; j < segments; j++ {
		b.push(start.Add(corner(j)), v.Neg(), colStart)
	}
	for j := 0; j < segments; j++ {
		b.push(start.Add(corner(j)), norms[j], colStart)
	}
	for j := 0; j < segments; j++ {
		b.push(end.Add(corner(j)), norms[j], colEnd)
	}
	for j := 0; j < segments; j++ {
		b.push(end.Add(corner(j)), v, colEnd)
	}
	b.push(end, v, colEnd)

	b.cappedBands(b.Idx, segments, 4)
	b.Idx += 4*segments + 2
}

// Rhombohedron appends a parallelepiped with one corner at origin and edges
// e1, e2 and e3. Each face gets four vertices of its own. Appends 24 vertices.
func (b *Builder) Rhombohedron(origin, e1, e2, e3 math.Vec3, col [3]float32) {
	n1 := e1.Cross(e2)
	n1.Renormalize()
	n2 := e2.Cross(e3)
	n2.Renormalize()
	n3 := e1.Cross(e3)
	n3.Renormalize()

	o := origin
	faces := [6]struct {
		corners [4]math.Vec3
		normal  math.Vec3
	}{
		{[4]math.Vec3{o, o.Add(e1), o.Add(e3), o.Add(e1).Add(e3)}, n3},
		{[4]math.Vec3{o.Add(e3), o.Add(e1).Add(e3), o.Add(e2).Add(e3), o.Add(e2).Add(e1).Add(e3)}, n1},
		{[4]math.Vec3{o.Add(e2).Add(e3), o.Add(e2).Add(e1).Add(e3), o.Add(e2), o.Add(e2).Add(e1)}, n3.Neg()},
		{[4]math.Vec3{o.Add(e2), o.Add(e2).Add(e1), o, o.Add(e1)}, n1.Neg()},
		{[4]math.Vec3{o.Add(e2), o, o.Add(e2).Add(e3), o.Add(e3)}, n2.Neg()},
		{[4]math.Vec3{o.Add(e1), o.Add(e1).Add(e2), o.Add(e1).Add(e3), o.Add(e1).Add(e2).Add(e3)}, n2},
	}
	for _, f := range faces {
		for _, c := range f.corners {
			b.push(c, f.normal, col)
		}
		i := b.Idx
		b.tri(i, i+1, i+2)
		b.tri(i+1, i+2, i+3)
		b.Idx += 4
	}
}
