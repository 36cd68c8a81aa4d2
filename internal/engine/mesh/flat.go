package mesh

import (
	"github.com/Faultbox/sciviz/pkg/math"
)

// roundCapSegments is the tessellation of the discs drawn at rounded line ends.
const roundCapSegments = 12

// FlatQuad appends a quad from four corners ordered clockwise. All four
// vertices share the face normal (c1-c2)x(c2-c3). Appends 4 vertices.
func (b *Builder) FlatQuad(c1, c2, c3, c4 math.Vec3, col [3]float32) {
	v := c1.Sub(c2).Cross(c2.Sub(c3))
	v.Renormalize()
	for _, c := range [4]math.Vec3{c1, c2, c3, c4} {
		b.push(c, v, col)
	}
	b.quadIndices()
}

// Triangle appends a single triangle with a shared face normal. Appends 3 vertices.
func (b *Builder) Triangle(c1, c2, c3 math.Vec3, col [3]float32) {
	v := c1.Sub(c2).Cross(c2.Sub(c3))
	v.Renormalize()
	for _, c := range [3]math.Vec3{c1, c2, c3} {
		b.push(c, v, col)
	}
	b.tri(b.Idx, b.Idx+1, b.Idx+2)
	b.Idx += 3
}

// quadIndices indexes the four vertices just pushed as two triangles.
func (b *Builder) quadIndices() {
	i := b.Idx
	b.tri(i, i+1, i+2)
	b.tri(i, i+2, i+3)
	b.Idx += 4
}

// FlatPoly appends a regular polygon of radius r in the plane of ux and uy
// as a triangle fan around centre. Appends segments+1 vertices.
func (b *Builder) FlatPoly(centre, ux, uy math.Vec3, col [3]float32, r float32, segments int, rotation float32) {
	if segments < 1 {
		return
	}
	v := uy.Cross(ux)
	v.Renormalize()
	n := v.Neg()

	b.push(centre, n, col)
	for j := 0; j < segments; j++ {
		b.push(centre.Add(circle(ux, uy, rotation+segmentAngle(j, segments), r)), n, col)
	}
	b.fan(b.Idx, b.Idx+1, uint32(segments))
	b.Idx += uint32(segments) + 1
}

// Ring appends an annulus in the XY plane about centre with mean radius r
// and radial thickness, one flat quad per segment. Appends 4*segments vertices.
func (b *Builder) Ring(centre math.Vec3, col [3]float32, r, thickness float32, segments int) {
	rin := r - thickness*0.5
	rout := r + thickness*0.5
	at := func(j int, radius float32) math.Vec3 {
		return centre.Add(circle(math.UnitY, math.UnitX, segmentAngle(j%segments, segments), radius))
	}
	for j := 0; j < segments; j++ {
		b.FlatQuad(at(j, rin), at(j, rout), at(j+1, rout), at(j+1, rin), col)
	}
}

// lineFrame returns the unit direction v from start to end and the unit
// across-line vector v x uz.
func lineFrame(start, end, uz math.Vec3) (v, vv math.Vec3) {
	v = end.Sub(start)
	v.Renormalize()
	vv = v.Cross(uz)
	vv.Renormalize()
	return v, vv
}

// rect pushes a rectangle whose start edge is start±ws and end edge end∓we.
func (b *Builder) rect(start, end, ws, we, uz math.Vec3, col [3]float32) {
	b.push(start.Add(ws), uz, col)
	b.push(start.Sub(ws), uz, col)
	b.push(end.Sub(we), uz, col)
	b.push(end.Add(we), uz, col)
	b.quadIndices()
}

// FlatLine appends a zero-thickness line of width w lying across uz.
// shorten trims each end. Appends 4 vertices.
func (b *Builder) FlatLine(start, end, uz math.Vec3, col [3]float32, w, shorten float32) {
	v, vv := lineFrame(start, end, uz)
	if shorten > 0 {
		start = start.Add(v.Scale(shorten))
		end = end.Sub(v.Scale(shorten))
	}
	ww := vv.Scale(w * 0.5)
	b.rect(start, end, ww, ww, uz, col)
}

// FlatLineRounded is FlatLine with optional disc caps of diameter w at
// either end. Appends 4 vertices plus 13 per cap.
func (b *Builder) FlatLineRounded(start, end, uz math.Vec3, col [3]float32, w, shorten float32, startCap, endCap bool) {
	v, vv := lineFrame(start, end, uz)
	if shorten > 0 {
		start = start.Add(v.Scale(shorten))
		end = end.Sub(v.Scale(shorten))
	}
	r := 0.5 * w
	if startCap {
		b.disc(start, v, vv, uz, col, r)
	}
	ww := vv.Scale(w * 0.5)
	b.rect(start, end, ww, ww, uz, col)
	if endCap {
		b.disc(end, v, vv, uz, col, r)
	}
}

func (b *Builder) disc(centre, ux, uy, normal math.Vec3, col [3]float32, r float32) {
	b.push(centre, normal, col)
	for j := 0; j < roundCapSegments; j++ {
		b.push(centre.Add(circle(ux, uy, segmentAngle(j, roundCapSegments), r)), normal, col)
	}
	b.fan(b.Idx, b.Idx+1, roundCapSegments)
	b.Idx += roundCapSegments + 1
}

// bisector returns the half-width offset at a joint between segments whose
// across-line vectors are a and c.
func bisector(a, c math.Vec3, w float32) math.Vec3 {
	return a.Add(c).Scale(0.5 * w * 0.5)
}

// FlatLineJoined appends a segment of a flat polyline. The corners at start
// and end lie on the bisectors with the previous segment (prev to start) and
// the next segment (end to next), so consecutive segments meet without gaps.
// Appends 4 vertices.
func (b *Builder) FlatLineJoined(start, end, prev, next, uz math.Vec3, col [3]float32, w float32) {
	_, vv := lineFrame(start, end, uz)
	_, vvp := lineFrame(prev, start, uz)
	_, vvn := lineFrame(end, next, uz)
	b.rect(start, end, bisector(vv, vvp, w), bisector(vv, vvn, w), uz, col)
}

// FlatLinePrev joins to the previous segment only; the end is square.
func (b *Builder) FlatLinePrev(start, end, prev, uz math.Vec3, col [3]float32, w float32) {
	_, vv := lineFrame(start, end, uz)
	_, vvp := lineFrame(prev, start, uz)
	b.rect(start, end, bisector(vv, vvp, w), vv.Scale(w*0.5), uz, col)
}

// FlatLineNext joins to the next segment only; the start is square.
func (b *Builder) FlatLineNext(start, end, next, uz math.Vec3, col [3]float32, w float32) {
	_, vv := lineFrame(start, end, uz)
	_, vvn := lineFrame(end, next, uz)
	b.rect(start, end, vv.Scale(w*0.5), bisector(vv, vvn, w), uz, col)
}

// FlatDashedLine appends dashes of length dashLen separated by gaps of
// dashLen*gapProp along the line from start to end, trimmed by shorten at
// each end. Only whole dashes that end before the end of the line are
// drawn. Appends 4 vertices per dash.
func (b *Builder) FlatDashedLine(start, end, uz math.Vec3, col [3]float32, w, shorten, dashLen, gapProp float32) {
	if dashLen <= 0 || dashLen*(1+gapProp) <= 0 {
		return
	}
	v, vv := lineFrame(start, end, uz)
	lineLen := end.Sub(start).Length()
	if shorten > 0 {
		start = start.Add(v.Scale(shorten))
		lineLen -= 2 * shorten
	}

	ww := vv.Scale(w * 0.5)
	for s, e := float32(0), dashLen; e < lineLen; {
		b.rect(start.Add(v.Scale(s)), start.Add(v.Scale(e)), ww, ww, uz, col)
		s = e + dashLen*gapProp
		e = s + dashLen
	}
}

// FlatCircleLine appends a circular ribbon of the given line width about
// centre in the plane normal to norm. The starting angle is random.
// Appends 2*segments vertices.
func (b *Builder) FlatCircleLine(centre, norm math.Vec3, radius, lineWidth float32, col [3]float32, segments int) {
	if segments < 1 {
		return
	}
	inplane, nXInplane := b.inPlaneAxes(norm)
	b.circleLine(centre, inplane, nXInplane, norm, radius, lineWidth, col, segments)
}

// OrientedFlatCircleLine is FlatCircleLine in the plane of ux and uy.
func (b *Builder) OrientedFlatCircleLine(centre, ux, uy math.Vec3, radius, lineWidth float32, col [3]float32, segments int) {
	if segments < 1 {
		return
	}
	norm := ux.Cross(uy)
	norm.Renormalize()
	b.circleLine(centre, ux, uy, norm, radius, lineWidth, col, segments)
}

// circleLine pushes inner/outer vertex pairs around the circle, then
// stitches consecutive pairs into quads.
func (b *Builder) circleLine(centre, ux, uy, norm math.Vec3, radius, lineWidth float32, col [3]float32, segments int) {
	rin := radius - lineWidth/2
	rout := radius + lineWidth/2
	for j := 0; j < segments; j++ {
		t := segmentAngle(j, segments)
		b.push(centre.Add(circle(ux, uy, t, rin)), norm, col)
		b.push(centre.Add(circle(ux, uy, t, rout)), norm, col)
	}
	n := uint32(segments)
	for j := uint32(0); j < n; j++ {
		jn := (j + 1) % n
		b.tri(b.Idx+2*j, b.Idx+2*jn, b.Idx+2*jn+1)
		b.tri(b.Idx+2*j, b.Idx+2*jn+1, b.Idx+2*j+1)
	}
	b.Idx += 2 * n
}
