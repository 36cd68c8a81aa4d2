package math

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	if abs(n.Dot(n)-1) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", n.Dot(n))
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(UnitY, math32.Pi/2)

	expectedW := math32.Cos(math32.Pi / 4)
	expectedY := math32.Sin(math32.Pi / 4)

	if abs(q.W-expectedW) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if abs(q.Y-expectedY) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatToMat4MatchesMathgl(t *testing.T) {
	axis := Vec3{1, 2, 3}.Normalize()
	q := QuatFromAxisAngle(axis, 0.7)
	got := q.ToMat4()
	want := mgl32.QuatRotate(0.7, mgl32.Vec3{axis.X, axis.Y, axis.Z}).Mat4()
	for i := 0; i < 16; i++ {
		if abs(got[i]-want[i]) > 1e-5 {
			t.Errorf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestQuatPremultiply(t *testing.T) {
	qx := QuatFromAxisAngle(UnitX, math32.Pi/2)
	qz := QuatFromAxisAngle(UnitZ, math32.Pi/2)

	// rotate about x first, then about z
	q := qx.Premultiply(qz)
	got := q.Rotate(UnitY)
	// y -> z (about x), z stays z (about z)
	want := UnitZ
	if got.Distance(want) > 1e-5 {
		t.Errorf("Premultiply rotate = %v, want %v", got, want)
	}

	got = q.Rotate(UnitX)
	// x stays x (about x), x -> y (about z)
	if got.Distance(UnitY) > 1e-5 {
		t.Errorf("Premultiply rotate = %v, want %v", got, UnitY)
	}
}

func TestQuatInvert(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 1}.Normalize(), 1.3)
	v := Vec3{0.3, -2, 5}
	got := q.Invert().Rotate(q.Rotate(v))
	if got.Distance(v) > 1e-4 {
		t.Errorf("Invert round trip = %v, want %v", got, v)
	}

	id := q.Mul(q.Invert())
	if abs(id.W-1) > 1e-5 || abs(id.X) > 1e-5 || abs(id.Y) > 1e-5 || abs(id.Z) > 1e-5 {
		t.Errorf("q * q^-1 = %v, want identity", id)
	}
}

func TestQuatRotateMatchesMatrix(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 1, 0}.Normalize(), 2.1)
	v := Vec3{1, 2, 3}
	a := q.Rotate(v)
	b := q.ToMat4().TransformPoint(v)
	if a.Distance(b) > 1e-5 {
		t.Errorf("Rotate = %v, matrix = %v", a, b)
	}
}

func TestQuatSlerpEndpoints(t *testing.T) {
	a := QuatFromAxisAngle(UnitZ, 0.2)
	b := QuatFromAxisAngle(UnitZ, 1.4)

	if d := a.Slerp(b, 0).Dot(a); abs(d-1) > 1e-4 {
		t.Errorf("Slerp(0) should equal start, dot=%v", d)
	}
	if d := a.Slerp(b, 1).Dot(b); abs(d-1) > 1e-4 {
		t.Errorf("Slerp(1) should equal end, dot=%v", d)
	}

	mid := a.Slerp(b, 0.5)
	want := QuatFromAxisAngle(UnitZ, 0.8)
	if d := mid.Dot(want); abs(d-1) > 1e-4 {
		t.Errorf("Slerp(0.5) should be the half-way rotation, dot=%v", d)
	}
}

func TestQuatSlerpShortestArc(t *testing.T) {
	a := QuatIdentity()
	b := QuatFromAxisAngle(UnitX, 0.5)
	neg := Quat{-b.X, -b.Y, -b.Z, -b.W}

	p := a.Slerp(b, 0.3)
	q := a.Slerp(neg, 0.3)
	if d := p.Dot(q); abs(d-1) > 1e-4 {
		t.Errorf("Slerp should take the same arc for q and -q, dot=%v", d)
	}
}
