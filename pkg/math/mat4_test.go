package math

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	expected := Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if m != expected {
		t.Errorf("Identity() = %v, want %v", m, expected)
	}
}

func TestMulIdentity(t *testing.T) {
	a := Translate(Vec3{1, 2, 3})
	if got := a.Mul(Identity()); got != a {
		t.Errorf("M * I = %v, want %v", got, a)
	}
}

func TestTranslatePoint(t *testing.T) {
	m := Translate(Vec3{10, 20, 30})
	got := m.TransformPoint(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint = %v, want %v", got, want)
	}
	// directions are not translated
	if d := m.TransformDirection(UnitX); d != UnitX {
		t.Errorf("TransformDirection = %v, want %v", d, UnitX)
	}
}

func TestScalePoint(t *testing.T) {
	m := Scale(2, 3, 4)
	got := m.TransformPoint(Vec3{1, 1, 1})
	want := Vec3{2, 3, 4}
	if got != want {
		t.Errorf("TransformPoint = %v, want %v", got, want)
	}
}

func TestPerspectiveMatchesMathgl(t *testing.T) {
	got := Perspective(math32.Pi/4, 16.0/9.0, 0.1, 100)
	want := mgl32.Perspective(math32.Pi/4, 16.0/9.0, 0.1, 100)
	for i := 0; i < 16; i++ {
		if abs(got[i]-want[i]) > 1e-4 {
			t.Errorf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTranslateRotate(t *testing.T) {
	q := QuatFromAxisAngle(UnitZ, math32.Pi/2)
	m := TranslateRotate(Vec3{5, 0, 0}, q)

	// (1,0,0) rotates to (0,1,0) then moves to (5,1,0)
	got := m.TransformPoint(UnitX)
	want := Vec3{5, 1, 0}
	if got.Distance(want) > 1e-5 {
		t.Errorf("TranslateRotate point = %v, want %v", got, want)
	}

	composed := Translate(Vec3{5, 0, 0}).Mul(q.ToMat4())
	for i := 0; i < 16; i++ {
		if abs(m[i]-composed[i]) > 1e-6 {
			t.Errorf("element %d: got %v, want %v", i, m[i], composed[i])
		}
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestInverseMatchesMathgl(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 1, 0}.Normalize(), 0.8)
	m := Scale(2, 3, 0.5).Mul(TranslateRotate(Vec3{1, -4, 2}, q))

	got := m.Inverse()
	want := mgl32.Mat4(m).Inv()
	for i := 0; i < 16; i++ {
		if abs(got[i]-want[i]) > 1e-4 {
			t.Errorf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}

	id := m.Mul(got)
	for i := 0; i < 16; i++ {
		if abs(id[i]-Identity()[i]) > 1e-4 {
			t.Errorf("m * m^-1 element %d: got %v", i, id[i])
		}
	}
}

func TestInverseSingularIsIdentity(t *testing.T) {
	if got := Scale(0, 1, 1).Inverse(); got != Identity() {
		t.Errorf("singular inverse should be identity, got %v", got)
	}
}
