package math

import (
	"testing"

	"golang.org/x/exp/rand"
)

func TestVec2Cross(t *testing.T) {
	if got := (Vec2{1, 0}).Cross(Vec2{0, 1}); got != 1 {
		t.Errorf("Vec2.Cross() = %v, want 1", got)
	}
	if got := (Vec2{0, 1}).Cross(Vec2{1, 0}); got != -1 {
		t.Errorf("Vec2.Cross() = %v, want -1", got)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
	if l := v.Normalize().Length(); l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec3Cross(t *testing.T) {
	got := UnitX.Cross(UnitY)
	if got != UnitZ {
		t.Errorf("Vec3.Cross() = %v, want %v", got, UnitZ)
	}
}

func TestVec3Hadamard(t *testing.T) {
	a := Vec3{2, 4, 6}
	b := Vec3{1, 2, 3}
	if got, want := a.Mul(b), (Vec3{2, 8, 18}); got != want {
		t.Errorf("Vec3.Mul() = %v, want %v", got, want)
	}
	if got, want := a.Div(b), (Vec3{2, 2, 2}); got != want {
		t.Errorf("Vec3.Div() = %v, want %v", got, want)
	}
	if got, want := a.DivScalar(2), (Vec3{1, 2, 3}); got != want {
		t.Errorf("Vec3.DivScalar() = %v, want %v", got, want)
	}
}

func TestVec3Renormalize(t *testing.T) {
	v := Vec3{0, 3, 4}
	v.Renormalize()
	if want := (Vec3{0, 0.6, 0.8}); v.Distance(want) > 1e-6 {
		t.Errorf("Renormalize() = %v, want %v", v, want)
	}

	zero := Vec3{}
	zero.Renormalize()
	if zero != (Vec3{}) {
		t.Errorf("Renormalize() of zero vector = %v", zero)
	}
}

func TestRandomVec3(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		v := RandomVec3(r)
		for _, c := range v.Array() {
			if c < 0 || c >= 1 {
				t.Fatalf("component %v out of [0,1)", c)
			}
		}
	}

	a := RandomVec3(rand.New(rand.NewSource(42)))
	b := RandomVec3(rand.New(rand.NewSource(42)))
	if a != b {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}
