// Package picking provides ray casting against model bounds.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sciviz/internal/engine/mesh"
	"github.com/Faultbox/sciviz/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// FromExtents returns the box around a mesh's positions.
func FromExtents(e mesh.Extents) AABB {
	return AABB{Min: math.Vec3FromArray(e.PositionMin), Max: math.Vec3FromArray(e.PositionMax)}
}

// ScreenToRay converts screen coordinates to a ray in the space that
// invMVP maps clip space into. screenX, screenY are pixel coordinates with
// y growing downwards; viewportW/H are viewport dimensions.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invMVP math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	// Unproject near and far points; TransformPoint does the divide
	near := invMVP.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := invMVP.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: 1})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)

	origin, dir := r.Origin.Array(), r.Direction.Array()
	lo, hi := box.Min.Array(), box.Max.Array()
	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
