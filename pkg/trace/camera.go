// Package trace implements the per-pixel ray casting kernel: pinhole camera,
// ray-sphere intersection and Phong shading over a scene of spheres.
package trace

import (
	"math"

	"github.com/taigrr/spherecast/pkg/math3d"
)

// Camera holds the eye position and the world-space screen basis. Right and
// Up are orthonormal and span the virtual screen plane; the screen has unit
// half-height along Up. Origin is the center of that plane, one focal length
// in front of the eye.
type Camera struct {
	Origin   math3d.Vec3
	Right    math3d.Vec3
	Up       math3d.Vec3
	Position math3d.Vec3
}

// NewCamera derives a camera from the eye position, a target point, an up
// hint and the vertical field of view in degrees. The focal length is
// 1/tan(fovy/2), so the screen's unit half-height subtends exactly fovy.
//
// The caller must keep fovy inside (0, 180) and the up hint off the view
// axis; degenerate inputs produce a degenerate basis rather than an error.
func NewCamera(position, target, up math3d.Vec3, fovy float64) Camera {
	forward := target.Sub(position).Normalize()

	right := forward.Cross(up).Normalize()

	// right and forward are orthonormal, so the product is already unit length.
	screenUp := right.Cross(forward)

	focal := 1 / math.Tan(fovy*0.5*math.Pi/180)

	return Camera{
		Origin:   position.Add(forward.Scale(focal)),
		Right:    right,
		Up:       screenUp,
		Position: position,
	}
}
