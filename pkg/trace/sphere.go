package trace

import (
	"math"

	"github.com/taigrr/spherecast/pkg/math3d"
)

// NoHit is the sentinel distance reported when a ray misses a sphere.
const NoHit = -1.0

// Sphere is a scene primitive. MaterialIndex must address a valid entry of
// the scene's material list; the kernel does not validate it.
type Sphere struct {
	Center        math3d.Vec3
	Radius        float64
	MaterialIndex int
}

// Intersect returns the distance along the ray to the near surface of the
// sphere, or NoHit when the ray misses. Only the entering root of the
// quadratic is considered; rays are assumed to originate outside every
// sphere, so the exiting root is never wanted. A sphere behind the ray
// origin yields a negative distance, which callers treat as a miss.
func (s Sphere) Intersect(r Ray) float64 {
	f := r.Origin.Sub(s.Center)

	a := r.Dir.Dot(r.Dir)
	b := f.Dot(r.Dir)
	c := f.Dot(f) - s.Radius*s.Radius

	disc := b*b - a*c
	if disc < 0 {
		return NoHit
	}

	return (-b - math.Sqrt(disc)) / a
}
