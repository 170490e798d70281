package trace

import "github.com/taigrr/spherecast/pkg/math3d"

// Ray is a half-line in world space.
type Ray struct {
	Origin math3d.Vec3
	Dir    math3d.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) math3d.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// RayThrough maps pixel (x, y) of a width×height image to a world-space ray
// from the eye. Both screen axes are normalized by the vertical half-extent,
// which preserves aspect ratio and ties pixel coordinates to the screen's
// unit half-height. Pixel y grows upward, matching the Up basis vector.
//
// Dir is left unnormalized; its magnitude carries through the intersection
// math unchanged. Callers that need a unit direction normalize explicitly.
func (c Camera) RayThrough(x, y, width, height int) Ray {
	cx := float64(width) * 0.5
	cy := float64(height) * 0.5

	s := (float64(x) - cx) / cy
	t := (float64(y) - cy) / cy

	dir := c.Origin.
		Add(c.Right.Scale(s)).
		Add(c.Up.Scale(t)).
		Sub(c.Position)

	return Ray{Origin: c.Position, Dir: dir}
}
