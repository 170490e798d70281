package trace

import (
	"math"

	"github.com/taigrr/spherecast/pkg/math3d"
)

// Default offline render resolution.
const (
	DefaultWidth  = 960
	DefaultHeight = 540
)

// Light is a point light. Position is homogeneous; the W component is
// carried but plays no directional role.
type Light struct {
	Ambient  math3d.Vec4
	Diffuse  math3d.Vec4
	Specular math3d.Vec4
	Position math3d.Vec4
}

// Material holds Phong reflectance coefficients. Shininess ≥ 1 controls the
// sharpness of the specular highlight.
type Material struct {
	Ambient   math3d.Vec4
	Diffuse   math3d.Vec4
	Specular  math3d.Vec4
	Shininess float64
}

// Scene is the read-only aggregate consumed by one render. The renderer
// never mutates it; whoever builds a Scene owns it and must not touch it
// while a render is in flight.
type Scene struct {
	Camera     Camera
	Lights     []Light
	Materials  []Material
	Spheres    []Sphere
	Background math3d.Vec4
}

// Hit identifies the nearest intersection along a ray.
type Hit struct {
	T     float64
	Index int
}

// Nearest scans every sphere in order and returns the closest hit with a
// non-negative distance. The comparison is strict, so among equidistant
// spheres the first in scan order wins. The second return is false when
// nothing is hit.
func (sc *Scene) Nearest(r Ray) (Hit, bool) {
	hit := Hit{T: math.Inf(1), Index: -1}

	for i, sp := range sc.Spheres {
		t := sp.Intersect(r)
		if t < 0 {
			continue
		}
		if t < hit.T {
			hit.T = t
			hit.Index = i
		}
	}

	return hit, hit.Index >= 0
}

// DefaultScene builds the built-in demo scene: two unit spheres, one red and
// one blue, lit by a white key light and a dim yellow fill.
func DefaultScene() *Scene {
	return &Scene{
		Camera: NewCamera(
			math3d.V3(0, 0, 2),
			math3d.V3(0, 0, 0),
			math3d.Up(),
			60,
		),
		Lights: []Light{
			{
				Ambient:  math3d.V4(0.2, 0.2, 0.2, 1),
				Diffuse:  math3d.V4(1, 1, 1, 0),
				Specular: math3d.V4(1, 1, 1, 0),
				Position: math3d.V4(3, 4, 5, 1),
			},
			{
				Ambient:  math3d.V4(0.1, 0.1, 0, 1),
				Diffuse:  math3d.V4(0.5, 0.5, 0, 0),
				Specular: math3d.V4(0.5, 0.5, 0, 0),
				Position: math3d.V4(-5, 1, 3, 1),
			},
		},
		Materials: []Material{
			{
				Ambient:   math3d.V4(0.6, 0.1, 0.1, 1),
				Diffuse:   math3d.V4(0.6, 0.1, 0.1, 0),
				Specular:  math3d.V4(0.3, 0.3, 0.3, 0),
				Shininess: 100,
			},
			{
				Ambient:   math3d.V4(0.1, 0.1, 0.6, 1),
				Diffuse:   math3d.V4(0.1, 0.1, 0.6, 0),
				Specular:  math3d.V4(0.3, 0.3, 0.3, 0),
				Shininess: 100,
			},
		},
		Spheres: []Sphere{
			{Center: math3d.V3(1, 0, -2), Radius: 1, MaterialIndex: 0},
			{Center: math3d.V3(-1, 0, -1), Radius: 1, MaterialIndex: 1},
		},
		Background: math3d.V4(0.12, 0.12, 0.16, 1),
	}
}
