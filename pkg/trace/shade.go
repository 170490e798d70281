package trace

import (
	"math"

	"github.com/taigrr/spherecast/pkg/math3d"
)

// Shade evaluates Phong ambient, diffuse and specular reflectance at the hit
// point, accumulated over every light. The result is unclamped linear color;
// quantizing it into a displayable range is the presentation layer's job.
func (sc *Scene) Shade(r Ray, hit Hit) math3d.Vec4 {
	p := r.At(hit.T)
	sp := sc.Spheres[hit.Index]

	n := p.Sub(sp.Center).Normalize()

	// Unit ray direction, pointing into the surface.
	v := r.Dir.Normalize()

	mat := sc.Materials[sp.MaterialIndex]

	var intensity math3d.Vec4
	for _, light := range sc.Lights {
		l := light.Position.Vec3().Sub(p).Normalize()

		// v points into the surface, so the half vector is l - v, not l + v.
		h := l.Sub(v).Normalize()

		ambient := mat.Ambient.Mul(light.Ambient)
		diffuse := mat.Diffuse.Mul(light.Diffuse).
			Scale(math.Max(n.Dot(l), 0))
		specular := mat.Specular.Mul(light.Specular).
			Scale(math.Pow(math.Max(n.Dot(h), 0), mat.Shininess))

		intensity = intensity.Add(ambient).Add(diffuse).Add(specular)
	}

	return intensity
}
