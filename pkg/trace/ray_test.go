package trace

import (
	"math"
	"testing"

	"github.com/taigrr/spherecast/pkg/math3d"
)

func TestRayThroughCenterPixel(t *testing.T) {
	cam := NewCamera(math3d.V3(0, 0, 2), math3d.V3(0, 0, 0), math3d.Up(), 60)

	// The pixel at the exact screen center maps to s = t = 0, so the ray
	// passes straight through the screen origin.
	r := cam.RayThrough(480, 270, 960, 540)

	if r.Origin != cam.Position {
		t.Errorf("ray origin = %v, want eye %v", r.Origin, cam.Position)
	}
	want := cam.Origin.Sub(cam.Position)
	if r.Dir != want {
		t.Errorf("center ray dir = %v, want %v", r.Dir, want)
	}
}

func TestRayThroughAspectNormalization(t *testing.T) {
	cam := NewCamera(math3d.V3(0, 0, 2), math3d.V3(0, 0, 0), math3d.Up(), 60)

	// Both axes divide by the vertical half-extent: one pixel to the right
	// and one pixel up must step the direction by the same world distance.
	center := cam.RayThrough(480, 270, 960, 540)
	stepX := cam.RayThrough(481, 270, 960, 540)
	stepY := cam.RayThrough(480, 271, 960, 540)

	dx := stepX.Dir.Sub(center.Dir)
	dy := stepY.Dir.Sub(center.Dir)

	if got, want := dx.Len(), dy.Len(); math.Abs(got-want) > 1e-12 {
		t.Errorf("pixel step |dx| = %v, |dy| = %v, want equal", got, want)
	}
	if want := cam.Right.Scale(1.0 / 270); dx.Sub(want).Len() > 1e-12 {
		t.Errorf("x step = %v, want %v", dx, want)
	}
	if want := cam.Up.Scale(1.0 / 270); dy.Sub(want).Len() > 1e-12 {
		t.Errorf("y step = %v, want %v", dy, want)
	}
}

func TestRayThroughResolutionInvariance(t *testing.T) {
	cam := NewCamera(math3d.V3(1, 2, 3), math3d.V3(0, 0, -1), math3d.Up(), 45)

	// Doubling both dimensions maps pixel (2x, 2y) to the same normalized
	// screen coordinate, so the direction must be bit-identical.
	for _, px := range [][2]int{{0, 0}, {17, 42}, {100, 49}, {159, 89}} {
		lo := cam.RayThrough(px[0], px[1], 160, 90)
		hi := cam.RayThrough(2*px[0], 2*px[1], 320, 180)

		if lo.Dir != hi.Dir {
			t.Errorf("pixel %v: dir %v != doubled-resolution dir %v", px, lo.Dir, hi.Dir)
		}
	}
}

func TestRayThroughDeterminism(t *testing.T) {
	cam := NewCamera(math3d.V3(0, 1, 4), math3d.V3(0, 0, 0), math3d.Up(), 70)

	a := cam.RayThrough(123, 45, 640, 360)
	b := cam.RayThrough(123, 45, 640, 360)

	if a != b {
		t.Errorf("identical inputs produced different rays: %v vs %v", a, b)
	}
}

func TestRayAt(t *testing.T) {
	r := Ray{Origin: math3d.V3(1, 0, 0), Dir: math3d.V3(0, 2, 0)}

	if got := r.At(1.5); got != math3d.V3(1, 3, 0) {
		t.Errorf("At(1.5) = %v, want (1, 3, 0)", got)
	}
	if got := r.At(0); got != r.Origin {
		t.Errorf("At(0) = %v, want origin", got)
	}
}
