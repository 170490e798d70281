package trace

import (
	"math"
	"testing"

	"github.com/taigrr/spherecast/pkg/math3d"
)

func TestSphereIntersect(t *testing.T) {
	sphere := Sphere{Center: math3d.V3(0, 0, -2), Radius: 1}

	tests := []struct {
		name  string
		ray   Ray
		wantT float64
		hit   bool
	}{
		{
			// Head-on from (0,0,2): near surface at z = -1, distance 3.
			"head on",
			Ray{Origin: math3d.V3(0, 0, 2), Dir: math3d.V3(0, 0, -1)},
			3,
			true,
		},
		{
			// Direction along +x never comes within the radius.
			"miss sideways",
			Ray{Origin: math3d.V3(0, 0, 2), Dir: math3d.V3(1, 0, 0)},
			0,
			false,
		},
		{
			// Grazing the sphere exactly at |y| = radius.
			"tangent",
			Ray{Origin: math3d.V3(0, 1, 2), Dir: math3d.V3(0, 0, -1)},
			4,
			true,
		},
		{
			// Unnormalized direction scales the reported distance down.
			"unnormalized direction",
			Ray{Origin: math3d.V3(0, 0, 2), Dir: math3d.V3(0, 0, -2)},
			1.5,
			true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := sphere.Intersect(tc.ray)
			if !tc.hit {
				if got >= 0 {
					t.Errorf("Intersect = %v, want negative sentinel", got)
				}
				return
			}
			if math.Abs(got-tc.wantT) > 1e-12 {
				t.Errorf("Intersect = %v, want %v", got, tc.wantT)
			}
		})
	}
}

func TestSphereBehindRayIsNegative(t *testing.T) {
	sphere := Sphere{Center: math3d.V3(0, 0, 5), Radius: 1}
	r := Ray{Origin: math3d.V3(0, 0, 2), Dir: math3d.V3(0, 0, -1)}

	// The discriminant is positive but the near root lies behind the
	// origin; the caller-side t < 0 check treats it as a miss.
	if got := sphere.Intersect(r); got >= 0 {
		t.Errorf("Intersect = %v, want negative for a sphere behind the ray", got)
	}
}

func TestNearestPicksClosest(t *testing.T) {
	sc := &Scene{
		Spheres: []Sphere{
			{Center: math3d.V3(0, 0, -6), Radius: 1, MaterialIndex: 0},
			{Center: math3d.V3(0, 0, -2), Radius: 1, MaterialIndex: 0},
		},
	}
	r := Ray{Origin: math3d.V3(0, 0, 2), Dir: math3d.V3(0, 0, -1)}

	hit, ok := sc.Nearest(r)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Index != 1 {
		t.Errorf("hit sphere %d, want 1 (the nearer one)", hit.Index)
	}
	if math.Abs(hit.T-3) > 1e-12 {
		t.Errorf("hit distance = %v, want 3", hit.T)
	}
}

func TestNearestTieBreakScanOrder(t *testing.T) {
	// Two identical spheres produce identical distances; the strict <
	// comparison keeps the first one scanned.
	sphere := Sphere{Center: math3d.V3(0, 0, -2), Radius: 1}
	sc := &Scene{Spheres: []Sphere{sphere, sphere}}
	r := Ray{Origin: math3d.V3(0, 0, 2), Dir: math3d.V3(0, 0, -1)}

	hit, ok := sc.Nearest(r)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Index != 0 {
		t.Errorf("tie broke to sphere %d, want 0", hit.Index)
	}
}

func TestNearestMiss(t *testing.T) {
	sc := DefaultScene()
	r := Ray{Origin: math3d.V3(0, 0, 2), Dir: math3d.V3(0, 1, 0)}

	if hit, ok := sc.Nearest(r); ok {
		t.Errorf("expected no hit, got sphere %d at t=%v", hit.Index, hit.T)
	}
}

func TestNearestEmptyScene(t *testing.T) {
	sc := &Scene{}
	r := Ray{Origin: math3d.V3(0, 0, 2), Dir: math3d.V3(0, 0, -1)}

	if _, ok := sc.Nearest(r); ok {
		t.Error("empty scene reported a hit")
	}
}
