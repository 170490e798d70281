package models

import (
	"math"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/spherecast/pkg/math3d"
)

func TestLoadSceneInvalidPath(t *testing.T) {
	_, err := LoadScene("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func intPtr(i int) *int { return &i }

func TestSceneFromDocument(t *testing.T) {
	red := [4]float64{0.8, 0.1, 0.1, 1}
	smooth := 0.2

	doc := &gltf.Document{
		Materials: []*gltf.Material{
			{
				Name: "red",
				PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
					BaseColorFactor: &red,
					RoughnessFactor: &smooth,
				},
			},
		},
		Meshes: []*gltf.Mesh{
			{Primitives: []*gltf.Primitive{{Material: intPtr(0)}}},
		},
		Nodes: []*gltf.Node{
			{
				Mesh:        intPtr(0),
				Translation: [3]float64{1, 0, -2},
				Scale:       [3]float64{2, 2, 2},
			},
			{Name: "empty"}, // no mesh, ignored
		},
	}

	scene, err := sceneFromDocument(doc)
	if err != nil {
		t.Fatalf("sceneFromDocument: %v", err)
	}

	if len(scene.Spheres) != 1 {
		t.Fatalf("sphere count = %d, want 1", len(scene.Spheres))
	}
	sp := scene.Spheres[0]
	if sp.Center != math3d.V3(1, 0, -2) {
		t.Errorf("center = %v, want (1, 0, -2)", sp.Center)
	}
	if sp.Radius != 2 {
		t.Errorf("radius = %v, want 2", sp.Radius)
	}
	if sp.MaterialIndex != 0 {
		t.Errorf("material index = %d, want 0", sp.MaterialIndex)
	}

	if len(scene.Materials) != 1 {
		t.Fatalf("material count = %d, want 1", len(scene.Materials))
	}
	mat := scene.Materials[0]
	if mat.Diffuse != math3d.V4(0.8, 0.1, 0.1, 0) {
		t.Errorf("diffuse = %v, want base color", mat.Diffuse)
	}
	if mat.Ambient != math3d.V4(0.8, 0.1, 0.1, 1) {
		t.Errorf("ambient = %v, want base color with alpha", mat.Ambient)
	}
	want := 1 + (1-smooth)*127
	if math.Abs(mat.Shininess-want) > 1e-12 {
		t.Errorf("shininess = %v, want %v", mat.Shininess, want)
	}

	// Camera and lights come from the defaults.
	if len(scene.Lights) != 2 {
		t.Errorf("light count = %d, want default 2", len(scene.Lights))
	}
}

func TestSceneFromDocumentDefaults(t *testing.T) {
	// A document with bare nodes: no materials, no scale, no primitive
	// material binding. Spheres get unit radius and cycle through the
	// default material list.
	doc := &gltf.Document{
		Meshes: []*gltf.Mesh{{Primitives: []*gltf.Primitive{{}}}},
		Nodes: []*gltf.Node{
			{Mesh: intPtr(0), Translation: [3]float64{0, 0, -3}},
			{Mesh: intPtr(0), Translation: [3]float64{2, 0, -3}},
			{Mesh: intPtr(0), Translation: [3]float64{4, 0, -3}},
		},
	}

	scene, err := sceneFromDocument(doc)
	if err != nil {
		t.Fatalf("sceneFromDocument: %v", err)
	}

	if len(scene.Spheres) != 3 {
		t.Fatalf("sphere count = %d, want 3", len(scene.Spheres))
	}
	for i, sp := range scene.Spheres {
		if sp.Radius != 1 {
			t.Errorf("sphere %d radius = %v, want default 1", i, sp.Radius)
		}
		if sp.MaterialIndex != i%len(scene.Materials) {
			t.Errorf("sphere %d material = %d, want %d", i, sp.MaterialIndex, i%len(scene.Materials))
		}
		if sp.MaterialIndex >= len(scene.Materials) {
			t.Errorf("sphere %d material index out of range", i)
		}
	}
}

func TestSceneFromDocumentNoSpheres(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{{Name: "camera rig"}},
	}

	if _, err := sceneFromDocument(doc); err == nil {
		t.Error("expected error for a document with no mesh nodes")
	}
}
