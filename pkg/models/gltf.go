// Package models loads sphere scenes from glTF documents, so scenes can be
// laid out in a DCC tool and viewed in the terminal.
package models

import (
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/spherecast/pkg/math3d"
	"github.com/taigrr/spherecast/pkg/trace"
)

// LoadScene reads a .glb or .gltf file and builds a traceable scene from it.
// Every node that references a mesh becomes a sphere: the node translation
// is the center and the X scale is the radius (unit spheres in the source
// document, uniformly scaled). glTF PBR materials map onto Phong materials.
//
// glTF has no camera rig or point lights in its core schema, so the default
// camera and lights are kept; the viewer edits those interactively anyway.
func LoadScene(path string) (*trace.Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return sceneFromDocument(doc)
}

func sceneFromDocument(doc *gltf.Document) (*trace.Scene, error) {
	scene := trace.DefaultScene()

	if len(doc.Materials) > 0 {
		mats := make([]trace.Material, len(doc.Materials))
		for i, m := range doc.Materials {
			mats[i] = phongMaterial(m)
		}
		scene.Materials = mats
	}

	var spheres []trace.Sphere
	for _, node := range doc.Nodes {
		if node.Mesh == nil {
			continue
		}

		radius := node.Scale[0]
		if radius == 0 {
			// Scale omitted in the document; glTF's default is identity.
			radius = 1
		}

		spheres = append(spheres, trace.Sphere{
			Center: math3d.V3(
				node.Translation[0],
				node.Translation[1],
				node.Translation[2],
			),
			Radius:        radius,
			MaterialIndex: materialIndex(doc, *node.Mesh, len(spheres), len(scene.Materials)),
		})
	}
	if len(spheres) == 0 {
		return nil, fmt.Errorf("no mesh nodes in document")
	}
	scene.Spheres = spheres

	return scene, nil
}

// materialIndex resolves the material bound to a mesh's first primitive,
// falling back to cycling through the material list for unbound meshes.
func materialIndex(doc *gltf.Document, meshIdx, sphereOrdinal, materialCount int) int {
	if meshIdx >= 0 && meshIdx < len(doc.Meshes) {
		mesh := doc.Meshes[meshIdx]
		if len(mesh.Primitives) > 0 && mesh.Primitives[0].Material != nil {
			if idx := *mesh.Primitives[0].Material; idx < materialCount {
				return idx
			}
		}
	}
	return sphereOrdinal % materialCount
}

// phongMaterial converts a glTF PBR material to Phong coefficients: the base
// color drives ambient and diffuse, the specular tint stays neutral, and
// roughness sets the highlight exponent (rough 1 → shininess 1, smooth 0 →
// shininess 128).
func phongMaterial(m *gltf.Material) trace.Material {
	base := [4]float64{1, 1, 1, 1}
	roughness := 1.0

	if pbr := m.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			base = *pbr.BaseColorFactor
		}
		if pbr.RoughnessFactor != nil {
			roughness = *pbr.RoughnessFactor
		}
	}

	return trace.Material{
		Ambient:   math3d.V4(base[0], base[1], base[2], base[3]),
		Diffuse:   math3d.V4(base[0], base[1], base[2], 0),
		Specular:  math3d.V4(0.3, 0.3, 0.3, 0),
		Shininess: 1 + (1-roughness)*127,
	}
}
