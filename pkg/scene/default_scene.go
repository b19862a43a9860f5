package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Names of the built-in scenes accepted by Builtin
const (
	DefaultSceneName = "default"
	MirrorSceneName  = "mirrors"
)

// Builtin returns a built-in scene by name
func Builtin(name string) (*Scene, bool) {
	switch name {
	case "", DefaultSceneName:
		return NewDefaultScene(), true
	case MirrorSceneName:
		return NewMirrorScene(), true
	default:
		return nil, false
	}
}

// NewDefaultScene creates a small showcase scene: a textured ball, gold,
// glass, a mirror and a row of plastic spheres under a sky gradient.
// Textures are procedural so the scene needs no files.
func NewDefaultScene() *Scene {
	sky := material.NewGradientTexture(64, 32, core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(0.9, 0.9, 0.85))
	checker := material.NewCheckerboardTexture(256, 128, 16, core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.3, 0.6))
	stripes := material.NewCheckerboardTexture(256, 128, 32, core.NewVec3(0.8, 0.3, 0.2), core.NewVec3(0.95, 0.85, 0.6))

	// Textured ball
	textured := material.NewMaterial()
	textured.KDirect = 1
	textured.Ka = core.Splat(0.2)
	textured.Kd = core.Splat(0.75)
	textured.Ks = core.Splat(0.1)
	textured.Shininess = 20
	textured.KTexture = 1
	textured.Comment = "textured ball"

	gold := material.NewMaterial()
	gold.KDirect = 0.9
	gold.Ka = core.NewVec3(0.24725, 0.1995, 0.0745)
	gold.Kd = core.NewVec3(0.75164, 0.60648, 0.22648)
	gold.Ks = core.NewVec3(0.628281, 0.555802, 0.366065)
	gold.Shininess = 100
	gold.RefractiveIndex = 1.52
	gold.KTexture = 0.1
	gold.Comment = "gold"

	glass := material.NewMaterial()
	glass.KDirect = 0.1
	glass.Kd = core.Splat(1)
	glass.Ks = core.Splat(1)
	glass.Shininess = 1000
	glass.KReflection = 0.1
	glass.KTransmission = 0.8
	glass.RefractiveIndex = 1.52
	glass.Comment = "glass"

	mirror := material.NewMaterial()
	mirror.KDirect = 0.3
	mirror.Ka = core.NewVec3(0.05, 0.04, 0.04)
	mirror.Kd = core.NewVec3(0.2, 0.17, 0.17)
	mirror.Ks = core.Splat(0.296648)
	mirror.Shininess = 1000
	mirror.KReflection = 0.7
	mirror.RefractiveIndex = 1.52
	mirror.Comment = "mirror"

	plastic := func(c core.Vec3) material.Material {
		m := material.NewMaterial()
		m.KDirect = 0.95
		m.Ka = core.Splat(0.15)
		m.Kd = c
		m.Ks = c
		m.Shininess = 100
		m.KReflection = 0.05
		m.RefractiveIndex = 1.52
		m.Comment = "plastic"
		return m
	}

	return &Scene{
		Comment:      "Default scene",
		FovXDegree:   60,
		SkyboxPath:   "sky.png",
		Skybox:       sky,
		TexturePaths: []string{"checker.png", "stripes.png"},
		Textures:     []*material.ImageTexture{checker, stripes},
		Lights: []lights.PointLight{
			lights.NewPointLight(core.NewVec3(6, 10, 0), 1, "key"),
		},
		Materials: []material.Material{
			textured,
			gold,
			glass,
			mirror,
			plastic(core.NewVec3(0.4, 0.4, 0.6)),
			plastic(core.NewVec3(0.4, 0.5, 0.4)),
			plastic(core.NewVec3(0.5, 0.4, 0.2)),
		},
		Spheres: []geometry.Sphere{
			geometry.NewSphere(core.NewVec3(0, -1001.5, -12), 1000, 4, 0), // floor
			geometry.NewSphere(core.NewVec3(-3, 0, -12), 1.5, 0, 0),
			geometry.NewSphere(core.NewVec3(0, 0, -12), 1.5, 1, 1),
			geometry.NewSphere(core.NewVec3(3, 0, -12), 1.5, 3, 0),
			geometry.NewSphere(core.NewVec3(0.8, -0.7, -7), 0.8, 2, 0),
			geometry.NewSphere(core.NewVec3(-1.6, -1.1, -8), 0.4, 5, 0),
			geometry.NewSphere(core.NewVec3(2.2, -1.1, -8.5), 0.4, 6, 0),
		},
	}
}

// NewMirrorScene creates two perfect mirrors facing each other along the z
// axis with the eye between them, lit only by their own flat color. Every
// bounce adds the same amount, so the rendered centre pixel measures how
// many bounces the trace took.
func NewMirrorScene() *Scene {
	mirror := material.NewMaterial()
	mirror.KColor = 1
	mirror.Color = core.Splat(0.1)
	mirror.KReflection = 1
	mirror.Comment = "flat mirror"

	return &Scene{
		Comment:      "Facing mirrors",
		FovXDegree:   10,
		Skybox:       material.NewSolidTexture(core.Vec3{}),
		TexturePaths: []string{"white.png"},
		Textures:     []*material.ImageTexture{material.NewSolidTexture(core.Splat(1))},
		Materials:    []material.Material{mirror},
		Spheres: []geometry.Sphere{
			geometry.NewSphere(core.NewVec3(0, 0, -10), 1, 0, 0),
			geometry.NewSphere(core.NewVec3(0, 0, 10), 1, 0, 0),
		},
	}
}
