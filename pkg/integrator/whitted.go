package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Whitted implements recursive Whitted ray tracing: local Phong shading from
// the first light plus mirror reflection and refraction, bounded by maxDepth.
// It only reads the scene, so one instance may be shared by many goroutines.
type Whitted struct {
	scene    *scene.Scene
	features Features
	maxDepth int
}

// NewWhitted creates a Whitted integrator over a validated scene
func NewWhitted(s *scene.Scene, features Features, maxDepth int) *Whitted {
	return &Whitted{
		scene:    s,
		features: features,
		maxDepth: maxDepth,
	}
}

// Trace returns the color seen along ray. Rays at or past maxDepth, and rays
// that miss every sphere, return the skybox. Each recursive call increments
// depth, so recursion ends after at most maxDepth levels.
func (w *Whitted) Trace(ray core.Ray, depth int) core.Vec3 {
	if depth >= w.maxDepth {
		return w.background(ray)
	}

	hit, isHit := w.intersect(ray)
	if !isHit {
		return w.background(ray)
	}
	if w.features.Silhouette {
		return core.Splat(1)
	}

	m := w.scene.Material(hit.Sphere)

	var color core.Vec3
	if w.features.BaseColor {
		color = m.BaseColor()
	}
	color = color.Add(w.localColor(hit, m))

	if depth+1 >= w.maxDepth {
		return color
	}

	if w.features.Reflection && m.KReflection > 0 {
		reflected := w.traceReflection(ray, hit, depth)
		color = color.Add(reflected.Multiply(m.KReflection))
	}

	if w.features.Transmission && m.KTransmission > 0 {
		transmitted := w.traceTransmission(ray, hit, m, depth)
		color = color.Add(transmitted.Multiply(m.KTransmission))
	}

	return color
}

func (w *Whitted) background(ray core.Ray) core.Vec3 {
	if w.scene.Skybox == nil {
		return core.Vec3{}
	}
	return w.scene.Skybox.SampleDirection(ray.Direction)
}

func (w *Whitted) intersect(ray core.Ray) (*geometry.HitRecord, bool) {
	spheres := w.scene.Spheres
	switch w.features.Scope {
	case ScopeFirstSphere:
		if len(spheres) == 0 {
			return nil, false
		}
		return geometry.FirstHit(ray, spheres[:1])
	case ScopeFirstInList:
		return geometry.FirstHit(ray, spheres)
	default:
		return geometry.NearestHit(ray, spheres)
	}
}

// localColor shades the hit with the first light only. Without lights only
// ambient contributes.
func (w *Whitted) localColor(hit *geometry.HitRecord, m *material.Material) core.Vec3 {
	f := w.features
	if len(w.scene.Lights) == 0 {
		if f.Ambient {
			return m.Ka
		}
		return core.Vec3{}
	}
	light := w.scene.Lights[0]

	kd := m.Kd
	if f.Texture {
		kd = CombineDiffuseWithTexture(hit.Point, hit.Sphere.Center, w.scene.Texture(hit.Sphere), m.Kd, m.KTexture)
	}

	terms := LocalComponents(hit.Point, hit.Normal, light, kd, m.Ks, m.Ka, m.Shininess)
	if f.Shadow && (f.Diffuse || f.Specular) && IsInShadow(light, hit.Point, hit.Normal, w.scene.Spheres) {
		terms.Diffuse = core.Vec3{}
		terms.Specular = core.Vec3{}
	}

	var color core.Vec3
	if f.Diffuse {
		color = color.Add(terms.Diffuse)
	}
	if f.Ambient {
		color = color.Add(terms.Ambient)
	}
	if f.Specular {
		color = color.Add(terms.Specular)
	}
	return color
}

func (w *Whitted) traceReflection(ray core.Ray, hit *geometry.HitRecord, depth int) core.Vec3 {
	direction := core.Reflect(ray.Direction, hit.Normal).Normalize()
	origin := hit.Point.Add(hit.Normal.Multiply(Epsilon))
	return w.Trace(core.NewRay(origin, direction), depth+1)
}

// traceTransmission refracts into or out of the sphere. On total internal
// reflection the mirror direction is traced instead.
func (w *Whitted) traceTransmission(ray core.Ray, hit *geometry.HitRecord, m *material.Material, depth int) core.Vec3 {
	etaRatio := 1 / m.RefractiveIndex
	if !hit.FromOutside {
		etaRatio = m.RefractiveIndex
	}

	direction, refracted := core.Refract(ray.Direction, hit.Normal, etaRatio)
	if !refracted {
		return w.traceReflection(ray, hit, depth)
	}

	origin := hit.Point.Subtract(hit.Normal.Multiply(Epsilon))
	return w.Trace(core.NewRay(origin, direction), depth+1)
}
