package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace returns the color carried back along ray. depth counts the
	// bounces already taken; the primary ray starts at 0.
	Trace(ray core.Ray, depth int) core.Vec3
}

// HitScope selects which sphere a ray is considered to hit
type HitScope int

const (
	// ScopeNearest takes the hit closest along the ray
	ScopeNearest HitScope = iota
	// ScopeFirstInList takes the first sphere in declaration order that the ray touches
	ScopeFirstInList
	// ScopeFirstSphere only tests the first sphere of the scene
	ScopeFirstSphere
)

// Features toggles the individual terms of the Whitted model. The zero value
// traces silhouettes of nothing; use AllFeatures for the complete model.
type Features struct {
	Scope HitScope

	Silhouette bool // Any hit is white, no shading

	BaseColor    bool // Material Color*KColor
	Diffuse      bool
	Ambient      bool
	Specular     bool
	Texture      bool // Blend Kd with the sphere texture
	Shadow       bool // Occlude diffuse and specular
	Reflection   bool
	Transmission bool
}

// AllFeatures enables every term with nearest-hit intersection
func AllFeatures() Features {
	return Features{
		Scope:        ScopeNearest,
		BaseColor:    true,
		Diffuse:      true,
		Ambient:      true,
		Specular:     true,
		Texture:      true,
		Shadow:       true,
		Reflection:   true,
		Transmission: true,
	}
}
