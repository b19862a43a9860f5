package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material describes how a sphere surface responds to light. Every term is
// a weight that the integrator adds into the final color; nothing here is
// clamped, so over-bright results are left for the caller to clamp.
type Material struct {
	// Flat color term
	KColor float64
	Color  core.Vec3

	// Direct (Phong) lighting term
	KDirect   float64
	Ka        core.Vec3 // ambient, per channel
	Kd        core.Vec3 // diffuse, per channel
	Ks        core.Vec3 // specular, per channel
	Shininess float64

	KReflection float64

	KTransmission   float64
	RefractiveIndex float64

	// Blend between Kd (0) and the sphere texture (1)
	KTexture float64

	Comment string
}

// NewMaterial returns a material with the neutral defaults used by the
// descriptor format: black, shininess 1, refractive index 1
func NewMaterial() Material {
	return Material{
		Shininess:       1,
		RefractiveIndex: 1,
	}
}

// BaseColor returns the flat color contribution Color*KColor
func (m Material) BaseColor() core.Vec3 {
	return m.Color.Multiply(m.KColor)
}
