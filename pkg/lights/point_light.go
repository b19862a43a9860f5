package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight is an omnidirectional light at a fixed world-space position
type PointLight struct {
	Position  core.Vec3 // Light position in world space
	Intensity float64   // Scalar weight, carried through but not applied by the shading model
	Comment   string
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, intensity float64, comment string) PointLight {
	return PointLight{
		Position:  position,
		Intensity: intensity,
		Comment:   comment,
	}
}

// DirectionFrom returns the unit direction from point toward the light and
// the distance between them
func (l PointLight) DirectionFrom(point core.Vec3) (core.Vec3, float64) {
	toLight := l.Position.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return core.Vec3{}, 0
	}
	return toLight.Multiply(1 / distance), distance
}
