package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape. The indices refer to the scene's
// material and texture lists and are validated when the scene is built.
type Sphere struct {
	Center        core.Vec3
	Radius        float64
	MaterialIndex int
	TextureIndex  int
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, materialIndex, textureIndex int) Sphere {
	return Sphere{
		Center:        center,
		Radius:        radius,
		MaterialIndex: materialIndex,
		TextureIndex:  textureIndex,
	}
}

// Hit intersects a ray with unit-length direction against the sphere.
// From outside the near intersection is returned; from inside, the far one.
// The normal always faces the side the ray came from.
func (s *Sphere) Hit(ray core.Ray) (*HitRecord, bool) {
	// Project the center onto the ray
	tm := s.Center.Subtract(ray.Origin).Dot(ray.Direction)
	if tm < 0 {
		// Closest approach is behind the origin
		return nil, false
	}

	pm := ray.At(tm)
	d := pm.Distance(s.Center)
	if d > s.Radius {
		return nil, false
	}

	// Half chord; clamp keeps tangent rays from producing NaN
	dt := math.Sqrt(max(0, s.Radius*s.Radius-d*d))

	if dt > tm {
		// Origin is inside the sphere
		point := pm.Add(ray.Direction.Multiply(dt))
		return &HitRecord{
			Point:       point,
			Normal:      s.Center.Subtract(point).Normalize(),
			T:           tm + dt,
			FromOutside: false,
			Sphere:      s,
			SphereIndex: -1,
		}, true
	}

	point := pm.Subtract(ray.Direction.Multiply(dt))
	return &HitRecord{
		Point:       point,
		Normal:      point.Subtract(s.Center).Normalize(),
		T:           tm - dt,
		FromOutside: true,
		Sphere:      s,
		SphereIndex: -1,
	}, true
}
