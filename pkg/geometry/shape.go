package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// HitRecord contains information about a ray-sphere intersection
type HitRecord struct {
	Point       core.Vec3 // Point of intersection
	Normal      core.Vec3 // Unit surface normal, facing the side the ray came from
	T           float64   // Parameter t along the ray
	FromOutside bool      // Whether the ray origin was outside the sphere
	Sphere      *Sphere   // Sphere that was hit
	SphereIndex int       // Position of Sphere in the scene list, -1 when unknown
}

// NearestHit scans every sphere and returns the hit closest along the ray.
// Distance is compared by ray parameter, so any camera orientation works.
func NearestHit(ray core.Ray, spheres []Sphere) (*HitRecord, bool) {
	var closestHit *HitRecord
	closestSoFar := 0.0

	for i := range spheres {
		hit, isHit := spheres[i].Hit(ray)
		if !isHit {
			continue
		}
		if closestHit == nil || hit.T < closestSoFar {
			hit.SphereIndex = i
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// FirstHit returns the hit on the first sphere in declaration order that the
// ray touches, regardless of distance
func FirstHit(ray core.Ray, spheres []Sphere) (*HitRecord, bool) {
	for i := range spheres {
		if hit, isHit := spheres[i].Hit(ray); isHit {
			hit.SphereIndex = i
			return hit, true
		}
	}
	return nil, false
}
