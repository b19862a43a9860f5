package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	tests := []struct {
		name   string
		origin core.Vec3
		dir    core.Vec3
	}{
		{"closest approach beyond radius", core.NewVec3(1, 1, 1), core.NewVec3(1, 1, -1).Normalize()},
		{"sphere behind the origin", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)},
		{"parallel offset ray", core.NewVec3(6, 0, 0), core.NewVec3(0, 0, -1)},
	}

	sphere := NewSphere(core.NewVec3(0, 0, -10), 5, 0, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(core.NewRay(tt.origin, tt.dir))
			if isHit {
				t.Errorf("Expected miss, but got hit at %v", hit.Point)
			}
		})
	}
}

func TestSphere_Hit_Cases(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -10), 5, 0, 0)

	tests := []struct {
		name          string
		origin        core.Vec3
		dir           core.Vec3
		expectedPoint core.Vec3
		expectedNorm  core.Vec3
		expectedT     float64
		fromOutside   bool
	}{
		{
			name:          "through the centre line from outside",
			origin:        core.NewVec3(0, 0, -20),
			dir:           core.NewVec3(0, 0, 1),
			expectedPoint: core.NewVec3(0, 0, -15),
			expectedNorm:  core.NewVec3(0, 0, -1),
			expectedT:     5,
			fromOutside:   true,
		},
		{
			name:          "camera looking down -z",
			origin:        core.NewVec3(0, 0, 0),
			dir:           core.NewVec3(0, 0, -1),
			expectedPoint: core.NewVec3(0, 0, -5),
			expectedNorm:  core.NewVec3(0, 0, 1),
			expectedT:     5,
			fromOutside:   true,
		},
		{
			name:          "origin at the centre",
			origin:        core.NewVec3(0, 0, -10),
			dir:           core.NewVec3(0, 0, 1),
			expectedPoint: core.NewVec3(0, 0, -5),
			expectedNorm:  core.NewVec3(0, 0, -1),
			expectedT:     5,
			fromOutside:   false,
		},
		{
			name:          "origin inside, off centre",
			origin:        core.NewVec3(0, 0, -12),
			dir:           core.NewVec3(0, 0, 1),
			expectedPoint: core.NewVec3(0, 0, -5),
			expectedNorm:  core.NewVec3(0, 0, -1),
			expectedT:     7,
			fromOutside:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(core.NewRay(tt.origin, tt.dir))
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			const tolerance = 1e-9
			if !hit.Point.ApproxEqual(tt.expectedPoint, tolerance) {
				t.Errorf("Expected hit point %v, got %v", tt.expectedPoint, hit.Point)
			}
			if !hit.Normal.ApproxEqual(tt.expectedNorm, tolerance) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNorm, hit.Normal)
			}
			if math.Abs(hit.T-tt.expectedT) > tolerance {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FromOutside != tt.fromOutside {
				t.Errorf("Expected FromOutside %t, got %t", tt.fromOutside, hit.FromOutside)
			}
			if hit.Sphere != &sphere {
				t.Error("Expected hit record to reference the intersected sphere")
			}
		})
	}
}

func TestSphere_Hit_Tangent(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -10), 5, 0, 0)
	dir := core.NewVec3(1, 0, 0)

	hit, isHit := sphere.Hit(core.NewRay(core.NewVec3(-5, 0, -5), dir))
	if !isHit {
		t.Fatal("Expected tangent hit, but got miss")
	}

	const tolerance = 1e-9
	if !hit.Point.ApproxEqual(core.NewVec3(0, 0, -5), tolerance) {
		t.Errorf("Expected tangent point (0,0,-5), got %v", hit.Point)
	}
	if !hit.Normal.ApproxEqual(core.NewVec3(0, 0, 1), tolerance) {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
	if math.Abs(hit.Normal.Dot(dir)) > tolerance {
		t.Errorf("Tangent normal should be perpendicular to the ray, dot=%g", hit.Normal.Dot(dir))
	}
	if !hit.FromOutside {
		t.Error("Expected tangent hit from outside")
	}
}

func TestNearestHit_ComparesByRayParameter(t *testing.T) {
	tests := []struct {
		name          string
		dir           core.Vec3
		spheres       []Sphere
		expectedIndex int
		expectedT     float64
	}{
		{
			name: "looking down -z, far sphere declared first",
			dir:  core.NewVec3(0, 0, -1),
			spheres: []Sphere{
				NewSphere(core.NewVec3(0, 0, -10), 1, 0, 0),
				NewSphere(core.NewVec3(0, 0, -5), 1, 1, 0),
			},
			expectedIndex: 1,
			expectedT:     4,
		},
		{
			name: "looking down +z",
			dir:  core.NewVec3(0, 0, 1),
			spheres: []Sphere{
				NewSphere(core.NewVec3(0, 0, 10), 1, 0, 0),
				NewSphere(core.NewVec3(0, 0, 5), 1, 1, 0),
			},
			expectedIndex: 1,
			expectedT:     4,
		},
		{
			name: "looking sideways",
			dir:  core.NewVec3(1, 0, 0),
			spheres: []Sphere{
				NewSphere(core.NewVec3(3, 0, 0), 1, 0, 0),
				NewSphere(core.NewVec3(8, 0, 0), 1, 1, 0),
			},
			expectedIndex: 0,
			expectedT:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := NearestHit(core.NewRay(core.NewVec3(0, 0, 0), tt.dir), tt.spheres)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if hit.SphereIndex != tt.expectedIndex {
				t.Errorf("Expected sphere %d, got %d", tt.expectedIndex, hit.SphereIndex)
			}
			if hit.Sphere != &tt.spheres[tt.expectedIndex] {
				t.Error("Hit record references the wrong sphere")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestNearestHit_Empty(t *testing.T) {
	if _, isHit := NearestHit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), nil); isHit {
		t.Error("Expected no hit against an empty scene")
	}
}

func TestFirstHit_UsesDeclarationOrder(t *testing.T) {
	spheres := []Sphere{
		NewSphere(core.NewVec3(0, 0, -10), 1, 0, 0),
		NewSphere(core.NewVec3(0, 0, -5), 1, 1, 0),
	}

	hit, isHit := FirstHit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), spheres)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.SphereIndex != 0 {
		t.Errorf("Expected first declared sphere, got index %d", hit.SphereIndex)
	}
}
