package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Epsilon offsets secondary ray origins off the surface they start on
const Epsilon = 1e-4

// LocalTerms holds the three Phong terms of a single light, unclamped
type LocalTerms struct {
	Diffuse  core.Vec3
	Ambient  core.Vec3
	Specular core.Vec3
}

// Sum returns diffuse + ambient + specular
func (t LocalTerms) Sum() core.Vec3 {
	return t.Diffuse.Add(t.Ambient).Add(t.Specular)
}

// LocalComponents evaluates Phong lighting at point for a single light.
// The eye is at the origin. Specular is only computed when the light is on
// the normal's side of the surface.
func LocalComponents(point, normal core.Vec3, light lights.PointLight, kd, ks, ka core.Vec3, shininess float64) LocalTerms {
	lightDir, _ := light.DirectionFrom(point)
	nDotL := normal.Dot(lightDir)

	terms := LocalTerms{
		Diffuse: kd.Multiply(max(0, nDotL)),
		Ambient: ka,
	}

	if nDotL >= 0 {
		// Mirror of the light direction about the normal
		r := normal.Multiply(2 * nDotL).Subtract(lightDir)
		eye := point.Negate().Normalize()
		terms.Specular = ks.Multiply(math.Pow(max(0, eye.Dot(r)), shininess))
	}

	return terms
}

// LocalShade returns the summed Phong color, see LocalComponents
func LocalShade(point, normal core.Vec3, light lights.PointLight, kd, ks, ka core.Vec3, shininess float64) core.Vec3 {
	return LocalComponents(point, normal, light, kd, ks, ka, shininess).Sum()
}

// CombineDiffuseWithTexture blends baseKd toward the texture color seen from
// the sphere center through point. A nil texture leaves baseKd unchanged.
func CombineDiffuseWithTexture(point, center core.Vec3, texture *material.ImageTexture, baseKd core.Vec3, kTexture float64) core.Vec3 {
	if texture == nil || kTexture == 0 {
		return baseKd
	}
	textureColor := texture.SampleDirection(point.Subtract(center))
	if kTexture == 1 {
		return textureColor
	}
	return baseKd.Multiply(1 - kTexture).Add(textureColor.Multiply(kTexture))
}

// IsInShadow reports whether any sphere lies between point and the light.
// The shadow ray starts Epsilon along normal to avoid hitting its own surface.
func IsInShadow(light lights.PointLight, point, normal core.Vec3, spheres []geometry.Sphere) bool {
	origin := point.Add(normal.Multiply(Epsilon))
	toLight, distance := light.DirectionFrom(origin)
	if distance == 0 {
		return false
	}

	hit, isHit := geometry.NearestHit(core.NewRay(origin, toLight), spheres)
	return isHit && hit.T < distance
}
