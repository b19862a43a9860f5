package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// InspectResponse describes what the camera ray through a pixel hits
type InspectResponse struct {
	Hit         bool                   `json:"hit"`
	Sphere      int                    `json:"sphere"`
	Point       [3]float64             `json:"point"`
	Normal      [3]float64             `json:"normal"`
	Distance    float64                `json:"distance"`
	FromOutside bool                   `json:"fromOutside"`
	Color       [3]float64             `json:"color"`
	Material    map[string]interface{} `json:"material,omitempty"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func materialProperties(m *material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"kColor":          m.KColor,
		"color":           toArray(m.Color),
		"kDirect":         m.KDirect,
		"ka":              toArray(m.Ka),
		"kd":              toArray(m.Kd),
		"ks":              toArray(m.Ks),
		"shininess":       m.Shininess,
		"kReflection":     m.KReflection,
		"kTransmission":   m.KTransmission,
		"refractiveIndex": m.RefractiveIndex,
		"kTexture":        m.KTexture,
	}
	if m.Comment != "" {
		properties["comment"] = m.Comment
	}
	return properties
}

// handleInspect reports the nearest sphere along the primary ray of a pixel
func (s *Server) handleInspect(c echo.Context) error {
	x, y, err := pixelParams(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	rt, err := s.session.Snapshot()
	if err != nil {
		return jsonError(c, statusFor(err), err)
	}
	if rt.Scene() == nil {
		return jsonError(c, http.StatusConflict, renderer.ErrNoScene)
	}
	if !rt.InBounds(x, y) {
		return jsonError(c, http.StatusBadRequest, renderer.ErrPixelOutOfRange)
	}

	sc := rt.Scene()
	ray := renderer.NewCamera(rt.Width(), rt.Height(), sc.FovXDegree).GetRay(x, y)
	response := InspectResponse{
		Sphere: -1,
		Color:  toArray(rt.RenderPixel(x, y)),
	}

	hit, ok := geometry.NearestHit(ray, sc.Spheres)
	if ok {
		response.Hit = true
		response.Sphere = hit.SphereIndex
		response.Point = toArray(hit.Point)
		response.Normal = toArray(hit.Normal)
		response.Distance = hit.T
		response.FromOutside = hit.FromOutside
		response.Material = materialProperties(sc.Material(hit.Sphere))
	}

	return c.JSON(http.StatusOK, response)
}
