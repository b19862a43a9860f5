package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera generates primary rays for a pinhole camera at the origin looking
// down -z through an image plane at z = -1. Pixel y grows upward: y = 0 is
// the bottom row.
type Camera struct {
	xLeft   float64
	yBottom float64
	xDelta  float64
	yDelta  float64
}

// NewCamera precomputes the image plane extents for a width x height image
// with the given horizontal field of view. The vertical field of view
// follows from the aspect ratio.
func NewCamera(width, height int, fovXDegrees float64) *Camera {
	fovX := fovXDegrees * math.Pi / 180
	fovY := fovX / float64(width) * float64(height)

	xLeft, xDelta := planeAxis(fovX, width)
	yBottom, yDelta := planeAxis(fovY, height)

	return &Camera{
		xLeft:   xLeft,
		yBottom: yBottom,
		xDelta:  xDelta,
		yDelta:  yDelta,
	}
}

// planeAxis returns the first pixel coordinate and per-pixel step along one
// axis. A single pixel sits on the axis.
func planeAxis(fov float64, pixels int) (start, delta float64) {
	if pixels <= 1 {
		return 0, 0
	}
	halfExtent := math.Tan(fov / 2)
	return -halfExtent, 2 * halfExtent / float64(pixels-1)
}

// PixelDirection returns the unit direction through pixel (x, y)
func (c *Camera) PixelDirection(x, y int) core.Vec3 {
	xCoeff := c.xLeft + float64(x)*c.xDelta
	yCoeff := c.yBottom + float64(y)*c.yDelta
	return core.NewVec3(xCoeff, yCoeff, -1).Normalize()
}

// GetRay returns the primary ray through pixel (x, y)
func (c *Camera) GetRay(x, y int) core.Ray {
	return core.NewRay(core.Vec3{}, c.PixelDirection(x, y))
}

// PixelDirection is a one-off form of Camera.PixelDirection
func PixelDirection(x, y, width, height int, fovXDegrees float64) core.Vec3 {
	return NewCamera(width, height, fovXDegrees).PixelDirection(x, y)
}
