package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageTexture is a decoded image sampled by direction through an
// equirectangular (longitude/latitude) projection
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 is the top of the image
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewSolidTexture creates a 1x1 texture that samples to color in every direction
func NewSolidTexture(color core.Vec3) *ImageTexture {
	return NewImageTexture(1, 1, []core.Vec3{color})
}

// DirectionToUV maps a direction to equirectangular texture coordinates in [0,1].
// A zero direction maps to the texture centre.
func DirectionToUV(direction core.Vec3) (u, v float64) {
	length := direction.Length()
	if length == 0 {
		return 0.5, 0.5
	}
	d := direction.Multiply(1 / length)

	u = 0.5 + math.Atan2(d.Z, d.X)/(2*math.Pi)
	// Rounding can push |d.Y| a hair past 1
	v = 0.5 - math.Asin(max(-1, min(1, d.Y)))/math.Pi
	return u, v
}

// SampleDirection returns the bilinearly filtered color seen along direction
func (t *ImageTexture) SampleDirection(direction core.Vec3) core.Vec3 {
	u, v := DirectionToUV(direction)
	return t.SampleUV(u, v)
}

// SampleUV bilinearly interpolates the four texels around (u*(W-1), v*(H-1)).
// Coordinates are clamped to the image, there is no wrap-around.
func (t *ImageTexture) SampleUV(u, v float64) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 {
		return core.Vec3{}
	}

	fx := clamp(u*float64(t.Width-1), 0, float64(t.Width-1))
	fy := clamp(v*float64(t.Height-1), 0, float64(t.Height-1))

	x0 := int(fx)
	y0 := int(fy)
	x1 := min(x0+1, t.Width-1)
	y1 := min(y0+1, t.Height-1)

	tx := fx - float64(x0)
	ty := fy - float64(y0)

	top := t.pixel(x0, y0).Lerp(t.pixel(x1, y0), tx)
	bottom := t.pixel(x0, y1).Lerp(t.pixel(x1, y1), tx)
	return top.Lerp(bottom, ty)
}

func (t *ImageTexture) pixel(x, y int) core.Vec3 {
	return t.Pixels[y*t.Width+x]
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return max(lo, min(hi, x))
}
