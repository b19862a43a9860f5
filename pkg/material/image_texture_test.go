package material

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestDirectionToUV(t *testing.T) {
	tests := []struct {
		name      string
		direction core.Vec3
		u, v      float64
	}{
		{"positive x is the centre", core.NewVec3(1, 0, 0), 0.5, 0.5},
		{"positive z is three quarters across", core.NewVec3(0, 0, 1), 0.75, 0.5},
		{"negative z is one quarter across", core.NewVec3(0, 0, -1), 0.25, 0.5},
		{"straight up is the top row", core.NewVec3(0, 1, 0), 0.5, 0},
		{"straight down is the bottom row", core.NewVec3(0, -1, 0), 0.5, 1},
		{"unnormalized input", core.NewVec3(0, 0, 7), 0.75, 0.5},
		{"zero direction is guarded", core.NewVec3(0, 0, 0), 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := DirectionToUV(tt.direction)
			if math.Abs(u-tt.u) > 1e-12 || math.Abs(v-tt.v) > 1e-12 {
				t.Errorf("Expected uv (%f,%f), got (%f,%f)", tt.u, tt.v, u, v)
			}
		})
	}
}

func TestImageTexture_SampleUVBilinear(t *testing.T) {
	// Layout:
	//   red   green
	//   blue  white
	red := core.NewVec3(1, 0, 0)
	green := core.NewVec3(0, 1, 0)
	blue := core.NewVec3(0, 0, 1)
	white := core.NewVec3(1, 1, 1)
	texture := NewImageTexture(2, 2, []core.Vec3{red, green, blue, white})

	tests := []struct {
		name     string
		u, v     float64
		expected core.Vec3
	}{
		{"top-left texel", 0, 0, red},
		{"top-right texel", 1, 0, green},
		{"bottom-left texel", 0, 1, blue},
		{"bottom-right texel", 1, 1, white},
		{"centre averages all four", 0.5, 0.5, core.NewVec3(0.5, 0.5, 0.5)},
		{"top edge midpoint", 0.5, 0, core.NewVec3(0.5, 0.5, 0)},
		{"clamped past the right edge", 1.5, 0, green},
		{"clamped above the top edge", 0, -0.25, red},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := texture.SampleUV(tt.u, tt.v)
			if !result.ApproxEqual(tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestImageTexture_SampleDirection(t *testing.T) {
	// 3x1 strip: interpolation only happens horizontally
	pixels := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 1),
	}
	texture := NewImageTexture(3, 1, pixels)

	// Negative z maps to u = 0.25, i.e. halfway between texel 0 and texel 1
	result := texture.SampleDirection(core.NewVec3(0, 0, -1))
	expected := core.NewVec3(0.5, 0, 0)
	if !result.ApproxEqual(expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, result)
	}

	// Positive x maps to the centre texel
	result = texture.SampleDirection(core.NewVec3(2, 0, 0))
	if !result.ApproxEqual(pixels[1], 1e-12) {
		t.Errorf("Expected %v, got %v", pixels[1], result)
	}
}

func TestSolidTexture(t *testing.T) {
	color := core.NewVec3(0.2, 0.4, 0.6)
	texture := NewSolidTexture(color)

	for _, dir := range []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(0.3, 0.2, -0.9),
		core.NewVec3(0, 0, 0),
	} {
		if got := texture.SampleDirection(dir); got != color {
			t.Errorf("Direction %v: expected %v, got %v", dir, color, got)
		}
	}
}

func TestGradientTexture(t *testing.T) {
	top := core.NewVec3(1, 1, 1)
	bottom := core.NewVec3(0, 0, 0)
	texture := NewGradientTexture(4, 3, top, bottom)

	if got := texture.SampleDirection(core.NewVec3(0, 1, 0)); !got.ApproxEqual(top, 1e-12) {
		t.Errorf("Looking up: expected %v, got %v", top, got)
	}
	if got := texture.SampleDirection(core.NewVec3(0, -1, 0)); !got.ApproxEqual(bottom, 1e-12) {
		t.Errorf("Looking down: expected %v, got %v", bottom, got)
	}
	if got := texture.SampleDirection(core.NewVec3(1, 0, 0)); !got.ApproxEqual(core.Splat(0.5), 1e-12) {
		t.Errorf("Looking at the horizon: expected grey, got %v", got)
	}
}

func TestCheckerboardTexture(t *testing.T) {
	a := core.NewVec3(1, 0, 0)
	b := core.NewVec3(0, 0, 1)
	texture := NewCheckerboardTexture(4, 4, 2, a, b)

	if got := texture.SampleUV(0, 0); got != a {
		t.Errorf("Expected first check %v, got %v", a, got)
	}
	if got := texture.SampleUV(1, 0); got != b {
		t.Errorf("Expected second check %v, got %v", b, got)
	}
}
