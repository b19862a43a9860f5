package renderer

import (
	"math"
	"testing"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestAverageLuminance(t *testing.T) {
	// Red, green, blue and black: (0.2126 + 0.7152 + 0.0722 + 0) / 4 = 0.25
	fb := NewFramebuffer(2, 2)
	fb.Set(0, 0, core.NewVec3(1, 0, 0))
	fb.Set(1, 0, core.NewVec3(0, 1, 0))
	fb.Set(0, 1, core.NewVec3(0, 0, 1))

	if got := AverageLuminance(fb); math.Abs(got-0.25) > 1e-4 {
		t.Errorf("Expected average luminance 0.25, got %f", got)
	}
}

func TestAverageLuminance_ClampsOverexposure(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	fb.Set(0, 0, core.Splat(5))

	if got := AverageLuminance(fb); math.Abs(got-1) > 1e-4 {
		t.Errorf("Expected clamped luminance 1, got %f", got)
	}
	if got := AverageLuminance(NewFramebuffer(0, 0)); got != 0 {
		t.Errorf("Expected 0 for empty framebuffer, got %f", got)
	}
}

func TestRenderStats_PixelsPerSecond(t *testing.T) {
	stats := RenderStats{RenderedPixels: 1000, Duration: 2 * time.Second}
	if got := stats.PixelsPerSecond(); got != 500 {
		t.Errorf("Expected 500 pixels/s, got %f", got)
	}
	if got := (RenderStats{RenderedPixels: 10}).PixelsPerSecond(); got != 0 {
		t.Errorf("Expected 0 for zero duration, got %f", got)
	}
}
