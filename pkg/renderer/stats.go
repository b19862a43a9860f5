package renderer

import (
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RenderStats contains statistics about one RenderImage call
type RenderStats struct {
	TotalPixels    int           // Pixels in the image
	RenderedPixels int           // Pixels actually rendered (less than TotalPixels if cancelled)
	TotalTiles     int           // Tiles in the grid
	RenderedTiles  int           // Tiles completed
	NumWorkers     int           // Worker goroutines used
	Duration       time.Duration // Wall time of the render
}

// PixelsPerSecond returns rendering throughput
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.RenderedPixels) / s.Duration.Seconds()
}

// luminance returns Rec. 709 relative luminance of a linear color
func luminance(c core.Vec3) float64 {
	return 0.2126*c.X + 0.7152*c.Y + 0.0722*c.Z
}

// AverageLuminance returns the mean luminance of the framebuffer, with each
// pixel clamped to [0,1] as it would be written out
func AverageLuminance(fb *Framebuffer) float64 {
	if len(fb.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range fb.Pixels {
		total += luminance(c.Clamp(0, 1))
	}
	return total / float64(len(fb.Pixels))
}
