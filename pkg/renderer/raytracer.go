package renderer

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrNoScene is returned when a scene-reading mode is used before any scene is loaded
var ErrNoScene = errors.New("no scene loaded")

// Raytracer is an immutable snapshot of scene, configuration and image size.
// RenderPixel only reads it, so one Raytracer can serve any number of
// goroutines.
type Raytracer struct {
	scene      *scene.Scene
	config     RenderConfig
	width      int
	height     int
	camera     *Camera
	integrator integrator.Integrator
}

// NewRaytracer creates a raytracer. The scene may be nil for modes that do
// not read it.
func NewRaytracer(s *scene.Scene, width, height int, config RenderConfig) (*Raytracer, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	rt := &Raytracer{
		scene:  s,
		config: config,
		width:  width,
		height: height,
	}

	if config.Mode.NeedsScene() {
		if s == nil {
			return nil, fmt.Errorf("mode %s: %w", config.Mode, ErrNoScene)
		}
		rt.camera = NewCamera(width, height, s.FovXDegree)
		rt.integrator = integrator.NewWhitted(s, config.Mode.features(), config.MaxDepth)
	}

	return rt, nil
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int { return rt.width }

// Height returns the image height in pixels
func (rt *Raytracer) Height() int { return rt.height }

// Config returns the render configuration captured by this snapshot
func (rt *Raytracer) Config() RenderConfig { return rt.config }

// Scene returns the captured scene, nil for color-only modes without one
func (rt *Raytracer) Scene() *scene.Scene { return rt.scene }

// InBounds reports whether (x, y) is a pixel of the image
func (rt *Raytracer) InBounds(x, y int) bool {
	return x >= 0 && x < rt.width && y >= 0 && y < rt.height
}

// RenderPixel returns the unclamped color of pixel (x, y), with y = 0 the
// bottom row. The result depends only on the arguments and the snapshot.
func (rt *Raytracer) RenderPixel(x, y int) core.Vec3 {
	switch rt.config.Mode {
	case ModeStartingPoint:
		return core.Vec3{}
	case ModeOneColor:
		return core.Splat(0.8)
	case ModeRandomColor:
		return randomColor(x, y)
	case ModeColorSpace:
		fx := fraction(x, rt.width)
		fy := fraction(y, rt.height)
		return core.NewVec3(1-fx-fy, fx, fy)
	case ModeLinearColors:
		red := core.NewVec3(1, 0, 0)
		green := core.NewVec3(0, 1, 0)
		return red.Lerp(green, fraction(x, rt.width))
	case ModeRays:
		// Map each direction component from [-1,1] to [0,1]
		return rt.camera.PixelDirection(x, y).Add(core.Splat(1)).Multiply(0.5)
	default:
		return rt.integrator.Trace(rt.camera.GetRay(x, y), 0)
	}
}

// fraction maps pixel i of n onto [0,1]
func fraction(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// randomColor returns an 8-bit color seeded by the pixel, so rendering the
// same pixel twice gives the same noise
func randomColor(x, y int) core.Vec3 {
	random := rand.New(rand.NewPCG(uint64(x), uint64(y)))
	return core.NewVec3(
		float64(random.IntN(256))/255,
		float64(random.IntN(256))/255,
		float64(random.IntN(256))/255,
	)
}
