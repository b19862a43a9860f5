package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Framebuffer holds unclamped linear colors for a whole image. It is
// addressed in pixel coordinates (y = 0 at the bottom) but stored top row
// first so it converts directly to an image.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

func (fb *Framebuffer) index(x, y int) int {
	return (fb.Height-1-y)*fb.Width + x
}

// Set stores the color of pixel (x, y). Distinct pixels may be set from
// different goroutines.
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[fb.index(x, y)] = c
}

// At returns the color of pixel (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[fb.index(x, y)]
}

// Texture views the framebuffer as a texture sharing the same pixels
func (fb *Framebuffer) Texture() *material.ImageTexture {
	return material.NewImageTexture(fb.Width, fb.Height, fb.Pixels)
}

// ToRGBA clamps to [0,1] and converts to an 8-bit image
func (fb *Framebuffer) ToRGBA() *image.RGBA {
	return loaders.ToRGBA(fb.Texture())
}
