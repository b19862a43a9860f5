package loaders

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ToRGBA converts a texture to an 8-bit image. Channels are clamped to [0,1];
// this is the only place colors are clamped.
func ToRGBA(texture *material.ImageTexture) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, texture.Width, texture.Height))
	for y := 0; y < texture.Height; y++ {
		for x := 0; x < texture.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(texture.Pixels[y*texture.Width+x]))
		}
	}
	return img
}

// EncodePNG writes the texture to w as a PNG
func EncodePNG(w io.Writer, texture *material.ImageTexture) error {
	if err := png.Encode(w, ToRGBA(texture)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes the texture to filename, creating parent directories
func SavePNG(filename string, texture *material.ImageTexture) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := EncodePNG(file, texture); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// vec3ToColor converts a linear color to 8-bit RGBA without gamma correction
func vec3ToColor(c core.Vec3) color.RGBA {
	c = c.Clamp(0, 1)
	return color.RGBA{
		R: uint8(c.X*255 + 0.5),
		G: uint8(c.Y*255 + 0.5),
		B: uint8(c.Z*255 + 0.5),
		A: 255,
	}
}
