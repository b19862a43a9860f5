package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidScene is wrapped by every validation failure
var ErrInvalidScene = errors.New("invalid scene")

// Scene contains everything needed to trace rays: geometry, materials,
// lights and decoded textures. A Scene is not modified after it is built;
// loading a new descriptor produces a new Scene.
type Scene struct {
	Comment    string
	FovXDegree float64 // Horizontal field of view of the fixed pinhole camera

	SkyboxPath string
	Skybox     *material.ImageTexture // Sampled by direction when nothing is hit

	TexturePaths []string
	Textures     []*material.ImageTexture // Sphere textures, indexed by Sphere.TextureIndex

	Lights    []lights.PointLight
	Materials []material.Material
	Spheres   []geometry.Sphere
}

// Load parses a descriptor file, decodes every referenced image and
// validates the result
func Load(path string, logger core.Logger) (*Scene, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	desc, err := loaders.LoadDescriptor(path)
	if err != nil {
		return nil, err
	}
	s, err := New(desc, filepath.Dir(path), logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Printf("Loaded scene %q from %s: %d spheres, %d materials, %d lights, %d textures\n",
		s.Comment, path, len(s.Spheres), len(s.Materials), len(s.Lights), len(s.Textures))
	return s, nil
}

// New builds a scene from a parsed descriptor. Relative image paths are
// looked up in the working directory first, then in baseDir. An empty
// skybox path gives a black environment.
func New(desc *loaders.SceneDescriptor, baseDir string, logger core.Logger) (*Scene, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	s := &Scene{
		Comment:      desc.Comment,
		FovXDegree:   desc.FovXDegree,
		SkyboxPath:   desc.SkyboxPath,
		TexturePaths: append([]string(nil), desc.TexturePaths...),
		Lights:       append([]lights.PointLight(nil), desc.Lights...),
		Materials:    append([]material.Material(nil), desc.Materials...),
		Spheres:      append([]geometry.Sphere(nil), desc.Spheres...),
	}

	// Validate before decoding so a bad index fails fast
	if err := s.validateParams(); err != nil {
		return nil, err
	}

	if desc.SkyboxPath == "" {
		logger.Printf("Scene %q has no skybox, using black\n", desc.Comment)
		s.Skybox = material.NewSolidTexture(core.Vec3{})
	} else {
		skybox, err := loaders.LoadImage(resolvePath(desc.SkyboxPath, baseDir))
		if err != nil {
			return nil, fmt.Errorf("failed to load skybox: %w", err)
		}
		s.Skybox = skybox
	}

	s.Textures = make([]*material.ImageTexture, len(desc.TexturePaths))
	for i, path := range desc.TexturePaths {
		texture, err := loaders.LoadImage(resolvePath(path, baseDir))
		if err != nil {
			return nil, fmt.Errorf("failed to load sphere texture %d: %w", i, err)
		}
		s.Textures[i] = texture
	}

	if len(s.Lights) > 1 {
		logger.Printf("Scene %q has %d lights, only the first is used for shading\n", s.Comment, len(s.Lights))
	}

	return s, nil
}

// Validate checks every parameter and index of the scene, including that
// all textures are decoded
func (s *Scene) Validate() error {
	if err := s.validateParams(); err != nil {
		return err
	}
	if s.Skybox == nil {
		return fmt.Errorf("%w: skybox not loaded", ErrInvalidScene)
	}
	if len(s.Textures) != len(s.TexturePaths) {
		return fmt.Errorf("%w: %d texture paths but %d textures", ErrInvalidScene, len(s.TexturePaths), len(s.Textures))
	}
	for i, texture := range s.Textures {
		if texture == nil || texture.Width <= 0 || texture.Height <= 0 {
			return fmt.Errorf("%w: sphere texture %d is empty", ErrInvalidScene, i)
		}
	}
	return nil
}

func (s *Scene) validateParams() error {
	if !(s.FovXDegree > 0 && s.FovXDegree < 180) {
		return fmt.Errorf("%w: fovXdegree %g must be in (0, 180)", ErrInvalidScene, s.FovXDegree)
	}

	for i, m := range s.Materials {
		if m.Shininess < 0 {
			return fmt.Errorf("%w: material %d (%s): negative shininess %g", ErrInvalidScene, i, m.Comment, m.Shininess)
		}
		if m.RefractiveIndex <= 0 {
			return fmt.Errorf("%w: material %d (%s): refractive index %g must be positive", ErrInvalidScene, i, m.Comment, m.RefractiveIndex)
		}
	}

	for i, sphere := range s.Spheres {
		if sphere.Radius <= 0 {
			return fmt.Errorf("%w: sphere %d: radius %g must be positive", ErrInvalidScene, i, sphere.Radius)
		}
		if sphere.MaterialIndex < 0 || sphere.MaterialIndex >= len(s.Materials) {
			return fmt.Errorf("%w: sphere %d: material index %d out of range [0, %d)", ErrInvalidScene, i, sphere.MaterialIndex, len(s.Materials))
		}
		if sphere.TextureIndex < 0 || sphere.TextureIndex >= len(s.TexturePaths) {
			return fmt.Errorf("%w: sphere %d: texture index %d out of range [0, %d)", ErrInvalidScene, i, sphere.TextureIndex, len(s.TexturePaths))
		}
	}

	return nil
}

// Material returns the material of a validated sphere
func (s *Scene) Material(sphere *geometry.Sphere) *material.Material {
	return &s.Materials[sphere.MaterialIndex]
}

// Texture returns the texture of a validated sphere
func (s *Scene) Texture(sphere *geometry.Sphere) *material.ImageTexture {
	return s.Textures[sphere.TextureIndex]
}

// Descriptor returns the serializable part of the scene
func (s *Scene) Descriptor() *loaders.SceneDescriptor {
	return &loaders.SceneDescriptor{
		Comment:      s.Comment,
		FovXDegree:   s.FovXDegree,
		SkyboxPath:   s.SkyboxPath,
		Lights:       append([]lights.PointLight(nil), s.Lights...),
		TexturePaths: append([]string(nil), s.TexturePaths...),
		Materials:    append([]material.Material(nil), s.Materials...),
		Spheres:      append([]geometry.Sphere(nil), s.Spheres...),
	}
}

// resolvePath prefers a file relative to the working directory, falling
// back to one relative to the descriptor
func resolvePath(path, baseDir string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return filepath.Join(baseDir, path)
}
