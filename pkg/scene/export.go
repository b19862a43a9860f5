package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// Export writes the scene to dir as a descriptor plus one PNG per texture,
// so that Load(returned path) rebuilds an equivalent scene. Image paths in
// the descriptor are rewritten to the exported file names.
func (s *Scene) Export(dir, name string, logger core.Logger) (string, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	desc := s.Descriptor()

	if s.Skybox != nil {
		desc.SkyboxPath = name + "_skybox.png"
		if err := loaders.SavePNG(filepath.Join(dir, desc.SkyboxPath), s.Skybox); err != nil {
			return "", fmt.Errorf("failed to export skybox: %w", err)
		}
	}

	desc.TexturePaths = make([]string, len(s.Textures))
	for i, texture := range s.Textures {
		desc.TexturePaths[i] = fmt.Sprintf("%s_texture_%d.png", name, i)
		if err := loaders.SavePNG(filepath.Join(dir, desc.TexturePaths[i]), texture); err != nil {
			return "", fmt.Errorf("failed to export sphere texture %d: %w", i, err)
		}
	}

	path := filepath.Join(dir, name+".txt")
	if err := loaders.SaveDescriptor(path, desc); err != nil {
		return "", err
	}
	logger.Printf("Exported scene %q to %s\n", s.Comment, path)
	return path, nil
}
