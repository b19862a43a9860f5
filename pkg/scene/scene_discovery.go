package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// DescriptorExt is the file extension of scene descriptors
const DescriptorExt = ".txt"

// Scene types reported by discovery
const (
	TypeBuiltin    = "builtin"
	TypeDescriptor = "descriptor"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by Session.Open
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Scene comment, if any
	Type        string `json:"type"`        // TypeBuiltin or TypeDescriptor
	FilePath    string `json:"filePath,omitempty"`
}

// BuiltinScenes returns the built-in scenes in a fixed order
func BuiltinScenes() []SceneInfo {
	return []SceneInfo{
		{
			ID:          DefaultSceneName,
			DisplayName: "Default Scene",
			Description: NewDefaultScene().Comment,
			Type:        TypeBuiltin,
		},
		{
			ID:          MirrorSceneName,
			DisplayName: "Facing Mirrors",
			Description: NewMirrorScene().Comment,
			Type:        TypeBuiltin,
		},
	}
}

// ListDescriptorScenes scans dir for scene descriptors. A missing directory
// yields an empty list; files that fail to parse are logged and skipped.
func ListDescriptorScenes(dir string, logger core.Logger) ([]SceneInfo, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*"+DescriptorExt))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := DescribeDescriptor(filePath)
		if err != nil {
			logger.Printf("Warning: skipping scene %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// DescribeDescriptor reads a descriptor and returns its metadata. The scene
// comment becomes the description.
func DescribeDescriptor(filePath string) (SceneInfo, error) {
	desc, err := loaders.LoadDescriptor(filePath)
	if err != nil {
		return SceneInfo{}, err
	}

	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))
	return SceneInfo{
		ID:          filePath,
		DisplayName: titleCase(nameWithoutExt),
		Description: desc.Comment,
		Type:        TypeDescriptor,
		FilePath:    filePath,
	}, nil
}

// ListScenes returns the built-in scenes followed by the descriptors in dir
func ListScenes(dir string, logger core.Logger) ([]SceneInfo, error) {
	descriptors, err := ListDescriptorScenes(dir, logger)
	if err != nil {
		return nil, err
	}
	return append(BuiltinScenes(), descriptors...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-spheres" -> "Glass Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
