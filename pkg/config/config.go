package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the main configuration
type Config struct {
	Image  ImageConfig  `yaml:"image"`
	Render RenderConfig `yaml:"render"`
	Scene  SceneConfig  `yaml:"scene"`
	Output OutputConfig `yaml:"output"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// ImageConfig contains the output image size
type ImageConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RenderConfig contains tracing and scheduling settings
type RenderConfig struct {
	MaxDepth int           `yaml:"max_depth"`
	Mode     renderer.Mode `yaml:"mode"`
	Workers  int           `yaml:"workers"`   // 0 = one per CPU
	TileSize int           `yaml:"tile_size"` // 0 = renderer.DefaultTileSize
}

// SceneConfig selects the scene to render
type SceneConfig struct {
	Path string `yaml:"path"` // descriptor path or built-in scene name; empty = default scene
	Dir  string `yaml:"dir"`  // directory scanned for descriptors
}

// OutputConfig contains where rendered images are written
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// ServerConfig contains web server settings
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Prefix string `yaml:"prefix"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	render := renderer.DefaultRenderConfig()
	return &Config{
		Image: ImageConfig{
			Width:  renderer.DefaultWidth,
			Height: renderer.DefaultHeight,
		},
		Render: RenderConfig{
			MaxDepth: render.MaxDepth,
			Mode:     render.Mode,
			TileSize: renderer.DefaultTileSize,
		},
		Scene:  SceneConfig{Dir: "scenes"},
		Output: OutputConfig{Dir: "output"},
		Server: ServerConfig{Port: 8080},
		Log:    LogConfig{Prefix: "raytracer: "},
	}
}

// Load reads a YAML configuration file. Fields missing from the file keep
// their default values.
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data over the defaults and validates it
func Parse(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes the configuration as YAML
func Save(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// Validate checks every field that cannot be fixed up by a default
func (c *Config) Validate() error {
	if c.Image.Width <= 0 || c.Image.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Image.Width, c.Image.Height)
	}
	if err := c.RenderConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Render.Workers)
	}
	if c.Render.TileSize < 0 {
		return fmt.Errorf("%w: tile_size %d", ErrInvalidConfig, c.Render.TileSize)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Server.Port)
	}
	return nil
}

// RenderConfig returns the tracing part of the configuration
func (c *Config) RenderConfig() renderer.RenderConfig {
	return renderer.RenderConfig{
		MaxDepth: c.Render.MaxDepth,
		Mode:     c.Render.Mode,
	}
}

// RenderOptions returns the scheduling part of the configuration
func (c *Config) RenderOptions() renderer.RenderOptions {
	return renderer.RenderOptions{
		NumWorkers: c.Render.Workers,
		TileSize:   c.Render.TileSize,
	}
}
