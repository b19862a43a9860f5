package renderer

import (
	"errors"
	"fmt"
)

// Defaults of the render configuration
const (
	DefaultMaxDepth = 6
	DefaultWidth    = 600
	DefaultHeight   = 600
)

// ErrInvalidConfig is wrapped by render configuration validation failures
var ErrInvalidConfig = errors.New("invalid render configuration")

// RenderConfig is the per-batch render state. It is a value: a batch
// captures one and is unaffected by later changes.
type RenderConfig struct {
	MaxDepth int  `json:"maxDepth" yaml:"max_depth"`
	Mode     Mode `json:"mode" yaml:"mode"`
}

// DefaultRenderConfig returns the full algorithm at depth 6
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		MaxDepth: DefaultMaxDepth,
		Mode:     ModeTransparency,
	}
}

// Validate checks the depth and mode. Depth has no upper bound.
func (c RenderConfig) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: max depth %d must be at least 1", ErrInvalidConfig, c.MaxDepth)
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfig, int(c.Mode))
	}
	return nil
}

func validateSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidConfig, width, height)
	}
	return nil
}
