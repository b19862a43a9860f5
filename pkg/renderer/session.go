package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrPixelOutOfRange is returned for pixel coordinates outside the image
var ErrPixelOutOfRange = errors.New("pixel out of range")

// Session is the render API used by schedulers (the CLI, the web server).
// It owns the current scene and configuration and hands out immutable
// Raytracer snapshots; changing either never affects a batch already running.
type Session struct {
	mu        sync.RWMutex
	width     int
	height    int
	scene     *scene.Scene
	sceneName string
	config    RenderConfig
	current   *Raytracer // nil when the mode needs a scene and none is loaded
	logger    core.Logger
}

// NewSession creates a session with no scene
func NewSession(width, height int, config RenderConfig, logger core.Logger) (*Session, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	s := &Session{
		width:  width,
		height: height,
		config: config,
		logger: logger,
	}
	s.current, _ = NewRaytracer(nil, width, height, config)
	return s, nil
}

// Load loads a scene descriptor. On failure the previous scene stays active.
func (s *Session) Load(path string) error {
	loaded, err := scene.Load(path, s.logger)
	if err != nil {
		s.logger.Printf("Failed to load scene %s: %v\n", path, err)
		return err
	}
	return s.SetScene(loaded, path)
}

// Open selects a built-in scene by name, or loads a descriptor file when
// name is not a built-in scene
func (s *Session) Open(name string) error {
	if sc, ok := scene.Builtin(name); ok {
		if name == "" {
			name = scene.DefaultSceneName
		}
		return s.SetScene(sc, name)
	}
	return s.Load(name)
}

// SetScene replaces the current scene with an already built one
func (s *Session) SetScene(sc *scene.Scene, name string) error {
	if sc == nil {
		return fmt.Errorf("%w: nil scene", scene.ErrInvalidScene)
	}
	if err := sc.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(sc, name, s.config)
}

// SetMaxDepth changes the recursion limit for later snapshots
func (s *Session) SetMaxDepth(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	config := s.config
	config.MaxDepth = n
	return s.update(s.scene, s.sceneName, config)
}

// SetMode changes the demo stage for later snapshots
func (s *Session) SetMode(m Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	config := s.config
	config.Mode = m
	return s.update(s.scene, s.sceneName, config)
}

// SetConfig replaces the whole render configuration
func (s *Session) SetConfig(config RenderConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(s.scene, s.sceneName, config)
}

// update installs new state; the caller holds the write lock. Invalid
// configurations leave the session unchanged.
func (s *Session) update(sc *scene.Scene, name string, config RenderConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	rt, err := NewRaytracer(sc, s.width, s.height, config)
	if err != nil && !errors.Is(err, ErrNoScene) {
		return err
	}

	s.scene = sc
	s.sceneName = name
	s.config = config
	s.current = rt
	return nil
}

// Config returns the current render configuration
func (s *Session) Config() RenderConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SceneName returns the path or name of the current scene, "" if none
func (s *Session) SceneName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sceneName
}

// Size returns the image size
func (s *Session) Size() (width, height int) {
	return s.width, s.height
}

// Snapshot returns the raytracer for the current state. Use one snapshot per
// batch of pixels.
func (s *Session) Snapshot() (*Raytracer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, fmt.Errorf("mode %s: %w", s.config.Mode, ErrNoScene)
	}
	return s.current, nil
}

// RenderPixel renders one pixel of the current snapshot
func (s *Session) RenderPixel(x, y int) (core.Vec3, error) {
	rt, err := s.Snapshot()
	if err != nil {
		return core.Vec3{}, err
	}
	if !rt.InBounds(x, y) {
		return core.Vec3{}, fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrPixelOutOfRange, x, y, rt.width, rt.height)
	}
	return rt.RenderPixel(x, y), nil
}
