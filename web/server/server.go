package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultShutdownTimeout bounds graceful shutdown
const DefaultShutdownTimeout = 5 * time.Second

// Server exposes a render session over HTTP
type Server struct {
	session   *renderer.Session
	options   renderer.RenderOptions
	scenesDir string
	console   *Console
	echo      *echo.Echo
}

// SceneRequest selects a scene: a built-in name or a descriptor path
type SceneRequest struct {
	Path string `json:"path"`
}

// ConfigResponse describes the current session state
type ConfigResponse struct {
	MaxDepth int           `json:"maxDepth"`
	Mode     renderer.Mode `json:"mode"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Scene    string        `json:"scene"`
}

// PixelResponse is the unclamped color of one pixel
type PixelResponse struct {
	X int     `json:"x"`
	Y int     `json:"y"`
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// ModeInfo describes one demo stage
type ModeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	NeedsScene  bool   `json:"needsScene"`
}

// NewServer creates a web server over session. Render requests use options
// for scheduling, scenesDir is listed by /api/scenes and log output goes to
// console.
func NewServer(session *renderer.Session, options renderer.RenderOptions, scenesDir string, console *Console) *Server {
	if console == nil {
		console = NewConsole(DefaultConsoleSize, nil)
	}
	options.Logger = console

	s := &Server{
		session:   session,
		options:   options,
		scenesDir: scenesDir,
		console:   console,
		echo:      echo.New(),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(corsMiddleware)

	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/modes", s.handleModes)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.POST("/api/scene", s.handleScene)
	s.echo.GET("/api/config", s.handleGetConfig)
	s.echo.PUT("/api/config", s.handlePutConfig)
	s.echo.GET("/api/pixel", s.handlePixel)
	s.echo.GET("/api/inspect", s.handleInspect)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.GET("/api/console", s.handleConsole)
	return s
}

// Handler returns the HTTP handler serving the API
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on port until Shutdown is called
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.console.Printf("Starting web server on http://localhost%s\n", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for active requests until ctx is done
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

func jsonError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"error": err.Error()})
}

// statusFor maps session errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, renderer.ErrNoScene):
		return http.StatusConflict
	case errors.Is(err, renderer.ErrPixelOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, renderer.ErrInvalidConfig):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleModes(c echo.Context) error {
	modes := renderer.Modes()
	infos := make([]ModeInfo, len(modes))
	for i, m := range modes {
		infos[i] = ModeInfo{Name: m.String(), Description: m.Description(), NeedsScene: m.NeedsScene()}
	}
	return c.JSON(http.StatusOK, infos)
}

func (s *Server) handleScenes(c echo.Context) error {
	scenes, err := scene.ListScenes(s.scenesDir, s.console)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, scenes)
}

// handleScene loads a scene. A failed load keeps the previous scene.
func (s *Server) handleScene(c echo.Context) error {
	var req SceneRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	if err := s.session.Open(req.Path); err != nil {
		s.console.Errorf("Scene %q not loaded: %v\n", req.Path, err)
		return jsonError(c, http.StatusUnprocessableEntity, err)
	}
	return c.JSON(http.StatusOK, s.configResponse())
}

func (s *Server) configResponse() ConfigResponse {
	config := s.session.Config()
	width, height := s.session.Size()
	return ConfigResponse{
		MaxDepth: config.MaxDepth,
		Mode:     config.Mode,
		Width:    width,
		Height:   height,
		Scene:    s.session.SceneName(),
	}
}

func (s *Server) handleGetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, s.configResponse())
}

// handlePutConfig updates depth and mode. Omitted fields keep their values.
func (s *Server) handlePutConfig(c echo.Context) error {
	config := s.session.Config()
	if err := c.Bind(&config); err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	if err := s.session.SetConfig(config); err != nil {
		return jsonError(c, statusFor(err), err)
	}
	return c.JSON(http.StatusOK, s.configResponse())
}

func pixelParams(c echo.Context) (x, y int, err error) {
	if x, err = strconv.Atoi(c.QueryParam("x")); err != nil {
		return 0, 0, fmt.Errorf("invalid x: %w", err)
	}
	if y, err = strconv.Atoi(c.QueryParam("y")); err != nil {
		return 0, 0, fmt.Errorf("invalid y: %w", err)
	}
	return x, y, nil
}

func (s *Server) handlePixel(c echo.Context) error {
	x, y, err := pixelParams(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	color, err := s.session.RenderPixel(x, y)
	if err != nil {
		return jsonError(c, statusFor(err), err)
	}
	return c.JSON(http.StatusOK, PixelResponse{X: x, Y: y, R: color.X, G: color.Y, B: color.Z})
}

// handleRender renders the whole frame and returns it as PNG. Closing the
// request cancels the render.
func (s *Server) handleRender(c echo.Context) error {
	rt, err := s.session.Snapshot()
	if err != nil {
		return jsonError(c, statusFor(err), err)
	}

	fb, stats, err := renderer.RenderImage(c.Request().Context(), rt, s.options)
	if err != nil {
		s.console.Errorf("Render aborted: %v\n", err)
		return jsonError(c, http.StatusServiceUnavailable, err)
	}

	var buf bytes.Buffer
	if err := loaders.EncodePNG(&buf, fb.Texture()); err != nil {
		return jsonError(c, http.StatusInternalServerError, err)
	}

	header := c.Response().Header()
	header.Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	header.Set("X-Render-Workers", strconv.Itoa(stats.NumWorkers))
	header.Set("X-Render-Mode", rt.Config().Mode.String())
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleConsole(c echo.Context) error {
	return c.JSON(http.StatusOK, s.console.Messages())
}
