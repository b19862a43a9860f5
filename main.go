package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line. Zero values mean "use the config".
type options struct {
	configPath string
	sceneName  string
	width      int
	height     int
	depth      int
	mode       string
	workers    int
	outDir     string
	exportDir  string
	saveConfig string
	listModes  bool
	listScenes bool
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.configPath, "config", "", "Path to YAML configuration file")
	fs.StringVar(&opts.sceneName, "scene", "", "Scene descriptor path, or built-in scene: 'default' or 'mirrors'")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels")
	fs.IntVar(&opts.height, "height", 0, "Image height in pixels")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum recursion depth")
	fs.StringVar(&opts.mode, "mode", "", "Render mode (see -modes)")
	fs.IntVar(&opts.workers, "workers", -1, "Worker goroutines, 0 = one per CPU")
	fs.StringVar(&opts.outDir, "out", "", "Output directory")
	fs.StringVar(&opts.exportDir, "export", "", "Also write the scene as descriptor and PNG textures to this directory")
	fs.StringVar(&opts.saveConfig, "save-config", "", "Write the effective configuration as YAML to this path and exit")
	fs.BoolVar(&opts.listModes, "modes", false, "List render modes and exit")
	fs.BoolVar(&opts.listScenes, "scenes", false, "List built-in scenes and descriptors in the scene directory and exit")
	fs.Usage = func() {
		fmt.Fprintln(output, "Whitted Raytracer")
		fmt.Fprintln(output, "Usage: raytracer [options]")
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Output will be saved to <out>/<scene>/render_<timestamp>.png")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

// buildConfig loads the configuration file, if any, and applies flag overrides
func buildConfig(opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.sceneName != "" {
		cfg.Scene.Path = opts.sceneName
	}
	if opts.width > 0 {
		cfg.Image.Width = opts.width
	}
	if opts.height > 0 {
		cfg.Image.Height = opts.height
	}
	if opts.depth != 0 {
		cfg.Render.MaxDepth = opts.depth
	}
	if opts.mode != "" {
		mode, err := renderer.ParseMode(opts.mode)
		if err != nil {
			return nil, err
		}
		cfg.Render.Mode = mode
	}
	if opts.workers >= 0 {
		cfg.Render.Workers = opts.workers
	}
	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// sceneLabel names the output directory: the built-in scene name or the
// descriptor file name without extension
func sceneLabel(name string) string {
	if _, ok := scene.Builtin(name); ok {
		if name == "" {
			return scene.DefaultSceneName
		}
		return name
	}
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func outputPath(dir, label string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join(dir, label, fmt.Sprintf("render_%s.png", timestamp))
}

func printModes(w io.Writer) {
	for _, m := range renderer.Modes() {
		fmt.Fprintf(w, "  %-18s %s\n", m, m.Description())
	}
}

func printScenes(w io.Writer, dir string, logger core.Logger) error {
	scenes, err := scene.ListScenes(dir, logger)
	if err != nil {
		return err
	}
	for _, info := range scenes {
		fmt.Fprintf(w, "  %-24s %s\n", info.ID, info.Description)
	}
	return nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}
	if opts.listModes {
		printModes(stdout)
		return nil
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}
	logger := core.NewStdLogger(stdout, cfg.Log.Prefix)
	if opts.saveConfig != "" {
		if err := config.Save(cfg, opts.saveConfig); err != nil {
			return err
		}
		logger.Printf("Configuration saved as %s\n", opts.saveConfig)
		return nil
	}
	if opts.listScenes {
		return printScenes(stdout, cfg.Scene.Dir, logger)
	}

	session, err := renderer.NewSession(cfg.Image.Width, cfg.Image.Height, cfg.RenderConfig(), logger)
	if err != nil {
		return err
	}
	if err := session.Open(cfg.Scene.Path); err != nil {
		return fmt.Errorf("failed to open scene: %w", err)
	}
	label := sceneLabel(cfg.Scene.Path)
	logger.Printf("Using scene %s\n", session.SceneName())

	rt, err := session.Snapshot()
	if err != nil {
		return err
	}

	if opts.exportDir != "" {
		path, err := rt.Scene().Export(opts.exportDir, label, logger)
		if err != nil {
			return err
		}
		logger.Printf("Scene exported to %s\n", path)
	}

	renderOpts := cfg.RenderOptions()
	renderOpts.Logger = logger
	fb, stats, err := renderer.RenderImage(ctx, rt, renderOpts)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Average luminance %.3f, %.0f pixels/s\n", renderer.AverageLuminance(fb), stats.PixelsPerSecond())

	filename := outputPath(cfg.Output.Dir, label, time.Now())
	if err := loaders.SavePNG(filename, fb.Texture()); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", filename)
	return nil
}
