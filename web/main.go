package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	port := flag.Int("port", 0, "Port to serve on (overrides config)")
	sceneName := flag.String("scene", "", "Scene descriptor path or built-in scene name (overrides config)")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		cfg = loaded
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *sceneName != "" {
		cfg.Scene.Path = *sceneName
	}

	console := server.NewConsole(server.DefaultConsoleSize, core.NewStdLogger(os.Stdout, cfg.Log.Prefix))
	session, err := renderer.NewSession(cfg.Image.Width, cfg.Image.Height, cfg.RenderConfig(), console)
	if err != nil {
		log.Fatalf("Failed to create render session: %v", err)
	}
	if err := session.Open(cfg.Scene.Path); err != nil {
		log.Fatalf("Failed to open scene: %v", err)
	}

	webServer := server.NewServer(session, cfg.RenderOptions(), cfg.Scene.Dir, console)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			console.Errorf("Error during shutdown: %v\n", err)
		}
	}()

	console.Printf("Whitted Raytracer Web Server\n")
	console.Printf("Visit http://localhost:%d/api/render to render the current scene\n", cfg.Server.Port)
	if err := webServer.Start(cfg.Server.Port); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
