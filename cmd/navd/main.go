// navd - the go-nav gateway daemon.
// Serves the map-widget websocket feeds and the navigation REST API.
package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fuelmate/go-nav/internal/config"
	"github.com/fuelmate/go-nav/internal/log"
	"github.com/fuelmate/go-nav/pkg/camera"
	"github.com/fuelmate/go-nav/pkg/location"
	"github.com/fuelmate/go-nav/pkg/navigation"
	"github.com/fuelmate/go-nav/pkg/route"
	"github.com/fuelmate/go-nav/pkg/web"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		stdlog.Fatalf("config error: %v", err)
	}
	log.Init(cfg.LogLevel)

	provider := location.NewManual()
	cam := camera.NewController(cameraConfig(cfg.Camera.Preset))
	fetcher := route.NewClientWithTimeout(cfg.Routing.BaseURL, cfg.Routing.Timeout)
	manager := navigation.NewManager(fetcher, provider, cam)

	server := web.NewServer(cfg.Port, manager, provider, cam)
	// Camera animations go out over the widget websocket feed
	cam.AttachMap(server)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		fmt.Println("\nShutting down...")
		manager.Stop()
		server.Shutdown()
	}()

	fmt.Printf("🧭 go-nav gateway on http://localhost:%s\n", cfg.Port)
	if err := server.Start(); err != nil {
		stdlog.Fatalf("server error: %v", err)
	}
}

func cameraConfig(preset string) camera.Config {
	switch preset {
	case "city":
		return camera.CityConfig()
	case "highway":
		return camera.HighwayConfig()
	default:
		return camera.DefaultConfig()
	}
}
