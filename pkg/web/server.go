// Package web is the gateway between the navigation engine and the map
// widget: a fiber server with REST endpoints for the surrounding app
// and websocket feeds for camera commands, gestures, and the state
// overlay. The server itself is the MapCamera capability: camera
// animations become websocket broadcasts to the widget.
package web

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/fuelmate/go-nav/internal/log"
	"github.com/fuelmate/go-nav/pkg/camera"
	"github.com/fuelmate/go-nav/pkg/hub"
	"github.com/fuelmate/go-nav/pkg/location"
	"github.com/fuelmate/go-nav/pkg/navigation"
	"github.com/fuelmate/go-nav/pkg/protocol"
)

// Server is the navigation gateway.
type Server struct {
	app  *fiber.App
	port string

	manager  *navigation.Manager
	provider *location.Manual
	cam      *camera.Controller

	// Hubs for websocket broadcast (thread-safe!)
	widgetHub *hub.Hub // camera commands, route, fallback → map widget
	stateHub  *hub.Hub // navigation state → overlay

	// Last state snapshot for the REST status endpoint
	stateMu   sync.RWMutex
	lastState *navigation.State
}

// NewServer creates the gateway. It wires itself as the manager's
// state sink; attach it to the camera controller with AttachMap to
// route camera animations through the widget feed.
func NewServer(port string, manager *navigation.Manager, provider *location.Manual, cam *camera.Controller) *Server {
	s := &Server{
		port:      port,
		manager:   manager,
		provider:  provider,
		cam:       cam,
		widgetHub: hub.New("widget"),
		stateHub:  hub.New("state"),
	}

	manager.OnState = s.broadcastState

	app := fiber.New(fiber.Config{
		AppName:               "go-nav gateway",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/route", s.handleRoute)
	api.Post("/navigate", s.handleNavigate)
	api.Post("/stop", s.handleStop)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/widget", websocket.New(s.handleWidgetWS))
	app.Get("/ws/state", websocket.New(s.handleStateWS))

	s.app = app
	return s
}

// AnimateCamera implements camera.MapCamera by broadcasting the
// animation command to every connected map widget.
func (s *Server) AnimateCamera(pose camera.Pose, duration time.Duration) {
	msg, err := protocol.NewCameraMessage(pose, duration)
	if err != nil {
		log.Error("encode camera command", "error", err)
		return
	}
	data, err := msg.Bytes()
	if err != nil {
		return
	}
	s.widgetHub.Broadcast(data)
}

// Start runs the hubs and blocks serving HTTP.
func (s *Server) Start() error {
	go s.widgetHub.Run()
	go s.stateHub.Run()

	log.Info("gateway listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown stops the HTTP server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// broadcastState records the latest snapshot and fans it out to the
// overlay feed.
func (s *Server) broadcastState(st navigation.State) {
	s.stateMu.Lock()
	s.lastState = &st
	s.stateMu.Unlock()

	msg, err := protocol.NewMessage(protocol.TypeNavState, st)
	if err != nil {
		return
	}
	if data, err := msg.Bytes(); err == nil {
		s.stateHub.Broadcast(data)
	}
}
