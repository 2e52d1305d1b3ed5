package web

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/fuelmate/go-nav/internal/log"
	"github.com/fuelmate/go-nav/pkg/geo"
	"github.com/fuelmate/go-nav/pkg/hub"
	"github.com/fuelmate/go-nav/pkg/location"
	"github.com/fuelmate/go-nav/pkg/navigation"
	"github.com/fuelmate/go-nav/pkg/protocol"
	"github.com/fuelmate/go-nav/pkg/route"
)

// StatusResponse is the REST status snapshot.
type StatusResponse struct {
	Navigating    bool              `json:"navigating"`
	CameraMode    string            `json:"camera_mode"`
	WidgetClients int               `json:"widget_clients"`
	State         *navigation.State `json:"state,omitempty"`
}

// handleStatus returns the gateway's current state
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.stateMu.RLock()
	st := s.lastState
	s.stateMu.RUnlock()

	return c.JSON(StatusResponse{
		Navigating:    s.manager.Current() != nil,
		CameraMode:    string(s.cam.Mode()),
		WidgetClients: s.widgetHub.ClientCount(),
		State:         st,
	})
}

// handleRoute returns the active route geometry for rendering
func (s *Server) handleRoute(c *fiber.Ctx) error {
	session := s.manager.Current()
	if session == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no active navigation",
		})
	}
	rt := session.Route()
	if rt == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no active navigation",
		})
	}
	return c.JSON(protocol.RouteData{
		Geometry:    rt.Geometry,
		Destination: rt.Destination,
	})
}

// NavigateRequest confirms a destination selection.
type NavigateRequest struct {
	Origin      geo.Coordinate `json:"origin"`
	Destination geo.Coordinate `json:"destination"`
}

// handleNavigate starts navigation to a destination. On route failure
// the response carries the external-navigation fallback URL; the
// client opens it instead of navigating in-app.
func (s *Server) handleNavigate(c *fiber.Ctx) error {
	var req NavigateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	session, err := s.manager.Start(c.Context(), req.Origin, req.Destination)
	if err != nil {
		fallback := route.ExternalNavURL(req.Destination)
		s.broadcastFallback(fallback, err.Error())
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":    err.Error(),
			"fallback": fallback,
		})
	}

	s.broadcastRoute(session)

	return c.JSON(fiber.Map{
		"session_id": session.ID,
	})
}

// broadcastRoute ships the session's route to connected widgets for
// rendering the polyline and destination marker.
func (s *Server) broadcastRoute(session *navigation.Session) {
	rt := session.Route()
	if rt == nil {
		return
	}
	if msg, err := protocol.NewRouteMessage(rt.Geometry, rt.Destination); err == nil {
		if data, err := msg.Bytes(); err == nil {
			s.widgetHub.Broadcast(data)
		}
	}
}

// handleStop cancels the active navigation
func (s *Server) handleStop(c *fiber.Ctx) error {
	s.manager.Stop()
	return c.JSON(fiber.Map{"stopped": true})
}

// handleWidgetWS serves the map widget connection: camera commands and
// route data flow out; gestures and location samples flow in.
func (s *Server) handleWidgetWS(conn *websocket.Conn) {
	client := hub.NewClient(s.widgetHub, conn)
	client.OnMessage = s.handleWidgetMessage
	client.Run() // Blocks until connection closes
}

// handleStateWS serves the overlay state feed. Broadcast-only.
func (s *Server) handleStateWS(conn *websocket.Conn) {
	client := hub.NewClient(s.stateHub, conn)
	client.Run()
}

// handleWidgetMessage dispatches one inbound widget frame. Gestures
// are applied before the next position sample is evaluated because
// both paths go through the camera controller's mutex.
func (s *Server) handleWidgetMessage(data []byte) {
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		log.Debug("dropping malformed widget message", "error", err)
		return
	}

	switch msg.Type {
	case protocol.TypePanDrag:
		s.cam.OnUserPanDrag()

	case protocol.TypeRecenter:
		s.cam.OnRecenterRequested()

	case protocol.TypeLocation:
		var loc protocol.LocationData
		if err := msg.ParseData(&loc); err != nil {
			return
		}
		s.provider.Push(location.ParseSample(loc.Lat, loc.Lon, loc.HeadingDeg, loc.SpeedMS))

	case protocol.TypeStart:
		var sd protocol.StartData
		if err := msg.ParseData(&sd); err != nil {
			return
		}
		session, err := s.manager.Start(context.Background(), sd.Origin, sd.Destination)
		if err != nil {
			s.broadcastFallback(route.ExternalNavURL(sd.Destination), err.Error())
			return
		}
		s.broadcastRoute(session)

	case protocol.TypeStop:
		s.manager.Stop()

	case protocol.TypePing:
		// handled by the websocket layer's pong

	default:
		log.Debug("unhandled widget message", "type", msg.Type)
	}
}

// broadcastFallback tells widgets to open external navigation.
func (s *Server) broadcastFallback(url, reason string) {
	if msg, err := protocol.NewFallbackMessage(url, reason); err == nil {
		if data, err := msg.Bytes(); err == nil {
			s.widgetHub.Broadcast(data)
		}
	}
}
