package web

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/fuelmate/go-nav/pkg/protocol"
)

// Client is a headless map-widget connection to a running gateway.
// The simulator command uses it to feed location samples and replay
// gestures, and to observe the camera commands the engine emits.
type Client struct {
	conn *websocket.Conn

	// writeMu serializes writes; gorilla allows one concurrent writer
	writeMu sync.Mutex

	// Callbacks for engine → widget messages. Set before Run.
	OnCamera   func(cmd protocol.CameraCommand)
	OnRoute    func(rt protocol.RouteData)
	OnFallback func(fb protocol.FallbackData)
}

// Dial connects to a gateway's widget endpoint, e.g.
// ws://localhost:8080/ws/widget.
func Dial(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("web: dial %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// Run reads engine messages until the connection closes.
func (c *Client) Run() error {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("web: read: %w", err)
		}

		msg, err := protocol.ParseMessage(data)
		if err != nil {
			continue
		}

		switch msg.Type {
		case protocol.TypeCamera:
			if c.OnCamera != nil {
				var cmd protocol.CameraCommand
				if msg.ParseData(&cmd) == nil {
					c.OnCamera(cmd)
				}
			}
		case protocol.TypeRoute:
			if c.OnRoute != nil {
				var rt protocol.RouteData
				if msg.ParseData(&rt) == nil {
					c.OnRoute(rt)
				}
			}
		case protocol.TypeFallback:
			if c.OnFallback != nil {
				var fb protocol.FallbackData
				if msg.ParseData(&fb) == nil {
					c.OnFallback(fb)
				}
			}
		}
	}
}

// SendLocation pushes a position fix. Negative heading or speed means
// the sensor reported nothing.
func (c *Client) SendLocation(lat, lon, headingDeg, speedMS float64) error {
	return c.send(protocol.TypeLocation, protocol.LocationData{
		Lat:        lat,
		Lon:        lon,
		HeadingDeg: headingDeg,
		SpeedMS:    speedMS,
	})
}

// SendPanDrag reports a user pan/drag gesture.
func (c *Client) SendPanDrag() error {
	return c.send(protocol.TypePanDrag, nil)
}

// SendRecenter requests an immediate recenter.
func (c *Client) SendRecenter() error {
	return c.send(protocol.TypeRecenter, nil)
}

// SendStop cancels navigation.
func (c *Client) SendStop() error {
	return c.send(protocol.TypeStop, nil)
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) send(t protocol.MessageType, data interface{}) error {
	msg, err := protocol.NewMessage(t, data)
	if err != nil {
		return err
	}
	payload, err := msg.Bytes()
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}
