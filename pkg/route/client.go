package route

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fuelmate/go-nav/internal/httpc"
	"github.com/fuelmate/go-nav/pkg/geo"
	"github.com/fuelmate/go-nav/pkg/polyline"
)

// ErrNoRoute indicates the routing service found no drivable route
// between the two points.
var ErrNoRoute = errors.New("route: no route found")

// DefaultBaseURL is the public OSRM demo server.
const DefaultBaseURL = "https://router.project-osrm.org"

// Client fetches driving routes from an OSRM-compatible routing service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a routing client. baseURL may be empty to use the
// public demo server.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpc.Client,
	}
}

// NewClientWithTimeout creates a routing client with a dedicated
// per-request timeout instead of the shared default.
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	c := NewClient(baseURL)
	if timeout > 0 {
		c.http = httpc.NewClient(timeout)
	}
	return c
}

// osrmResponse is the subset of the OSRM route response we consume.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Legs     []struct {
			Steps []struct {
				Name     string  `json:"name"`
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
				Maneuver struct {
					Type     string `json:"type"`
					Modifier string `json:"modifier"`
				} `json:"maneuver"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// Fetch requests a driving route from origin to destination.
// Called once per destination selection. A malformed geometry surfaces
// as a polyline.DecodeError so the caller can fall back to external
// navigation.
func (c *Client) Fetch(ctx context.Context, origin, destination geo.Coordinate) (*Route, error) {
	// OSRM takes lon,lat order
	reqURL := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=full&steps=true",
		c.baseURL, origin.Lon, origin.Lat, destination.Lon, destination.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("route: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("route: fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("route: routing service returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("route: read response: %w", err)
	}

	var parsed osrmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("route: decode response: %w", err)
	}
	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return nil, ErrNoRoute
	}

	raw := parsed.Routes[0]
	geometry, err := polyline.Decode(raw.Geometry)
	if err != nil {
		return nil, fmt.Errorf("route: malformed geometry: %w", err)
	}

	r := &Route{
		Geometry:        geometry,
		Destination:     destination,
		DistanceMeters:  raw.Distance,
		DurationSeconds: raw.Duration,
	}
	for _, leg := range raw.Legs {
		for _, s := range leg.Steps {
			mType := MapManeuverType(s.Maneuver.Type)
			mod := MapModifier(s.Maneuver.Modifier)
			r.Steps = append(r.Steps, Step{
				Instruction:     Instruction(mType, mod, s.Name),
				DistanceMeters:  s.Distance,
				DurationSeconds: s.Duration,
				Maneuver:        mType,
				Modifier:        mod,
			})
		}
	}

	return r, nil
}

// Instruction builds a human-readable instruction for a maneuver.
// OSRM ships no instruction text, so we synthesize one.
func Instruction(m ManeuverType, mod Modifier, road string) string {
	var b strings.Builder

	switch m {
	case ManeuverTurn:
		if mod == ModifierStraight || mod == ModifierNone {
			b.WriteString("Continue straight")
		} else {
			b.WriteString("Turn ")
			b.WriteString(string(mod))
		}
	case ManeuverFork:
		b.WriteString("Keep ")
		if mod == ModifierNone {
			b.WriteString("ahead at the fork")
		} else {
			b.WriteString(string(mod))
			b.WriteString(" at the fork")
		}
	case ManeuverRoundabout:
		b.WriteString("Take the roundabout")
	case ManeuverMerge:
		b.WriteString("Merge")
		if mod == ModifierLeft || mod == ModifierRight {
			b.WriteString(" ")
			b.WriteString(string(mod))
		}
	case ManeuverArrive:
		b.WriteString("Arrive at your destination")
		return b.String()
	case ManeuverDepart:
		b.WriteString("Head out")
	default:
		b.WriteString("Continue")
	}

	if road != "" {
		b.WriteString(" onto ")
		b.WriteString(road)
	}
	return b.String()
}

// ExternalNavURL returns a URL that opens the destination in an
// external maps application. Used as the fallback when in-app
// navigation cannot start (route fetch failed, malformed geometry).
func ExternalNavURL(destination geo.Coordinate) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("destination", fmt.Sprintf("%f,%f", destination.Lat, destination.Lon))
	return "https://www.google.com/maps/dir/?" + q.Encode()
}
