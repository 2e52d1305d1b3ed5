// simulate - drive a simulated vehicle against a running navd.
// Acts as a headless map widget: starts navigation via the REST API,
// streams interpolated location fixes over the widget websocket, and
// prints every camera command the engine sends back. Optionally
// replays a pan/drag mid-drive to exercise free look.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	stdlog "log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fuelmate/go-nav/internal/httpc"
	"github.com/fuelmate/go-nav/pkg/geo"
	"github.com/fuelmate/go-nav/pkg/location"
	"github.com/fuelmate/go-nav/pkg/protocol"
	"github.com/fuelmate/go-nav/pkg/web"
)

func main() {
	gateway := flag.String("gateway", "http://localhost:8080", "navd base URL")
	origin := flag.String("from", "50.0755,14.4378", "Origin lat,lon")
	dest := flag.String("to", "50.0874,14.4213", "Destination lat,lon")
	speed := flag.Float64("speed", 13.9, "Simulated speed in m/s")
	interval := flag.Duration("interval", time.Second, "Sample cadence")
	panAt := flag.Duration("pan-at", 0, "Replay a pan/drag after this long (0 = never)")
	flag.Parse()

	from, err := parseCoord(*origin)
	if err != nil {
		stdlog.Fatalf("invalid -from: %v", err)
	}
	to, err := parseCoord(*dest)
	if err != nil {
		stdlog.Fatalf("invalid -to: %v", err)
	}

	wsURL := strings.Replace(*gateway, "http", "ws", 1) + "/ws/widget"
	client, err := web.Dial(wsURL)
	if err != nil {
		stdlog.Fatalf("widget connect failed: %v", err)
	}
	defer client.Close()

	var path []geo.Coordinate
	routeReady := make(chan struct{})
	client.OnRoute = func(rt protocol.RouteData) {
		path = rt.Geometry
		close(routeReady)
	}
	client.OnCamera = func(cmd protocol.CameraCommand) {
		fmt.Printf("📷 center=(%.5f, %.5f) heading=%.0f° pitch=%.0f° zoom=%.1f %dms\n",
			cmd.Pose.Center.Lat, cmd.Pose.Center.Lon,
			cmd.Pose.HeadingDeg, cmd.Pose.PitchDeg, cmd.Pose.Zoom, cmd.DurationMS)
	}
	client.OnFallback = func(fb protocol.FallbackData) {
		fmt.Printf("↪️  external navigation: %s (%s)\n", fb.URL, fb.Reason)
	}
	go client.Run()

	if err := startNavigation(*gateway, from, to); err != nil {
		stdlog.Fatalf("start navigation failed: %v", err)
	}

	select {
	case <-routeReady:
	case <-time.After(10 * time.Second):
		stdlog.Fatal("timed out waiting for route")
	}

	fmt.Printf("🚗 Driving %d route points at %.1f m/s\n", len(path), *speed)

	if *panAt > 0 {
		time.AfterFunc(*panAt, func() {
			fmt.Println("👆 pan/drag")
			client.SendPanDrag()
		})
	}

	// Walk the route locally and feed fixes back as the device would
	sim := location.NewSimulator(path, *speed, *interval)
	done := make(chan struct{})
	var finish sync.Once
	sub, err := sim.Subscribe(func(s location.Sample) {
		heading := -1.0
		if h, ok := s.Heading(); ok {
			heading = h
		}
		if err := client.SendLocation(s.Coordinate.Lat, s.Coordinate.Lon, heading, s.SpeedMS); err != nil {
			stdlog.Printf("send location failed: %v", err)
			finish.Do(func() { close(done) })
			return
		}
		if geo.Distance(s.Coordinate, path[len(path)-1]) < 10 {
			finish.Do(func() { close(done) })
		}
	})
	if err != nil {
		stdlog.Fatalf("simulator failed: %v", err)
	}
	defer sub.Cancel()

	<-done
	fmt.Println("🏁 Drive complete")
}

func startNavigation(gateway string, from, to geo.Coordinate) error {
	body, _ := json.Marshal(web.NavigateRequest{Origin: from, Destination: to})
	resp, err := httpc.Client.Post(gateway+"/api/navigate", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway returned %d", resp.StatusCode)
	}
	return nil
}

func parseCoord(s string) (geo.Coordinate, error) {
	var lat, lon float64
	if _, err := fmt.Sscanf(s, "%f,%f", &lat, &lon); err != nil {
		return geo.Coordinate{}, fmt.Errorf("expected lat,lon: %w", err)
	}
	return geo.Coordinate{Lat: lat, Lon: lon}, nil
}
