package location

import (
	"sync"
	"time"

	"github.com/fuelmate/go-nav/pkg/geo"
)

// Simulator is a Provider that walks a route's geometry at a constant
// speed, emitting interpolated fixes on a fixed cadence. It stands in
// for the platform location service during demos and tests.
type Simulator struct {
	path     []geo.Coordinate
	speedMS  float64
	interval time.Duration

	// ReportHeading controls whether samples carry a sensor heading.
	// Disable to exercise the route-bearing fallback downstream.
	ReportHeading bool

	mu      sync.Mutex
	current *simulatorSub
}

// NewSimulator creates a simulator over the given path. speedMS is the
// simulated ground speed; interval is the emission cadence (the 1 Hz
// platform default when zero).
func NewSimulator(path []geo.Coordinate, speedMS float64, interval time.Duration) *Simulator {
	if speedMS <= 0 {
		speedMS = 13.9
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Simulator{
		path:          path,
		speedMS:       speedMS,
		interval:      interval,
		ReportHeading: true,
	}
}

// Subscribe implements Provider. The stream ends when the simulated
// vehicle reaches the end of the path or the subscription is cancelled.
func (s *Simulator) Subscribe(fn func(Sample)) (Subscription, error) {
	if len(s.path) < 2 {
		return nil, ErrUnavailable
	}

	s.mu.Lock()
	if s.current != nil {
		s.current.Cancel()
	}
	sub := &simulatorSub{stop: make(chan struct{})}
	s.current = sub
	s.mu.Unlock()

	go s.run(fn, sub.stop)
	return sub, nil
}

func (s *Simulator) run(fn func(Sample), stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	segment := 0
	pos := s.path[0]
	stepM := s.speedMS * s.interval.Seconds()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			remaining := stepM
			for remaining > 0 && segment < len(s.path)-1 {
				segEnd := s.path[segment+1]
				d := geo.Distance(pos, segEnd)
				if d > remaining {
					heading := geo.Bearing(pos, segEnd)
					pos = geo.Offset(pos, heading, remaining)
					remaining = 0
				} else {
					pos = segEnd
					segment++
					remaining -= d
				}
			}

			sample := Sample{
				Coordinate: pos,
				SpeedMS:    s.speedMS,
				HasSpeed:   true,
				Time:       time.Now(),
			}
			if s.ReportHeading && segment < len(s.path)-1 {
				sample.HeadingDeg = geo.Bearing(pos, s.path[segment+1])
				sample.HasHeading = true
			}

			// Check liveness just before delivery so a cancel that
			// raced the tick stays a no-op.
			select {
			case <-stop:
				return
			default:
			}
			fn(sample)

			if segment >= len(s.path)-1 {
				return
			}
		}
	}
}

type simulatorSub struct {
	once sync.Once
	stop chan struct{}
}

func (s *simulatorSub) Cancel() {
	s.once.Do(func() { close(s.stop) })
}
