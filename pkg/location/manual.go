package location

import "sync"

// Manual is a Provider fed by explicit Push calls. The navigation
// gateway uses it to forward samples arriving from the map widget;
// tests use it to script exact sample sequences.
type Manual struct {
	mu sync.Mutex
	fn func(Sample)
}

// NewManual creates an empty manual provider.
func NewManual() *Manual {
	return &Manual{}
}

// Subscribe implements Provider. Only one subscriber at a time; a new
// subscription replaces the previous callback.
func (m *Manual) Subscribe(fn func(Sample)) (Subscription, error) {
	m.mu.Lock()
	m.fn = fn
	m.mu.Unlock()
	return manualSub{m: m}, nil
}

// Push delivers a sample to the current subscriber, if any.
// Samples are delivered in call order on the caller's goroutine.
func (m *Manual) Push(s Sample) {
	m.mu.Lock()
	fn := m.fn
	m.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}

type manualSub struct {
	m *Manual
}

func (s manualSub) Cancel() {
	s.m.mu.Lock()
	s.m.fn = nil
	s.m.mu.Unlock()
}
