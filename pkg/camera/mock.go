package camera

import (
	"sync"
	"time"
)

// RecordingMap is a MapCamera that records every animation command.
// Used in tests instead of a real rendering surface.
type RecordingMap struct {
	mu sync.Mutex

	// Captured calls for assertions
	Calls []AnimateCall
}

// AnimateCall is one recorded AnimateCamera invocation.
type AnimateCall struct {
	Pose     Pose
	Duration time.Duration
}

// NewRecordingMap creates an empty recording map.
func NewRecordingMap() *RecordingMap {
	return &RecordingMap{}
}

// AnimateCamera implements MapCamera.
func (r *RecordingMap) AnimateCamera(pose Pose, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, AnimateCall{Pose: pose, Duration: duration})
}

// CallCount returns how many animations were issued.
func (r *RecordingMap) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Calls)
}

// LastCall returns the most recent animation, or a zero call.
func (r *RecordingMap) LastCall() AnimateCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Calls) == 0 {
		return AnimateCall{}
	}
	return r.Calls[len(r.Calls)-1]
}
