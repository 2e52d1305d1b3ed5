package camera

import (
	"sync"
	"time"

	"github.com/fuelmate/go-nav/pkg/geo"
)

// Controller owns CameraMode and the camera pose. It is the only
// writer of either. Three asynchronous sources call into it: position
// updates, user gestures from the map widget, and the idle-recenter
// timer; a mutex serializes them so mode is checked fresh per event.
type Controller struct {
	cfg Config

	mu         sync.Mutex
	cam        MapCamera // nil until a map widget attaches
	mode       Mode
	navigating bool

	idleTimer *time.Timer
	timerGen  uint64 // invalidates stale timer callbacks

	lastPos     geo.Coordinate
	lastHeading float64
	hasFix      bool
}

// NewController creates a controller in follow mode with no map
// widget attached. Camera commands are silently dropped until
// AttachMap is called; they are never queued or retried.
func NewController(cfg Config) *Controller {
	return &Controller{
		cfg:  cfg,
		mode: ModeFollow,
	}
}

// AttachMap injects the map-widget capability.
func (c *Controller) AttachMap(cam MapCamera) {
	c.mu.Lock()
	c.cam = cam
	c.mu.Unlock()
}

// Mode returns the current camera mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// StartNavigation switches the controller into continuous tracking.
func (c *Controller) StartNavigation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.navigating = true
	c.mode = ModeFollow
}

// StopNavigation reverts to the non-navigating camera behavior:
// any pending idle timer is cleared and tracking stops.
func (c *Controller) StopNavigation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.navigating = false
	c.mode = ModeFollow
	c.cancelTimerLocked()
}

// OnPositionUpdate feeds a new position and heading. While following,
// it issues one chase-view animation centered ahead of the vehicle;
// while in free look it only records the fix for the later recenter.
func (c *Controller) OnPositionUpdate(pos geo.Coordinate, headingDeg float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastPos = pos
	c.lastHeading = headingDeg
	c.hasFix = true

	if !c.navigating || c.mode != ModeFollow {
		return
	}

	c.animateLocked(c.chasePoseLocked(pos, headingDeg), c.cfg.FollowDuration)
}

// OnUserPanDrag handles a pan/drag gesture from the map widget. During
// navigation it hands the camera to the user and arms (or re-arms) the
// idle-recenter timer.
func (c *Controller) OnUserPanDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.navigating {
		return
	}

	c.mode = ModeFreeLook
	c.cancelTimerLocked()

	c.timerGen++
	gen := c.timerGen
	c.idleTimer = time.AfterFunc(c.cfg.IdleRecenterDelay, func() {
		c.autoRecenter(gen)
	})
}

// OnRecenterRequested is the explicit recenter action: the idle timer
// is cancelled immediately and the camera resumes following now.
func (c *Controller) OnRecenterRequested() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.navigating {
		return
	}

	c.cancelTimerLocked()
	c.recenterLocked()
}

// AnimateToLocation is the non-navigating "show me" path: a direct
// animation with no forward offset and no continuous tracking.
// headingDeg < 0 keeps the current map orientation (north-up).
func (c *Controller) AnimateToLocation(pos geo.Coordinate, headingDeg float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := headingDeg
	if h < 0 {
		h = 0
	}
	c.animateLocked(Pose{
		Center:     pos,
		HeadingDeg: h,
		PitchDeg:   0,
		Zoom:       c.cfg.Zoom,
	}, c.cfg.RecenterDuration)
}

// autoRecenter runs when the idle timer fires. A stale generation
// means another gesture or a stop re-armed or cancelled the timer.
func (c *Controller) autoRecenter(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.timerGen || !c.navigating || c.mode != ModeFreeLook {
		return
	}
	c.recenterLocked()
}

// recenterLocked resumes follow mode with one animation back to the
// last known fix.
func (c *Controller) recenterLocked() {
	c.mode = ModeFollow
	if !c.hasFix {
		return
	}
	c.animateLocked(c.chasePoseLocked(c.lastPos, c.lastHeading), c.cfg.RecenterDuration)
}

func (c *Controller) chasePoseLocked(pos geo.Coordinate, headingDeg float64) Pose {
	return Pose{
		Center:     geo.Offset(pos, headingDeg, c.cfg.ForwardOffsetM),
		HeadingDeg: headingDeg,
		PitchDeg:   c.cfg.PitchDeg,
		Zoom:       c.cfg.Zoom,
	}
}

// animateLocked issues a camera command, or silently drops it when no
// map widget is attached yet.
func (c *Controller) animateLocked(pose Pose, d time.Duration) {
	if c.cam == nil {
		return
	}
	c.cam.AnimateCamera(pose, d)
}

func (c *Controller) cancelTimerLocked() {
	c.timerGen++
	if c.idleTimer != nil {
		c.idleTimer.Stop()
		c.idleTimer = nil
	}
}
