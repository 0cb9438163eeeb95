// Package status provides a thread-safe status tracker for the panel
// daemon. It is read by HTTP handlers and feeds the MQTT lifecycle
// payloads.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/button-led/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs          int64
	TickMs          int64
	DebounceSamples int
	ReleasesToDone  int
	Broker          string // empty = MQTT mirror disabled
	HTTPAddr        string // empty = HTTP disabled
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	LED           logic.State
	Button        logic.State
	Counts        logic.EventCounts
	Releases      int
	Done          bool
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets line states, event counts and the release count.
// Called from the control loop on every iteration.
func (t *Tracker) Update(led, button logic.State, counts logic.EventCounts, releases int) {
	t.mu.Lock()
	t.snap.LED = led
	t.snap.Button = button
	t.snap.Counts = counts
	t.snap.Releases = releases
	t.mu.Unlock()
}

// SetDone marks the panel as terminated (DONE emitted).
func (t *Tracker) SetDone() {
	t.mu.Lock()
	t.snap.Done = true
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
