// Package status provides a thread-safe status tracker for the grow-light daemon.
// It is read by the HTTP handlers and used to build MQTT status payloads.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/grow-light/internal/logic"
)

// NetworkInfo contains network state as reported by pi-helper.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	OnHour      int
	OffHour     int
	Timezone    string
	PollMs      int64
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
	Chip        string
	Pin         int
	DryRun      bool
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Light         logic.State
	Override      bool
	Hour          int
	Counts        logic.EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	GPIOError     string
	Network       *NetworkInfo
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
			Hour:      -1,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the switch state, the hour it was evaluated for, and event counts.
func (t *Tracker) Update(state logic.SwitchState, hour int, counts logic.EventCounts) {
	t.mu.Lock()
	t.snap.Light = logic.StateOf(state.Light)
	t.snap.Override = state.Override
	t.snap.Hour = hour
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetGPIOError records the result of the most recent output write.
// A nil err clears any previous error.
func (t *Tracker) SetGPIOError(err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	t.mu.Lock()
	t.snap.GPIOError = msg
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
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
