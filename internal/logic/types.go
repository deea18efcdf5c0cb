// Package logic contains the pure scheduling logic for the grow light.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// The current hour and time are always passed in by the caller.
package logic

import "time"

// Level is a physical output level.
type Level int

const (
	LevelLow  Level = 0
	LevelHigh Level = 1
)

func (l Level) String() string {
	if l == LevelLow {
		return "LOW"
	}
	return "HIGH"
}

// Line is a single binary output. Writes are assumed to succeed; an
// implementation that can fail must deal with the failure itself.
type Line interface {
	Set(level Level)
}

// State represents the logical state of the light.
type State string

const (
	StateOn  State = "ON"
	StateOff State = "OFF"
)

// StateOf converts a logical on/off flag to a State.
func StateOf(on bool) State {
	if on {
		return StateOn
	}
	return StateOff
}

// SwitchState is a point-in-time view of a Switch.
type SwitchState struct {
	Light    bool
	Override bool
}

// EventType represents a state transition event.
type EventType string

const (
	EventLightOn     EventType = "LIGHT_ON"
	EventLightOff    EventType = "LIGHT_OFF"
	EventOverrideOn  EventType = "OVERRIDE_ON"
	EventOverrideOff EventType = "OVERRIDE_OFF"
)

// Event represents a state transition to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Light     State
	Override  bool
	Hour      int
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	LightOn     int
	LightOff    int
	OverrideOn  int
	OverrideOff int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
