// Package mqtt provides MQTT publishing and command handling with abstraction
// for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/grow-light/internal/logic"
)

// Topic is the MQTT topic for light and override events.
const Topic = "garden/growlight/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "garden/growlight/system"

// TopicCommand is the MQTT topic the daemon subscribes to for commands.
const TopicCommand = "garden/growlight/command"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a light event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// CommandSource delivers commands received from the broker.
type CommandSource interface {
	Commands() <-chan Command
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	GrowLight GrowLightPayload `json:"growlight"`
}

// GrowLightPayload contains the event details.
type GrowLightPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Light     string `json:"light"`
	Override  bool   `json:"override"`
	Hour      int    `json:"hour"`
}

// FormatPayload creates the JSON payload for a light event.
func FormatPayload(event logic.Event) ([]byte, error) {
	payload := Payload{
		GrowLight: GrowLightPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Light:     string(event.Light),
			Override:  event.Override,
			Hour:      event.Hour,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (LWT, RECONNECTED) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
