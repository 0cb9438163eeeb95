// Package mqtt mirrors panel events to an MQTT broker, with an
// abstraction for testing. The mirror is best-effort: publish failures
// never affect the console protocol.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/button-led/internal/logic"
)

// Topic is the MQTT topic for edge events.
const Topic = "workbench/panel/events"

// TopicSystem is the MQTT topic for lifecycle events.
const TopicSystem = "workbench/panel/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends an edge event to the broker.
	// Returns error if publishing fails (must not crash the process).
	Publish(event logic.Event) error

	// PublishSystem sends a lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a lifecycle event (startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // "STARTUP", "SHUTDOWN"
	Reason     string // "DONE", "SIGINT", "SIGTERM" (shutdown only)
	RawPayload []byte // pre-formatted JSON; if set, FormatSystemPayload returns it directly
	Retained   bool   // whether the broker should retain the message
}

// Payload represents the edge event message structure.
type Payload struct {
	Panel PanelPayload `json:"panel"`
}

// PanelPayload contains the edge event details.
type PanelPayload struct {
	Timestamp string    `json:"timestamp"`
	Event     string    `json:"event"`
	LED       LineState `json:"led"`
	Button    LineState `json:"button"`
}

// LineState represents a single line's state.
type LineState struct {
	State string `json:"state"`
}

// FormatPayload creates the JSON payload for an edge event.
func FormatPayload(event logic.Event) ([]byte, error) {
	payload := Payload{
		Panel: PanelPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			LED:       LineState{State: string(event.LED)},
			Button:    LineState{State: string(event.Button)},
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the lifecycle message structure for simple
// events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the lifecycle event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a lifecycle event.
// If event.RawPayload is set, it is returned directly (used for full
// status snapshots).
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
