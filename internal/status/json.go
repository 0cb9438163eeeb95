package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	LED           string     `json:"led"`
	Button        string     `json:"button"`
	Releases      int        `json:"releases"`
	Done          bool       `json:"done"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	LEDOn   int `json:"led_on"`
	LEDOff  int `json:"led_off"`
	Press   int `json:"press"`
	Release int `json:"release"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs          int64  `json:"poll_ms"`
	TickMs          int64  `json:"tick_ms"`
	DebounceSamples int    `json:"debounce_samples"`
	ReleasesToDone  int    `json:"releases_to_done"`
	Broker          string `json:"broker,omitempty"`
	HTTPAddr        string `json:"http_addr,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	led := string(snap.LED)
	if led == "" {
		led = "UNKNOWN"
	}
	button := string(snap.Button)
	if button == "" {
		button = "UNKNOWN"
	}

	return StatusInner{
		LED:           led,
		Button:        button,
		Releases:      snap.Releases,
		Done:          snap.Done,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			LEDOn:   snap.Counts.LEDOn,
			LEDOff:  snap.Counts.LEDOff,
			Press:   snap.Counts.Press,
			Release: snap.Counts.Release,
		},
		Config: ConfigJSON{
			PollMs:          snap.Config.PollMs,
			TickMs:          snap.Config.TickMs,
			DebounceSamples: snap.Config.DebounceSamples,
			ReleasesToDone:  snap.Config.ReleasesToDone,
			Broker:          snap.Config.Broker,
			HTTPAddr:        snap.Config.HTTPAddr,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT lifecycle event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
