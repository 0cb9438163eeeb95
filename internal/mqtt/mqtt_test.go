package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/button-led/internal/logic"
)

func TestFormatPayload(t *testing.T) {
	event := logic.Event{
		Timestamp: time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC),
		Type:      logic.EventButtonPress,
		LED:       logic.StateOn,
		Button:    logic.StatePressed,
	}

	payload, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("FormatPayload returned error: %v", err)
	}

	want := `{"panel":{"timestamp":"2026-03-15T14:30:00Z","event":"BUTTON_PRESS","led":{"state":"ON"},"button":{"state":"PRESSED"}}}`
	if string(payload) != want {
		t.Errorf("payload:\n got %s\nwant %s", payload, want)
	}
}

func TestFormatPayloadConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	event := logic.Event{
		Timestamp: time.Date(2026, 3, 15, 15, 30, 0, 0, loc),
		Type:      logic.EventLEDOff,
		LED:       logic.StateOff,
		Button:    logic.StateReleased,
	}

	payload, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("FormatPayload returned error: %v", err)
	}

	var decoded Payload
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Panel.Timestamp != "2026-03-15T14:30:00Z" {
		t.Errorf("timestamp: got %s, want 2026-03-15T14:30:00Z", decoded.Panel.Timestamp)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "DONE",
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload returned error: %v", err)
	}

	want := `{"system":{"timestamp":"2026-03-15T14:30:00Z","event":"SHUTDOWN","reason":"DONE"}}`
	if string(payload) != want {
		t.Errorf("payload:\n got %s\nwant %s", payload, want)
	}
}

func TestFormatSystemPayloadOmitsEmptyReason(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC),
		Event:     "STARTUP",
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload returned error: %v", err)
	}

	want := `{"system":{"timestamp":"2026-03-15T14:30:00Z","event":"STARTUP"}}`
	if string(payload) != want {
		t.Errorf("payload:\n got %s\nwant %s", payload, want)
	}
}

func TestFormatSystemPayloadRawPassthrough(t *testing.T) {
	raw := []byte(`{"status":{"led":"ON"}}`)
	event := SystemEvent{Event: "STARTUP", RawPayload: raw}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload returned error: %v", err)
	}
	if string(payload) != string(raw) {
		t.Errorf("expected raw payload passthrough, got %s", payload)
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()

	event := logic.Event{
		Timestamp: time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC),
		Type:      logic.EventLEDOn,
		LED:       logic.StateOn,
		Button:    logic.StatePressed,
	}
	if err := f.Publish(event); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if err := f.PublishSystem(SystemEvent{Event: "STARTUP"}); err != nil {
		t.Fatalf("PublishSystem returned error: %v", err)
	}

	if len(f.Events) != 1 || f.Events[0].Type != logic.EventLEDOn {
		t.Errorf("events not recorded: %+v", f.Events)
	}
	if len(f.Payloads) != 1 {
		t.Errorf("expected 1 payload, got %d", len(f.Payloads))
	}
	if len(f.SystemEvents) != 1 || f.SystemEvents[0].Event != "STARTUP" {
		t.Errorf("system events not recorded: %+v", f.SystemEvents)
	}
}

func TestFakePublisherErrors(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("boom")
	f.PublishSystemError = errors.New("boom")

	if err := f.Publish(logic.Event{}); err == nil {
		t.Error("expected configured publish error")
	}
	if err := f.PublishSystem(SystemEvent{}); err == nil {
		t.Error("expected configured system publish error")
	}
	if len(f.Events) != 0 || len(f.SystemEvents) != 0 {
		t.Error("failed publishes must not be recorded")
	}
}

func TestFakePublisherReset(t *testing.T) {
	f := NewFakePublisher()
	f.Publish(logic.Event{Type: logic.EventLEDOn})
	f.Connected = true
	f.Close()

	f.Reset()
	if len(f.Events) != 0 || f.Closed || f.Connected {
		t.Error("Reset should clear all recorded state")
	}
}
