package status

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sweeney/button-led/internal/logic"
)

func testConfig() Config {
	return Config{
		PollMs:          5,
		TickMs:          100,
		DebounceSamples: 4,
		ReleasesToDone:  2,
		Broker:          "tcp://broker:1883",
		HTTPAddr:        ":8080",
	}
}

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.LED != "" || snap.Button != "" {
		t.Errorf("fresh tracker should have empty states, got LED=%q Button=%q", snap.LED, snap.Button)
	}
	if snap.Done {
		t.Error("fresh tracker should not be done")
	}
	if snap.Config.DebounceSamples != 4 {
		t.Errorf("config not stored: %+v", snap.Config)
	}
}

func TestTrackerUpdate(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())

	counts := logic.EventCounts{LEDOn: 2, LEDOff: 1, Press: 2, Release: 1}
	tr.Update(logic.StateOn, logic.StatePressed, counts, 1)
	tr.SetMQTTConnected(true)

	snap := tr.Snapshot()
	if snap.LED != logic.StateOn {
		t.Errorf("LED: got %s, want ON", snap.LED)
	}
	if snap.Button != logic.StatePressed {
		t.Errorf("Button: got %s, want PRESSED", snap.Button)
	}
	if snap.Counts != counts {
		t.Errorf("Counts: got %+v, want %+v", snap.Counts, counts)
	}
	if snap.Releases != 1 {
		t.Errorf("Releases: got %d, want 1", snap.Releases)
	}
	if !snap.MQTTConnected {
		t.Error("MQTTConnected: got false, want true")
	}
}

func TestSetDone(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())
	tr.SetDone()
	if !tr.Snapshot().Done {
		t.Error("expected Done after SetDone")
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Now().Add(-90 * time.Second)
	tr := NewTracker(start, testConfig())

	up := tr.Snapshot().Uptime()
	if up < 89*time.Second || up > 95*time.Second {
		t.Errorf("uptime: got %v, want ~90s", up)
	}
}

func TestTrackerConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tr.Update(logic.StateOn, logic.StateReleased, logic.EventCounts{Press: n}, n)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = tr.Snapshot()
			}
		}()
	}
	wg.Wait()
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())
	tr.Update(logic.StateOff, logic.StateReleased, logic.EventCounts{LEDOn: 1, LEDOff: 1, Press: 1, Release: 1}, 1)

	var decoded StatusJSON
	if err := json.Unmarshal(FormatJSON(tr.Snapshot()), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	s := decoded.Status
	if s.LED != "OFF" || s.Button != "RELEASED" {
		t.Errorf("states: got LED=%s Button=%s", s.LED, s.Button)
	}
	if s.Event != "" || s.Reason != "" {
		t.Errorf("web JSON must not carry event/reason, got %q/%q", s.Event, s.Reason)
	}
	if s.Counts.Press != 1 || s.Counts.Release != 1 {
		t.Errorf("counts: got %+v", s.Counts)
	}
	if s.Config.PollMs != 5 || s.Config.TickMs != 100 {
		t.Errorf("config: got %+v", s.Config)
	}
	if s.StartTime != "2026-01-01T12:00:00Z" {
		t.Errorf("start_time: got %s", s.StartTime)
	}
}

func TestFormatJSONUnknownStates(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())

	var decoded StatusJSON
	if err := json.Unmarshal(FormatJSON(tr.Snapshot()), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Status.LED != "UNKNOWN" || decoded.Status.Button != "UNKNOWN" {
		t.Errorf("empty states should render UNKNOWN, got %s/%s", decoded.Status.LED, decoded.Status.Button)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())
	tr.SetDone()

	payload := FormatStatusEvent(tr.Snapshot(), "SHUTDOWN", "DONE")

	var decoded StatusJSON
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Status.Event != "SHUTDOWN" || decoded.Status.Reason != "DONE" {
		t.Errorf("event/reason: got %q/%q", decoded.Status.Event, decoded.Status.Reason)
	}
	if !decoded.Status.Done {
		t.Error("expected done=true in payload")
	}
}
