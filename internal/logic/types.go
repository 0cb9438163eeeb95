// Package logic contains pure control logic for the button/LED panel.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via the Input struct.
package logic

import (
	"strconv"
	"time"
)

// State represents the logical state of the LED or the button.
type State string

const (
	StateOn       State = "ON"
	StateOff      State = "OFF"
	StatePressed  State = "PRESSED"
	StateReleased State = "RELEASED"
)

// EventType represents an edge event on the LED or the button.
type EventType string

const (
	EventLEDOn         EventType = "LED_ON"
	EventLEDOff        EventType = "LED_OFF"
	EventButtonPress   EventType = "BUTTON_PRESS"
	EventButtonRelease EventType = "BUTTON_RELEASE"
)

// Console protocol line constants. Together with Line and FormatMark
// these define the stdout wire format, which must be stable.
const (
	LineReady = "READY"
	LineDone  = "DONE"
)

// Line returns the exact console line for the event.
func (t EventType) Line() string {
	switch t {
	case EventLEDOn:
		return "EVENT: LED On"
	case EventLEDOff:
		return "EVENT: LED Off"
	case EventButtonPress:
		return "EVENT: Button Press"
	case EventButtonRelease:
		return "EVENT: Button Release"
	}
	return "EVENT: " + string(t)
}

// FormatMark returns the console line for a time mark: the bare
// millisecond value, no prefix.
func FormatMark(ms int64) string {
	return strconv.FormatInt(ms, 10)
}

// Event represents an edge to be logged and published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	LED       State // ON / OFF after the edge
	Button    State // PRESSED / RELEASED after the edge
}

// Input represents a single sample of the button line.
type Input struct {
	// Pressed is the logical button state, already inverted from the
	// active-low raw GPIO level.
	Pressed bool
	// Elapsed is the monotonic time since the loop started.
	Elapsed time.Duration
	// Time is the wall-clock timestamp of the sample.
	Time time.Time
}

// Decision is the controller's verdict for one iteration.
type Decision int

const (
	Continue Decision = iota
	Terminate
)

// StepResult carries everything one iteration produced, in emit order:
// time marks first, then events (LED edge before button edge).
type StepResult struct {
	Marks    []int64 // 100ms marks crossed this iteration, ascending
	Events   []Event
	LED      bool // level to drive, set every iteration
	Decision Decision
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	LEDOn   int
	LEDOff  int
	Press   int
	Release int
}

// Config holds the fixed panel constants. The console protocol depends
// on these values; they are not runtime-configurable.
type Config struct {
	DebounceThreshold   int           // consecutive disagreeing samples to accept a flip
	PollInterval        time.Duration // sampling cadence
	TickInterval        time.Duration // spacing of console time marks
	ReleasesToTerminate int           // button releases before DONE
}

// DefaultConfig returns the reference constants: 4 samples at 5ms
// (~20ms debounce), 100ms time marks, terminate on the second release.
func DefaultConfig() Config {
	return Config{
		DebounceThreshold:   4,
		PollInterval:        5 * time.Millisecond,
		TickInterval:        100 * time.Millisecond,
		ReleasesToTerminate: 2,
	}
}
