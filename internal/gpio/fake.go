package gpio

import "errors"

// FakeButton is a test double that replays a script of logical button
// states (true = pressed).
type FakeButton struct {
	// Samples contains scripted logical states. Each call to Pressed()
	// consumes the next sample; once exhausted, the last sample is
	// returned repeatedly.
	Samples []bool

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Pressed()
	ReadError error
}

// NewFakeButton creates a FakeButton with the given script.
func NewFakeButton(samples []bool) *FakeButton {
	return &FakeButton{Samples: samples}
}

// Pressed returns the next scripted sample.
func (f *FakeButton) Pressed() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}
	if len(f.Samples) == 0 {
		return false, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return sample, nil
}

// Close marks the button as closed.
func (f *FakeButton) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the script.
func (f *FakeButton) Reset() {
	f.index = 0
	f.Closed = false
}

// FakeLED records every level written to it.
type FakeLED struct {
	// Writes contains every level passed to Set, in order.
	Writes []bool

	// Closed tracks if Close was called
	Closed bool

	// SetError, if set, will be returned by Set()
	SetError error
}

// NewFakeLED creates a FakeLED.
func NewFakeLED() *FakeLED {
	return &FakeLED{}
}

// Set records the level.
func (f *FakeLED) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Writes = append(f.Writes, on)
	return nil
}

// On returns the most recently written level (false if never written).
func (f *FakeLED) On() bool {
	if len(f.Writes) == 0 {
		return false
	}
	return f.Writes[len(f.Writes)-1]
}

// Close marks the LED as closed.
func (f *FakeLED) Close() error {
	f.Closed = true
	return nil
}
