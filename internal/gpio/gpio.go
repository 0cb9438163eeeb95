// Package gpio provides the two-pin hardware abstraction for the panel.
// The real implementation uses the Linux GPIO character device.
// The fake implementations allow testing without hardware.
package gpio

// Button reads the pushbutton input.
type Button interface {
	// Pressed returns the logical button state. The raw GPIO level is
	// active-low (internal pull-up, button to ground): raw low = pressed.
	// The inversion happens here, at the hardware boundary.
	Pressed() (bool, error)

	// Close releases the input line.
	Close() error
}

// LED drives the LED output.
type LED interface {
	// Set drives the output level: true = lit.
	Set(on bool) error

	// Close releases the output line.
	Close() error
}

// Default pin assignments (BCM numbering), matching the panel wiring.
const (
	DefaultPinLED    = 26
	DefaultPinButton = 4
)
