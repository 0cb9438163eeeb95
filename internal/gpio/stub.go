//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealButton is not available on non-Linux platforms.
type RealButton struct{}

// NewRealButton returns an error on non-Linux platforms.
func NewRealButton(pin int) (*RealButton, error) {
	return nil, errUnsupported
}

// Pressed is not implemented on non-Linux platforms.
func (b *RealButton) Pressed() (bool, error) {
	return false, errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (b *RealButton) Close() error {
	return nil
}

// RealLED is not available on non-Linux platforms.
type RealLED struct{}

// NewRealLED returns an error on non-Linux platforms.
func NewRealLED(pin int) (*RealLED, error) {
	return nil, errUnsupported
}

// Set is not implemented on non-Linux platforms.
func (l *RealLED) Set(on bool) error {
	return errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (l *RealLED) Close() error {
	return nil
}
