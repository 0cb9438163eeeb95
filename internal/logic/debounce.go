package logic

// Debouncer filters transient noise from a raw boolean sample stream.
// The stable value only flips after threshold consecutive disagreeing
// samples, so the wall-clock debounce window is threshold × the
// caller's polling interval. Update must be called exactly once per
// polling cycle.
type Debouncer struct {
	stable    bool
	count     int
	threshold int
}

// NewDebouncer creates a Debouncer with stable value false.
func NewDebouncer(threshold int) *Debouncer {
	return &Debouncer{threshold: threshold}
}

// Update feeds one raw sample and returns the stable value, reflecting
// a flip immediately on the call that crosses the threshold. The
// disagreement streak resets whenever a sample agrees with the stable
// value.
func (d *Debouncer) Update(sample bool) bool {
	if sample == d.stable {
		d.count = 0
		return d.stable
	}
	d.count++
	if d.count >= d.threshold {
		d.stable = sample
		d.count = 0
	}
	return d.stable
}

// Stable returns the current stable value without consuming a sample.
func (d *Debouncer) Stable() bool {
	return d.stable
}
