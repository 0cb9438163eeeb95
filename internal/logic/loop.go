package logic

// Controller is the per-iteration decision core of the panel loop.
// It owns the debouncer, the edge trackers, the time-mark schedule and
// the release count; the caller owns all I/O and pacing.
type Controller struct {
	cfg        Config
	debouncer  *Debouncer
	lastStable bool  // last debounced value that produced a button edge
	led        bool  // mirror of the driven LED level
	nextMark   int64 // next scheduled time mark, ms
	releases   int
	counts     EventCounts
}

// NewController creates a Controller in the initial state: button
// released, LED off, first mark at 0ms.
func NewController(cfg Config) *Controller {
	return &Controller{
		cfg:       cfg,
		debouncer: NewDebouncer(cfg.DebounceThreshold),
	}
}

// Step processes one polling iteration and returns the emissions and
// the Continue/Terminate decision. Terminate is returned on the
// iteration that produces the final release edge; the caller must not
// call Step again after that.
func (c *Controller) Step(in Input) StepResult {
	var res StepResult

	// Catch-up mark emission: every boundary is emitted exactly once,
	// in order, even when an iteration overruns the mark interval.
	nowMs := in.Elapsed.Milliseconds()
	for nowMs >= c.nextMark {
		res.Marks = append(res.Marks, c.nextMark)
		c.nextMark += c.cfg.TickInterval.Milliseconds()
	}

	stable := c.debouncer.Update(in.Pressed)

	// The LED level mirrors the debounced input every iteration; the
	// event line fires only on the edge.
	prevLED := c.led
	c.led = stable
	res.LED = c.led
	if c.led != prevLED {
		t := EventLEDOff
		if c.led {
			t = EventLEDOn
			c.counts.LEDOn++
		} else {
			c.counts.LEDOff++
		}
		res.Events = append(res.Events, c.event(in, t, stable))
	}

	res.Decision = Continue
	if stable != c.lastStable {
		t := EventButtonRelease
		if stable {
			t = EventButtonPress
			c.counts.Press++
		} else {
			c.counts.Release++
			c.releases++
			if c.releases >= c.cfg.ReleasesToTerminate {
				res.Decision = Terminate
			}
		}
		res.Events = append(res.Events, c.event(in, t, stable))
		// Only updated on an edge; it is only ever compared for
		// equality, so this is equivalent to updating every iteration.
		c.lastStable = stable
	}

	return res
}

func (c *Controller) event(in Input, t EventType, pressed bool) Event {
	return Event{
		Timestamp: in.Time,
		Type:      t,
		LED:       onOff(c.led),
		Button:    pressedReleased(pressed),
	}
}

// CurrentState returns the current LED and button states.
func (c *Controller) CurrentState() (led, button State) {
	return onOff(c.led), pressedReleased(c.debouncer.Stable())
}

// Counts returns a snapshot of the event counts.
func (c *Controller) Counts() EventCounts {
	return c.counts
}

// Releases returns the number of debounced release edges seen so far.
func (c *Controller) Releases() int {
	return c.releases
}

func onOff(b bool) State {
	if b {
		return StateOn
	}
	return StateOff
}

func pressedReleased(b bool) State {
	if b {
		return StatePressed
	}
	return StateReleased
}
