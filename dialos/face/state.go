package face

// TimeOfDay is the 12-hour time the hands show.
type TimeOfDay struct {
	Hours   int // 0..11
	Minutes int // 0..59
	Seconds int // 0..59
}

// DebugTime is the fixed time shown when rendering is being verified.
var DebugTime = TimeOfDay{Hours: 6, Minutes: 15, Seconds: 20}

// ClockState is the live time plus the derived hand endpoints.
type ClockState struct {
	Time TimeOfDay

	// Override replaces tick data for every field when set.
	Override *TimeOfDay

	Hour   Point
	Minute Point
	Second Point

	center Point
}

func newClockState(center Point) ClockState {
	return ClockState{center: center, Hour: center, Minute: center, Second: center}
}

// Center returns the shared hand origin.
func (c *ClockState) Center() Point { return c.center }

// Apply copies the fields named by ev.Changed into the state.
func (c *ClockState) Apply(ev TickEvent) {
	if c.Override != nil {
		c.Time = *c.Override
		return
	}
	if ev.Changed&HourUnit != 0 {
		c.Time.Hours = ev.Hour % 12
	}
	if ev.Changed&MinuteUnit != 0 {
		c.Time.Minutes = ev.Minute
	}
	if ev.Changed&SecondUnit != 0 {
		c.Time.Seconds = ev.Second
	}
}

// Recompute refreshes the hand endpoints that the policy says may have moved.
// An animation frame refreshes every hand, including the one that reaches 100.
func (c *ClockState) Recompute(d *Dial, m AngleModel, p RedrawPolicy, percent int, animating bool) Recomputed {
	dec := p.Decide(c.Time, animating)
	hour, minute, second := m.Angles(c.Time)
	l := d.Layout

	if dec.Hour {
		c.Hour = d.HandTip(l.HourMargin, hour, percent)
	}
	if dec.Minute {
		c.Minute = d.HandTip(l.MinuteMargin, minute, percent)
	}
	if dec.Second {
		if dec.SecondFromTable {
			c.Second = d.Tables.Second[clampInt(c.Time.Seconds, 0, 59)]
		} else {
			c.Second = d.HandTip(l.SecondMargin, second, percent)
		}
	}
	return dec
}

// WithCenterShift moves the center down by dy for the duration of fn.
// The center is restored however fn returns.
func (c *ClockState) WithCenterShift(dy int, fn func(center Point)) {
	c.center.Y += dy
	defer func() { c.center.Y -= dy }()
	fn(c.center)
}
