package face

// Recomputed lists the hands a tick has to refresh.
type Recomputed struct {
	Hour   bool
	Minute bool
	Second bool

	// SecondFromTable means the second hand comes from Tables.Second.
	SecondFromTable bool
}

// RedrawPolicy decides which hand endpoints can have changed.
//
// After the entrance animation the hour hand only moves every five minutes
// and the minute hand every ten seconds, so those ticks reuse the previous
// endpoint. The lag is bounded by the next qualifying tick.
type RedrawPolicy struct {
	LowPower bool
}

// Decide returns the hands to refresh at t.
func (p RedrawPolicy) Decide(t TimeOfDay, animating bool) Recomputed {
	var r Recomputed
	r.Hour = animating || (t.Minutes%5 == 0 && (t.Seconds == 0 || p.LowPower))
	r.Minute = animating || t.Seconds%10 == 0 || p.LowPower
	if !p.LowPower {
		r.Second = true
		r.SecondFromTable = !animating
	}
	return r
}
