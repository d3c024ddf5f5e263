//go:build !tinygo

package hal

import "time"

// hostTime turns runner steps into millisecond kernel ticks.
//
// Each step emits as many ticks as wall milliseconds elapsed since the
// previous one, so the face animation runs at real speed regardless of the
// runner rate. Ticks are dropped, not queued, when the kernel falls behind.
type hostTime struct {
	ch  chan uint64
	seq uint64
	now func() time.Time

	last time.Time
	acc  time.Duration
}

func newHostTime(now func() time.Time) *hostTime {
	if now == nil {
		now = time.Now
	}
	return &hostTime{ch: make(chan uint64, 1024), now: now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step advances the tick stream. The first call emits a single tick.
func (t *hostTime) step() {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		t.emit(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now
	if t.acc < time.Millisecond {
		return
	}
	n := uint64(t.acc / time.Millisecond)
	t.acc %= time.Millisecond
	t.emit(n)
}

func (t *hostTime) emit(n uint64) {
	for ; n > 0; n-- {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
