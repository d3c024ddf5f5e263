package hal

import (
	"fmt"
	"sync"
	"time"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
)

// GPIO provides access to the named pins of the device (LED, VIBE, LINK).
//
// Implementations may return nil if GPIO is unsupported.
type GPIO interface {
	PinCount() int
	Pin(id int) GPIOPin
}

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

// pinSet is a fixed list of pins; nil entries are skipped.
type pinSet []GPIOPin

func newPinSet(pins ...GPIOPin) pinSet {
	out := make(pinSet, 0, len(pins))
	for _, p := range pins {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (s pinSet) PinCount() int { return len(s) }

func (s pinSet) Pin(id int) GPIOPin {
	if id < 0 || id >= len(s) {
		return nil
	}
	return s[id]
}

// checkConfig validates a Configure request against the pin capabilities.
func checkConfig(name string, caps GPIOCaps, mode GPIOMode, pull GPIOPull) error {
	switch mode {
	case GPIOModeInput:
		if caps&GPIOCapInput == 0 {
			return fmt.Errorf("gpio: pin %s: input unsupported", name)
		}
	case GPIOModeOutput:
		if caps&GPIOCapOutput == 0 {
			return fmt.Errorf("gpio: pin %s: output unsupported", name)
		}
		if pull != GPIOPullNone {
			return fmt.Errorf("gpio: pin %s: pull on output", name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", name)
	}

	switch pull {
	case GPIOPullNone:
	case GPIOPullUp:
		if caps&GPIOCapPullUp == 0 {
			return fmt.Errorf("gpio: pin %s: pull-up unsupported", name)
		}
	case GPIOPullDown:
		if caps&GPIOCapPullDown == 0 {
			return fmt.Errorf("gpio: pin %s: pull-down unsupported", name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", name)
	}
	return nil
}

// simPin is a simulated pin.
//
// Output writes are mirrored to sink (a log line on the host). An input
// level is set from outside the device: by drive/toggle, or by a flap
// schedule that takes precedence when present.
type simPin struct {
	mu         sync.Mutex
	name       string
	caps       GPIOCaps
	mode       GPIOMode
	configured bool
	level      bool

	sink LED
	flap *flap
}

func newOutputPin(name string, sink LED) *simPin {
	return &simPin{name: name, caps: GPIOCapOutput, mode: GPIOModeOutput, sink: sink}
}

func newInputPin(name string, level bool) *simPin {
	return &simPin{name: name, caps: GPIOCapInput, level: level}
}

// newFlappingPin returns an input that is high for the first high of
// every period, measured from construction on now.
func newFlappingPin(name string, period, high time.Duration, now func() time.Time) *simPin {
	p := newInputPin(name, false)
	p.flap = newFlap(period, high, now)
	return p
}

func (p *simPin) Name() string   { return p.name }
func (p *simPin) Caps() GPIOCaps { return p.caps }

func (p *simPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.caps, mode, pull); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
	p.configured = true
	return nil
}

func (p *simPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.configured {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	if p.flap != nil && p.mode == GPIOModeInput {
		return p.flap.level(), nil
	}
	return p.level, nil
}

func (p *simPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.configured || p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	if level == p.level {
		return nil
	}
	p.level = level
	if p.sink != nil {
		if level {
			p.sink.High()
		} else {
			p.sink.Low()
		}
	}
	return nil
}

// drive sets the level seen by an input from outside the device.
func (p *simPin) drive(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

// toggle flips the externally driven level and returns the new one.
func (p *simPin) toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = !p.level
	return p.level
}

// flap is a square wave: high for the first high of each period.
type flap struct {
	t0     time.Time
	now    func() time.Time
	period time.Duration
	high   time.Duration
}

func newFlap(period, high time.Duration, now func() time.Time) *flap {
	if now == nil {
		now = time.Now
	}
	if period <= 0 {
		period = time.Second
	}
	high = min(max(high, 0), period)
	return &flap{t0: now(), now: now, period: period, high: high}
}

func (f *flap) level() bool {
	elapsed := f.now().Sub(f.t0)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return elapsed%f.period < f.high
}
