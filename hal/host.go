//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// HostOptions configures the simulated device.
type HostOptions struct {
	// Size is the square display side in pixels. 0 means 180.
	Size int

	// LinkFlap makes the link pin drop for LinkFlap every 2*LinkFlap.
	// With 0 the link stays up until toggled by hand.
	LinkFlap time.Duration

	// Clock overrides the wall clock.
	Clock Clock
}

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	gpio   GPIO
	link   *simPin
	fb     *hostFramebuffer
	t      *hostTime
	clock  Clock
}

// New returns a host HAL implementation with default options.
func New() HAL {
	return newHost(HostOptions{})
}

func newHost(opts HostOptions) *hostHAL {
	if opts.Size <= 0 {
		opts.Size = 180
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}

	logger := &hostLogger{w: os.Stdout}
	led := &hostLED{name: "led", logger: logger}
	motor := &hostLED{name: "vibe", logger: logger}

	var link, pin *simPin
	if opts.LinkFlap > 0 {
		// Up for the first half of each period.
		pin = newFlappingPin(PinLink, 2*opts.LinkFlap, opts.LinkFlap, opts.Clock.Now)
	} else {
		link = newInputPin(PinLink, true)
		pin = link
	}

	return &hostHAL{
		logger: logger,
		led:    led,
		gpio:   newPinSet(newOutputPin(PinLED, led), newOutputPin(PinVibe, motor), pin),
		link:   link,
		fb:     newHostFramebuffer(opts.Size, opts.Size),
		t:      newHostTime(nil),
		clock:  opts.Clock,
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) LED() LED         { return h.led }
func (h *hostHAL) GPIO() GPIO       { return h.gpio }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Time() Time       { return h.t }
func (h *hostHAL) Clock() Clock     { return h.clock }

// toggleLink flips the hand-driven link pin. ok is false when the link
// follows a flap schedule instead.
func (h *hostHAL) toggleLink() (up, ok bool) {
	if h.link == nil {
		return false, false
	}
	up = h.link.toggle()
	h.logger.WriteLineString(fmt.Sprintf("link: connected=%t", up))
	return up, true
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hostLED logs level changes of a simulated output.
type hostLED struct {
	mu     sync.Mutex
	on     bool
	name   string
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString(l.name + ": HIGH")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString(l.name + ": LOW")
}
