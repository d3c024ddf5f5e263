package face

import "fmt"

const (
	// AnimationDuration is the entrance animation length in kernel ticks (ms).
	AnimationDuration = 750
	// AnimationDelay is the wait before the entrance animation starts.
	AnimationDelay = 0
)

// AnimationState is the lifecycle of the entrance animation.
//
//	Idle ──Start──► Running ──(100%)──► Stopped
//
// Stopped is terminal.
type AnimationState uint8

const (
	AnimationIdle AnimationState = iota
	AnimationRunning
	AnimationStopped
)

func (s AnimationState) String() string {
	switch s {
	case AnimationIdle:
		return "idle"
	case AnimationRunning:
		return "running"
	case AnimationStopped:
		return "stopped"
	default:
		return fmt.Sprintf("AnimationState(%d)", uint8(s))
	}
}

// Animation drives the entrance progress from 0 to 100 percent.
//
// It runs once per face; there is no reverse, repeat or cancel.
type Animation struct {
	Duration uint64
	Delay    uint64
	Curve    Curve

	state   AnimationState
	start   uint64
	percent int
}

// NewAnimation returns an idle entrance animation with the default timing.
func NewAnimation() *Animation {
	return &Animation{
		Duration: AnimationDuration,
		Delay:    AnimationDelay,
		Curve:    EaseInOut,
	}
}

func (a *Animation) State() AnimationState { return a.state }
func (a *Animation) Percent() int          { return a.percent }

// Start moves an idle animation to running at tick now. It reports whether
// the animation was started.
func (a *Animation) Start(now uint64) bool {
	if a.state != AnimationIdle {
		return false
	}
	a.state = AnimationRunning
	a.start = now
	a.percent = 0
	return true
}

// Advance computes the progress at tick now. ok is false unless the
// animation is running; the call that reaches 100 stops it.
func (a *Animation) Advance(now uint64) (ev AnimationProgressEvent, ok bool) {
	if a.state != AnimationRunning {
		return AnimationProgressEvent{Percent: a.percent}, false
	}

	var elapsed uint64
	if begin := a.start + a.Delay; now > begin {
		elapsed = now - begin
	}

	t := 1.0
	if a.Duration > 0 {
		t = clampUnit(float64(elapsed) / float64(a.Duration))
	}
	eased := t
	if a.Curve != nil {
		eased = a.Curve(t)
	}

	p := clampInt(int(eased*100), 0, 100)
	if p < a.percent {
		p = a.percent
	}
	if t >= 1 {
		p = 100
	}
	a.percent = p
	if p == 100 {
		a.state = AnimationStopped
	}
	return AnimationProgressEvent{Percent: p}, true
}

// AnimatedInset is how far the hand tips sit inside their resting radius at
// the given progress: maxRadius at 0%, nothing at 100%.
func AnimatedInset(maxRadius, percent int) int {
	percent = clampInt(percent, 0, 100)
	return maxRadius - (maxRadius*percent)/100
}

// HandInset returns the bounds inset of a hand tip, clamped to
// [margin, maxRadius].
func HandInset(margin, animatedInset, maxRadius int) int {
	v := margin + animatedInset
	if v < margin {
		v = margin
	}
	if v > maxRadius {
		v = maxRadius
	}
	return v
}
