package face

import "time"

// Units is a bit set of wall-clock fields that changed since the last tick.
type Units uint8

const (
	SecondUnit Units = 1 << iota
	MinuteUnit
	HourUnit
	DayUnit
)

// Event is one of TickEvent, AnimationProgressEvent or ConnectivityEvent.
type Event interface {
	faceEvent()
}

// TickEvent carries the wall time and the units that changed.
type TickEvent struct {
	Hour    int // 0..23
	Minute  int
	Second  int
	Year    int
	Month   time.Month
	Day     int
	Weekday time.Weekday
	Changed Units
}

// AnimationProgressEvent reports entrance animation progress in percent.
type AnimationProgressEvent struct {
	Percent int
}

// ConnectivityEvent reports the phone link state.
type ConnectivityEvent struct {
	Connected bool
}

func (TickEvent) faceEvent()              {}
func (AnimationProgressEvent) faceEvent() {}
func (ConnectivityEvent) faceEvent()      {}
