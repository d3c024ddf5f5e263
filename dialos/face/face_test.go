package face

import (
	"image"
	"image/color"
	"math"
	"testing"
	"time"
)

type line struct {
	from, to Point
	c        color.RGBA
	width    int
}

type circle struct {
	center Point
	radius int
}

type recordingSurface struct {
	lines   []line
	circles []circle
	fills   int
	bitmaps int
	dirty   map[Layer]int
}

func (s *recordingSurface) FillRect(Rect, color.RGBA) { s.fills++ }
func (s *recordingSurface) Line(from, to Point, c color.RGBA, width int) {
	s.lines = append(s.lines, line{from, to, c, width})
}
func (s *recordingSurface) FillCircle(center Point, radius int, _ color.RGBA) {
	s.circles = append(s.circles, circle{center, radius})
}
func (s *recordingSurface) DrawBitmap(Rect, image.Image) { s.bitmaps++ }
func (s *recordingSurface) MarkDirty(l Layer) {
	if s.dirty == nil {
		s.dirty = make(map[Layer]int)
	}
	s.dirty[l]++
}

func (s *recordingSurface) reset() {
	s.lines, s.circles, s.fills, s.bitmaps = nil, nil, 0, 0
	s.dirty = nil
}

type fakeAlerter struct {
	patterns [][]uint16
}

func (a *fakeAlerter) Vibrate(seg []uint16) { a.patterns = append(a.patterns, seg) }

const allUnits = SecondUnit | MinuteUnit | HourUnit | DayUnit

func newTestFace(cfg Config) (*Face, *recordingSurface, *fakeText, *fakeAlerter) {
	s := &recordingSurface{}
	ts := &fakeText{}
	al := &fakeAlerter{}
	return New(faceBounds, cfg, s, ts, al), s, ts, al
}

// polarTip is an independent float version of a hand tip: the circle
// inscribed in the 180px face inset by margin.
func polarTip(margin, angle float64) (x, y float64) {
	cx := 89.5
	r := (180-2*margin)/2 - 0.5
	rad := angle * math.Pi / 180
	return cx + r*math.Sin(rad), cx - r*math.Cos(rad)
}

func near(p Point, x, y float64) bool {
	return math.Abs(float64(p.X)-x) <= 1 && math.Abs(float64(p.Y)-y) <= 1
}

func TestTenTenEndToEnd(t *testing.T) {
	f, s, ts, _ := newTestFace(DefaultConfig())
	f.Handle(AnimationProgressEvent{Percent: 100})
	f.Handle(TickEvent{Hour: 10, Minute: 10, Second: 0, Year: 2024, Month: time.March, Day: 9, Weekday: time.Saturday, Changed: allUnits})

	hour, minute, second := f.model.Angles(f.State().Time)
	if hour != 305 || minute != 60 || second != 0 {
		t.Fatalf("angles = %d/%d/%d, want 305/60/0", hour, minute, second)
	}

	st := f.State()
	if x, y := polarTip(42, 305); !near(st.Hour, x, y) {
		t.Fatalf("hour tip = %v, want near (%.1f, %.1f)", st.Hour, x, y)
	}
	if x, y := polarTip(20, 60); !near(st.Minute, x, y) {
		t.Fatalf("minute tip = %v, want near (%.1f, %.1f)", st.Minute, x, y)
	}
	if x, y := polarTip(14, 0); !near(st.Second, x, y) {
		t.Fatalf("second tip = %v, want near (%.1f, %.1f)", st.Second, x, y)
	}
	if st.Second != f.Dial().Tables.Second[0] {
		t.Fatalf("second tip %v not from table", st.Second)
	}

	if ts.text != "Mar 09" {
		t.Fatalf("date text = %q", ts.text)
	}
	if f.DatePosition() != DateRight {
		t.Fatalf("date position = %v", f.DatePosition())
	}

	s.reset()
	f.Render()
	if s.fills != 1 || ts.draws != 1 {
		t.Fatalf("fills=%d date draws=%d", s.fills, ts.draws)
	}
	// 60 ticks, 3 shadows, 3 hands.
	if len(s.lines) != 66 {
		t.Fatalf("lines = %d, want 66", len(s.lines))
	}
	hands := s.lines[63:]
	if hands[0].to != st.Hour || hands[1].to != st.Minute || hands[2].to != st.Second {
		t.Fatalf("hand lines = %+v", hands)
	}
	if hands[0].width != 7 || hands[2].width != 2 {
		t.Fatalf("hand widths = %d, %d", hands[0].width, hands[2].width)
	}
	if len(s.circles) != 1 || s.circles[0].radius != 1 || s.circles[0].center != f.Dial().Center {
		t.Fatalf("pin = %+v", s.circles)
	}
}

func TestProgressMarksOnlyHands(t *testing.T) {
	f, s, _, _ := newTestFace(DefaultConfig())
	s.reset()
	f.Handle(AnimationProgressEvent{Percent: 40})
	if len(s.dirty) != 1 || s.dirty[LayerHands] != 1 {
		t.Fatalf("dirty = %v", s.dirty)
	}
	f.Handle(AnimationProgressEvent{Percent: 40})
	f.Handle(AnimationProgressEvent{Percent: 20})
	if f.Progress() != 40 {
		t.Fatalf("progress went back to %d", f.Progress())
	}
	if s.dirty[LayerHands] != 1 {
		t.Fatalf("hands marked dirty %d times for one step", s.dirty[LayerHands])
	}
}

func TestHandsReachFullLengthAtEndOfAnimation(t *testing.T) {
	for _, steps := range [][]int{{90, 100}, {100}} {
		f, _, _, _ := newTestFace(DefaultConfig())
		// 3:07:13 is not an hour or minute refresh point.
		f.Handle(TickEvent{Hour: 3, Minute: 7, Second: 13, Changed: allUnits})
		for _, p := range steps {
			f.Handle(AnimationProgressEvent{Percent: p})
		}

		hour, minute, second := f.model.Angles(f.State().Time)
		st := f.State()
		if x, y := polarTip(42, float64(hour)); !near(st.Hour, x, y) {
			t.Fatalf("steps %v: hour tip = %v, want near (%.1f, %.1f)", steps, st.Hour, x, y)
		}
		if x, y := polarTip(20, float64(minute)); !near(st.Minute, x, y) {
			t.Fatalf("steps %v: minute tip = %v, want near (%.1f, %.1f)", steps, st.Minute, x, y)
		}
		if x, y := polarTip(14, float64(second)); !near(st.Second, x, y) {
			t.Fatalf("steps %v: second tip = %v, want near (%.1f, %.1f)", steps, st.Second, x, y)
		}

		hourTip, minuteTip := st.Hour, st.Minute
		f.Handle(TickEvent{Hour: 3, Minute: 7, Second: 14, Changed: SecondUnit})
		if st.Hour != hourTip || st.Minute != minuteTip {
			t.Fatalf("steps %v: hands moved on a plain second tick", steps)
		}
	}
}

func TestHandsGrowDuringAnimation(t *testing.T) {
	f, _, _, _ := newTestFace(DefaultConfig())
	f.Handle(TickEvent{Hour: 3, Changed: allUnits})
	center := f.Dial().Center

	prev := -1
	for p := 0; p <= 100; p += 10 {
		f.Handle(AnimationProgressEvent{Percent: p})
		reach := f.State().Hour.X - center.X
		if reach < prev {
			t.Fatalf("hour hand shrank at %d%%: %d < %d", p, reach, prev)
		}
		prev = reach
	}
	if want := PointFromPolar(faceBounds.Inset(42), 90); f.State().Hour != want {
		t.Fatalf("hour tip = %v, want %v", f.State().Hour, want)
	}
}

func TestLowPowerFace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LowPower = true
	cfg.Ticks = false
	f, s, _, _ := newTestFace(cfg)
	f.Handle(AnimationProgressEvent{Percent: 100})
	f.Handle(TickEvent{Hour: 4, Minute: 20, Second: 45, Changed: allUnits})
	s.reset()
	f.Render()
	// Two shadows and two hands, no second hand.
	if len(s.lines) != 4 {
		t.Fatalf("lines = %d, want 4", len(s.lines))
	}
	if f.State().Center() != f.Dial().Center {
		t.Fatalf("center moved to %v", f.State().Center())
	}
}

func TestDateMovesOnMinute(t *testing.T) {
	f, _, ts, _ := newTestFace(DefaultConfig())
	f.Handle(AnimationProgressEvent{Percent: 100})
	f.Handle(TickEvent{Hour: 9, Minute: 15, Changed: allUnits})
	if f.DatePosition() != DateBottom {
		t.Fatalf("position at 9:15 = %v", f.DatePosition())
	}
	f.Handle(TickEvent{Hour: 6, Minute: 15, Changed: MinuteUnit | HourUnit})
	if f.DatePosition() != DateTop {
		t.Fatalf("position at 6:15 = %v", f.DatePosition())
	}
	last := ts.placements[len(ts.placements)-1]
	if last.rect != f.Dial().DateSlots[DateTop].Rect {
		t.Fatalf("last placement = %+v", last)
	}
}

func TestDebugTimePinsHands(t *testing.T) {
	cfg := DefaultConfig()
	dbg := DebugTime
	cfg.Debug = &dbg
	f, _, _, _ := newTestFace(cfg)
	f.Handle(TickEvent{Hour: 1, Minute: 1, Second: 1, Changed: allUnits})
	if f.State().Time != DebugTime {
		t.Fatalf("Time = %+v", f.State().Time)
	}
}

func TestDisconnectVibratesOnce(t *testing.T) {
	f, _, _, al := newTestFace(DefaultConfig())
	f.Handle(ConnectivityEvent{Connected: false})
	f.Handle(ConnectivityEvent{Connected: false})
	f.Handle(ConnectivityEvent{Connected: true})
	f.Handle(ConnectivityEvent{Connected: false})
	if len(al.patterns) != 2 {
		t.Fatalf("alerts = %d, want 2", len(al.patterns))
	}
	want := []uint16{200, 200, 50, 150, 150}
	for i, v := range want {
		if al.patterns[0][i] != v {
			t.Fatalf("pattern = %v, want %v", al.patterns[0], want)
		}
	}

	cfg := DefaultConfig()
	cfg.LinkAlert = false
	quiet, _, _, qa := newTestFace(cfg)
	quiet.Handle(ConnectivityEvent{Connected: false})
	if len(qa.patterns) != 0 {
		t.Fatal("alert with link_alert off")
	}
}
