package watchface

import (
	"fmt"
	"time"

	linkclient "dial/dialos/client/link"
	logclient "dial/dialos/client/logger"
	timeclient "dial/dialos/client/time"
	vibeclient "dial/dialos/client/vibe"
	"dial/dialos/face"
	"dial/dialos/gfx"
	"dial/dialos/kernel"
	"dial/dialos/proto"
	"dial/hal"

	"tinygo.org/x/tinyfont"
)

// Caps are the endpoints the watch face talks to.
type Caps struct {
	Self kernel.Capability // send+recv
	Time kernel.Capability
	Link kernel.Capability
	Vibe kernel.Capability
	Log  kernel.Capability
}

// Task runs one watch face on the display.
//
// All face state lives on the task goroutine. Ticks, link changes and
// animation progress are handled one at a time, and the frame is presented
// whenever a layer went dirty.
type Task struct {
	disp hal.Display
	caps Caps
	cfg  face.Config
	font tinyfont.Fonter

	face   *face.Face
	canvas *gfx.Canvas
	anim   *face.Animation
}

func New(disp hal.Display, caps Caps, cfg face.Config, font tinyfont.Fonter) *Task {
	return &Task{disp: disp, caps: caps, cfg: cfg, font: font}
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.caps.Self.Restrict(kernel.RightRecv))
	if !ok {
		return
	}
	if t.disp == nil {
		return
	}
	fb := t.disp.Framebuffer()
	if fb == nil {
		return
	}

	t.canvas = gfx.NewCanvas(fb, t.font)
	t.face = face.New(t.canvas.Bounds(), t.cfg, t.canvas, t.canvas, &alerter{ctx: ctx, caps: t.caps})
	b := t.canvas.Bounds()
	t.logf(ctx, "watchface: start size=%dx%d low_power=%t shadows=%t date=%t", b.W, b.H, t.cfg.LowPower, t.cfg.Shadows, t.cfg.DateEnabled)

	reply := t.caps.Self.Restrict(kernel.RightSend)
	granularity := proto.UnitSecond
	if t.cfg.LowPower {
		granularity = proto.UnitMinute
	}
	if err := timeclient.Subscribe(ctx, t.caps.Time, reply, granularity); err != nil {
		t.logf(ctx, "watchface: %v", err)
	}
	if err := linkclient.Subscribe(ctx, t.caps.Link, reply); err != nil {
		t.logf(ctx, "watchface: %v", err)
	}

	t.present(ctx)

	t.anim = face.NewAnimation()
	t.anim.Start(ctx.NowTick())
	tickCh, stopPump := ctx.Ticks(1)
	defer stopPump()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			t.handleMessage(ctx, msg)

		case now := <-tickCh:
			ev, ok := t.anim.Advance(latestTick(tickCh, now))
			if ok {
				t.face.Handle(ev)
			}
			if t.anim.State() == face.AnimationStopped {
				t.logf(ctx, "watchface: animation done tick=%d", now)
				stopPump()
				tickCh = nil
			}
		}
		t.present(ctx)
	}
}

func (t *Task) handleMessage(ctx *kernel.Context, msg kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgTick:
		w, changed, ok := proto.DecodeTickPayload(msg.Payload())
		if !ok {
			t.logf(ctx, "watchface: bad tick payload")
			return
		}
		t.face.Handle(TickEvent(w, changed))

	case proto.MsgLinkState:
		connected, ok := proto.DecodeLinkStatePayload(msg.Payload())
		if !ok {
			t.logf(ctx, "watchface: bad link payload")
			return
		}
		t.logf(ctx, "watchface: link connected=%t", connected)
		t.face.Handle(face.ConnectivityEvent{Connected: connected})

	case proto.MsgError:
		code, ref, _, ok := proto.DecodeErrorPayload(msg.Payload())
		if ok {
			t.logf(ctx, "watchface: %s error: %s", ref, code)
		}
	}
}

func (t *Task) present(ctx *kernel.Context) {
	if !t.canvas.Dirty() {
		return
	}
	t.face.Render()
	if err := t.canvas.Present(); err != nil {
		t.logf(ctx, "watchface: present: %v", err)
	}
}

// latestTick drains ticks already queued behind now and returns the newest.
func latestTick(ch <-chan uint64, now uint64) uint64 {
	for {
		select {
		case n, ok := <-ch:
			if !ok {
				return now
			}
			now = max(now, n)
		default:
			return now
		}
	}
}

func (t *Task) logf(ctx *kernel.Context, format string, args ...any) {
	_ = logclient.Logf(ctx, t.caps.Log, format, args...)
}

// TickEvent converts a MsgTick snapshot into a face event.
func TickEvent(w proto.WallTime, changed proto.TimeUnits) face.TickEvent {
	ev := face.TickEvent{
		Hour:    int(w.Hour),
		Minute:  int(w.Minute),
		Second:  int(w.Second),
		Year:    int(w.Year),
		Month:   time.Month(w.Month),
		Day:     int(w.Day),
		Weekday: time.Weekday(w.Weekday % 7),
	}
	if changed&proto.UnitSecond != 0 {
		ev.Changed |= face.SecondUnit
	}
	if changed&proto.UnitMinute != 0 {
		ev.Changed |= face.MinuteUnit
	}
	if changed&proto.UnitHour != 0 {
		ev.Changed |= face.HourUnit
	}
	if changed&(proto.UnitDay|proto.UnitMonth|proto.UnitYear) != 0 {
		ev.Changed |= face.DayUnit
	}
	return ev
}

type alerter struct {
	ctx  *kernel.Context
	caps Caps
}

func (a *alerter) Vibrate(segments []uint16) {
	if res := vibeclient.Enqueue(a.ctx, a.caps.Vibe, segments); res != kernel.SendOK {
		_ = logclient.Log(a.ctx, a.caps.Log, fmt.Sprintf("watchface: vibe: %s", res))
	}
}
