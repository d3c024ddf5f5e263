package timesvc

import (
	"sync"
	"testing"
	"time"

	timeclient "dial/dialos/client/time"
	"dial/dialos/kernel"
	"dial/dialos/proto"
)

type funcTask func(ctx *kernel.Context)

func (f funcTask) Run(ctx *kernel.Context) { f(ctx) }

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// runTicks advances the kernel clock every 100µs until the test ends.
func runTicks(t *testing.T, k *kernel.Kernel) {
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })
	go func() {
		for seq := uint64(1); ; seq++ {
			select {
			case <-done:
				return
			default:
			}
			k.TickTo(seq)
			time.Sleep(100 * time.Microsecond)
		}
	}()
}

type tick struct {
	w       proto.WallTime
	changed proto.TimeUnits
}

func subscribe(k *kernel.Kernel, timeCap kernel.Capability, unit proto.TimeUnits) <-chan tick {
	out := make(chan tick, 16)
	k.AddTask(funcTask(func(ctx *kernel.Context) {
		reply := ctx.NewEndpoint(kernel.RightSend | kernel.RightRecv)
		if err := timeclient.Subscribe(ctx, timeCap, reply.Restrict(kernel.RightSend), unit); err != nil {
			return
		}
		for {
			msg, ok := ctx.Recv(reply.Restrict(kernel.RightRecv))
			if !ok {
				return
			}
			if proto.Kind(msg.Kind) != proto.MsgTick {
				continue
			}
			w, changed, ok := proto.DecodeTickPayload(msg.Payload())
			if ok {
				out <- tick{w: w, changed: changed}
			}
		}
	}))
	return out
}

func next(t *testing.T, ch <-chan tick) tick {
	t.Helper()
	select {
	case tk := <-ch:
		return tk
	case <-time.After(2 * time.Second):
		t.Fatal("no tick delivered")
		return tick{}
	}
}

func quiet(t *testing.T, ch <-chan tick, d time.Duration) {
	t.Helper()
	select {
	case tk := <-ch:
		t.Fatalf("unexpected tick %+v", tk)
	case <-time.After(d):
	}
}

func TestSubscribersGetAllUnitsFirstThenChanges(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, time.March, 9, 10, 10, 58, 0, time.Local)}
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	svc := New(clock, ep.Restrict(kernel.RightRecv))
	svc.PollTicks = 1
	k.AddTask(svc)

	secs := subscribe(k, ep.Restrict(kernel.RightSend), proto.UnitSecond)
	mins := subscribe(k, ep.Restrict(kernel.RightSend), proto.UnitMinute)
	runTicks(t, k)

	for name, ch := range map[string]<-chan tick{"second": secs, "minute": mins} {
		first := next(t, ch)
		if first.changed != allUnits {
			t.Fatalf("%s first changed = %06b, want all", name, first.changed)
		}
		if first.w.Hour != 10 || first.w.Minute != 10 || first.w.Second != 58 || first.w.Day != 9 {
			t.Fatalf("%s first = %+v", name, first.w)
		}
	}

	clock.Add(time.Second)
	if tk := next(t, secs); tk.changed != proto.UnitSecond || tk.w.Second != 59 {
		t.Fatalf("second tick = %+v", tk)
	}
	quiet(t, mins, 20*time.Millisecond)

	clock.Add(time.Second)
	if tk := next(t, secs); tk.changed != proto.UnitSecond|proto.UnitMinute {
		t.Fatalf("second subscriber changed = %06b", tk.changed)
	}
	if tk := next(t, mins); tk.changed != proto.UnitSecond|proto.UnitMinute || tk.w.Minute != 11 {
		t.Fatalf("minute tick = %+v", tk)
	}
}

func TestSleepWakesAfterTicks(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	k.AddTask(New(nil, ep.Restrict(kernel.RightRecv)))

	elapsed := make(chan uint64, 1)
	errs := make(chan error, 1)
	k.AddTask(funcTask(func(ctx *kernel.Context) {
		start := ctx.NowTick()
		if err := timeclient.Sleep(ctx, ep.Restrict(kernel.RightSend), 25); err != nil {
			errs <- err
			return
		}
		elapsed <- ctx.NowTick() - start
	}))
	runTicks(t, k)

	select {
	case d := <-elapsed:
		if d < 25 {
			t.Fatalf("slept %d ticks, want >= 25", d)
		}
	case err := <-errs:
		t.Fatalf("Sleep: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("sleeper never woke")
	}
}

func TestBadSubscribeIsRejected(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	k.AddTask(New(nil, ep.Restrict(kernel.RightRecv)))

	got := make(chan proto.ErrCode, 1)
	k.AddTask(funcTask(func(ctx *kernel.Context) {
		reply := ctx.NewEndpoint(kernel.RightSend | kernel.RightRecv)
		ctx.SendToCapResult(ep.Restrict(kernel.RightSend), uint16(proto.MsgTimeSubscribe), []byte{0x30}, reply.Restrict(kernel.RightSend))
		msg, ok := ctx.Recv(reply.Restrict(kernel.RightRecv))
		if !ok || proto.Kind(msg.Kind) != proto.MsgError {
			return
		}
		code, _, _, _ := proto.DecodeErrorPayload(msg.Payload())
		got <- code
	}))

	select {
	case code := <-got:
		if code != proto.ErrBadMessage {
			t.Fatalf("code = %s, want %s", code, proto.ErrBadMessage)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no error reply")
	}
}

func TestChanged(t *testing.T) {
	base := proto.WallTime{Year: 2025, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59}
	tests := []struct {
		name string
		next proto.WallTime
		want proto.TimeUnits
	}{
		{"same", base, 0},
		{"second", proto.WallTime{Year: 2025, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 58}, proto.UnitSecond},
		{"new year", proto.WallTime{Year: 2026, Month: 1, Day: 1}, allUnits},
		{"same day next month", proto.WallTime{Year: 2025, Month: 11, Day: 31, Hour: 23, Minute: 59, Second: 59}, proto.UnitDay | proto.UnitMonth},
	}
	for _, tt := range tests {
		if got := Changed(base, tt.next); got != tt.want {
			t.Fatalf("%s: Changed = %06b, want %06b", tt.name, got, tt.want)
		}
	}
}

func TestWallTimeOf(t *testing.T) {
	w := WallTimeOf(time.Date(2024, time.February, 29, 18, 5, 7, 0, time.UTC))
	want := proto.WallTime{Year: 2024, Month: 2, Day: 29, Weekday: uint8(time.Thursday), Hour: 18, Minute: 5, Second: 7}
	if w != want {
		t.Fatalf("WallTimeOf = %+v, want %+v", w, want)
	}
}
