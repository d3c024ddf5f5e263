package timesvc

import (
	"time"

	"dial/dialos/kernel"
	"dial/dialos/proto"
	"dial/hal"
)

const (
	maxSleepers    = 32
	maxSubscribers = 8

	// DefaultPollTicks is how often the wall clock is sampled, in kernel ticks.
	DefaultPollTicks = 10

	sendRetries = 8
)

const allUnits = proto.UnitSecond | proto.UnitMinute | proto.UnitHour | proto.UnitDay | proto.UnitMonth | proto.UnitYear

type sleeper struct {
	inUse bool
	due   uint64
	id    uint32
	reply kernel.Capability
}

type subscriber struct {
	inUse  bool
	reply  kernel.Capability
	unit   proto.TimeUnits
	primed bool
}

// Service owns the kernel tick timeline and the wall clock.
//
// It answers MsgSleep with MsgWake once dt ticks have passed and sends
// MsgTick to subscribers whenever a unit at or above their granularity
// changes. A subscriber's first MsgTick carries every unit.
type Service struct {
	clock hal.Clock
	ep    kernel.Capability

	PollTicks uint64

	now      uint64
	lastPoll uint64
	sleepers [maxSleepers]sleeper
	subs     [maxSubscribers]subscriber

	wall    proto.WallTime
	hasWall bool
}

func New(clock hal.Clock, ep kernel.Capability) *Service {
	return &Service{clock: clock, ep: ep, PollTicks: DefaultPollTicks}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}

	tickCh, stop := ctx.Ticks(16)
	defer stop()

	s.now = ctx.NowTick()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.handle(ctx, msg)
		case now := <-tickCh:
			s.now = now
			s.wakeReady(ctx)
			if s.PollTicks == 0 || now-s.lastPoll >= s.PollTicks {
				s.lastPoll = now
				s.poll(ctx)
			}
		}
	}
}

func (s *Service) handle(ctx *kernel.Context, msg kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgSleep:
		s.handleSleep(ctx, msg)
	case proto.MsgTimeSubscribe:
		s.handleSubscribe(ctx, msg)
	}
}

func (s *Service) handleSleep(ctx *kernel.Context, msg kernel.Message) {
	if !msg.Cap.Valid() {
		return
	}
	requestID, dt, ok := proto.DecodeSleepPayload(msg.Payload())
	if !ok {
		s.sendErr(ctx, msg.Cap, proto.ErrBadMessage, proto.MsgSleep, 0)
		return
	}
	if dt == 0 {
		s.send(ctx, msg.Cap, proto.MsgWake, proto.WakePayload(requestID))
		return
	}
	if !s.schedule(ctx.NowTick()+uint64(dt), requestID, msg.Cap) {
		s.sendErr(ctx, msg.Cap, proto.ErrOverflow, proto.MsgSleep, requestID)
	}
}

func (s *Service) handleSubscribe(ctx *kernel.Context, msg kernel.Message) {
	if !msg.Cap.Valid() {
		return
	}
	unit, ok := proto.DecodeTimeSubscribePayload(msg.Payload())
	if !ok {
		s.sendErr(ctx, msg.Cap, proto.ErrBadMessage, proto.MsgTimeSubscribe, 0)
		return
	}
	for i := range s.subs {
		if s.subs[i].inUse {
			continue
		}
		s.subs[i] = subscriber{inUse: true, reply: msg.Cap, unit: unit}
		if s.hasWall {
			s.deliver(ctx, &s.subs[i], 0)
		}
		return
	}
	s.sendErr(ctx, msg.Cap, proto.ErrOverflow, proto.MsgTimeSubscribe, 0)
}

func (s *Service) schedule(due uint64, requestID uint32, reply kernel.Capability) bool {
	for i := range s.sleepers {
		if s.sleepers[i].inUse {
			continue
		}
		s.sleepers[i] = sleeper{inUse: true, due: due, id: requestID, reply: reply}
		return true
	}
	return false
}

func (s *Service) wakeReady(ctx *kernel.Context) {
	for i := range s.sleepers {
		sl := &s.sleepers[i]
		if !sl.inUse || sl.due > s.now {
			continue
		}
		s.send(ctx, sl.reply, proto.MsgWake, proto.WakePayload(sl.id))
		*sl = sleeper{}
	}
}

func (s *Service) poll(ctx *kernel.Context) {
	if s.clock == nil {
		return
	}
	w := WallTimeOf(s.clock.Now())
	if s.hasWall && w == s.wall {
		return
	}
	changed := allUnits
	if s.hasWall {
		changed = Changed(s.wall, w)
	}
	s.wall = w
	s.hasWall = true

	for i := range s.subs {
		if s.subs[i].inUse {
			s.deliver(ctx, &s.subs[i], changed)
		}
	}
}

func (s *Service) deliver(ctx *kernel.Context, sub *subscriber, changed proto.TimeUnits) {
	if !sub.primed {
		changed = allUnits
	} else if changed&^(sub.unit-1) == 0 {
		return
	}
	res := ctx.SendToCapRetry(sub.reply, uint16(proto.MsgTick), proto.TickPayload(s.wall, changed), kernel.Capability{}, sendRetries)
	switch res {
	case kernel.SendOK:
		sub.primed = true
	case kernel.SendErrQueueFull:
	default:
		*sub = subscriber{}
	}
}

func (s *Service) send(ctx *kernel.Context, reply kernel.Capability, kind proto.Kind, payload []byte) {
	_ = ctx.SendToCapRetry(reply, uint16(kind), payload, kernel.Capability{}, sendRetries)
}

func (s *Service) sendErr(ctx *kernel.Context, reply kernel.Capability, code proto.ErrCode, ref proto.Kind, requestID uint32) {
	s.send(ctx, reply, proto.MsgError, proto.ErrorPayload(code, ref, requestID))
}

// WallTimeOf converts t to the MsgTick wire snapshot.
func WallTimeOf(t time.Time) proto.WallTime {
	return proto.WallTime{
		Year:    uint16(t.Year()),
		Month:   uint8(t.Month()),
		Day:     uint8(t.Day()),
		Weekday: uint8(t.Weekday()),
		Hour:    uint8(t.Hour()),
		Minute:  uint8(t.Minute()),
		Second:  uint8(t.Second()),
	}
}

// Changed returns the units that differ between two snapshots. A date
// change always includes UnitDay.
func Changed(prev, next proto.WallTime) proto.TimeUnits {
	var u proto.TimeUnits
	if prev.Second != next.Second {
		u |= proto.UnitSecond
	}
	if prev.Minute != next.Minute {
		u |= proto.UnitMinute
	}
	if prev.Hour != next.Hour {
		u |= proto.UnitHour
	}
	if prev.Day != next.Day || prev.Month != next.Month || prev.Year != next.Year {
		u |= proto.UnitDay
	}
	if prev.Month != next.Month || prev.Year != next.Year {
		u |= proto.UnitMonth
	}
	if prev.Year != next.Year {
		u |= proto.UnitYear
	}
	return u
}
