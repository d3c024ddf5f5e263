package link

import (
	"dial/dialos/kernel"
	"dial/dialos/proto"
	"dial/hal"
)

const (
	maxSubscribers = 4

	// DefaultPollTicks is the link pin sampling period in kernel ticks.
	DefaultPollTicks = 100
)

// Service watches the phone link pin and reports state changes.
//
// The pin reads high while the phone is connected. Subscribers get the
// current state as soon as it is known, then every transition.
type Service struct {
	pin hal.GPIOPin
	ep  kernel.Capability

	PollTicks uint64

	subs [maxSubscribers]kernel.Capability

	known     bool
	connected bool
	lastPoll  uint64
}

func New(pin hal.GPIOPin, ep kernel.Capability) *Service {
	return &Service{pin: pin, ep: ep, PollTicks: DefaultPollTicks}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	if s.pin != nil {
		if err := s.pin.Configure(hal.GPIOModeInput, hal.GPIOPullNone); err != nil {
			s.pin = nil
		}
	}

	tickCh, stop := ctx.Ticks(4)
	defer stop()

	s.sample(ctx)
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if proto.Kind(msg.Kind) == proto.MsgLinkSubscribe {
				s.subscribe(ctx, msg.Cap)
			}
		case now := <-tickCh:
			if now-s.lastPoll < s.PollTicks {
				continue
			}
			s.lastPoll = now
			s.sample(ctx)
		}
	}
}

func (s *Service) subscribe(ctx *kernel.Context, reply kernel.Capability) {
	if !reply.Valid() {
		return
	}
	for i := range s.subs {
		if s.subs[i].Valid() {
			continue
		}
		s.subs[i] = reply
		if s.known {
			s.publish(ctx, i)
		}
		return
	}
	_ = ctx.SendToCapResult(reply, uint16(proto.MsgError),
		proto.ErrorPayload(proto.ErrOverflow, proto.MsgLinkSubscribe, 0), kernel.Capability{})
}

func (s *Service) sample(ctx *kernel.Context) {
	if s.pin == nil {
		return
	}
	level, err := s.pin.Read()
	if err != nil {
		return
	}
	if s.known && level == s.connected {
		return
	}
	s.known = true
	s.connected = level
	for i := range s.subs {
		if s.subs[i].Valid() {
			s.publish(ctx, i)
		}
	}
}

func (s *Service) publish(ctx *kernel.Context, i int) {
	res := ctx.SendToCapRetry(s.subs[i], uint16(proto.MsgLinkState), proto.LinkStatePayload(s.connected), kernel.Capability{}, 8)
	switch res {
	case kernel.SendOK, kernel.SendErrQueueFull:
	default:
		s.subs[i] = kernel.Capability{}
	}
}
