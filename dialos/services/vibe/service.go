package vibe

import (
	"fmt"

	logclient "dial/dialos/client/logger"
	timeclient "dial/dialos/client/time"
	"dial/dialos/kernel"
	"dial/dialos/proto"
	"dial/hal"
)

// Service plays vibration patterns on the motor pin.
//
// Patterns are queued in arrival order. Each one alternates on and off
// segments, starting with on, and always leaves the motor off.
type Service struct {
	pin     hal.GPIOPin
	ep      kernel.Capability
	timeCap kernel.Capability
	logCap  kernel.Capability
}

func New(pin hal.GPIOPin, ep, timeCap, logCap kernel.Capability) *Service {
	return &Service{pin: pin, ep: ep, timeCap: timeCap, logCap: logCap}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	if s.pin != nil {
		if err := s.pin.Configure(hal.GPIOModeOutput, hal.GPIOPullNone); err != nil {
			logclient.Log(ctx, s.logCap, fmt.Sprintf("vibe: configure: %v", err))
			s.pin = nil
		}
	}

	for msg := range ch {
		if proto.Kind(msg.Kind) != proto.MsgVibe {
			continue
		}
		segments, ok := proto.DecodeVibePayload(msg.Payload())
		if !ok {
			logclient.Log(ctx, s.logCap, "vibe: bad pattern")
			continue
		}
		if err := s.play(ctx, segments); err != nil {
			logclient.Log(ctx, s.logCap, fmt.Sprintf("vibe: %v", err))
		}
	}
}

func (s *Service) play(ctx *kernel.Context, segments []uint16) error {
	if s.pin == nil {
		return nil
	}
	defer func() { _ = s.pin.Write(false) }()

	for i, d := range segments {
		if err := s.pin.Write(i%2 == 0); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
		if d == 0 {
			continue
		}
		if err := timeclient.Sleep(ctx, s.timeCap, uint32(d)); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return nil
}
