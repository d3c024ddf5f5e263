package logger

import (
	"fmt"

	"dial/dialos/kernel"
	"dial/dialos/proto"
	"dial/hal"
)

// Service writes MsgLogLine payloads to the device logger, stamped with
// the kernel tick (milliseconds since boot) at which they were written.
type Service struct {
	log hal.Logger
	ep  kernel.Capability
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	for msg := range ch {
		if s.log == nil || proto.Kind(msg.Kind) != proto.MsgLogLine {
			continue
		}
		s.log.WriteLineString(fmt.Sprintf("[%7d] %s", ctx.NowTick(), msg.Payload()))
	}
}
