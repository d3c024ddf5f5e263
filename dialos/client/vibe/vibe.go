package vibe

import (
	"dial/dialos/kernel"
	"dial/dialos/proto"
)

// Enqueue asks the vibe service to play segments (milliseconds, on first).
// Patterns longer than proto.MaxVibeSegments are truncated.
func Enqueue(ctx *kernel.Context, vibeCap kernel.Capability, segments []uint16) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrNoContext
	}
	return ctx.SendToCapResult(vibeCap, uint16(proto.MsgVibe), proto.VibePayload(segments), kernel.Capability{})
}
