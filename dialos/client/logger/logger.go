package logger

import (
	"fmt"
	"unicode/utf8"

	"dial/dialos/kernel"
	"dial/dialos/proto"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrNoContext
	}
	return ctx.SendToCapResult(logCap, uint16(proto.MsgLogLine), proto.LogLinePayload([]byte(clip(line))), kernel.Capability{})
}

// Logf formats and sends a log line.
func Logf(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Log(ctx, logCap, fmt.Sprintf(format, args...))
}

// clip cuts line to one message without splitting a rune.
func clip(line string) string {
	if len(line) <= kernel.MaxMessageBytes {
		return line
	}
	n := kernel.MaxMessageBytes
	for n > 0 && !utf8.RuneStart(line[n]) {
		n--
	}
	return line[:n]
}
