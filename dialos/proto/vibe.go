package proto

import "encoding/binary"

// MaxVibeSegments bounds a single MsgVibe pattern.
const MaxVibeSegments = 16

// VibePayload encodes a MsgVibe payload.
//
// Segments alternate on/off, starting with on. Extra segments are dropped.
//
// Layout (little-endian):
//   - u8: segment count
//   - u16 * count: segment durations in milliseconds
func VibePayload(segments []uint16) []byte {
	n := len(segments)
	if n > MaxVibeSegments {
		n = MaxVibeSegments
	}
	buf := make([]byte, 1+2*n)
	buf[0] = byte(n)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(buf[1+2*i:], segments[i])
	}
	return buf
}

// DecodeVibePayload decodes a VibePayload.
func DecodeVibePayload(payload []byte) (segments []uint16, ok bool) {
	if len(payload) < 1 {
		return nil, false
	}
	n := int(payload[0])
	if n > MaxVibeSegments || len(payload) < 1+2*n {
		return nil, false
	}
	segments = make([]uint16, n)
	for i := range segments {
		segments[i] = binary.LittleEndian.Uint16(payload[1+2*i:])
	}
	return segments, true
}
