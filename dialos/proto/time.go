package proto

import "encoding/binary"

// SleepPayload encodes a MsgSleep request payload.
//
// Layout (little-endian):
//   - u32: requestID
//   - u32: dt ticks
func SleepPayload(requestID uint32, dt uint32) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], requestID)
	binary.LittleEndian.PutUint32(buf[4:8], dt)
	return buf
}

// DecodeSleepPayload decodes a SleepPayload.
func DecodeSleepPayload(payload []byte) (requestID uint32, dt uint32, ok bool) {
	if len(payload) < 8 {
		return 0, 0, false
	}
	requestID = binary.LittleEndian.Uint32(payload[0:4])
	dt = binary.LittleEndian.Uint32(payload[4:8])
	return requestID, dt, true
}

// WakePayload encodes a MsgWake response payload.
//
// Layout (little-endian):
//   - u32: requestID
func WakePayload(requestID uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf[0:4], requestID)
	return buf
}

// DecodeWakePayload decodes a WakePayload.
func DecodeWakePayload(payload []byte) (requestID uint32, ok bool) {
	if len(payload) < 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(payload[0:4]), true
}

// TimeUnits is a bit set of wall-clock fields.
type TimeUnits uint8

const (
	UnitSecond TimeUnits = 1 << iota
	UnitMinute
	UnitHour
	UnitDay
	UnitMonth
	UnitYear
)

// WallTime is the wall-clock snapshot carried by MsgTick.
type WallTime struct {
	Year    uint16
	Month   uint8 // 1..12
	Day     uint8 // 1..31
	Weekday uint8 // 0 = Sunday
	Hour    uint8 // 0..23
	Minute  uint8
	Second  uint8
}

// TimeSubscribePayload encodes a MsgTimeSubscribe request payload.
//
// The reply capability travels in Message.Cap.
//
// Layout:
//   - u8: granularity (finest unit the subscriber wants to hear about)
func TimeSubscribePayload(granularity TimeUnits) []byte {
	return []byte{byte(granularity)}
}

// DecodeTimeSubscribePayload decodes a TimeSubscribePayload.
func DecodeTimeSubscribePayload(payload []byte) (granularity TimeUnits, ok bool) {
	if len(payload) < 1 {
		return 0, false
	}
	granularity = TimeUnits(payload[0])
	if granularity != UnitSecond && granularity != UnitMinute && granularity != UnitHour && granularity != UnitDay {
		return 0, false
	}
	return granularity, true
}

// TickPayload encodes a MsgTick payload.
//
// Layout (little-endian):
//   - u16: year
//   - u8: month, day, weekday, hour, minute, second
//   - u8: changed units
func TickPayload(t WallTime, changed TimeUnits) []byte {
	buf := make([]byte, 9)
	binary.LittleEndian.PutUint16(buf[0:2], t.Year)
	buf[2] = t.Month
	buf[3] = t.Day
	buf[4] = t.Weekday
	buf[5] = t.Hour
	buf[6] = t.Minute
	buf[7] = t.Second
	buf[8] = byte(changed)
	return buf
}

// DecodeTickPayload decodes a TickPayload.
func DecodeTickPayload(payload []byte) (t WallTime, changed TimeUnits, ok bool) {
	if len(payload) < 9 {
		return WallTime{}, 0, false
	}
	t.Year = binary.LittleEndian.Uint16(payload[0:2])
	t.Month = payload[2]
	t.Day = payload[3]
	t.Weekday = payload[4]
	t.Hour = payload[5]
	t.Minute = payload[6]
	t.Second = payload[7]
	if t.Hour > 23 || t.Minute > 59 || t.Second > 59 {
		return WallTime{}, 0, false
	}
	return t, TimeUnits(payload[8]), true
}
