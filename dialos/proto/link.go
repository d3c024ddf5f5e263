package proto

// LinkStatePayload encodes a MsgLinkState payload.
//
// Layout:
//   - u8: 1 connected, 0 disconnected
func LinkStatePayload(connected bool) []byte {
	if connected {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeLinkStatePayload decodes a LinkStatePayload.
func DecodeLinkStatePayload(payload []byte) (connected bool, ok bool) {
	if len(payload) < 1 || payload[0] > 1 {
		return false, false
	}
	return payload[0] == 1, true
}
