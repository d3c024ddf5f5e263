package proto

import "testing"

func TestDecodeTickPayloadRejectsBadInput(t *testing.T) {
	if _, _, ok := DecodeTickPayload([]byte{1, 2, 3}); ok {
		t.Fatal("expected short payload to fail")
	}

	p := TickPayload(WallTime{Year: 2024, Month: 5, Day: 4, Hour: 23, Minute: 59, Second: 59}, UnitSecond)
	p[5] = 24
	if _, _, ok := DecodeTickPayload(p); ok {
		t.Fatal("expected hour 24 to fail")
	}
}

func TestTickPayloadKeepsChangedUnits(t *testing.T) {
	in := WallTime{Year: 2031, Month: 12, Day: 31, Weekday: 3, Hour: 10, Minute: 10}
	got, changed, ok := DecodeTickPayload(TickPayload(in, UnitSecond|UnitMinute|UnitDay))
	if !ok {
		t.Fatal("decode failed")
	}
	if got != in {
		t.Fatalf("time = %+v, want %+v", got, in)
	}
	if changed&UnitMinute == 0 || changed&UnitDay == 0 || changed&UnitHour != 0 {
		t.Fatalf("changed = %08b", changed)
	}
}

func TestDecodeTimeSubscribeRejectsMixedUnits(t *testing.T) {
	if _, ok := DecodeTimeSubscribePayload(TimeSubscribePayload(UnitSecond | UnitMinute)); ok {
		t.Fatal("expected mixed granularity to fail")
	}
	g, ok := DecodeTimeSubscribePayload(TimeSubscribePayload(UnitMinute))
	if !ok || g != UnitMinute {
		t.Fatalf("granularity = %v ok=%v, want minute", g, ok)
	}
}

func TestVibePayloadTruncates(t *testing.T) {
	in := make([]uint16, MaxVibeSegments+4)
	for i := range in {
		in[i] = uint16(i * 10)
	}
	segs, ok := DecodeVibePayload(VibePayload(in))
	if !ok {
		t.Fatal("decode failed")
	}
	if len(segs) != MaxVibeSegments {
		t.Fatalf("len = %d, want %d", len(segs), MaxVibeSegments)
	}
	if segs[3] != 30 {
		t.Fatalf("segs[3] = %d, want 30", segs[3])
	}

	if _, ok := DecodeVibePayload([]byte{2, 1, 0}); ok {
		t.Fatal("expected truncated payload to fail")
	}
}

func TestDecodeLinkState(t *testing.T) {
	if c, ok := DecodeLinkStatePayload(LinkStatePayload(false)); !ok || c {
		t.Fatalf("got connected=%v ok=%v", c, ok)
	}
	if _, ok := DecodeLinkStatePayload([]byte{7}); ok {
		t.Fatal("expected invalid state byte to fail")
	}
}

func TestErrorPayloadCarriesRequestID(t *testing.T) {
	code, ref, id, ok := DecodeErrorPayload(ErrorPayload(ErrOverflow, MsgSleep, 7))
	if !ok || code != ErrOverflow || ref != MsgSleep || id != 7 {
		t.Fatalf("decoded = %s %s %d %v", code, ref, id, ok)
	}
	if _, _, _, ok := DecodeErrorPayload([]byte{1, 0, 2, 0}); ok {
		t.Fatal("short error payload accepted")
	}
	if got := ErrCode(99).String(); got != "unknown" {
		t.Fatalf("ErrCode(99) = %q", got)
	}
}
