package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgSleep
	MsgWake
	MsgError
	MsgTimeSubscribe
	MsgTick
	MsgLinkSubscribe
	MsgLinkState
	MsgVibe
)

// ErrCode is a generic error category for MsgError responses.
type ErrCode uint16

const (
	ErrUnknown    ErrCode = iota
	ErrBadMessage         // payload failed to decode
	ErrOverflow           // subscriber or sleeper table full
)

func (c ErrCode) String() string {
	switch c {
	case ErrUnknown:
		return "unknown"
	case ErrBadMessage:
		return "bad_message"
	case ErrOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgSleep:
		return "sleep"
	case MsgWake:
		return "wake"
	case MsgError:
		return "error"
	case MsgTimeSubscribe:
		return "time_subscribe"
	case MsgTick:
		return "tick"
	case MsgLinkSubscribe:
		return "link_subscribe"
	case MsgLinkState:
		return "link_state"
	case MsgVibe:
		return "vibe"
	default:
		return "unknown"
	}
}
