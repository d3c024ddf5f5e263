package time

import (
	"fmt"

	"dial/dialos/kernel"
	"dial/dialos/proto"
)

type sleepState struct {
	replyCap kernel.Capability
	nextID   uint32
}

var sleepStates [256]sleepState

// Sleep blocks the calling task until the time service reports that dt
// ticks have passed.
func Sleep(ctx *kernel.Context, timeCap kernel.Capability, dt uint32) error {
	if ctx == nil {
		return fmt.Errorf("time sleep: nil context")
	}

	st := &sleepStates[ctx.TaskID()]
	if !st.replyCap.Valid() {
		st.replyCap = ctx.NewEndpoint(kernel.RightSend | kernel.RightRecv)
		if !st.replyCap.Valid() {
			return fmt.Errorf("time sleep: allocate reply endpoint")
		}
	}
	replySend := st.replyCap.Restrict(kernel.RightSend)
	replyRecv := st.replyCap.Restrict(kernel.RightRecv)

	st.nextID++
	if st.nextID == 0 {
		st.nextID++
	}
	waitingID := st.nextID

	payload := proto.SleepPayload(waitingID, dt)
	for {
		res := ctx.SendToCapResult(timeCap, uint16(proto.MsgSleep), payload, replySend)
		if res == kernel.SendOK {
			break
		}
		if res != kernel.SendErrQueueFull {
			return fmt.Errorf("time sleep send: %s", res)
		}
		ctx.BlockOnTick()
	}

	for {
		msg, ok := ctx.Recv(replyRecv)
		if !ok {
			return fmt.Errorf("time sleep: reply endpoint closed")
		}
		switch proto.Kind(msg.Kind) {
		case proto.MsgWake:
			reqID, ok := proto.DecodeWakePayload(msg.Payload())
			if !ok {
				return fmt.Errorf("time wake: bad payload")
			}
			if reqID == waitingID {
				return nil
			}

		case proto.MsgError:
			code, ref, reqID, ok := proto.DecodeErrorPayload(msg.Payload())
			if !ok {
				return fmt.Errorf("time error: bad payload")
			}
			if reqID != 0 && reqID != waitingID {
				continue
			}
			return fmt.Errorf("time error: code=%s ref=%s", code, ref)
		}
	}
}

// Subscribe asks the time service to send MsgTick to reply whenever a unit
// at or above granularity changes.
func Subscribe(ctx *kernel.Context, timeCap, reply kernel.Capability, granularity proto.TimeUnits) error {
	if ctx == nil {
		return fmt.Errorf("time subscribe: nil context")
	}
	res := ctx.SendToCapRetry(timeCap, uint16(proto.MsgTimeSubscribe), proto.TimeSubscribePayload(granularity), reply, 16)
	if res != kernel.SendOK {
		return fmt.Errorf("time subscribe send: %s", res)
	}
	return nil
}
