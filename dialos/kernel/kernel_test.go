package kernel

import (
	"testing"
	"time"
)

type funcTask func(ctx *Context)

func (f funcTask) Run(ctx *Context) { f(ctx) }

func TestWaitTickWakesOnAdvance(t *testing.T) {
	k := New()
	got := make(chan uint64, 1)
	k.AddTask(funcTask(func(ctx *Context) {
		got <- ctx.WaitTick(0)
	}))

	k.TickTo(3)
	select {
	case v := <-got:
		if v != 3 {
			t.Fatalf("WaitTick = %d, want 3", v)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for tick")
	}

	k.TickTo(2)
	if now := k.nowTick(); now != 3 {
		t.Fatalf("nowTick after stale TickTo = %d, want 3", now)
	}
}

func TestTaskMessagesArriveInOrder(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	done := make(chan []uint16, 1)

	k.AddTask(funcTask(func(ctx *Context) {
		var kinds []uint16
		for len(kinds) < 3 {
			msg, ok := ctx.Recv(ep.Restrict(RightRecv))
			if !ok {
				break
			}
			kinds = append(kinds, msg.Kind)
		}
		done <- kinds
	}))

	ctx := &Context{k: k, taskID: 9}
	for kind := uint16(1); kind <= 3; kind++ {
		if res := ctx.SendToCapResult(ep.Restrict(RightSend), kind, nil, Capability{}); res != SendOK {
			t.Fatalf("send %d: %s", kind, res)
		}
	}

	select {
	case kinds := <-done:
		for i, k := range kinds {
			if k != uint16(i+1) {
				t.Fatalf("kinds = %v, want [1 2 3]", kinds)
			}
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for receiver")
	}
}

func TestAddTaskRecoversPanic(t *testing.T) {
	got := make(chan PanicInfo, 1)
	SetPanicHandler(func(info PanicInfo) { got <- info })
	defer SetPanicHandler(nil)

	k := New()
	k.AddTask(funcTask(func(ctx *Context) {}))
	id := k.AddTask(funcTask(func(ctx *Context) { panic("boom") }))

	select {
	case info := <-got:
		if info.TaskID != id {
			t.Fatalf("TaskID = %d, want %d", info.TaskID, id)
		}
		if info.Value != "boom" {
			t.Fatalf("Value = %v, want boom", info.Value)
		}
		if !InPanicMode() {
			t.Fatal("expected panic mode")
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for panic handler")
	}
}

func TestSendPayloadTooLarge(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k}
	res := ctx.SendToCapResult(ep, 1, make([]byte, MaxMessageBytes+1), Capability{})
	if res != SendErrPayloadTooLarge {
		t.Fatalf("SendToCapResult = %s, want %s", res, SendErrPayloadTooLarge)
	}
}
