package kernel

import (
	"testing"
	"time"
)

func newTestContext(t *testing.T) (*Kernel, *Context, Capability) {
	t.Helper()
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	if !ep.Valid() {
		t.Fatal("NewEndpoint returned invalid capability")
	}
	return k, &Context{k: k, taskID: 1}, ep
}

func fill(t *testing.T, ctx *Context, to Capability) {
	t.Helper()
	for i := 0; i < mailboxSlots; i++ {
		if res := ctx.SendToCapResult(to, 1, []byte("x"), Capability{}); res != SendOK {
			t.Fatalf("fill %d = %s, want %s", i, res, SendOK)
		}
	}
}

// ticker advances the kernel clock until the test ends.
func ticker(t *testing.T, k *Kernel) {
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })
	go func() {
		for i := uint64(1); ; i++ {
			select {
			case <-done:
				return
			case <-time.After(time.Millisecond):
				k.TickTo(i)
			}
		}
	}()
}

func TestMessagePayloadClampsLen(t *testing.T) {
	var msg Message
	msg.Len = MaxMessageBytes + 10
	if got := len(msg.Payload()); got != MaxMessageBytes {
		t.Fatalf("len(Payload()) = %d, want %d", got, MaxMessageBytes)
	}
}

func TestContextRightsChecked(t *testing.T) {
	_, ctx, ep := newTestContext(t)

	if _, ok := ctx.RecvChan(ep.Restrict(RightSend)); ok {
		t.Fatal("RecvChan without recv right succeeded")
	}
	if res := ctx.SendToCapResult(ep.Restrict(RightRecv), 1, nil, Capability{}); res != SendErrToNoSendRight {
		t.Fatalf("send without right = %s, want %s", res, SendErrToNoSendRight)
	}
	if res := ctx.SendToCapResult(Capability{}, 1, nil, Capability{}); res != SendErrInvalidToCap {
		t.Fatalf("send to zero cap = %s, want %s", res, SendErrInvalidToCap)
	}
}

func TestContextClosedEndpoint(t *testing.T) {
	k, ctx, ep := newTestContext(t)
	close(k.endpoints[ep.ep].ch)

	if _, ok := ctx.Recv(ep.Restrict(RightRecv)); ok {
		t.Fatal("Recv on closed endpoint succeeded")
	}
	if _, ok := ctx.TryRecv(ep.Restrict(RightRecv)); ok {
		t.Fatal("TryRecv on closed endpoint succeeded")
	}
	if res := ctx.SendToCapResult(ep.Restrict(RightSend), 1, []byte("x"), Capability{}); res != SendErrNoEndpoint {
		t.Fatalf("send = %s, want %s", res, SendErrNoEndpoint)
	}
}

func TestSendToCapRetry(t *testing.T) {
	t.Run("zero limit", func(t *testing.T) {
		_, ctx, ep := newTestContext(t)
		fill(t, ctx, ep.Restrict(RightSend))
		if res := ctx.SendToCapRetry(ep.Restrict(RightSend), 1, nil, Capability{}, 0); res != SendErrQueueFull {
			t.Fatalf("res = %s, want %s", res, SendErrQueueFull)
		}
	})

	t.Run("gives up", func(t *testing.T) {
		k, ctx, ep := newTestContext(t)
		fill(t, ctx, ep.Restrict(RightSend))
		ticker(t, k)
		if res := ctx.SendToCapRetry(ep.Restrict(RightSend), 1, nil, Capability{}, 2); res != SendErrQueueFull {
			t.Fatalf("res = %s, want %s", res, SendErrQueueFull)
		}
	})

	t.Run("after drain", func(t *testing.T) {
		k, ctx, ep := newTestContext(t)
		fill(t, ctx, ep.Restrict(RightSend))

		got := make(chan SendResult, 1)
		go func() { got <- ctx.SendToCapRetry(ep.Restrict(RightSend), 2, []byte("y"), Capability{}, 50) }()

		if _, ok := ctx.Recv(ep.Restrict(RightRecv)); !ok {
			t.Fatal("Recv failed")
		}
		ticker(t, k)

		select {
		case res := <-got:
			if res != SendOK {
				t.Fatalf("res = %s, want %s", res, SendOK)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for retry")
		}
	})
}

func TestContextTicks(t *testing.T) {
	k, ctx, _ := newTestContext(t)
	ch, stop := ctx.Ticks(4)
	ticker(t, k)

	var prev uint64
	for i := 0; i < 3; i++ {
		select {
		case seq := <-ch:
			if seq <= prev {
				t.Fatalf("tick %d after %d", seq, prev)
			}
			prev = seq
		case <-time.After(time.Second):
			t.Fatal("no tick forwarded")
		}
	}
	stop()
	stop()
}
