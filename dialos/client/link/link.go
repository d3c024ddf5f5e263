package link

import (
	"fmt"

	"dial/dialos/kernel"
	"dial/dialos/proto"
)

// Subscribe registers reply for MsgLinkState updates.
func Subscribe(ctx *kernel.Context, linkCap, reply kernel.Capability) error {
	if ctx == nil {
		return fmt.Errorf("link subscribe: nil context")
	}
	res := ctx.SendToCapRetry(linkCap, uint16(proto.MsgLinkSubscribe), nil, reply, 16)
	if res != kernel.SendOK {
		return fmt.Errorf("link subscribe send: %s", res)
	}
	return nil
}
