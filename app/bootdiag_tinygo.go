//go:build tinygo && bootdebug

package app

import (
	"fmt"
	"machine"
	"sync"
	"time"

	"dial/hal"
)

// bootDiagReady ends the diagnostic stream.
const bootDiagReady = "ready"

var (
	bootDiagMu   sync.Mutex
	bootDiagStep string
)

func bootDiagSetStep(msg string) {
	bootDiagMu.Lock()
	bootDiagStep = msg
	bootDiagMu.Unlock()
}

// bootDiagStart repeats the current boot step on the UART and USB CDC every
// 250ms until the step becomes bootDiagReady, so a hang shows where it hung.
func bootDiagStart(h hal.HAL) {
	if h == nil {
		return
	}
	l := h.Logger()
	start := time.Now()

	go func() {
		for {
			bootDiagMu.Lock()
			step := bootDiagStep
			bootDiagMu.Unlock()

			if step == "" {
				step = "<empty>"
			}
			line := fmt.Sprintf("bootdiag: +%dms %s", time.Since(start).Milliseconds(), step)
			if l != nil {
				l.WriteLineString(line)
			}
			if usb := machine.USBCDC; usb != nil {
				_, _ = usb.Write([]byte(line + "\r\n"))
			}
			if step == bootDiagReady {
				return
			}
			time.Sleep(250 * time.Millisecond)
		}
	}()
}
