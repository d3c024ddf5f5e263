package app

import (
	"fmt"

	"dial/dialos/kernel"
	"dial/dialos/services/link"
	"dial/dialos/services/logger"
	timesvc "dial/dialos/services/time"
	"dial/dialos/services/vibe"
	"dial/dialos/tasks/watchface"
	"dial/hal"
	"dial/internal/buildinfo"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

type system struct {
	k *kernel.Kernel
}

// New initializes and starts the OS with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig())
}

// Run starts the OS and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	_ = New(h)
	select {}
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	_ = newSystem(h, cfg)
	return func() error { return nil }
}

func RunWithConfig(h hal.HAL, cfg Config) {
	_ = NewWithConfig(h, cfg)
	select {}
}

func newSystem(h hal.HAL, cfg Config) *system {
	bootDiagStart(h)
	installPanicHandler(h)

	log := h.Logger()
	if log != nil {
		log.WriteLineString("dial: boot " + buildinfo.Short())
	}

	faceCfg, err := cfg.FaceConfig()
	if err != nil {
		if log != nil {
			log.WriteLineString(fmt.Sprintf("dial: config: %v (using defaults)", err))
		}
		faceCfg, _ = DefaultConfig().FaceConfig()
	}

	bootScreen(h, "kernel")
	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	timeEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	linkEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	vibeEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	faceEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	bootScreen(h, "services")
	k.AddTask(logger.New(log, logEP.Restrict(kernel.RightRecv)))
	k.AddTask(timesvc.New(h.Clock(), timeEP.Restrict(kernel.RightRecv)))
	k.AddTask(link.New(hal.FindPin(h.GPIO(), hal.PinLink), linkEP.Restrict(kernel.RightRecv)))
	k.AddTask(vibe.New(
		hal.FindPin(h.GPIO(), hal.PinVibe),
		vibeEP.Restrict(kernel.RightRecv),
		timeEP.Restrict(kernel.RightSend),
		logEP.Restrict(kernel.RightSend),
	))

	bootScreen(h, "watchface")
	k.AddTask(watchface.New(h.Display(), watchface.Caps{
		Self: faceEP,
		Time: timeEP.Restrict(kernel.RightSend),
		Link: linkEP.Restrict(kernel.RightSend),
		Vibe: vibeEP.Restrict(kernel.RightSend),
		Log:  logEP.Restrict(kernel.RightSend),
	}, faceCfg, dateFont(h.Display())))

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	bootScreen(h, "ready")
	return &system{k: k}
}

// dateFont picks the date label font for the panel size.
func dateFont(d hal.Display) tinyfont.Fonter {
	if d != nil {
		if fb := d.Framebuffer(); fb != nil && fb.Width() > 240 {
			return &freesans.Bold12pt7b
		}
	}
	return &freesans.Bold9pt7b
}
