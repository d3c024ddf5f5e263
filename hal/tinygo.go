//go:build tinygo && baremetal && !picocalc

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	gpio   GPIO
	fb     Framebuffer
	t      *tinyGoTime
}

// New returns a Pico 2 (RP2350) HAL implementation without a panel.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// VIBE drives GP2; LINK reads GP3 (pulled down).
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	led := &pinLED{pin: ledPin}
	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		led:    led,
		gpio: newPinSet(
			newOutputPin(PinLED, led),
			newMachinePin(PinVibe, machine.GP2, GPIOCapOutput),
			newMachinePin(PinLink, machine.GP3, GPIOCapInput|GPIOCapPullDown),
		),
		fb: &stubFramebuffer{w: 180, h: 180, format: PixelFormatRGB565},
		t:  newTinyGoTime(),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) GPIO() GPIO       { return h.gpio }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Time() Time       { return h.t }
func (h *tinyGoHAL) Clock() Clock     { return systemClock{} }
