//go:build tinygo && baremetal && picocalc

package hal

import (
	"machine"
)

type picoCalcHAL struct {
	logger *uartLogger
	led    *pinLED
	gpio   GPIO
	fb     Framebuffer
	t      *tinyGoTime
}

// New returns a PicoCalc HAL implementation (Pico/Pico2 on the PicoCalc carrier).
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
	disp, err := newPicoCalcDisplay()
	if err != nil {
		disp = newPicoCalcDisplayStub()
	}

	return &picoCalcHAL{
		logger: &uartLogger{uart: uart},
		led:    led,
		gpio: newPinSet(
			newOutputPin(PinLED, led),
			newMachinePin(PinVibe, machine.GP2, GPIOCapOutput),
			newMachinePin(PinLink, machine.GP3, GPIOCapInput|GPIOCapPullDown),
		),
		fb: disp,
		t:  newTinyGoTime(),
	}
}

func (h *picoCalcHAL) Logger() Logger   { return h.logger }
func (h *picoCalcHAL) LED() LED         { return h.led }
func (h *picoCalcHAL) GPIO() GPIO       { return h.gpio }
func (h *picoCalcHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *picoCalcHAL) Time() Time       { return h.t }
func (h *picoCalcHAL) Clock() Clock     { return systemClock{} }

// picoCalcFramebuffer keeps the frame in RAM and pushes only the band of
// rows whose checksum changed since the last Present.
type picoCalcFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte
	sums   []uint32

	lcd *ili9488
}

func (f *picoCalcFramebuffer) Width() int          { return f.w }
func (f *picoCalcFramebuffer) Height() int         { return f.h }
func (f *picoCalcFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *picoCalcFramebuffer) StrideBytes() int    { return f.stride }
func (f *picoCalcFramebuffer) Buffer() []byte      { return f.buf }

func (f *picoCalcFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := RGB565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *picoCalcFramebuffer) Present() error {
	if f.lcd == nil {
		return ErrNotImplemented
	}
	y0, y1 := f.h, -1
	for y := 0; y < f.h; y++ {
		sum := rowSum(f.buf[y*f.stride : (y+1)*f.stride])
		if sum == f.sums[y] {
			continue
		}
		f.sums[y] = sum
		if y < y0 {
			y0 = y
		}
		y1 = y
	}
	if y0 > y1 {
		return nil
	}
	return f.lcd.blitRows(f.buf[y0*f.stride:(y1+1)*f.stride], f.w, y0, y1-y0+1)
}

// rowSum is FNV-1a over one framebuffer row.
func rowSum(row []byte) uint32 {
	h := uint32(2166136261)
	for _, b := range row {
		h ^= uint32(b)
		h *= 16777619
	}
	return h
}

func newPicoCalcDisplay() (*picoCalcFramebuffer, error) {
	lcd, err := initILI9488()
	if err != nil {
		return nil, err
	}
	f := newPicoCalcDisplayStub()
	f.lcd = lcd
	// Force the first frame out in full.
	for i := range f.sums {
		f.sums[i] = ^rowSum(f.buf[i*f.stride : (i+1)*f.stride])
	}
	return f, nil
}

func newPicoCalcDisplayStub() *picoCalcFramebuffer {
	const w = 320
	const h = 320
	return &picoCalcFramebuffer{
		w:      w,
		h:      h,
		stride: w * 2,
		buf:    make([]byte, w*h*2),
		sums:   make([]uint32, h),
	}
}
