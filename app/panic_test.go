package app

import (
	"strings"
	"testing"

	"dial/dialos/kernel"
	"dial/hal"
)

func TestTakeRunes(t *testing.T) {
	tests := []struct {
		s          string
		n          int16
		head, rest string
	}{
		{"", 4, "", ""},
		{"abc", 0, "", "abc"},
		{"abc", 5, "abc", ""},
		{"abcdef", 4, "abcd", "ef"},
		{"héllo", 2, "hé", "llo"},
	}
	for _, tt := range tests {
		head, rest := takeRunes(tt.s, tt.n)
		if head != tt.head || rest != tt.rest {
			t.Fatalf("takeRunes(%q, %d) = %q, %q, want %q, %q", tt.s, tt.n, head, rest, tt.head, tt.rest)
		}
	}
}

func TestPanicLines(t *testing.T) {
	lines := panicLines(kernel.PanicInfo{TaskID: 3, Value: "boom", Stack: []byte("goroutine 7:\n\tmain.go:12  \n\n")})
	want := []string{"dial: panic", "task: 3", "value: boom", "stack:", "goroutine 7:", "\tmain.go:12"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}

	if got := panicLines(kernel.PanicInfo{}); got[len(got)-1] != "stack: unavailable" {
		t.Fatalf("no-stack tail = %q", got[len(got)-1])
	}
}

type memFramebuffer struct {
	w, h     int
	buf      []byte
	presents int
}

func (f *memFramebuffer) Width() int              { return f.w }
func (f *memFramebuffer) Height() int             { return f.h }
func (f *memFramebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFramebuffer) StrideBytes() int        { return f.w * 2 }
func (f *memFramebuffer) Buffer() []byte          { return f.buf }
func (f *memFramebuffer) ClearRGB(r, g, b uint8)  {}
func (f *memFramebuffer) Present() error          { f.presents++; return nil }

func TestPaintPanicFillsAndPresents(t *testing.T) {
	fb := &memFramebuffer{w: 64, h: 32, buf: make([]byte, 64*32*2)}
	long := strings.Repeat("x", 200)
	paintPanic(fb, []string{"dial: panic", long, long})

	if fb.presents != 1 {
		t.Fatalf("presents = %d, want 1", fb.presents)
	}
	// Bottom-right corner keeps the background; some pixel carries ink.
	last := len(fb.buf) - 2
	bg := uint16(fb.buf[last]) | uint16(fb.buf[last+1])<<8
	if bg != 0x5000 {
		t.Fatalf("background = %#04x, want 0x5000", bg)
	}
	ink := false
	for i := 0; i < len(fb.buf); i += 2 {
		if fb.buf[i] == 0xff && fb.buf[i+1] == 0xff {
			ink = true
			break
		}
	}
	if !ink {
		t.Fatal("no text drawn")
	}
}
