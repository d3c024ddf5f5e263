//go:build tinygo && !baremetal

package hal

import (
	"fmt"
	"hash/fnv"
)

// tinyGoHostFramebuffer keeps the frame in memory and reports each
// presented frame as a checksum line, which is all a headless TinyGo
// target can show.
type tinyGoHostFramebuffer struct {
	w, h   int
	buf    []byte
	frames uint64
	log    Logger
}

func newTinyGoHostFramebuffer(w, h int, log Logger) *tinyGoHostFramebuffer {
	return &tinyGoHostFramebuffer{w: w, h: h, buf: make([]byte, w*h*2), log: log}
}

func (f *tinyGoHostFramebuffer) Width() int          { return f.w }
func (f *tinyGoHostFramebuffer) Height() int         { return f.h }
func (f *tinyGoHostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *tinyGoHostFramebuffer) StrideBytes() int    { return f.w * 2 }
func (f *tinyGoHostFramebuffer) Buffer() []byte      { return f.buf }

func (f *tinyGoHostFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := RGB565(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i], f.buf[i+1] = byte(pixel), byte(pixel>>8)
	}
}

func (f *tinyGoHostFramebuffer) Present() error {
	f.frames++
	if f.log != nil {
		h := fnv.New32a()
		h.Write(f.buf)
		f.log.WriteLineString(fmt.Sprintf("fb: frame=%d sum=%08x", f.frames, h.Sum32()))
	}
	return nil
}
