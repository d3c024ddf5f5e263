package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"dial/dialos/gfx"
	"dial/dialos/kernel"
	"dial/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	panicBackground = color.RGBA{R: 0x55, A: 0xff}
	panicInk        = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// installPanicHandler logs the first task panic and replaces the face with
// a panic screen. The faulting system is parked afterwards.
func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}
		if disp := h.Display(); disp != nil {
			if fb := disp.Framebuffer(); fb != nil {
				paintPanic(fb, lines)
			}
		}
		select {}
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"dial: panic",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("value: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line = strings.TrimRight(line, " \t"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// paintPanic wraps lines to the panel width and draws as many as fit.
func paintPanic(fb hal.Framebuffer, lines []string) {
	font := &proggy.TinySZ8pt7b
	c := gfx.NewCanvas(fb, font)
	c.FillRectangle(0, 0, int16(fb.Width()), int16(fb.Height()), panicBackground)

	lineHeight := int16(font.GetYAdvance())
	_, cell := tinyfont.LineWidth(font, "0")
	if lineHeight <= 0 || cell == 0 {
		_ = c.Display()
		return
	}
	cols := max(int16(fb.Width())/int16(cell), 1)

	y := lineHeight
	for _, line := range lines {
		for line != "" {
			if y > int16(fb.Height()) {
				_ = c.Display()
				return
			}
			var chunk string
			chunk, line = takeRunes(line, cols)
			tinyfont.WriteLine(c, font, 0, y-2, chunk, panicInk)
			y += lineHeight
			line = strings.TrimLeft(line, " ")
		}
	}
	_ = c.Display()
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
