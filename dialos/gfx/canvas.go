// Package gfx draws the watch face into a hal.Framebuffer.
package gfx

import (
	"image"
	"image/color"
	"math"
	"strings"

	"dial/dialos/face"
	"dial/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
)

// Canvas is a drivers.Displayer over an RGB565 framebuffer. It also
// implements face.Surface and face.TextSurface.
type Canvas struct {
	fb   hal.Framebuffer
	font tinyfont.Fonter

	dirty uint8

	dateRect  face.Rect
	dateAlign face.Alignment
	dateText  string
}

var (
	_ drivers.Displayer = (*Canvas)(nil)
	_ face.Surface      = (*Canvas)(nil)
	_ face.TextSurface  = (*Canvas)(nil)
)

// NewCanvas returns a canvas drawing into fb with font for the date label.
func NewCanvas(fb hal.Framebuffer, font tinyfont.Fonter) *Canvas {
	return &Canvas{fb: fb, font: font}
}

// Bounds returns the framebuffer as a face rect.
func (c *Canvas) Bounds() face.Rect {
	if c.fb == nil {
		return face.Rect{}
	}
	return face.Rect{W: c.fb.Width(), H: c.fb.Height()}
}

func (c *Canvas) Size() (x, y int16) {
	if c.fb == nil {
		return 0, 0
	}
	return int16(c.fb.Width()), int16(c.fb.Height())
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	if c.fb == nil || c.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := c.fb.Buffer()
	if buf == nil {
		return
	}

	ix, iy := int(x), int(y)
	if ix < 0 || ix >= c.fb.Width() || iy < 0 || iy >= c.fb.Height() {
		return
	}

	pixel := hal.RGB565(col.R, col.G, col.B)
	off := iy*c.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// Display pushes the framebuffer to the screen.
func (c *Canvas) Display() error {
	if c.fb == nil {
		return nil
	}
	return c.fb.Present()
}

// FillRectangle fills a clipped rectangle directly in the framebuffer.
func (c *Canvas) FillRectangle(x, y, width, height int16, col color.RGBA) error {
	if c.fb == nil || c.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := c.fb.Buffer()
	if buf == nil {
		return nil
	}

	w, h := c.fb.Width(), c.fb.Height()
	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := hal.RGB565(col.R, col.G, col.B)
	lo, hi := byte(pixel), byte(pixel>>8)
	stride := c.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

func (c *Canvas) FillRect(r face.Rect, col color.RGBA) {
	_ = c.FillRectangle(int16(r.X), int16(r.Y), int16(r.W), int16(r.H), col)
}

// Line draws a stroke of the given width with round caps.
func (c *Canvas) Line(from, to face.Point, col color.RGBA, width int) {
	if width <= 1 {
		tinydraw.Line(c, int16(from.X), int16(from.Y), int16(to.X), int16(to.Y), col)
		return
	}

	half := float64(width) / 2
	dx := float64(to.X - from.X)
	dy := float64(to.Y - from.Y)
	if l := math.Hypot(dx, dy); l > 0 {
		nx := -dy / l * half
		ny := dx / l * half
		ax, ay := round16(float64(from.X)+nx), round16(float64(from.Y)+ny)
		bx, by := round16(float64(from.X)-nx), round16(float64(from.Y)-ny)
		cx, cy := round16(float64(to.X)-nx), round16(float64(to.Y)-ny)
		ex, ey := round16(float64(to.X)+nx), round16(float64(to.Y)+ny)
		tinydraw.FilledTriangle(c, ax, ay, bx, by, cx, cy, col)
		tinydraw.FilledTriangle(c, ax, ay, cx, cy, ex, ey, col)
	}

	r := int16(width / 2)
	tinydraw.FilledCircle(c, int16(from.X), int16(from.Y), r, col)
	tinydraw.FilledCircle(c, int16(to.X), int16(to.Y), r, col)
}

func (c *Canvas) FillCircle(center face.Point, radius int, col color.RGBA) {
	if radius <= 0 {
		c.SetPixel(int16(center.X), int16(center.Y), col)
		return
	}
	tinydraw.FilledCircle(c, int16(center.X), int16(center.Y), int16(radius), col)
}

// DrawBitmap scales img into r, nearest neighbour. Pixels under half
// opacity are skipped.
func (c *Canvas) DrawBitmap(r face.Rect, img image.Image) {
	if img == nil || r.W <= 0 || r.H <= 0 {
		return
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return
	}
	for y := 0; y < r.H; y++ {
		sy := b.Min.Y + y*b.Dy()/r.H
		for x := 0; x < r.W; x++ {
			sx := b.Min.X + x*b.Dx()/r.W
			col := color.RGBAModel.Convert(img.At(sx, sy)).(color.RGBA)
			if col.A < 0x80 {
				continue
			}
			c.SetPixel(int16(r.X+x), int16(r.Y+y), col)
		}
	}
}

func (c *Canvas) MarkDirty(l face.Layer) {
	c.dirty |= 1 << l
}

// Dirty reports whether any layer changed since the last Present.
func (c *Canvas) Dirty() bool { return c.dirty != 0 }

// DirtyLayer reports whether l changed since the last Present.
func (c *Canvas) DirtyLayer(l face.Layer) bool { return c.dirty&(1<<l) != 0 }

// Present shows the frame and clears the dirty set.
func (c *Canvas) Present() error {
	c.dirty = 0
	return c.Display()
}

func (c *Canvas) SetDatePlacement(r face.Rect, align face.Alignment) {
	c.dateRect = r
	c.dateAlign = align
}

func (c *Canvas) SetDateText(s string) {
	c.dateText = s
}

// DrawDate writes the date label inside its placement rect, one row per line.
func (c *Canvas) DrawDate(col color.RGBA) {
	if c.font == nil || c.dateText == "" || c.dateRect.W <= 0 {
		return
	}
	adv := int(c.font.GetYAdvance())
	if adv <= 0 {
		return
	}
	r := c.dateRect
	for i, line := range strings.Split(c.dateText, "\n") {
		baseline := r.Y + adv*(i+1) - adv/4
		if baseline > r.Y+r.H {
			break
		}
		_, w := tinyfont.LineWidth(c.font, line)
		x := r.X
		switch c.dateAlign {
		case face.AlignRight:
			x = r.X + r.W - int(w)
		case face.AlignCenter:
			x = r.X + (r.W-int(w))/2
		}
		tinyfont.WriteLine(c, c.font, int16(x), int16(baseline), line, col)
	}
}

// DateText returns the current label.
func (c *Canvas) DateText() string { return c.dateText }

func round16(v float64) int16 {
	return int16(math.Round(v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
