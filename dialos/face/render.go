package face

import (
	"fmt"
	"image"
	"image/color"
)

// Layer names one independently invalidated part of the face.
type Layer uint8

const (
	LayerBackground Layer = iota
	LayerTicks
	LayerShadow
	LayerDate
	LayerLogo
	LayerHands
)

func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerTicks:
		return "ticks"
	case LayerShadow:
		return "shadow"
	case LayerDate:
		return "date"
	case LayerLogo:
		return "logo"
	case LayerHands:
		return "hands"
	default:
		return fmt.Sprintf("Layer(%d)", uint8(l))
	}
}

// Surface is the pixel target of the renderer.
type Surface interface {
	FillRect(r Rect, c color.RGBA)
	Line(from, to Point, c color.RGBA, width int)
	FillCircle(center Point, radius int, c color.RGBA)
	DrawBitmap(r Rect, img image.Image)
	MarkDirty(l Layer)
}

// TextSurface holds the date label.
type TextSurface interface {
	SetDatePlacement(r Rect, align Alignment)
	SetDateText(s string)
	DrawDate(c color.RGBA)
}

// Palette is the set of colors the face is drawn with.
type Palette struct {
	Background color.RGBA
	Hour       color.RGBA
	Minute     color.RGBA
	Second     color.RGBA
	Pin        color.RGBA
	Shadow     color.RGBA
	Tick       color.RGBA
	Date       color.RGBA
}

func DefaultPalette() Palette {
	black := color.RGBA{A: 0xff}
	return Palette{
		Background: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Hour:       black,
		Minute:     black,
		Second:     color.RGBA{R: 0x55, A: 0xff},
		Pin:        color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Shadow:     color.RGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff},
		Tick:       color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff},
		Date:       color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff},
	}
}

// Renderer paints a face back to front.
type Renderer struct {
	Dial    *Dial
	Palette Palette

	Ticks    bool
	Shadows  bool
	Date     bool
	LowPower bool
	Logo     image.Image
}

// Draw paints the whole face from the current hand endpoints.
func (r *Renderer) Draw(s Surface, ts TextSurface, st *ClockState) {
	s.FillRect(r.Dial.Bounds, r.Palette.Background)
	if r.Ticks {
		r.drawTicks(s)
	}
	if r.Shadows {
		r.drawShadows(s, st)
	}
	if r.Date && ts != nil {
		ts.DrawDate(r.Palette.Date)
	}
	if r.Logo != nil {
		s.DrawBitmap(r.Dial.LogoRect, r.Logo)
	}
	r.drawHands(s, st)
}

func (r *Renderer) drawTicks(s Surface) {
	t := r.Dial.Tables
	for i := 0; i < 60; i++ {
		s.Line(t.TickInner[i], t.TickOuter[i], r.Palette.Tick, t.TickWidth[i])
	}
}

// drawShadows draws each hand again, shifted down, under the real hands.
// The hour shadow drops by ShadowOffset, the minute one by one more pixel
// and the second one by two more.
func (r *Renderer) drawShadows(s Surface, st *ClockState) {
	l := r.Dial.Layout
	c := r.Palette.Shadow
	off := l.ShadowOffset

	st.WithCenterShift(off, func(center Point) {
		s.Line(center, shifted(st.Hour, off), c, l.HandWidth)
		st.WithCenterShift(1, func(center Point) {
			s.Line(center, shifted(st.Minute, off+1), c, l.HandWidth)
			if r.LowPower {
				return
			}
			st.WithCenterShift(1, func(center Point) {
				s.Line(center, shifted(st.Second, off+2), c, l.SecondWidth)
			})
		})
	})
}

func (r *Renderer) drawHands(s Surface, st *ClockState) {
	l := r.Dial.Layout
	center := st.Center()
	s.Line(center, st.Hour, r.Palette.Hour, l.HandWidth)
	s.Line(center, st.Minute, r.Palette.Minute, l.HandWidth)
	if !r.LowPower {
		s.Line(center, st.Second, r.Palette.Second, l.SecondWidth)
	}
	s.FillCircle(center, l.HandWidth/4, r.Palette.Pin)
}

func shifted(p Point, dy int) Point {
	p.Y += dy
	return p
}
