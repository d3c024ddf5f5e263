package face

import (
	"fmt"
	"time"
)

// DatePosition is where the date label sits on the face.
type DatePosition uint8

const (
	DateRight DatePosition = iota
	DateBottom
	DateTop
)

func (p DatePosition) String() string {
	switch p {
	case DateRight:
		return "right"
	case DateBottom:
		return "bottom"
	case DateTop:
		return "top"
	default:
		return fmt.Sprintf("DatePosition(%d)", uint8(p))
	}
}

// Band is an open interval of angles in degrees.
type Band struct {
	Lo, Hi int
}

func (b Band) Contains(angle int) bool {
	return angle > b.Lo && angle < b.Hi
}

// DateBands are the angle ranges that push the label off its default slot.
// Side covers the 3 o'clock label, Flip the 6 o'clock one.
type DateBands struct {
	Side Band
	Flip Band
}

var (
	WideBands   = DateBands{Side: Band{60, 120}, Flip: Band{150, 210}}
	NarrowBands = DateBands{Side: Band{70, 110}, Flip: Band{150, 210}}
)

// PlaceDate picks the slot for the date label given the minute and hour
// hand angles.
func PlaceDate(minuteAngle, hourAngle int, bands DateBands) DatePosition {
	pos := DateRight
	if bands.Side.Contains(minuteAngle) || bands.Side.Contains(hourAngle) {
		pos = DateBottom
		if bands.Flip.Contains(minuteAngle) || bands.Flip.Contains(hourAngle) {
			pos = DateTop
		}
	}
	return pos
}

// Alignment is the horizontal text alignment inside a date slot.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// DateSlot is the rect and alignment of one date position.
type DateSlot struct {
	Rect  Rect
	Align Alignment
}

// DateSlots is indexed by DatePosition.
type DateSlots [3]DateSlot

// DatePlacer moves the label on the text surface each minute.
type DatePlacer struct {
	Bands DateBands
	Slots DateSlots

	pos    DatePosition
	placed bool
}

// Place computes the position for the given angles and pushes it to ts.
// It reports whether the label moved.
func (p *DatePlacer) Place(ts TextSurface, minuteAngle, hourAngle int) bool {
	pos := PlaceDate(minuteAngle, hourAngle, p.Bands)
	if p.placed && pos == p.pos {
		return false
	}
	p.pos = pos
	p.placed = true
	if ts != nil {
		slot := p.Slots[pos]
		ts.SetDatePlacement(slot.Rect, slot.Align)
	}
	return true
}

// Position returns the last placement, DateRight before the first.
func (p *DatePlacer) Position() DatePosition { return p.pos }

// FormatDate renders the label text: "Jan 02", or "Mon\nJan 02" with two lines.
func FormatDate(month time.Month, day int, weekday time.Weekday, lines int) string {
	md := fmt.Sprintf("%s %02d", month.String()[:3], day)
	if lines >= 2 {
		return weekday.String()[:3] + "\n" + md
	}
	return md
}
