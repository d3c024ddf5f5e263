package face

// Layout holds the fixed pixel metrics of the face.
type Layout struct {
	TickOuterInset    int
	TickInnerInset    int
	TickCardinalInset int // inner inset at 12, 3, 6 and 9

	SecondMargin int
	MinuteMargin int
	HourMargin   int

	HandWidth    int
	SecondWidth  int
	ShadowOffset int
}

// DefaultLayout returns the metrics of the reference 180px round face.
func DefaultLayout() Layout {
	return Layout{
		TickOuterInset:    2,
		TickInnerInset:    8,
		TickCardinalInset: 14,
		SecondMargin:      14,
		MinuteMargin:      20,
		HourMargin:        42,
		HandWidth:         7,
		SecondWidth:       2,
		ShadowOffset:      2,
	}
}

// Tables caches per-minute-mark geometry. Index i is the mark at i*6 degrees.
//
// Second[i] is the second hand tip at full length; it is only valid once the
// entrance animation has finished.
type Tables struct {
	TickOuter [60]Point
	TickInner [60]Point
	TickWidth [60]int
	Second    [60]Point
}

func newTables(square Rect, l Layout) *Tables {
	t := &Tables{}
	outer := square.Inset(l.TickOuterInset)
	inner := square.Inset(l.TickInnerInset)
	cardinal := square.Inset(l.TickCardinalInset)
	second := square.Inset(l.SecondMargin)

	for i := 0; i < 60; i++ {
		angle := i * 6
		t.TickOuter[i] = PointFromPolar(outer, angle)
		if angle%90 == 0 {
			t.TickInner[i] = PointFromPolar(cardinal, angle)
		} else {
			t.TickInner[i] = PointFromPolar(inner, angle)
		}
		t.TickWidth[i] = 1
		if angle%30 == 0 {
			t.TickWidth[i] = 2
		}
		t.Second[i] = PointFromPolar(second, angle)
	}
	return t
}

// referenceSize is the face diameter the layout rectangles are drawn for.
const referenceSize = 180

// Dial is the bounds-derived geometry of one face. It is built once and
// never changes afterwards.
type Dial struct {
	Bounds    Rect
	Square    Rect
	MaxRadius int
	Center    Point
	Layout    Layout
	Tables    *Tables

	DateSlots DateSlots
	LogoRect  Rect
}

// NewDial derives the face geometry from the display bounds.
func NewDial(bounds Rect, l Layout) *Dial {
	sq := bounds.Square()
	d := &Dial{
		Bounds:    bounds,
		Square:    sq,
		MaxRadius: min(sq.W, sq.H) / 2,
		Center:    Point{X: bounds.X + bounds.W/2 - 1, Y: bounds.Y + bounds.H/2 - 1},
		Layout:    l,
		Tables:    newTables(sq, l),
	}
	d.DateSlots = DateSlots{
		DateRight:  {Rect: d.scale(Rect{X: 90, Y: 77, W: 70, H: 40}), Align: AlignRight},
		DateBottom: {Rect: d.scale(Rect{X: 50, Y: 118, W: 80, H: 40}), Align: AlignCenter},
		DateTop:    {Rect: d.scale(Rect{X: 50, Y: 48, W: 80, H: 40}), Align: AlignCenter},
	}
	d.LogoRect = d.scale(Rect{X: 80, Y: 140, W: 19, H: 6})
	return d
}

// scale maps a rect on the 180px reference face onto the actual bounds.
func (d *Dial) scale(r Rect) Rect {
	size := min(d.Bounds.W, d.Bounds.H)
	ox := d.Bounds.X + (d.Bounds.W-size)/2
	oy := d.Bounds.Y + (d.Bounds.H-size)/2
	return Rect{
		X: ox + r.X*size/referenceSize,
		Y: oy + r.Y*size/referenceSize,
		W: r.W * size / referenceSize,
		H: r.H * size / referenceSize,
	}
}

// HandTip returns the tip of a hand with the given margin at angle and
// animation progress. A fully collapsed hand sits on the hand origin.
func (d *Dial) HandTip(margin, angle, percent int) Point {
	inset := HandInset(margin, AnimatedInset(d.MaxRadius, percent), d.MaxRadius)
	if inset >= d.MaxRadius {
		return d.Center
	}
	return PointFromPolar(d.Square.Inset(inset), angle)
}
