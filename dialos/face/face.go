package face

import "image"

// DisconnectPattern is the on/off vibration played when the phone link drops,
// in milliseconds, starting with "on".
var DisconnectPattern = []uint16{200, 200, 50, 150, 150}

// Alerter plays haptic patterns.
type Alerter interface {
	Vibrate(segments []uint16)
}

// Config selects the optional parts of a face.
type Config struct {
	LowPower bool
	Shadows  bool
	Ticks    bool

	DateEnabled bool
	DateBands   DateBands
	DateLines   int

	LinkAlert bool

	// Debug pins the hands to a fixed time when set.
	Debug *TimeOfDay

	Palette Palette
	Layout  Layout
	Logo    image.Image
}

// DefaultConfig is the stock face: shadows and date on, narrow bands,
// second hand visible, alert on disconnect.
func DefaultConfig() Config {
	return Config{
		Shadows:     true,
		Ticks:       true,
		DateEnabled: true,
		DateBands:   NarrowBands,
		DateLines:   1,
		LinkAlert:   true,
		Palette:     DefaultPalette(),
		Layout:      DefaultLayout(),
	}
}

type linkState uint8

const (
	linkUnknown linkState = iota
	linkConnected
	linkDisconnected
)

// Face is the watch face context. It owns the clock state and derives
// everything drawn from it.
type Face struct {
	cfg    Config
	dial   *Dial
	model  AngleModel
	policy RedrawPolicy
	state  ClockState
	placer DatePlacer
	render Renderer

	surface Surface
	text    TextSurface
	alerter Alerter

	percent int
	link    linkState
}

// New builds a face for the given bounds. text and alerter may be nil.
func New(bounds Rect, cfg Config, surface Surface, text TextSurface, alerter Alerter) *Face {
	if cfg.DateLines <= 0 {
		cfg.DateLines = 1
	}
	if cfg.Layout == (Layout{}) {
		cfg.Layout = DefaultLayout()
	}
	dial := NewDial(bounds, cfg.Layout)
	f := &Face{
		cfg:     cfg,
		dial:    dial,
		model:   AngleModel{LowPower: cfg.LowPower},
		policy:  RedrawPolicy{LowPower: cfg.LowPower},
		state:   newClockState(dial.Center),
		placer:  DatePlacer{Bands: cfg.DateBands, Slots: dial.DateSlots},
		surface: surface,
		text:    text,
		alerter: alerter,
		render: Renderer{
			Dial:     dial,
			Palette:  cfg.Palette,
			Ticks:    cfg.Ticks,
			Shadows:  cfg.Shadows,
			Date:     cfg.DateEnabled,
			LowPower: cfg.LowPower,
			Logo:     cfg.Logo,
		},
	}
	if cfg.Debug != nil {
		d := *cfg.Debug
		f.state.Override = &d
	}
	for _, l := range []Layer{LayerBackground, LayerTicks, LayerShadow, LayerDate, LayerLogo, LayerHands} {
		f.markDirty(l)
	}
	return f
}

func (f *Face) Dial() *Dial                { return f.dial }
func (f *Face) State() *ClockState         { return &f.state }
func (f *Face) Progress() int              { return f.percent }
func (f *Face) DatePosition() DatePosition { return f.placer.Position() }

// Handle applies one event.
func (f *Face) Handle(ev Event) {
	switch ev := ev.(type) {
	case TickEvent:
		f.handleTick(ev)
	case AnimationProgressEvent:
		f.handleProgress(ev)
	case ConnectivityEvent:
		f.handleConnectivity(ev)
	}
}

func (f *Face) handleTick(ev TickEvent) {
	f.state.Apply(ev)

	if ev.Changed&DayUnit != 0 && f.cfg.DateEnabled && f.text != nil {
		f.text.SetDateText(FormatDate(ev.Month, ev.Day, ev.Weekday, f.cfg.DateLines))
		f.markDirty(LayerDate)
	}

	f.state.Recompute(f.dial, f.model, f.policy, f.percent, f.percent < 100)
	f.markDirty(LayerShadow)
	f.markDirty(LayerHands)

	if ev.Changed&MinuteUnit != 0 && f.cfg.DateEnabled {
		hour, minute, _ := f.model.Angles(f.state.Time)
		if f.placer.Place(f.text, minute, hour) {
			f.markDirty(LayerDate)
		}
	}
}

func (f *Face) handleProgress(ev AnimationProgressEvent) {
	p := clampInt(ev.Percent, 0, 100)
	if p <= f.percent {
		return
	}
	f.percent = p
	f.state.Recompute(f.dial, f.model, f.policy, f.percent, true)
	f.markDirty(LayerHands)
}

func (f *Face) handleConnectivity(ev ConnectivityEvent) {
	prev := f.link
	if ev.Connected {
		f.link = linkConnected
		return
	}
	f.link = linkDisconnected
	if prev == linkDisconnected || !f.cfg.LinkAlert || f.alerter == nil {
		return
	}
	f.alerter.Vibrate(DisconnectPattern)
}

// Render draws the face onto its surface.
func (f *Face) Render() {
	if f.surface == nil {
		return
	}
	f.render.Draw(f.surface, f.text, &f.state)
}

func (f *Face) markDirty(l Layer) {
	if f.surface != nil {
		f.surface.MarkDirty(l)
	}
}
