package app

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"dial/dialos/face"
)

// Config is the user-facing configuration of the watch face.
type Config struct {
	LowPower  bool        `yaml:"low_power"`
	Shadows   bool        `yaml:"shadows"`
	Ticks     bool        `yaml:"ticks"`
	DebugTime bool        `yaml:"debug_time"`
	LinkAlert bool        `yaml:"link_alert"`
	Logo      bool        `yaml:"logo"`
	Date      DateConfig  `yaml:"date"`
	Colors    ColorConfig `yaml:"colors"`
}

// DateConfig controls the date label.
type DateConfig struct {
	Enabled bool   `yaml:"enabled"`
	Band    string `yaml:"band"`  // "narrow" or "wide"
	Lines   int    `yaml:"lines"` // 1 or 2
}

// ColorConfig holds "#rrggbb" overrides. Empty keeps the default.
type ColorConfig struct {
	Background string `yaml:"background"`
	Hour       string `yaml:"hour"`
	Minute     string `yaml:"minute"`
	Second     string `yaml:"second"`
	Pin        string `yaml:"pin"`
	Shadow     string `yaml:"shadow"`
	Tick       string `yaml:"tick"`
	Date       string `yaml:"date"`
}

func DefaultConfig() Config {
	return Config{
		Shadows:   true,
		Ticks:     true,
		LinkAlert: true,
		Logo:      true,
		Date:      DateConfig{Enabled: true, Band: "narrow", Lines: 1},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Date.Band {
	case "", "narrow", "wide":
	default:
		return fmt.Errorf("date.band: unknown band %q", c.Date.Band)
	}
	if c.Date.Lines < 0 || c.Date.Lines > 2 {
		return fmt.Errorf("date.lines: %d not in 1..2", c.Date.Lines)
	}
	_, err := c.palette()
	return err
}

// FaceConfig converts c into the engine configuration.
func (c Config) FaceConfig() (face.Config, error) {
	if err := c.Validate(); err != nil {
		return face.Config{}, err
	}
	fc := face.DefaultConfig()
	fc.LowPower = c.LowPower
	fc.Shadows = c.Shadows
	fc.Ticks = c.Ticks
	fc.LinkAlert = c.LinkAlert
	fc.DateEnabled = c.Date.Enabled
	fc.DateBands = face.NarrowBands
	if c.Date.Band == "wide" {
		fc.DateBands = face.WideBands
	}
	if c.Date.Lines > 0 {
		fc.DateLines = c.Date.Lines
	}
	if c.DebugTime {
		dbg := face.DebugTime
		fc.Debug = &dbg
	}
	fc.Palette, _ = c.palette()
	if c.Logo {
		img, err := Logo()
		if err != nil {
			return face.Config{}, fmt.Errorf("logo: %w", err)
		}
		fc.Logo = img
	}
	return fc, nil
}

func (c Config) palette() (face.Palette, error) {
	p := face.DefaultPalette()
	fields := []struct {
		key string
		val string
		dst *color.RGBA
	}{
		{"background", c.Colors.Background, &p.Background},
		{"hour", c.Colors.Hour, &p.Hour},
		{"minute", c.Colors.Minute, &p.Minute},
		{"second", c.Colors.Second, &p.Second},
		{"pin", c.Colors.Pin, &p.Pin},
		{"shadow", c.Colors.Shadow, &p.Shadow},
		{"tick", c.Colors.Tick, &p.Tick},
		{"date", c.Colors.Date, &p.Date},
	}
	for _, f := range fields {
		if f.val == "" {
			continue
		}
		col, err := ParseColor(f.val)
		if err != nil {
			return face.Palette{}, fmt.Errorf("colors.%s: %w", f.key, err)
		}
		*f.dst = col
	}
	return p, nil
}

// ParseColor parses "#rrggbb" or "rrggbb".
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
