// Package config loads the board's tunables from a TOML file.
package config

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"time"

	"InkBoard/internal/logx"

	"github.com/gogpu/gg"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Render  RenderConfig  `toml:"render"`
	Gesture GestureConfig `toml:"gesture"`
	Pen     PenConfig     `toml:"pen"`
	Image   ImageConfig   `toml:"image"`
}

type WindowConfig struct {
	Title  string  `toml:"title"`
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type RenderConfig struct {
	// FrameBudgetMS is the live layer's per-frame budget.
	FrameBudgetMS int `toml:"frame_budget_ms"`
}

type GestureConfig struct {
	// HandoffWindowMS is how soon after the first pointer a second one must
	// land to be read as the start of a pan/zoom instead of more ink.
	HandoffWindowMS  int     `toml:"handoff_window_ms"`
	MinScale         float64 `toml:"min_scale"`
	MaxScale         float64 `toml:"max_scale"`
	PinchMinDistance float64 `toml:"pinch_min_distance"`
	SelectionPadding float64 `toml:"selection_padding"`
	Density          float64 `toml:"density"`
	// EraserContact stands in for the touch contact size when the input
	// device reports none (mice, most pens).
	EraserContact float64 `toml:"eraser_contact"`
}

type PenConfig struct {
	Width       float64   `toml:"width"`
	Color       string    `toml:"color"`
	SelectWidth float64   `toml:"select_width"`
	SelectColor string    `toml:"select_color"`
	SelectDash  []float64 `toml:"select_dash"`
}

type ImageConfig struct {
	DefaultSize float64 `toml:"default_size"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{Title: "InkBoard", Width: 1024, Height: 768},
		Render: RenderConfig{FrameBudgetMS: 25},
		Gesture: GestureConfig{
			HandoffWindowMS:  120,
			MinScale:         0.3,
			MaxScale:         2.0,
			PinchMinDistance: 10,
			SelectionPadding: 20,
			Density:          1,
			EraserContact:    0.01,
		},
		Pen: PenConfig{
			Width:       8,
			Color:       "#000000",
			SelectWidth: 5,
			SelectColor: "#424343",
			SelectDash:  []float64{8, 8},
		},
		Image: ImageConfig{DefaultSize: 500},
	}
}

// Load reads path on top of Default. A missing file is an error; callers
// that treat the file as optional should check errors.Is(err, os.ErrNotExist).
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML on top of Default and replaces out-of-range values
// with their defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
		return Default(), fmt.Errorf("decode toml: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	def := Default()
	log := logx.For("config")
	fix := func(name string, bad bool, reset func()) {
		if bad {
			log.Warn("invalid value, using default", "key", name)
			reset()
		}
	}

	fix("render.frame_budget_ms", c.Render.FrameBudgetMS <= 0, func() { c.Render.FrameBudgetMS = def.Render.FrameBudgetMS })
	fix("gesture.handoff_window_ms", c.Gesture.HandoffWindowMS < 0, func() { c.Gesture.HandoffWindowMS = def.Gesture.HandoffWindowMS })
	fix("gesture.min_scale", c.Gesture.MinScale <= 0, func() { c.Gesture.MinScale = def.Gesture.MinScale })
	fix("gesture.max_scale", c.Gesture.MaxScale <= c.Gesture.MinScale, func() {
		c.Gesture.MinScale, c.Gesture.MaxScale = def.Gesture.MinScale, def.Gesture.MaxScale
	})
	fix("gesture.pinch_min_distance", c.Gesture.PinchMinDistance < 0, func() { c.Gesture.PinchMinDistance = def.Gesture.PinchMinDistance })
	fix("gesture.selection_padding", c.Gesture.SelectionPadding < 0, func() { c.Gesture.SelectionPadding = def.Gesture.SelectionPadding })
	fix("gesture.density", c.Gesture.Density <= 0, func() { c.Gesture.Density = def.Gesture.Density })
	fix("gesture.eraser_contact", c.Gesture.EraserContact <= 0, func() { c.Gesture.EraserContact = def.Gesture.EraserContact })
	fix("pen.width", c.Pen.Width <= 0, func() { c.Pen.Width = def.Pen.Width })
	fix("pen.select_width", c.Pen.SelectWidth <= 0, func() { c.Pen.SelectWidth = def.Pen.SelectWidth })
	_, err := gg.ParseHex(c.Pen.Color)
	fix("pen.color", err != nil, func() { c.Pen.Color = def.Pen.Color })
	_, err = gg.ParseHex(c.Pen.SelectColor)
	fix("pen.select_color", err != nil, func() { c.Pen.SelectColor = def.Pen.SelectColor })
	fix("image.default_size", c.Image.DefaultSize <= 0, func() { c.Image.DefaultSize = def.Image.DefaultSize })
	fix("window.width", c.Window.Width <= 0, func() { c.Window.Width = def.Window.Width })
	fix("window.height", c.Window.Height <= 0, func() { c.Window.Height = def.Window.Height })
}

func (c Config) FrameBudget() time.Duration {
	return time.Duration(c.Render.FrameBudgetMS) * time.Millisecond
}

func (c Config) HandoffWindow() time.Duration {
	return time.Duration(c.Gesture.HandoffWindowMS) * time.Millisecond
}

// PenColor parses Pen.Color as a hex string.
func (c Config) PenColor() color.NRGBA {
	return nrgba(gg.Hex(c.Pen.Color))
}

func (c Config) SelectColor() color.NRGBA {
	return nrgba(gg.Hex(c.Pen.SelectColor))
}

func nrgba(c gg.RGBA) color.NRGBA {
	to8 := func(v float64) uint8 { return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255)) }
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}
