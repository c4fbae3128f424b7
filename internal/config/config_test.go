package config

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 25*time.Millisecond, cfg.FrameBudget())
	assert.Equal(t, 120*time.Millisecond, cfg.HandoffWindow())
	assert.Equal(t, 0.3, cfg.Gesture.MinScale)
	assert.Equal(t, 2.0, cfg.Gesture.MaxScale)
	assert.Equal(t, 20.0, cfg.Gesture.SelectionPadding)
	assert.Equal(t, 8.0, cfg.Pen.Width)
	assert.Equal(t, color.NRGBA{A: 255}, cfg.PenColor())
	assert.Equal(t, color.NRGBA{R: 0x42, G: 0x43, B: 0x43, A: 255}, cfg.SelectColor())
}

func TestParseOverridesOnlyGivenKeys(t *testing.T) {
	cfg, err := Parse([]byte(`
[render]
frame_budget_ms = 16

[pen]
width = 3.5
color = "#ff0000"
`))
	require.NoError(t, err)
	assert.Equal(t, 16*time.Millisecond, cfg.FrameBudget())
	assert.Equal(t, 3.5, cfg.Pen.Width)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, cfg.PenColor())
	assert.Equal(t, 120*time.Millisecond, cfg.HandoffWindow())
	assert.Equal(t, []float64{8, 8}, cfg.Pen.SelectDash)
}

func TestParseReplacesInvalidValues(t *testing.T) {
	cfg, err := Parse([]byte(`
[gesture]
min_scale = 3.0
max_scale = 1.0
density = -2
`))
	require.NoError(t, err)
	assert.Equal(t, 0.3, cfg.Gesture.MinScale)
	assert.Equal(t, 2.0, cfg.Gesture.MaxScale)
	assert.Equal(t, 1.0, cfg.Gesture.Density)
}

func TestParseRejectsMalformedToml(t *testing.T) {
	_, err := Parse([]byte("[render\nframe_budget_ms = "))
	assert.Error(t, err)
}

func TestLoadRoundTrip(t *testing.T) {
	want := Default()
	want.Window.Title = "test board"
	want.Gesture.HandoffWindowMS = 90

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, want))

	path := filepath.Join(t.TempDir(), "inkboard.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseReplacesBadColor(t *testing.T) {
	cfg, err := Parse([]byte(`
[pen]
color = "not-a-color"
`))
	require.NoError(t, err)
	assert.Equal(t, "#000000", cfg.Pen.Color)
}
