package compositor

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/term-bg/images"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"sourcePath": "/tmp/operator.png"}`))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/operator.png", cfg.SourcePath)
	assert.Equal(t, DefaultOutputPath, cfg.OutputPath)
	assert.Equal(t, BottomRight, cfg.Position)
	assert.Equal(t, 0.2, cfg.Scale)
	assert.Equal(t, 0.3, cfg.Opacity)
	assert.Equal(t, images.Lanczos3, cfg.Filter)
	assert.Nil(t, cfg.CanvasSize)
	assert.Equal(t, Size{Width: 1920, Height: 1080}, cfg.Canvas())
}

func TestParseConfigJSON(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{
		"sourcePath": "/tmp/a.png",
		"outputPath": "/tmp/bg_processed_1.png",
		"position": "top-left",
		"scale": 0.15,
		"opacity": 1.0,
		"terminalSize": [800, 480]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/bg_processed_1.png", cfg.Output())
	assert.Equal(t, TopLeft, cfg.Position)
	assert.Equal(t, 0.15, cfg.Scale)
	assert.Equal(t, 1.0, cfg.Opacity)
	assert.Equal(t, Size{Width: 800, Height: 480}, cfg.Canvas())
}

func TestParseConfigYAML(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
sourcePath: /tmp/a.png
position: center
opacity: 0
filter: bilinear
canvasSize:
  width: 640
  height: 360
`))
	require.NoError(t, err)

	assert.Equal(t, Center, cfg.Position)
	assert.Equal(t, 0.0, cfg.Opacity)
	assert.Equal(t, images.Bilinear, cfg.Filter)
	assert.Equal(t, Size{Width: 640, Height: 360}, cfg.Canvas())
}

func TestCanvasSizeWinsOverTerminalSize(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"sourcePath": "a.png", "canvasSize": [100, 200], "terminalSize": [300, 400]}`))
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 100, Height: 200}, cfg.Canvas())
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{name: "malformed", input: `{"sourcePath": `, message: "failed to parse config"},
		{name: "missing source", input: `{"scale": 0.5}`, message: "sourcePath is required"},
		{name: "scale zero", input: `{"sourcePath": "a", "scale": 0}`, message: "scale"},
		{name: "scale above one", input: `{"sourcePath": "a", "scale": 1.5}`, message: "scale"},
		{name: "negative scale", input: `{"sourcePath": "a", "scale": -0.1}`, message: "scale"},
		{name: "opacity above one", input: `{"sourcePath": "a", "opacity": 1.01}`, message: "opacity"},
		{name: "negative opacity", input: `{"sourcePath": "a", "opacity": -1}`, message: "opacity"},
		{name: "unknown position", input: `{"sourcePath": "a", "position": "middle"}`, message: "unknown position"},
		{name: "unknown filter", input: `{"sourcePath": "a", "filter": "box"}`, message: "unsupported resampling filter"},
		{name: "zero canvas width", input: `{"sourcePath": "a", "canvasSize": [0, 100]}`, message: "canvasSize must be positive"},
		{name: "negative terminal height", input: `{"sourcePath": "a", "terminalSize": [100, -1]}`, message: "terminalSize must be positive"},
		{name: "size with three elements", input: `{"sourcePath": "a", "canvasSize": [1, 2, 3]}`, message: "exactly 2 elements"},
		{name: "size as scalar", input: `{"sourcePath": "a", "canvasSize": 1920}`, message: "size must be"},
		{name: "scale as string", input: `{"sourcePath": "a", "scale": "big"}`, message: "failed to parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
			assert.Equal(t, KindInvalidConfig, KindOf(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidateRejectsNaN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SourcePath = "a.png"

	cfg.Scale = math.NaN()
	assert.Error(t, cfg.Validate())

	cfg.Scale = DefaultScale
	cfg.Opacity = math.NaN()
	assert.Error(t, cfg.Validate())
}

func TestValidateAcceptsBoundaries(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SourcePath = "a.png"

	for _, scale := range []float64{math.SmallestNonzeroFloat64, 1} {
		for _, opacity := range []float64{0, 1} {
			cfg.Scale, cfg.Opacity = scale, opacity
			assert.NoError(t, cfg.Validate(), "scale=%v opacity=%v", scale, opacity)
		}
	}
}

func TestConfigZeroValueFallbacks(t *testing.T) {
	cfg := Config{SourcePath: "a.png", Scale: 0.5}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultOutputPath, cfg.Output())
	assert.Equal(t, BottomRight, cfg.position())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sourcePath: /tmp/a.png\nscale: 0.5\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Scale)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, KindInvalidConfig, KindOf(err))
}
