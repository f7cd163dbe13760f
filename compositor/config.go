package compositor

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nvr-ai/term-bg/images"
)

// Position selects the canvas corner (or center) the overlay is anchored to.
type Position string

const (
	// BottomRight anchors the overlay 50px from the right and bottom edges.
	BottomRight Position = "bottom-right"
	// TopRight anchors the overlay 50px from the right and top edges.
	TopRight Position = "top-right"
	// BottomLeft anchors the overlay 50px from the left and bottom edges.
	BottomLeft Position = "bottom-left"
	// TopLeft anchors the overlay 50px from the left and top edges.
	TopLeft Position = "top-left"
	// Center centers the overlay on the canvas.
	Center Position = "center"
)

// Valid reports whether p is one of the known positions.
func (p Position) Valid() bool {
	switch p {
	case BottomRight, TopRight, BottomLeft, TopLeft, Center:
		return true
	}
	return false
}

// Defaults applied to absent configuration keys.
const (
	DefaultOutputPath   = "/tmp/processed_bg.png"
	DefaultPosition     = BottomRight
	DefaultScale        = 0.2
	DefaultOpacity      = 0.3
	DefaultCanvasWidth  = 1920
	DefaultCanvasHeight = 1080
)

// Size is a width/height pair in pixels.
//
// In configuration it is written either as a two-element sequence
// ([1920, 1080]) or as a mapping ({width: 1920, height: 1080}).
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var pair []int
		if err := node.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return errors.Errorf("line %d: size must have exactly 2 elements, got %d", node.Line, len(pair))
		}
		s.Width, s.Height = pair[0], pair[1]
		return nil
	case yaml.MappingNode:
		type plain Size
		return node.Decode((*plain)(s))
	default:
		return errors.Errorf("line %d: size must be a [width, height] pair or a width/height mapping", node.Line)
	}
}

// Config holds the placement parameters for one overlay.
type Config struct {
	// SourcePath is the image to place. Required.
	SourcePath string `json:"sourcePath" yaml:"sourcePath"`
	// OutputPath is where the composited canvas is written.
	OutputPath string `json:"outputPath" yaml:"outputPath"`
	// Position anchors the overlay on the canvas.
	Position Position `json:"position" yaml:"position"`
	// Scale is applied to the source's native size before the caps, in (0, 1].
	Scale float64 `json:"scale" yaml:"scale"`
	// Opacity multiplies the overlay's alpha, in [0, 1].
	Opacity float64 `json:"opacity" yaml:"opacity"`
	// CanvasSize is the output size. Nil means 1920x1080 unless TerminalSize is set.
	CanvasSize *Size `json:"canvasSize,omitempty" yaml:"canvasSize"`
	// TerminalSize is an alias of CanvasSize; CanvasSize wins when both are set.
	TerminalSize *Size `json:"terminalSize,omitempty" yaml:"terminalSize"`
	// Filter names the resampling kernel. Empty means Lanczos3.
	Filter images.Filter `json:"filter,omitempty" yaml:"filter"`
}

// DefaultConfig returns a Config with every optional field at its default.
func DefaultConfig() Config {
	return Config{
		OutputPath: DefaultOutputPath,
		Position:   DefaultPosition,
		Scale:      DefaultScale,
		Opacity:    DefaultOpacity,
		Filter:     images.DefaultFilter,
	}
}

// ParseConfig decodes a configuration object. Both JSON and YAML are
// accepted. Keys that are absent keep their defaults.
//
// Arguments:
// - data: The serialized configuration.
//
// Returns:
// - The decoded, validated configuration.
// - error of kind KindInvalidConfig if decoding or validation fails.
//
// @example
//
//	cfg, err := ParseConfig([]byte(`{"sourcePath": "/tmp/a.png", "position": "center"}`))
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &Error{Kind: KindInvalidConfig, Err: errors.Wrap(err, "failed to parse config")}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the configuration file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &Error{Kind: KindInvalidConfig, Err: errors.Wrap(err, "failed to read config file")}
	}
	return ParseConfig(data)
}

// Canvas returns the resolved canvas size.
func (c Config) Canvas() Size {
	switch {
	case c.CanvasSize != nil:
		return *c.CanvasSize
	case c.TerminalSize != nil:
		return *c.TerminalSize
	default:
		return Size{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight}
	}
}

// Output returns the resolved output path.
func (c Config) Output() string {
	if c.OutputPath == "" {
		return DefaultOutputPath
	}
	return c.OutputPath
}

// Validate checks every field without touching the filesystem.
func (c Config) Validate() error {
	if c.SourcePath == "" {
		return invalidf("sourcePath is required")
	}
	if math.IsNaN(c.Scale) || c.Scale <= 0 || c.Scale > 1 {
		return invalidf("scale must be in (0, 1], got %v", c.Scale)
	}
	if math.IsNaN(c.Opacity) || c.Opacity < 0 || c.Opacity > 1 {
		return invalidf("opacity must be in [0, 1], got %v", c.Opacity)
	}
	if !c.position().Valid() {
		return invalidf("unknown position %q", c.Position)
	}
	if _, err := images.ParseFilter(string(c.Filter)); err != nil {
		return &Error{Kind: KindInvalidConfig, Err: err}
	}
	if err := checkSize("canvasSize", c.CanvasSize); err != nil {
		return err
	}
	return checkSize("terminalSize", c.TerminalSize)
}

func checkSize(name string, s *Size) error {
	if s != nil && (s.Width <= 0 || s.Height <= 0) {
		return invalidf("%s must be positive, got %dx%d", name, s.Width, s.Height)
	}
	return nil
}

func (c Config) position() Position {
	if c.Position == "" {
		return DefaultPosition
	}
	return c.Position
}
