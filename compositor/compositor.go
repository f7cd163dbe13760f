// Package compositor turns an arbitrary source image into a terminal
// background overlay: the source is scaled down, faded, and placed near a
// corner (or the center) of an otherwise transparent canvas.
package compositor

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/nvr-ai/term-bg/images"
)

// Placement describes where the overlay ended up on the canvas.
type Placement struct {
	// Width and Height are the resampled overlay dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`
	// Offset is the overlay's top-left corner in canvas coordinates.
	Offset image.Point `json:"offset"`
}

// Result is the outcome of a successful Composite call.
type Result struct {
	// Image is the full canvas as written to OutputPath.
	Image *image.NRGBA
	// OutputPath is the resolved location of the written file.
	OutputPath string
	// Placement is the overlay geometry.
	Placement Placement
}

// Composite validates cfg, decodes the source image, renders the overlay
// canvas and writes it to the configured output path.
//
// Arguments:
// - cfg: The placement configuration.
//
// Returns:
// - The rendered canvas and where it was written.
// - error of kind KindInvalidConfig, KindDecode or KindEncode.
//
// @example
//
//	cfg := compositor.DefaultConfig()
//	cfg.SourcePath = "avatar.png"
//	res, err := compositor.Composite(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.OutputPath)
func Composite(cfg Config) (*Result, error) {
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src, err := images.Open(cfg.SourcePath)
	if err != nil {
		return nil, wrapKind(KindDecode, err, cfg.SourcePath)
	}

	canvas, placement, err := Render(src, cfg)
	if err != nil {
		return nil, err
	}

	output := cfg.Output()
	if err := images.WriteFile(output, canvas); err != nil {
		return nil, wrapKind(KindEncode, err, output)
	}

	Logger().Info("overlay written",
		"source", cfg.SourcePath,
		"output", output,
		"size", image.Pt(placement.Width, placement.Height).String(),
		"offset", placement.Offset.String(),
		"elapsed", time.Since(start))

	return &Result{Image: canvas, OutputPath: output, Placement: placement}, nil
}

// Render runs the in-memory part of the pipeline on an already decoded
// source: size the overlay, resample it, fade its alpha and paste it onto a
// fresh transparent canvas. src is not modified.
//
// Arguments:
// - src: The decoded source image.
// - cfg: The placement configuration.
//
// Returns:
// - The composited canvas.
// - The overlay placement.
// - error of kind KindInvalidConfig if cfg is not valid.
func Render(src *image.NRGBA, cfg Config) (*image.NRGBA, Placement, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Placement{}, err
	}

	log := Logger()
	size := cfg.Canvas()
	canvas := image.NewNRGBA(image.Rect(0, 0, size.Width, size.Height))

	srcW, srcH := src.Rect.Dx(), src.Rect.Dy()
	w, h := TargetSize(srcW, srcH, size, cfg.Scale)
	log.Debug("target size resolved",
		"source", image.Pt(srcW, srcH).String(),
		"canvas", image.Pt(size.Width, size.Height).String(),
		"target", image.Pt(w, h).String())

	filter, err := images.ParseFilter(string(cfg.Filter))
	if err != nil {
		return nil, Placement{}, &Error{Kind: KindInvalidConfig, Err: err}
	}
	overlay, err := images.Resize(src, w, h, filter)
	if err != nil {
		return nil, Placement{}, &Error{Kind: KindInvalidConfig, Err: err}
	}

	images.ScaleAlpha(overlay, cfg.Opacity)

	offset := Offset(cfg.position(), size, w, h)
	images.Over(canvas, overlay, offset)
	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("overlay pasted",
			"position", string(cfg.position()),
			"offset", offset.String(),
			"opacity", cfg.Opacity,
			"checksum", images.Checksum(canvas))
	}

	return canvas, Placement{Width: w, Height: h, Offset: offset}, nil
}
