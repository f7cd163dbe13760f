package compositor

import "image"

const (
	// Margin is the gap in pixels between the overlay and the canvas edges
	// it is anchored to.
	Margin = 50

	// The overlay never exceeds capFraction of the canvas, nor the absolute
	// maxOverlayWidth / maxOverlayHeight caps.
	capFraction      = 0.3
	maxOverlayWidth  = 300
	maxOverlayHeight = 400
)

// TargetSize computes the overlay dimensions for a srcW x srcH source.
//
// Only the long axis is capped: landscape sources (srcW > srcH) are bounded
// by the width cap and derive their height from the aspect ratio, while
// portrait and square sources are bounded by the height cap and derive
// their width. Truncating float64 conversions give floor for these
// non-negative values. A dimension that truncates to 0 becomes 1.
//
// Arguments:
// - srcW, srcH: Native source size, both positive.
// - canvas: The canvas the overlay will be placed on.
// - scale: Fraction of the native size requested before capping.
//
// Returns:
// - The target width and height, each at least 1.
//
// @example
// w, h := TargetSize(1000, 500, Size{1920, 1080}, 0.2) // 200, 100
func TargetSize(srcW, srcH int, canvas Size, scale float64) (int, int) {
	maxWidth := min(int(float64(canvas.Width)*capFraction), maxOverlayWidth)
	maxHeight := min(int(float64(canvas.Height)*capFraction), maxOverlayHeight)

	aspectRatio := float64(srcW) / float64(srcH)

	var w, h int
	if srcW > srcH {
		w = min(int(float64(srcW)*scale), maxWidth)
		h = int(float64(w) / aspectRatio)
	} else {
		h = min(int(float64(srcH)*scale), maxHeight)
		w = int(float64(h) * aspectRatio)
	}

	return max(w, 1), max(h, 1)
}

// Offset returns the canvas coordinates of the overlay's top-left corner.
// The result is not clamped: an overlay larger than the space left by the
// margins gets a negative or overhanging offset and is clipped when pasted.
func Offset(pos Position, canvas Size, w, h int) image.Point {
	right := canvas.Width - w - Margin
	bottom := canvas.Height - h - Margin

	switch pos {
	case TopRight:
		return image.Pt(right, Margin)
	case BottomLeft:
		return image.Pt(Margin, bottom)
	case TopLeft:
		return image.Pt(Margin, Margin)
	case Center:
		return image.Pt(floorDiv(canvas.Width-w, 2), floorDiv(canvas.Height-h, 2))
	default:
		return image.Pt(right, bottom)
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
