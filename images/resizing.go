package images

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// Filter names a resampling kernel.
type Filter string

const (
	// Lanczos3 is a Lanczos kernel with a=3 (best quality, the default).
	Lanczos3 Filter = "lanczos3"
	// Lanczos2 is a Lanczos kernel with a=2.
	Lanczos2 Filter = "lanczos2"
	// MitchellNetravali is the Mitchell-Netravali cubic with B=C=1/3.
	MitchellNetravali Filter = "mitchell"
	// Bicubic is a Catmull-Rom cubic.
	Bicubic Filter = "bicubic"
	// Bilinear uses linear interpolation on both axes.
	Bilinear Filter = "bilinear"
	// NearestNeighbor picks the closest source pixel (fastest, lowest quality).
	NearestNeighbor Filter = "nearest"
)

// DefaultFilter is used when no filter is named.
const DefaultFilter = Lanczos3

var interpolations = map[Filter]resize.InterpolationFunction{
	Lanczos3:          resize.Lanczos3,
	Lanczos2:          resize.Lanczos2,
	MitchellNetravali: resize.MitchellNetravali,
	Bicubic:           resize.Bicubic,
	Bilinear:          resize.Bilinear,
	NearestNeighbor:   resize.NearestNeighbor,
}

// ParseFilter resolves a filter name. The empty string selects DefaultFilter.
func ParseFilter(name string) (Filter, error) {
	if name == "" {
		return DefaultFilter, nil
	}
	f := Filter(name)
	if _, ok := interpolations[f]; !ok {
		return "", errors.Errorf("unsupported resampling filter: %q", name)
	}
	return f, nil
}

// Resize resamples img to exactly width x height with the given filter and
// returns a new NRGBA buffer. img is left untouched.
//
// Arguments:
// - img: The source image.
// - width: The target width in pixels.
// - height: The target height in pixels.
// - filter: The resampling kernel.
//
// Returns:
// - The resized image.
// - error if the dimensions are not positive or the filter is unknown.
//
// @example
// overlay, err := Resize(src, 200, 100, Lanczos3)
func Resize(img image.Image, width, height int, filter Filter) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid dimensions: width=%d, height=%d", width, height)
	}
	interp, ok := interpolations[filter]
	if !ok {
		return nil, errors.Errorf("unsupported resampling filter: %q", filter)
	}

	// nfnt returns the input itself when the size already matches, so the
	// copy below is what keeps the result independent of img.
	resized := resize.Resize(uint(width), uint(height), img, interp)
	return ToNRGBA(resized), nil
}
