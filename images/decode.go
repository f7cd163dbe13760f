// Package images provides the raster primitives behind the overlay
// compositor: decoding to NRGBA, Lanczos resampling, alpha attenuation,
// source-over pasting and alpha-preserving encoding.
package images

import (
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	// Source formats beyond the png/jpeg/gif decoders imaging pulls in.
	_ "github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Decode reads an encoded image of any registered format and returns it as
// a freshly allocated NRGBA buffer anchored at the origin. Sources without
// an alpha channel come back fully opaque.
//
// Arguments:
// - r: The reader holding the encoded image.
//
// Returns:
// - The decoded image.
// - error if the data is not a decodable, non-empty image.
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}
	if img.Bounds().Empty() {
		return nil, errors.Errorf("image has no pixels: %v", img.Bounds())
	}
	return ToNRGBA(img), nil
}

// Open decodes the image stored at path.
func Open(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image")
	}
	defer f.Close()

	return Decode(f)
}

// ToNRGBA returns a non-premultiplied copy of img whose bounds start at
// (0, 0). The caller owns the returned buffer.
func ToNRGBA(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}
