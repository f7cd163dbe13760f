package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum(t *testing.T) {
	a := filledNRGBA(4, 4, color.NRGBA{R: 1, A: 255})
	b := filledNRGBA(4, 4, color.NRGBA{R: 1, A: 255})
	assert.Equal(t, Checksum(a), Checksum(b), "identical pixels give identical checksums")

	b.SetNRGBA(3, 3, color.NRGBA{R: 2, A: 255})
	assert.NotEqual(t, Checksum(a), Checksum(b))

	// Same bytes, different shape.
	wide := filledNRGBA(8, 2, color.NRGBA{R: 1, A: 255})
	assert.NotEqual(t, Checksum(a), Checksum(wide))

	assert.Equal(t, "empty", Checksum(nil))
	assert.Equal(t, "empty", Checksum(image.NewNRGBA(image.Rect(0, 0, 0, 3))))
}

func TestChecksumIgnoresStridePadding(t *testing.T) {
	parent := filledNRGBA(6, 6, color.NRGBA{G: 5, A: 255})
	sub := parent.SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)
	standalone := filledNRGBA(2, 2, color.NRGBA{G: 5, A: 255})

	parent.SetNRGBA(4, 1, color.NRGBA{R: 99, A: 255})
	assert.Equal(t, Checksum(standalone), Checksum(sub))
}
