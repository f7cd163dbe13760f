package images

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"image"
)

// Checksum generates a deterministic checksum of an image's dimensions and
// pixel data, used to verify that repeated renders are identical.
//
// Arguments:
// - img: The image to compute the checksum for.
//
// Returns:
// - A hex-encoded MD5 checksum string.
//
// Example:
//
// ```go
//
//	checksum := Checksum(canvas)
//	fmt.Printf("Canvas checksum: %s\n", checksum)
//
// ```
func Checksum(img *image.NRGBA) string {
	if img == nil || img.Rect.Empty() {
		return "empty"
	}

	hash := md5.New()
	var dims [8]byte
	binary.BigEndian.PutUint32(dims[0:4], uint32(img.Rect.Dx()))
	binary.BigEndian.PutUint32(dims[4:8], uint32(img.Rect.Dy()))
	hash.Write(dims[:])

	// Hash row by row so padding past each row's width never counts.
	width := img.Rect.Dx() * 4
	for y := 0; y < img.Rect.Dy(); y++ {
		hash.Write(img.Pix[y*img.Stride : y*img.Stride+width])
	}
	return fmt.Sprintf("%x", hash.Sum(nil))
}
