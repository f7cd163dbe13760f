package images

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
)

// Encode writes img to w in the given format. Both formats keep the alpha
// channel; WebP output is lossless.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.DefaultCompression}
		if err := enc.Encode(w, img); err != nil {
			return errors.Wrap(err, "failed to encode PNG")
		}
	case FormatWebP:
		if err := webp.Encode(w, img, &webp.Options{Lossless: true}); err != nil {
			return errors.Wrap(err, "failed to encode WebP")
		}
	default:
		return errors.Errorf("unsupported image format: %q", format)
	}
	return nil
}

// WriteFile encodes img in the format implied by path's extension and
// stores it at path. The data is written to a temporary file in the same
// directory and renamed into place, so a failed write never leaves a
// partial file at path.
//
// Arguments:
// - path: Destination file.
// - img: The image to store.
//
// Returns:
// - error if the file cannot be created, encoded or moved into place.
func WriteFile(path string, img image.Image) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = Encode(tmp, img, FormatFromPath(path)); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return errors.Wrap(err, "failed to set output file mode")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to flush output file")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "failed to move output file into place")
	}
	return nil
}
