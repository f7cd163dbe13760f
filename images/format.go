package images

import (
	"path/filepath"
	"strings"
)

// Format represents an encoded raster format that can be written.
type Format string

const (
	// FormatPNG is the PNG image format.
	FormatPNG Format = "png"
	// FormatWebP is the lossless WebP image format.
	FormatWebP Format = "webp"
)

// FormatFromPath picks the output format from the extension of path.
// Anything that is not ".webp" is written as PNG.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return FormatWebP
	}
	return FormatPNG
}
