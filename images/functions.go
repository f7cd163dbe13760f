package images

import (
	"image"
	"math"
	"runtime"
	"sync"
)

// ScaleAlpha multiplies the alpha channel of every pixel in img by factor,
// rounding to the nearest integer and clamping to [0, 255]. Color channels
// are not touched, so the image fades without shifting hue. A factor of 1
// or more leaves img unchanged.
//
// Arguments:
// - img: The image to modify in place.
// - factor: The opacity multiplier.
//
// @example
// ScaleAlpha(overlay, 0.3)
func ScaleAlpha(img *image.NRGBA, factor float64) {
	if factor >= 1.0 {
		return
	}

	// Every input value maps to a fixed output, so build the table once.
	var lut [256]uint8
	for a := range lut {
		lut[a] = uint8(Clamp(math.Round(float64(a)*factor), 0, 255))
	}

	width := img.Rect.Dx()
	Parallel(img.Rect.Dy(), func(partStart, partEnd int) {
		for y := partStart; y < partEnd; y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+width*4]
			for i := 3; i < len(row); i += 4 {
				row[i] = lut[row[i]]
			}
		}
	})
}

// Over composites src onto dst with the top-left corner of src placed at pt,
// using non-premultiplied source-over blending. Pixels that fall outside dst
// are dropped. Where dst is fully transparent the source pixel is copied
// verbatim, color channels included.
//
// Arguments:
// - dst: The destination image, modified in place.
// - src: The image to paste.
// - pt: Position of src's top-left corner in dst coordinates.
func Over(dst, src *image.NRGBA, pt image.Point) {
	r := image.Rectangle{Min: pt, Max: pt.Add(src.Rect.Size())}.Intersect(dst.Rect)
	if r.Empty() {
		return
	}

	// Translation from dst coordinates to src coordinates.
	delta := src.Rect.Min.Sub(pt)

	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		si := src.PixOffset(r.Min.X+delta.X, y+delta.Y)
		for x := r.Min.X; x < r.Max.X; x++ {
			blend(dst.Pix[di:di+4], src.Pix[si:si+4])
			di += 4
			si += 4
		}
	}
}

// blend applies source-over for one NRGBA pixel.
func blend(d, s []uint8) {
	sa := uint32(s[3])
	switch {
	case d[3] == 0 || sa == 0xff:
		copy(d, s)
	case sa == 0:
	default:
		da := uint32(d[3])
		// Both numerator and denominator are scaled by 255.
		oa := sa*0xff + da*(0xff-sa)
		for i := 0; i < 3; i++ {
			c := uint32(s[i])*sa*0xff + uint32(d[i])*da*(0xff-sa)
			d[i] = uint8((c + oa/2) / oa)
		}
		d[3] = uint8((oa + 0x7f) / 0xff)
	}
}

// Clamp restricts value to [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Parallel splits [0, dataSize) into one contiguous partition per CPU and
// runs fn on each concurrently, returning once all partitions are done.
// Small inputs run on the calling goroutine.
//
// Arguments:
// - dataSize: The number of rows (or other units) to process.
// - fn: Function to execute for each partition.
//
// @example
//
//	Parallel(height, func(start, end int) {
//	    for y := start; y < end; y++ {
//	        // Process row y
//	    }
//	})
func Parallel(dataSize int, fn func(partStart, partEnd int)) {
	numGoroutines := runtime.NumCPU()

	if dataSize < numGoroutines*2 {
		fn(0, dataSize)
		return
	}

	partSize := dataSize / numGoroutines

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		partStart := i * partSize
		partEnd := partStart + partSize

		// Last partition gets any remaining data.
		if i == numGoroutines-1 {
			partEnd = dataSize
		}

		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(partStart, partEnd)
	}

	wg.Wait()
}
