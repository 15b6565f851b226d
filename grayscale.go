package grayview

import (
	"runtime"
	"sync"
)

// parallelThreshold is the row count above which a single conversion call
// fans out over multiple goroutines.
const parallelThreshold = 512

// GrayscaleBGR reduces a 3 channel, blue-green-red source plane to a single
// channel luminance plane using the Rec.601 weights:
//
//	Y = 0.299*R + 0.587*G + 0.114*B
//
// The weighted sum is computed in single precision and truncated toward zero
// when stored, matching the implicit float to uchar conversion of the OpenCV
// sample code this tool re-creates. With the weights summing to one, a pixel
// of equal channels maps back onto (or one below) its own intensity and the
// result always fits in a byte. The caller must supply a source with
// Channels == 3 and a
// destination with Channels == 1 and the same pixel dimensions; the kernel
// does not verify this. Destination bytes between Width and Stride of each
// row are left untouched.
//
// Row writes land on disjoint destination bytes, so tall images are split
// into row bands converted concurrently.
func GrayscaleBGR(src, dst *PixBuf) {
	if src.Height >= parallelThreshold {
		grayscaleBGRRows(src, dst)
		return
	}
	grayscaleBGRBand(src, dst, 0, src.Height)
}

// GrayscaleBGRFixed is the fixed-point form of GrayscaleBGR:
//
//	Y = (77*R + 150*G + 29*B) >> 8
//
// It agrees with the floating point formula to within one intensity level
// for every possible input and avoids the per-pixel float conversions.
func GrayscaleBGRFixed(src, dst *PixBuf) {
	for row := 0; row < src.Height; row++ {
		si := row * src.Stride
		di := row * dst.Stride
		for col := 0; col < src.Width; col++ {
			b := uint32(src.Pix[si+0])
			g := uint32(src.Pix[si+1])
			r := uint32(src.Pix[si+2])
			dst.Pix[di+col] = uint8((77*r + 150*g + 29*b) >> 8)
			si += BGRChannels
		}
	}
}

// grayscaleBGRBand converts rows [from, to) of src into dst.
func grayscaleBGRBand(src, dst *PixBuf, from, to int) {
	for row := from; row < to; row++ {
		si := row * src.Stride
		di := row * dst.Stride
		for col := 0; col < src.Width; col++ {
			b := src.Pix[si+0]
			g := src.Pix[si+1]
			r := src.Pix[si+2]
			lum := float32(r)*0.299 + float32(g)*0.587 + float32(b)*0.114
			dst.Pix[di+col] = uint8(lum)
			si += BGRChannels
		}
	}
}

// grayscaleBGRRows splits the image into contiguous row bands and converts
// them on separate goroutines. Every destination pixel is written exactly
// once before the function returns.
func grayscaleBGRRows(src, dst *PixBuf) {
	var wg sync.WaitGroup

	workers := runtime.NumCPU()
	if workers > src.Height {
		workers = src.Height
	}
	band := (src.Height + workers - 1) / workers

	for from := 0; from < src.Height; from += band {
		to := from + band
		if to > src.Height {
			to = src.Height
		}

		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			grayscaleBGRBand(src, dst, from, to)
		}(from, to)
	}
	wg.Wait()
}
