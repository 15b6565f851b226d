package grayview

import (
	"image"
)

// Channel counts supported by the conversion kernel.
const (
	GrayChannels = 1
	BGRChannels  = 3
)

// rowAlign pads each row to a multiple of 4 bytes, matching the
// widthStep alignment OpenCV uses for IplImage buffers.
const rowAlign = 4

// PixBuf describes a strided, byte-addressable pixel plane. It is a plain
// value: it does not own the backing bytes beyond what its constructor
// allocated and it carries no methods that mutate the geometry.
//
// The pixel at row r, column c occupies the Channels bytes starting at
// Pix[r*Stride + c*Channels]. Stride is always >= Width*Channels; the excess
// bytes at the end of each row are padding and may hold arbitrary values.
type PixBuf struct {
	Pix      []uint8
	Width    int
	Height   int
	Stride   int
	Channels int
}

// NewPixBuf allocates a pixel plane of the requested geometry with each row
// padded to a 4 byte boundary.
func NewPixBuf(width, height, channels int) *PixBuf {
	stride := alignStride(width*channels, rowAlign)

	return &PixBuf{
		Pix:      make([]uint8, stride*height),
		Width:    width,
		Height:   height,
		Stride:   stride,
		Channels: channels,
	}
}

// PixOffset returns the index of the first byte of the pixel at (row, col).
func (p *PixBuf) PixOffset(row, col int) int {
	return row*p.Stride + col*p.Channels
}

// GrayImage copies a single channel plane into an image.Gray, dropping the
// row padding. It panics if the plane is not single channel, since there is
// no meaningful gray rendition of an interleaved buffer.
func (p *PixBuf) GrayImage() *image.Gray {
	if p.Channels != GrayChannels {
		panic("grayview: GrayImage called on a multi-channel plane")
	}
	dst := image.NewGray(image.Rect(0, 0, p.Width, p.Height))
	for row := 0; row < p.Height; row++ {
		si := row * p.Stride
		di := row * dst.Stride
		copy(dst.Pix[di:di+p.Width], p.Pix[si:si+p.Width])
	}
	return dst
}

// nrgbaToBGR repacks an NRGBA image into a 3 channel, blue-green-red plane
// with aligned rows. The alpha channel is discarded.
func nrgbaToBGR(img *image.NRGBA) *PixBuf {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	dst := NewPixBuf(dx, dy, BGRChannels)

	for row := 0; row < dy; row++ {
		si := img.PixOffset(img.Bounds().Min.X, img.Bounds().Min.Y+row)
		di := row * dst.Stride
		for col := 0; col < dx; col++ {
			dst.Pix[di+0] = img.Pix[si+2]
			dst.Pix[di+1] = img.Pix[si+1]
			dst.Pix[di+2] = img.Pix[si+0]
			si += 4
			di += BGRChannels
		}
	}
	return dst
}

// alignStride rounds rowBytes up to the next multiple of align.
func alignStride(rowBytes, align int) int {
	return (rowBytes + align - 1) &^ (align - 1)
}
