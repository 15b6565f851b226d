// Package imop implements the image composition operations used to build
// the comparison sheet and the difference image.
package imop

import (
	"image"
	"image/draw"

	"grayview/utils"
)

// Montage layout directions.
const (
	Horizontal = "horizontal"
	Vertical   = "vertical"
)

// Bitmap wraps the canvas an operation draws onto.
type Bitmap struct {
	Img *image.NRGBA
}

// Montage lays a series of images out on a single canvas along one axis.
type Montage struct {
	axis string
	axes []string
}

// NewBitmap allocates a canvas of the given size.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// NewMontage initializes a montage operation along the provided axis,
// defaulting to a horizontal layout when the axis is unknown.
func NewMontage(axis string) *Montage {
	m := &Montage{
		axis: Horizontal,
		axes: []string{Horizontal, Vertical},
	}
	if utils.Contains(m.axes, axis) {
		m.axis = axis
	}
	return m
}

// Draw places the images one after another onto the bitmap canvas,
// allocating a canvas large enough to hold all of them when bitmap is nil.
// Images of unequal size are aligned at the top-left corner of their slot.
func (m *Montage) Draw(bitmap *Bitmap, imgs ...*image.NRGBA) *Bitmap {
	if bitmap == nil {
		bitmap = NewBitmap(m.bounds(imgs))
	}

	var offset image.Point
	for _, img := range imgs {
		rect := img.Bounds().Sub(img.Bounds().Min).Add(offset)
		draw.Draw(bitmap.Img, rect, img, img.Bounds().Min, draw.Src)

		if m.axis == Horizontal {
			offset.X += img.Bounds().Dx()
		} else {
			offset.Y += img.Bounds().Dy()
		}
	}
	return bitmap
}

// bounds returns the canvas rectangle needed to hold imgs along the axis.
func (m *Montage) bounds(imgs []*image.NRGBA) image.Rectangle {
	var w, h int
	for _, img := range imgs {
		dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
		if m.axis == Horizontal {
			w += dx
			h = utils.Max(h, dy)
		} else {
			w = utils.Max(w, dx)
			h += dy
		}
	}
	return image.Rect(0, 0, w, h)
}

// AbsDiff writes the per-channel absolute difference of two equally sized
// images onto the bitmap canvas, allocating one when bitmap is nil. The
// alpha channel is forced opaque so the result stays viewable.
func AbsDiff(bitmap *Bitmap, a, b *image.NRGBA) *Bitmap {
	dx, dy := a.Bounds().Dx(), a.Bounds().Dy()
	if bitmap == nil {
		bitmap = NewBitmap(image.Rect(0, 0, dx, dy))
	}

	for y := 0; y < dy; y++ {
		ai := a.PixOffset(a.Bounds().Min.X, a.Bounds().Min.Y+y)
		bi := b.PixOffset(b.Bounds().Min.X, b.Bounds().Min.Y+y)
		di := bitmap.Img.PixOffset(0, y)
		for x := 0; x < dx; x++ {
			bitmap.Img.Pix[di+0] = absDelta(a.Pix[ai+0], b.Pix[bi+0])
			bitmap.Img.Pix[di+1] = absDelta(a.Pix[ai+1], b.Pix[bi+1])
			bitmap.Img.Pix[di+2] = absDelta(a.Pix[ai+2], b.Pix[bi+2])
			bitmap.Img.Pix[di+3] = 0xff
			ai += 4
			bi += 4
			di += 4
		}
	}
	return bitmap
}

func absDelta(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
