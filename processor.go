package grayview

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"grayview/imop"
	"grayview/utils"
)

// Processor holds the conversion options.
type Processor struct {
	// FixedPoint selects the integer-only form of the conversion kernel.
	FixedPoint bool
	// Preview opens the side by side comparison window.
	Preview bool
	// Spinner is the progress indicator shown while the image is processed.
	Spinner *utils.Spinner
}

// Comparison bundles the source image together with the two grayscale
// renditions: the one obtained through the imaging library and the one
// computed by the BGR conversion kernel.
type Comparison struct {
	Source  *image.NRGBA
	LibGray *image.NRGBA
	OwnGray *image.Gray
}

// Convert produces the grayscale comparison for img. The library route calls
// imaging.Grayscale; the manual route repacks the pixels into a strided BGR
// plane and runs the conversion kernel over it.
func (p *Processor) Convert(img image.Image) *Comparison {
	src := imgToNRGBA(img)

	bgr := nrgbaToBGR(src)
	gray := NewPixBuf(bgr.Width, bgr.Height, GrayChannels)
	if p.FixedPoint {
		GrayscaleBGRFixed(bgr, gray)
	} else {
		GrayscaleBGR(bgr, gray)
	}

	return &Comparison{
		Source:  src,
		LibGray: imaging.Grayscale(src),
		OwnGray: gray.GrayImage(),
	}
}

// Process decodes the image from r, converts it through both routes and
// encodes the manual grayscale rendition into w. It is the entry point used
// by the batch mode, where no comparison window is opened.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	src, _, err := image.Decode(r)
	if err != nil {
		return errors.Wrap(err, "could not decode the source image")
	}

	res := p.Convert(src)
	return encodeImg(w, res.OwnGray)
}

// Sheet lays the three images of the comparison out on a single canvas,
// each pane carrying the same content as the preview window.
func (c *Comparison) Sheet() *image.NRGBA {
	m := imop.NewMontage(imop.Horizontal)
	bitmap := m.Draw(nil, c.Source, c.LibGray, grayToNRGBA(c.OwnGray))
	return bitmap.Img
}

// Diff renders the per-pixel absolute difference between the two grayscale
// routes. The library rounds where the kernel truncates, so the difference
// image is expected to stay within one intensity level everywhere.
func (c *Comparison) Diff() *image.NRGBA {
	bitmap := imop.AbsDiff(nil, c.LibGray, grayToNRGBA(c.OwnGray))
	return bitmap.Img
}
