package grayview

import (
	"image"
	"math/rand"
	"testing"
)

const (
	imgWidth  = 10
	imgHeight = 10
)

func randomNRGBA(w, h int, seed int64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	rnd := rand.New(rand.NewSource(seed))
	rnd.Read(img.Pix)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

func TestProcessor_Convert(t *testing.T) {
	p := &Processor{}
	img := randomNRGBA(imgWidth, imgHeight, 7)

	res := p.Convert(img)

	if res.OwnGray.Bounds() != img.Bounds() {
		t.Errorf("Kernel grayscale expected to keep the source bounds. Got %v", res.OwnGray.Bounds())
	}
	if res.LibGray.Bounds() != img.Bounds() {
		t.Errorf("Library grayscale expected to keep the source bounds. Got %v", res.LibGray.Bounds())
	}

	for y := 0; y < imgHeight; y++ {
		for x := 0; x < imgWidth; x++ {
			c := img.NRGBAAt(x, y)
			want := refGray(c.B, c.G, c.R)
			if got := res.OwnGray.GrayAt(x, y).Y; got != want {
				t.Errorf("Kernel pixel (%d, %d) expected to be %d. Got %v", x, y, want, got)
			}
		}
	}
}

func TestProcessor_ConvertFixedPoint(t *testing.T) {
	img := randomNRGBA(imgWidth, imgHeight, 8)

	exact := (&Processor{}).Convert(img)
	fixed := (&Processor{FixedPoint: true}).Convert(img)

	for y := 0; y < imgHeight; y++ {
		for x := 0; x < imgWidth; x++ {
			a := int(exact.OwnGray.GrayAt(x, y).Y)
			b := int(fixed.OwnGray.GrayAt(x, y).Y)
			if d := a - b; d < -1 || d > 1 {
				t.Errorf("Fixed point pixel (%d, %d) expected to be within 1 of %d. Got %d", x, y, a, b)
			}
		}
	}
}

// The library rounds to nearest where the kernel truncates, so the two
// routes may never drift apart by more than one intensity level.
func TestProcessor_RoutesAgree(t *testing.T) {
	p := &Processor{}
	img := randomNRGBA(640, 480, 9)

	res := p.Convert(img)

	for y := 0; y < 480; y++ {
		for x := 0; x < 640; x++ {
			lib := int(res.LibGray.NRGBAAt(x, y).R)
			own := int(res.OwnGray.GrayAt(x, y).Y)
			if d := lib - own; d < -1 || d > 1 {
				t.Errorf("Routes disagree at (%d, %d): library %d, kernel %d", x, y, lib, own)
			}
		}
	}
}

func TestComparison_Sheet(t *testing.T) {
	p := &Processor{}
	img := randomNRGBA(imgWidth, imgHeight, 10)

	sheet := p.Convert(img).Sheet()

	if sheet.Bounds().Dx() != 3*imgWidth || sheet.Bounds().Dy() != imgHeight {
		t.Errorf("Sheet expected to be %dx%d. Got %dx%d",
			3*imgWidth, imgHeight, sheet.Bounds().Dx(), sheet.Bounds().Dy())
	}

	// First pane carries the untouched source.
	for y := 0; y < imgHeight; y++ {
		for x := 0; x < imgWidth; x++ {
			if got, want := sheet.NRGBAAt(x, y), img.NRGBAAt(x, y); got != want {
				t.Errorf("Sheet pixel (%d, %d) expected to be %v. Got %v", x, y, want, got)
			}
		}
	}

	// Third pane carries the kernel rendition.
	res := p.Convert(img)
	for y := 0; y < imgHeight; y++ {
		for x := 0; x < imgWidth; x++ {
			want := res.OwnGray.GrayAt(x, y).Y
			if got := sheet.NRGBAAt(2*imgWidth+x, y); got.R != want || got.G != want || got.B != want {
				t.Errorf("Sheet pixel (%d, %d) of the kernel pane expected to be %d. Got %v",
					x, y, want, got)
			}
		}
	}
}

func TestComparison_Diff(t *testing.T) {
	p := &Processor{}
	img := randomNRGBA(imgWidth, imgHeight, 11)

	diff := p.Convert(img).Diff()

	for y := 0; y < imgHeight; y++ {
		for x := 0; x < imgWidth; x++ {
			c := diff.NRGBAAt(x, y)
			if c.R > 1 || c.G > 1 || c.B > 1 {
				t.Errorf("Difference at (%d, %d) expected to stay within 1. Got %v", x, y, c)
			}
			if c.A != 0xff {
				t.Errorf("Difference image expected to be opaque at (%d, %d). Got %v", x, y, c.A)
			}
		}
	}
}

func TestProcessor_ConvertGrayModelInput(t *testing.T) {
	// A non-NRGBA source exercises the generic conversion path.
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = uint8(16 * i)
	}

	res := (&Processor{}).Convert(img)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := int(img.GrayAt(x, y).Y)
			// Equal channels reduce to the input intensity, save for the
			// occasional one-off from truncating the float sum.
			got := int(res.OwnGray.GrayAt(x, y).Y)
			if got != v && got != v-1 {
				t.Errorf("Gray input pixel (%d, %d) expected to stay close to %d. Got %v", x, y, v, got)
			}
		}
	}
}
