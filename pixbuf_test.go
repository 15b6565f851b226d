package grayview

import (
	"image"
	"testing"
)

func TestPixBuf_AlignedStride(t *testing.T) {
	testCases := []struct {
		width    int
		channels int
		stride   int
	}{
		{width: 1, channels: 3, stride: 4},
		{width: 2, channels: 3, stride: 8},
		{width: 4, channels: 3, stride: 12},
		{width: 5, channels: 3, stride: 16},
		{width: 5, channels: 1, stride: 8},
		{width: 8, channels: 1, stride: 8},
	}

	for _, tc := range testCases {
		buf := NewPixBuf(tc.width, 3, tc.channels)
		if buf.Stride != tc.stride {
			t.Errorf("Stride of a %d pixel, %d channel row expected to be %d. Got %v",
				tc.width, tc.channels, tc.stride, buf.Stride)
		}
		if len(buf.Pix) != buf.Stride*buf.Height {
			t.Errorf("Backing buffer expected to hold %d bytes. Got %v",
				buf.Stride*buf.Height, len(buf.Pix))
		}
	}
}

func TestPixBuf_PixOffset(t *testing.T) {
	buf := NewPixBuf(5, 4, BGRChannels)

	if got := buf.PixOffset(0, 0); got != 0 {
		t.Errorf("Offset of (0, 0) expected to be 0. Got %v", got)
	}
	if got := buf.PixOffset(2, 3); got != 2*buf.Stride+9 {
		t.Errorf("Offset of (2, 3) expected to be %d. Got %v", 2*buf.Stride+9, got)
	}
}

func TestPixBuf_NRGBAToBGR(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	copy(img.Pix, []uint8{
		10, 20, 30, 255, // R, G, B, A of the first pixel
		40, 50, 60, 128,
	})

	buf := nrgbaToBGR(img)

	want := []uint8{30, 20, 10, 60, 50, 40}
	for i, v := range want {
		if buf.Pix[i] != v {
			t.Errorf("BGR byte %d expected to be %d. Got %v", i, v, buf.Pix[i])
		}
	}
	if buf.Channels != BGRChannels {
		t.Errorf("Channel count expected to be %d. Got %v", BGRChannels, buf.Channels)
	}
}

func TestPixBuf_GrayImage(t *testing.T) {
	buf := &PixBuf{
		Pix: []uint8{
			1, 2, 3, 0xee,
			4, 5, 6, 0xee,
		},
		Width:    3,
		Height:   2,
		Stride:   4,
		Channels: GrayChannels,
	}

	img := buf.GrayImage()

	want := []uint8{1, 2, 3, 4, 5, 6}
	for i, v := range want {
		row, col := i/3, i%3
		if got := img.GrayAt(col, row).Y; got != v {
			t.Errorf("Gray pixel (%d, %d) expected to be %d. Got %v", row, col, v, got)
		}
	}
}

func TestPixBuf_GrayImageMultiChannelPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("GrayImage on a 3 channel plane expected to panic")
		}
	}()

	buf := NewPixBuf(2, 2, BGRChannels)
	buf.GrayImage()
}
