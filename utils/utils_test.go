package utils

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	ok := IsValidUrl("https://example.com/sample.jpg")
	if !ok {
		t.Errorf("A valid URL should have been accepted")
	}
}

func TestUtils_ShouldRejectInvalidUrl(t *testing.T) {
	testCases := []string{
		"",
		"sample.jpg",
		"/tmp/sample.jpg",
		"https://",
	}
	for _, uri := range testCases {
		if IsValidUrl(uri) {
			t.Errorf("URL %q should have been rejected", uri)
		}
	}
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	sample := filepath.Join(t.TempDir(), "sample.png")
	f, err := os.Create(sample)
	if err != nil {
		t.Fatalf("could not create test file: %v", err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("could not encode test image: %v", err)
	}
	f.Close()

	ftype, err := DetectContentType(sample)
	if err != nil {
		t.Fatalf("could not detect content type: %v", err)
	}

	if !strings.Contains(ftype.(string), "image") {
		t.Errorf("Content type expected to be of type image, got: %v", ftype)
	}
}

func TestUtils_DecorateText(t *testing.T) {
	got := DecorateText("done", SuccessMessage)
	if !strings.HasPrefix(got, SuccessColor) || !strings.HasSuffix(got, DefaultColor) {
		t.Errorf("Success message expected to be wrapped in color codes, got: %q", got)
	}

	if got := DecorateText("plain", MessageType(99)); got != "plain" {
		t.Errorf("Unknown message type expected to pass through unchanged, got: %q", got)
	}
}

func TestUtils_FormatTime(t *testing.T) {
	testCases := []struct {
		d    time.Duration
		want string
	}{
		{d: 1500 * time.Millisecond, want: "1.50s"},
		{d: 90 * time.Second, want: "1m 30.00s"},
		{d: time.Hour + 2*time.Minute + 3*time.Second, want: "1h 2m 3.00s"},
		{d: 25*time.Hour + 4*time.Second, want: "1d 1h 0m 4.00s"},
	}
	for _, tc := range testCases {
		if got := FormatTime(tc.d); got != tc.want {
			t.Errorf("Duration %v expected to format as %q, got %q", tc.d, tc.want, got)
		}
	}
}

func TestUtils_MinMax(t *testing.T) {
	if got := Min(3, 7); got != 3 {
		t.Errorf("Min(3, 7) expected to be 3, got %d", got)
	}
	if got := Min(7, 3); got != 3 {
		t.Errorf("Min(7, 3) expected to be 3, got %d", got)
	}
	if got := Max(3, 7); got != 7 {
		t.Errorf("Max(3, 7) expected to be 7, got %d", got)
	}
	if got := Max(2.5, 1.5); got != 2.5 {
		t.Errorf("Max(2.5, 1.5) expected to be 2.5, got %v", got)
	}
}

func TestUtils_Abs(t *testing.T) {
	if got := Abs(-4); got != 4 {
		t.Errorf("Abs(-4) expected to be 4, got %d", got)
	}
	if got := Abs(4); got != 4 {
		t.Errorf("Abs(4) expected to be 4, got %d", got)
	}
}

func TestUtils_Contains(t *testing.T) {
	coll := []string{"horizontal", "vertical"}
	if !Contains(coll, "vertical") {
		t.Errorf("Collection expected to contain %q", "vertical")
	}
	if Contains(coll, "diagonal") {
		t.Errorf("Collection expected not to contain %q", "diagonal")
	}
}
