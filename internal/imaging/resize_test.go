package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	pkgerrors "github.com/assoumso/au-djassa/pkg/errors"
)

func TestFitWithin(t *testing.T) {
	cases := []struct {
		name                 string
		w, h                 int
		wantW, wantH         int
	}{
		{"landscape over cap", 1600, 1200, 800, 600},
		{"portrait over cap", 1200, 1600, 600, 800},
		{"within cap untouched", 640, 480, 640, 480},
		{"exactly at cap", 800, 800, 800, 800},
		{"square over cap", 1000, 1000, 800, 800},
		{"extreme landscape", 4000, 100, 800, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotW, gotH := FitWithin(tc.w, tc.h)
			if gotW != tc.wantW || gotH != tc.wantH {
				t.Fatalf("FitWithin(%d, %d) = %dx%d, want %dx%d", tc.w, tc.h, gotW, gotH, tc.wantW, tc.wantH)
			}
		})
	}
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func decodeDataURL(t *testing.T, dataURL string) image.Image {
	t.Helper()
	if !strings.HasPrefix(dataURL, "data:image/jpeg;base64,") {
		t.Fatalf("unexpected data url prefix %q", dataURL[:32])
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:image/jpeg;base64,"))
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode image: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("expected jpeg output, got %s", format)
	}
	return img
}

func TestProcessResizesLargeImage(t *testing.T) {
	dataURL, err := Process(encodePNG(t, 1600, 1200))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	img := decodeDataURL(t, dataURL)
	if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 600 {
		t.Fatalf("unexpected dimensions %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestProcessKeepsSmallImageDimensions(t *testing.T) {
	dataURL, err := Process(encodePNG(t, 320, 240))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	img := decodeDataURL(t, dataURL)
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 240 {
		t.Fatalf("unexpected dimensions %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestProcessDataURLRoundTrip(t *testing.T) {
	input := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encodePNG(t, 1000, 500))
	dataURL, err := ProcessDataURL(input)
	if err != nil {
		t.Fatalf("process data url: %v", err)
	}
	img := decodeDataURL(t, dataURL)
	if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 400 {
		t.Fatalf("unexpected dimensions %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestProcessDataURLRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "data:image/png,notbase64", "data:image/png;base64,%%%", "not-an-image"} {
		if _, err := ProcessDataURL(input); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
			t.Fatalf("input %q: expected validation error, got %v", input, err)
		}
	}
}
