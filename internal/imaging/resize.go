// Package imaging normalizes product photos before they are stored as data
// URLs in the product document: cap the longer side at 800px and re-encode as
// a light JPEG so the document stays small.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"

	pkgerrors "github.com/assoumso/au-djassa/pkg/errors"
)

const (
	// MaxDimension caps the longer side of a processed image.
	MaxDimension = 800
	// JPEGQuality matches a 0.6 canvas compression setting.
	JPEGQuality = 60

	dataURLPrefix = "data:image/jpeg;base64,"
)

// FitWithin scales (width, height) so the longer side fits the cap, keeping
// the aspect ratio. Images already within the cap come back untouched.
func FitWithin(width, height int) (int, int) {
	if width > height {
		if width > MaxDimension {
			height = height * MaxDimension / width
			width = MaxDimension
		}
	} else {
		if height > MaxDimension {
			width = width * MaxDimension / height
			height = MaxDimension
		}
	}
	return width, height
}

// Process decodes the image bytes, resizes when needed and returns a JPEG
// data URL.
func Process(data []byte) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode image")
	}

	bounds := src.Bounds()
	width, height := FitWithin(bounds.Dx(), bounds.Dy())

	out := src
	if width != bounds.Dx() || height != bounds.Dy() {
		scaled := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, draw.Over, nil)
		out = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode jpeg")
	}

	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ProcessDataURL accepts an incoming data URL (or bare base64 payload),
// decodes it and runs it through Process.
func ProcessDataURL(input string) (string, error) {
	payload := strings.TrimSpace(input)
	if payload == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "empty image payload")
	}

	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "malformed data url")
		}
		header := payload[:idx]
		if !strings.Contains(header, ";base64") {
			return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported data url encoding %q", header))
		}
		payload = payload[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode base64 image payload")
	}
	return Process(raw)
}
