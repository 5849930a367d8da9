// Package media turns uploaded image bytes into a hosted URL. Images are
// validated, shrunk to fit the configured box and stored in an
// S3-compatible bucket.
package media

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/dmitrijs2005/travelboard/internal/common"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxWidth  = 1200
	DefaultMaxHeight = 800

	jpegQuality = 85
)

// Uploader stores one image under folder and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, folder string) (string, error)
}

// Disabled is used when no object store is configured.
type Disabled struct{}

func (Disabled) Upload(context.Context, []byte, string) (string, error) {
	return "", fmt.Errorf("%w: %w", common.ErrUploadFailed, common.ErrMediaDisabled)
}

// Image is a normalized upload ready to be stored.
type Image struct {
	Data        []byte
	Ext         string
	ContentType string
}

// Normalize validates data as a JPEG, PNG, GIF or WebP image and scales it
// down to fit maxW x maxH. Images already inside the box keep their bytes.
// WebP is re-encoded as JPEG.
func Normalize(data []byte, maxW, maxH int) (Image, error) {
	if len(data) == 0 {
		return Image{}, common.ErrEmptyMedia
	}

	format, ok := detectFormat(data)
	if !ok {
		return Image{}, common.NewValidationError("image", "unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Image{}, common.NewValidationError("image", "cannot decode image")
	}

	b := img.Bounds()
	if format != "webp" && b.Dx() <= maxW && b.Dy() <= maxH {
		return Image{Data: data, Ext: extOf(format), ContentType: "image/" + format}, nil
	}
	if b.Dx() > maxW || b.Dy() > maxH {
		img = imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	}

	out := imaging.JPEG
	switch format {
	case "png":
		out = imaging.PNG
	case "gif":
		out = imaging.GIF
	case "webp":
		format = "jpeg"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, out, imaging.JPEGQuality(jpegQuality)); err != nil {
		return Image{}, fmt.Errorf("%w: encode: %v", common.ErrUploadFailed, err)
	}
	return Image{Data: buf.Bytes(), Ext: extOf(format), ContentType: "image/" + format}, nil
}

func detectFormat(data []byte) (string, bool) {
	ct := http.DetectContentType(data)
	switch {
	case strings.Contains(ct, "jpeg"):
		return "jpeg", true
	case strings.Contains(ct, "png"):
		return "png", true
	case strings.Contains(ct, "gif"):
		return "gif", true
	case strings.Contains(ct, "webp"):
		return "webp", true
	}
	return "", false
}

func extOf(format string) string {
	if format == "jpeg" {
		return ".jpg"
	}
	return "." + format
}
