package decode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	// imaging registers jpeg, png, gif, bmp and tiff.
	_ "golang.org/x/image/webp"
)

var ErrEmpty = errors.New("empty image data")

// DetectMIME returns declared when it names a concrete type, otherwise the
// type sniffed from data.
func DetectMIME(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return mimetype.Detect(data).String()
}

// Decode turns raw bytes into an image, applying EXIF orientation.
// It returns early when ctx is already done.
func Decode(ctx context.Context, data []byte) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", mimetype.Detect(data), err)
	}
	if img.Bounds().Empty() {
		return nil, ErrEmpty
	}
	return img, nil
}
