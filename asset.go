package logomark

import (
	"context"
	"fmt"
	"image"

	"github.com/yyyoichi/logomark/internal/decode"
)

// RawImage is an undecoded input as supplied by the caller.
// MIME may be empty, in which case it is sniffed from Data.
type RawImage struct {
	Name string
	MIME string
	Data []byte
}

type SourceImage struct {
	Name   string
	MIME   string
	Width  int
	Height int
	Image  image.Image
}

// LogoAsset is the watermark shared read-only by every image of a run.
type LogoAsset struct {
	Width  int
	Height int
	Image  image.Image
}

// EncodedAsset is the output for one SourceImage.
type EncodedAsset struct {
	FileName string
	MIMEType string
	Bytes    []byte

	Width    int
	Height   int
	Quality  float64
	Attempts int
}

// LoadSource decodes raw. Failures wrap ErrDecode.
func LoadSource(ctx context.Context, raw RawImage) (SourceImage, error) {
	img, err := decode.Decode(ctx, raw.Data)
	if err != nil {
		if ctx.Err() != nil {
			return SourceImage{}, err
		}
		return SourceImage{}, fmt.Errorf("%w:%w", ErrDecode, err)
	}
	b := img.Bounds()
	return SourceImage{
		Name:   raw.Name,
		MIME:   decode.DetectMIME(raw.MIME, raw.Data),
		Width:  b.Dx(),
		Height: b.Dy(),
		Image:  img,
	}, nil
}

// LoadLogo decodes raw as the watermark. Failures wrap ErrDecode.
func LoadLogo(ctx context.Context, raw RawImage) (*LogoAsset, error) {
	src, err := LoadSource(ctx, raw)
	if err != nil {
		return nil, err
	}
	return &LogoAsset{Width: src.Width, Height: src.Height, Image: src.Image}, nil
}
