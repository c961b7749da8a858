package encode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

var ErrUnsupportedFormat = errors.New("unsupported output format")

type Mode int

const (
	// Normalize always encodes JPEG with the adaptive quality policy.
	Normalize Mode = iota
	// Preserve encodes in the source container at the requested quality.
	Preserve
)

func (m Mode) String() string {
	switch m {
	case Normalize:
		return "normalize"
	case Preserve:
		return "preserve"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

type Result struct {
	Name string
	MIME string
	Data []byte
	// Quality is the quality of the kept encode, 0 for lossless output.
	Quality  float64
	Attempts int
}

type Encoder struct {
	Mode Mode
	// Limit overrides MaxBytes when positive.
	Limit int
}

// Encode encodes a composited surface.
func (e Encoder) Encode(name, srcMIME string, img image.Image, quality float64) (Result, error) {
	if e.Mode == Preserve {
		return e.preserve(name, srcMIME, img, quality)
	}
	return e.normalize(name, img, quality)
}

func (e Encoder) normalize(name string, img image.Image, quality float64) (Result, error) {
	b := img.Bounds()
	q := AdaptiveQuality(quality, b.Dx(), b.Dy())
	data, err := encode(img, JPEG, q)
	if err != nil {
		return Result{}, err
	}
	attempts := 1
	if len(data) > e.limit() {
		q *= FallbackFactor
		if data, err = encode(img, JPEG, q); err != nil {
			return Result{}, err
		}
		attempts++
	}
	return Result{
		Name:     OutputName(name, JPEG),
		MIME:     JPEG.MIME,
		Data:     data,
		Quality:  q,
		Attempts: attempts,
	}, nil
}

func (e Encoder) preserve(name, srcMIME string, img image.Image, quality float64) (Result, error) {
	f, ok := FormatFromMIME(srcMIME)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, srcMIME)
	}
	data, err := encode(img, f, quality)
	if err != nil {
		return Result{}, err
	}
	r := Result{Name: name, MIME: f.MIME, Data: data, Attempts: 1}
	if f.Lossy {
		r.Quality = quality
	}
	return r, nil
}

// Lossless encodes img as PNG under name with a ".png" extension.
func Lossless(name string, img image.Image) (Result, error) {
	data, err := encode(img, PNG, 0)
	if err != nil {
		return Result{}, err
	}
	return Result{Name: OutputName(name, PNG), MIME: PNG.MIME, Data: data, Attempts: 1}, nil
}

func (e Encoder) limit() int {
	if e.Limit > 0 {
		return e.Limit
	}
	return MaxBytes
}

func encode(img image.Image, f Format, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f.format, imaging.JPEGQuality(jpegQuality(quality))); err != nil {
		return nil, fmt.Errorf("encode %s: %w", f.MIME, err)
	}
	return buf.Bytes(), nil
}

// jpegQuality maps (0,1] onto the 1..100 scale of image/jpeg.
func jpegQuality(q float64) int {
	return min(max(int(math.Round(q*100)), 1), 100)
}
