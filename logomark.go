// Package logomark places a logo on a batch of images and packs the results
// into a single zip archive.
package logomark

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/yyyoichi/logomark/internal/archive"
	"github.com/yyyoichi/logomark/internal/encode"
)

var (
	// ErrInput rejects a run before any image is processed.
	ErrInput  = errors.New("invalid input")
	ErrDecode = errors.New("cannot decode image")
	ErrEncode = errors.New("cannot encode image")
	// ErrArchive reports a failure of the underlying archive stream.
	ErrArchive = errors.New("cannot write archive")

	ErrUnsupportedFormat = encode.ErrUnsupportedFormat
)

// ItemError ties a per-image failure to its input.
// Index is -1 for the logo.
type ItemError struct {
	Index int
	Name  string
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// Mode selects how composited images are encoded.
type Mode = encode.Mode

const (
	// ModeNormalize writes JPEG with the adaptive quality policy and a ".jpg" name.
	ModeNormalize = encode.Normalize
	// ModePreserve keeps the source container and name and uses Config.Quality as is.
	ModePreserve = encode.Preserve
)

// Export is a convenience function that creates an Exporter and calls its Export method.
func Export(ctx context.Context, images []RawImage, logo *RawImage, cfg Config, opts ...Option) (*Archive, error) {
	e, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return e.Export(ctx, images, logo, cfg)
}

type Exporter struct {
	mode        encode.Mode
	workers     int
	requireLogo bool
	strictColor bool
	sizeLimit   int
	archiveName string
	logger      zerolog.Logger
}

// New initializes an Exporter. Without options it normalizes to JPEG,
// requires a logo, tolerates malformed background colours and uses one
// worker per CPU.
func New(opts ...Option) (*Exporter, error) {
	e := &Exporter{
		mode:        encode.Normalize,
		requireLogo: true,
		archiveName: archive.DefaultName,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.workers == 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e, nil
}

func (e *Exporter) encoder() encode.Encoder {
	return encode.Encoder{Mode: e.mode, Limit: e.sizeLimit}
}
