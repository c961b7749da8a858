package logomark

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yyyoichi/logomark/internal/encode"
)

type Option func(*Exporter) error

// WithMode selects ModeNormalize (default) or ModePreserve.
func WithMode(m Mode) Option {
	return func(e *Exporter) error {
		switch m {
		case encode.Normalize, encode.Preserve:
			e.mode = m
			return nil
		}
		return fmt.Errorf("%w: unknown mode %v", ErrInput, m)
	}
}

// WithWorkers bounds the number of images processed at once.
func WithWorkers(n int) Option {
	return func(e *Exporter) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInput, n)
		}
		e.workers = n
		return nil
	}
}

// WithRequireLogo controls whether a run without a logo is refused.
// When false, images are re-encoded losslessly as PNG.
func WithRequireLogo(require bool) Option {
	return func(e *Exporter) error {
		e.requireLogo = require
		return nil
	}
}

// WithStrictColor rejects a malformed background colour with ErrInput
// instead of drawing the degraded fill.
func WithStrictColor() Option {
	return func(e *Exporter) error {
		e.strictColor = true
		return nil
	}
}

// WithSizeLimit changes the byte size above which a normalized image is
// encoded a second time at lower quality. The default is 2 MiB.
func WithSizeLimit(n int) Option {
	return func(e *Exporter) error {
		if n < 1 {
			return fmt.Errorf("%w: size limit must be positive, got %d", ErrInput, n)
		}
		e.sizeLimit = n
		return nil
	}
}

// WithArchiveName sets the file name reported for the archive.
func WithArchiveName(name string) Option {
	return func(e *Exporter) error {
		if name == "" {
			return fmt.Errorf("%w: empty archive name", ErrInput)
		}
		e.archiveName = name
		return nil
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Exporter) error {
		e.logger = l
		return nil
	}
}
