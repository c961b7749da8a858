package logomark

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yyyoichi/logomark/internal/archive"
	"golang.org/x/sync/errgroup"
)

// Export composites every image with logo and returns the zip archive.
// See ExportTo for the processing rules.
func (e *Exporter) Export(ctx context.Context, images []RawImage, logo *RawImage, cfg Config) (*Archive, error) {
	var buf bytes.Buffer
	report, err := e.ExportTo(ctx, &buf, images, logo, cfg)
	if err != nil {
		return nil, err
	}
	return &Archive{Name: e.archiveName, Data: buf.Bytes(), Report: report}, nil
}

// ExportTo streams the zip archive to w.
//
// The run is refused with ErrInput when images is empty, when a logo is
// required but nil, or when cfg is invalid. Images are decoded, composited
// and encoded concurrently, and appended to the archive in input order.
// The first failure, or cancellation of ctx, stops the run: no further
// images are started and the archive is left without its central directory,
// so whatever reached w is not a readable zip. Callers writing to a file
// should discard it on error.
func (e *Exporter) ExportTo(ctx context.Context, w io.Writer, images []RawImage, logo *RawImage, cfg Config) (*Report, error) {
	if err := e.check(images, logo, cfg); err != nil {
		return nil, err
	}
	report := &Report{RunID: uuid.NewString(), Mode: e.mode}
	log := e.logger.With().Str("run_id", report.RunID).Logger()
	log.Info().
		Int("images", len(images)).
		Stringer("mode", e.mode).
		Int("workers", e.workers).
		Bool("logo", logo != nil).
		Msg("export started")

	var asset *LogoAsset
	if logo != nil {
		var err error
		if asset, err = LoadLogo(ctx, *logo); err != nil {
			return nil, e.abort(log, &ItemError{Index: -1, Name: logo.Name, Err: err})
		}
		e.warnColor(cfg)
	}

	aw := archive.NewWriter(w)
	seq := archive.NewSequencer(aw)
	report.Entries = make([]ReportEntry, len(images))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, raw := range images {
		if gctx.Err() != nil {
			break
		}
		i, raw := i, raw
		g.Go(func() error {
			out, err := e.process(gctx, raw, asset, cfg)
			if err != nil {
				if gctx.Err() != nil && errors.Is(err, gctx.Err()) {
					return err
				}
				return &ItemError{Index: i, Name: raw.Name, Err: err}
			}
			report.Entries[i] = ReportEntry{
				Source:      raw.Name,
				MIME:        out.MIMEType,
				Width:       out.Width,
				Height:      out.Height,
				SourceBytes: len(raw.Data),
				Bytes:       len(out.Bytes),
				Quality:     out.Quality,
				Attempts:    out.Attempts,
			}
			log.Debug().
				Int("index", i).
				Str("source", raw.Name).
				Str("name", out.FileName).
				Float64("quality", out.Quality).
				Int("attempts", out.Attempts).
				Int("bytes", len(out.Bytes)).
				Msg("image done")
			entry := archive.Entry{Name: out.FileName, MIME: out.MIMEType, Data: out.Bytes}
			if err := seq.Put(i, entry); err != nil {
				return &ItemError{Index: i, Name: raw.Name, Err: fmt.Errorf("%w:%w", ErrArchive, err)}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, e.abort(log, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, e.abort(log, err)
	}
	if err := seq.Flush(len(images)); err != nil {
		return nil, e.abort(log, fmt.Errorf("%w:%w", ErrArchive, err))
	}

	for i, name := range aw.Names() {
		report.Entries[i].Name = name
	}
	log.Info().
		Int("entries", len(report.Entries)).
		Int("bytes", report.TotalBytes()).
		Int("fallbacks", report.Fallbacks()).
		Msg("export finished")
	return report, nil
}

func (e *Exporter) check(images []RawImage, logo *RawImage, cfg Config) error {
	if len(images) == 0 {
		return fmt.Errorf("%w: no images selected", ErrInput)
	}
	if logo == nil {
		if e.requireLogo {
			return fmt.Errorf("%w: no logo selected", ErrInput)
		}
		return nil
	}
	return cfg.Validate(e.strictColor)
}

// process runs one image through decode, composite and encode.
func (e *Exporter) process(ctx context.Context, raw RawImage, logo *LogoAsset, cfg Config) (EncodedAsset, error) {
	src, err := LoadSource(ctx, raw)
	if err != nil {
		return EncodedAsset{}, err
	}
	return e.composite(ctx, src, logo, cfg)
}

func (e *Exporter) abort(log zerolog.Logger, err error) error {
	log.Error().Err(err).Msg("export aborted")
	return err
}
