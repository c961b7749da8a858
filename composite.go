package logomark

import (
	"context"
	"fmt"

	"github.com/yyyoichi/logomark/internal/encode"
	"github.com/yyyoichi/logomark/internal/geometry"
	"github.com/yyyoichi/logomark/internal/render"
)

// Composite draws logo (and the background plate, if enabled) onto a copy of
// src and encodes the result.
//
// Process:
//  1. Copies src onto a working surface of the same size.
//  2. Resolves the logo and plate rectangles from cfg.
//  3. Fills the plate with the background colour at its opacity.
//  4. Scales the logo into its rectangle over the plate.
//  5. Encodes the surface according to the Exporter's mode.
//
// With a nil logo, steps 2-4 are skipped and the surface is written as PNG.
// src and logo are not modified.
func (e *Exporter) Composite(ctx context.Context, src SourceImage, logo *LogoAsset, cfg Config) (EncodedAsset, error) {
	if logo != nil {
		if err := cfg.Validate(e.strictColor); err != nil {
			return EncodedAsset{}, err
		}
		e.warnColor(cfg)
	}
	return e.composite(ctx, src, logo, cfg)
}

func (e *Exporter) composite(ctx context.Context, src SourceImage, logo *LogoAsset, cfg Config) (EncodedAsset, error) {
	if err := ctx.Err(); err != nil {
		return EncodedAsset{}, err
	}
	surface := render.NewSurface(src.Image)

	var (
		res encode.Result
		err error
	)
	if logo == nil {
		res, err = encode.Lossless(src.Name, surface)
	} else {
		g := geometry.Resolve(
			float64(src.Width), float64(src.Height),
			float64(logo.Width), float64(logo.Height),
			cfg.params(),
		)
		if g.Plate != nil {
			rgb, _ := cfg.plateColor()
			render.FillPlate(surface, *g.Plate, render.PlateColor(rgb, cfg.Background.Opacity))
		}
		render.DrawLogo(surface, g.Logo, logo.Image)

		if err := ctx.Err(); err != nil {
			return EncodedAsset{}, err
		}
		res, err = e.encoder().Encode(src.Name, src.MIME, surface, cfg.Quality)
	}
	if err != nil {
		return EncodedAsset{}, fmt.Errorf("%w:%w", ErrEncode, err)
	}
	return EncodedAsset{
		FileName: res.Name,
		MIMEType: res.MIME,
		Bytes:    res.Data,
		Width:    src.Width,
		Height:   src.Height,
		Quality:  res.Quality,
		Attempts: res.Attempts,
	}, nil
}

func (e *Exporter) warnColor(cfg Config) {
	if !cfg.Background.Enabled {
		return
	}
	if rgb, ok := cfg.plateColor(); !ok {
		e.logger.Warn().
			Str("color", cfg.Background.Color).
			Str("fill", rgb.CSS(cfg.Background.Opacity)).
			Msg("malformed background color, drawing degraded plate")
	}
}
