package logomark

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	blue = color.NRGBA{B: 255, A: 255}
	red  = color.NRGBA{R: 255, A: 255}
)

func at(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func assertColor(t *testing.T, want, got color.NRGBA, msg string) {
	t.Helper()
	assert.InDelta(t, int(want.R), int(got.R), 1, "%s R", msg)
	assert.InDelta(t, int(want.G), int(got.G), 1, "%s G", msg)
	assert.InDelta(t, int(want.B), int(got.B), 1, "%s B", msg)
	assert.InDelta(t, int(want.A), int(got.A), 1, "%s A", msg)
}

func bottomRightConfig() Config {
	cfg := DefaultConfig()
	cfg.Anchor = BottomRight
	cfg.MarginHorizontal = 10
	cfg.MarginVertical = 20
	cfg.LogoWidthPercent = 25
	cfg.Background = Background{
		Enabled:           true,
		Color:             "#00ff00",
		Opacity:           0.5,
		PaddingHorizontal: 5,
		PaddingVertical:   5,
	}
	return cfg
}

func TestExporter_Composite(t *testing.T) {
	ctx := context.Background()
	src, err := LoadSource(ctx, pngRaw(t, "photo.png", solid(800, 600, blue)))
	require.NoError(t, err)
	logo, err := LoadLogo(ctx, pngRaw(t, "logo.png", solid(200, 100, red)))
	require.NoError(t, err)
	assert.Equal(t, 800, src.Width)
	assert.Equal(t, "image/png", src.MIME)
	assert.Equal(t, 200, logo.Width)

	e, err := New(WithMode(ModePreserve))
	require.NoError(t, err)

	t.Run("logo and plate", func(t *testing.T) {
		out, err := e.Composite(ctx, src, logo, bottomRightConfig())
		require.NoError(t, err)
		assert.Equal(t, "photo.png", out.FileName)
		assert.Equal(t, "image/png", out.MIMEType)

		img, err := png.Decode(bytes.NewReader(out.Bytes))
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 800, 600), img.Bounds())

		// logo at {590,480,200,100}, plate at {585,475,210,110}
		assertColor(t, red, at(img, 600, 500), "logo")
		assertColor(t, red, at(img, 789, 579), "logo corner")
		assertColor(t, color.NRGBA{G: 128, B: 127, A: 255}, at(img, 587, 477), "plate")
		assertColor(t, color.NRGBA{G: 128, B: 127, A: 255}, at(img, 794, 584), "plate corner")
		assertColor(t, blue, at(img, 584, 500), "left of plate")
		assertColor(t, blue, at(img, 795, 500), "right of plate")
		assertColor(t, blue, at(img, 600, 474), "above plate")
		assertColor(t, blue, at(img, 600, 585), "below plate")
		assertColor(t, blue, at(img, 10, 10), "elsewhere")
	})

	t.Run("malformed color degrades", func(t *testing.T) {
		cfg := bottomRightConfig()
		cfg.Background.Color = "not-a-color"
		out, err := e.Composite(ctx, src, logo, cfg)
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(out.Bytes))
		require.NoError(t, err)
		assertColor(t, color.NRGBA{B: 127, A: 255}, at(img, 587, 477), "plate")
		assertColor(t, red, at(img, 600, 500), "logo")
	})

	t.Run("malformed color strict", func(t *testing.T) {
		strict, err := New(WithStrictColor())
		require.NoError(t, err)
		cfg := bottomRightConfig()
		cfg.Background.Color = "#12345"
		_, err = strict.Composite(ctx, src, logo, cfg)
		assert.ErrorIs(t, err, ErrInput)
	})

	t.Run("without logo", func(t *testing.T) {
		out, err := e.Composite(ctx, src, nil, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, "photo.png", out.FileName)
		assert.Zero(t, out.Quality)
		img, err := png.Decode(bytes.NewReader(out.Bytes))
		require.NoError(t, err)
		assertColor(t, blue, at(img, 0, 0), "origin")
	})

	t.Run("normalize", func(t *testing.T) {
		n, err := New()
		require.NoError(t, err)
		out, err := n.Composite(ctx, src, logo, bottomRightConfig())
		require.NoError(t, err)
		assert.Equal(t, "photo.jpg", out.FileName)
		assert.Equal(t, "image/jpeg", out.MIMEType)
		assert.Equal(t, 1, out.Attempts)
		assert.InDelta(t, 0.8, out.Quality, 1e-9)
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(out.Bytes))
		require.NoError(t, err)
		assert.Equal(t, 800, cfg.Width)
		assert.Equal(t, 600, cfg.Height)
	})

	t.Run("source is not modified", func(t *testing.T) {
		_, err := e.Composite(ctx, src, logo, bottomRightConfig())
		require.NoError(t, err)
		assertColor(t, blue, at(src.Image, 600, 500), "source")
		assertColor(t, red, at(logo.Image, 0, 0), "logo")
	})

	t.Run("unsupported container in preserve mode", func(t *testing.T) {
		webp := src
		webp.Name, webp.MIME = "photo.webp", "image/webp"
		_, err := e.Composite(ctx, webp, logo, bottomRightConfig())
		assert.ErrorIs(t, err, ErrEncode)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := e.Composite(ctx, src, logo, bottomRightConfig())
		assert.ErrorIs(t, err, context.Canceled)
	})
}
