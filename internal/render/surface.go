package render

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/yyyoichi/logomark/internal/geometry"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// NewSurface returns a working copy of src sized exactly to it, with its
// top-left corner at the origin.
func NewSurface(src image.Image) *image.NRGBA {
	return imaging.Clone(src)
}

// FillPlate blends c over dst inside r. Pixels outside r are untouched.
func FillPlate(dst draw.Image, r geometry.Rect, c color.NRGBA) {
	rect, ok := pixelRect(r)
	if !ok {
		return
	}
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

// DrawLogo scales logo into r and composites it over dst with bilinear filtering.
func DrawLogo(dst draw.Image, r geometry.Rect, logo image.Image) {
	if !finite(r) || r.W <= 0 || r.H <= 0 {
		return
	}
	b := logo.Bounds()
	if b.Empty() {
		return
	}
	sx := r.W / float64(b.Dx())
	sy := r.H / float64(b.Dy())
	// maps logo pixel space onto dst
	m := f64.Aff3{
		sx, 0, r.X - sx*float64(b.Min.X),
		0, sy, r.Y - sy*float64(b.Min.Y),
	}
	draw.BiLinear.Transform(dst, m, logo, b, draw.Over, nil)
}

func pixelRect(r geometry.Rect) (image.Rectangle, bool) {
	if !finite(r) {
		return image.Rectangle{}, false
	}
	return image.Rect(
		int(math.Round(r.X)),
		int(math.Round(r.Y)),
		int(math.Round(r.X+r.W)),
		int(math.Round(r.Y+r.H)),
	), true
}

func finite(r geometry.Rect) bool {
	for _, v := range [...]float64{r.X, r.Y, r.W, r.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
