package geometry

import "gonum.org/v1/gonum/spatial/r2"

type Anchor string

const (
	TopLeft     Anchor = "top-left"
	TopRight    Anchor = "top-right"
	BottomLeft  Anchor = "bottom-left"
	BottomRight Anchor = "bottom-right"
)

func (a Anchor) right() bool {
	return a == TopRight || a == BottomRight
}

func (a Anchor) bottom() bool {
	return a == BottomLeft || a == BottomRight
}

// Params is the subset of a run configuration that places the logo.
type Params struct {
	Anchor           Anchor
	MarginHorizontal float64
	MarginVertical   float64
	LogoWidthPercent float64

	Plate             bool
	PaddingHorizontal float64
	PaddingVertical   float64
}

type Rect struct {
	X, Y, W, H float64
}

func newRect(origin, size r2.Vec) Rect {
	return Rect{X: origin.X, Y: origin.Y, W: size.X, H: size.Y}
}

func (r Rect) Min() r2.Vec { return r2.Vec{X: r.X, Y: r.Y} }

func (r Rect) Max() r2.Vec { return r2.Add(r.Min(), r2.Vec{X: r.W, Y: r.H}) }

// Box returns r as an axis-aligned box.
func (r Rect) Box() r2.Box { return r2.Box{Min: r.Min(), Max: r.Max()} }

// Contains reports whether o lies inside r, edges included.
func (r Rect) Contains(o Rect) bool {
	a, b := r.Box(), o.Box()
	return a.Min.X <= b.Min.X && a.Min.Y <= b.Min.Y &&
		b.Max.X <= a.Max.X && b.Max.Y <= a.Max.Y
}

type Geometry struct {
	Logo Rect
	// Plate is nil when the background plate is disabled.
	Plate *Rect
}

// Resolve places a logoW x logoH logo on a sourceW x sourceH image.
//
// The logo is scaled uniformly to LogoWidthPercent of the source width and
// offset from the anchored corner by the margins. Results are not clamped to
// the source bounds; a rectangle may lie partly or fully off-canvas.
func Resolve(sourceW, sourceH, logoW, logoH float64, p Params) Geometry {
	width := sourceW * (p.LogoWidthPercent / 100)
	ratio := width / logoW
	size := r2.Vec{X: width, Y: logoH * ratio}

	origin := r2.Vec{X: p.MarginHorizontal, Y: p.MarginVertical}
	if p.Anchor.right() {
		origin.X = sourceW - (size.X + p.MarginHorizontal)
	}
	if p.Anchor.bottom() {
		origin.Y = sourceH - (size.Y + p.MarginVertical)
	}

	g := Geometry{Logo: newRect(origin, size)}
	if p.Plate {
		pad := r2.Vec{X: p.PaddingHorizontal, Y: p.PaddingVertical}
		plate := newRect(r2.Sub(origin, pad), r2.Add(size, r2.Scale(2, pad)))
		g.Plate = &plate
	}
	return g
}
