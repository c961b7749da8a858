package encode

const (
	// MaxBytes is the size above which a lossy result is encoded a second time.
	MaxBytes = 2 << 20
	// FallbackFactor scales the quality of the second encode.
	FallbackFactor = 0.7

	MinQuality = 0.3
	MaxQuality = 0.9
)

// AdaptiveQuality lowers the base quality for large images and clamps the
// result to [MinQuality, MaxQuality].
//
//	longest side > 2000: max(0.4, q*0.7)
//	longest side > 1000: max(0.5, q*0.8)
func AdaptiveQuality(base float64, width, height int) float64 {
	q := base
	switch longest := max(width, height); {
	case longest > 2000:
		q = max(0.4, q*0.7)
	case longest > 1000:
		q = max(0.5, q*0.8)
	}
	return min(max(q, MinQuality), MaxQuality)
}
