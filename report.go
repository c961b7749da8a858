package logomark

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Archive is a finished export.
type Archive struct {
	// Name is the file name to offer for download.
	Name   string
	Data   []byte
	Report *Report
}

// Report describes the entries of one export run in input order.
type Report struct {
	RunID   string
	Mode    Mode
	Entries []ReportEntry
}

type ReportEntry struct {
	// Source is the input file name, Name the entry name in the archive.
	Source      string
	Name        string
	MIME        string
	Width       int
	Height      int
	SourceBytes int
	Bytes       int
	// Quality is 0 for lossless entries.
	Quality  float64
	Attempts int
}

func (r *Report) TotalBytes() int {
	return int(floats.Sum(r.column(func(e ReportEntry) float64 { return float64(e.Bytes) })))
}

// CompressionRatio is output bytes over input bytes, 0 when there is no input.
func (r *Report) CompressionRatio() float64 {
	in := floats.Sum(r.column(func(e ReportEntry) float64 { return float64(e.SourceBytes) }))
	if in == 0 {
		return 0
	}
	return float64(r.TotalBytes()) / in
}

// MeanQuality averages the quality of lossy entries, 0 when there are none.
func (r *Report) MeanQuality() float64 {
	var q []float64
	for _, e := range r.Entries {
		if e.Quality > 0 {
			q = append(q, e.Quality)
		}
	}
	if len(q) == 0 {
		return 0
	}
	return stat.Mean(q, nil)
}

// Fallbacks counts entries that needed a second encode.
func (r *Report) Fallbacks() int {
	var n int
	for _, e := range r.Entries {
		if e.Attempts > 1 {
			n++
		}
	}
	return n
}

func (r *Report) column(f func(ReportEntry) float64) []float64 {
	v := make([]float64, len(r.Entries))
	for i, e := range r.Entries {
		v[i] = f(e)
	}
	return v
}
