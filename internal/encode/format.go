package encode

import (
	"path"
	"strings"

	"github.com/disintegration/imaging"
)

type Format struct {
	MIME string
	// Ext is the canonical extension including the dot.
	Ext   string
	Lossy bool

	format imaging.Format
}

var (
	JPEG = Format{MIME: "image/jpeg", Ext: ".jpg", Lossy: true, format: imaging.JPEG}
	PNG  = Format{MIME: "image/png", Ext: ".png", format: imaging.PNG}
	GIF  = Format{MIME: "image/gif", Ext: ".gif", format: imaging.GIF}
	BMP  = Format{MIME: "image/bmp", Ext: ".bmp", format: imaging.BMP}
	TIFF = Format{MIME: "image/tiff", Ext: ".tiff", format: imaging.TIFF}
)

var formats = map[string]Format{
	"image/jpeg":     JPEG,
	"image/jpg":      JPEG,
	"image/pjpeg":    JPEG,
	"image/png":      PNG,
	"image/x-png":    PNG,
	"image/gif":      GIF,
	"image/bmp":      BMP,
	"image/x-bmp":    BMP,
	"image/x-ms-bmp": BMP,
	"image/tiff":     TIFF,
}

// FormatFromMIME returns the encodable format for a MIME type.
// Parameters such as "; charset=binary" are ignored.
func FormatFromMIME(mime string) (Format, bool) {
	mime, _, _ = strings.Cut(mime, ";")
	f, ok := formats[strings.ToLower(strings.TrimSpace(mime))]
	return f, ok
}

// OutputName replaces the extension of name with f's canonical extension.
func OutputName(name string, f Format) string {
	base := strings.TrimSuffix(name, path.Ext(name))
	if base == "" || strings.HasSuffix(base, "/") {
		base = name
	}
	return base + f.Ext
}
