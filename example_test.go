package logomark_test

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/yyyoichi/logomark"
)

func Example_export() {
	// Create a simple gradient photo (800x600 pixels) and a flat logo (200x100 pixels)
	photo := image.NewRGBA(image.Rect(0, 0, 800, 600))
	for y := 0; y < photo.Bounds().Dy(); y++ {
		for x := 0; x < photo.Bounds().Dx(); x++ {
			photo.Set(x, y, color.RGBA{uint8(x * 255 / 800), uint8(y * 255 / 600), 128, 255})
		}
	}
	logo := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for i := range logo.Pix {
		logo.Pix[i] = 255
	}

	encode := func(name string, img image.Image) logomark.RawImage {
		var buf bytes.Buffer
		_ = png.Encode(&buf, img)
		return logomark.RawImage{Name: name, MIME: "image/png", Data: buf.Bytes()}
	}

	cfg := logomark.DefaultConfig()
	cfg.Anchor = logomark.BottomRight
	cfg.MarginHorizontal, cfg.MarginVertical = 10, 20
	cfg.LogoWidthPercent = 25
	cfg.Background.Enabled = true
	cfg.Background.Color = "#00ff00"

	archive, err := logomark.Export(
		context.Background(),
		[]logomark.RawImage{encode("photo.png", photo)},
		&logomark.RawImage{Name: "logo.png", Data: encode("logo.png", logo).Data},
		cfg,
	)
	if err != nil {
		fmt.Printf("Error exporting: %v\n", err)
		return
	}

	fmt.Println(archive.Name)
	for _, e := range archive.Report.Entries {
		fmt.Printf("%s -> %s (%s, %dx%d, quality %.2f)\n", e.Source, e.Name, e.MIME, e.Width, e.Height, e.Quality)
	}

	// Output:
	// images_with_logo.zip
	// photo.png -> photo.jpg (image/jpeg, 800x600, quality 0.80)
}
