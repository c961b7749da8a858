package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yyyoichi/logomark"
	"github.com/yyyoichi/logomark/internal/config"
)

var (
	configPath string
	logoPath   string
	outputPath string
	mode       string
	workers    int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "logomark [flags] <image>...",
	Short: "Place a logo on images and pack them into a zip archive",
	Long: `Place a logo on every image and write the results to one zip archive.

Settings are read from a YAML file (--config). Environment variables override it:
  LOGOMARK_MODE         normalize or preserve
  LOGOMARK_ANCHOR       top-left, top-right, bottom-left, bottom-right
  LOGOMARK_QUALITY      base quality in (0,1]
  LOGOMARK_LOGO_WIDTH   logo width in percent of the image width
  LOGOMARK_WORKERS      images processed at once

Examples:
  logomark --logo logo.png photos/*.jpg
  logomark -c logomark.yaml -l logo.png -o out.zip a.png b.webp`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "logomark.yaml", "configuration file")
	rootCmd.Flags().StringVarP(&logoPath, "logo", "l", "", "logo image")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "images_with_logo.zip", "archive to write")
	rootCmd.Flags().StringVar(&mode, "mode", "", "encoding mode: normalize or preserve")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0, "images processed at once (default: number of CPUs)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every image")
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	cfg, err := config.NewLoaderWithPath(configPath).Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("mode") {
		cfg.Mode = mode
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts = append(opts, logomark.WithLogger(logger), logomark.WithArchiveName(filepath.Base(outputPath)))
	exporter, err := logomark.New(opts...)
	if err != nil {
		return err
	}

	images := make([]logomark.RawImage, 0, len(args))
	for _, path := range args {
		raw, err := readImage(path)
		if err != nil {
			return err
		}
		images = append(images, raw)
	}
	var logo *logomark.RawImage
	if logoPath != "" {
		raw, err := readImage(logoPath)
		if err != nil {
			return err
		}
		logo = &raw
	}

	report, err := writeArchive(cmd.Context(), exporter, outputPath, images, logo, cfg.Watermark)
	if err != nil {
		return err
	}
	logger.Info().
		Str("archive", outputPath).
		Int("entries", len(report.Entries)).
		Int("bytes", report.TotalBytes()).
		Float64("mean_quality", report.MeanQuality()).
		Float64("ratio", report.CompressionRatio()).
		Int("fallbacks", report.Fallbacks()).
		Msg("archive written")
	return nil
}

func readImage(path string) (logomark.RawImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return logomark.RawImage{}, fmt.Errorf("failed to read image: %w", err)
	}
	return logomark.RawImage{Name: filepath.Base(path), Data: data}, nil
}

// writeArchive exports into a temporary file next to path and renames it on
// success, so a failed run leaves nothing behind.
func writeArchive(ctx context.Context, e *logomark.Exporter, path string, images []logomark.RawImage, logo *logomark.RawImage, cfg logomark.Config) (*logomark.Report, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".logomark-*.zip")
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}
	defer os.Remove(tmp.Name())

	report, err := e.ExportTo(ctx, tmp, images, logo, cfg)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to write archive: %w", cerr)
	}
	if err != nil {
		return nil, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, fmt.Errorf("failed to write archive: %w", err)
	}
	return report, nil
}
