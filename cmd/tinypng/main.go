// Command tinypng decodes, inspects and converts 8-bit truecolor PNG images.
//
// Usage:
//
//	tinypng decode photo.png photo.ppm
//	tinypng decode --thumbnail 128 s3://bucket/photo.png thumb.bmp
//	tinypng info photo.png
//	tinypng inspect photo.png
//	tinypng verify *.png
//
// Settings are read from TINYPNG_* environment variables and can be
// overridden by flags.
package main

import (
	"context"
	"os"

	"github.com/tsawler/tinypng/config"
	"github.com/tsawler/tinypng/internal/logging"
)

func main() {
	defer logging.LogPanics(nil)

	cfg, err := config.FromEnv()
	if err != nil {
		logging.Error().Err(err).Msg("invalid environment")
		os.Exit(2)
	}

	if err := newRootCommand(cfg).ExecuteContext(context.Background()); err != nil {
		logging.Error().Err(err).Msg("tinypng failed")
		os.Exit(1)
	}
}
