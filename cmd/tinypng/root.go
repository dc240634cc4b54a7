package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tsawler/tinypng"
	"github.com/tsawler/tinypng/config"
	"github.com/tsawler/tinypng/core"
	"github.com/tsawler/tinypng/format"
	"github.com/tsawler/tinypng/internal/logging"
	"github.com/tsawler/tinypng/internal/oops"
	"github.com/tsawler/tinypng/source"
)

// app carries the settings shared by every subcommand.
type app struct {
	cfg      config.Config
	logLevel string
	lang     string
}

func newRootCommand(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg, logLevel: cfg.LogLevel.String(), lang: "en"}

	root := &cobra.Command{
		Use:           "tinypng",
		Short:         "Decode 8-bit truecolor PNG images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(a.logLevel)
			if err != nil {
				return oops.New(err, "invalid --log-level")
			}
			a.cfg.LogLevel = level
			logging.Setup(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", a.logLevel, "log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.lang, "lang", a.lang, "language used to format numbers")
	flags.Uint64Var(&a.cfg.Decode.MaxPixels, "max-pixels", cfg.Decode.MaxPixels, "reject images with more pixels than this (0 = no limit)")
	flags.Uint32Var(&a.cfg.Decode.MaxChunkLength, "max-chunk-length", cfg.Decode.MaxChunkLength, "reject chunks longer than this many bytes (0 = PNG maximum)")
	flags.BoolVar(&a.cfg.Decode.ExactPaeth, "exact-paeth", cfg.Decode.ExactPaeth, "compute the Paeth predictor without 8-bit wraparound")
	flags.StringVar(&a.cfg.S3.Region, "s3-region", cfg.S3.Region, "S3 region")
	flags.StringVar(&a.cfg.S3.Endpoint, "s3-endpoint", cfg.S3.Endpoint, "S3-compatible endpoint URL")
	flags.StringVar(&a.cfg.S3.AccessKey, "s3-access-key", cfg.S3.AccessKey, "S3 access key")
	flags.StringVar(&a.cfg.S3.Secret, "s3-secret", cfg.S3.Secret, "S3 secret key")
	flags.BoolVar(&a.cfg.S3.PathStyle, "s3-path-style", cfg.S3.PathStyle, "use path-style S3 addressing")

	root.AddCommand(
		newDecodeCommand(a),
		newInfoCommand(a),
		newInspectCommand(a),
		newVerifyCommand(a),
	)
	return root
}

// decoder returns a configured decoder over data.
func (a *app) decoder(data []byte) *tinypng.Decoder {
	dec := tinypng.FromBytes(data).
		MaxPixels(a.cfg.Decode.MaxPixels).
		MaxChunkLength(a.cfg.Decode.MaxChunkLength).
		Logger(*logging.GlobalLogger())
	if a.cfg.Decode.ExactPaeth {
		dec = dec.ExactPaeth()
	}
	return dec
}

// read loads a whole source into memory.
func (a *app) read(ctx context.Context, location string) ([]byte, error) {
	rc, err := source.Open(ctx, location, a.cfg.S3)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, oops.New(err, "failed to read %s", location)
	}
	logging.Debug().Str("source", location).Int("bytes", len(data)).Msg("read source")
	return data, nil
}

// printer formats numbers for the --lang locale.
func (a *app) printer() (*message.Printer, error) {
	tag, err := language.Parse(a.lang)
	if err != nil {
		return nil, oops.New(err, "invalid --lang")
	}
	return message.NewPrinter(tag), nil
}

// explain adds a hint to signature failures when the input is recognisably
// some other format.
func explain(err error, data []byte) error {
	if !errors.Is(err, core.ErrInvalidSignature) {
		return err
	}
	if f := format.DetectFromMagic(data); f != format.Unknown && f != format.PNG {
		return fmt.Errorf("%w (input looks like %s)", err, f)
	}
	if bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}) {
		return fmt.Errorf("%w (signature damaged, possibly by a text-mode transfer)", err)
	}
	return err
}
