package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/tinypng/export"
	"github.com/tsawler/tinypng/format"
	"github.com/tsawler/tinypng/internal/logging"
	"github.com/tsawler/tinypng/internal/oops"
	"github.com/tsawler/tinypng/model"
)

func newDecodeCommand(a *app) *cobra.Command {
	var formatName string
	var thumbnail int

	cmd := &cobra.Command{
		Use:   "decode <src> <dst>",
		Short: "Decode a PNG and write it in another format",
		Long: "Decode a PNG and write the pixels as PPM, PAM, BMP, TIFF or PNG. The output " +
			"format comes from the destination extension unless --format is given. " +
			"A source or destination of - means standard input or output.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]

			outFormat, err := outputFormat(dst, formatName)
			if err != nil {
				return err
			}

			data, err := a.read(cmd.Context(), src)
			if err != nil {
				return err
			}
			img, err := a.decoder(data).Image()
			if err != nil {
				return explain(err, data)
			}
			logging.Info().
				Str("source", src).
				Uint32("width", img.Width).
				Uint32("height", img.Height).
				Stringer("pixel_type", img.PixelType).
				Msg("decoded")

			if thumbnail > 0 {
				img, err = export.Thumbnail(img, thumbnail)
				if err != nil {
					return err
				}
			}

			if dst == "-" {
				err = export.Write(cmd.OutOrStdout(), img, outFormat)
			} else {
				err = writeFile(dst, img, outFormat)
			}
			if err != nil {
				return err
			}

			logging.Debug().Str("destination", dst).Stringer("format", outFormat).Msg("wrote output")
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "", "output format: ppm, pam, bmp, tiff or png")
	cmd.Flags().IntVar(&thumbnail, "thumbnail", 0, "scale so the longer side is at most N pixels")
	return cmd
}

func outputFormat(dst, name string) (format.Format, error) {
	if name != "" {
		return export.ParseFormat(name)
	}
	if dst == "-" {
		return format.Unknown, oops.New(nil, "--format is required when writing to standard output")
	}
	return export.FormatFromName(dst)
}

func writeFile(path string, img *model.Image, f format.Format) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return oops.New(err, "failed to create output file")
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = oops.New(cerr, "failed to close output file")
		}
	}()
	return export.Write(out, img, f)
}
