package main

import (
	"github.com/spf13/cobra"
)

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <src>",
		Short: "Print the image header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.printer()
			if err != nil {
				return err
			}
			data, err := a.read(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			h, err := a.decoder(data).Header()
			if err != nil {
				return explain(err, data)
			}

			out := cmd.OutOrStdout()
			p.Fprintf(out, "%s\n", args[0])
			p.Fprintf(out, "  dimensions:   %d x %d\n", h.Width, h.Height)
			p.Fprintf(out, "  colour type:  %d (%s)\n", h.ColorType, h.ColorTypeName())
			p.Fprintf(out, "  bit depth:    %d\n", h.BitDepth)
			p.Fprintf(out, "  compression:  %d\n", h.CompressionMethod)
			p.Fprintf(out, "  filter:       %d\n", h.FilterMethod)
			p.Fprintf(out, "  interlace:    %d\n", h.InterlaceMethod)
			p.Fprintf(out, "  pixels:       %d\n", h.Pixels())

			pt, err := h.PixelType()
			if err == nil {
				err = h.Validate()
			}
			if err != nil {
				p.Fprintf(out, "  decodable:    no (%v)\n", err)
				return nil
			}
			p.Fprintf(out, "  pixel type:   %s\n", pt)
			p.Fprintf(out, "  decoded size: %d bytes\n", h.Stride(pt)*uint64(h.Height))
			p.Fprintf(out, "  decodable:    yes\n")
			return nil
		},
	}
}
