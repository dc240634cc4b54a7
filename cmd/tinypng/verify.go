package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/tinypng/core"
	"github.com/tsawler/tinypng/internal/logging"
	"github.com/tsawler/tinypng/internal/oops"
)

func newVerifyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <src>...",
		Short: "Decode each input and report whether it succeeded",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, src := range args {
				if err := a.verify(cmd, src); err != nil {
					failed++
					kind, _ := core.KindOf(err)
					fmt.Fprintf(out, "%s: FAIL %s: %v\n", src, kind, err)
					logging.Debug().Err(err).Str("source", src).Msg("verify failed")
				}
			}
			if failed > 0 {
				return oops.New(nil, "%d of %d inputs failed", failed, len(args))
			}
			return nil
		},
	}
}

func (a *app) verify(cmd *cobra.Command, src string) error {
	data, err := a.read(cmd.Context(), src)
	if err != nil {
		return err
	}
	img, err := a.decoder(data).Image()
	if err != nil {
		return explain(err, data)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: OK %dx%d %s\n", src, img.Width, img.Height, img.PixelType)
	return nil
}
