package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsawler/tinypng/core"
)

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <src>",
		Short: "List every chunk with its length and CRC status",
		Long: "List every chunk in the stream, including the ancillary chunks the decoder " +
			"skips. CRC mismatches are reported but do not stop the listing.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.read(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return inspect(cmd.OutOrStdout(), data, a.cfg.Decode.MaxChunkLength)
		},
	}
}

// inspect writes one line per framed chunk. It stops at IEND or at the first
// framing error.
func inspect(out io.Writer, data []byte, maxChunkLength uint32) error {
	r := bytes.NewReader(data)
	if err := core.ReadSignature(r); err != nil {
		return explain(err, data)
	}

	cr := core.NewChunkReader(r)
	cr.SetMaxLength(maxChunkLength)

	fmt.Fprintf(out, "%-8s %-6s %10s  %-9s  %s\n", "OFFSET", "TYPE", "LENGTH", "CLASS", "CRC")
	mismatches := 0
	for {
		offset := len(data) - r.Len()
		raw, err := cr.ReadRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintf(out, "stream ends without IEND\n")
			}
			return err
		}

		class := "critical"
		if raw.Ancillary() {
			class = "ancillary"
		}
		status := "ok"
		if raw.Verify() != nil {
			status = fmt.Sprintf("MISMATCH (stored %08x, computed %08x)", raw.CRC, core.Checksum(raw.Type, raw.Data))
			mismatches++
		}
		fmt.Fprintf(out, "%-8d %-6q %10d  %-9s  %s\n", offset, raw.Type, len(raw.Data), class, status)

		if raw.Type == core.TypeEnd {
			break
		}
	}

	if trailing := r.Len(); trailing > 0 {
		fmt.Fprintf(out, "%d bytes after IEND\n", trailing)
	}
	if mismatches > 0 {
		return core.Errorf(core.MismatchedCrc, "%d chunk(s) failed the CRC check", mismatches)
	}
	return nil
}
