package core

import "github.com/tsawler/tinypng/model"

const maxPaletteEntries = 256

// Palette is a decoded PLTE chunk. It is validated for shape but the
// truecolor decoder never consults it for colour lookup.
type Palette struct {
	Entries []model.Pixel
}

func (Palette) isChunk() {}

// Type returns "PLTE".
func (Palette) Type() string { return TypePalette }

// ParsePalette decodes a PLTE payload into RGB entries. The payload length
// must be a multiple of 3 holding between 1 and 256 entries.
func ParsePalette(data []byte) (Palette, error) {
	n := len(data) / 3
	if len(data)%3 != 0 || n < 1 || n > maxPaletteEntries {
		return Palette{}, Errorf(InvalidPLTESize, "%d bytes", len(data))
	}

	entries := make([]model.Pixel, n)
	for i := range entries {
		entries[i] = model.Pixel{data[i*3], data[i*3+1], data[i*3+2]}
	}
	return Palette{Entries: entries}, nil
}
