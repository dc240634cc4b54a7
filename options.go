package tinypng

import (
	"github.com/rs/zerolog"

	"github.com/tsawler/tinypng/reader"
)

// DefaultMaxPixels is the pixel limit applied unless MaxPixels is called:
// 2^28 pixels, a 1 GiB RGBA buffer.
const DefaultMaxPixels = 1 << 28

// DecodeOptions holds configuration for decoding.
type DecodeOptions struct {
	// Resource limits
	maxPixels      uint64
	maxChunkLength uint32

	// Reconstruction
	exactPaeth bool

	logger *zerolog.Logger
}

// defaultOptions returns the default decode options.
func defaultOptions() DecodeOptions {
	return DecodeOptions{
		maxPixels:      DefaultMaxPixels,
		maxChunkLength: 0, // PNG maximum
		exactPaeth:     false,
		logger:         nil,
	}
}

// clone creates a copy of DecodeOptions.
func (o DecodeOptions) clone() DecodeOptions {
	newOpts := o
	if o.logger != nil {
		l := *o.logger
		newOpts.logger = &l
	}
	return newOpts
}

// readerOptions converts to the reader package's configuration.
func (o DecodeOptions) readerOptions() reader.Options {
	mode := reader.PaethWrapping
	if o.exactPaeth {
		mode = reader.PaethExact
	}
	return reader.Options{
		Logger:         o.logger,
		MaxPixels:      o.maxPixels,
		MaxChunkLength: o.maxChunkLength,
		PaethMode:      mode,
	}
}
