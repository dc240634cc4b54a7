package tinypng

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/tsawler/tinypng/reader"
)

// Decoder provides a fluent interface for decoding PNG images.
// Each configuration method returns a new Decoder instance, making it
// safe to share a configured Decoder and derive variants from it.
type Decoder struct {
	// Source (exactly one is set)
	filename string
	src      io.Reader
	data     []byte
	hasData  bool

	// Configuration
	options DecodeOptions
}

// clone creates a shallow copy of the Decoder with a copy of options.
func (d *Decoder) clone() *Decoder {
	newDec := *d
	newDec.options = d.options.clone()
	return &newDec
}

// ============================================================================
// Configuration Methods (return new Decoder instance)
// ============================================================================

// MaxPixels rejects images with more than n pixels before allocating pixel
// memory. Zero removes the limit. The default is DefaultMaxPixels.
//
// Example:
//
//	img, err := tinypng.Open("upload.png").MaxPixels(1 << 20).Image()
func (d *Decoder) MaxPixels(n uint64) *Decoder {
	newDec := d.clone()
	newDec.options.maxPixels = n
	return newDec
}

// MaxChunkLength rejects chunks whose declared payload is longer than n
// bytes. Zero restores the PNG maximum.
func (d *Decoder) MaxChunkLength(n uint32) *Decoder {
	newDec := d.clone()
	newDec.options.maxChunkLength = n
	return newDec
}

// ExactPaeth computes the Paeth predictor without 8-bit truncation of its
// linear estimate, so output matches decoders such as image/png bit for bit.
func (d *Decoder) ExactPaeth() *Decoder {
	newDec := d.clone()
	newDec.options.exactPaeth = true
	return newDec
}

// Logger sends trace and debug events about the decode to l.
//
// Example:
//
//	logger := zerolog.New(os.Stderr).Level(zerolog.DebugLevel)
//	img, err := tinypng.Open("photo.png").Logger(logger).Image()
func (d *Decoder) Logger(l zerolog.Logger) *Decoder {
	newDec := d.clone()
	newDec.options.logger = &l
	return newDec
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Image decodes the whole stream and returns the pixel grid.
func (d *Decoder) Image() (*Image, error) {
	src, closeFn, err := d.open()
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return reader.Decode(src, d.options.readerOptions())
}

// Header reads only the signature and the IHDR chunk.
func (d *Decoder) Header() (*Header, error) {
	src, closeFn, err := d.open()
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return reader.ReadHeader(src, d.options.readerOptions())
}

// open resolves the configured source.
func (d *Decoder) open() (io.Reader, func(), error) {
	switch {
	case d.hasData:
		return bytes.NewReader(d.data), func() {}, nil
	case d.src != nil:
		return d.src, func() {}, nil
	case d.filename != "":
		f, err := os.Open(d.filename)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open file: %w", err)
		}
		return f, func() { f.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("no source specified")
	}
}
