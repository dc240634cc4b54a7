// Package tinypng provides a fluent API for decoding 8-bit truecolor PNG
// images into an in-memory pixel grid.
//
// Basic usage:
//
//	img, err := tinypng.Open("photo.png").Image()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(img.Width, img.Height, img.PixelType)
//
// With options:
//
//	img, err := tinypng.FromReader(r).
//	    MaxPixels(4096 * 4096).
//	    ExactPaeth().
//	    Image()
//
// Only truecolor (RGB) and truecolor with alpha (RGBA) at 8 bits per
// channel, without interlacing, are decoded. Everything else fails with a
// *core.Error whose Kind says why; see the core package.
//
// For lower-level control over the pipeline, use the reader package.
package tinypng

import (
	"io"

	"github.com/tsawler/tinypng/core"
	"github.com/tsawler/tinypng/model"
)

// Image is the decoded result.
type Image = model.Image

// Header is the decoded IHDR chunk.
type Header = core.Header

// Open returns a Decoder for the named file. The file is opened by the
// terminal operation and closed before it returns.
//
// Example:
//
//	img, err := tinypng.Open("photo.png").Image()
func Open(filename string) *Decoder {
	return &Decoder{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader returns a Decoder that reads from r. The caller keeps
// ownership of r.
//
// Example:
//
//	f, err := os.Open("photo.png")
//	if err != nil {
//	    // handle error
//	}
//	defer f.Close()
//	img, err := tinypng.FromReader(f).Image()
func FromReader(r io.Reader) *Decoder {
	return &Decoder{
		src:     r,
		options: defaultOptions(),
	}
}

// FromBytes returns a Decoder over an in-memory PNG.
func FromBytes(data []byte) *Decoder {
	return &Decoder{
		data:    data,
		hasData: true,
		options: defaultOptions(),
	}
}

// Decode decodes a PNG stream with the default options.
func Decode(r io.Reader) (*Image, error) {
	return FromReader(r).Image()
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	img := tinypng.Must(tinypng.Open("photo.png").Image())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
