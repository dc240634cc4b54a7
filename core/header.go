package core

import (
	"encoding/binary"
	"math"

	"github.com/tsawler/tinypng/model"
)

// Colour types, as per the PNG spec. Only truecolor and truecolor with
// alpha are decoded; the rest are listed so messages can name them.
const (
	ColorGrayscale      = 0
	ColorTrueColor      = 2
	ColorIndexed        = 3
	ColorGrayscaleAlpha = 4
	ColorTrueColorAlpha = 6
)

// CompressionZlib is the only compression method defined by PNG.
const CompressionZlib = 0

const headerLength = 13

// Header is the decoded IHDR chunk. Fields other than the dimensions are the
// raw bytes from the stream; validation happens when the image is assembled.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

func (*Header) isChunk() {}

// Type returns "IHDR".
func (*Header) Type() string { return TypeHeader }

// ParseHeader decodes an IHDR payload. The payload must be exactly 13 bytes.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) != headerLength {
		return nil, Errorf(InvalidIHDRLength, "got %d bytes, want %d", len(data), headerLength)
	}
	return &Header{
		Width:             binary.BigEndian.Uint32(data[0:4]),
		Height:            binary.BigEndian.Uint32(data[4:8]),
		BitDepth:          data[8],
		ColorType:         data[9],
		CompressionMethod: data[10],
		FilterMethod:      data[11],
		InterlaceMethod:   data[12],
	}, nil
}

// PixelType maps the colour type onto the pixel layouts the decoder
// produces.
func (h *Header) PixelType() (model.PixelType, error) {
	switch h.ColorType {
	case ColorTrueColor:
		return model.RGB, nil
	case ColorTrueColorAlpha:
		return model.RGBA, nil
	default:
		return 0, Errorf(Unimplemented, "colour type %d (%s)", h.ColorType, colorTypeName(h.ColorType))
	}
}

// Validate rejects header values outside the decodable subset: zero
// dimensions, bit depths other than 8, a non-zero filter method, and
// interlacing. Colour type and compression method are checked by
// PixelType and the decompression stage respectively.
func (h *Header) Validate() error {
	if h.Width == 0 || h.Height == 0 {
		return Errorf(Unimplemented, "zero dimension %dx%d", h.Width, h.Height)
	}
	if h.BitDepth != 8 {
		return Errorf(Unimplemented, "bit depth %d", h.BitDepth)
	}
	if h.FilterMethod != 0 {
		return Errorf(Unimplemented, "filter method %d", h.FilterMethod)
	}
	if h.InterlaceMethod != 0 {
		return Errorf(Unimplemented, "interlace method %d", h.InterlaceMethod)
	}
	return nil
}

// Stride returns the number of pixel bytes in one row, excluding the
// filter-type byte.
func (h *Header) Stride(pt model.PixelType) uint64 {
	return uint64(h.Width) * uint64(pt.BytesPerPixel())
}

// InflatedSize returns height*(1+stride), the size of the filtered scanline
// stream. ok is false if the size does not fit in an int.
func (h *Header) InflatedSize(pt model.PixelType) (size int, ok bool) {
	rowSize := 1 + h.Stride(pt)
	total := rowSize * uint64(h.Height)
	if total/rowSize != uint64(h.Height) || total > math.MaxInt {
		return 0, false
	}
	return int(total), true
}

// Pixels returns width*height.
func (h *Header) Pixels() uint64 {
	return uint64(h.Width) * uint64(h.Height)
}

// ColorTypeName names the colour type, e.g. "truecolor+alpha".
func (h *Header) ColorTypeName() string {
	return colorTypeName(h.ColorType)
}

func colorTypeName(ct uint8) string {
	switch ct {
	case ColorGrayscale:
		return "grayscale"
	case ColorTrueColor:
		return "truecolor"
	case ColorIndexed:
		return "indexed"
	case ColorGrayscaleAlpha:
		return "grayscale+alpha"
	case ColorTrueColorAlpha:
		return "truecolor+alpha"
	default:
		return "undefined"
	}
}
