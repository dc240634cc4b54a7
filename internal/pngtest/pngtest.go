// Package pngtest builds PNG streams in memory for tests: chunk framing with
// correct CRCs, IHDR payloads, zlib compression and forward scanline
// filtering.
package pngtest

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/klauspost/compress/zlib"
)

// Signature is the PNG magic.
var Signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Chunk frames a payload as length | type | data | crc.
func Chunk(chunkType string, data []byte) []byte {
	var buf bytes.Buffer
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(len(data)))
	buf.Write(tmp[:])
	buf.WriteString(chunkType)
	buf.Write(data)
	binary.BigEndian.PutUint32(tmp[:], crc32.ChecksumIEEE(append([]byte(chunkType), data...)))
	buf.Write(tmp[:])
	return buf.Bytes()
}

// IHDR returns a 13-byte header payload for an 8-bit, non-interlaced image.
func IHDR(width, height uint32, colorType uint8) []byte {
	return IHDRFull(width, height, 8, colorType, 0, 0, 0)
}

// IHDRFull returns a header payload with every field specified.
func IHDRFull(width, height uint32, depth, colorType, compression, filter, interlace uint8) []byte {
	data := make([]byte, 13)
	binary.BigEndian.PutUint32(data[0:4], width)
	binary.BigEndian.PutUint32(data[4:8], height)
	data[8] = depth
	data[9] = colorType
	data[10] = compression
	data[11] = filter
	data[12] = interlace
	return data
}

// Compress zlib-compresses data.
func Compress(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

// Builder assembles a stream chunk by chunk.
type Builder struct {
	buf bytes.Buffer
}

// New returns a Builder that has already written the signature.
func New() *Builder {
	b := &Builder{}
	b.buf.Write(Signature)
	return b
}

// Chunk appends a framed chunk.
func (b *Builder) Chunk(chunkType string, data []byte) *Builder {
	b.buf.Write(Chunk(chunkType, data))
	return b
}

// Raw appends bytes verbatim.
func (b *Builder) Raw(data []byte) *Builder {
	b.buf.Write(data)
	return b
}

// Header appends an IHDR chunk.
func (b *Builder) Header(width, height uint32, colorType uint8) *Builder {
	return b.Chunk("IHDR", IHDR(width, height, colorType))
}

// IDAT appends one IDAT chunk holding data verbatim (already compressed).
func (b *Builder) IDAT(data []byte) *Builder {
	return b.Chunk("IDAT", data)
}

// End appends IEND.
func (b *Builder) End() *Builder {
	return b.Chunk("IEND", nil)
}

// Bytes returns the stream.
func (b *Builder) Bytes() []byte {
	return b.buf.Bytes()
}

// Encode builds a complete single-IDAT stream for rows of raw pixel bytes,
// filtering row i with filterTypes[i]. Paeth uses exact arithmetic when
// exactPaeth is set and 8-bit wrapping arithmetic otherwise.
func Encode(width, height uint32, colorType uint8, rows [][]byte, filterTypes []byte, exactPaeth bool) []byte {
	bpp := 3
	if colorType == 6 {
		bpp = 4
	}
	scanlines := Filter(rows, filterTypes, bpp, exactPaeth)
	return New().Header(width, height, colorType).IDAT(Compress(scanlines)).End().Bytes()
}

// Filter applies the forward PNG filters to rows and returns the scanline
// stream: one filter byte followed by the filtered row, per row.
func Filter(rows [][]byte, filterTypes []byte, bpp int, exactPaeth bool) []byte {
	var out []byte
	var prev []byte
	for r, row := range rows {
		ft := filterTypes[r]
		out = append(out, ft)
		for i, x := range row {
			var a, b, c uint8
			if i >= bpp {
				a = row[i-bpp]
			}
			if prev != nil {
				b = prev[i]
				if i >= bpp {
					c = prev[i-bpp]
				}
			}
			var pred uint8
			switch ft {
			case 1:
				pred = a
			case 2:
				pred = b
			case 3:
				pred = uint8((int(a) + int(b)) / 2)
			case 4:
				pred = paeth(a, b, c, exactPaeth)
			}
			out = append(out, x-pred)
		}
		prev = row
	}
	return out
}

func paeth(a, b, c uint8, exact bool) uint8 {
	var pa, pb, pc int
	if exact {
		p := int(a) + int(b) - int(c)
		pa, pb, pc = dist(p, int(a)), dist(p, int(b)), dist(p, int(c))
	} else {
		p := a + b - c
		pa, pb, pc = dist(int(p), int(a)), dist(int(p), int(b)), dist(int(p), int(c))
	}
	switch {
	case pa <= pb && pa <= pc:
		return a
	case pb <= pc:
		return b
	default:
		return c
	}
}

func dist(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}
