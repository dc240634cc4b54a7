package core

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

// Chunk type codes interpreted by the decoder.
const (
	TypeHeader    = "IHDR"
	TypePalette   = "PLTE"
	TypeImageData = "IDAT"
	TypeEnd       = "IEND"
)

// MaxChunkLength is the largest payload length PNG allows (2^31-1).
const MaxChunkLength = 1<<31 - 1

// Chunk is one interpreted chunk. The set of implementations is closed:
// *Header, Palette, ImageData and End.
type Chunk interface {
	Type() string
	isChunk()
}

// ImageData is the payload of one IDAT chunk: a slice of the zlib stream.
type ImageData []byte

func (ImageData) isChunk() {}

// Type returns "IDAT".
func (ImageData) Type() string { return TypeImageData }

// End marks the IEND chunk.
type End struct{}

func (End) isChunk() {}

// Type returns "IEND".
func (End) Type() string { return TypeEnd }

// RawChunk is a framed chunk before interpretation.
type RawChunk struct {
	Type string
	Data []byte
	CRC  uint32
}

// Critical reports whether the chunk must be understood to decode the
// image. Critical chunk types start with an uppercase letter.
func (c *RawChunk) Critical() bool {
	return len(c.Type) > 0 && c.Type[0] >= 'A' && c.Type[0] <= 'Z'
}

// Ancillary reports whether the chunk may be skipped. Ancillary chunk types
// start with a lowercase letter.
func (c *RawChunk) Ancillary() bool {
	return len(c.Type) > 0 && c.Type[0] >= 'a' && c.Type[0] <= 'z'
}

// Checksum computes the CRC-32 (IEEE polynomial, as used by zlib) of a
// chunk's type code followed by its payload.
func Checksum(chunkType string, data []byte) uint32 {
	crc := crc32.NewIEEE()
	crc.Write([]byte(chunkType))
	crc.Write(data)
	return crc.Sum32()
}

// Verify checks the stored CRC against the type code and payload.
func (c *RawChunk) Verify() error {
	if got := Checksum(c.Type, c.Data); got != c.CRC {
		return Errorf(MismatchedCrc, "%s chunk: stored %08x, computed %08x", printableType(c.Type), c.CRC, got)
	}
	return nil
}

// Interpret turns a verified raw chunk into a Chunk. Unknown ancillary
// chunks yield (nil, nil); unknown critical chunks are Unimplemented.
func (c *RawChunk) Interpret() (Chunk, error) {
	switch c.Type {
	case TypeHeader:
		h, err := ParseHeader(c.Data)
		if err != nil {
			return nil, err
		}
		return h, nil
	case TypePalette:
		p, err := ParsePalette(c.Data)
		if err != nil {
			return nil, err
		}
		return p, nil
	case TypeImageData:
		return ImageData(c.Data), nil
	case TypeEnd:
		return End{}, nil
	}
	if c.Ancillary() {
		return nil, nil
	}
	return nil, Errorf(Unimplemented, "critical chunk %q", printableType(c.Type))
}

// ChunkReader frames chunks from a byte stream positioned just after the
// signature.
type ChunkReader struct {
	r      io.Reader
	tmp    [8]byte
	maxLen uint32
}

// NewChunkReader returns a ChunkReader that accepts payloads up to
// MaxChunkLength bytes.
func NewChunkReader(r io.Reader) *ChunkReader {
	return &ChunkReader{r: r, maxLen: MaxChunkLength}
}

// SetMaxLength lowers the largest payload the reader will allocate. Larger
// declared lengths fail with an Io error wrapping ErrChunkTooLarge.
func (cr *ChunkReader) SetMaxLength(n uint32) {
	if n == 0 || n > MaxChunkLength {
		n = MaxChunkLength
	}
	cr.maxLen = n
}

// ReadRaw reads one length-prefixed record without checking its CRC or
// interpreting its type.
func (cr *ChunkReader) ReadRaw() (*RawChunk, error) {
	if _, err := io.ReadFull(cr.r, cr.tmp[:8]); err != nil {
		return nil, IoError(err, "reading chunk header")
	}
	length := binary.BigEndian.Uint32(cr.tmp[:4])
	chunkType := string(cr.tmp[4:8])
	if length > cr.maxLen {
		return nil, &Error{
			Kind:   Io,
			Detail: fmt.Sprintf("%s chunk declares %d bytes, limit %d", printableType(chunkType), length, cr.maxLen),
			Err:    ErrChunkTooLarge,
		}
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(cr.r, data); err != nil {
		return nil, IoError(unexpected(err), "reading "+printableType(chunkType)+" payload")
	}
	if _, err := io.ReadFull(cr.r, cr.tmp[:4]); err != nil {
		return nil, IoError(unexpected(err), "reading "+printableType(chunkType)+" CRC")
	}

	return &RawChunk{
		Type: chunkType,
		Data: data,
		CRC:  binary.BigEndian.Uint32(cr.tmp[:4]),
	}, nil
}

// ReadChunk frames, verifies and interprets one chunk. It returns (nil, nil)
// for an ignored ancillary chunk; callers keep reading until End.
func (cr *ChunkReader) ReadChunk() (Chunk, error) {
	raw, err := cr.ReadRaw()
	if err != nil {
		return nil, err
	}
	if err := raw.Verify(); err != nil {
		return nil, err
	}
	return raw.Interpret()
}

// unexpected reports a clean EOF inside a chunk as io.ErrUnexpectedEOF.
func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// printableType renders a type code for messages, escaping non-ASCII bytes.
func printableType(t string) string {
	for i := 0; i < len(t); i++ {
		if t[i] < 0x20 || t[i] > 0x7e {
			return fmt.Sprintf("%q", t)
		}
	}
	return t
}
