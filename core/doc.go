// Package core provides low-level PNG parsing primitives.
//
// This package implements the structural layer of the PNG format: the
// signature, chunk framing and CRC-32 verification, and the two critical
// chunks that carry metadata (IHDR and PLTE). It knows nothing about
// compression or scanline filtering; see the reader package for the full
// decoding pipeline.
//
// # Chunks
//
// Every chunk is framed as
//
//	length (4, big-endian) | type (4, ASCII) | payload (length) | CRC-32 (4, big-endian)
//
// where the CRC covers the type code and the payload. [ChunkReader] frames
// records into [RawChunk] values and [RawChunk.Interpret] maps them onto the
// closed set of [Chunk] implementations:
//
//   - [*Header] - IHDR, image geometry and encoding parameters
//   - [Palette] - PLTE, validated for shape only
//   - [ImageData] - IDAT, one slice of the zlib stream
//   - [End] - IEND
//
// Unknown chunks whose type starts with a lowercase letter (ancillary) are
// dropped. Unknown chunks whose type starts with an uppercase letter
// (critical) fail with [Unimplemented].
//
// # Errors
//
// All failures are [*Error] values carrying one [Kind] from a closed set.
// Match them with errors.Is against the sentinels:
//
//	if errors.Is(err, core.ErrMismatchedCrc) {
//	    // corrupt or tampered chunk
//	}
//
// or switch on [KindOf].
package core
