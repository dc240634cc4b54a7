// Package reader provides the high-level PNG decoding pipeline.
//
// This package orchestrates the lower-level core and filters packages:
// it checks the signature, frames chunks until IEND, then assembles the
// image from the header and the concatenated IDAT stream.
//
// # Decoding
//
// Use [Decode] for a one-shot decode of any io.Reader:
//
//	img, err := reader.Decode(r, reader.Options{})
//
// Or use [Open] for a file; the returned Reader must be closed:
//
//	rd, err := reader.Open("image.png", reader.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rd.Close()
//	img, err := rd.Decode()
//
// # States
//
// A Reader moves through AwaitingSignature, ReadingChunks, Assembling and
// Done. Any failure moves it to Failed and is kept in [Reader.Err]. There
// are no retries and no partial images.
//
// # Limits
//
// [Options] caps the pixel count and chunk length so that a hostile header
// cannot force large allocations. Inflation never produces more than
// height*(1+stride) bytes.
package reader
