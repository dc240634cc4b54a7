package filters

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/tsawler/tinypng/core"
)

// maxDeflateRatio bounds how far DEFLATE can expand its input, so a size
// hint taken from an untrusted header never preallocates more than the
// compressed data could produce.
const maxDeflateRatio = 1032

// Inflate decompresses a zlib stream. At most limit bytes are produced
// (limit <= 0 means no limit); bytes past the limit are inflated and
// discarded. The limit doubles as the capacity hint. A corrupt or truncated
// stream, including a bad checksum after the limit, is an Io error.
func Inflate(data []byte, limit int) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, core.IoError(err, "opening zlib stream")
	}
	defer reader.Close()

	var buf bytes.Buffer
	src := io.Reader(reader)
	if limit > 0 {
		buf.Grow(capacityHint(len(data), limit))
		src = io.LimitReader(reader, int64(limit))
	}

	if _, err := buf.ReadFrom(src); err != nil {
		return nil, core.IoError(err, "inflating image data")
	}

	// Run the stream to its end without keeping the surplus, so the Adler-32
	// trailer is always checked.
	if limit > 0 && buf.Len() == limit {
		if _, err := io.Copy(io.Discard, reader); err != nil {
			return nil, core.IoError(err, "inflating image data")
		}
	}

	return buf.Bytes(), nil
}

func capacityHint(compressed, limit int) int {
	if compressed < limit/maxDeflateRatio {
		if bound := compressed*maxDeflateRatio + 64; bound < limit {
			return bound
		}
	}
	return limit
}
