package core

import (
	"bytes"
	"errors"
	"io"
)

// Signature is the 8-byte magic sequence that opens every PNG stream.
var Signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// HasSignature reports whether data starts with the PNG signature.
func HasSignature(data []byte) bool {
	return len(data) >= len(Signature) && bytes.Equal(data[:len(Signature)], Signature)
}

// ReadSignature consumes exactly 8 bytes from r and checks them against
// Signature. A stream that ends before 8 bytes cannot carry the signature
// and is reported as InvalidSignature (wrapping the EOF); any other read
// failure is Io.
func ReadSignature(r io.Reader) error {
	var buf [8]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return &Error{Kind: InvalidSignature, Detail: "stream too short", Err: err}
		}
		return IoError(err, "reading signature")
	}
	if !bytes.Equal(buf[:n], Signature) {
		return Errorf(InvalidSignature, "got % x", buf[:n])
	}
	return nil
}
