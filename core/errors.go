package core

import (
	"errors"
	"fmt"
)

// Kind classifies a decode failure. The set is closed: every error returned
// by the decoder carries exactly one of these kinds.
type Kind int

const (
	// Io reports a failure of the underlying byte source, including a
	// stream that ends early and a corrupt zlib stream.
	Io Kind = iota
	// InvalidSignature reports that the first 8 bytes are not the PNG magic.
	InvalidSignature
	// InvalidStartingChunk reports that the first chunk is not IHDR.
	InvalidStartingChunk
	// Unimplemented reports a valid but unsupported feature: an unknown
	// critical chunk, a colour type, bit depth or interlace method outside
	// the supported subset.
	Unimplemented
	// InvalidIHDRLength reports an IHDR payload that is not 13 bytes.
	InvalidIHDRLength
	// InvalidPLTESize reports a PLTE payload that is not 1..256 RGB triples.
	InvalidPLTESize
	// UnsupportedCompressionMethod reports a compression method other than zlib.
	UnsupportedCompressionMethod
	// InvalidFilterType reports a scanline filter byte outside 0..4.
	InvalidFilterType
	// MismatchedCrc reports a chunk whose stored CRC-32 does not match.
	MismatchedCrc
)

var kindNames = [...]string{
	Io:                           "Io",
	InvalidSignature:             "InvalidSignature",
	InvalidStartingChunk:         "InvalidStartingChunk",
	Unimplemented:                "Unimplemented",
	InvalidIHDRLength:            "InvalidIHDRLength",
	InvalidPLTESize:              "InvalidPLTESize",
	UnsupportedCompressionMethod: "UnsupportedCompressionMethod",
	InvalidFilterType:            "InvalidFilterType",
	MismatchedCrc:                "MismatchedCrc",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the error type returned by every decoding operation.
type Error struct {
	Kind Kind
	// Detail is a human-readable elaboration, possibly empty.
	Detail string
	// Err is the underlying cause, if any (for example the I/O error).
	Err error
}

func (e *Error) Error() string {
	msg := "png: " + e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, core.ErrMismatchedCrc) matches any CRC failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for use with errors.Is.
var (
	ErrIo                           = &Error{Kind: Io}
	ErrInvalidSignature             = &Error{Kind: InvalidSignature}
	ErrInvalidStartingChunk         = &Error{Kind: InvalidStartingChunk}
	ErrUnimplemented                = &Error{Kind: Unimplemented}
	ErrInvalidIHDRLength            = &Error{Kind: InvalidIHDRLength}
	ErrInvalidPLTESize              = &Error{Kind: InvalidPLTESize}
	ErrUnsupportedCompressionMethod = &Error{Kind: UnsupportedCompressionMethod}
	ErrInvalidFilterType            = &Error{Kind: InvalidFilterType}
	ErrMismatchedCrc                = &Error{Kind: MismatchedCrc}
)

// ErrChunkTooLarge is wrapped in an Io error when a chunk declares a length
// above the reader's limit.
var ErrChunkTooLarge = errors.New("png: chunk length exceeds limit")

// Errorf builds an *Error of the given kind with a formatted detail.
func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// IoError wraps a byte-source failure. Errors that already carry a Kind are
// returned unchanged.
func IoError(err error, detail string) error {
	var pe *Error
	if errors.As(err, &pe) {
		return err
	}
	return &Error{Kind: Io, Detail: detail, Err: err}
}

// KindOf returns the kind carried by err. Errors that did not originate in
// the decoder are reported as Io. ok is false when err is nil.
func KindOf(err error) (kind Kind, ok bool) {
	if err == nil {
		return 0, false
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return Io, true
}
