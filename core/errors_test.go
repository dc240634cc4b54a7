package core

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Io, "Io"},
		{InvalidSignature, "InvalidSignature"},
		{InvalidStartingChunk, "InvalidStartingChunk"},
		{Unimplemented, "Unimplemented"},
		{InvalidIHDRLength, "InvalidIHDRLength"},
		{InvalidPLTESize, "InvalidPLTESize"},
		{UnsupportedCompressionMethod, "UnsupportedCompressionMethod"},
		{InvalidFilterType, "InvalidFilterType"},
		{MismatchedCrc, "MismatchedCrc"},
		{Kind(42), "Kind(42)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: MismatchedCrc}, "png: MismatchedCrc"},
		{&Error{Kind: Unimplemented, Detail: "bit depth 16"}, "png: Unimplemented: bit depth 16"},
		{&Error{Kind: Io, Detail: "reading signature", Err: io.ErrUnexpectedEOF}, "png: Io: reading signature: unexpected EOF"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestError_Is(t *testing.T) {
	err := Errorf(InvalidFilterType, "row %d", 3)
	if !errors.Is(err, ErrInvalidFilterType) {
		t.Error("errors.Is did not match the same kind")
	}
	if errors.Is(err, ErrMismatchedCrc) {
		t.Error("errors.Is matched a different kind")
	}

	wrapped := fmt.Errorf("decoding: %w", err)
	if !errors.Is(wrapped, ErrInvalidFilterType) {
		t.Error("errors.Is did not see through fmt wrapping")
	}
}

func TestIoError(t *testing.T) {
	err := IoError(io.ErrUnexpectedEOF, "reading IDAT payload")
	if !errors.Is(err, ErrIo) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("IoError() = %v, want Io wrapping unexpected EOF", err)
	}

	typed := Errorf(MismatchedCrc, "x")
	if got := IoError(typed, "ignored"); got != typed {
		t.Errorf("IoError() rewrapped a decoder error: %v", got)
	}
}

func TestKindOf(t *testing.T) {
	if _, ok := KindOf(nil); ok {
		t.Error("KindOf(nil) reported ok")
	}
	if kind, ok := KindOf(Errorf(InvalidPLTESize, "4 bytes")); !ok || kind != InvalidPLTESize {
		t.Errorf("KindOf() = %v, %v", kind, ok)
	}
	if kind, ok := KindOf(errors.New("plain")); !ok || kind != Io {
		t.Errorf("KindOf(plain) = %v, %v, want Io", kind, ok)
	}
}
