// Package format provides raster file format detection for the tinypng
// library.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a raster image format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PNG indicates a Portable Network Graphics image.
	PNG
	// JPEG indicates a JPEG/JFIF image.
	JPEG
	// GIF indicates a GIF image.
	GIF
	// BMP indicates a Windows bitmap.
	BMP
	// TIFF indicates a TIFF image (either byte order).
	TIFF
	// WebP indicates a WebP image in a RIFF container.
	WebP
	// QOI indicates a Quite OK Image.
	QOI
	// PPM indicates a binary Netpbm pixmap (P6).
	PPM
	// PAM indicates a Netpbm arbitrary map (P7).
	PAM
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case GIF:
		return "GIF"
	case BMP:
		return "BMP"
	case TIFF:
		return "TIFF"
	case WebP:
		return "WebP"
	case QOI:
		return "QOI"
	case PPM:
		return "PPM"
	case PAM:
		return "PAM"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case GIF:
		return ".gif"
	case BMP:
		return ".bmp"
	case TIFF:
		return ".tiff"
	case WebP:
		return ".webp"
	case QOI:
		return ".qoi"
	case PPM:
		return ".ppm"
	case PAM:
		return ".pam"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png":
		return PNG
	case ".jpg", ".jpeg", ".jfif":
		return JPEG
	case ".gif":
		return GIF
	case ".bmp", ".dib":
		return BMP
	case ".tif", ".tiff":
		return TIFF
	case ".webp":
		return WebP
	case ".qoi":
		return QOI
	case ".ppm", ".pnm":
		return PPM
	case ".pam":
		return PAM
	default:
		return Unknown
	}
}

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// DetectFromMagic checks leading magic bytes to determine format.
// This provides more reliable detection than extension-based detection.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return PNG
	case bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}):
		return JPEG
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return GIF
	case bytes.HasPrefix(data, []byte("BM")) && len(data) >= 14:
		return BMP
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return TIFF
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && string(data[8:12]) == "WEBP":
		return WebP
	case bytes.HasPrefix(data, []byte("qoif")):
		return QOI
	case bytes.HasPrefix(data, []byte("P6")) && len(data) > 2 && isSpace(data[2]):
		return PPM
	case bytes.HasPrefix(data, []byte("P7")) && len(data) > 2 && isSpace(data[2]):
		return PAM
	}

	// A PNG whose signature went through a text-mode transfer still has
	// "PNG" at offset 1; report it as PNG so the decoder explains the damage.
	if len(data) >= 4 && data[0] == 0x89 && string(data[1:4]) == "PNG" {
		return PNG
	}
	return Unknown
}

// DetectFromReader reads the leading bytes of r to determine format.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, 16)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
