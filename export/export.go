// Package export writes decoded images in other raster formats. It is a
// presentation layer only: the pixels come from the decoder untouched,
// except for Thumbnail which resamples them.
package export

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/tsawler/tinypng/format"
	"github.com/tsawler/tinypng/internal/oops"
	"github.com/tsawler/tinypng/model"
)

// Formats lists the formats Write accepts.
var Formats = []format.Format{format.PPM, format.PAM, format.BMP, format.TIFF, format.PNG}

// Supported reports whether Write can produce f.
func Supported(f format.Format) bool {
	for _, s := range Formats {
		if s == f {
			return true
		}
	}
	return false
}

// FormatFromName picks an output format from a file name's extension.
func FormatFromName(name string) (format.Format, error) {
	f := format.Detect(name)
	if !Supported(f) {
		return format.Unknown, oops.New(nil, "cannot export to %q: unsupported extension", name)
	}
	return f, nil
}

// ParseFormat maps a format name such as "ppm" or "tiff" to a Format.
func ParseFormat(name string) (format.Format, error) {
	return FormatFromName("." + name)
}

// Write encodes img to w in format f.
func Write(w io.Writer, img *model.Image, f format.Format) error {
	var err error
	switch f {
	case format.PPM:
		err = writePPM(w, img)
	case format.PAM:
		err = writePAM(w, img)
	case format.BMP:
		err = bmp.Encode(w, img.NRGBA())
	case format.TIFF:
		err = tiff.Encode(w, img.NRGBA(), &tiff.Options{Compression: tiff.Deflate})
	case format.PNG:
		err = png.Encode(w, img.NRGBA())
	default:
		return oops.New(nil, "cannot export to %s", f)
	}
	if err != nil {
		return oops.New(err, "failed to write %s", f)
	}
	return nil
}

// writePPM writes a binary P6 pixmap. Alpha is dropped.
func writePPM(w io.Writer, img *model.Image) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P6\n%d %d\n255\n", img.Width, img.Height)
	for _, row := range img.Pixels {
		for _, px := range row {
			bw.Write(px[:3])
		}
	}
	return bw.Flush()
}

// writePAM writes a P7 arbitrary map carrying every channel.
func writePAM(w io.Writer, img *model.Image) error {
	tupleType := "RGB"
	if img.PixelType == model.RGBA {
		tupleType = "RGB_ALPHA"
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P7\nWIDTH %d\nHEIGHT %d\nDEPTH %d\nMAXVAL 255\nTUPLTYPE %s\nENDHDR\n",
		img.Width, img.Height, img.PixelType.BytesPerPixel(), tupleType)
	bw.Write(img.Flatten())
	return bw.Flush()
}

// Thumbnail scales img so that its longer side is at most maxSide pixels,
// keeping the aspect ratio and pixel type. Images that already fit are
// returned as is.
func Thumbnail(img *model.Image, maxSide int) (*model.Image, error) {
	if maxSide <= 0 {
		return nil, oops.New(nil, "thumbnail size must be positive, got %d", maxSide)
	}
	w, h := int(img.Width), int(img.Height)
	if w <= maxSide && h <= maxSide {
		return img, nil
	}

	tw, th := fit(w, h, maxSide)
	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img.NRGBA(), img.Bounds(), draw.Src, nil)

	return fromNRGBA(dst, img.PixelType)
}

// fit returns the dimensions of w x h scaled so the longer side is maxSide.
func fit(w, h, maxSide int) (int, int) {
	if w >= h {
		th := h * maxSide / w
		if th < 1 {
			th = 1
		}
		return maxSide, th
	}
	tw := w * maxSide / h
	if tw < 1 {
		tw = 1
	}
	return tw, maxSide
}

func fromNRGBA(m *image.NRGBA, pt model.PixelType) (*model.Image, error) {
	b := m.Bounds()
	bpp := pt.BytesPerPixel()
	data := make([]byte, 0, b.Dx()*b.Dy()*bpp)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := m.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			data = append(data, m.Pix[off:off+bpp]...)
			off += 4
		}
	}
	return model.NewImage(uint32(b.Dx()), uint32(b.Dy()), pt, data)
}
