package model

import (
	"fmt"
	"image"
	"image/color"
)

// PixelType identifies the channel layout of decoded pixels.
type PixelType int

const (
	// RGB is 8-bit truecolor: red, green, blue.
	RGB PixelType = iota
	// RGBA is 8-bit truecolor with alpha: red, green, blue, alpha.
	RGBA
)

// BytesPerPixel returns the number of bytes (channels) in one pixel.
func (t PixelType) BytesPerPixel() int {
	switch t {
	case RGBA:
		return 4
	default:
		return 3
	}
}

// String returns the string representation of the pixel type.
func (t PixelType) String() string {
	switch t {
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	default:
		return fmt.Sprintf("PixelType(%d)", int(t))
	}
}

// Pixel holds the channel bytes of a single pixel, in R, G, B(, A) order.
// Its length always equals the owning image's PixelType.BytesPerPixel().
type Pixel []uint8

// Raw returns the channel bytes.
func (p Pixel) Raw() []uint8 {
	return p
}

// NRGBA returns the pixel as a non-premultiplied color. RGB pixels are
// reported as fully opaque.
func (p Pixel) NRGBA() color.NRGBA {
	c := color.NRGBA{R: p[0], G: p[1], B: p[2], A: 0xff}
	if len(p) > 3 {
		c.A = p[3]
	}
	return c
}

// Image is a decoded raster: Pixels[y][x] for 0 <= y < Height, 0 <= x < Width.
type Image struct {
	Width     uint32
	Height    uint32
	PixelType PixelType
	Pixels    [][]Pixel
}

// NewImage slices a reconstructed byte buffer into a row-major pixel grid.
// data must hold exactly width*height*BytesPerPixel() bytes; the image takes
// ownership of it and every Pixel is a capacity-clamped view into it.
func NewImage(width, height uint32, pt PixelType, data []byte) (*Image, error) {
	bpp := pt.BytesPerPixel()
	stride := int(width) * bpp
	if want := stride * int(height); len(data) != want {
		return nil, fmt.Errorf("pixel buffer is %d bytes, want %d", len(data), want)
	}

	pixels := make([][]Pixel, height)
	for y := range pixels {
		row := make([]Pixel, width)
		base := y * stride
		for x := range row {
			i := base + x*bpp
			row[x] = Pixel(data[i : i+bpp : i+bpp])
		}
		pixels[y] = row
	}

	return &Image{
		Width:     width,
		Height:    height,
		PixelType: pt,
		Pixels:    pixels,
	}, nil
}

// At returns the pixel at column x, row y.
func (img *Image) At(x, y int) Pixel {
	return img.Pixels[y][x]
}

// Flatten packs the grid into a row-major buffer of 3 or 4 bytes per pixel,
// the layout display toolkits take for rgb8 and rgba8 images.
func (img *Image) Flatten() []byte {
	bpp := img.PixelType.BytesPerPixel()
	out := make([]byte, 0, int(img.Width)*int(img.Height)*bpp)
	for _, row := range img.Pixels {
		for _, px := range row {
			out = append(out, px...)
		}
	}
	return out
}

// NRGBA converts the image into an *image.NRGBA so it can be handed to the
// standard image encoders and to golang.org/x/image.
func (img *Image) NRGBA() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, int(img.Width), int(img.Height)))
	for y, row := range img.Pixels {
		off := dst.PixOffset(0, y)
		for _, px := range row {
			c := px.NRGBA()
			dst.Pix[off+0] = c.R
			dst.Pix[off+1] = c.G
			dst.Pix[off+2] = c.B
			dst.Pix[off+3] = c.A
			off += 4
		}
	}
	return dst
}

// Bounds returns the image rectangle anchored at the origin.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(img.Width), int(img.Height))
}
