// Package model provides the in-memory representation of a decoded image.
//
// All decoding operations ultimately produce an [Image]: its dimensions, its
// [PixelType], and a row-major grid of [Pixel] values.
//
// # Pixel Types
//
// Only 8-bit truecolor layouts are represented:
//
//   - [RGB] - three bytes per pixel
//   - [RGBA] - four bytes per pixel (non-premultiplied alpha)
//
// # Ownership
//
// An Image owns a single backing buffer. Each Pixel is a view into that
// buffer whose capacity is clamped to its own channels, so appending to a
// Pixel never overwrites a neighbour.
//
// # Presentation
//
// Consumers that need a packed buffer use [Image.Flatten]. Consumers that
// speak the standard library's image interfaces use [Image.NRGBA]:
//
//	img, err := tinypng.Open("photo.png").Image()
//	if err != nil {
//	    // handle error
//	}
//	buf := img.Flatten() // len(buf) == Width*Height*BytesPerPixel
package model
