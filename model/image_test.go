package model

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestPixelType(t *testing.T) {
	tests := []struct {
		pt   PixelType
		bpp  int
		name string
	}{
		{RGB, 3, "RGB"},
		{RGBA, 4, "RGBA"},
	}

	for _, tt := range tests {
		if got := tt.pt.BytesPerPixel(); got != tt.bpp {
			t.Errorf("%v.BytesPerPixel() = %d, want %d", tt.pt, got, tt.bpp)
		}
		if got := tt.pt.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
	}
	if got := PixelType(9).String(); got != "PixelType(9)" {
		t.Errorf("String() = %q", got)
	}
}

func TestNewImage(t *testing.T) {
	data := []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 255, 255, 255,
	}
	img, err := NewImage(2, 2, RGB, data)
	if err != nil {
		t.Fatalf("NewImage() error = %v", err)
	}

	if img.Width != 2 || img.Height != 2 || img.PixelType != RGB {
		t.Errorf("NewImage() = %dx%d %v", img.Width, img.Height, img.PixelType)
	}
	if len(img.Pixels) != 2 || len(img.Pixels[0]) != 2 {
		t.Fatalf("grid is %d rows", len(img.Pixels))
	}

	want := [][]Pixel{
		{{255, 0, 0}, {0, 255, 0}},
		{{0, 0, 255}, {255, 255, 255}},
	}
	for y := range want {
		for x := range want[y] {
			if !bytes.Equal(img.At(x, y), want[y][x]) {
				t.Errorf("At(%d, %d) = %v, want %v", x, y, img.At(x, y), want[y][x])
			}
		}
	}
}

func TestNewImage_PixelsAreIsolated(t *testing.T) {
	img, err := NewImage(2, 1, RGBA, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		t.Fatalf("NewImage() error = %v", err)
	}

	// Appending to one pixel must not overwrite its neighbour.
	p := img.At(0, 0)
	if cap(p) != 4 {
		t.Errorf("cap(pixel) = %d, want 4", cap(p))
	}
	_ = append(p, 99)
	if img.At(1, 0)[0] != 5 {
		t.Errorf("neighbour overwritten: %v", img.At(1, 0))
	}
}

func TestNewImage_WrongLength(t *testing.T) {
	if _, err := NewImage(2, 2, RGBA, make([]byte, 12)); err == nil {
		t.Error("expected error for short buffer")
	}
	if _, err := NewImage(1, 1, RGB, make([]byte, 4)); err == nil {
		t.Error("expected error for long buffer")
	}
}

func TestImage_Flatten(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	img, err := NewImage(3, 1, RGBA, append([]byte{}, data...))
	if err != nil {
		t.Fatalf("NewImage() error = %v", err)
	}
	if got := img.Flatten(); !bytes.Equal(got, data) {
		t.Errorf("Flatten() = %v, want %v", got, data)
	}
}

func TestImage_NRGBA(t *testing.T) {
	rgb, err := NewImage(1, 2, RGB, []byte{10, 20, 30, 40, 50, 60})
	if err != nil {
		t.Fatalf("NewImage() error = %v", err)
	}
	m := rgb.NRGBA()
	if m.Bounds() != image.Rect(0, 0, 1, 2) {
		t.Errorf("Bounds() = %v", m.Bounds())
	}
	if got := m.NRGBAAt(0, 1); got != (color.NRGBA{40, 50, 60, 255}) {
		t.Errorf("NRGBAAt(0, 1) = %v", got)
	}

	rgba, err := NewImage(1, 1, RGBA, []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("NewImage() error = %v", err)
	}
	if got := rgba.NRGBA().NRGBAAt(0, 0); got != (color.NRGBA{1, 2, 3, 4}) {
		t.Errorf("NRGBAAt(0, 0) = %v", got)
	}
	if rgba.Bounds() != image.Rect(0, 0, 1, 1) {
		t.Errorf("Bounds() = %v", rgba.Bounds())
	}
}

func TestPixel(t *testing.T) {
	p := Pixel{9, 8, 7}
	if !bytes.Equal(p.Raw(), []byte{9, 8, 7}) {
		t.Errorf("Raw() = %v", p.Raw())
	}
	if got := p.NRGBA(); got != (color.NRGBA{9, 8, 7, 255}) {
		t.Errorf("NRGBA() = %v", got)
	}
}
