package qr

import (
	"image/color"
	"testing"

	"github.com/scanform/scanform/pkg/errors"
)

func TestEncodeBounds(t *testing.T) {
	enc := New(128)
	img, err := enc.Encode("croissant-almendra")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	b := img.Bounds()
	if b.Dx() != 128 || b.Dy() != 128 {
		t.Errorf("bounds = %dx%d, want 128x128", b.Dx(), b.Dy())
	}
}

func TestEncodeHasDarkAndLightModules(t *testing.T) {
	enc := New(DefaultSize)
	img, err := enc.Encode("3A94F0C1D2")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var dark, light bool
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !(dark && light); y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			switch color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y {
			case 0:
				dark = true
			case 255:
				light = true
			}
		}
	}
	if !dark || !light {
		t.Errorf("image dark=%v light=%v, want both", dark, light)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	enc := New(64)
	a, err := enc.Encode("A")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	b, err := enc.Encode("A")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	ra, rb := a.Bounds(), b.Bounds()
	if ra != rb {
		t.Fatalf("bounds differ: %v vs %v", ra, rb)
	}
	for y := ra.Min.Y; y < ra.Max.Y; y++ {
		for x := ra.Min.X; x < ra.Max.X; x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatalf("pixel (%d,%d) differs between runs", x, y)
			}
		}
	}
}

func TestEncodeEmptyPayload(t *testing.T) {
	enc := New(0)
	_, err := enc.Encode("")
	if !errors.Is(err, errors.ErrCodeEncoding) {
		t.Errorf("Encode(\"\") error = %v, want ENCODING_FAILED", err)
	}
}
