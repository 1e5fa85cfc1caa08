// Package qr adapts the gozxing QR encoder to the code-image contract the
// document renderer needs: an opaque payload string in, a square
// image.Image out. Symbol layout, versions and error correction are the
// library's business; this package only fixes pixel bounds and maps
// failures onto the ENCODING_FAILED error code.
package qr

import (
	"image"
	"image/color"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"

	"github.com/scanform/scanform/pkg/errors"
)

// DefaultSize is the default side length, in pixels, of encoded images.
// Code images are drawn into boxes as small as 13.5 pt, so the pixel
// raster only needs to stay comfortably above print resolution.
const DefaultSize = 256

// Encoder produces square QR images of a fixed pixel size.
// The zero value is not usable; construct with New.
type Encoder struct {
	size   int
	writer *qrcode.QRCodeWriter
}

// New creates an encoder emitting size x size pixel images.
// If size is not positive, DefaultSize is used.
func New(size int) *Encoder {
	if size <= 0 {
		size = DefaultSize
	}
	return &Encoder{
		size:   size,
		writer: qrcode.NewQRCodeWriter(),
	}
}

// Encode renders payload as a QR code image. Empty or otherwise
// unencodable payloads return an ENCODING_FAILED error.
func (e *Encoder) Encode(payload string) (image.Image, error) {
	if err := errors.ValidatePayload(payload); err != nil {
		return nil, err
	}

	hints := map[gozxing.EncodeHintType]interface{}{
		gozxing.EncodeHintType_ERROR_CORRECTION: decoder.ErrorCorrectionLevel_M,
	}
	matrix, err := e.writer.Encode(payload, gozxing.BarcodeFormat_QR_CODE, e.size, e.size, hints)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncoding, err, "encode payload %q", payload)
	}

	return matrixImage(matrix), nil
}

// matrixImage rasterizes a bit matrix into a grayscale image, dark
// modules black on a white background.
func matrixImage(m *gozxing.BitMatrix) *image.Gray {
	w, h := m.GetWidth(), m.GetHeight()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}
