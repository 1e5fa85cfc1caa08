// Package render turns layout commands into an actual document. The
// layout engine stays pure; this package owns the drawing surface and the
// code-image encoder, and replays a command list against them in order.
package render

import (
	"image"

	"github.com/scanform/scanform/pkg/errors"
	"github.com/scanform/scanform/pkg/layout"
)

// Surface is the minimal drawing contract the document needs. Coordinates
// follow the layout convention: bottom-left origin, y up, page points.
// Implementations translate into whatever their backend expects.
type Surface interface {
	// Rect draws an axis-aligned rectangle with bottom-left corner x, y.
	Rect(x, y, w, h float64, filled bool)

	// Circle draws a stroked, unfilled circle centered at x, y.
	Circle(x, y, r float64)

	// Text draws left-aligned text with its baseline at x, y.
	Text(x, y float64, s string, font layout.Font)

	// CenteredText draws text horizontally centered on x, baseline at y.
	CenteredText(x, y float64, s string, font layout.Font)

	// Image draws img into the box with bottom-left corner x, y.
	Image(img image.Image, x, y, w, h float64)
}

// Encoder produces a code image for an opaque payload string.
// pkg/qr provides the QR implementation.
type Encoder interface {
	Encode(payload string) (image.Image, error)
}

// Draw replays the command list against the surface in order. Image
// payloads are encoded as they are encountered; the first encoding
// failure aborts the replay, so callers writing to a temporary file can
// discard it and leave no partial document behind.
func Draw(s Surface, cmds []layout.Command, enc Encoder) error {
	for _, c := range cmds {
		switch v := c.(type) {
		case layout.Marker:
			s.Rect(v.X, v.Y, v.Size, v.Size, true)
		case layout.Circle:
			s.Circle(v.X, v.Y, v.Radius)
		case layout.Text:
			s.Text(v.X, v.Y, v.Value, v.Font)
		case layout.CenteredText:
			s.CenteredText(v.X, v.Y, v.Value, v.Font)
		case layout.Image:
			img, err := enc.Encode(v.Payload)
			if err != nil {
				return err
			}
			s.Image(img, v.X, v.Y, v.Width, v.Height)
		default:
			return errors.New(errors.ErrCodeInternal, "unknown draw command %T", c)
		}
	}
	return nil
}
