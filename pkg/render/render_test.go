package render

import (
	"bytes"
	"image"
	"reflect"
	"testing"

	"github.com/scanform/scanform/pkg/errors"
	"github.com/scanform/scanform/pkg/layout"
)

// recorder captures surface calls for inspection.
type recorder struct {
	calls []string
	rects []rectCall
	circs []circCall
	imgs  []imgCall
}

type rectCall struct {
	x, y, w, h float64
	filled     bool
}

type circCall struct{ x, y, r float64 }

type imgCall struct{ x, y, w, h float64 }

func (r *recorder) Rect(x, y, w, h float64, filled bool) {
	r.calls = append(r.calls, "rect")
	r.rects = append(r.rects, rectCall{x, y, w, h, filled})
}

func (r *recorder) Circle(x, y, rad float64) {
	r.calls = append(r.calls, "circle")
	r.circs = append(r.circs, circCall{x, y, rad})
}

func (r *recorder) Text(x, y float64, s string, f layout.Font) {
	r.calls = append(r.calls, "text:"+s)
}

func (r *recorder) CenteredText(x, y float64, s string, f layout.Font) {
	r.calls = append(r.calls, "ctext:"+s)
}

func (r *recorder) Image(img image.Image, x, y, w, h float64) {
	r.calls = append(r.calls, "image")
	r.imgs = append(r.imgs, imgCall{x, y, w, h})
}

// stubEncoder returns a fixed 1x1 image, or an error for payload "boom".
type stubEncoder struct{ encoded []string }

func (e *stubEncoder) Encode(payload string) (image.Image, error) {
	if payload == "boom" {
		return nil, errors.New(errors.ErrCodeEncoding, "cannot encode %q", payload)
	}
	e.encoded = append(e.encoded, payload)
	return image.NewGray(image.Rect(0, 0, 1, 1)), nil
}

func TestDrawReplaysInOrder(t *testing.T) {
	cmds := []layout.Command{
		layout.Marker{X: 0, Y: 0, Size: 10},
		layout.Text{X: 50, Y: 790, Value: "Client: X", Font: layout.Font{Size: 14, Bold: true}},
		layout.Circle{X: 300, Y: 775, Radius: 4},
		layout.CenteredText{X: 300, Y: 763, Value: "9", Font: layout.Font{Size: 8, Bold: true}},
		layout.Image{X: 160, Y: 500, Width: 13.5, Height: 13.5, Payload: "prod-1"},
	}

	rec := &recorder{}
	enc := &stubEncoder{}
	if err := Draw(rec, cmds, enc); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	want := []string{"rect", "text:Client: X", "circle", "ctext:9", "image"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}

	if !reflect.DeepEqual(enc.encoded, []string{"prod-1"}) {
		t.Errorf("encoded payloads = %v, want [prod-1]", enc.encoded)
	}

	if rec.rects[0] != (rectCall{0, 0, 10, 10, true}) {
		t.Errorf("marker rect = %+v", rec.rects[0])
	}
	if rec.imgs[0] != (imgCall{160, 500, 13.5, 13.5}) {
		t.Errorf("image box = %+v", rec.imgs[0])
	}
}

func TestDrawAbortsOnEncodingFailure(t *testing.T) {
	cmds := []layout.Command{
		layout.Image{X: 0, Y: 0, Width: 10, Height: 10, Payload: "boom"},
		layout.Circle{X: 1, Y: 1, Radius: 1},
	}

	rec := &recorder{}
	err := Draw(rec, cmds, &stubEncoder{})
	if !errors.Is(err, errors.ErrCodeEncoding) {
		t.Fatalf("Draw() error = %v, want ENCODING_FAILED", err)
	}

	// Nothing after the failing image may reach the surface.
	if len(rec.circs) != 0 {
		t.Errorf("circle drawn after encoding failure")
	}
}

func TestPDFSurfaceProducesPDF(t *testing.T) {
	cfg := layout.Default()
	surface := NewPDF(cfg)

	cmds := []layout.Command{
		layout.Marker{X: 0, Y: 0, Size: cfg.MarkerSize},
		layout.Text{X: 50, Y: cfg.PageHeight - 50, Value: "Client: Test", Font: layout.Font{Size: 14, Bold: true}},
		layout.Circle{X: 300, Y: 700, Radius: 4},
		layout.Image{X: 50, Y: 600, Width: 45, Height: 45, Payload: "x"},
	}

	if err := Draw(surface, cmds, &stubEncoder{}); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	data, err := surface.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header")
	}
}
