package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/go-pdf/fpdf"

	"github.com/scanform/scanform/pkg/errors"
	"github.com/scanform/scanform/pkg/layout"
)

// PDF is a Surface backed by gofpdf. It holds exactly one page of the
// configured size and converts from the layout's bottom-left origin to
// fpdf's top-left origin in one place.
type PDF struct {
	doc    *fpdf.Fpdf
	tr     func(string) string
	pageH  float64
	images int
}

// NewPDF creates a single-page PDF surface with the page size taken from
// the geometry config.
func NewPDF(cfg layout.Config) *PDF {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	doc.SetDrawColor(0, 0, 0)
	doc.SetFillColor(0, 0, 0)
	doc.SetLineWidth(1)

	return &PDF{
		doc:   doc,
		tr:    doc.UnicodeTranslatorFromDescriptor(""),
		pageH: cfg.PageHeight,
	}
}

// flip converts a bottom-left-origin y into fpdf's top-left origin.
func (p *PDF) flip(y float64) float64 {
	return p.pageH - y
}

func (p *PDF) setFont(f layout.Font) {
	style := ""
	if f.Bold {
		style = "B"
	}
	p.doc.SetFont("Helvetica", style, f.Size)
}

// Rect draws a rectangle with bottom-left corner x, y.
func (p *PDF) Rect(x, y, w, h float64, filled bool) {
	style := "D"
	if filled {
		style = "F"
	}
	p.doc.Rect(x, p.flip(y+h), w, h, style)
}

// Circle draws a stroked circle centered at x, y.
func (p *PDF) Circle(x, y, r float64) {
	p.doc.Circle(x, p.flip(y), r, "D")
}

// Text draws left-aligned text with its baseline at x, y.
func (p *PDF) Text(x, y float64, s string, font layout.Font) {
	p.setFont(font)
	p.doc.Text(x, p.flip(y), p.tr(s))
}

// CenteredText draws text centered on x with its baseline at y.
func (p *PDF) CenteredText(x, y float64, s string, font layout.Font) {
	p.setFont(font)
	t := p.tr(s)
	p.doc.Text(x-p.doc.GetStringWidth(t)/2, p.flip(y), t)
}

// Image draws img into the box with bottom-left corner x, y. The image is
// embedded as PNG under a name unique within this document.
func (p *PDF) Image(img image.Image, x, y, w, h float64) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		p.doc.SetError(err)
		return
	}

	p.images++
	name := fmt.Sprintf("code-%d", p.images)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	p.doc.RegisterImageOptionsReader(name, opts, &buf)
	p.doc.ImageOptions(name, x, p.flip(y+h), w, h, false, opts, 0, "")
}

// Bytes finalizes the document and returns the PDF bytes.
func (p *PDF) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.doc.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "produce pdf")
	}
	return buf.Bytes(), nil
}
