package layout

import (
	"github.com/scanform/scanform/pkg/errors"
	"github.com/scanform/scanform/pkg/form"
)

// Document lays out the whole sheet and returns the complete ordered
// command list: corner markers, client section, date section, then one
// product row per product in input order.
//
// Only three page corners get markers; the bottom-right corner is left
// empty on purpose. The missing fourth marker disambiguates orientation:
// a sheet scanned upside down no longer matches the marker pattern.
//
// Document validates the geometry and the sheet, and detects overflow
// before emitting any command: if the product list does not fit above the
// footer margin on a single page it returns LAYOUT_OVERFLOW. There is no
// pagination; one sheet is one page.
func Document(sheet *form.Sheet, cfg Config) ([]Command, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := sheet.Validate(); err != nil {
		return nil, err
	}
	if n, max := len(sheet.Products), cfg.MaxRows(); n > max {
		return nil, errors.New(errors.ErrCodeLayoutOverflow,
			"%d products exceed single-page capacity of %d rows", n, max)
	}

	w, h, ms := cfg.PageWidth, cfg.PageHeight, cfg.MarkerSize

	cmds := []Command{
		Marker{X: 0, Y: 0, Size: ms},          // bottom left
		Marker{X: 0, Y: h - ms, Size: ms},     // top left
		Marker{X: w - ms, Y: h - ms, Size: ms}, // top right; bottom right omitted
	}

	headerY := h - cfg.HeaderDrop
	cmds = append(cmds,
		Text{X: cfg.HeaderX, Y: headerY, Value: "Client: " + sheet.Client.Name, Font: fontHeader},
		Image{
			X:       cfg.HeaderX,
			Y:       headerY - cfg.ClientCodeDrop,
			Width:   cfg.ClientCodeSize,
			Height:  cfg.ClientCodeSize,
			Payload: sheet.Client.ID,
		},
	)

	date, err := DateSection(cfg.DateX, headerY, cfg)
	if err != nil {
		return nil, err
	}
	cmds = append(cmds, date...)

	for i, p := range sheet.Products {
		row, err := ProductRow(i, p, cfg)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, row...)
	}

	return cmds, nil
}
