package layout

import (
	"github.com/scanform/scanform/pkg/form"
)

// RowBaseline returns the baseline y of product row index (0-based). Rows
// stack downward: RowBaseline(i) - RowBaseline(i+1) == cfg.RowSpacing.
func RowBaseline(index int, cfg Config) float64 {
	return cfg.PageHeight - cfg.RowSectionDrop - float64(index)*cfg.RowSpacing
}

// ProductRow lays out one product row at the baseline for the given index:
// an orientation marker, the product name printed verbatim, the product
// code image, and the two-digit quantity field. All offsets are fixed
// relative to the baseline; only the baseline shifts with the index.
//
// Long names may run into the code region; the layout does not truncate or
// wrap (an accepted limit of the fixed-offset design).
func ProductRow(index int, p form.Product, cfg Config) ([]Command, error) {
	y := RowBaseline(index, cfg)

	cmds := []Command{
		Marker{X: cfg.RowMarkerX, Y: y - cfg.MarkerSize, Size: cfg.MarkerSize},
		Text{X: cfg.RowNameX, Y: y - cfg.MarkerSize, Value: p.Name, Font: fontRowName},
		Image{
			X:       cfg.RowCodeX,
			Y:       y - cfg.RowCodeDrop,
			Width:   cfg.RowCodeSize,
			Height:  cfg.RowCodeSize,
			Payload: p.ID,
		},
	}

	quantity, err := QuantityRows(cfg.QuantityX, y+cfg.QuantityRise, cfg)
	if err != nil {
		return nil, err
	}

	return append(cmds, quantity...), nil
}
