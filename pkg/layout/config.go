package layout

import (
	"github.com/scanform/scanform/pkg/errors"
)

// A4 page size in points (1 pt = 1/72 inch).
const (
	PageWidth  = 595.28
	PageHeight = 841.89
)

// Config collects every geometry constant the layout engine uses. It is
// passed explicitly into each layout call; there is no global mutable
// state. The defaults reproduce the reference sheet geometry exactly, so
// a recognition pipeline calibrated against existing sheets keeps working.
//
// All values are page points.
type Config struct {
	// Page size. Defaults to A4 portrait.
	PageWidth  float64 `toml:"page_width"`
	PageHeight float64 `toml:"page_height"`

	// MarkerSize is the side of the filled orientation squares.
	MarkerSize float64 `toml:"marker_size"`

	// Bubble geometry shared by all fields.
	BubbleRadius float64 `toml:"bubble_radius"`

	// Vertical (date) fields: horizontal distance between digit columns,
	// vertical distance between stacked bubbles, and the drop from a field
	// label baseline to the first bubble center.
	ColumnSpacing float64 `toml:"column_spacing"`
	DigitSpacing  float64 `toml:"digit_spacing"`
	LabelDrop     float64 `toml:"label_drop"`

	// FieldGap is the horizontal distance between the Day, Month and Year
	// field origins.
	FieldGap float64 `toml:"field_gap"`

	// Header section: left edge of the client label, drop of the label
	// baseline from the top edge, drop of the client code image below the
	// label, and the code image box size.
	HeaderX        float64 `toml:"header_x"`
	HeaderDrop     float64 `toml:"header_drop"`
	ClientCodeDrop float64 `toml:"client_code_drop"`
	ClientCodeSize float64 `toml:"client_code_size"`

	// DateX is the left edge of the date section. The date section shares
	// the header baseline (HeaderDrop below the top edge).
	DateX float64 `toml:"date_x"`

	// Product row section. RowSectionDrop is the distance of the first row
	// baseline from the top edge; RowSpacing the distance between
	// consecutive row baselines. Rows stack downward with increasing index.
	RowSectionDrop float64 `toml:"row_section_drop"`
	RowSpacing     float64 `toml:"row_spacing"`

	// Offsets of the per-row elements relative to the row baseline:
	// orientation marker, product name, code image and quantity field.
	RowMarkerX   float64 `toml:"row_marker_x"`
	RowNameX     float64 `toml:"row_name_x"`
	RowCodeX     float64 `toml:"row_code_x"`
	RowCodeDrop  float64 `toml:"row_code_drop"`
	RowCodeSize  float64 `toml:"row_code_size"`
	QuantityX    float64 `toml:"quantity_x"`
	QuantityRise float64 `toml:"quantity_rise"`

	// Horizontal quantity rows: distance between bubble centers and the gap
	// between the Tens and Ones groups.
	QuantitySpacing float64 `toml:"quantity_spacing"`
	QuantityGap     float64 `toml:"quantity_gap"`

	// FooterMargin is the reserved band above the bottom page edge. A row
	// whose content would reach into it triggers LAYOUT_OVERFLOW.
	FooterMargin float64 `toml:"footer_margin"`
}

// Default returns the reference geometry.
func Default() Config {
	return Config{
		PageWidth:  PageWidth,
		PageHeight: PageHeight,

		MarkerSize:   10,
		BubbleRadius: 4,

		ColumnSpacing: 30,
		DigitSpacing:  12,
		LabelDrop:     15,
		FieldGap:      100,

		HeaderX:        50,
		HeaderDrop:     50,
		ClientCodeDrop: 85,
		ClientCodeSize: 45,

		DateX: 300,

		RowSectionDrop: 200,
		RowSpacing:     30,

		RowMarkerX:   10,
		RowNameX:     30,
		RowCodeX:     160,
		RowCodeDrop:  20,
		RowCodeSize:  13.5,
		QuantityX:    200,
		QuantityRise: 13,

		QuantitySpacing: 15,
		QuantityGap:     10,

		FooterMargin: 20,
	}
}

// rowContentHeight is the vertical extent of one product row's content:
// from the top of the quantity bubbles down to the bottom of the code
// image box.
func (c Config) rowContentHeight() float64 {
	top := c.QuantityRise - c.LabelDrop + c.BubbleRadius
	bottom := c.RowCodeDrop
	return top + bottom
}

// Validate rejects geometry that cannot produce a scannable sheet. In
// particular RowSpacing must cover the per-row content height, otherwise
// consecutive rows overlap and bubble recognition becomes ambiguous.
func (c Config) Validate() error {
	if c.PageWidth <= 0 || c.PageHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "page size must be positive")
	}
	if c.BubbleRadius <= 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "bubble radius must be positive")
	}
	if c.MarkerSize <= 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "marker size must be positive")
	}
	if c.ColumnSpacing <= 2*c.BubbleRadius {
		return errors.New(errors.ErrCodeInvalidSpec,
			"column spacing %.1f must exceed bubble diameter %.1f", c.ColumnSpacing, 2*c.BubbleRadius)
	}
	if c.DigitSpacing <= 2*c.BubbleRadius {
		return errors.New(errors.ErrCodeInvalidSpec,
			"digit spacing %.1f must exceed bubble diameter %.1f", c.DigitSpacing, 2*c.BubbleRadius)
	}
	if c.QuantitySpacing <= 2*c.BubbleRadius {
		return errors.New(errors.ErrCodeInvalidSpec,
			"quantity spacing %.1f must exceed bubble diameter %.1f", c.QuantitySpacing, 2*c.BubbleRadius)
	}
	if c.RowSpacing < c.rowContentHeight() {
		return errors.New(errors.ErrCodeInvalidSpec,
			"row spacing %.1f smaller than row content height %.1f", c.RowSpacing, c.rowContentHeight())
	}
	if c.RowSectionDrop >= c.PageHeight {
		return errors.New(errors.ErrCodeInvalidSpec, "row section starts below the page")
	}
	return nil
}

// MaxRows returns how many product rows fit on one page with this
// geometry: every row's content must stay above the footer margin.
func (c Config) MaxRows() int {
	available := c.PageHeight - c.RowSectionDrop - c.RowCodeDrop - c.FooterMargin
	if available < 0 {
		return 0
	}
	return int(available/c.RowSpacing) + 1
}
