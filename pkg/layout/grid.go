package layout

import (
	"sort"
	"strconv"

	"github.com/scanform/scanform/pkg/errors"
)

// DigitColumn is the set of digits one column of a multi-digit field may
// take. Digits must be unique values in [0,9]. An empty column is valid
// and produces no bubbles.
type DigitColumn []int

// Validate checks the digit-domain constraint.
func (c DigitColumn) Validate() error {
	seen := [10]bool{}
	for _, d := range c {
		if d < 0 || d > 9 {
			return errors.New(errors.ErrCodeInvalidSpec, "digit %d outside [0,9]", d)
		}
		if seen[d] {
			return errors.New(errors.ErrCodeInvalidSpec, "duplicate digit %d in column", d)
		}
		seen[d] = true
	}
	return nil
}

// descending returns the column's digits sorted largest first, the order
// they are stacked on the page (largest digit nearest the field label).
// The receiver is not modified.
func (c DigitColumn) descending() []int {
	out := make([]int, len(c))
	copy(out, c)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// digitRange returns the column {lo, lo+1, ..., hi}.
func digitRange(lo, hi int) DigitColumn {
	c := make(DigitColumn, 0, hi-lo+1)
	for d := lo; d <= hi; d++ {
		c = append(c, d)
	}
	return c
}

// VerticalColumns lays out one labeled multi-digit field as stacked bubble
// columns. The label baseline sits at (x, y); column i starts
// i*ColumnSpacing to the right, and within a column the digits stack
// downward in descending order starting LabelDrop below the label. Each
// bubble carries its digit value as small text immediately to its right,
// vertically centered on the bubble.
//
// Columns with fewer allowed digits produce shorter stacks; they are never
// padded. The digit-to-position mapping is deterministic: the same allowed
// set always yields the same geometry.
func VerticalColumns(x, y float64, label string, columns []DigitColumn, cfg Config) ([]Command, error) {
	for i, col := range columns {
		if err := col.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "field %q column %d", label, i)
		}
	}

	cmds := []Command{
		Text{X: x, Y: y, Value: label + ":", Font: fontFieldLabel},
	}

	baseY := y - cfg.LabelDrop
	for i, col := range columns {
		bx := x + float64(i)*cfg.ColumnSpacing
		for row, digit := range col.descending() {
			by := baseY - float64(row)*cfg.DigitSpacing
			cmds = append(cmds,
				Circle{X: bx, Y: by, Radius: cfg.BubbleRadius},
				Text{
					X:     bx + cfg.BubbleRadius + 2,
					Y:     by - cfg.BubbleRadius/2,
					Value: strconv.Itoa(digit),
					Font:  fontFieldLabel,
				},
			)
		}
	}

	return cmds, nil
}

// HorizontalRow lays out one bubble row: one stroked circle per allowed
// digit, iterated in the given order, spaced cfg.QuantitySpacing apart
// with centers LabelDrop below (x, y). Each digit value is centered below
// its bubble.
//
// The label parameter reserves space above the row but no label text is
// drawn; the parameter is kept so rows can be labeled later without
// changing the geometry contract.
func HorizontalRow(x, y float64, label string, digits DigitColumn, cfg Config) ([]Command, error) {
	if err := digits.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "field %q", label)
	}
	_ = label

	baseY := y - cfg.LabelDrop
	cmds := make([]Command, 0, 2*len(digits))
	for i, digit := range digits {
		bx := x + float64(i)*cfg.QuantitySpacing
		cmds = append(cmds,
			Circle{X: bx, Y: baseY, Radius: cfg.BubbleRadius},
			CenteredText{
				X:     bx,
				Y:     baseY - cfg.BubbleRadius - 8,
				Value: strconv.Itoa(digit),
				Font:  fontFieldLabel,
			},
		)
	}

	return cmds, nil
}
