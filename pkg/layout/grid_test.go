package layout

import (
	"strconv"
	"testing"

	"github.com/scanform/scanform/pkg/errors"
)

func circles(cmds []Command) []Circle {
	var out []Circle
	for _, c := range cmds {
		if circ, ok := c.(Circle); ok {
			out = append(out, circ)
		}
	}
	return out
}

func texts(cmds []Command) []Text {
	var out []Text
	for _, c := range cmds {
		if t, ok := c.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}

func TestDigitColumnValidate(t *testing.T) {
	tests := []struct {
		name    string
		col     DigitColumn
		wantErr bool
	}{
		{"full range", digitRange(0, 9), false},
		{"partial", DigitColumn{0, 1, 2, 3}, false},
		{"empty", DigitColumn{}, false},
		{"negative digit", DigitColumn{-1}, true},
		{"digit above nine", DigitColumn{10}, true},
		{"duplicate", DigitColumn{1, 2, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.col.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidSpec) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidSpec)
			}
		})
	}
}

func TestVerticalColumnsDescendingOrder(t *testing.T) {
	cfg := Default()
	cmds, err := VerticalColumns(100, 700, "Day", []DigitColumn{{0, 1, 2, 3}}, cfg)
	if err != nil {
		t.Fatalf("VerticalColumns() error = %v", err)
	}

	cs := circles(cmds)
	if len(cs) != 4 {
		t.Fatalf("got %d circles, want 4", len(cs))
	}

	// Largest digit topmost: rowIndex 0 is digit 3, rowIndex 3 is digit 0.
	labels := texts(cmds)[1:] // skip the field label
	wantDigits := []string{"3", "2", "1", "0"}
	for i, lbl := range labels {
		if lbl.Value != wantDigits[i] {
			t.Errorf("digit label %d = %q, want %q", i, lbl.Value, wantDigits[i])
		}
	}

	// Stacked downward, DigitSpacing apart, starting LabelDrop below the label.
	for i, c := range cs {
		wantY := 700 - cfg.LabelDrop - float64(i)*cfg.DigitSpacing
		if c.Y != wantY {
			t.Errorf("circle %d Y = %v, want %v", i, c.Y, wantY)
		}
		if c.X != 100 {
			t.Errorf("circle %d X = %v, want 100", i, c.X)
		}
	}
}

func TestVerticalColumnsColumnOrder(t *testing.T) {
	cfg := Default()
	cols := []DigitColumn{{0, 1}, digitRange(0, 9)}
	cmds, err := VerticalColumns(300, 790, "Month", cols, cfg)
	if err != nil {
		t.Fatalf("VerticalColumns() error = %v", err)
	}

	cs := circles(cmds)
	if len(cs) != 12 {
		t.Fatalf("got %d circles, want 12", len(cs))
	}

	// First two circles belong to column 0 at x=300; the rest to column 1.
	for i, c := range cs[:2] {
		if c.X != 300 {
			t.Errorf("column 0 circle %d X = %v, want 300", i, c.X)
		}
	}
	for i, c := range cs[2:] {
		if c.X != 300+cfg.ColumnSpacing {
			t.Errorf("column 1 circle %d X = %v, want %v", i, c.X, 300+cfg.ColumnSpacing)
		}
	}
}

func TestVerticalColumnsEmptyColumn(t *testing.T) {
	cmds, err := VerticalColumns(0, 0, "X", []DigitColumn{{}}, Default())
	if err != nil {
		t.Fatalf("VerticalColumns() error = %v for empty column", err)
	}
	if n := len(circles(cmds)); n != 0 {
		t.Errorf("got %d circles for empty column, want 0", n)
	}
}

func TestVerticalColumnsRejectsBadDigit(t *testing.T) {
	_, err := VerticalColumns(0, 0, "X", []DigitColumn{{12}}, Default())
	if !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Errorf("error = %v, want INVALID_SPEC", err)
	}
}

func TestHorizontalRowTenBubbles(t *testing.T) {
	cfg := Default()
	cmds, err := HorizontalRow(200, 500, "Tens", digitRange(0, 9), cfg)
	if err != nil {
		t.Fatalf("HorizontalRow() error = %v", err)
	}

	cs := circles(cmds)
	if len(cs) != 10 {
		t.Fatalf("got %d bubbles, want 10", len(cs))
	}

	for i, c := range cs {
		wantX := 200 + float64(i)*cfg.QuantitySpacing
		if c.X != wantX {
			t.Errorf("bubble %d X = %v, want %v", i, c.X, wantX)
		}
		if c.Y != 500-cfg.LabelDrop {
			t.Errorf("bubble %d Y = %v, want %v", i, c.Y, 500-cfg.LabelDrop)
		}
	}

	// Digits appear in input order, centered below the bubbles.
	var ct []CenteredText
	for _, c := range cmds {
		if v, ok := c.(CenteredText); ok {
			ct = append(ct, v)
		}
	}
	if len(ct) != 10 {
		t.Fatalf("got %d digit labels, want 10", len(ct))
	}
	for i, lbl := range ct {
		if lbl.Value != strconv.Itoa(i) {
			t.Errorf("digit label %d = %q, want %q", i, lbl.Value, strconv.Itoa(i))
		}
		if lbl.Y != 500-cfg.LabelDrop-cfg.BubbleRadius-8 {
			t.Errorf("digit label %d Y = %v", i, lbl.Y)
		}
	}
}

func TestHorizontalRowNoLabelText(t *testing.T) {
	cmds, err := HorizontalRow(0, 0, "Tens", digitRange(0, 9), Default())
	if err != nil {
		t.Fatalf("HorizontalRow() error = %v", err)
	}
	if n := len(texts(cmds)); n != 0 {
		t.Errorf("got %d left-aligned texts, want 0 (row label is intentionally blank)", n)
	}
}
