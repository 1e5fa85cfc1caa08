package layout

// QuantityRows lays out the two-digit quantity field for one product row:
// a Tens group and an Ones group, each a full 0-9 horizontal bubble row.
// The Ones group starts immediately after the Tens group:
//
//	onesX = x + 10*QuantitySpacing + QuantityGap
//
// The two groups are marked independently; recognition combines the
// tens-mark position and ones-mark position into one integer in [0,99].
func QuantityRows(x, y float64, cfg Config) ([]Command, error) {
	digits := digitRange(0, 9)

	tens, err := HorizontalRow(x, y, "Tens", digits, cfg)
	if err != nil {
		return nil, err
	}

	onesX := x + float64(len(digits))*cfg.QuantitySpacing + cfg.QuantityGap
	ones, err := HorizontalRow(onesX, y, "Ones", digits, cfg)
	if err != nil {
		return nil, err
	}

	return append(tens, ones...), nil
}
