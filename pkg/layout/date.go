package layout

// Date field digit domains. The leading columns are deliberately
// restricted so the sheet cannot represent obviously impossible leading
// digits (no day starting 4-9, no month starting 2-9). That keeps
// recognition unambiguous without full calendar validation: 32-39 and
// 13-19 stay representable bubble shapes.
var (
	dayColumns   = []DigitColumn{{0, 1, 2, 3}, digitRange(0, 9)}
	monthColumns = []DigitColumn{{0, 1}, digitRange(0, 9)}
	yearColumns  = []DigitColumn{digitRange(0, 9), digitRange(0, 9)}
)

// DateSection lays out the Day, Month and Year fields side by side at the
// same baseline, FieldGap apart.
func DateSection(x, y float64, cfg Config) ([]Command, error) {
	var cmds []Command

	fields := []struct {
		label   string
		columns []DigitColumn
	}{
		{"Day", dayColumns},
		{"Month", monthColumns},
		{"Year", yearColumns},
	}

	for i, f := range fields {
		fieldCmds, err := VerticalColumns(x+float64(i)*cfg.FieldGap, y, f.label, f.columns, cfg)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, fieldCmds...)
	}

	return cmds, nil
}
