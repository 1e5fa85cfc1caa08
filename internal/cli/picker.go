package cli

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scanform/scanform/pkg/form"
)

// errPickerAborted is returned when the user quits the picker without
// confirming a selection.
var errPickerAborted = errors.New("selection aborted")

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// productPickerModel is the bubbletea model for interactive product
// selection. All products start selected; space toggles, enter confirms.
type productPickerModel struct {
	products []form.Product
	cursor   int
	checked  map[int]bool
	done     bool
	aborted  bool
}

func newProductPickerModel(products []form.Product) productPickerModel {
	checked := make(map[int]bool, len(products))
	for i := range products {
		checked[i] = true
	}
	return productPickerModel{products: products, checked: checked}
}

func (m productPickerModel) Init() tea.Cmd {
	return nil
}

func (m productPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.products)-1 {
				m.cursor++
			}
		case " ":
			m.checked[m.cursor] = !m.checked[m.cursor]
		case "a":
			all := true
			for i := range m.products {
				if !m.checked[i] {
					all = false
					break
				}
			}
			for i := range m.products {
				m.checked[i] = !all
			}
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m productPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Products"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	count := 0
	for i, p := range m.products {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		box := "[ ]"
		if m.checked[i] {
			box = StyleSuccess.Render("[x]")
			count++
		}

		line := fmt.Sprintf("%s%s %-30s %s", cursor, box, p.Name, listDimStyle.Render(p.ID))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else if m.checked[i] {
			b.WriteString(listNormalStyle.Render(line))
		} else {
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d selected", count, len(m.products))))
	return b.String()
}

// selected returns the checked products in their original order.
func (m productPickerModel) selected() []form.Product {
	out := make([]form.Product, 0, len(m.products))
	for i, p := range m.products {
		if m.checked[i] {
			out = append(out, p)
		}
	}
	return out
}

// pickProducts runs the interactive picker and returns the chosen subset.
// Returns errPickerAborted when the user quits without confirming.
func pickProducts(products []form.Product) ([]form.Product, error) {
	if len(products) == 0 {
		return products, nil
	}

	final, err := tea.NewProgram(newProductPickerModel(products)).Run()
	if err != nil {
		return nil, fmt.Errorf("run product picker: %w", err)
	}

	m, ok := final.(productPickerModel)
	if !ok || m.aborted || !m.done {
		return nil, errPickerAborted
	}
	return m.selected(), nil
}
