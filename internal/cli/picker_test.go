package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scanform/scanform/pkg/form"
)

func pickerProducts() []form.Product {
	return []form.Product{
		{Name: "Sourdough", ID: "sku-100"},
		{Name: "Baguette", ID: "sku-101"},
		{Name: "Croissant", ID: "sku-102"},
	}
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPickerStartsAllSelected(t *testing.T) {
	m := newProductPickerModel(pickerProducts())
	if got := len(m.selected()); got != 3 {
		t.Errorf("selected = %d, want 3", got)
	}
}

func TestPickerToggle(t *testing.T) {
	m := newProductPickerModel(pickerProducts())

	next, _ := m.Update(key(" "))
	m = next.(productPickerModel)
	if got := len(m.selected()); got != 2 {
		t.Errorf("selected = %d after toggle, want 2", got)
	}

	sel := m.selected()
	for _, p := range sel {
		if p.ID == "sku-100" {
			t.Error("toggled product should not be selected")
		}
	}
}

func TestPickerNavigationBounds(t *testing.T) {
	m := newProductPickerModel(pickerProducts())

	next, _ := m.Update(key("k"))
	m = next.(productPickerModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 (clamped at top)", m.cursor)
	}

	for i := 0; i < 5; i++ {
		next, _ = m.Update(key("j"))
		m = next.(productPickerModel)
	}
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped at bottom)", m.cursor)
	}
}

func TestPickerToggleAll(t *testing.T) {
	m := newProductPickerModel(pickerProducts())

	next, _ := m.Update(key("a"))
	m = next.(productPickerModel)
	if got := len(m.selected()); got != 0 {
		t.Errorf("selected = %d after deselect all, want 0", got)
	}

	next, _ = m.Update(key("a"))
	m = next.(productPickerModel)
	if got := len(m.selected()); got != 3 {
		t.Errorf("selected = %d after select all, want 3", got)
	}
}

func TestPickerConfirmAndAbort(t *testing.T) {
	m := newProductPickerModel(pickerProducts())
	next, _ := m.Update(key("enter"))
	m = next.(productPickerModel)
	if !m.done || m.aborted {
		t.Errorf("done = %v, aborted = %v after enter", m.done, m.aborted)
	}

	m = newProductPickerModel(pickerProducts())
	next, _ = m.Update(key("esc"))
	m = next.(productPickerModel)
	if !m.aborted {
		t.Error("esc should abort")
	}
}

func TestPickerViewMarksChecked(t *testing.T) {
	m := newProductPickerModel(pickerProducts())

	// Deselect the first entry so both states are visible.
	next, _ := m.Update(key(" "))
	m = next.(productPickerModel)

	view := m.View()
	if !strings.Contains(view, "[x]") {
		t.Error("view should mark checked products")
	}
	if !strings.Contains(view, "[ ]") {
		t.Error("view should mark unchecked products")
	}
	if !strings.Contains(view, "2 of 3 selected") {
		t.Errorf("view should report the selection count, got:\n%s", view)
	}
}

func TestPickerSelectionKeepsOrder(t *testing.T) {
	m := newProductPickerModel(pickerProducts())

	// Deselect the middle entry
	next, _ := m.Update(key("j"))
	m = next.(productPickerModel)
	next, _ = m.Update(key(" "))
	m = next.(productPickerModel)

	sel := m.selected()
	if len(sel) != 2 || sel[0].ID != "sku-100" || sel[1].ID != "sku-102" {
		t.Errorf("selected = %+v, want first and third in order", sel)
	}
}
