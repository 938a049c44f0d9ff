package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pawmatch/internal/breeds"
	"github.com/five82/pawmatch/internal/filter"
)

// pickerState holds the breed autocomplete.
type pickerState struct {
	input       textinput.Model
	suggestions breeds.Suggestions
	cursor      int
}

func newPickerState() pickerState {
	in := textinput.New()
	in.Placeholder = "Type a breed"
	in.CharLimit = 64
	in.Prompt = "breed> "
	return pickerState{input: in}
}

// pickerItem is one selectable row in the picker list.
type pickerItem struct {
	name     string
	selected bool
}

// pickerItems lists the selected breeds first, then suggestions not already
// selected. Choosing a selected breed removes it.
func (m Model) pickerItems() []pickerItem {
	chosen := m.filter.Breeds()
	items := make([]pickerItem, 0, len(chosen)+len(m.picker.suggestions.Names))
	for _, name := range chosen {
		items = append(items, pickerItem{name: name, selected: true})
	}
	for _, name := range m.picker.suggestions.Names {
		if m.filter.HasBreed(name) {
			continue
		}
		items = append(items, pickerItem{name: name})
	}
	return items
}

func (m *Model) openPicker() {
	m.input = inputBreed
	m.picker.input.SetValue("")
	m.picker.input.Focus()
	m.picker.suggestions = m.suggester.Now("")
	m.picker.cursor = 0
}

// applySuggestions installs a debounced result if it still answers what the
// user has typed.
func (m *Model) applySuggestions(s breeds.Suggestions) {
	if m.input != inputBreed {
		return
	}
	if s.Query != m.picker.input.Value() || s.Seq < m.picker.suggestions.Seq {
		return
	}
	m.picker.suggestions = s
	m.clampPickerCursor()
}

func (m *Model) clampPickerCursor() {
	n := len(m.pickerItems())
	if m.picker.cursor >= n {
		m.picker.cursor = n - 1
	}
	if m.picker.cursor < 0 {
		m.picker.cursor = 0
	}
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return m, nil
	case "up", "ctrl+p":
		if m.picker.cursor > 0 {
			m.picker.cursor--
		}
		return m, nil
	case "down", "ctrl+n", "tab":
		if m.picker.cursor < len(m.pickerItems())-1 {
			m.picker.cursor++
		}
		return m, nil
	case "enter":
		cmd := m.choosePickerItem()
		return m, cmd
	}

	before := m.picker.input.Value()
	var cmd tea.Cmd
	m.picker.input, cmd = m.picker.input.Update(msg)
	if value := m.picker.input.Value(); value != before {
		m.picker.cursor = 0
		relay := m.relay
		m.suggester.Submit(value, func(s breeds.Suggestions) {
			relay.Send(suggestionsMsg(s))
		})
	}
	return m, cmd
}

// choosePickerItem toggles the breed under the cursor and searches again.
func (m *Model) choosePickerItem() tea.Cmd {
	items := m.pickerItems()
	if len(items) == 0 || m.picker.cursor >= len(items) {
		m.closeInput()
		return nil
	}
	item := items[m.picker.cursor]
	if breeds.IsSentinel(item.name) {
		m.closeInput()
		return nil
	}

	next, res := m.filter.ToggleBreed(item.name)
	cmd := m.applyFilter(next, res, true)
	m.picker.input.SetValue("")
	m.picker.suggestions = m.suggester.Now("")
	m.clampPickerCursor()
	return cmd
}

// openFieldInput focuses the single-line editor for a zip or age field.
func (m *Model) openFieldInput(mode inputMode, value string) {
	m.input = mode
	switch mode {
	case inputZip:
		m.fieldInput.Prompt = "zip> "
		m.fieldInput.Placeholder = "12345 (enter toggles, backspace removes last)"
	case inputAgeMin:
		m.fieldInput.Prompt = "min age> "
		m.fieldInput.Placeholder = "0-30, empty clears"
	case inputAgeMax:
		m.fieldInput.Prompt = "max age> "
		m.fieldInput.Placeholder = "0-30, empty clears"
	}
	m.fieldInput.SetValue(value)
	m.fieldInput.CursorEnd()
	m.fieldInput.Focus()
}

// closeInput leaves any open editor without applying it.
func (m *Model) closeInput() {
	if m.input == inputBreed {
		m.suggester.Cancel()
	}
	m.input = inputNone
	m.picker.input.Blur()
	m.picker.input.SetValue("")
	m.picker.cursor = 0
	m.fieldInput.Blur()
	m.fieldInput.SetValue("")
}

// handleInputKey routes keys while an editor is open on the search view.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input == inputBreed {
		return m.handlePickerKey(msg)
	}

	switch msg.String() {
	case "esc":
		m.closeInput()
		return m, nil
	case "enter":
		cmd := m.submitFieldInput()
		return m, cmd
	case "backspace":
		if m.input == inputZip && m.fieldInput.Value() == "" {
			zips := m.filter.ZipCodes()
			if len(zips) == 0 {
				return m, nil
			}
			next, res := m.filter.RemoveZip(zips[len(zips)-1])
			cmd := m.applyFilter(next, res, true)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.fieldInput, cmd = m.fieldInput.Update(msg)
	return m, cmd
}

// submitFieldInput applies the zip or age editor. Zip entry stays open so
// several codes can be toggled in a row; age entry closes once accepted.
func (m *Model) submitFieldInput() tea.Cmd {
	value := strings.TrimSpace(m.fieldInput.Value())

	var (
		next filter.State
		res  filter.Result
	)
	switch m.input {
	case inputZip:
		if value == "" {
			m.closeInput()
			return nil
		}
		if m.filter.HasZip(value) {
			next, res = m.filter.RemoveZip(value)
		} else {
			next, res = m.filter.AddZip(value)
		}
	case inputAgeMin:
		next, res = m.filter.SetAgeMin(value)
	case inputAgeMax:
		next, res = m.filter.SetAgeMax(value)
	default:
		m.closeInput()
		return nil
	}

	cmd := m.applyFilter(next, res, true)
	if !res.Accepted {
		return nil
	}
	if m.input == inputZip {
		m.fieldInput.SetValue("")
	} else {
		m.closeInput()
	}
	return cmd
}
