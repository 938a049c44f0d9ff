package ui

import (
	"errors"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pawmatch/internal/catalog"
	"github.com/five82/pawmatch/internal/filter"
	"github.com/five82/pawmatch/internal/paging"
	"github.com/five82/pawmatch/internal/search"
)

// sortCycle is the order the sort key steps through.
var sortCycle = []filter.SortField{filter.SortNone, filter.SortBreed, filter.SortName, filter.SortAge}

// applyFilter adopts next when res accepted it and starts a search. Criteria
// changes return to the first page; paging moves keep next's offset.
func (m *Model) applyFilter(next filter.State, res filter.Result, resetOffset bool) tea.Cmd {
	if !res.Accepted {
		m.notice = string(res.Reason)
		return nil
	}
	m.notice = ""
	if resetOffset {
		next, _ = next.WithOffset(0)
	}
	if next.Equal(m.filter) {
		return nil
	}
	m.filter = next
	return m.runSearch()
}

// runSearch issues a search for the current filter.
func (m *Model) runSearch() tea.Cmd {
	m.searching = true
	m.searchErr = nil
	return tea.Batch(m.searchCmd(m.filter), m.spinner.Tick)
}

func (m Model) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, search.ErrStale) {
		// A newer search is in flight; its result will replace this one.
		return m, nil
	}
	m.searching = false
	if msg.err != nil {
		m.searchErr = msg.err
		m.checkExpired(msg.err)
		return m, nil
	}
	m.searchErr = nil
	m.page = msg.page
	m.hasPage = true
	m.selectedRow = 0
	return m, nil
}

// selectedDog returns the dog under the cursor on the results table.
func (m Model) selectedDog() (catalog.Dog, bool) {
	if !m.hasPage || m.selectedRow < 0 || m.selectedRow >= len(m.page.Dogs) {
		return catalog.Dog{}, false
	}
	return m.page.Dogs[m.selectedRow], true
}

// handleSearchKey processes keyboard input for the search view.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := len(m.page.Dogs)
	// Offset and size both come from the pending filter so they always agree.
	offset, size := m.filter.Offset(), m.filter.PageSize()
	total := m.page.Total

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < rows-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = max(rows-1, 0)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.selectedRow = min(m.selectedRow+m.halfPage(), max(rows-1, 0))
	case key.Matches(msg, m.keys.HalfPageUp):
		m.selectedRow = max(m.selectedRow-m.halfPage(), 0)

	case key.Matches(msg, m.keys.ToggleFavorite):
		if dog, ok := m.selectedDog(); ok {
			m.favs.Flip(dog)
		}

	case key.Matches(msg, m.keys.NextPage):
		if !m.hasPage || !paging.CanNext(offset, size, total) {
			return m, nil
		}
		next, res := m.filter.WithOffset(paging.Next(offset, size, total))
		cmd := m.applyFilter(next, res, false)
		return m, cmd
	case key.Matches(msg, m.keys.PrevPage):
		if !m.hasPage || !paging.CanPrev(offset, size, total) {
			return m, nil
		}
		next, res := m.filter.WithOffset(paging.Prev(offset, size, total))
		cmd := m.applyFilter(next, res, false)
		return m, cmd
	case key.Matches(msg, m.keys.FirstPage):
		next, res := m.filter.WithOffset(0)
		cmd := m.applyFilter(next, res, false)
		return m, cmd

	case key.Matches(msg, m.keys.EditBreeds):
		m.openPicker()
	case key.Matches(msg, m.keys.EditZips):
		m.openFieldInput(inputZip, "")
	case key.Matches(msg, m.keys.EditAgeMin):
		m.openFieldInput(inputAgeMin, m.filter.AgeMin().String())
	case key.Matches(msg, m.keys.EditAgeMax):
		m.openFieldInput(inputAgeMax, m.filter.AgeMax().String())

	case key.Matches(msg, m.keys.CycleSort):
		i := slices.Index(sortCycle, m.filter.SortField())
		field := sortCycle[(i+1)%len(sortCycle)]
		next, res := m.filter.SetSort(field, m.filter.SortDirection())
		cmd := m.applyFilter(next, res, true)
		m.rememberSearchPrefs()
		return m, cmd
	case key.Matches(msg, m.keys.FlipDirection):
		if m.filter.SortField() == filter.SortNone {
			m.notice = "Pick a sort field first (s)"
			return m, nil
		}
		next, res := m.filter.ToggleSort(m.filter.SortField())
		cmd := m.applyFilter(next, res, true)
		m.rememberSearchPrefs()
		return m, cmd
	case key.Matches(msg, m.keys.CyclePageSize):
		i := slices.Index(filter.PageSizes, m.filter.PageSize())
		next, res := m.filter.SetPageSize(filter.PageSizes[(i+1)%len(filter.PageSizes)])
		cmd := m.applyFilter(next, res, false)
		m.rememberSearchPrefs()
		return m, cmd
	case key.Matches(msg, m.keys.ClearFilters):
		cmd := m.applyFilter(m.prefs.ApplyTo(filter.Empty()), filter.Result{Accepted: true}, true)
		return m, cmd
	case key.Matches(msg, m.keys.Refresh):
		cmd := m.runSearch()
		return m, cmd

	case key.Matches(msg, m.keys.Match):
		cmd := m.requestMatch()
		return m, cmd
	}

	return m, nil
}

// rememberSearchPrefs persists page size and sort after they change.
func (m *Model) rememberSearchPrefs() {
	updated := m.prefs.FromFilter(m.filter)
	if updated == m.prefs {
		return
	}
	m.prefs = updated
	m.savePrefs()
}

func (m Model) halfPage() int {
	return max((m.height-6)/2, 1)
}
