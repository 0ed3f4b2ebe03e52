package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKey routes one key press per the renderer contract: ViewState
// mutations for navigation/sort/filter, refresh_now() on 'r', quit() on 'q'
// (§4.8, §6). Returns whether it consumed the key.
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	if key.Matches(msg, keys.ToggleHelp) {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp {
		if key.Matches(msg, keys.Collapse) {
			m.showHelp = false
		}
		return true, nil
	}

	if m.viewMode == ViewDetail {
		if key.Matches(msg, keys.Collapse) {
			m.viewMode = ViewList
			m.view.DetailOpen = false
			m.detailViewport.GotoTop()
			return true, nil
		}
		if m.viewportReady {
			switch {
			case key.Matches(msg, keys.ScrollUp, keys.ScrollDown, keys.PageUp, keys.PageDown):
				var cmd tea.Cmd
				m.detailViewport, cmd = m.detailViewport.Update(msg)
				return true, cmd
			}
		}
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, keys.Refresh):
		if m.refresh != nil {
			m.refresh.RefreshNow()
		}
		return true, nil

	case key.Matches(msg, keys.CycleSort):
		m.view.SortKey = (m.view.SortKey + 1) % 5
		m.refreshRows()
		return true, nil

	case key.Matches(msg, keys.ReverseSort):
		m.view.SortReversed = !m.view.SortReversed
		m.refreshRows()
		return true, nil

	case key.Matches(msg, keys.Filter):
		m.filtering = true
		return true, nil

	case key.Matches(msg, keys.SelectPrev):
		if m.viewMode == ViewList && m.view.CursorIndex > 0 {
			m.view.CursorIndex--
			m.table.SetView(m.view)
		}
		return true, nil

	case key.Matches(msg, keys.SelectNext):
		if m.viewMode == ViewList && m.view.CursorIndex < len(m.rows)-1 {
			m.view.CursorIndex++
			m.table.SetView(m.view)
		}
		return true, nil

	case key.Matches(msg, keys.SelectFirst):
		if m.viewMode == ViewList {
			m.view.CursorIndex = 0
			m.table.SetView(m.view)
		}
		return true, nil

	case key.Matches(msg, keys.SelectLast):
		if m.viewMode == ViewList && len(m.rows) > 0 {
			m.view.CursorIndex = len(m.rows) - 1
			m.table.SetView(m.view)
		}
		return true, nil

	case key.Matches(msg, keys.Expand):
		if m.viewMode == ViewList && len(m.rows) > 0 {
			m.viewMode = ViewDetail
			m.view.DetailOpen = true
			m.table.SetView(m.view)
			m.detailViewport.GotoTop()
			m.detailViewport.SetContent(renderDetailBody(m.rows[m.clampedCursor()]))
		}
		return true, nil
	}

	return false, nil
}

// handleFilterKey captures raw input while the '/' filter prompt is active,
// mutating ViewState.FilterText directly rather than routing through a
// bubbles/textinput component the way the rest of the renderer's table is
// hand-built. Enter commits the filter and leaves prompt mode; Esc clears
// it and leaves prompt mode; Backspace edits in place.
func (m *Model) handleFilterKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.view.FilterText = ""
		m.refreshRows()
		return true, nil

	case tea.KeyEnter:
		m.filtering = false
		return true, nil

	case tea.KeyBackspace:
		if n := len(m.view.FilterText); n > 0 {
			m.view.FilterText = m.view.FilterText[:n-1]
			m.refreshRows()
		}
		return true, nil

	case tea.KeyRunes:
		m.view.FilterText += string(msg.Runes)
		m.refreshRows()
		return true, nil
	}
	return true, nil
}

func detailViewportHeight(termHeight int) int {
	h := termHeight - 8
	if h < 3 {
		h = 3
	}
	return h
}
