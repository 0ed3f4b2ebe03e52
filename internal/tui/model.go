package tui

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/ansimon/internal/hoststate"
	"github.com/rileyhilliard/ansimon/internal/model"
)

// pollRefresher is the one thing the renderer asks of the poller: run an
// out-of-band tick now (the 'r' key, §6 refresh_now()). poller.Poller
// satisfies this without the tui package importing it directly.
type pollRefresher interface {
	RefreshNow()
}

// tickMsg drives the renderer's own redraw cadence, independent of the
// poller's tick interval: the table can change between polls only in that
// the UI task re-reads it, so redrawing faster than the poll interval just
// keeps timestamps/spinners current.
type tickMsg time.Time

const renderInterval = 500 * time.Millisecond

// Model is the Bubble Tea program observing an internal/model.Table. It
// never mutates host records directly -- only ViewState, per the renderer
// contract (§4.8, §6).
type Model struct {
	table     *model.Table
	refresh   pollRefresher
	rows      []model.Entry
	view      model.ViewState
	viewMode  ViewMode
	showHelp  bool
	quitting  bool
	filtering bool

	width, height int

	detailViewport viewport.Model
	viewportReady  bool
}

// New builds the renderer over table; refresh is asked to RefreshNow() when
// the user presses 'r'.
func New(table *model.Table, refresh pollRefresher) Model {
	return Model{
		table:   table,
		refresh: refresh,
		view:    table.GetView(),
		rows:    table.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(renderInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.detailViewport = viewport.New(msg.Width-4, detailViewportHeight(msg.Height))
		m.viewportReady = true
		m.refreshRows()
		return m, nil

	case tickMsg:
		m.refreshRows()
		return m, tickCmd()

	case tea.KeyMsg:
		handled, cmd := m.handleKey(msg)
		if handled {
			return m, cmd
		}
		return m, nil
	}
	return m, nil
}

// refreshRows re-reads the table snapshot, applies the current filter and
// sort (§4.8: "sort and filter are applied by the renderer over
// snapshot()"), then persists any view-state changes back to the table so
// the poller (which shares no other renderer state) never needs to know
// about them.
func (m *Model) refreshRows() {
	m.rows = filterEntries(m.table.Snapshot(), m.view.FilterText)
	sortEntries(m.rows, m.view.SortKey, m.view.SortReversed)
	if m.view.CursorIndex >= len(m.rows) {
		m.view.CursorIndex = maxInt(0, len(m.rows)-1)
	}
	m.table.SetView(m.view)
}

// filterEntries keeps rows whose host name contains text, case-insensitive.
// An empty text is a no-op so the absence of a filter costs nothing.
func filterEntries(rows []model.Entry, text string) []model.Entry {
	if text == "" {
		return rows
	}
	text = strings.ToLower(text)
	out := rows[:0:0]
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Host.Name), text) {
			out = append(out, r)
		}
	}
	return out
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if len(m.rows) == 0 && m.width == 0 {
		return "loading...\n"
	}

	if m.showHelp {
		return renderHelp()
	}
	if m.viewMode == ViewDetail && len(m.rows) > 0 {
		return renderDetail(m, m.rows[m.clampedCursor()])
	}
	return renderList(m)
}

func (m Model) clampedCursor() int {
	if m.view.CursorIndex < 0 {
		return 0
	}
	if m.view.CursorIndex >= len(m.rows) {
		return len(m.rows) - 1
	}
	return m.view.CursorIndex
}

func sortEntries(rows []model.Entry, key model.SortKey, reversed bool) {
	less := func(i, j int) bool {
		switch key {
		case model.SortName:
			return rows[i].Host.Name < rows[j].Host.Name
		case model.SortCPU:
			return metricOrZero(cpuPct(rows[i].Record)) < metricOrZero(cpuPct(rows[j].Record))
		case model.SortMem:
			return metricOrZero(memPct(rows[i].Record)) < metricOrZero(memPct(rows[j].Record))
		case model.SortDisk:
			return metricOrZero(diskPct(rows[i].Record)) < metricOrZero(diskPct(rows[j].Record))
		default:
			return statusRank(rows[i].Record.Status) < statusRank(rows[j].Record.Status)
		}
	}
	if reversed {
		orig := less
		less = func(i, j int) bool { return orig(j, i) }
	}
	sort.SliceStable(rows, less)
}

// statusRank orders the default sort Up-first, matching §2's "online
// first, then config order" convention carried over from the dashboard
// this renderer is descended from.
func statusRank(s hoststate.Status) int {
	switch s {
	case hoststate.Up:
		return 0
	case hoststate.Polling:
		return 1
	case hoststate.Unknown:
		return 2
	default:
		return 3
	}
}

func metricOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
