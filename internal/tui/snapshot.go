package tui

import "github.com/rileyhilliard/ansimon/internal/model"

// noopRefresh satisfies pollRefresher for render-only use, where there's no
// interactive session to ask for an out-of-band refresh.
type noopRefresh struct{}

func (noopRefresh) RefreshNow() {}

// RenderSnapshot renders the list view once, plain, for non-interactive
// output (piping into `watch`, logs, CI) when stdin or stdout isn't a terminal
// (§2 domain stack, x/term bullet).
func RenderSnapshot(table *model.Table) string {
	m := New(table, noopRefresh{})
	m.width, m.height = 120, 40
	return renderList(m)
}
