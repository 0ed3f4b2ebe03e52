package tui

import "github.com/charmbracelet/bubbles/key"

// ViewMode is which pane the key handler routes input to.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
)

type keyMap struct {
	Quit        key.Binding
	Refresh     key.Binding
	CycleSort   key.Binding
	ReverseSort key.Binding
	Filter      key.Binding
	SelectPrev  key.Binding
	SelectNext  key.Binding
	SelectFirst key.Binding
	SelectLast  key.Binding
	Expand      key.Binding
	Collapse    key.Binding
	ToggleHelp  key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Refresh, k.CycleSort, k.ToggleHelp}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SelectPrev, k.SelectNext, k.SelectFirst, k.SelectLast},
		{k.Expand, k.Collapse},
		{k.Quit, k.Refresh, k.CycleSort, k.ReverseSort, k.Filter, k.ToggleHelp},
	}
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	CycleSort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	ReverseSort: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "reverse sort"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	SelectPrev: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "prev"),
	),
	SelectNext: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next"),
	),
	SelectFirst: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("home", "first"),
	),
	SelectLast: key.NewBinding(
		key.WithKeys("end"),
		key.WithHelp("end", "last"),
	),
	Expand: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "detail"),
	),
	Collapse: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	ToggleHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
}
