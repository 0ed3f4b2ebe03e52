package tui

import "strings"

// renderHelp draws the full keybinding reference overlay (the '?' toggle).
func renderHelp() string {
	lines := []string{
		"ansimon — keybindings",
		"",
		"q / ctrl+c   quit",
		"r            refresh now",
		"s            cycle sort key",
		"S            reverse sort",
		"/            filter hosts by name",
		"↑/k, ↓/j     move selection",
		"home / end   jump to first / last",
		"enter        open detail panel",
		"esc          close detail panel / help",
		"pgup/pgdn    scroll detail panel",
		"?            toggle this help",
		"",
		"press ? or esc to close",
	}
	return BorderStyle.Render(strings.Join(lines, "\n"))
}
