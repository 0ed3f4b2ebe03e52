// Package tui is the reference renderer: a Bubble Tea program that observes
// an internal/model.Table and an internal/model.ViewState and draws the
// host table, detail panel, and help overlay the renderer contract names
// (spec §6). It never writes to the table itself except through ViewState
// mutations; all host data flows one way, from poller to table to here.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - monochrome dashboard background with a cyan accent.
const (
	ColorDarkBg    = lipgloss.Color("#0d1117")
	ColorSurfaceBg = lipgloss.Color("#161b22")
	ColorBorder    = lipgloss.Color("#30363d")

	ColorHealthy  = lipgloss.Color("#3fb950")
	ColorWarning  = lipgloss.Color("#d29922")
	ColorCritical = lipgloss.Color("#f85149")

	ColorTextPrimary   = lipgloss.Color("#e6edf3")
	ColorTextSecondary = lipgloss.Color("#8b949e")
	ColorTextMuted     = lipgloss.Color("#6e7681")

	ColorAccent = lipgloss.Color("#00d7d7")
)

// Severity thresholds for percentage-based metrics.
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	RowStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	RowSelectedStyle = RowStyle.
				Background(ColorSurfaceBg).
				Foreground(ColorAccent).
				Bold(true)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorTextSecondary)
	MutedStyle = lipgloss.NewStyle().Foreground(ColorTextMuted)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)

// MetricColor picks a severity color for a percentage metric.
func MetricColor(pct float64) lipgloss.Color {
	switch {
	case pct >= CriticalThreshold:
		return ColorCritical
	case pct >= WarningThreshold:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// MetricStyle is a style foregrounded by MetricColor(pct).
func MetricStyle(pct float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MetricColor(pct))
}

// StatusStyle colors a host's status glyph.
func StatusStyle(glyph string) lipgloss.Style {
	switch glyph {
	case "[UP]":
		return lipgloss.NewStyle().Foreground(ColorHealthy)
	case "[DN]":
		return lipgloss.NewStyle().Foreground(ColorCritical)
	case "[..]":
		return lipgloss.NewStyle().Foreground(ColorWarning)
	default:
		return lipgloss.NewStyle().Foreground(ColorTextMuted)
	}
}

// CompactBar renders a minimal block-character progress bar for a
// percentage value, colored by severity.
func CompactBar(width int, pct float64) string {
	if width < 1 {
		width = 1
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	filled := int(pct / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return lipgloss.NewStyle().Foreground(MetricColor(pct)).Render(bar)
}
