package tui

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/ansimon/internal/model"
)

// columnWidths mirrors the column list the renderer contract names: status,
// host, group, CPU%, Mem used/total, Disk%, IOw%, Swap used/total (§6).
var columnWidths = []int{5, 16, 10, 6, 18, 6, 6, 18}

func renderList(m Model) string {
	var b strings.Builder
	b.WriteString(renderHeader(m))
	b.WriteString("\n")

	for i, entry := range m.rows {
		line := renderRow(entry)
		if i == m.clampedCursor() {
			line = RowSelectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(renderFooter(m))
	return b.String()
}

func renderHeader(m Model) string {
	title := fmt.Sprintf(" ansimon — %d hosts — sort:%s", len(m.rows), sortLabel(m.view.SortKey, m.view.SortReversed))
	if m.filtering {
		title += fmt.Sprintf(" — filter: %s_", m.view.FilterText)
	} else if m.view.FilterText != "" {
		title += fmt.Sprintf(" — filter: %s", m.view.FilterText)
	}
	cols := padColumns([]string{"STATUS", "HOST", "GROUP", "CPU%", "MEM", "DISK%", "IOW%", "SWAP"})
	return HeaderStyle.Render(title) + "\n" + LabelStyle.Render(cols)
}

func renderRow(e model.Entry) string {
	r := e.Record
	status := StatusStyle(r.Status.Glyph()).Render(r.Status.Glyph())

	var memStr, swapStr string
	if r.LastSample != nil {
		memStr = fmtKBPair(r.LastSample.MemTotalKB-r.LastSample.MemAvailKB, r.LastSample.MemTotalKB)
		swapStr = fmtSwap(r.LastSample)
	} else {
		memStr, swapStr = "...", "..."
	}

	cells := []string{
		status,
		e.Host.Name,
		e.Host.Group(),
		fmtPct(cpuPct(r)),
		memStr,
		fmtPct(diskPct(r)),
		fmtPct(iowaitPct(r)),
		swapStr,
	}
	return padColumns(cells)
}

func padColumns(cells []string) string {
	var b strings.Builder
	for i, c := range cells {
		w := 10
		if i < len(columnWidths) {
			w = columnWidths[i]
		}
		b.WriteString(padRight(c, w))
	}
	return b.String()
}

// padRight pads s with spaces to width w, accounting for ANSI styling by
// measuring the unstyled string length (approximation: lipgloss styles are
// applied to whole cells like the status glyph, so width math stays off the
// styled string here and happens on the raw value before MetricStyle).
func padRight(s string, w int) string {
	visible := len([]rune(stripANSI(s)))
	if visible >= w {
		return s + " "
	}
	return s + strings.Repeat(" ", w-visible)
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sortLabel(key model.SortKey, reversed bool) string {
	name := map[model.SortKey]string{
		model.SortDefault: "status",
		model.SortName:    "name",
		model.SortCPU:     "cpu",
		model.SortMem:     "mem",
		model.SortDisk:    "disk",
	}[key]
	if reversed {
		return name + "↓"
	}
	return name + "↑"
}

func renderFooter(m Model) string {
	if m.filtering {
		return FooterStyle.Render("enter accept | esc clear | backspace edit")
	}
	hints := "q quit | r refresh | s sort | S reverse | / filter | ↑↓ select | enter detail | ? help"
	return FooterStyle.Render(hints)
}
