package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/ansimon/internal/model"
)

// renderDetail draws the detail panel: loadavg, procs, uptime, net RX/TX,
// disk R/W, TCP conn count, CPU count, SSH latency, on top of the list's
// rows already shown (§6).
func renderDetail(m Model, e model.Entry) string {
	header := HeaderStyle.Render(fmt.Sprintf(" %s — detail (esc to go back)", e.Host.Name))
	body := m.detailViewport.View()
	if !m.viewportReady {
		body = renderDetailBody(e)
	}
	footer := FooterStyle.Render("esc back | ↑↓/pgup/pgdn scroll | q quit")
	return header + "\n" + body + "\n" + footer
}

func renderDetailBody(e model.Entry) string {
	r := e.Record
	var b strings.Builder

	b.WriteString(LabelStyle.Render("status: ") + StatusStyle(r.Status.Glyph()).Render(r.Status.Glyph()) + "\n")
	b.WriteString(LabelStyle.Render("address: ") + fmt.Sprintf("%s:%d\n", e.Host.Address, e.Host.Port))
	b.WriteString(LabelStyle.Render("group: ") + e.Host.Group() + "\n")

	if r.LastError != "" {
		b.WriteString(MetricStyle(CriticalThreshold).Render("error: "+r.LastError) + "\n")
	}

	if r.LastSample == nil {
		b.WriteString("\nno sample yet\n")
		return b.String()
	}

	s := r.LastSample
	b.WriteString("\n")
	b.WriteString(detailLine("load avg", fmt.Sprintf("%.2f %.2f %.2f", s.LoadAvg1, s.LoadAvg5, s.LoadAvg15)))
	b.WriteString(detailLine("procs", fmt.Sprintf("%d running / %d total", s.ProcsRunning, s.ProcsTotal)))
	b.WriteString(detailLine("uptime", formatUptime(s.UptimeSeconds)))
	b.WriteString(detailLine("cpu count", fmt.Sprintf("%d", s.CPUCount)))
	b.WriteString(detailLine("tcp conns", fmt.Sprintf("%d", s.TCPInUse)))
	b.WriteString(detailLine("ssh latency", fmt.Sprintf("%.0f ms", s.SSHLatencyMs)))

	if r.LastDelta != nil {
		b.WriteString(detailLine("net rx/tx", fmt.Sprintf("%s / %s", fmtRate(r.LastDelta.NetRxBps), fmtRate(r.LastDelta.NetTxBps))))
		b.WriteString(detailLine("disk r/w", fmt.Sprintf("%s / %s", fmtRate(r.LastDelta.DiskReadBps), fmtRate(r.LastDelta.DiskWriteBps))))
	} else {
		b.WriteString(detailLine("net rx/tx", "..."))
		b.WriteString(detailLine("disk r/w", "..."))
	}

	if !r.LastOKAt.IsZero() {
		b.WriteString(detailLine("last ok", r.LastOKAt.Format(time.RFC3339)))
	}

	return b.String()
}

func detailLine(label, value string) string {
	return LabelStyle.Render(fmt.Sprintf("%-14s", label)) + value + "\n"
}

func formatUptime(seconds float64) string {
	d := time.Duration(seconds) * time.Second
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
