package tui

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/ansimon/internal/hoststate"
	"github.com/rileyhilliard/ansimon/internal/sample"
)

func cpuPct(r hoststate.HostRecord) *float64 {
	if r.LastDelta == nil {
		return nil
	}
	return r.LastDelta.CPUPct
}

func iowaitPct(r hoststate.HostRecord) *float64 {
	if r.LastDelta == nil {
		return nil
	}
	return r.LastDelta.IOWaitPct
}

func memPct(r hoststate.HostRecord) *float64 {
	if r.LastSample == nil || r.LastSample.MemTotalKB == 0 {
		return nil
	}
	usedKB := float64(r.LastSample.MemTotalKB - r.LastSample.MemAvailKB)
	pct := 100 * usedKB / float64(r.LastSample.MemTotalKB)
	return &pct
}

func diskPct(r hoststate.HostRecord) *float64 {
	if r.LastSample == nil || r.LastSample.DiskTotalKB == 0 {
		return nil
	}
	pct := r.LastSample.DiskUsedPct
	return &pct
}

// fmtPct renders an optional percentage, or "..." before the second sample
// arrives (§4.5).
func fmtPct(v *float64) string {
	if v == nil {
		return "..."
	}
	return fmt.Sprintf("%.0f%%", *v)
}

// fmtKBPair renders "used/total" in humanized units.
func fmtKBPair(usedKB, totalKB uint64) string {
	if totalKB == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%s/%s", humanize.IBytes(usedKB*1024), humanize.IBytes(totalKB*1024))
}

func fmtSwap(s *sample.Sample) string {
	if s == nil || !s.HasSwap() {
		return "N/A"
	}
	used := s.SwapTotalKB - s.SwapFreeKB
	return fmtKBPair(used, s.SwapTotalKB)
}

func fmtRate(bps *float64) string {
	if bps == nil {
		return "..."
	}
	return humanize.Bytes(uint64(*bps)) + "/s"
}
