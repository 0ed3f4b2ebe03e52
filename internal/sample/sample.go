// Package sample turns the raw text of one SSH poll's nine delimited
// sections into a typed Sample (§3, §4.4): pure functions, one per section.
// Unknown lines are skipped and numeric overflow saturates. A field missing
// from its section is left at zero; there is no separate "unavailable"
// marker for it, and only the checks each parser makes (e.g. too few
// meminfo keys, an empty nproc) turn missing data into a parse error.
package sample

import "time"

// CPUJiffies is the aggregate "cpu " row of /proc/stat.
type CPUJiffies struct {
	User, Nice, System, Idle, IOWait, IRQ, SoftIRQ, Steal uint64
}

// Total sums every jiffy bucket.
func (c CPUJiffies) Total() uint64 {
	return c.User + c.Nice + c.System + c.Idle + c.IOWait + c.IRQ + c.SoftIRQ + c.Steal
}

// Sample is a single point-in-time reading from one host (§3).
type Sample struct {
	TakenAt time.Time

	CPU          CPUJiffies
	CPUCount     int
	LoadAvg1     float64
	LoadAvg5     float64
	LoadAvg15    float64
	ProcsRunning int
	ProcsTotal   int

	MemTotalKB  uint64
	MemAvailKB  uint64
	MemFreeKB   uint64
	BuffersKB   uint64
	CachedKB    uint64
	SwapTotalKB uint64
	SwapFreeKB  uint64

	UptimeSeconds float64

	RxBytes uint64
	TxBytes uint64

	DiskReadSectors  uint64
	DiskWriteSectors uint64

	DiskUsedPct float64
	DiskTotalKB uint64
	DiskUsedKB  uint64

	TCPInUse int

	SSHLatencyMs float64
}

// HasSwap reports whether swap accounting is meaningful, per the boundary
// rule that SwapTotal=0 displays as N/A rather than a 0% swap reading.
func (s Sample) HasSwap() bool {
	return s.SwapTotalKB > 0
}
