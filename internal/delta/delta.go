// Package delta combines two successive Samples from one host into
// rate-derived metrics: CPU%, IO-wait%, network and disk throughput (§4.5).
package delta

import (
	"time"

	"github.com/rileyhilliard/ansimon/internal/sample"
)

// minElapsed is the smallest gap between samples the engine will compute a
// fresh delta over; smaller gaps carry the prior delta forward unchanged to
// avoid divide-by-tiny jitter.
const minElapsed = 500 * time.Millisecond

const bytesPerSector = 512

// Metrics is the set of rates derived from two successive Samples. A nil
// pointer means "unavailable this tick" (counter wrap, reboot, or an
// elapsed window too small to trust) — never a negative number.
type Metrics struct {
	CPUPct       *float64
	IOWaitPct    *float64
	NetRxBps     *float64
	NetTxBps     *float64
	DiskReadBps  *float64
	DiskWriteBps *float64
}

// Compute derives Metrics from prev and curr. If elapsed between the two
// samples is below minElapsed, prior is returned unchanged (§4.5's "carried
// forward, not recomputed" rule); prior may be nil.
func Compute(prev, curr *sample.Sample, prior *Metrics) *Metrics {
	elapsed := curr.TakenAt.Sub(prev.TakenAt).Seconds()
	if elapsed < minElapsed.Seconds() {
		return prior
	}

	m := &Metrics{}

	prevTotal, currTotal := prev.CPU.Total(), curr.CPU.Total()
	if currTotal >= prevTotal && currTotal-prevTotal > 0 {
		totalDelta := float64(currTotal - prevTotal)
		idleDelta := float64(curr.CPU.Idle) - float64(prev.CPU.Idle)
		cpuPct := clamp(100 * (1 - idleDelta/totalDelta))
		m.CPUPct = &cpuPct

		iowaitDelta := float64(curr.CPU.IOWait) - float64(prev.CPU.IOWait)
		iowaitPct := clamp(100 * iowaitDelta / totalDelta)
		m.IOWaitPct = &iowaitPct
	}

	m.NetRxBps = rateUint64(prev.RxBytes, curr.RxBytes, elapsed)
	m.NetTxBps = rateUint64(prev.TxBytes, curr.TxBytes, elapsed)
	m.DiskReadBps = rateSectors(prev.DiskReadSectors, curr.DiskReadSectors, elapsed)
	m.DiskWriteBps = rateSectors(prev.DiskWriteSectors, curr.DiskWriteSectors, elapsed)

	return m
}

// rateUint64 computes (curr-prev)/elapsed, returning nil when curr < prev
// (counter wrap or reboot — §3's invariant that a smaller value than the
// previous sample suppresses the delta rather than reporting negative).
func rateUint64(prev, curr uint64, elapsed float64) *float64 {
	if curr < prev {
		return nil
	}
	v := float64(curr-prev) / elapsed
	return &v
}

func rateSectors(prevSectors, currSectors uint64, elapsed float64) *float64 {
	if currSectors < prevSectors {
		return nil
	}
	v := float64(currSectors-prevSectors) * bytesPerSector / elapsed
	return &v
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
