package sample

import (
	"time"

	"github.com/rileyhilliard/ansimon/internal/errors"
)

// Section names, in the fixed order the Remote Command Set frames them in
// (§4.3). ParseSections requires every one of them to be present: a missing
// section is a parse failure for the tick, not per-section degradation
// (Open Question resolution, SPEC_FULL.md §0).
const (
	SectionStat      = "stat"
	SectionMeminfo   = "meminfo"
	SectionLoadavg   = "loadavg"
	SectionUptime    = "uptime"
	SectionNetDev    = "netdev"
	SectionSockstat  = "sockstat"
	SectionDiskstats = "diskstats"
	SectionDF        = "df"
	SectionNproc     = "nproc"
)

// Sections lists every section name Ansimon's one-liner must produce, in
// wire order.
var Sections = []string{
	SectionStat, SectionMeminfo, SectionLoadavg, SectionUptime, SectionNetDev,
	SectionSockstat, SectionDiskstats, SectionDF, SectionNproc,
}

// ParseSections assembles a Sample from the section text produced by one
// poll, stamping TakenAt with the caller-supplied takenAt (the poller passes
// the moment the full round-trip's output became available).
func ParseSections(sections map[string]string, takenAt time.Time) (*Sample, error) {
	for _, name := range Sections {
		if _, ok := sections[name]; !ok {
			return nil, errors.New(errors.ErrParse, "missing section: "+name, "")
		}
	}

	s := &Sample{TakenAt: takenAt}

	cpu, err := ParseStat(sections[SectionStat])
	if err != nil {
		return nil, wrapParse(SectionStat, err)
	}
	s.CPU = cpu

	total, avail, free, buffers, cached, swapTotal, swapFree, err := ParseMeminfo(sections[SectionMeminfo])
	if err != nil {
		return nil, wrapParse(SectionMeminfo, err)
	}
	s.MemTotalKB, s.MemAvailKB, s.MemFreeKB = total, avail, free
	s.BuffersKB, s.CachedKB = buffers, cached
	s.SwapTotalKB, s.SwapFreeKB = swapTotal, swapFree

	load1, load5, load15, running, procsTotal, err := ParseLoadavg(sections[SectionLoadavg])
	if err != nil {
		return nil, wrapParse(SectionLoadavg, err)
	}
	s.LoadAvg1, s.LoadAvg5, s.LoadAvg15 = load1, load5, load15
	s.ProcsRunning, s.ProcsTotal = running, procsTotal

	uptime, err := ParseUptime(sections[SectionUptime])
	if err != nil {
		return nil, wrapParse(SectionUptime, err)
	}
	s.UptimeSeconds = uptime

	rx, tx, err := ParseNetDev(sections[SectionNetDev])
	if err != nil {
		return nil, wrapParse(SectionNetDev, err)
	}
	s.RxBytes, s.TxBytes = rx, tx

	inuse, err := ParseSockstat(sections[SectionSockstat])
	if err != nil {
		return nil, wrapParse(SectionSockstat, err)
	}
	s.TCPInUse = inuse

	readSectors, writeSectors, err := ParseDiskstats(sections[SectionDiskstats])
	if err != nil {
		return nil, wrapParse(SectionDiskstats, err)
	}
	s.DiskReadSectors, s.DiskWriteSectors = readSectors, writeSectors

	totalKB, usedKB, err := ParseDF(sections[SectionDF])
	if err != nil {
		return nil, wrapParse(SectionDF, err)
	}
	s.DiskTotalKB, s.DiskUsedKB = totalKB, usedKB
	if totalKB > 0 {
		s.DiskUsedPct = clampPct(100 * float64(usedKB) / float64(totalKB))
	}

	cpuCount, err := ParseNproc(sections[SectionNproc])
	if err != nil {
		return nil, wrapParse(SectionNproc, err)
	}
	s.CPUCount = cpuCount

	return s, nil
}

func wrapParse(section string, err error) error {
	return errors.WrapWithCode(err, errors.ErrParse, "failed to parse section: "+section, "")
}
