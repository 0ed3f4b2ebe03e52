package sample

import (
	"bufio"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rileyhilliard/ansimon/internal/errors"
)

const maxUint64 = ^uint64(0)

// parseUint64Saturating parses s as a base-10 uint64, saturating to the
// maximum representable value on overflow rather than erroring, per §4.4.
func parseUint64Saturating(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return maxUint64
		}
		return 0
	}
	return v
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseStat extracts the aggregate CPU jiffy counters from the "cpu " row of
// /proc/stat (the aggregate row, not a per-core "cpuN" row).
func ParseStat(text string) (CPUJiffies, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != "cpu" {
			continue
		}
		var j CPUJiffies
		get := func(i int) uint64 {
			if i < len(fields) {
				return parseUint64Saturating(fields[i])
			}
			return 0
		}
		j.User = get(1)
		j.Nice = get(2)
		j.System = get(3)
		j.Idle = get(4)
		j.IOWait = get(5)
		j.IRQ = get(6)
		j.SoftIRQ = get(7)
		j.Steal = get(8)
		return j, nil
	}
	return CPUJiffies{}, errors.New(errors.ErrParse, "missing aggregate 'cpu ' row in stat section", "")
}

// ParseLoadavg parses /proc/loadavg: "load1 load5 load15 running/total lastpid".
func ParseLoadavg(text string) (load1, load5, load15 float64, running, total int, err error) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) < 4 {
		return 0, 0, 0, 0, 0, errors.New(errors.ErrParse, "malformed loadavg section", "")
	}
	load1 = parseFloat(fields[0])
	load5 = parseFloat(fields[1])
	load15 = parseFloat(fields[2])
	if idx := strings.IndexByte(fields[3], '/'); idx >= 0 {
		running, _ = strconv.Atoi(fields[3][:idx])
		total, _ = strconv.Atoi(fields[3][idx+1:])
	}
	return load1, load5, load15, running, total, nil
}

// ParseMeminfo reads MemTotal, MemAvailable, MemFree, Buffers, Cached,
// SwapTotal, SwapFree (all already in kB in /proc/meminfo).
func ParseMeminfo(text string) (total, avail, free, buffers, cached, swapTotal, swapFree uint64, err error) {
	found := 0
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		key := strings.TrimSuffix(fields[0], ":")
		val := parseUint64Saturating(fields[1])
		switch key {
		case "MemTotal":
			total, found = val, found+1
		case "MemAvailable":
			avail, found = val, found+1
		case "MemFree":
			free, found = val, found+1
		case "Buffers":
			buffers, found = val, found+1
		case "Cached":
			cached, found = val, found+1
		case "SwapTotal":
			swapTotal, found = val, found+1
		case "SwapFree":
			swapFree, found = val, found+1
		}
	}
	if found < 3 {
		return 0, 0, 0, 0, 0, 0, 0, errors.New(errors.ErrParse, "meminfo section missing required fields", "")
	}
	return total, avail, free, buffers, cached, swapTotal, swapFree, nil
}

// ParseUptime reads the first field of /proc/uptime (seconds since boot).
func ParseUptime(text string) (float64, error) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return 0, errors.New(errors.ErrParse, "empty uptime section", "")
	}
	return parseFloat(fields[0]), nil
}

var excludedIfacePrefixes = []string{"lo", "docker", "veth", "br-", "cni", "flannel", "tailscale", "wg"}

func ifaceExcluded(name string) bool {
	for _, p := range excludedIfacePrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// ParseNetDev sums rx/tx bytes across every interface in /proc/net/dev
// except loopback and virtual/container interfaces (§4.4). The first two
// header lines are skipped.
func ParseNetDev(text string) (rxBytes, txBytes uint64, err error) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for scanner.Scan() {
		line++
		if line <= 2 {
			continue
		}
		raw := scanner.Text()
		colon := strings.Index(raw, ":")
		if colon < 0 {
			continue
		}
		iface := strings.TrimSpace(raw[:colon])
		if ifaceExcluded(iface) {
			continue
		}
		fields := strings.Fields(raw[colon+1:])
		if len(fields) < 9 {
			continue
		}
		rxBytes += parseUint64Saturating(fields[0])
		txBytes += parseUint64Saturating(fields[8])
	}
	return rxBytes, txBytes, nil
}

// ParseSockstat reads the TCP "inuse" count from /proc/net/sockstat.
func ParseSockstat(text string) (int, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 || fields[0] != "TCP:" {
			continue
		}
		for i := 1; i+1 < len(fields); i += 2 {
			if fields[i] == "inuse" {
				v, _ := strconv.Atoi(fields[i+1])
				return v, nil
			}
		}
	}
	return 0, nil // sockstat without a TCP line is unusual but not fatal
}

var (
	partitionSuffix = regexp.MustCompile(`^([a-z]+)(\d+)$`)
	nvmePartition   = regexp.MustCompile(`^(nvme\d+n\d+)p(\d+)$`)
	mmcPartition    = regexp.MustCompile(`^(mmcblk\d+)p(\d+)$`)
)

func parentDevice(name string) (string, bool) {
	if m := partitionSuffix.FindStringSubmatch(name); m != nil {
		return m[1], true
	}
	if m := nvmePartition.FindStringSubmatch(name); m != nil {
		return m[1], true
	}
	if m := mmcPartition.FindStringSubmatch(name); m != nil {
		return m[1], true
	}
	return "", false
}

var excludedDiskPrefixes = []string{"loop", "ram", "dm-", "sr"}

func diskExcluded(name string) bool {
	for _, p := range excludedDiskPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// ParseDiskstats sums read/write sectors across physical block devices in
// /proc/diskstats, excluding loop/ram/dm/sr devices and excluding a
// partition's entry when its parent whole-device entry is also present
// (§4.4 prefers whole-device totals).
func ParseDiskstats(text string) (readSectors, writeSectors uint64, err error) {
	type row struct {
		readSectors, writeSectors uint64
	}
	rows := map[string]row{}
	var order []string

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 10 {
			continue
		}
		name := fields[2]
		if diskExcluded(name) {
			continue
		}
		r := row{
			readSectors:  parseUint64Saturating(fields[5]),
			writeSectors: parseUint64Saturating(fields[9]),
		}
		rows[name] = r
		order = append(order, name)
	}

	present := make(map[string]bool, len(order))
	for _, name := range order {
		present[name] = true
	}

	for _, name := range order {
		if parent, isPartition := parentDevice(name); isPartition && present[parent] {
			continue
		}
		r := rows[name]
		readSectors += r.readSectors
		writeSectors += r.writeSectors
	}
	return readSectors, writeSectors, nil
}

// ParseDF parses `df -P /` output: the second line, column 2 (total) and
// column 3 (used), in 1024-byte blocks (already kB).
func ParseDF(text string) (totalKB, usedKB uint64, err error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) < 2 {
		return 0, 0, errors.New(errors.ErrParse, "df section missing data row", "")
	}
	fields := strings.Fields(lines[1])
	if len(fields) < 4 {
		return 0, 0, errors.New(errors.ErrParse, "df section malformed data row", "")
	}
	return parseUint64Saturating(fields[1]), parseUint64Saturating(fields[2]), nil
}

// ParseNproc parses the nproc section: a single integer CPU count. A
// reported count of 0 is a flagged parse failure (boundary behavior, §8).
func ParseNproc(text string) (int, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, errors.New(errors.ErrParse, "empty nproc section", "")
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, errors.New(errors.ErrParse, "nproc section is not an integer", "")
	}
	if n == 0 {
		return 0, errors.New(errors.ErrParse, "cpu_count is 0", "")
	}
	return n, nil
}

// clampPct clamps a percentage into [0, 100], guarding against NaN inputs.
func clampPct(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
