package sample

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSections() map[string]string {
	return map[string]string{
		SectionStat:      "cpu  1000 0 500 8000 200 0 0 0\n",
		SectionMeminfo:   "MemTotal: 16384000 kB\nMemFree: 4096000 kB\nMemAvailable: 8192000 kB\n",
		SectionLoadavg:   "0.1 0.2 0.3 1/200 999\n",
		SectionUptime:    "1000.0 900.0\n",
		SectionNetDev:    "a\nb\neth0: 10 0 0 0 0 0 0 0 20 0 0 0 0 0 0 0\n",
		SectionSockstat:  "TCP: inuse 4\n",
		SectionDiskstats: "8 0 sda 1 0 100 0 1 0 200 0 0 0 0\n",
		SectionDF:        "Filesystem blocks Used Available Capacity Mounted\n/dev/sda1 1000 400 600 40% /\n",
		SectionNproc:     "4\n",
	}
}

func TestParseSections_Valid(t *testing.T) {
	s, err := ParseSections(validSections(), time.Unix(0, 0))
	require.NoError(t, err)
	assert.Equal(t, 4, s.CPUCount)
	assert.Equal(t, uint64(400), s.DiskUsedKB)
	assert.Equal(t, 40.0, s.DiskUsedPct)
}

func TestParseSections_MissingSectionIsParseFailure(t *testing.T) {
	sections := validSections()
	delete(sections, SectionMeminfo)
	_, err := ParseSections(sections, time.Unix(0, 0))
	assert.Error(t, err)
}
