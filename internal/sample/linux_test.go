package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStat(t *testing.T) {
	text := "cpu  1000 0 500 8000 200 0 0 0\ncpu0 500 0 250 4000 100 0 0 0\n"
	j, err := ParseStat(text)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), j.User)
	assert.Equal(t, uint64(8000), j.Idle)
	assert.Equal(t, uint64(200), j.IOWait)
}

func TestParseStat_MissingAggregateRow(t *testing.T) {
	_, err := ParseStat("cpu0 1 2 3 4\n")
	assert.Error(t, err)
}

func TestParseLoadavg(t *testing.T) {
	l1, l5, l15, running, total, err := ParseLoadavg("0.52 0.58 0.59 2/567 12345\n")
	require.NoError(t, err)
	assert.Equal(t, 0.52, l1)
	assert.Equal(t, 0.59, l15)
	assert.Equal(t, 2, running)
	assert.Equal(t, 567, total)
}

func TestParseMeminfo(t *testing.T) {
	text := "MemTotal:       16384000 kB\nMemFree:         4096000 kB\nMemAvailable:    8192000 kB\nBuffers:          100000 kB\nCached:          2000000 kB\nSwapTotal:             0 kB\nSwapFree:              0 kB\n"
	total, avail, free, buffers, cached, swapTotal, swapFree, err := ParseMeminfo(text)
	require.NoError(t, err)
	assert.Equal(t, uint64(16384000), total)
	assert.Equal(t, uint64(8192000), avail)
	assert.Equal(t, uint64(4096000), free)
	assert.Equal(t, uint64(100000), buffers)
	assert.Equal(t, uint64(2000000), cached)
	assert.Equal(t, uint64(0), swapTotal)
	assert.Equal(t, uint64(0), swapFree)
}

func TestParseMeminfo_TooFewFieldsIsParseFailure(t *testing.T) {
	_, _, _, _, _, _, _, err := ParseMeminfo("MemTotal: 1000 kB\n")
	assert.Error(t, err)
}

func TestParseUptime(t *testing.T) {
	up, err := ParseUptime("123456.78 98765.43\n")
	require.NoError(t, err)
	assert.Equal(t, 123456.78, up)
}

func TestParseNetDev_SkipsHeaderAndFiltersVirtualInterfaces(t *testing.T) {
	text := "Inter-|   Receive\n face |bytes packets\n  lo: 100 1 0 0 0 0 0 0 100 1 0 0 0 0 0 0\n eth0: 5000 10 0 0 0 0 0 0 3000 8 0 0 0 0 0 0\ndocker0: 999 1 0 0 0 0 0 0 999 1 0 0 0 0 0 0\n"
	rx, tx, err := ParseNetDev(text)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), rx)
	assert.Equal(t, uint64(3000), tx)
}

func TestParseSockstat(t *testing.T) {
	text := "sockets: used 300\nTCP: inuse 12 orphan 0 tw 1 alloc 20 mem 5\nUDP: inuse 3\n"
	inuse, err := ParseSockstat(text)
	require.NoError(t, err)
	assert.Equal(t, 12, inuse)
}

func TestParseDiskstats_ExcludesPartitionWhenParentPresent(t *testing.T) {
	text := "   8       0 sda 100 0 2000 0 50 0 1000 0 0 0 0\n" +
		"   8       1 sda1 40 0 800 0 20 0 400 0 0 0 0\n" +
		"   8      16 sdb1 10 0 200 0 5 0 100 0 0 0 0\n" +
		"   7       0 loop0 5 0 10 0 0 0 0 0 0 0 0\n"
	read, write, err := ParseDiskstats(text)
	require.NoError(t, err)
	// sda whole-device counted, sda1 skipped (parent sda present); sdb1 has
	// no sdb entry so it's counted; loop0 excluded entirely.
	assert.Equal(t, uint64(2000+200), read)
	assert.Equal(t, uint64(1000+100), write)
}

func TestParseDF(t *testing.T) {
	text := "Filesystem     1024-blocks    Used Available Capacity Mounted on\n/dev/sda1        100000    40000     60000      40% /\n"
	total, used, err := ParseDF(text)
	require.NoError(t, err)
	assert.Equal(t, uint64(100000), total)
	assert.Equal(t, uint64(40000), used)
}

func TestParseNproc(t *testing.T) {
	n, err := ParseNproc("8\n")
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}

func TestParseNproc_ZeroIsParseFailure(t *testing.T) {
	_, err := ParseNproc("0\n")
	assert.Error(t, err)
}

func TestParseUint64Saturating_OverflowSaturates(t *testing.T) {
	assert.Equal(t, maxUint64, parseUint64Saturating("999999999999999999999999999999"))
}
