package delta

import (
	"testing"
	"time"

	"github.com/rileyhilliard/ansimon/internal/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAt(t0 time.Time, idle, total uint64, rx uint64) *sample.Sample {
	// total = idle + everything else; park the remainder in User so Total()
	// matches exactly.
	return &sample.Sample{
		TakenAt: t0,
		CPU:     sample.CPUJiffies{User: total - idle, Idle: idle},
		RxBytes: rx,
	}
}

func TestCompute_Scenario4_CPUDelta(t *testing.T) {
	t0 := time.Unix(0, 0)
	prev := sampleAt(t0, 100, 1000, 0)
	curr := sampleAt(t0.Add(1*time.Second), 150, 1100, 0)

	m := Compute(prev, curr, nil)
	require.NotNil(t, m.CPUPct)
	assert.InDelta(t, 50.0, *m.CPUPct, 0.001)
}

func TestCompute_Scenario5_CounterWrap(t *testing.T) {
	t0 := time.Unix(0, 0)
	prev := sampleAt(t0, 100, 1000, ^uint64(0)-10)
	curr := sampleAt(t0.Add(1*time.Second), 150, 1100, 5)

	m := Compute(prev, curr, nil)
	assert.Nil(t, m.NetRxBps, "wrapped counter must report unavailable, not negative")
	require.NotNil(t, m.CPUPct, "unrelated metrics on the same tick are unaffected")
}

func TestCompute_ElapsedBelowThresholdCarriesForward(t *testing.T) {
	t0 := time.Unix(0, 0)
	prev := sampleAt(t0, 100, 1000, 0)
	curr := sampleAt(t0.Add(100*time.Millisecond), 110, 1050, 0)

	priorVal := 42.0
	prior := &Metrics{CPUPct: &priorVal}

	m := Compute(prev, curr, prior)
	require.NotNil(t, m.CPUPct)
	assert.Equal(t, 42.0, *m.CPUPct)
}

func TestCompute_ClampsToZeroAndHundred(t *testing.T) {
	t0 := time.Unix(0, 0)
	// idle delta exceeds total delta: would be negative cpu_pct, must clamp to 0.
	prev := sampleAt(t0, 100, 1000, 0)
	curr := sampleAt(t0.Add(1*time.Second), 990, 1001, 0)

	m := Compute(prev, curr, nil)
	require.NotNil(t, m.CPUPct)
	assert.GreaterOrEqual(t, *m.CPUPct, 0.0)
	assert.LessOrEqual(t, *m.CPUPct, 100.0)
}

func TestCompute_ZeroTotalDeltaIsUnavailable(t *testing.T) {
	t0 := time.Unix(0, 0)
	prev := sampleAt(t0, 100, 1000, 0)
	curr := sampleAt(t0.Add(1*time.Second), 100, 1000, 0)

	m := Compute(prev, curr, nil)
	assert.Nil(t, m.CPUPct)
}

func TestCompute_ApplyingSameSampleTwiceIsIdempotent(t *testing.T) {
	t0 := time.Unix(0, 0)
	prev := sampleAt(t0, 100, 1000, 0)
	curr := sampleAt(t0.Add(1*time.Second), 150, 1100, 500)

	m1 := Compute(prev, curr, nil)
	m2 := Compute(prev, curr, nil)
	assert.Equal(t, *m1.CPUPct, *m2.CPUPct)
	assert.Equal(t, *m1.NetRxBps, *m2.NetRxBps)
}
