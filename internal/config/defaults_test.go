package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDefaults(t *testing.T) {
	d := DefaultDefaults()
	assert.Equal(t, 10*time.Second, d.Interval)
	assert.Equal(t, 10, d.Forks)
	assert.Equal(t, "accept-new", d.StrictHostKeyChecking)
}

func TestLoadWithoutFile(t *testing.T) {
	// No ~/.ansimon.yaml in the test environment: Load should fall back to
	// DefaultDefaults without error.
	d, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, DefaultDefaults().Forks, d.Forks)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ANSIMON_FORKS", "4")
	d, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 4, d.Forks)
}

func TestDeriveProbeTimeout(t *testing.T) {
	assert.Equal(t, 5*time.Second, DeriveProbeTimeout(5*time.Second))
	assert.Equal(t, maxProbeTimeout, DeriveProbeTimeout(time.Minute))
	assert.Equal(t, maxProbeTimeout, DeriveProbeTimeout(0))
}

func TestLoadDerivesProbeTimeoutFromInterval(t *testing.T) {
	t.Setenv("ANSIMON_INTERVAL", "5s")
	d, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 5*time.Second, d.ProbeTimeout)
	assert.False(t, d.ProbeTimeoutExplicit)
}

func TestLoadRespectsExplicitProbeTimeout(t *testing.T) {
	t.Setenv("ANSIMON_INTERVAL", "5s")
	t.Setenv("ANSIMON_PROBE_TIMEOUT", "45s")
	d, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 45*time.Second, d.ProbeTimeout)
	assert.True(t, d.ProbeTimeoutExplicit)
}
