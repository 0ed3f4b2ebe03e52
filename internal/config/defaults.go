// Package config resolves Ansimon's tunable defaults (poll interval, fork
// budget, SSH timeouts, strict host key policy) from an optional
// ~/.ansimon.yaml file and environment variables, layered under the CLI
// flags that ultimately win (see internal/cli). Nothing here is written to
// disk; there is no persisted application state.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rileyhilliard/ansimon/internal/errors"
	"github.com/spf13/viper"
)

// ConfigFileName is the optional user-level defaults file.
const ConfigFileName = ".ansimon.yaml"

// maxProbeTimeout is the spec's cap on the derived per-probe deadline (§5
// trigger (i)): min(interval, 30s).
const maxProbeTimeout = 30 * time.Second

// Defaults holds the tunables §4.7 and §6 name defaults for: poll interval,
// fork budget, per-probe timeout, and SSH subprocess strictness.
type Defaults struct {
	Interval              time.Duration `mapstructure:"interval"`
	Forks                 int           `mapstructure:"forks"`
	ProbeTimeout          time.Duration `mapstructure:"probe_timeout"`
	StrictHostKeyChecking string        `mapstructure:"strict_host_key_checking"`

	// ProbeTimeoutExplicit records whether ProbeTimeout came from an
	// explicit ~/.ansimon.yaml/ANSIMON_PROBE_TIMEOUT setting rather than
	// being derived from Interval, so a later --interval override (applied
	// by internal/cli after Load) knows whether it's still free to
	// re-derive ProbeTimeout or must leave the user's explicit value alone.
	ProbeTimeoutExplicit bool `mapstructure:"-"`
}

// DeriveProbeTimeout implements §5 trigger (i): the per-probe deadline is
// min(interval, 30s) unless the user explicitly configured one.
func DeriveProbeTimeout(interval time.Duration) time.Duration {
	if interval <= 0 || interval > maxProbeTimeout {
		return maxProbeTimeout
	}
	return interval
}

// DefaultDefaults returns the spec's literal defaults: interval=10s,
// forks=10, probe timeout derived as min(interval, 30s) (here: 10s).
func DefaultDefaults() Defaults {
	interval := 10 * time.Second
	return Defaults{
		Interval:              interval,
		Forks:                 10,
		ProbeTimeout:          DeriveProbeTimeout(interval),
		StrictHostKeyChecking: "accept-new",
	}
}

// Load resolves Defaults from (in increasing priority): built-in defaults,
// ~/.ansimon.yaml if present, and ANSIMON_-prefixed environment variables.
// A missing config file is not an error; a malformed one is ErrConfig.
// probe_timeout has no built-in default: when the user never sets one, it
// is derived from the resolved Interval instead of pinned to a static 10s.
func Load() (Defaults, error) {
	d := DefaultDefaults()

	v := viper.New()
	v.SetEnvPrefix("ANSIMON")
	v.AutomaticEnv()
	v.SetDefault("interval", d.Interval)
	v.SetDefault("forks", d.Forks)
	v.SetDefault("strict_host_key_checking", d.StrictHostKeyChecking)

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ConfigFileName)
		if _, statErr := os.Stat(path); statErr == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return d, errors.WrapWithCode(err, errors.ErrConfig,
					"could not read "+ConfigFileName,
					"check that the file is valid YAML")
			}
		}
	}

	explicit := v.IsSet("probe_timeout")

	var out Defaults
	if err := v.Unmarshal(&out); err != nil {
		return d, errors.WrapWithCode(err, errors.ErrConfig,
			"could not parse "+ConfigFileName,
			"check field types against the documented defaults")
	}

	out.ProbeTimeoutExplicit = explicit
	if explicit {
		// probe_timeout has no default, so Unmarshal never sees an env-only
		// value for it; read it back through viper's own lookup instead.
		out.ProbeTimeout = v.GetDuration("probe_timeout")
	} else {
		out.ProbeTimeout = DeriveProbeTimeout(out.Interval)
	}
	return out, nil
}
