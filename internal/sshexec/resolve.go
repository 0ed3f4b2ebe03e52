package sshexec

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kevinburke/ssh_config"
)

// Defaults is what ~/.ssh/config can pre-fill for a host alias before
// flag/inventory values override it: user, port, and an identity file
// (§4.3). It never supplies transport settings, since the ssh subprocess
// reads its own config file directly; this only feeds argv construction
// when the inventory itself is silent on a field.
type Defaults struct {
	User    string
	Port    int
	KeyPath string
}

// ResolveDefaults looks up alias in ~/.ssh/config the same way the ssh
// client itself would, so a host with no inventory-level user/port/key
// still resolves sensibly. A missing or unreadable config file is not an
// error: ResolveDefaults just returns a zero Defaults.
//
// kevinburke/ssh_config doesn't understand the Match directive, so, like
// the teacher's resolveSSHSettings, only the part of the file before the
// first Match block is considered.
func ResolveDefaults(alias string) Defaults {
	var d Defaults

	content, err := preprocessConfig(sshConfigPath())
	if err != nil {
		return d
	}

	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return d
	}

	if user, _ := cfg.Get(alias, "User"); user != "" {
		d.User = user
	}
	if port, _ := cfg.Get(alias, "Port"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			d.Port = p
		}
	}
	if identity, _ := cfg.Get(alias, "IdentityFile"); identity != "" {
		d.KeyPath = expandHome(identity)
	}

	return d
}

func sshConfigPath() string {
	return filepath.Join(homeDir(), ".ssh", "config")
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// preprocessConfig strips everything from the first "Match " directive
// onward, since kevinburke/ssh_config has no support for it.
func preprocessConfig(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(content), "\n")
	var kept []string
	for _, line := range lines {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "match ") {
			break
		}
		kept = append(kept, line)
	}
	return []byte(strings.Join(kept, "\n")), nil
}
