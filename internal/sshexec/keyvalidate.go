package sshexec

import (
	"os"
	"strings"

	"github.com/rileyhilliard/ansimon/internal/errors"
	"golang.org/x/crypto/ssh"
)

// ValidateKey reads keyPath and confirms it parses as an unencrypted
// private key before any host is dispatched against it, so a bad key
// surfaces once at startup as a CONFIG error rather than as a per-host
// AuthFailed on every poll (§6, §7). It never touches the network: the
// actual connection still goes through the ssh subprocess in Run.
func ValidateKey(keyPath string) error {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "cannot read SSH key: "+keyPath, "check the -k/--key path")
	}

	if _, err := ssh.ParsePrivateKey(key); err != nil {
		if strings.Contains(err.Error(), "encrypted") || strings.Contains(err.Error(), "passphrase") {
			return errors.New(errors.ErrConfig, "SSH key is encrypted: "+keyPath,
				"ansimon runs non-interactively; use an unencrypted key or load one into ssh-agent and omit -k/--key")
		}
		return errors.WrapWithCode(err, errors.ErrConfig, "SSH key is not a valid private key: "+keyPath, "")
	}

	return nil
}
