package sshexec

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func writeUnencryptedKey(t *testing.T) string {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	block, err := ssh.MarshalPrivateKey(priv, "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id_ed25519")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))
	return path
}

func TestValidateKey_Valid(t *testing.T) {
	assert.NoError(t, ValidateKey(writeUnencryptedKey(t)))
}

func TestValidateKey_MissingFile(t *testing.T) {
	err := ValidateKey(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestValidateKey_NotAKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notakey")
	require.NoError(t, os.WriteFile(path, []byte("not a key at all"), 0o600))

	err := ValidateKey(path)
	require.Error(t, err)
}
