package sshexec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T, sshConfig string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".ssh"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ssh", "config"), []byte(sshConfig), 0o644))
	t.Setenv("HOME", dir)
}

func TestResolveDefaults_Basic(t *testing.T) {
	withHome(t, "Host web1\n  HostName 10.0.0.5\n  User deploy\n  Port 2201\n  IdentityFile ~/.ssh/deploy_key\n")

	d := ResolveDefaults("web1")
	assert.Equal(t, "deploy", d.User)
	assert.Equal(t, 2201, d.Port)
	assert.Contains(t, d.KeyPath, ".ssh/deploy_key")
}

func TestResolveDefaults_NoConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	d := ResolveDefaults("anything")
	assert.Equal(t, Defaults{}, d)
}

func TestResolveDefaults_StopsAtMatchBlock(t *testing.T) {
	withHome(t, "Host web1\n  User early\n\nMatch host *.internal\n  User late\n\nHost web2\n  User hidden\n")

	d := ResolveDefaults("web1")
	assert.Equal(t, "early", d.User)

	hidden := ResolveDefaults("web2")
	assert.Equal(t, Defaults{}, hidden)
}

func TestResolveDefaults_UnknownHostReturnsZero(t *testing.T) {
	withHome(t, "Host web1\n  User deploy\n")
	assert.Equal(t, Defaults{}, ResolveDefaults("nope"))
}
