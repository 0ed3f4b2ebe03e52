package sshexec

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/ansimon/internal/hoststate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSSH writes a shell script that stands in for the real `ssh` binary so
// Run can be exercised without a network, the same way the teacher fakes
// local commands with plain shell one-liners in its exec package tests.
func fakeSSH(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ssh")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func withBinary(t *testing.T, path string) {
	t.Helper()
	old := binary
	binary = path
	t.Cleanup(func() { binary = old })
}

func TestRun_Success(t *testing.T) {
	withBinary(t, fakeSSH(t, `echo "@@ANSIMON@@nproc@@"; echo 4`))

	stdout, latency, err := Run(context.Background(), Options{Host: "h1"})
	require.Nil(t, err)
	assert.Contains(t, stdout, "nproc")
	assert.GreaterOrEqual(t, latency, time.Duration(0))
}

func TestRun_AuthFailure(t *testing.T) {
	withBinary(t, fakeSSH(t, `echo "Permission denied (publickey)." 1>&2; exit 255`))

	_, _, err := Run(context.Background(), Options{Host: "h1"})
	require.NotNil(t, err)
	assert.Equal(t, hoststate.AuthFailed, err.Kind)
}

func TestRun_ConnectFailure(t *testing.T) {
	withBinary(t, fakeSSH(t, `echo "ssh: connect to host h1 port 22: Connection refused" 1>&2; exit 255`))

	_, _, err := Run(context.Background(), Options{Host: "h1"})
	require.NotNil(t, err)
	assert.Equal(t, hoststate.ConnectTimeout, err.Kind)
}

func TestRun_RemoteCommandFailed(t *testing.T) {
	withBinary(t, fakeSSH(t, `echo "nproc: command not found" 1>&2; exit 127`))

	_, _, err := Run(context.Background(), Options{Host: "h1"})
	require.NotNil(t, err)
	assert.Equal(t, hoststate.RemoteCommandFailed, err.Kind)
	assert.Equal(t, 127, err.ExitCode)
	assert.Contains(t, err.StderrTail, "nproc")
}

func TestRun_Cancelled(t *testing.T) {
	withBinary(t, fakeSSH(t, `sleep 5`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Run(ctx, Options{Host: "h1"})
	require.NotNil(t, err)
	assert.Equal(t, hoststate.Cancelled, err.Kind)
}
