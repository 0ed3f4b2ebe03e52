package sshexec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildArgs_BasicHost(t *testing.T) {
	args := BuildArgs(Options{Host: "web1"}, "echo hi")
	assert.Contains(t, args, "BatchMode=yes")
	assert.Contains(t, args, "StrictHostKeyChecking=accept-new")
	assert.Contains(t, args, "web1")
	assert.Contains(t, args, "echo hi")
	assert.NotContains(t, args, "-p")
	assert.NotContains(t, args, "-i")
}

func TestBuildArgs_UserPortKey(t *testing.T) {
	args := BuildArgs(Options{
		Host: "db1", Port: 2222, User: "ops", KeyPath: "/home/ops/.ssh/id_ed25519",
	}, "whoami")
	assert.Contains(t, args, "ops@db1")
	assert.Contains(t, args, "2222")
	assert.Contains(t, args, "/home/ops/.ssh/id_ed25519")
}

func TestBuildArgs_StrictHostKeyCheckingOverride(t *testing.T) {
	args := BuildArgs(Options{Host: "h", StrictHostKeyChecking: "no"}, "true")
	assert.Contains(t, args, "StrictHostKeyChecking=no")
}

func TestConnectTimeoutSeconds_DefaultsAndClamps(t *testing.T) {
	assert.Equal(t, 10, connectTimeoutSeconds(0))
	assert.Equal(t, 1, connectTimeoutSeconds(200*time.Millisecond))
	assert.Equal(t, 5, connectTimeoutSeconds(5*time.Second))
}
