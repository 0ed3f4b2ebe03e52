package sshexec

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"syscall"
	"time"

	"github.com/rileyhilliard/ansimon/internal/hoststate"
)

// binary is the ssh executable invoked for every poll (§4.3: a subprocess,
// not a native protocol dial).
var binary = "ssh"

// killGrace is how long a cancelled probe's ssh subprocess gets after
// SIGTERM before Go escalates to SIGKILL itself (§5 straggler cancellation).
const killGrace = 2 * time.Second

// Run executes one poll against a single host: one `ssh` subprocess running
// BuildMetricsCommand's one-liner over a single session. It never returns a
// plain error — failures are classified into a hoststate.ProbeError so the
// caller can feed them straight to HostRecord.Fail (§4.6, §7).
//
// Cancelling ctx (the poller does this at a tick boundary for a straggler)
// sends SIGTERM first and SIGKILL only after killGrace, rather than killing
// outright, so a host that's merely slow gets a clean chance to exit.
func Run(ctx context.Context, opts Options) (stdout string, latency time.Duration, probeErr *hoststate.ProbeError) {
	args := BuildArgs(opts, BuildMetricsCommand())
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Cancel = func() error { return cmd.Process.Signal(syscall.SIGTERM) }
	cmd.WaitDelay = killGrace

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	start := time.Now()
	err := cmd.Run()
	latency = time.Since(start)

	if err == nil {
		return outBuf.String(), latency, nil
	}

	if ctx.Err() != nil {
		return "", latency, &hoststate.ProbeError{Kind: hoststate.Cancelled, Reason: ctx.Err().Error()}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return "", latency, classifyExitCode(exitErr.ExitCode(), errBuf.String())
	}

	return "", latency, &hoststate.ProbeError{Kind: hoststate.ConnectTimeout, Reason: err.Error()}
}

// classifyExitCode maps the ssh client's own exit codes (distinct from the
// remote command's) to a failure kind. ssh itself exits 255 on any
// connection/auth failure; any other non-zero code is the remote command's
// own exit status, since ssh propagates it verbatim (§4.3, §7).
func classifyExitCode(code int, stderr string) *hoststate.ProbeError {
	if code == 255 {
		if looksLikeAuthFailure(stderr) {
			return &hoststate.ProbeError{Kind: hoststate.AuthFailed, Reason: lastLine(stderr)}
		}
		return &hoststate.ProbeError{Kind: hoststate.ConnectTimeout, Reason: lastLine(stderr)}
	}
	return &hoststate.ProbeError{Kind: hoststate.RemoteCommandFailed, ExitCode: code, StderrTail: lastLine(stderr)}
}

func looksLikeAuthFailure(stderr string) bool {
	needles := []string{"Permission denied", "Authentication failed", "Too many authentication failures"}
	for _, n := range needles {
		if bytes.Contains([]byte(stderr), []byte(n)) {
			return true
		}
	}
	return false
}

func lastLine(s string) string {
	lines := bytes.Split(bytes.TrimRight([]byte(s), "\n"), []byte("\n"))
	return string(lines[len(lines)-1])
}

