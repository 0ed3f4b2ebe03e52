package sshexec

import (
	"fmt"
	"strconv"
	"time"
)

// Options is everything BuildArgs needs to assemble one `ssh` invocation
// for a single host (§4.3).
type Options struct {
	Host    string
	Port    int
	User    string
	KeyPath string

	ConnectTimeout        time.Duration
	StrictHostKeyChecking string // "accept-new", "yes", or "no" (§6 flags)
}

// BuildArgs assembles the argv for exec.CommandContext("ssh", args...),
// running remoteCommand non-interactively over a single multiplexed-free
// session (§4.3: one SSH session per poll, no ControlMaster persistence).
func BuildArgs(opts Options, remoteCommand string) []string {
	args := []string{
		"-o", "BatchMode=yes",
		"-o", "StrictHostKeyChecking=" + strictOrDefault(opts.StrictHostKeyChecking),
		"-o", fmt.Sprintf("ConnectTimeout=%d", connectTimeoutSeconds(opts.ConnectTimeout)),
	}
	if opts.Port != 0 {
		args = append(args, "-p", strconv.Itoa(opts.Port))
	}
	if opts.KeyPath != "" {
		args = append(args, "-i", opts.KeyPath)
	}
	args = append(args, target(opts), remoteCommand)
	return args
}

func target(opts Options) string {
	if opts.User != "" {
		return opts.User + "@" + opts.Host
	}
	return opts.Host
}

func strictOrDefault(s string) string {
	if s == "" {
		return "accept-new"
	}
	return s
}

func connectTimeoutSeconds(d time.Duration) int {
	if d <= 0 {
		return 10
	}
	secs := int(d / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
