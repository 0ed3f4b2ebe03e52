// Package hoststate implements the per-host state machine and live record
// surfaced to the UI (§3 HostRecord, §4.6).
package hoststate

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/ansimon/internal/delta"
	ansierrors "github.com/rileyhilliard/ansimon/internal/errors"
	"github.com/rileyhilliard/ansimon/internal/inventory"
	"github.com/rileyhilliard/ansimon/internal/sample"
)

// Status is one of the four states a host can be in (§4.6).
type Status int

const (
	Unknown Status = iota
	Polling
	Up
	Down
)

// Glyph returns the status glyph the renderer contract names in §6.
func (s Status) Glyph() string {
	switch s {
	case Up:
		return "[UP]"
	case Down:
		return "[DN]"
	case Polling:
		return "[..]"
	default:
		return "[--]"
	}
}

func (s Status) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Polling:
		return "polling"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "invalid"
	}
}

// FailureKind classifies why a probe failed (§4.6, §7).
type FailureKind int

const (
	ConnectTimeout FailureKind = iota
	AuthFailed
	RemoteCommandFailed
	ParseFailed
	Cancelled
)

func (k FailureKind) String() string {
	switch k {
	case ConnectTimeout:
		return "ConnectTimeout"
	case AuthFailed:
		return "AuthFailed"
	case RemoteCommandFailed:
		return "RemoteCommandFailed"
	case ParseFailed:
		return "ParseFailed"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// ProbeError is the structured failure a probe reports to the state
// machine; the displayed error string is built from it and truncated to one
// line (§7).
type ProbeError struct {
	Kind       FailureKind
	ExitCode   int    // RemoteCommandFailed only
	StderrTail string // RemoteCommandFailed only
	Section    string // ParseFailed only
	Reason     string
}

func (e *ProbeError) Error() string {
	switch e.Kind {
	case RemoteCommandFailed:
		return fmt.Sprintf("remote command exited %d: %s", e.ExitCode, e.StderrTail)
	case ParseFailed:
		return fmt.Sprintf("parse failed: %s: %s", e.Section, e.Reason)
	default:
		if e.Reason != "" {
			return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
		}
		return e.Kind.String()
	}
}

// HostRecord is the live state surfaced to the UI for one host. It is an
// immutable value: every transition below returns a new HostRecord rather
// than mutating in place, so the model can replace it whole under a short lock
// and readers never observe a torn mix of old and new fields (§4.6, §9).
type HostRecord struct {
	Host          inventory.Host
	Status        Status
	LastSample    *sample.Sample
	PrevSample    *sample.Sample
	LastDelta     *delta.Metrics
	LastError     string
	LastOKAt      time.Time
	LastAttemptAt time.Time

	// Seq is the dispatch sequence number of the in-flight or most recently
	// completed probe; the poller uses it to discard late completions that
	// would otherwise overwrite a newer result (§4.7, §9).
	Seq uint64
}

// New creates the initial Unknown-state record for host.
func New(host inventory.Host) HostRecord {
	return HostRecord{Host: host, Status: Unknown}
}

// Dispatch transitions to Polling at tick dispatch, recording the dispatch
// sequence number and attempt time.
func (r HostRecord) Dispatch(seq uint64, at time.Time) HostRecord {
	next := r
	next.Status = Polling
	next.Seq = seq
	next.LastAttemptAt = at
	return next
}

// Succeed transitions to Up on a successfully parsed sample. The previous
// last_sample becomes prev_sample before being overwritten, and last_error
// is cleared, per §4.6.
func (r HostRecord) Succeed(s *sample.Sample, d *delta.Metrics, at time.Time) HostRecord {
	next := r
	next.Status = Up
	next.PrevSample = r.LastSample
	next.LastSample = s
	next.LastDelta = d
	next.LastError = ""
	next.LastOKAt = at
	return next
}

// Fail transitions to Down. prev_sample is retained unchanged so rate
// deltas can resume cleanly once a good sample arrives (§7 Parse bucket).
func (r HostRecord) Fail(err *ProbeError) HostRecord {
	next := r
	next.Status = Down
	next.LastError = ansierrors.Truncate(err.Error(), 120)
	return next
}
