package hoststate

import (
	"testing"
	"time"

	"github.com/rileyhilliard/ansimon/internal/inventory"
	"github.com/rileyhilliard/ansimon/internal/sample"
	"github.com/stretchr/testify/assert"
)

func TestLifecycle(t *testing.T) {
	h := inventory.Host{Name: "w1"}
	r := New(h)
	assert.Equal(t, Unknown, r.Status)
	assert.Equal(t, "[--]", r.Status.Glyph())

	r = r.Dispatch(1, time.Unix(100, 0))
	assert.Equal(t, Polling, r.Status)
	assert.Equal(t, "[..]", r.Status.Glyph())
	assert.Equal(t, uint64(1), r.Seq)

	s1 := &sample.Sample{TakenAt: time.Unix(100, 0)}
	r = r.Succeed(s1, nil, time.Unix(100, 0))
	assert.Equal(t, Up, r.Status)
	assert.Equal(t, "[UP]", r.Status.Glyph())
	assert.Nil(t, r.PrevSample, "first sample has no predecessor")
	assert.Same(t, s1, r.LastSample)

	r = r.Dispatch(2, time.Unix(110, 0))
	s2 := &sample.Sample{TakenAt: time.Unix(110, 0)}
	r = r.Succeed(s2, nil, time.Unix(110, 0))
	assert.Same(t, s1, r.PrevSample, "last_sample becomes prev_sample before overwrite")
	assert.Same(t, s2, r.LastSample)
}

func TestFail_RetainsLastSample(t *testing.T) {
	h := inventory.Host{Name: "w1"}
	r := New(h)
	s1 := &sample.Sample{TakenAt: time.Unix(100, 0)}
	r = r.Dispatch(1, time.Unix(100, 0)).Succeed(s1, nil, time.Unix(100, 0))

	r = r.Dispatch(2, time.Unix(110, 0))
	r = r.Fail(&ProbeError{Kind: ConnectTimeout, Reason: "dial tcp: i/o timeout"})

	assert.Equal(t, Down, r.Status)
	assert.Equal(t, "[DN]", r.Status.Glyph())
	assert.Same(t, s1, r.LastSample, "a failed poll must not clobber the last good sample")
	assert.Contains(t, r.LastError, "ConnectTimeout")
}

func TestFail_ClearsOnNextSuccess(t *testing.T) {
	h := inventory.Host{Name: "w1"}
	r := New(h).Dispatch(1, time.Now()).Fail(&ProbeError{Kind: Cancelled})
	assert.NotEmpty(t, r.LastError)

	r = r.Dispatch(2, time.Now()).Succeed(&sample.Sample{}, nil, time.Now())
	assert.Empty(t, r.LastError)
}

func TestProbeError_RemoteCommandFailedMessage(t *testing.T) {
	err := &ProbeError{Kind: RemoteCommandFailed, ExitCode: 127, StderrTail: "nproc: command not found"}
	assert.Contains(t, err.Error(), "127")
	assert.Contains(t, err.Error(), "nproc: command not found")
}

func TestHostRecordIsImmutableAcrossTransitions(t *testing.T) {
	h := inventory.Host{Name: "w1"}
	original := New(h)
	dispatched := original.Dispatch(1, time.Now())

	assert.Equal(t, Unknown, original.Status, "transition must not mutate the receiver")
	assert.Equal(t, Polling, dispatched.Status)
}
