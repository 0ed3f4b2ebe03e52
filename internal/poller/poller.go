// Package poller is the tick scheduler (§4.7): it dispatches one probe per
// host per tick, bounded by a forks-sized semaphore, coalesces so a slow
// host never has two probes in flight at once, and cancels a straggler at
// the next tick boundary rather than letting ticks pile up (§5). Each probe
// also carries its own wall-clock timeout, and sustained slow probes widen
// the effective tick interval toward the observed P95 latency (§5
// backpressure), logging a warning rather than letting ticks silently pile
// up or the interval silently balloon.
package poller

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rileyhilliard/ansimon/internal/delta"
	"github.com/rileyhilliard/ansimon/internal/hoststate"
	"github.com/rileyhilliard/ansimon/internal/inventory"
	"github.com/rileyhilliard/ansimon/internal/logger"
	"github.com/rileyhilliard/ansimon/internal/model"
	"github.com/rileyhilliard/ansimon/internal/sample"
	"github.com/rileyhilliard/ansimon/internal/sshexec"
)

// Prober is the one seam poller depends on for actually talking to a host;
// tests substitute a fake, production wires it to sshexec.Run.
type Prober func(ctx context.Context, opts sshexec.Options) (stdout string, latency time.Duration, err *hoststate.ProbeError)

// OptionsFor resolves the sshexec.Options to use for one host, folding in
// ~/.ssh/config defaults and CLI overrides (owned by the caller, §4.3).
type OptionsFor func(h inventory.Host) sshexec.Options

// maxBackpressureMultiple caps how far the effective interval can inflate
// above the configured interval; every inflation up to that cap is logged
// as a warning.
const maxBackpressureMultiple = 2

// durationWindow bounds how many recent probe latencies feed the P95 used
// to detect sustained backpressure; old samples age out.
const durationWindow = 64

// Poller owns the tick loop and the single outstanding probe per host.
type Poller struct {
	table        *model.Table
	prober       Prober
	optionsFor   OptionsFor
	interval     time.Duration
	probeTimeout time.Duration
	forks        int
	log          logger.Logger

	sem chan struct{}

	mu        sync.Mutex
	inflight  map[string]context.CancelFunc
	nextSeq   uint64
	refreshCh chan struct{}

	durMu       sync.Mutex
	durations   []time.Duration
	effInterval time.Duration
	inflated    bool
}

// New builds a Poller over table, probing every host in table's snapshot
// order once per interval with at most forks probes outstanding at a time.
// probeTimeout bounds the wall-clock lifetime of a single probe (§5 trigger
// (i)); a non-positive value falls back to the configured interval.
func New(table *model.Table, prober Prober, optionsFor OptionsFor, interval time.Duration, forks int, probeTimeout time.Duration) *Poller {
	if forks < 1 {
		forks = 1
	}
	if probeTimeout <= 0 {
		probeTimeout = interval
	}
	return &Poller{
		table:        table,
		prober:       prober,
		optionsFor:   optionsFor,
		interval:     interval,
		probeTimeout: probeTimeout,
		forks:        forks,
		log:          logger.NewEnvLogger("[poller]"),
		sem:          make(chan struct{}, forks),
		inflight:     make(map[string]context.CancelFunc),
		refreshCh:    make(chan struct{}, 1),
		effInterval:  interval,
	}
}

// Run blocks until ctx is cancelled, dispatching one round of probes every
// interval. It never returns an error: per-host failures live in the model,
// not in Run's return value.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
			p.adjustInterval(ticker)
		case <-p.refreshCh:
			p.tick(ctx)
		}
	}
}

// currentInterval returns the effective tick interval, which may be
// inflated above the configured interval by sustained backpressure (§5).
func (p *Poller) currentInterval() time.Duration {
	p.durMu.Lock()
	defer p.durMu.Unlock()
	return p.effInterval
}

// recordDuration tracks a completed probe's wall-clock duration for the P95
// backpressure estimate. It is called for every completed probe, success or failure: a
// host that's timing out is exactly the signal backpressure needs to catch.
func (p *Poller) recordDuration(d time.Duration) {
	p.durMu.Lock()
	defer p.durMu.Unlock()
	p.durations = append(p.durations, d)
	if len(p.durations) > durationWindow {
		p.durations = p.durations[len(p.durations)-durationWindow:]
	}
}

// p95Duration returns the 95th-percentile probe latency over the tracked
// window, or false if too few samples have been collected yet.
func (p *Poller) p95Duration() (time.Duration, bool) {
	p.durMu.Lock()
	defer p.durMu.Unlock()
	if len(p.durations) < 4 {
		return 0, false
	}
	sorted := append([]time.Duration(nil), p.durations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := (len(sorted)*95 + 99) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx], true
}

// adjustInterval implements §5's backpressure rule: when probes consistently
// exceed the configured interval, log a warning and inflate the effective
// interval toward the observed P95 probe duration, capped at 2x the
// configured interval. It also recovers back to the configured interval,
// with its own warning, once probes are fast again.
func (p *Poller) adjustInterval(ticker *time.Ticker) {
	p95, ok := p.p95Duration()
	if !ok {
		return
	}

	p.durMu.Lock()
	defer p.durMu.Unlock()

	capped := p.interval * maxBackpressureMultiple
	switch {
	case p95 > p.interval:
		target := p95
		if target > capped {
			target = capped
		}
		if target != p.effInterval {
			p.log.Warn("probe durations (p95=%s) exceeding poll interval %s; inflating effective interval to %s", p95, p.interval, target)
			p.effInterval = target
			p.inflated = true
			ticker.Reset(p.effInterval)
		}
	case p.inflated && p95 <= p.interval:
		p.log.Warn("probe durations (p95=%s) back under poll interval %s; restoring effective interval", p95, p.interval)
		p.effInterval = p.interval
		p.inflated = false
		ticker.Reset(p.effInterval)
	}
}

// RefreshNow requests an out-of-band tick (the 'r' key, §6) without shifting
// the regular tick alignment: the ticker is not reset, so scheduled ticks
// keep firing on their existing schedule.
func (p *Poller) RefreshNow() {
	select {
	case p.refreshCh <- struct{}{}:
	default: // a refresh is already pending; one is enough
	}
}

// tick dispatches a probe for every host, first cancelling any straggler
// still in flight from a prior tick for that host (§5).
func (p *Poller) tick(ctx context.Context) {
	for _, entry := range p.table.Snapshot() {
		host := entry.Host

		p.mu.Lock()
		if cancel, busy := p.inflight[host.Name]; busy {
			p.log.Warn("host %s still polling at tick boundary, cancelling straggler", host.Name)
			cancel()
		}
		p.nextSeq++
		seq := p.nextSeq
		probeCtx, cancel := context.WithTimeout(ctx, p.probeTimeout)
		p.inflight[host.Name] = cancel
		p.mu.Unlock()

		p.table.Update(host.Name, mustDispatch(p.table, host.Name, seq))

		go p.probe(probeCtx, cancel, host, seq)
	}
}

func mustDispatch(table *model.Table, name string, seq uint64) hoststate.HostRecord {
	r, _ := table.Get(name)
	return r.Dispatch(seq, time.Now())
}

// probe runs one bounded probe for host and applies its result atomically,
// unless a later dispatch has already superseded seq (§4.7, §9).
func (p *Poller) probe(ctx context.Context, cancel context.CancelFunc, host inventory.Host, seq uint64) {
	defer cancel()

	select {
	case p.sem <- struct{}{}:
		defer func() { <-p.sem }()
	case <-ctx.Done():
		p.finish(host.Name, seq)
		return
	}

	start := time.Now()
	stdout, latency, probeErr := p.prober(ctx, p.optionsFor(host))
	p.recordDuration(time.Since(start))

	var next hoststate.HostRecord
	var apply bool
	if probeErr != nil {
		next, apply = applyFail(p.table, host.Name, seq, probeErr)
	} else {
		next, apply = p.applySuccess(host.Name, seq, stdout, latency)
	}

	p.finish(host.Name, seq)
	if apply {
		p.table.Update(host.Name, next)
	}
}

// applySuccess parses stdout into a Sample and folds it into the host's
// record, unless seq has already been superseded by a later dispatch
// (§4.7, §9: late completions are discarded, never applied out of order).
func (p *Poller) applySuccess(hostName string, seq uint64, stdout string, latency time.Duration) (hoststate.HostRecord, bool) {
	sections, err := sshexec.ParseOutput(stdout)
	if err != nil {
		return applyFail(p.table, hostName, seq, &hoststate.ProbeError{Kind: hoststate.ParseFailed, Reason: err.Error()})
	}

	now := time.Now()
	s, err := sample.ParseSections(sections, now)
	if err != nil {
		return applyFail(p.table, hostName, seq, &hoststate.ProbeError{Kind: hoststate.ParseFailed, Reason: err.Error()})
	}
	s.SSHLatencyMs = float64(latency.Microseconds()) / 1000

	r, ok := p.table.Get(hostName)
	if !ok || r.Seq != seq {
		return hoststate.HostRecord{}, false
	}

	var d *delta.Metrics
	if r.LastSample != nil {
		d = delta.Compute(r.LastSample, s, r.LastDelta)
	}
	return r.Succeed(s, d, now), true
}

func applyFail(table *model.Table, hostName string, seq uint64, probeErr *hoststate.ProbeError) (hoststate.HostRecord, bool) {
	r, ok := table.Get(hostName)
	if !ok || r.Seq != seq {
		return hoststate.HostRecord{}, false
	}
	return r.Fail(probeErr), true
}

func (p *Poller) finish(hostName string, seq uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// Only clear the in-flight marker if it's still ours: a newer tick may
	// have already replaced it with its own cancel func for the same host.
	if r, ok := p.table.Get(hostName); ok && r.Seq == seq {
		delete(p.inflight, hostName)
	}
}
