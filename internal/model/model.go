// Package model is the shared, in-memory host table the poller writes to
// and the renderer observes (§4.8, §5). It is the only cross-task shared
// mutable state in Ansimon; every write replaces one whole record value
// under a single table-wide lock held only for that replacement, never
// across rendering, so the renderer never blocks a probe for long (§9).
package model

import (
	"sync"

	"github.com/rileyhilliard/ansimon/internal/hoststate"
	"github.com/rileyhilliard/ansimon/internal/inventory"
)

// SortKey is a column the renderer may sort the snapshot by.
type SortKey int

const (
	SortDefault SortKey = iota
	SortName
	SortCPU
	SortMem
	SortDisk
)

// ViewState is the UI-owned projection over the table (§3). It is not
// persisted and touches a field set disjoint from the poller's writes, so
// UI and poller updates never race on the same fields.
type ViewState struct {
	SortKey      SortKey
	SortReversed bool
	FilterText   string
	CursorIndex  int
	DetailOpen   bool
}

// Entry pairs a Host with its live record for one snapshot row.
type Entry struct {
	Host   inventory.Host
	Record hoststate.HostRecord
}

// Table is the host-name-keyed live state table.
type Table struct {
	order []string // inventory order, fixed at construction

	mu      sync.RWMutex
	records map[string]hoststate.HostRecord
	view    ViewState
}

// New builds a Table seeded with an Unknown-status record for every host,
// in inventory order.
func New(hosts []inventory.Host) *Table {
	t := &Table{
		order:   make([]string, 0, len(hosts)),
		records: make(map[string]hoststate.HostRecord, len(hosts)),
	}
	for _, h := range hosts {
		t.order = append(t.order, h.Name)
		t.records[h.Name] = hoststate.New(h)
	}
	return t
}

// Snapshot returns (Host, HostRecord) pairs in inventory order. The model
// does not sort or filter: that's the renderer's job over this slice (§4.8).
func (t *Table) Snapshot() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Entry, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, Entry{Host: t.records[name].Host, Record: t.records[name]})
	}
	return out
}

// Update applies a completion atomically: the record under hostName is
// replaced wholesale with next, so a reader holding the lock briefly either
// sees the entire old record or the entire new one, never a mix (§4.6, §8).
func (t *Table) Update(hostName string, next hoststate.HostRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records[hostName] = next
}

// Get returns the current record for hostName.
func (t *Table) Get(hostName string) (hoststate.HostRecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.records[hostName]
	return r, ok
}

// SetView replaces the view-state projection.
func (t *Table) SetView(v ViewState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.view = v
}

// GetView returns the current view-state projection.
func (t *Table) GetView() ViewState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.view
}
