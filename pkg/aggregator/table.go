// Package aggregator folds extracted samples into per-process time totals.
package aggregator

import (
	"sort"

	"github.com/ccollicutt/pidshare/pkg/extractor"
)

// Table maps a process identifier to its accumulated elapsed seconds.
// A PID has an entry only if at least one sample for it was extracted.
type Table struct {
	totals map[int]float64
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{totals: make(map[int]float64)}
}

// Add folds one sample into the table.
func (t *Table) Add(s extractor.Sample) {
	if _, ok := t.totals[s.PID]; !ok {
		t.totals[s.PID] = 0.0
	}
	t.totals[s.PID] += s.Seconds
}

// Get returns the accumulated seconds for pid and whether pid is present.
func (t *Table) Get(pid int) (float64, bool) {
	v, ok := t.totals[pid]
	return v, ok
}

// Has reports whether pid has an entry.
func (t *Table) Has(pid int) bool {
	_, ok := t.totals[pid]
	return ok
}

// Len returns the number of distinct PIDs.
func (t *Table) Len() int {
	return len(t.totals)
}

// PIDs returns every PID in ascending order.
func (t *Table) PIDs() []int {
	pids := make([]int, 0, len(t.totals))
	for pid := range t.totals {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}

// Total returns the sum of all accumulated seconds, added in ascending PID
// order so repeated calls give bit-identical results.
func (t *Table) Total() float64 {
	var total float64
	for _, pid := range t.PIDs() {
		total += t.totals[pid]
	}
	return total
}

// Snapshot returns a copy of the underlying mapping.
func (t *Table) Snapshot() map[int]float64 {
	out := make(map[int]float64, len(t.totals))
	for pid, v := range t.totals {
		out[pid] = v
	}
	return out
}

// AggregateSamples builds a table from an in-memory sample sequence.
func AggregateSamples(samples []extractor.Sample) *Table {
	t := NewTable()
	for _, s := range samples {
		t.Add(s)
	}
	return t
}
