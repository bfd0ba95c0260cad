// Package report computes each process's share of total measured CPU time.
package report

import (
	"errors"
	"sort"

	"github.com/ccollicutt/pidshare/pkg/aggregator"
)

var (
	// ErrNotFound is returned by Percentage when the PID has no entry.
	ErrNotFound = errors.New("pid not found")

	// ErrTargetAbsentOrZero is returned by Evaluate when the PID has no
	// entry or its accumulated time is exactly zero. Both cases are
	// reported to the user the same way.
	ErrTargetAbsentOrZero = errors.New("pid absent or has no accumulated time")

	// ErrNoSamples means a log produced no samples to break down.
	ErrNoSamples = errors.New("no pid samples found")
)

// Share is one process's portion of the total time.
type Share struct {
	PID     int     `json:"pid"`
	Seconds float64 `json:"seconds"`
	Percent float64 `json:"percent"`
}

// Percentage returns the percentage of total time attributable to pid.
// A table whose total is zero yields 0 for any pid. Otherwise a pid with no
// entry yields ErrNotFound.
func Percentage(table *aggregator.Table, pid int) (float64, error) {
	total := table.Total()
	if total == 0.0 {
		return 0.0, nil
	}

	seconds, ok := table.Get(pid)
	if !ok {
		return 0, ErrNotFound
	}
	return (seconds / total) * 100, nil
}

// Evaluate checks that pid is present with nonzero time before computing its
// share. This is the lookup the command line performs.
func Evaluate(table *aggregator.Table, pid int) (*Share, error) {
	seconds, ok := table.Get(pid)
	if !ok || seconds == 0.0 {
		return nil, ErrTargetAbsentOrZero
	}

	percent, err := Percentage(table, pid)
	if err != nil {
		return nil, err
	}

	return &Share{PID: pid, Seconds: seconds, Percent: percent}, nil
}

// Breakdown returns the share of every PID, largest first. Ties are ordered
// by ascending PID.
func Breakdown(table *aggregator.Table) []Share {
	shares := make([]Share, 0, table.Len())
	for _, pid := range table.PIDs() {
		seconds, _ := table.Get(pid)
		percent, _ := Percentage(table, pid)
		shares = append(shares, Share{PID: pid, Seconds: seconds, Percent: percent})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Seconds > shares[j].Seconds
	})
	return shares
}
