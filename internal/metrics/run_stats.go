// Package metrics holds ambient, non-authoritative observability counters
// for a single n-gram mining run or a single verifier run, updated
// concurrently from worker goroutines with atomic counters.
package metrics

import (
	"sync/atomic"
	"time"
)

// RunStats accumulates counters for a ParseRaw run. The zero value is
// ready to use; call Snapshot once the run has finished to read it.
type RunStats struct {
	LinesScanned  atomic.Uint64
	ChunksPlanned atomic.Uint64
	PairsFound    atomic.Uint64
	TriplesFound  atomic.Uint64
	TokensFound   atomic.Uint64

	startedAt time.Time
}

// NewRunStats creates a RunStats with its start time recorded.
func NewRunStats() *RunStats {
	return &RunStats{startedAt: time.Now()}
}

// RunStatsSnapshot is a point-in-time copy of RunStats safe to log or print.
type RunStatsSnapshot struct {
	LinesScanned  uint64
	ChunksPlanned uint64
	PairsFound    uint64
	TriplesFound  uint64
	TokensFound   uint64
	Elapsed       time.Duration
}

// Snapshot reads the current counter values.
func (r *RunStats) Snapshot() RunStatsSnapshot {
	return RunStatsSnapshot{
		LinesScanned:  r.LinesScanned.Load(),
		ChunksPlanned: r.ChunksPlanned.Load(),
		PairsFound:    r.PairsFound.Load(),
		TriplesFound:  r.TriplesFound.Load(),
		TokensFound:   r.TokensFound.Load(),
		Elapsed:       time.Since(r.startedAt),
	}
}

// VerifyStats accumulates counters for a checksum-verification run.
type VerifyStats struct {
	Enqueued   atomic.Uint64
	Succeeded  atomic.Uint64
	Mismatched atomic.Uint64
	Errored    atomic.Uint64

	startedAt time.Time
}

// NewVerifyStats creates a VerifyStats with its start time recorded.
func NewVerifyStats() *VerifyStats {
	return &VerifyStats{startedAt: time.Now()}
}

// VerifyStatsSnapshot is a point-in-time copy of VerifyStats.
type VerifyStatsSnapshot struct {
	Enqueued   uint64
	Succeeded  uint64
	Mismatched uint64
	Errored    uint64
	Elapsed    time.Duration
}

// Snapshot reads the current counter values.
func (v *VerifyStats) Snapshot() VerifyStatsSnapshot {
	return VerifyStatsSnapshot{
		Enqueued:   v.Enqueued.Load(),
		Succeeded:  v.Succeeded.Load(),
		Mismatched: v.Mismatched.Load(),
		Errored:    v.Errored.Load(),
		Elapsed:    time.Since(v.startedAt),
	}
}
