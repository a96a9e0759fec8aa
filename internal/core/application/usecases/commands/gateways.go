// Package commands contains business operations that mutate remote state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// orchestration against the remote gateway, and an aggregated result.
package commands

import (
	"context"
	"time"
)

// Pauser inserts mandatory delays between orchestration steps.
//
// The delays are not throttling hints but a correctness requirement: the
// remote system is eventually consistent, and a re-fetch issued too soon can
// return stale line-item membership, corrupting the next grouping step.
// The interface exists so tests can run the orchestration without real sleeps.
type Pauser interface {
	// Pause blocks for the given duration or until ctx is done,
	// whichever comes first.
	Pause(ctx context.Context, d time.Duration)
}

// SleepPauser is the production Pauser backed by the wall clock.
type SleepPauser struct{}

// NewSleepPauser creates a wall-clock Pauser.
func NewSleepPauser() SleepPauser {
	return SleepPauser{}
}

// Pause implements Pauser using a timer that honors context cancellation.
func (SleepPauser) Pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Delays configures the mandatory inter-step waits of the orchestration.
type Delays struct {
	// AfterHomeLengthSplit is the wait between the home-length split's tag and
	// the re-fetch that becomes the baseline for external processing.
	AfterHomeLengthSplit time.Duration

	// AfterExternalSplit is the wait issued right after every external split
	// mutation, before its outcome is acted upon.
	AfterExternalSplit time.Duration

	// AfterTag is the wait between tagging a completed external split and
	// re-fetching order state for the next location group.
	AfterTag time.Duration
}

// DefaultDelays returns the waits the remote system is known to need.
func DefaultDelays() Delays {
	return Delays{
		AfterHomeLengthSplit: 2 * time.Second,
		AfterExternalSplit:   3 * time.Second,
		AfterTag:             1 * time.Second,
	}
}
