package dashboard

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// QueryState tracks a submitted log query through its lifecycle:
// Submitted -> Polling -> {Succeeded, Failed, TimedOut}.
type QueryState int

const (
	StateSubmitted QueryState = iota
	StatePolling
	StateSucceeded
	StateFailed
	StateTimedOut
)

// String returns the lowercase state name.
func (s QueryState) String() string {
	switch s {
	case StateSubmitted:
		return "submitted"
	case StatePolling:
		return "polling"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state machine has finished.
func (s QueryState) Terminal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateTimedOut
}

// PollFunc checks the in-flight query once. done=true means the query
// reached a complete status; a non-nil error aborts the poll.
type PollFunc func(ctx context.Context) (done bool, err error)

// Poller drives a submitted asynchronous query to a terminal state with
// a fixed check interval, bounded both by attempt count and wall clock.
// Sleeps go through a clockwork.Clock so tests can run on a fake clock.
type Poller struct {
	Interval    time.Duration
	MaxAttempts int
	Budget      time.Duration

	clock clockwork.Clock
	log   *zap.Logger
}

// NewPoller builds a Poller. A nil clock falls back to the real one.
func NewPoller(interval time.Duration, maxAttempts int, budget time.Duration, clock clockwork.Clock, log *zap.Logger) *Poller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{
		Interval:    interval,
		MaxAttempts: maxAttempts,
		Budget:      budget,
		clock:       clock,
		log:         log.Named("poller"),
	}
}

// Poll runs the state machine until the query completes, fails, or the
// attempt/budget bound is exhausted. The returned error is nil exactly
// when the state is StateSucceeded or StateTimedOut; TimedOut is a soft
// outcome the caller is expected to degrade on, not propagate.
func (p *Poller) Poll(ctx context.Context, poll PollFunc) (QueryState, error) {
	state := StateSubmitted
	deadline := p.clock.Now().Add(p.Budget)

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			// Platform cancellation is handled like budget exhaustion.
			p.log.Warn("query poll canceled", zap.Int("attempt", attempt))
			return StateTimedOut, nil
		case <-p.clock.After(p.Interval):
		}

		state = StatePolling
		done, err := poll(ctx)
		if err != nil {
			p.log.Warn("query poll failed", zap.Int("attempt", attempt), zap.Error(err))
			return StateFailed, err
		}
		if done {
			p.log.Debug("query completed", zap.Int("attempts", attempt))
			return StateSucceeded, nil
		}
		if !p.clock.Now().Before(deadline) {
			break
		}
	}

	p.log.Warn("query poll budget exhausted",
		zap.Duration("budget", p.Budget),
		zap.Int("maxAttempts", p.MaxAttempts),
		zap.Stringer("lastState", state),
	)
	return StateTimedOut, nil
}
