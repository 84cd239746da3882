// Package payment implements the staged payment simulator.  There is
// no real gateway: every started payment succeeds after a fixed
// delay.  The state machine is explicit (input → processing →
// success, no failed state) and the cosmetic status-text cycling is
// driven by a separate ticker so it never influences the actual
// transition.
package payment

import (
    "context"
    "errors"
    "sync"
    "time"

    "github.com/google/uuid"
)

// Step is the simulator's state.  Transitions only move forward:
// Start moves input to processing, and the completion timer alone
// moves processing to success, exactly once.
type Step int

const (
    StepInput Step = iota
    StepProcessing
    StepSuccess
)

// String returns the step name used in API responses.
func (s Step) String() string {
    switch s {
    case StepProcessing:
        return "processing"
    case StepSuccess:
        return "success"
    default:
        return "input"
    }
}

// Defaults matching the production timeline.
const (
    DefaultStatusTick = 600 * time.Millisecond
    DefaultDuration   = 3500 * time.Millisecond
)

var (
    // ErrAlreadyStarted is returned when Start is called while the
    // simulator is processing or already succeeded.  A simulator is
    // single-use; reopening the flow means creating a new one.
    ErrAlreadyStarted = errors.New("payment already started")
    // ErrCancelled is returned by Wait when the context ends before
    // the payment completes.  The in-progress payment is discarded
    // with no side effect.
    ErrCancelled = errors.New("payment cancelled")
)

// processingStatuses are cycled on the status ticker purely for UX.
// The cycle is not coupled to the completion timer; success fires
// after the full duration regardless of how far the text got.
var processingStatuses = []string{
    "Initiating payment...",
    "Connecting to payment gateway...",
    "Verifying payment details...",
    "Processing transaction...",
    "Confirming with bank...",
    "Finalizing payment...",
}

// Simulator is one simulated payment attempt.  Safe for concurrent
// use; Wait may be called from a different goroutine than Start.
type Simulator struct {
    mu     sync.Mutex
    step   Step
    status string
    txnID  string

    tick     time.Duration
    duration time.Duration
    done     chan struct{}
}

// NewSimulator returns a simulator in the input step.  Non-positive
// durations fall back to the defaults; tests inject short ones.
func NewSimulator(tick, duration time.Duration) *Simulator {
    if tick <= 0 {
        tick = DefaultStatusTick
    }
    if duration <= 0 {
        duration = DefaultDuration
    }
    return &Simulator{
        step:     StepInput,
        status:   processingStatuses[0],
        tick:     tick,
        duration: duration,
        done:     make(chan struct{}),
    }
}

// Step returns the current state.
func (s *Simulator) Step() Step {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.step
}

// Status returns the current processing status text.
func (s *Simulator) Status() string {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.status
}

// TransactionID returns the display-only transaction id.  It is
// empty until the simulator reaches success and is never persisted.
func (s *Simulator) TransactionID() string {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.txnID
}

// Start moves the simulator from input to processing and schedules
// the single success transition after the configured duration.  The
// status text cycles on its own ticker until then.  Cancelling ctx
// before completion discards the attempt: the simulator stays in
// processing and never reaches success.
func (s *Simulator) Start(ctx context.Context) error {
    s.mu.Lock()
    if s.step != StepInput {
        s.mu.Unlock()
        return ErrAlreadyStarted
    }
    s.step = StepProcessing
    s.mu.Unlock()

    go s.run(ctx)
    return nil
}

func (s *Simulator) run(ctx context.Context) {
    ticker := time.NewTicker(s.tick)
    defer ticker.Stop()
    timer := time.NewTimer(s.duration)
    defer timer.Stop()

    next := 1
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            if next < len(processingStatuses) {
                s.mu.Lock()
                s.status = processingStatuses[next]
                s.mu.Unlock()
                next++
            }
        case <-timer.C:
            s.complete()
            return
        }
    }
}

// complete performs the one processing → success transition.
func (s *Simulator) complete() {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.step != StepProcessing {
        return
    }
    s.step = StepSuccess
    s.txnID = "TXN" + uuid.NewString()
    close(s.done)
}

// Done is closed when the simulator reaches success.
func (s *Simulator) Done() <-chan struct{} {
    return s.done
}

// Wait blocks until the payment succeeds or ctx ends.  On success it
// returns the display-only transaction id.
func (s *Simulator) Wait(ctx context.Context) (string, error) {
    select {
    case <-s.done:
        return s.TransactionID(), nil
    case <-ctx.Done():
        return "", ErrCancelled
    }
}
