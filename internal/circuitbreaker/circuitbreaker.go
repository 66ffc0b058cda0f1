// Package circuitbreaker stops calling an upstream API after repeated
// failures and probes it again once a cool-down has passed.
package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// State represents the current state of the circuit breaker
type State int

const (
	// StateClosed means calls pass through
	StateClosed State = iota
	// StateOpen means calls are rejected without reaching the upstream
	StateOpen
	// StateHalfOpen means a limited number of probe calls are let through
	StateHalfOpen
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF-OPEN"
	default:
		return "UNKNOWN"
	}
}

// Config contains the configuration for a circuit breaker
type Config struct {
	Name             string        // upstream name used in logs and callbacks
	FailureThreshold int           // consecutive failures before opening
	Timeout          time.Duration // time spent OPEN before probing
	HalfOpenRequests int           // probe calls allowed in HALF-OPEN
	Logger           *slog.Logger  // optional
	OnStateChange    func(name string, from, to State)

	// now is overridden in tests.
	now func() time.Time
}

var (
	// ErrCircuitOpen is returned when the circuit breaker is in OPEN state
	ErrCircuitOpen = errors.New("circuit breaker is open")
	// ErrHalfOpenLimitReached is returned when too many requests are made in HALF-OPEN state
	ErrHalfOpenLimitReached = errors.New("circuit breaker half-open request limit reached")
)

// Breaker guards calls to one upstream.
type Breaker struct {
	config Config
	mu     sync.Mutex

	state             State
	failureCount      int
	halfOpenRequests  int
	halfOpenSuccesses int
	openedAt          time.Time
}

// New creates a new circuit breaker with the given configuration
func New(cfg Config) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.HalfOpenRequests <= 0 {
		cfg.HalfOpenRequests = 1
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}

	return &Breaker{
		config: cfg,
		state:  StateClosed,
	}
}

// Execute runs fn if the circuit allows it.
// Context cancellation is not counted as an upstream failure.
func (b *Breaker) Execute(fn func() error) error {
	b.mu.Lock()

	if b.state == StateOpen && b.config.now().Sub(b.openedAt) >= b.config.Timeout {
		b.transitionTo(StateHalfOpen)
	}

	switch b.state {
	case StateOpen:
		b.mu.Unlock()
		return ErrCircuitOpen

	case StateHalfOpen:
		if b.halfOpenRequests >= b.config.HalfOpenRequests {
			b.mu.Unlock()
			return ErrHalfOpenLimitReached
		}
		b.halfOpenRequests++
		b.mu.Unlock()

		err := fn()

		b.mu.Lock()
		defer b.mu.Unlock()
		if isFailure(err) {
			b.transitionTo(StateOpen)
			return err
		}
		if err != nil {
			// cancelled probe: give the slot back
			b.halfOpenRequests--
			return err
		}
		b.halfOpenSuccesses++
		if b.halfOpenSuccesses >= b.config.HalfOpenRequests {
			b.transitionTo(StateClosed)
		}
		return nil

	case StateClosed:
		b.mu.Unlock()

		err := fn()

		b.mu.Lock()
		defer b.mu.Unlock()
		if isFailure(err) {
			b.failureCount++
			if b.failureCount >= b.config.FailureThreshold {
				b.transitionTo(StateOpen)
			}
			return err
		}
		if err == nil {
			b.failureCount = 0
		}
		return err

	default:
		state := b.state
		b.mu.Unlock()
		return fmt.Errorf("unknown circuit breaker state: %d", state)
	}
}

// State returns the current state of the circuit breaker
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Name returns the configured upstream name.
func (b *Breaker) Name() string {
	return b.config.Name
}

// Reset resets the circuit breaker to CLOSED state
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transitionTo(StateClosed)
}

func isFailure(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled)
}

// transitionTo changes the circuit breaker state
// Must be called with lock held
func (b *Breaker) transitionTo(newState State) {
	if b.state == newState {
		return
	}

	oldState := b.state
	b.state = newState

	if b.config.Logger != nil {
		b.config.Logger.Warn("circuit breaker state changed",
			"upstream", b.config.Name,
			"from", oldState.String(),
			"to", newState.String(),
		)
	}
	if b.config.OnStateChange != nil {
		b.config.OnStateChange(b.config.Name, oldState, newState)
	}

	switch newState {
	case StateClosed:
		b.failureCount = 0
		b.halfOpenRequests = 0
		b.halfOpenSuccesses = 0
		b.openedAt = time.Time{}

	case StateOpen:
		b.openedAt = b.config.now()
		b.halfOpenRequests = 0
		b.halfOpenSuccesses = 0

	case StateHalfOpen:
		b.halfOpenRequests = 0
		b.halfOpenSuccesses = 0
	}
}
