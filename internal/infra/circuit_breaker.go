package infra

import (
	"errors"
	"sync"
	"time"
)

// ── Circuit Breaker ───────────────────────────────────────────────────────────
// Guards the browser push gateways (FCM, Mozilla autopush). A broadcast fans
// out to every endpoint of a business, so when a gateway is down the worker
// would otherwise burn its whole retry budget hammering it; the breaker turns
// that into fast-fails until a probe shows the gateway recovered.
//
// Closed → requests flow; a failure streak trips it open.
// Open   → everything fast-fails until the reopen window elapses.
// Half-Open → probes pass through; a success streak closes it again.

// CBState is the breaker's current position.
type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

// String is used by the health endpoint and log fields.
func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned when Execute is called while the breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig holds the trip/recovery thresholds.
type CircuitBreakerConfig struct {
	FailureThreshold int           // consecutive send failures that trip the breaker
	SuccessThreshold int           // consecutive probe successes that close it again
	OpenTimeout      time.Duration // how long to fast-fail before probing
}

// DefaultCBConfig is tuned for push gateways: transport errors there mean the
// gateway itself is unreachable (a dead endpoint still answers with 404/410),
// so a short failure streak is a reliable outage signal, and gateway blips
// tend to clear within seconds.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      30 * time.Second,
	}
}

// CircuitBreaker tracks one signed streak: positive counts consecutive
// successes, negative counts consecutive failures. Safe for concurrent use.
type CircuitBreaker struct {
	mu       sync.Mutex
	state    CBState
	streak   int
	openedAt time.Time
	cfg      CircuitBreakerConfig
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{state: CBClosed, cfg: cfg}
}

// State returns the breaker position, moving open → half-open once the
// reopen window has elapsed.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.stateLocked()
}

func (cb *CircuitBreaker) stateLocked() CBState {
	if cb.state == CBOpen && time.Since(cb.openedAt) >= cb.cfg.OpenTimeout {
		cb.state = CBHalfOpen
		cb.streak = 0
	}
	return cb.state
}

// Execute runs one push send through the breaker. While open it returns
// ErrCircuitOpen without calling fn.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if cb.stateLocked() == CBOpen {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.recordFailure()
		return err
	}
	cb.recordSuccess()
	return nil
}

func (cb *CircuitBreaker) recordFailure() {
	if cb.streak > 0 {
		cb.streak = 0
	}
	cb.streak--

	switch cb.state {
	case CBClosed:
		if -cb.streak >= cb.cfg.FailureThreshold {
			cb.trip()
		}
	case CBHalfOpen:
		// Probe failed; the gateway is still down.
		cb.trip()
	}
}

func (cb *CircuitBreaker) recordSuccess() {
	if cb.streak < 0 {
		cb.streak = 0
	}
	cb.streak++

	if cb.state == CBHalfOpen && cb.streak >= cb.cfg.SuccessThreshold {
		cb.state = CBClosed
		cb.streak = 0
	}
}

func (cb *CircuitBreaker) trip() {
	cb.state = CBOpen
	cb.streak = 0
	cb.openedAt = time.Now()
}
