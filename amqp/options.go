package amqp

import (
	"time"

	"github.com/zoobzio/pipz"
)

// Internal identities for reliability options.
var (
	retryID          = pipz.NewIdentity("missive:retry", "Retries failed publishes")
	backoffID        = pipz.NewIdentity("missive:backoff", "Retries publishes with exponential backoff")
	timeoutID        = pipz.NewIdentity("missive:timeout", "Enforces publish timeout")
	circuitBreakerID = pipz.NewIdentity("missive:circuit-breaker", "Circuit breaker protection")
)

// Option wraps the publish pipeline with reliability behavior.
type Option func(pipz.Chainable[*Envelope]) pipz.Chainable[*Envelope]

// WithRetry retries failed publishes up to maxAttempts times immediately.
func WithRetry(maxAttempts int) Option {
	return func(pipeline pipz.Chainable[*Envelope]) pipz.Chainable[*Envelope] {
		return pipz.NewRetry(retryID, pipeline, maxAttempts)
	}
}

// WithBackoff retries failed publishes with delays doubling from baseDelay.
func WithBackoff(maxAttempts int, baseDelay time.Duration) Option {
	return func(pipeline pipz.Chainable[*Envelope]) pipz.Chainable[*Envelope] {
		return pipz.NewBackoff(backoffID, pipeline, maxAttempts, baseDelay)
	}
}

// WithTimeout cancels publishes exceeding duration.
func WithTimeout(duration time.Duration) Option {
	return func(pipeline pipz.Chainable[*Envelope]) pipz.Chainable[*Envelope] {
		return pipz.NewTimeout(timeoutID, pipeline, duration)
	}
}

// WithCircuitBreaker opens the circuit for recovery after failures
// consecutive failed publishes.
func WithCircuitBreaker(failures int, recovery time.Duration) Option {
	return func(pipeline pipz.Chainable[*Envelope]) pipz.Chainable[*Envelope] {
		return pipz.NewCircuitBreaker(circuitBreakerID, pipeline, failures, recovery)
	}
}
