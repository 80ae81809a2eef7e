package resilience

import (
	"fmt"
	"time"
)

// CircuitBreakerConfig tunes a CircuitBreaker. A disabled breaker always allows calls.
type CircuitBreakerConfig struct {
	Enabled bool
	// FailureThreshold consecutive failures open the circuit.
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 3,
		OpenTimeout:      5 * time.Minute,
		HalfOpenMaxReq:   1,
	}
}

// Validate reports the first out-of-range field. Disabled configs are not checked.
func (c CircuitBreakerConfig) Validate() error {
	switch {
	case !c.Enabled:
		return nil
	case c.FailureThreshold < 1:
		return fmt.Errorf("failure threshold must be >= 1, got %d", c.FailureThreshold)
	case c.OpenTimeout <= 0:
		return fmt.Errorf("open timeout must be > 0, got %s", c.OpenTimeout)
	case c.HalfOpenMaxReq < 1:
		return fmt.Errorf("half-open max requests must be >= 1, got %d", c.HalfOpenMaxReq)
	}
	return nil
}

// Normalize fills zero or negative fields from DefaultCircuitBreakerConfig.
func (c CircuitBreakerConfig) Normalize() CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	c.FailureThreshold = positiveOr(c.FailureThreshold, defaults.FailureThreshold)
	c.HalfOpenMaxReq = positiveOr(c.HalfOpenMaxReq, defaults.HalfOpenMaxReq)
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaults.OpenTimeout
	}
	return c
}

func positiveOr(v, fallback int) int {
	if v < 1 {
		return fallback
	}
	return v
}
