package pairing

import (
	"log/slog"
	"time"

	"github.com/mmynk/secretsanta/internal/metrics"
)

// Option configures an Engine.
type Option func(*Engine)

// WithSource sets the random source used to shuffle receivers.
func WithSource(src Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.source = src
		}
	}
}

// WithMaxAttempts bounds the permutations tried per draw (default: DefaultMaxAttempts).
func WithMaxAttempts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

// WithMetrics sets the collector notified after every draw.
func WithMetrics(m metrics.DrawRecorder) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock overrides the time source used to stamp assignments.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}
