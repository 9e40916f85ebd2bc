package retry

import (
	"context"
	"fmt"
	"time"
)

// Config controls how WithRetry spaces its attempts.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration // wait before attempt 2
	MaxDelay    time.Duration // backoff cap
}

// Default matches the service-call policy used across the app:
// 1s, 2s, 4s, ... capped at 10s.
var Default = Config{
	MaxAttempts: 3,
	BaseDelay:   time.Second,
	MaxDelay:    10 * time.Second,
}

// Attempts returns a copy of c with MaxAttempts set to n.
func (c Config) Attempts(n int) Config {
	c.MaxAttempts = n
	return c
}

// WithRetry invokes fn up to MaxAttempts times (the first call is not a
// retry), waiting BaseDelay doubled per attempt and capped at MaxDelay
// between failures. The final error is returned wrapped; errors are
// never swallowed. Idempotence of fn is the caller's problem.
func WithRetry(ctx context.Context, config Config, fn func() error) error {
	delay := config.BaseDelay

	var lastErr error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if err := fn(); err != nil {
			lastErr = err

			if attempt == config.MaxAttempts {
				return fmt.Errorf("failed after %d attempts: %w", config.MaxAttempts, err)
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}

			delay *= 2
			if config.MaxDelay > 0 && delay > config.MaxDelay {
				delay = config.MaxDelay
			}
			continue
		}
		return nil
	}

	return lastErr
}
