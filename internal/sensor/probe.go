// Package sensor reads the temperature probes hanging off the RS485 bus.
package sensor

import (
	"context"
	"fmt"
	"time"
)

// Probe is a single temperature source.
type Probe interface {
	Name() string
	ReadCelsius(ctx context.Context) (float64, error)
}

// ReadWithRetry tries p up to attempts times, sleeping delay between failed
// attempts. It returns the last error when every attempt fails.
func ReadWithRetry(ctx context.Context, p Probe, attempts int, delay time.Duration) (float64, error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		v, err := p.ReadCelsius(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return 0, ctx.Err()
		case <-timer.C:
		}
	}
	return 0, fmt.Errorf("%s: %d attempts: %w", p.Name(), attempts, lastErr)
}
