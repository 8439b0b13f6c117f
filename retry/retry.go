// Package retry provides a bounded-attempt retrying executor with fixed
// or multiplicative backoff.
package retry

import (
	"context"
	"errors"
	"time"
)

// sleep waits for d or until the context is cancelled. Swappable in tests.
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Policy configures the executor. The zero value runs the operation once
// with no retries.
type Policy struct {
	// Tries is the total number of attempts; values below 1 mean 1.
	Tries int

	// Delay is the wait before the first retry. Zero means no wait.
	Delay time.Duration

	// Multiplier grows the wait after each failed attempt. Values <= 0
	// mean a constant delay.
	Multiplier float64

	// Retryable lists error kinds (matched with errors.Is) that may be
	// retried. Any other failure propagates immediately. Empty means
	// every failure is retryable.
	Retryable []error

	// OnRetry, when set, is called before each wait with the 1-based
	// number of the attempt that just failed and its error.
	OnRetry func(attempt int, err error)
}

// Do invokes op until it succeeds, a non-retryable failure occurs, or the
// attempt budget is exhausted, in which case the last failure is returned.
// The wait before retry k (counting failed attempts from zero) is
// Delay x Multiplier^k; the calling goroutine blocks for the full wait.
func (p Policy) Do(ctx context.Context, op func() error) error {
	tries := p.Tries
	if tries < 1 {
		tries = 1
	}
	mult := p.Multiplier
	if mult <= 0 {
		mult = 1
	}

	wait := p.Delay
	var err error
	for attempt := 1; ; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if !p.retryable(err) || attempt >= tries {
			return err
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}
		if wait > 0 {
			if serr := sleep(ctx, wait); serr != nil {
				return serr
			}
		}
		wait = time.Duration(float64(wait) * mult)
	}
}

func (p Policy) retryable(err error) bool {
	if len(p.Retryable) == 0 {
		return true
	}
	for _, kind := range p.Retryable {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
