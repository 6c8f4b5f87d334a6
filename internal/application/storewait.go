package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Pinger is satisfied by anything that can report backing-store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// WaitForStore pings p with exponential backoff until it answers, ctx is
// cancelled, or maxWait elapses. It is used once at startup so the service
// tolerates a database container that comes up after it.
func WaitForStore(ctx context.Context, p Pinger, maxWait time.Duration, logger *slog.Logger) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = maxWait

	attempt := 0
	op := func() error {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return p.Ping(pingCtx)
	}

	notify := func(err error, next time.Duration) {
		logger.Warn("store not reachable, retrying",
			"attempt", attempt,
			"retry_in", next.Round(time.Millisecond),
			"error", err,
		)
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(bo, ctx), notify); err != nil {
		return fmt.Errorf("store unreachable after %d attempts: %w", attempt, err)
	}
	return nil
}
