package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// WaitForDB blocks until the configured database answers a ping, giving up
// after cfg.DBWaitTimeout. Container entrypoints run it before migrate and
// serve.
func WaitForDB(ctx context.Context, cfg Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.DBWaitTimeout)
	defer cancel()

	return waitFor(ctx, cfg.DBWaitInterval, logger, func(ctx context.Context) error {
		db, err := OpenStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping(ctx)
	})
}

// waitFor retries check every interval until it succeeds or ctx ends.
func waitFor(ctx context.Context, interval time.Duration, logger *slog.Logger, check func(context.Context) error) error {
	logger.Info("waiting for database")

	attempt := 0
	var lastErr error
	op := func() error {
		attempt++
		lastErr = check(ctx)
		return lastErr
	}
	notify := func(err error, next time.Duration) {
		logger.Warn("database unavailable", "attempt", attempt, "retry_in", next, "error", err)
	}

	b := backoff.WithContext(backoff.NewConstantBackOff(interval), ctx)
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return fmt.Errorf("database not available after %d attempts: %w", attempt, lastErr)
	}

	logger.Info("database available", "attempts", attempt)
	return nil
}
