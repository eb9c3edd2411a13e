package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yogastudio/booking-system/internal/core/domain"
	"github.com/yogastudio/booking-system/internal/pkg/metrics"
)

const defaultMaxAttempts = 5

// retryOnConflict runs fn until it stops failing with
// domain.ErrConcurrentUpdate or attempts are exhausted. fn must redo the whole
// read-modify-write on each call.
func retryOnConflict(ctx context.Context, operation string, attempts int, fn func() error) error {
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	var err error
	for i := 0; i < attempts; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = fn()
		if !errors.Is(err, domain.ErrConcurrentUpdate) {
			return err
		}
		metrics.RosterRetriesTotal.WithLabelValues(operation).Inc()
	}
	return fmt.Errorf("%s: gave up after %d attempts: %w", operation, attempts, err)
}
