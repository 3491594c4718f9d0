// Package service implements the business rules for events, content, DJ
// profiles and the mailing list on top of the repository interfaces.  Every
// method returns either nil or an *apperr.Error.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/azulu-crm/internal/apperr"
	"github.com/iliyamo/azulu-crm/internal/model"
	"github.com/iliyamo/azulu-crm/internal/repository"
	"github.com/iliyamo/azulu-crm/internal/retry"
)

// Pagination bounds applied to every list call.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Options carries the collaborators shared by every service.  Zero values
// fall back to a default retrier, a no-op logger and the wall clock.
type Options struct {
	Retrier *retry.Retrier
	Logger  *zap.Logger
	Now     func() time.Time
}

// runner executes storage operations under the transient-failure retry
// policy and converts whatever is left into an *apperr.Error.
type runner struct {
	retrier *retry.Retrier
	log     *zap.Logger
	now     func() time.Time
}

func newRunner(o Options) runner {
	r := runner{retrier: o.Retrier, log: o.Logger, now: o.Now}
	if r.retrier == nil {
		r.retrier = retry.New(retry.DefaultConfig())
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// run calls fn, retrying it whole while it fails with a transient storage
// error.  fn may return an *apperr.Error to stop immediately; any other
// failure becomes apperr.Storage.  Use it for reads and for writes that
// land on the same state when replayed.
func (r runner) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	return r.exec(ctx, op, repository.IsTransient, fn)
}

// runWrite is run for inserts, deletes and other writes whose replay is not
// idempotent.  A lost connection after the statement or its COMMIT was sent
// leaves the outcome unknown, so only errors that prove nothing was applied
// are retried.
func (r runner) runWrite(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	return r.exec(ctx, op, repository.IsRejected, fn)
}

func (r runner) exec(ctx context.Context, op string, replay func(error) bool, fn func(ctx context.Context) error) error {
	res := r.retrier.DoWithCallback(ctx, func(ctx context.Context) error {
		err := fn(ctx)
		if replay(err) {
			return retry.Retryable(err)
		}
		return err
	}, func(attempt int, err error, next time.Duration) {
		r.log.Warn("transient storage error, retrying",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", next),
			zap.Error(err))
	})

	switch {
	case res.Err == nil:
		return nil
	case apperr.KindOf(res.Err) != apperr.KindUnknown:
		return res.Err
	case errors.Is(res.Err, retry.ErrMaxRetriesExceeded):
		r.log.Error("storage retries exhausted",
			zap.String("op", op), zap.Int("attempts", res.Attempts), zap.Error(res.LastError))
		return apperr.Storage(res.LastError)
	case errors.Is(res.Err, retry.ErrContextCanceled):
		cause := ctx.Err()
		if cause == nil {
			cause = res.Err
		}
		return apperr.Storage(cause)
	default:
		r.log.Error("storage operation failed", zap.String("op", op), zap.Error(res.Err))
		return apperr.Storage(res.Err)
	}
}

// today is the current UTC calendar date.
func (r runner) today() model.Date { return model.NewDate(r.now()) }

// page clamps pagination input.  A non-positive limit means the default.
func page(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return offset, limit
}
