// Package warmup eagerly opens connections in a pool at startup so the first
// requests do not pay for dialing.
package warmup

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jasonkayzk/preconnect/channel_pool/errs"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Pool is the part of a connection pool the warmer drives.
type Pool interface {
	// Cap returns the max number of connections the pool may hold open.
	Cap() int

	// Get acquires a connection, opening one if none is idle.
	Get() (interface{}, error)

	// Put hands a connection acquired with Get back to the pool.
	Put(interface{}) error
}

type options struct {
	ctx     context.Context
	logger  log.FieldLogger
	limiter *rate.Limiter
}

type Option func(*options)

// WithLogger sets the logger progress is reported to.
func WithLogger(l log.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

// WithLimiter paces acquisitions. A nil limiter disables pacing.
func WithLimiter(l *rate.Limiter) Option {
	return func(o *options) { o.limiter = l }
}

// WithContext bounds the waits on the limiter. Cancelling it stops the
// acquisitions at the current index; Get itself is never interrupted.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// Size returns how many connections Warm acquires for a pool of the given
// capacity. One slot is always left free so the caller can still get a connection.
func Size(capacity int) int {
	if capacity <= 1 {
		return 0
	}
	return capacity - 1
}

// Warm acquires Cap()-1 connections from p one at a time, then puts them back
// in acquisition order, leaving them idle in the pool.
//
// If the k-th acquisition fails Warm stops, still releases the k connections
// it holds, and returns an errs.WarmupFailedErr with Index k. Release failures
// do not stop the cleanup; when every acquisition succeeded they come back as a
// non-fatal errs.ReleaseFailedErr.
//
// Warm is meant to run once, before the pool serves traffic. It is not safe to
// call concurrently on the same pool.
func Warm(p Pool, opts ...Option) (err error) {
	o := options{
		ctx:    context.Background(),
		logger: log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	n := Size(p.Cap())
	logger := o.logger.WithFields(log.Fields{
		"warmup_id": uuid.NewString(),
		"capacity":  p.Cap(),
	})
	if n == 0 {
		logger.Debug("warmup skipped, nothing to preconnect")
		return nil
	}

	start := time.Now()
	held := make([]interface{}, 0, n)
	done := false

	defer func() {
		releaseErrs := release(p, held, logger)

		if failed, ok := err.(errs.WarmupFailedErr); ok {
			failed.ReleaseErrs = releaseErrs
			err = failed
			logger.WithError(failed.Cause).
				WithField("index", failed.Index).
				Warnf("warmup failed after %d connections", len(held))
			return
		}
		if !done {
			// Get panicked; the connections are back, let the panic through.
			return
		}
		if len(releaseErrs) > 0 {
			err = errs.NewReleaseFailedErr(releaseErrs)
		}
		logger.WithFields(log.Fields{
			"connections": len(held),
			"elapsed":     time.Since(start),
		}).Info("pool warmed up")
	}()

	for i := 0; i < n; i++ {
		if o.limiter != nil {
			if werr := o.limiter.Wait(o.ctx); werr != nil {
				return errs.NewWarmupFailedErr(i, werr)
			}
		}

		conn, gerr := p.Get()
		if gerr != nil {
			return errs.NewWarmupFailedErr(i, gerr)
		}
		held = append(held, conn)
		logger.Debugf("preconnected %d/%d", i+1, n)
	}

	done = true
	return nil
}

// release puts every held connection back, in order, whatever fails on the way.
func release(p Pool, held []interface{}, logger log.FieldLogger) []errs.ReleaseErr {
	var failed []errs.ReleaseErr
	for i, conn := range held {
		if err := p.Put(conn); err != nil {
			logger.WithError(err).WithField("index", i).Warn("release connection failed")
			failed = append(failed, errs.NewReleaseErr(i, err))
		}
	}
	return failed
}
