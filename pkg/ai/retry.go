package ai

import (
	"context"
	"fmt"
	"time"

	"ai-resume-be/pkg/resume"
)

const DefaultRetryAttempts = 3

// Sleeper suspends the current logical request between attempts.
// Injectable so tests can observe delays without waiting.
type Sleeper func(ctx context.Context, d time.Duration) error

func defaultSleeper(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Retry decorates an Enhancer with a bounded retry policy: up to attempts
// tries with exponential backoff 2^(k-1) seconds and no jitter. Network
// failures, non-success statuses, and unparsable output all consume one
// attempt. Exhaustion yields ErrUnavailable.
type Retry struct {
	next     Enhancer
	attempts int
	sleep    Sleeper
}

type RetryOption func(*Retry)

func WithAttempts(n int) RetryOption {
	return func(r *Retry) {
		if n > 0 {
			r.attempts = n
		}
	}
}

func WithSleeper(s Sleeper) RetryOption {
	return func(r *Retry) {
		r.sleep = s
	}
}

func NewRetry(next Enhancer, opts ...RetryOption) *Retry {
	r := &Retry{
		next:     next,
		attempts: DefaultRetryAttempts,
		sleep:    defaultSleeper,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Backoff returns the delay applied after the k-th failed attempt (1-based).
func Backoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * time.Second
}

func (r *Retry) do(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt < r.attempts {
			if err := r.sleep(ctx, Backoff(attempt)); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, lastErr)
}

func (r *Retry) EnhanceResume(ctx context.Context, current *resume.Resume, instruction string) (*resume.Resume, error) {
	var out *resume.Resume
	err := r.do(ctx, func() error {
		var callErr error
		out, callErr = r.next.EnhanceResume(ctx, current, instruction)
		return callErr
	})
	return out, err
}

func (r *Retry) EnhanceHtml(ctx context.Context, html string, current *resume.Resume, instruction string) (string, *resume.Resume, error) {
	var outHtml string
	var out *resume.Resume
	err := r.do(ctx, func() error {
		var callErr error
		outHtml, out, callErr = r.next.EnhanceHtml(ctx, html, current, instruction)
		return callErr
	})
	return outHtml, out, err
}

func (r *Retry) GenerateTitle(ctx context.Context, instruction string) (string, error) {
	var out string
	err := r.do(ctx, func() error {
		var callErr error
		out, callErr = r.next.GenerateTitle(ctx, instruction)
		return callErr
	})
	return out, err
}

func (r *Retry) ExtractResume(ctx context.Context, input ExtractInput) (*resume.Resume, error) {
	var out *resume.Resume
	err := r.do(ctx, func() error {
		var callErr error
		out, callErr = r.next.ExtractResume(ctx, input)
		return callErr
	})
	return out, err
}
