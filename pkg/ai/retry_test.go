package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-resume-be/pkg/resume"
)

// scriptedEnhancer fails a fixed number of times before succeeding.
type scriptedEnhancer struct {
	failures int
	calls    int
	result   *resume.Resume
}

func (s *scriptedEnhancer) EnhanceResume(ctx context.Context, current *resume.Resume, instruction string) (*resume.Resume, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, fmt.Errorf("http 500")
	}
	return s.result, nil
}

func (s *scriptedEnhancer) EnhanceHtml(ctx context.Context, html string, current *resume.Resume, instruction string) (string, *resume.Resume, error) {
	r, err := s.EnhanceResume(ctx, current, instruction)
	return html, r, err
}

func (s *scriptedEnhancer) GenerateTitle(ctx context.Context, instruction string) (string, error) {
	s.calls++
	if s.calls <= s.failures {
		return "", fmt.Errorf("http 500")
	}
	return "Title", nil
}

func (s *scriptedEnhancer) ExtractResume(ctx context.Context, input ExtractInput) (*resume.Resume, error) {
	return s.EnhanceResume(ctx, nil, "")
}

func recordingSleeper(delays *[]time.Duration) Sleeper {
	return func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func TestRetryExhaustionRaisesUnavailable(t *testing.T) {
	var delays []time.Duration
	next := &scriptedEnhancer{failures: 100}
	r := NewRetry(next, WithAttempts(3), WithSleeper(recordingSleeper(&delays)))

	_, err := r.EnhanceResume(context.Background(), nil, "punch up the summary")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	// Exactly N attempts, with delays 2^(k-1) seconds between them.
	assert.Equal(t, 3, next.calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, delays)
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	var delays []time.Duration
	next := &scriptedEnhancer{failures: 2, result: &resume.Resume{Name: "Ada"}}
	r := NewRetry(next, WithAttempts(3), WithSleeper(recordingSleeper(&delays)))

	out, err := r.EnhanceResume(context.Background(), nil, "make it punchier")

	require.NoError(t, err)
	assert.Equal(t, "Ada", out.Name)
	assert.Equal(t, 3, next.calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, delays)
}

func TestRetryFirstAttemptSuccessSleepsNever(t *testing.T) {
	var delays []time.Duration
	next := &scriptedEnhancer{failures: 0, result: &resume.Resume{}}
	r := NewRetry(next, WithAttempts(3), WithSleeper(recordingSleeper(&delays)))

	_, err := r.EnhanceResume(context.Background(), nil, "x")

	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)
	assert.Empty(t, delays)
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	next := &scriptedEnhancer{failures: 100}
	r := NewRetry(next, WithAttempts(5), WithSleeper(func(ctx context.Context, d time.Duration) error {
		return ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.EnhanceResume(ctx, nil, "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestBackoffSchedule(t *testing.T) {
	assert.Equal(t, 1*time.Second, Backoff(1))
	assert.Equal(t, 2*time.Second, Backoff(2))
	assert.Equal(t, 4*time.Second, Backoff(3))
}
