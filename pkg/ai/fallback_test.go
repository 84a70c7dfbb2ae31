package ai

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-resume-be/pkg/resume"
)

type stubEnhancer struct {
	err    error
	result *resume.Resume
	calls  int
}

func (s *stubEnhancer) EnhanceResume(ctx context.Context, current *resume.Resume, instruction string) (*resume.Resume, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubEnhancer) EnhanceHtml(ctx context.Context, html string, current *resume.Resume, instruction string) (string, *resume.Resume, error) {
	s.calls++
	return html, s.result, s.err
}

func (s *stubEnhancer) GenerateTitle(ctx context.Context, instruction string) (string, error) {
	s.calls++
	return "stub title", s.err
}

func (s *stubEnhancer) ExtractResume(ctx context.Context, input ExtractInput) (*resume.Resume, error) {
	s.calls++
	return s.result, s.err
}

func TestFallbackEngagesAfterPrimaryExhaustion(t *testing.T) {
	primary := &stubEnhancer{err: fmt.Errorf("%w: http 500", ErrUnavailable)}
	secondary := &stubEnhancer{result: &resume.Resume{Name: "From Fallback"}}
	f := NewFallback(primary, secondary)

	out, err := f.EnhanceResume(context.Background(), nil, "improve wording")

	require.NoError(t, err)
	assert.Equal(t, "From Fallback", out.Name)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestFallbackSkippedOnPrimarySuccess(t *testing.T) {
	primary := &stubEnhancer{result: &resume.Resume{Name: "Primary"}}
	secondary := &stubEnhancer{}
	f := NewFallback(primary, secondary)

	out, err := f.EnhanceResume(context.Background(), nil, "x")

	require.NoError(t, err)
	assert.Equal(t, "Primary", out.Name)
	assert.Zero(t, secondary.calls)
}

func TestFallbackNotUsedForNonRetryableErrors(t *testing.T) {
	primary := &stubEnhancer{err: fmt.Errorf("bad input")}
	secondary := &stubEnhancer{}
	f := NewFallback(primary, secondary)

	_, err := f.EnhanceResume(context.Background(), nil, "x")

	require.Error(t, err)
	assert.Zero(t, secondary.calls)
}

func TestFallbackNotUsedWhenDeadlineExpired(t *testing.T) {
	primary := &stubEnhancer{err: fmt.Errorf("%w: timeout", ErrUnavailable)}
	secondary := &stubEnhancer{}
	f := NewFallback(primary, secondary)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.EnhanceResume(ctx, nil, "x")

	require.Error(t, err)
	assert.Zero(t, secondary.calls)
}
