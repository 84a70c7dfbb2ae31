package ai

import (
	"context"
	"errors"

	"ai-resume-be/pkg/resume"
)

// Fallback decorates a primary Enhancer with a secondary one. The secondary
// is only consulted after the primary's full retry budget is exhausted;
// both sides are expected to already be retry-wrapped with their own
// (separately configured) policies.
type Fallback struct {
	primary   Enhancer
	secondary Enhancer
}

func NewFallback(primary, secondary Enhancer) *Fallback {
	return &Fallback{primary: primary, secondary: secondary}
}

func (f *Fallback) shouldFallback(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	return errors.Is(err, ErrUnavailable)
}

func (f *Fallback) EnhanceResume(ctx context.Context, current *resume.Resume, instruction string) (*resume.Resume, error) {
	out, err := f.primary.EnhanceResume(ctx, current, instruction)
	if err != nil && f.shouldFallback(ctx, err) {
		return f.secondary.EnhanceResume(ctx, current, instruction)
	}
	return out, err
}

func (f *Fallback) EnhanceHtml(ctx context.Context, html string, current *resume.Resume, instruction string) (string, *resume.Resume, error) {
	outHtml, out, err := f.primary.EnhanceHtml(ctx, html, current, instruction)
	if err != nil && f.shouldFallback(ctx, err) {
		return f.secondary.EnhanceHtml(ctx, html, current, instruction)
	}
	return outHtml, out, err
}

func (f *Fallback) GenerateTitle(ctx context.Context, instruction string) (string, error) {
	out, err := f.primary.GenerateTitle(ctx, instruction)
	if err != nil && f.shouldFallback(ctx, err) {
		return f.secondary.GenerateTitle(ctx, instruction)
	}
	return out, err
}

func (f *Fallback) ExtractResume(ctx context.Context, input ExtractInput) (*resume.Resume, error) {
	out, err := f.primary.ExtractResume(ctx, input)
	if err != nil && f.shouldFallback(ctx, err) {
		return f.secondary.ExtractResume(ctx, input)
	}
	return out, err
}
