package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-resume-be/pkg/resume"
)

const (
	enhanceTemperature = 0.3
	enhanceMaxTokens   = 4000
	titleTemperature   = 0.7
	titleMaxTokens     = 50
	titleMaxLength     = 400
)

// providerEnhancer implements the Enhancer capabilities on top of a raw
// chat-completion provider. It performs no retries; compose with Retry.
type providerEnhancer struct {
	provider ChatProvider
}

func NewEnhancer(provider ChatProvider) Enhancer {
	return &providerEnhancer{provider: provider}
}

func (e *providerEnhancer) EnhanceResume(ctx context.Context, current *resume.Resume, instruction string) (*resume.Resume, error) {
	currentJSON := "{}"
	if current != nil {
		if data, err := json.Marshal(current); err == nil {
			currentJSON = string(data)
		}
	}

	prompt := fmt.Sprintf(enhancePromptTemplate, currentJSON, instruction, resumeSchemaHint)
	raw, err := e.provider.Chat(ctx, []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}, WithTemperature(enhanceTemperature), WithMaxTokens(enhanceMaxTokens))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty response", ErrBadOutput)
	}

	return DecodeResume(raw)
}

func (e *providerEnhancer) EnhanceHtml(ctx context.Context, html string, current *resume.Resume, instruction string) (string, *resume.Resume, error) {
	// The HTML document stays authoritative and is returned untouched;
	// only the structured resume is regenerated against the instruction.
	enhanced, err := e.EnhanceResume(ctx, current, instruction)
	if err != nil {
		return "", nil, err
	}
	return html, enhanced, nil
}

func (e *providerEnhancer) GenerateTitle(ctx context.Context, instruction string) (string, error) {
	prompt := fmt.Sprintf(titlePromptTemplate, instruction)
	raw, err := e.provider.Chat(ctx, []Message{
		{Role: "user", Content: prompt},
	}, WithTemperature(titleTemperature), WithMaxTokens(titleMaxTokens))
	if err != nil {
		return "", err
	}

	title := strings.TrimSpace(raw)
	title = strings.Trim(title, `"'`)
	if title == "" {
		return "", fmt.Errorf("%w: empty title", ErrBadOutput)
	}
	if len(title) > titleMaxLength {
		title = title[:titleMaxLength]
	}
	return title, nil
}

func (e *providerEnhancer) ExtractResume(ctx context.Context, input ExtractInput) (*resume.Resume, error) {
	var messages []Message
	switch {
	case input.ImageBase64 != "":
		messages = []Message{{
			Role:        "user",
			Content:     extractImagePrompt,
			ImageBase64: input.ImageBase64,
		}}
	case strings.TrimSpace(input.Text) != "":
		prompt := fmt.Sprintf(extractPromptTemplate, resumeSchemaHint, input.Text)
		messages = []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		}
	default:
		return nil, fmt.Errorf("extract: no input supplied")
	}

	raw, err := e.provider.Chat(ctx, messages,
		WithTemperature(enhanceTemperature), WithMaxTokens(enhanceMaxTokens))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty response", ErrBadOutput)
	}

	return DecodeResume(raw)
}

// FallbackTitle derives a usable session title when title generation has
// failed: the instruction itself, truncated.
func FallbackTitle(instruction string) string {
	title := strings.TrimSpace(instruction)
	if len(title) > titleMaxLength {
		title = title[:titleMaxLength]
	}
	return title
}
