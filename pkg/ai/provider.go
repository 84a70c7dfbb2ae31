package ai

import (
	"context"
	"errors"

	"ai-resume-be/pkg/resume"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string

	// ImageBase64 carries an inline image for vision-capable models.
	// Providers without vision support return an error when it is set.
	ImageBase64 string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// ChatProvider defines the contract for any chat-completion backend
type ChatProvider interface {
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)
}

// Enhancer is the capability surface the rest of the application consumes.
// Implementations are composed once at startup (provider + retry + fallback)
// and injected everywhere.
type Enhancer interface {
	EnhanceResume(ctx context.Context, current *resume.Resume, instruction string) (*resume.Resume, error)

	// EnhanceHtml keeps the supplied HTML authoritative: it is returned
	// verbatim while the JSON resume is regenerated to match.
	EnhanceHtml(ctx context.Context, html string, current *resume.Resume, instruction string) (string, *resume.Resume, error)

	GenerateTitle(ctx context.Context, instruction string) (string, error)

	ExtractResume(ctx context.Context, input ExtractInput) (*resume.Resume, error)
}

// ExtractInput is either plain text or an inline base64 image.
type ExtractInput struct {
	Text        string
	ImageBase64 string
}

var (
	// ErrUnavailable is surfaced once a provider's full retry budget is
	// exhausted. The user-facing message is attached at the service layer.
	ErrUnavailable = errors.New("ai provider unavailable")

	// ErrBadOutput marks a single attempt whose output was empty or could
	// not be parsed. It is retryable like any transport failure.
	ErrBadOutput = errors.New("unparsable model output")
)
