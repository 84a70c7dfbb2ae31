package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-resume-be/pkg/resume"
)

type fakeChatProvider struct {
	response string
	err      error
	lastMsgs []Message
	lastOpts Options
}

func (f *fakeChatProvider) Chat(ctx context.Context, history []Message, opts ...Option) (string, error) {
	f.lastMsgs = history
	f.lastOpts = Options{}
	for _, opt := range opts {
		opt(&f.lastOpts)
	}
	return f.response, f.err
}

func TestEnhanceResumeParsesModelOutput(t *testing.T) {
	provider := &fakeChatProvider{
		response: "```json\n{\"name\":\"Ada\",\"summary\":\"Seasoned engineer\"}\n```",
	}
	e := NewEnhancer(provider)

	out, err := e.EnhanceResume(context.Background(), &resume.Resume{Name: "Ada"}, "make summary punchier")

	require.NoError(t, err)
	assert.Equal(t, "Seasoned engineer", out.Summary)
	assert.InDelta(t, 0.3, provider.lastOpts.Temperature, 0.001)
	assert.Equal(t, 4000, provider.lastOpts.MaxTokens)
	require.Len(t, provider.lastMsgs, 2)
	assert.Equal(t, "system", provider.lastMsgs[0].Role)
	assert.Contains(t, provider.lastMsgs[1].Content, "make summary punchier")
}

func TestEnhanceResumeEmptyOutputIsBadOutput(t *testing.T) {
	provider := &fakeChatProvider{response: "   \n"}
	e := NewEnhancer(provider)

	_, err := e.EnhanceResume(context.Background(), nil, "x")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadOutput))
}

func TestEnhanceHtmlReturnsOriginalHtmlVerbatim(t *testing.T) {
	provider := &fakeChatProvider{response: `{"name":"Ada"}`}
	e := NewEnhancer(provider)

	html := "<html><body>CV</body></html>"
	outHtml, outResume, err := e.EnhanceHtml(context.Background(), html, nil, "improve")

	require.NoError(t, err)
	assert.Equal(t, html, outHtml)
	assert.Equal(t, "Ada", outResume.Name)
}

func TestGenerateTitleTrimsQuotesAndCaps(t *testing.T) {
	provider := &fakeChatProvider{response: `"Polishing A Backend Resume"` + "\n"}
	e := NewEnhancer(provider)

	title, err := e.GenerateTitle(context.Background(), "improve my backend resume")

	require.NoError(t, err)
	assert.Equal(t, "Polishing A Backend Resume", title)
	assert.InDelta(t, 0.7, provider.lastOpts.Temperature, 0.001)
	assert.Equal(t, 50, provider.lastOpts.MaxTokens)
}

func TestGenerateTitleTruncatesLongOutput(t *testing.T) {
	provider := &fakeChatProvider{response: strings.Repeat("t", 600)}
	e := NewEnhancer(provider)

	title, err := e.GenerateTitle(context.Background(), "x")

	require.NoError(t, err)
	assert.Len(t, title, 400)
}

func TestExtractResumeFromText(t *testing.T) {
	provider := &fakeChatProvider{response: `{"name":"Grace Hopper","skills":["COBOL"]}`}
	e := NewEnhancer(provider)

	out, err := e.ExtractResume(context.Background(), ExtractInput{Text: "Grace Hopper, programmer..."})

	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", out.Name)
	assert.Equal(t, []string{"COBOL"}, out.Skills)
}

func TestExtractResumeFromImageUsesVisionMessage(t *testing.T) {
	provider := &fakeChatProvider{response: `{"name":"Grace"}`}
	e := NewEnhancer(provider)

	_, err := e.ExtractResume(context.Background(), ExtractInput{ImageBase64: "aGVsbG8="})

	require.NoError(t, err)
	require.Len(t, provider.lastMsgs, 1)
	assert.Equal(t, "aGVsbG8=", provider.lastMsgs[0].ImageBase64)
}

func TestFallbackTitle(t *testing.T) {
	assert.Equal(t, "fix my resume", FallbackTitle("  fix my resume  "))
	assert.Len(t, FallbackTitle(strings.Repeat("a", 500)), 400)
}
