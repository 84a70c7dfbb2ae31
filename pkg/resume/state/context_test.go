package state

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-resume-be/pkg/resume"
)

func TestBuildContextBoundedWindow(t *testing.T) {
	var entries []Entry
	for i := 0; i < 25; i++ {
		entries = append(entries, Entry{
			UserMessage:      fmt.Sprintf("user turn %d", i),
			AssistantMessage: fmt.Sprintf("assistant turn %d", i),
		})
	}

	ctx := BuildContext(nil, entries, "new message")

	// Only the last 10 turns survive, regardless of log length.
	assert.NotContains(t, ctx, "user turn 14")
	assert.Contains(t, ctx, "user turn 15")
	assert.Contains(t, ctx, "user turn 24")
	assert.Equal(t, ContextWindow, strings.Count(ctx, "user: "))
	assert.True(t, strings.HasSuffix(ctx, "new message"))
}

func TestBuildContextIncludesResume(t *testing.T) {
	r := &resume.Resume{Name: "Ada", Summary: "Engineer"}
	ctx := BuildContext(r, nil, "add a skill: Go")

	assert.Contains(t, ctx, "Current Resume Context:")
	assert.Contains(t, ctx, `"name":"Ada"`)
	assert.NotContains(t, ctx, "Conversation History:")
	assert.True(t, strings.HasSuffix(ctx, "add a skill: Go"))
}

func TestBuildContextNoResumeNoHistory(t *testing.T) {
	ctx := BuildContext(nil, nil, "hello")
	assert.Equal(t, "hello", ctx)
}

func TestBuildContextAlternatingTurns(t *testing.T) {
	entries := []Entry{
		{UserMessage: "shorten it", AssistantMessage: "done"},
	}
	ctx := BuildContext(nil, entries, "now expand it")

	userIdx := strings.Index(ctx, "user: shorten it")
	assistantIdx := strings.Index(ctx, "assistant: done")
	assert.True(t, userIdx >= 0 && assistantIdx > userIdx)
}
