package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-resume-be/pkg/resume"
)

func snap(name string) *resume.Resume {
	return &resume.Resume{Name: name}
}

func TestCurrentResumePrefersLatestEnhanced(t *testing.T) {
	entries := []Entry{
		{Original: snap("v0"), Enhanced: snap("v1")},
		{Original: snap("v1"), Enhanced: snap("v2")},
		{Original: snap("v2")}, // failed enhancement turn, no enhanced snapshot
	}

	got := CurrentResume(entries)
	require.NotNil(t, got)
	assert.Equal(t, "v2", got.Name)
}

func TestCurrentResumeFallsBackToOriginal(t *testing.T) {
	entries := []Entry{
		{Original: snap("seed")},
		{},
	}

	got := CurrentResume(entries)
	require.NotNil(t, got)
	assert.Equal(t, "seed", got.Name)
}

func TestCurrentResumeEmptyLog(t *testing.T) {
	assert.Nil(t, CurrentResume(nil))
	assert.Nil(t, CurrentResume([]Entry{{}, {}}))
}

func TestCurrentResumeIsPure(t *testing.T) {
	entries := []Entry{
		{Original: snap("a"), Enhanced: snap("b")},
		{Enhanced: snap("c")},
	}

	first := CurrentResume(entries)
	second := CurrentResume(entries)
	assert.Equal(t, first, second)
	assert.Equal(t, "c", first.Name)
}

func TestCurrentHtmlIndependentOfJSONTrack(t *testing.T) {
	entries := []Entry{
		{ResumeHtml: "<p>v0</p>", Enhanced: snap("v1")},
		{Enhanced: snap("v2")},
	}

	// The JSON track has newer data, but the HTML track only ever saw v0.
	assert.Equal(t, "<p>v0</p>", CurrentHtml(entries))
	assert.Equal(t, "v2", CurrentResume(entries).Name)
}

func TestCurrentHtmlPrefersEnhanced(t *testing.T) {
	entries := []Entry{
		{ResumeHtml: "<p>in</p>", EnhancedHtml: "<p>out</p>"},
		{ResumeHtml: "<p>in2</p>"},
	}

	assert.Equal(t, "<p>in2</p>", CurrentHtml([]Entry{entries[1]}))
	assert.Equal(t, "<p>out</p>", CurrentHtml(entries[:1]))
}
