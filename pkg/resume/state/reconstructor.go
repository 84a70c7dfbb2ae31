package state

import (
	"ai-resume-be/pkg/resume"
)

// Entry is the projection of one history record that reconstruction needs.
// Entries must be ordered oldest-first, as stored in the log.
type Entry struct {
	UserMessage      string
	AssistantMessage string
	Original         *resume.Resume
	Enhanced         *resume.Resume
	ResumeHtml       string
	EnhancedHtml     string
}

// CurrentResume derives the latest known resume from an append-only log.
// It scans in reverse for the most recent enhanced snapshot and falls back
// to the most recent original snapshot. Pure function of the input slice.
func CurrentResume(entries []Entry) *resume.Resume {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Enhanced != nil {
			return entries[i].Enhanced
		}
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Original != nil {
			return entries[i].Original
		}
	}
	return nil
}

// CurrentHtml applies the same reverse-scan rule to the HTML track,
// independently of the JSON track.
func CurrentHtml(entries []Entry) string {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].EnhancedHtml != "" {
			return entries[i].EnhancedHtml
		}
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].ResumeHtml != "" {
			return entries[i].ResumeHtml
		}
	}
	return ""
}
