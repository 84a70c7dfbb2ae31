package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"ai-resume-be/pkg/resume"
)

// ExtractJSONBlock pulls the JSON object out of a raw model response.
// Models routinely wrap output in markdown fences or prose, so we strip
// fences, then take the substring from the first '{' to the last '}'.
func ExtractJSONBlock(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < 0 || end <= start {
		return "", fmt.Errorf("%w: no JSON object in response", ErrBadOutput)
	}
	return s[start : end+1], nil
}

// DecodeResume parses a model response into a resume snapshot. Field name
// matching is case-insensitive (encoding/json default) and trailing commas
// are tolerated since smaller models emit them frequently.
func DecodeResume(raw string) (*resume.Resume, error) {
	block, err := ExtractJSONBlock(raw)
	if err != nil {
		return nil, err
	}

	var r resume.Resume
	if err := json.Unmarshal([]byte(stripTrailingCommas(block)), &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadOutput, err)
	}
	return &r, nil
}

// stripTrailingCommas removes commas that directly precede a closing brace
// or bracket, ignoring anything inside string literals.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
			b.WriteByte(c)
		case ',':
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue // drop the comma
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
