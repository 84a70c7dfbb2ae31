package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONBlock(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "plain object",
			raw:  `{"name":"Ada"}`,
			want: `{"name":"Ada"}`,
		},
		{
			name: "fenced json",
			raw:  "```json\n{\"name\":\"Ada\"}\n```",
			want: `{"name":"Ada"}`,
		},
		{
			name: "fenced without language",
			raw:  "```\n{\"name\":\"Ada\"}\n```",
			want: `{"name":"Ada"}`,
		},
		{
			name: "prose around object",
			raw:  "Here is your resume: {\"name\":\"Ada\"} hope it helps!",
			want: `{"name":"Ada"}`,
		},
		{
			name:    "no object at all",
			raw:     "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONBlock(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrBadOutput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeResume(t *testing.T) {
	raw := "```json\n" + `{
		"Name": "Ada Lovelace",
		"ROLE": "Engineer",
		"skills": ["Go", "SQL",],
		"experience": [
			{"company": "Acme", "position": "Dev", "from": "2020", "to": "2023", "description": "Built things",}
		],
	}` + "\n```"

	r, err := DecodeResume(raw)
	require.NoError(t, err)

	// Field matching is case-insensitive, trailing commas are tolerated.
	assert.Equal(t, "Ada Lovelace", r.Name)
	assert.Equal(t, "Engineer", r.Role)
	assert.Equal(t, []string{"Go", "SQL"}, r.Skills)
	require.Len(t, r.Experience, 1)
	assert.Equal(t, "Acme", r.Experience[0].Company)
}

func TestDecodeResumeUnparsable(t *testing.T) {
	_, err := DecodeResume("{this is not json}")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadOutput))
}

func TestStripTrailingCommasKeepsStrings(t *testing.T) {
	in := `{"summary": "worked on a, b, and c,", "skills": ["x",]}`
	out := stripTrailingCommas(in)
	assert.Equal(t, `{"summary": "worked on a, b, and c,", "skills": ["x"]}`, out)
}
