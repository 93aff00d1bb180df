package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand(t *testing.T) {
	dir := inTempDir(t)
	valid := writeFile(t, dir, "resume.json", developerResume)
	invalid := writeFile(t, dir, "invalid.json", `{"skills": "Go"}`)
	strict := writeFile(t, dir, "strict.schema.json", `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["summary"]
	}`)

	tests := []struct {
		name        string
		args        []string
		stdin       string
		wantOut     string
		errorString string
	}{
		{
			name:    "valid resume",
			args:    []string{"validate", "--resume", valid},
			wantOut: valid + ": valid",
		},
		{
			name:    "valid resume from stdin",
			args:    []string{"validate", "--resume", "-"},
			stdin:   `{}`,
			wantOut: "-: valid",
		},
		{
			name:        "schema violation",
			args:        []string{"validate", "--resume", invalid},
			errorString: "skills",
		},
		{
			name:        "custom schema",
			args:        []string{"validate", "--resume", valid, "--schema", strict},
			errorString: "summary",
		},
		{
			name:        "missing custom schema",
			args:        []string{"validate", "--resume", valid, "--schema", "nope.json"},
			errorString: "schema file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.stdin, tt.args...)
			if tt.errorString != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorString)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.wantOut)
		})
	}
}
