package main

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ats/internal/types"
)

const batchInput = `{"items": [
	{"id": "maria", "resume": ` + developerResume + `, "jobDescription": "Golang Kubernetes"},
	{"resume": {}}
]}`

func TestBatchCommand_JSON(t *testing.T) {
	dir := inTempDir(t)
	input := writeFile(t, dir, "batch.json", batchInput)

	out, err := runCLI(t, "", "batch", "--input", input, "--format", "json")
	require.NoError(t, err)

	var resp types.BatchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	require.Len(t, resp.Results, 2)

	assert.Equal(t, "maria", resp.Results[0].ID)
	require.NotNil(t, resp.Results[0].Keywords)
	assert.Positive(t, resp.Results[0].Keywords.MatchedKeywords)

	_, err = uuid.Parse(resp.Results[1].ID)
	assert.NoError(t, err)
	require.NotNil(t, resp.Results[1].Score)
	assert.Equal(t, 32, resp.Results[1].Score.Overall)
	assert.Nil(t, resp.Results[1].Keywords)
}

func TestBatchCommand_Text(t *testing.T) {
	inTempDir(t)

	out, err := runCLI(t, batchInput, "batch", "--input", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "BATCH RESULTS (2)")
	assert.Contains(t, out, "maria")
}

func TestBatchCommand_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		errorString string
	}{
		{"malformed JSON", `{"items": [`, "invalid batch file"},
		{"no items", `{"items": []}`, "invalid batch file"},
		{"invalid item", `{"items": [{"resume": {}}, {"resume": {"skills": "Go"}}]}`, "item 1:"},
		{"bad job format", `{"items": [{"resume": {}, "jobDescription": "Go", "format": "html5"}]}`, "invalid batch file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTempDir(t)
			_, err := runCLI(t, tt.input, "batch", "--input", "-")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestBatchCommand_MaxBatchSizeFromConfigFile(t *testing.T) {
	dir := inTempDir(t)
	writeFile(t, dir, "ats-analyzer.yaml", "analysis:\n  max-batch-size: 1\n")

	_, err := runCLI(t, batchInput, "batch", "--input", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch too large: 2 items (max 1)")
}

func TestBatchCommand_MaxBatchSizeFromEnv(t *testing.T) {
	inTempDir(t)
	t.Setenv("ATS_ANALYSIS_MAX_BATCH_SIZE", "1")

	_, err := runCLI(t, batchInput, "batch", "--input", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch too large")
}
