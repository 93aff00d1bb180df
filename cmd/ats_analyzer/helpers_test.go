package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const developerResume = `{
	"personalInfo": {"fullName": "Maria Silva", "email": "maria@example.com"},
	"experience": [{"company": "Tech Company", "position": "Dev", "achievements": ["Desenvolvi APIs em Golang"]}],
	"skills": ["Golang", "Docker"]
}`

// inTempDir moves the test into an empty working directory so no config file is picked up
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// writeFile writes content to name inside dir and returns its path
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// runCLI executes the root command with args and returns its stdout
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(bytes.NewBufferString(stdin))
	err := cmd.Execute()
	return out.String(), err
}
