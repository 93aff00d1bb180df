// Package ingestion normalizes job descriptions supplied by callers into clean text
// before keyword analysis.
package ingestion

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Supported job-description formats
const (
	FormatText = "text"
	FormatHTML = "html"
)

var (
	spaceRun      = regexp.MustCompile(`\s+`)
	blankLineRun  = regexp.MustCompile(`\n\n\n+`)
	htmlExtension = map[string]bool{".html": true, ".htm": true}
)

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// 2. Clean each line
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	// 3. Collapse runs of blank lines and trim
	result := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims trailing whitespace and collapses inner runs of whitespace.
// Leading indentation is kept so nested bullets stay readable.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := len(line) - len(trimmed)
	content := spaceRun.ReplaceAllString(trimmed, " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

// Normalize converts a job description in the given format to clean text.
// An empty format is treated as text.
func Normalize(content, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return CleanText(content), nil
	case FormatHTML:
		return HTMLToText(content)
	default:
		return "", &Error{Source: format, Message: "unsupported format", Cause: ErrUnsupportedFormat}
	}
}

// DetectFormat guesses the format of a job-description file from its extension
func DetectFormat(path string) string {
	if htmlExtension[strings.ToLower(filepath.Ext(path))] {
		return FormatHTML
	}
	return FormatText
}

// ReadJobDescription reads, normalizes and describes a job-description file.
// An empty format is detected from the extension.
func ReadJobDescription(path, format string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, &Error{Source: path, Message: "file not found", Cause: err}
		}
		return "", nil, &Error{Source: path, Message: "failed to read file", Cause: err}
	}

	if format == "" {
		format = DetectFormat(path)
	}

	text, err := Normalize(string(content), format)
	if err != nil {
		return "", nil, err
	}

	return text, NewMetadata(text, format), nil
}
