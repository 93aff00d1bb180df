package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Metadata describes a normalized job description
type Metadata struct {
	Format string `json:"format"`
	Hash   string `json:"hash"` // SHA256 hex digest of the normalized text
	Chars  int    `json:"chars"`
	Lines  int    `json:"lines"`
}

// NewMetadata describes normalized content
func NewMetadata(content, format string) *Metadata {
	lines := 0
	if content != "" {
		lines = strings.Count(content, "\n") + 1
	}
	return &Metadata{
		Format: format,
		Hash:   computeHash(content),
		Chars:  utf8.RuneCountInString(content),
		Lines:  lines,
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
