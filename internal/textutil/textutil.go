// Package textutil provides the tokenizer shared by the scorer and the keyword matcher.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// StopWords reports whether a lower-cased token should be dropped
type StopWords interface {
	IsStopWord(token string) bool
}

// Tokenize lower-cases text, replaces every rune that is not a letter, mark, digit,
// hyphen or whitespace with a space, and splits on whitespace.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsMark(r), unicode.IsDigit(r), r == '-':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, strings.ToLower(text))
	return strings.Fields(cleaned)
}

// FilterTokens keeps tokens longer than minLen runes that are not stop words.
func FilterTokens(tokens []string, minLen int, stop StopWords) []string {
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if RuneLen(token) <= minLen {
			continue
		}
		if stop != nil && stop.IsStopWord(token) {
			continue
		}
		out = append(out, token)
	}
	return out
}

// UniqueWords counts distinct lower-cased whitespace-separated words longer than minLen runes
// across all texts.
func UniqueWords(texts []string, minLen int) int {
	seen := make(map[string]struct{})
	for _, text := range texts {
		for _, word := range strings.Fields(strings.ToLower(text)) {
			if RuneLen(word) > minLen {
				seen[word] = struct{}{}
			}
		}
	}
	return len(seen)
}

// RuneLen returns the length of s in runes
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// AdvanceRunes returns the byte offset reached by moving n runes forward from offset,
// clamped to len(s).
func AdvanceRunes(s string, offset, n int) int {
	for n > 0 && offset < len(s) {
		_, size := utf8.DecodeRuneInString(s[offset:])
		offset += size
		n--
	}
	if offset > len(s) {
		return len(s)
	}
	return offset
}

// CountOccurrences returns the total non-overlapping occurrences of every needle in haystack.
// Empty needles are ignored.
func CountOccurrences(haystack string, needles []string) int {
	total := 0
	for _, needle := range needles {
		if needle == "" {
			continue
		}
		total += strings.Count(haystack, needle)
	}
	return total
}
