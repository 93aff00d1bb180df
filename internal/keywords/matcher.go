// Package keywords provides job-description keyword extraction, résumé matching and
// placement advice for missing keywords.
//
// All operations are pure and total: any string, including an empty one, yields a
// well-formed report.
package keywords

import (
	"sync"

	"github.com/jonathan/resume-ats/internal/heuristics"
	"github.com/jonathan/resume-ats/internal/lexicon"
	"github.com/jonathan/resume-ats/internal/types"
)

// Matcher extracts and matches keywords. It is immutable and safe for concurrent use.
type Matcher struct {
	cfg *heuristics.Config
	lex *lexicon.Lexicon
}

var defaultMatcher = sync.OnceValue(func() *Matcher { return NewMatcher(nil) })

// NewMatcher creates a matcher. A nil config selects heuristics.Default().
func NewMatcher(cfg *heuristics.Config) *Matcher {
	cfg = cfg.OrDefault()
	return &Matcher{cfg: cfg, lex: cfg.Lexicon()}
}

// ExtractJobKeywords extracts ranked keywords with the default configuration.
func ExtractJobKeywords(jobDescription string) []string {
	return defaultMatcher().ExtractJobKeywords(jobDescription)
}

// AnalyzeKeywordMatch matches job keywords against a résumé with the default configuration.
func AnalyzeKeywordMatch(resume *types.ResumeData, jobDescription string) *types.KeywordAnalysis {
	return defaultMatcher().Analyze(resume, jobDescription)
}

// SuggestKeywordPlacement advises where to add one keyword, with the default configuration.
func SuggestKeywordPlacement(keyword string, resume *types.ResumeData) *types.KeywordPlacement {
	return defaultMatcher().SuggestPlacement(keyword, resume)
}
