// Package scoring provides the ATS compatibility scorer. A résumé is graded on
// formatting, keyword density, action verbs and quantification, each out of
// SectionMax points, and receives a ranked list of improvement suggestions.
//
// Scoring is pure: it never fails, never mutates its input and returns
// identical reports for identical résumés.
package scoring

import (
	"sort"
	"sync"

	"github.com/jonathan/resume-ats/internal/heuristics"
	"github.com/jonathan/resume-ats/internal/lexicon"
	"github.com/jonathan/resume-ats/internal/types"
)

// Scorer grades résumés. It is immutable and safe for concurrent use.
type Scorer struct {
	cfg *heuristics.Config
	lex *lexicon.Lexicon
}

// section is the result of one sub-scorer
type section struct {
	score       int
	suggestions []types.ATSSuggestion
}

var defaultScorer = sync.OnceValue(func() *Scorer { return NewScorer(nil) })

// NewScorer creates a scorer. A nil config selects heuristics.Default().
func NewScorer(cfg *heuristics.Config) *Scorer {
	cfg = cfg.OrDefault()
	return &Scorer{cfg: cfg, lex: cfg.Lexicon()}
}

// Score grades a résumé with the default configuration.
func Score(resume *types.ResumeData) *types.ATSScore {
	return defaultScorer().Score(resume)
}

// Score grades a résumé. A nil résumé is scored as an empty one.
func (s *Scorer) Score(resume *types.ResumeData) *types.ATSScore {
	r := resume.OrEmpty()

	formatting := s.scoreFormatting(r)
	keywords := s.scoreKeywords(r)
	verbs := s.scoreActionVerbs(r)
	quantification := s.scoreQuantification(r)

	suggestions := make([]types.ATSSuggestion, 0,
		len(formatting.suggestions)+len(keywords.suggestions)+len(verbs.suggestions)+len(quantification.suggestions))
	suggestions = append(suggestions, formatting.suggestions...)
	suggestions = append(suggestions, keywords.suggestions...)
	suggestions = append(suggestions, verbs.suggestions...)
	suggestions = append(suggestions, quantification.suggestions...)
	sortSuggestions(suggestions)

	breakdown := types.ScoreBreakdown{
		Formatting:     formatting.score,
		Keywords:       keywords.score,
		ActionVerbs:    verbs.score,
		Quantification: quantification.score,
	}

	return &types.ATSScore{
		Overall:     breakdown.Sum(),
		Breakdown:   breakdown,
		Suggestions: suggestions,
	}
}

func (s *Scorer) newSection() *section {
	return &section{score: s.cfg.Scoring.SectionMax, suggestions: []types.ATSSuggestion{}}
}

// deduct subtracts points and records the matching suggestion with impact equal to the points.
func (s *Scorer) deduct(sec *section, points int, code string, category types.SuggestionCategory, tag string) {
	sec.score -= points
	sec.add(s.suggestion(code, category, tag, points, nil))
}

func (sec *section) add(suggestion types.ATSSuggestion) {
	sec.suggestions = append(sec.suggestions, suggestion)
}

// done floors the score at zero
func (sec *section) done() section {
	if sec.score < 0 {
		sec.score = 0
	}
	return *sec
}

func (s *Scorer) suggestion(code string, category types.SuggestionCategory, tag string, impact int, data map[string]string) types.ATSSuggestion {
	return types.ATSSuggestion{
		Code:        code,
		Category:    category,
		Title:       s.lex.Text(code+".title", data),
		Description: s.lex.Text(code+".description", data),
		Section:     tag,
		Impact:      impact,
	}
}

// sortSuggestions orders by category rank, then impact descending. Ties keep sub-scorer order.
func sortSuggestions(suggestions []types.ATSSuggestion) {
	sort.SliceStable(suggestions, func(i, j int) bool {
		ri, rj := suggestions[i].Category.Rank(), suggestions[j].Category.Rank()
		if ri != rj {
			return ri < rj
		}
		return suggestions[i].Impact > suggestions[j].Impact
	})
}
