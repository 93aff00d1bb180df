package scoring

import (
	"strings"

	"github.com/jonathan/resume-ats/internal/textutil"
	"github.com/jonathan/resume-ats/internal/types"
)

// scoreActionVerbs compares weak phrases against strong action verbs across all experience.
func (s *Scorer) scoreActionVerbs(r *types.ResumeData) section {
	th := s.cfg.Scoring
	sec := s.newSection()

	weak, strong := 0, 0
	openings := make([]types.ATSSuggestion, 0)
	for _, exp := range r.Experience {
		text := strings.ToLower(exp.Text())
		weak += textutil.CountOccurrences(text, s.lex.WeakPhrases())
		strong += textutil.CountOccurrences(text, s.lex.StrongVerbs())

		if s.opensWeak(exp.Description) {
			openings = append(openings, s.suggestion(types.CodeWeakOpening, types.CategoryImportant,
				types.SectionExperience, th.WeakOpeningImpact, map[string]string{"Company": exp.Label()}))
		}
	}

	switch {
	case weak > strong:
		s.deduct(sec, th.WeakDominantPenalty, types.CodeWeakVerbsDominant, types.CategoryCritical, types.SectionExperience)
	case strong < th.MinStrongVerbs:
		s.deduct(sec, th.StrongFewPenalty, types.CodeStrongVerbsFew, types.CategoryImportant, types.SectionExperience)
	}

	// Weak openings are advisory and cost no points
	sec.suggestions = append(sec.suggestions, openings...)

	return sec.done()
}

// opensWeak reports whether a description starts with a weak phrase
func (s *Scorer) opensWeak(description string) bool {
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" {
		return false
	}
	for _, phrase := range s.lex.WeakPhrases() {
		if phrase != "" && strings.HasPrefix(desc, phrase) {
			return true
		}
	}
	return false
}
