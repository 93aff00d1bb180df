package scoring

import (
	"github.com/jonathan/resume-ats/internal/types"
)

// scoreQuantification measures how many achievements carry a number with a unit.
// Each entry contributes its achievements plus one for the description.
func (s *Scorer) scoreQuantification(r *types.ResumeData) section {
	th := s.cfg.Scoring
	sec := s.newSection()
	pattern := s.lex.QuantityPattern()

	quantified, total := 0, 0
	unquantified := make([]types.ATSSuggestion, 0)
	for _, exp := range r.Experience {
		matches := len(pattern.FindAllStringIndex(exp.Text(), -1))
		quantified += matches
		total += len(exp.Achievements) + 1

		if matches == 0 {
			unquantified = append(unquantified, s.suggestion(types.CodeEntryNotQuantified, types.CategoryImportant,
				types.SectionExperience, th.EntryNotQuantifiedImpact, map[string]string{"Company": exp.Label()}))
		}
	}

	ratio := 0.0
	if total > 0 {
		ratio = float64(quantified) / float64(total)
	}

	switch {
	case ratio < th.QuantCriticalRatio:
		s.deduct(sec, th.QuantCriticalPenalty, types.CodeQuantificationCritical, types.CategoryCritical, types.SectionExperience)
	case ratio < th.QuantLowRatio:
		s.deduct(sec, th.QuantLowPenalty, types.CodeQuantificationLow, types.CategoryImportant, types.SectionExperience)
	}

	sec.suggestions = append(sec.suggestions, unquantified...)

	return sec.done()
}
