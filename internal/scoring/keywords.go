package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/resume-ats/internal/textutil"
	"github.com/jonathan/resume-ats/internal/types"
)

// scoreKeywords estimates keyword density from skills and the vocabulary of experience text.
func (s *Scorer) scoreKeywords(r *types.ResumeData) section {
	th := s.cfg.Scoring
	sec := s.newSection()

	texts := make([]string, len(r.Experience))
	for i, exp := range r.Experience {
		texts[i] = exp.Text()
	}
	unique := float64(textutil.UniqueWords(texts, th.UniqueWordMinLen))
	total := float64(len(r.Skills)) + math.Min(th.MaxExperienceKeywords, unique/th.UniqueWordsPerKeyword)

	switch {
	case total < th.KeywordsCriticalBelow:
		s.deduct(sec, th.KeywordsCriticalPenalty, types.CodeKeywordsCritical, types.CategoryCritical, types.SectionSkills)
	case total < th.KeywordsLowBelow:
		s.deduct(sec, th.KeywordsLowPenalty, types.CodeKeywordsLow, types.CategoryImportant, types.SectionSkills)
	}

	if !s.hasIndustryTerms(r.Skills) {
		s.deduct(sec, th.IndustryTermsPenalty, types.CodeIndustryTermsMissing, types.CategoryOptional, types.SectionSkills)
	}

	return sec.done()
}

func (s *Scorer) hasIndustryTerms(skills []string) bool {
	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if textutil.RuneLen(skill) > s.cfg.Scoring.IndustryTermMinLen && !s.lex.IsFillerWord(skill) {
			return true
		}
	}
	return false
}
