package scoring

import (
	"strings"

	"github.com/jonathan/resume-ats/internal/textutil"
	"github.com/jonathan/resume-ats/internal/types"
)

// scoreFormatting checks that the sections an ATS expects are present.
func (s *Scorer) scoreFormatting(r *types.ResumeData) section {
	th := s.cfg.Scoring
	sec := s.newSection()

	if textutil.RuneLen(strings.TrimSpace(r.PersonalInfo.Summary)) < th.SummaryMinChars {
		s.deduct(sec, th.SummaryPenalty, types.CodeSummaryMissing, types.CategoryImportant, types.SectionSummary)
	}
	if len(r.Experience) == 0 {
		s.deduct(sec, th.ExperiencePenalty, types.CodeExperienceMissing, types.CategoryCritical, types.SectionExperience)
	}
	if len(r.Education) == 0 {
		s.deduct(sec, th.EducationPenalty, types.CodeEducationMissing, types.CategoryImportant, types.SectionEducation)
	}
	if len(r.Skills) < th.MinSkills {
		s.deduct(sec, th.SkillsPenalty, types.CodeSkillsInsufficient, types.CategoryImportant, types.SectionSkills)
	}
	if strings.TrimSpace(r.PersonalInfo.Email) == "" {
		s.deduct(sec, th.EmailPenalty, types.CodeEmailMissing, types.CategoryImportant, types.SectionContact)
	}
	if strings.TrimSpace(r.PersonalInfo.Phone) == "" {
		s.deduct(sec, th.PhonePenalty, types.CodePhoneMissing, types.CategoryOptional, types.SectionContact)
	}

	return sec.done()
}
