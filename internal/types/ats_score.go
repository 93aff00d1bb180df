package types

// SuggestionCategory is the priority class of an ATS suggestion
type SuggestionCategory string

const (
	CategoryCritical  SuggestionCategory = "critical"
	CategoryImportant SuggestionCategory = "important"
	CategoryOptional  SuggestionCategory = "optional"
)

// Rank orders categories for sorting: critical first, unknown values last.
func (c SuggestionCategory) Rank() int {
	switch c {
	case CategoryCritical:
		return 0
	case CategoryImportant:
		return 1
	case CategoryOptional:
		return 2
	default:
		return 3
	}
}

// Résumé sections referenced by suggestions and placements
const (
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionContact        = "contact"
	SectionCertifications = "certifications"
)

// ATSScore is the four-part compatibility score of a résumé
type ATSScore struct {
	Overall     int             `json:"overall"`
	Breakdown   ScoreBreakdown  `json:"breakdown"`
	Suggestions []ATSSuggestion `json:"suggestions"`
}

// ScoreBreakdown holds the four sub-scores, each in [0, 25] with default thresholds
type ScoreBreakdown struct {
	Formatting     int `json:"formatting"`
	Keywords       int `json:"keywords"`
	ActionVerbs    int `json:"actionVerbs"`
	Quantification int `json:"quantification"`
}

// Sum returns the total of the four sub-scores
func (b ScoreBreakdown) Sum() int {
	return b.Formatting + b.Keywords + b.ActionVerbs + b.Quantification
}

// ATSSuggestion is an actionable improvement. Impact is the number of points the fix
// could recover and is used for ordering only.
type ATSSuggestion struct {
	Code        string             `json:"code"`
	Category    SuggestionCategory `json:"category"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Section     string             `json:"section,omitempty"`
	Impact      int                `json:"impact"`
}

// Suggestion codes
const (
	CodeSummaryMissing         = "summary_missing"
	CodeExperienceMissing      = "experience_missing"
	CodeEducationMissing       = "education_missing"
	CodeSkillsInsufficient     = "skills_insufficient"
	CodeEmailMissing           = "email_missing"
	CodePhoneMissing           = "phone_missing"
	CodeKeywordsCritical       = "keywords_critical"
	CodeKeywordsLow            = "keywords_low"
	CodeIndustryTermsMissing   = "industry_terms_missing"
	CodeWeakVerbsDominant      = "weak_verbs_dominant"
	CodeStrongVerbsFew         = "strong_verbs_few"
	CodeWeakOpening            = "weak_opening"
	CodeQuantificationCritical = "quantification_critical"
	CodeQuantificationLow      = "quantification_low"
	CodeEntryNotQuantified     = "entry_not_quantified"
)
