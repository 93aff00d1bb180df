package keywords

import (
	"math"
	"strings"

	"github.com/jonathan/resume-ats/internal/textutil"
	"github.com/jonathan/resume-ats/internal/types"
)

// location is a labeled, lower-cased résumé field group used for location reporting
type location struct {
	label string
	text  string
}

// resumeIndex is the lower-cased search view of a résumé
type resumeIndex struct {
	blob      string
	locations []location
}

// Analyze matches every job keyword against the résumé and proposes where the
// important missing ones should go.
func (m *Matcher) Analyze(resume *types.ResumeData, jobDescription string) *types.KeywordAnalysis {
	r := resume.OrEmpty()
	th := m.cfg.Keywords

	keywords := m.ExtractJobKeywords(jobDescription)
	index := m.index(r)
	job := strings.ToLower(jobDescription)
	windows := m.mustHaveWindows(job)

	analysis := &types.KeywordAnalysis{
		TotalKeywords: len(keywords),
		Keywords:      make([]types.KeywordMatch, 0, len(keywords)),
		Suggestions:   []types.KeywordSuggestion{},
	}

	for _, keyword := range keywords {
		match := types.KeywordMatch{
			Keyword:    keyword,
			Present:    strings.Contains(index.blob, keyword),
			Locations:  []string{},
			Importance: m.importance(keyword, job, windows),
		}
		if match.Present {
			match.Locations = index.find(keyword)
			analysis.MatchedKeywords++
		}
		analysis.Keywords = append(analysis.Keywords, match)
	}
	analysis.MissingKeywords = analysis.TotalKeywords - analysis.MatchedKeywords

	if analysis.TotalKeywords > 0 {
		analysis.MatchPercentage = int(math.Round(float64(analysis.MatchedKeywords) / float64(analysis.TotalKeywords) * 100))
	}

	for _, match := range analysis.Keywords {
		if len(analysis.Suggestions) >= th.MaxSuggestions {
			break
		}
		if match.Present || match.Importance == types.ImportanceLow {
			continue
		}
		analysis.Suggestions = append(analysis.Suggestions, m.suggest(match))
	}

	return analysis
}

// importance grades a keyword by how the job description emphasizes it
func (m *Matcher) importance(keyword, job string, windows []string) types.Importance {
	for _, window := range windows {
		if strings.Contains(window, keyword) {
			return types.ImportanceHigh
		}
	}

	count := strings.Count(job, keyword)
	switch {
	case count >= m.cfg.Keywords.HighOccurrences:
		return types.ImportanceHigh
	case count >= m.cfg.Keywords.MediumOccurrences:
		return types.ImportanceMedium
	default:
		return types.ImportanceLow
	}
}

// mustHaveWindows returns, for every trigger occurrence, the text from the start of its
// clause through MustHaveWindow runes after the trigger.
func (m *Matcher) mustHaveWindows(job string) []string {
	var windows []string
	for _, trigger := range m.lex.MustHaveTriggers() {
		trigger = strings.ToLower(trigger)
		if trigger == "" {
			continue
		}
		for offset := 0; offset < len(job); {
			idx := strings.Index(job[offset:], trigger)
			if idx < 0 {
				break
			}
			pos := offset + idx
			end := pos + len(trigger)
			windows = append(windows, job[clauseStart(job, pos):textutil.AdvanceRunes(job, end, m.cfg.Keywords.MustHaveWindow)])
			offset = end
		}
	}
	return windows
}

// clauseStart returns the offset just past the last line break or sentence separator before pos
func clauseStart(text string, pos int) int {
	start := 0
	for _, sep := range []string{"\n", ". ", "; "} {
		if i := strings.LastIndex(text[:pos], sep); i >= 0 && i+len(sep) > start {
			start = i + len(sep)
		}
	}
	return start
}

func (m *Matcher) suggest(match types.KeywordMatch) types.KeywordSuggestion {
	section := types.SectionSkills
	if !m.isTechnical(match.Keyword) && textutil.RuneLen(match.Keyword) > m.cfg.Keywords.PhraseMinChars {
		section = types.SectionExperience
	}

	priority := types.ImportanceMedium
	if match.Importance == types.ImportanceHigh {
		priority = types.ImportanceHigh
	}

	return types.KeywordSuggestion{
		Keyword:  match.Keyword,
		Section:  section,
		Priority: priority,
		Reason:   m.lex.Text("keyword.reason."+section, map[string]string{"Keyword": match.Keyword}),
	}
}

func (m *Matcher) isTechnical(keyword string) bool {
	for _, term := range m.lex.TechnicalTerms() {
		if term != "" && strings.Contains(keyword, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// index flattens the résumé for substring search and builds the labeled location groups
func (m *Matcher) index(r *types.ResumeData) resumeIndex {
	var parts []string
	add := func(values ...string) {
		for _, v := range values {
			if v != "" {
				parts = append(parts, v)
			}
		}
	}

	add(r.PersonalInfo.FullName, r.PersonalInfo.Summary)
	for _, exp := range r.Experience {
		add(exp.Position, exp.Company, exp.Description)
		add(exp.Achievements...)
	}
	for _, edu := range r.Education {
		add(edu.Institution, edu.Degree, edu.Field)
	}
	add(r.Skills...)
	for _, lang := range r.Languages {
		add(lang.Language, lang.Proficiency)
	}
	for _, cert := range r.Certifications {
		add(cert.Name, cert.Issuer)
	}
	for _, proj := range r.Projects {
		add(proj.Name, proj.Description)
		add(proj.Technologies...)
	}

	locations := make([]location, 0, 2+len(r.Experience)+len(r.Education))
	locations = append(locations, location{
		label: m.lex.Text("location.summary", nil),
		text:  strings.ToLower(r.PersonalInfo.Summary),
	})
	for _, exp := range r.Experience {
		fields := append([]string{exp.Position, exp.Company, exp.Description}, exp.Achievements...)
		locations = append(locations, location{
			label: m.lex.Text("location.experience", map[string]string{"Company": exp.Label()}),
			text:  strings.ToLower(strings.Join(fields, " ")),
		})
	}
	locations = append(locations, location{
		label: m.lex.Text("location.skills", nil),
		text:  strings.ToLower(strings.Join(r.Skills, " ")),
	})
	for _, edu := range r.Education {
		locations = append(locations, location{
			label: m.lex.Text("location.education", map[string]string{"Institution": edu.Institution}),
			text:  strings.ToLower(strings.Join([]string{edu.Institution, edu.Degree, edu.Field}, " ")),
		})
	}

	return resumeIndex{
		blob:      strings.ToLower(strings.Join(parts, " ")),
		locations: locations,
	}
}

// find returns the deduplicated labels of every location group containing keyword
func (idx resumeIndex) find(keyword string) []string {
	labels := []string{}
	seen := make(map[string]struct{})
	for _, loc := range idx.locations {
		if !strings.Contains(loc.text, keyword) {
			continue
		}
		if _, dup := seen[loc.label]; dup {
			continue
		}
		seen[loc.label] = struct{}{}
		labels = append(labels, loc.label)
	}
	return labels
}
