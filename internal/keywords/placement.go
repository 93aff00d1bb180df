package keywords

import (
	"strings"

	"github.com/jonathan/resume-ats/internal/types"
)

// SuggestPlacement classifies a keyword as a certification, a short skill or a phrase and
// returns where it belongs. Phrases go to the most recent experience entry, or to the
// summary when there is none.
func (m *Matcher) SuggestPlacement(keyword string, resume *types.ResumeData) *types.KeywordPlacement {
	r := resume.OrEmpty()
	kw := strings.TrimSpace(keyword)
	data := map[string]string{"Keyword": kw}

	placement := &types.KeywordPlacement{Keyword: kw}

	marker := m.lex.CertificationMarker()
	switch {
	case marker != "" && strings.Contains(strings.ToLower(kw), marker):
		placement.Kind = types.PlacementCertification
		placement.Section = types.SectionCertifications
		placement.Suggestion = m.lex.Text("placement.certification", data)
	case len(strings.Fields(kw)) <= m.cfg.Keywords.SkillMaxWords:
		placement.Kind = types.PlacementSkill
		placement.Section = types.SectionSkills
		placement.Suggestion = m.lex.Text("placement.skill", data)
	case len(r.Experience) > 0:
		placement.Kind = types.PlacementPhrase
		placement.Section = types.SectionExperience
		placement.Target = r.Experience[0].Label()
		data["Company"] = placement.Target
		placement.Suggestion = m.lex.Text("placement.experience", data)
	default:
		placement.Kind = types.PlacementPhrase
		placement.Section = types.SectionSummary
		placement.Suggestion = m.lex.Text("placement.summary", data)
	}

	return placement
}
