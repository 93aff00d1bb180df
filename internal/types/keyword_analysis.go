package types

// Importance is the apparent criticality of a job-description keyword
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// KeywordAnalysis reports which job-description keywords appear in a résumé
type KeywordAnalysis struct {
	MatchPercentage int                 `json:"matchPercentage"`
	TotalKeywords   int                 `json:"totalKeywords"`
	MatchedKeywords int                 `json:"matchedKeywords"`
	MissingKeywords int                 `json:"missingKeywords"`
	Keywords        []KeywordMatch      `json:"keywords"`
	Suggestions     []KeywordSuggestion `json:"suggestions"`
}

// KeywordMatch is the presence report for one extracted keyword
type KeywordMatch struct {
	Keyword    string     `json:"keyword"`
	Present    bool       `json:"present"`
	Locations  []string   `json:"locations"`
	Importance Importance `json:"importance"`
}

// KeywordSuggestion proposes where a missing keyword should be added
type KeywordSuggestion struct {
	Keyword  string     `json:"keyword"`
	Section  string     `json:"section"`
	Priority Importance `json:"priority"`
	Reason   string     `json:"reason"`
}

// PlacementKind classifies a keyword for placement advice
type PlacementKind string

const (
	PlacementCertification PlacementKind = "certification"
	PlacementSkill         PlacementKind = "skill"
	PlacementPhrase        PlacementKind = "phrase"
)

// KeywordPlacement is the placement advice for a single keyword
type KeywordPlacement struct {
	Keyword    string        `json:"keyword"`
	Kind       PlacementKind `json:"kind"`
	Section    string        `json:"section"`
	Target     string        `json:"target,omitempty"`
	Suggestion string        `json:"suggestion"`
}
