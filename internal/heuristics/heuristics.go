// Package heuristics provides the single tunable configuration shared by the scorer
// and the keyword matcher: every numeric threshold plus the lexicon they read.
package heuristics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-ats/internal/lexicon"
)

// ScoringThresholds holds the point deductions and cutoffs of the four sub-scorers.
type ScoringThresholds struct {
	SectionMax int `yaml:"section_max" json:"section_max" validate:"gt=0"`

	// Formatting
	SummaryMinChars   int `yaml:"summary_min_chars" json:"summary_min_chars" validate:"gte=0"`
	SummaryPenalty    int `yaml:"summary_penalty" json:"summary_penalty" validate:"gte=0"`
	ExperiencePenalty int `yaml:"experience_penalty" json:"experience_penalty" validate:"gte=0"`
	EducationPenalty  int `yaml:"education_penalty" json:"education_penalty" validate:"gte=0"`
	MinSkills         int `yaml:"min_skills" json:"min_skills" validate:"gte=0"`
	SkillsPenalty     int `yaml:"skills_penalty" json:"skills_penalty" validate:"gte=0"`
	EmailPenalty      int `yaml:"email_penalty" json:"email_penalty" validate:"gte=0"`
	PhonePenalty      int `yaml:"phone_penalty" json:"phone_penalty" validate:"gte=0"`

	// Keywords
	UniqueWordMinLen        int     `yaml:"unique_word_min_len" json:"unique_word_min_len" validate:"gte=0"`
	UniqueWordsPerKeyword   float64 `yaml:"unique_words_per_keyword" json:"unique_words_per_keyword" validate:"gt=0"`
	MaxExperienceKeywords   float64 `yaml:"max_experience_keywords" json:"max_experience_keywords" validate:"gte=0"`
	KeywordsCriticalBelow   float64 `yaml:"keywords_critical_below" json:"keywords_critical_below" validate:"gte=0"`
	KeywordsCriticalPenalty int     `yaml:"keywords_critical_penalty" json:"keywords_critical_penalty" validate:"gte=0"`
	KeywordsLowBelow        float64 `yaml:"keywords_low_below" json:"keywords_low_below" validate:"gtefield=KeywordsCriticalBelow"`
	KeywordsLowPenalty      int     `yaml:"keywords_low_penalty" json:"keywords_low_penalty" validate:"gte=0"`
	IndustryTermMinLen      int     `yaml:"industry_term_min_len" json:"industry_term_min_len" validate:"gte=0"`
	IndustryTermsPenalty    int     `yaml:"industry_terms_penalty" json:"industry_terms_penalty" validate:"gte=0"`

	// Action verbs
	WeakDominantPenalty int `yaml:"weak_dominant_penalty" json:"weak_dominant_penalty" validate:"gte=0"`
	MinStrongVerbs      int `yaml:"min_strong_verbs" json:"min_strong_verbs" validate:"gte=0"`
	StrongFewPenalty    int `yaml:"strong_few_penalty" json:"strong_few_penalty" validate:"gte=0"`
	WeakOpeningImpact   int `yaml:"weak_opening_impact" json:"weak_opening_impact" validate:"gte=0"`

	// Quantification
	QuantCriticalRatio       float64 `yaml:"quant_critical_ratio" json:"quant_critical_ratio" validate:"gte=0,lte=1"`
	QuantCriticalPenalty     int     `yaml:"quant_critical_penalty" json:"quant_critical_penalty" validate:"gte=0"`
	QuantLowRatio            float64 `yaml:"quant_low_ratio" json:"quant_low_ratio" validate:"lte=1,gtefield=QuantCriticalRatio"`
	QuantLowPenalty          int     `yaml:"quant_low_penalty" json:"quant_low_penalty" validate:"gte=0"`
	EntryNotQuantifiedImpact int     `yaml:"entry_not_quantified_impact" json:"entry_not_quantified_impact" validate:"gte=0"`
}

// KeywordThresholds holds the extraction, importance and suggestion limits of the matcher.
type KeywordThresholds struct {
	MinTokenLen       int `yaml:"min_token_len" json:"min_token_len" validate:"gte=0"`
	MaxNGram          int `yaml:"max_ngram" json:"max_ngram" validate:"gte=1,lte=5"`
	MaxKeywords       int `yaml:"max_keywords" json:"max_keywords" validate:"gt=0"`
	MustHaveWindow    int `yaml:"must_have_window" json:"must_have_window" validate:"gte=0"`
	HighOccurrences   int `yaml:"high_occurrences" json:"high_occurrences" validate:"gt=0,gtefield=MediumOccurrences"`
	MediumOccurrences int `yaml:"medium_occurrences" json:"medium_occurrences" validate:"gt=0"`
	PhraseMinChars    int `yaml:"phrase_min_chars" json:"phrase_min_chars" validate:"gte=0"`
	MaxSuggestions    int `yaml:"max_suggestions" json:"max_suggestions" validate:"gte=0"`
	SkillMaxWords     int `yaml:"skill_max_words" json:"skill_max_words" validate:"gte=1"`
}

// Config is the complete, immutable analysis configuration.
// Build it with Default or Load; the zero value is not usable.
type Config struct {
	Locale      string            `yaml:"locale" json:"locale" validate:"omitempty,oneof=pt-BR en"`
	LexiconFile string            `yaml:"lexicon_file" json:"lexicon_file"`
	Scoring     ScoringThresholds `yaml:"scoring" json:"scoring"`
	Keywords    KeywordThresholds `yaml:"keywords" json:"keywords"`

	lexicon *lexicon.Lexicon
}

// ConfigError represents an invalid or unreadable heuristics file
type ConfigError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("heuristics config error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("heuristics config error: %s: %s", e.Path, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// DefaultScoring returns the stock scoring thresholds
func DefaultScoring() ScoringThresholds {
	return ScoringThresholds{
		SectionMax: 25,

		SummaryMinChars:   20,
		SummaryPenalty:    5,
		ExperiencePenalty: 10,
		EducationPenalty:  5,
		MinSkills:         5,
		SkillsPenalty:     5,
		EmailPenalty:      3,
		PhonePenalty:      2,

		UniqueWordMinLen:        3,
		UniqueWordsPerKeyword:   10,
		MaxExperienceKeywords:   10,
		KeywordsCriticalBelow:   10,
		KeywordsCriticalPenalty: 15,
		KeywordsLowBelow:        20,
		KeywordsLowPenalty:      8,
		IndustryTermMinLen:      2,
		IndustryTermsPenalty:    5,

		WeakDominantPenalty: 15,
		MinStrongVerbs:      5,
		StrongFewPenalty:    8,
		WeakOpeningImpact:   3,

		QuantCriticalRatio:       0.3,
		QuantCriticalPenalty:     15,
		QuantLowRatio:            0.5,
		QuantLowPenalty:          8,
		EntryNotQuantifiedImpact: 3,
	}
}

// DefaultKeywords returns the stock keyword thresholds
func DefaultKeywords() KeywordThresholds {
	return KeywordThresholds{
		MinTokenLen:       2,
		MaxNGram:          3,
		MaxKeywords:       50,
		MustHaveWindow:    500,
		HighOccurrences:   3,
		MediumOccurrences: 2,
		PhraseMinChars:    15,
		MaxSuggestions:    15,
		SkillMaxWords:     3,
	}
}

// Default returns the stock configuration with the default-locale lexicon.
func Default() *Config {
	return &Config{
		Locale:   lexicon.DefaultLocale,
		Scoring:  DefaultScoring(),
		Keywords: DefaultKeywords(),
		lexicon:  lexicon.Default(),
	}
}

// Load reads a YAML or JSON heuristics file (chosen by extension) and overlays it on
// the defaults. A relative lexicon_file is resolved against the file's directory.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, &ConfigError{Path: path, Message: "path is empty"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Message: "failed to read file", Cause: err}
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return nil, &ConfigError{Path: path, Message: fmt.Sprintf("unsupported extension %q", filepath.Ext(path))}
	}
	if err != nil {
		return nil, &ConfigError{Path: path, Message: "failed to parse file", Cause: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Path: path, Message: "invalid values", Cause: err}
	}

	if cfg.LexiconFile != "" && !filepath.IsAbs(cfg.LexiconFile) {
		cfg.LexiconFile = filepath.Join(filepath.Dir(path), cfg.LexiconFile)
	}

	lex, err := resolveLexicon(cfg.Locale, cfg.LexiconFile)
	if err != nil {
		return nil, &ConfigError{Path: path, Message: "failed to load lexicon", Cause: err}
	}
	cfg.lexicon = lex

	return cfg, nil
}

// Validate checks thresholds using struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// Lexicon returns the lexicon the analyzers read
func (c *Config) Lexicon() *lexicon.Lexicon {
	if c.lexicon == nil {
		return lexicon.Default()
	}
	return c.lexicon
}

// WithLexicon returns a copy of c that uses lex.
func (c *Config) WithLexicon(lex *lexicon.Lexicon) *Config {
	out := *c
	out.lexicon = lex
	if lex != nil {
		out.Locale = lex.Locale()
	}
	return &out
}

// OrDefault returns c, or the default configuration when c is nil.
func (c *Config) OrDefault() *Config {
	if c == nil {
		return Default()
	}
	return c
}

func resolveLexicon(locale, file string) (*lexicon.Lexicon, error) {
	lex, err := lexicon.Load(locale)
	if err != nil {
		return nil, err
	}
	if file == "" {
		return lex, nil
	}
	return lexicon.LoadFile(lex, file)
}

// Resolve loads path when set, or the defaults otherwise, and switches to locale when
// it is set. Any lexicon_file overlay is reapplied on top of the new locale.
func Resolve(path, locale string) (*Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if locale == "" || locale == cfg.Locale {
		return cfg, nil
	}

	lex, err := resolveLexicon(locale, cfg.LexiconFile)
	if err != nil {
		return nil, &ConfigError{Path: path, Message: fmt.Sprintf("failed to load lexicon for locale %q", locale), Cause: err}
	}
	return cfg.WithLexicon(lex), nil
}
