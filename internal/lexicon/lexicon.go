// Package lexicon provides the word lists and localized messages used by the analyzers.
// Lists are stored as JSON files and embedded at compile time.
package lexicon

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

//go:embed data/*.json
var dataFiles embed.FS

// DefaultLocale is the locale used for messages when none is configured
const DefaultLocale = "pt-BR"

// quantityPrefix matches a number with optional thousands separators and decimals
const quantityPrefix = `\d+[\d,]*\.?\d*\s*`

// cache stores built lexicons per locale to avoid repeated JSON parsing
var (
	cache   = make(map[string]*Lexicon)
	cacheMu sync.RWMutex
)

// Lists is the serialized form of a lexicon. Override files use the same shape:
// non-empty lists replace the defaults and message keys are merged.
type Lists struct {
	StopWords           []string          `json:"stopWords,omitempty"`
	WeakPhrases         []string          `json:"weakPhrases,omitempty"`
	StrongVerbs         []string          `json:"strongVerbs,omitempty"`
	TechnicalTerms      []string          `json:"technicalTerms,omitempty"`
	MustHaveTriggers    []string          `json:"mustHaveTriggers,omitempty"`
	QuantityUnits       []string          `json:"quantityUnits,omitempty"`
	FillerWords         []string          `json:"fillerWords,omitempty"`
	CertificationMarker string            `json:"certificationMarker,omitempty"`
	Messages            map[string]string `json:"messages,omitempty"`
}

// Lexicon is an immutable, ready-to-use set of word lists and messages.
// It is safe for concurrent use.
type Lexicon struct {
	locale      string
	lists       Lists
	stopWords   map[string]struct{}
	fillerWords map[string]struct{}
	quantity    *regexp.Regexp
}

type stopWordsFile struct {
	EN []string `json:"en"`
	PT []string `json:"pt"`
}

type verbsFile struct {
	Weak   []string `json:"weak"`
	Strong []string `json:"strong"`
}

type termsFile struct {
	Technical           []string `json:"technical"`
	MustHave            []string `json:"mustHave"`
	QuantityUnits       []string `json:"quantityUnits"`
	FillerWords         []string `json:"fillerWords"`
	CertificationMarker string   `json:"certificationMarker"`
}

// Load returns the built-in lexicon for a locale ("pt-BR" or "en").
// An empty locale selects DefaultLocale. Results are cached.
func Load(locale string) (*Lexicon, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	cacheMu.RLock()
	if lex, exists := cache[locale]; exists {
		cacheMu.RUnlock()
		return lex, nil
	}
	cacheMu.RUnlock()

	lists, err := loadEmbedded(locale)
	if err != nil {
		return nil, err
	}

	lex, err := build(locale, lists)
	if err != nil {
		return nil, err
	}

	cacheMu.Lock()
	cache[locale] = lex
	cacheMu.Unlock()

	return lex, nil
}

// MustLoad is like Load but panics on error.
// Use this for lexicons that are required at initialization time.
func MustLoad(locale string) *Lexicon {
	lex, err := Load(locale)
	if err != nil {
		panic(fmt.Sprintf("failed to load lexicon: %v", err))
	}
	return lex
}

// Default returns the built-in lexicon for DefaultLocale.
func Default() *Lexicon {
	return MustLoad(DefaultLocale)
}

// ClearCache clears the lexicon cache. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]*Lexicon)
	cacheMu.Unlock()
}

// Locales returns the locales with an embedded message catalog, sorted.
func Locales() []string {
	entries, err := dataFiles.ReadDir("data")
	if err != nil {
		return nil
	}
	var locales []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "messages.") && strings.HasSuffix(name, ".json") {
			locales = append(locales, strings.TrimSuffix(strings.TrimPrefix(name, "messages."), ".json"))
		}
	}
	sort.Strings(locales)
	return locales
}

// LoadFile reads a JSON override file and applies it on top of base.
func LoadFile(base *Lexicon, path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file %s: %w", path, err)
	}

	var overlay Lists
	if err := json.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file %s: %w", path, err)
	}

	return base.With(overlay)
}

// With returns a new lexicon with the overlay applied. The receiver is not modified.
func (l *Lexicon) With(overlay Lists) (*Lexicon, error) {
	merged := l.Lists()
	replace(&merged.StopWords, overlay.StopWords)
	replace(&merged.WeakPhrases, overlay.WeakPhrases)
	replace(&merged.StrongVerbs, overlay.StrongVerbs)
	replace(&merged.TechnicalTerms, overlay.TechnicalTerms)
	replace(&merged.MustHaveTriggers, overlay.MustHaveTriggers)
	replace(&merged.QuantityUnits, overlay.QuantityUnits)
	replace(&merged.FillerWords, overlay.FillerWords)
	if overlay.CertificationMarker != "" {
		merged.CertificationMarker = overlay.CertificationMarker
	}
	for key, value := range overlay.Messages {
		merged.Messages[key] = value
	}
	return build(l.locale, merged)
}

// Locale returns the locale of the message catalog
func (l *Lexicon) Locale() string { return l.locale }

// Lists returns a deep copy of the lexicon contents.
func (l *Lexicon) Lists() Lists {
	out := Lists{
		StopWords:           append([]string(nil), l.lists.StopWords...),
		WeakPhrases:         append([]string(nil), l.lists.WeakPhrases...),
		StrongVerbs:         append([]string(nil), l.lists.StrongVerbs...),
		TechnicalTerms:      append([]string(nil), l.lists.TechnicalTerms...),
		MustHaveTriggers:    append([]string(nil), l.lists.MustHaveTriggers...),
		QuantityUnits:       append([]string(nil), l.lists.QuantityUnits...),
		FillerWords:         append([]string(nil), l.lists.FillerWords...),
		CertificationMarker: l.lists.CertificationMarker,
		Messages:            make(map[string]string, len(l.lists.Messages)),
	}
	for key, value := range l.lists.Messages {
		out.Messages[key] = value
	}
	return out
}

// IsStopWord reports whether a lower-cased token is a stop word
func (l *Lexicon) IsStopWord(token string) bool {
	_, ok := l.stopWords[token]
	return ok
}

// IsFillerWord reports whether a lower-cased token is a single-letter filler word
func (l *Lexicon) IsFillerWord(token string) bool {
	_, ok := l.fillerWords[token]
	return ok
}

// WeakPhrases returns the weak-verb phrases. Callers must not modify the slice.
func (l *Lexicon) WeakPhrases() []string { return l.lists.WeakPhrases }

// StrongVerbs returns the strong action verbs. Callers must not modify the slice.
func (l *Lexicon) StrongVerbs() []string { return l.lists.StrongVerbs }

// TechnicalTerms returns the technical marker terms. Callers must not modify the slice.
func (l *Lexicon) TechnicalTerms() []string { return l.lists.TechnicalTerms }

// MustHaveTriggers returns the must-have trigger phrases. Callers must not modify the slice.
func (l *Lexicon) MustHaveTriggers() []string { return l.lists.MustHaveTriggers }

// CertificationMarker returns the substring that marks a certification keyword
func (l *Lexicon) CertificationMarker() string { return l.lists.CertificationMarker }

// QuantityPattern returns the compiled number-plus-unit pattern
func (l *Lexicon) QuantityPattern() *regexp.Regexp { return l.quantity }

// Text returns the localized message for key with {{.Key}} placeholders replaced.
// Unknown keys return the key itself.
func (l *Lexicon) Text(key string, data map[string]string) string {
	template, ok := l.lists.Messages[key]
	if !ok {
		return key
	}
	return Format(template, data)
}

// Format replaces template placeholders in the form {{.Key}} with values from data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

func replace(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = append([]string(nil), src...)
	}
}

func loadEmbedded(locale string) (Lists, error) {
	var stop stopWordsFile
	if err := readJSON("data/stopwords.json", &stop); err != nil {
		return Lists{}, err
	}
	var verbs verbsFile
	if err := readJSON("data/verbs.json", &verbs); err != nil {
		return Lists{}, err
	}
	var terms termsFile
	if err := readJSON("data/terms.json", &terms); err != nil {
		return Lists{}, err
	}
	var messages map[string]string
	if err := readJSON("data/messages."+locale+".json", &messages); err != nil {
		return Lists{}, fmt.Errorf("unsupported locale %q: %w", locale, err)
	}

	return Lists{
		StopWords:           append(stop.EN, stop.PT...),
		WeakPhrases:         verbs.Weak,
		StrongVerbs:         verbs.Strong,
		TechnicalTerms:      terms.Technical,
		MustHaveTriggers:    terms.MustHave,
		QuantityUnits:       terms.QuantityUnits,
		FillerWords:         terms.FillerWords,
		CertificationMarker: terms.CertificationMarker,
		Messages:            messages,
	}, nil
}

func readJSON(name string, v interface{}) error {
	data, err := dataFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read lexicon data %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse lexicon data %s: %w", name, err)
	}
	return nil
}

func build(locale string, lists Lists) (*Lexicon, error) {
	quantity, err := compileQuantityPattern(lists.QuantityUnits)
	if err != nil {
		return nil, err
	}
	if lists.Messages == nil {
		lists.Messages = make(map[string]string)
	}
	lists.CertificationMarker = strings.ToLower(lists.CertificationMarker)

	return &Lexicon{
		locale:      locale,
		lists:       lists,
		stopWords:   toSet(lists.StopWords),
		fillerWords: toSet(lists.FillerWords),
		quantity:    quantity,
	}, nil
}

// compileQuantityPattern builds number-plus-unit matching. Units are literal text,
// tried longest first so "por cento" wins over shorter overlapping units.
func compileQuantityPattern(units []string) (*regexp.Regexp, error) {
	sorted := make([]string, 0, len(units))
	for _, unit := range units {
		if unit = strings.TrimSpace(unit); unit != "" {
			sorted = append(sorted, unit)
		}
	}
	if len(sorted) == 0 {
		return nil, fmt.Errorf("lexicon has no quantity units")
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) > utf8.RuneCountInString(sorted[j])
	})

	quoted := make([]string, len(sorted))
	for i, unit := range sorted {
		quoted[i] = regexp.QuoteMeta(unit)
	}

	pattern, err := regexp.Compile(`(?i)` + quantityPrefix + `(?:` + strings.Join(quoted, "|") + `)`)
	if err != nil {
		return nil, fmt.Errorf("failed to compile quantity pattern: %w", err)
	}
	return pattern, nil
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[strings.ToLower(strings.TrimSpace(word))] = struct{}{}
	}
	return set
}
