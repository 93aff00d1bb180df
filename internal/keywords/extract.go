package keywords

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-ats/internal/textutil"
)

type candidate struct {
	text  string
	words int
	first string
}

// ExtractJobKeywords returns up to MaxKeywords terms from a job description: unigrams,
// bigrams and trigrams of non-stop-word tokens, longest n-grams first, ties broken by
// the frequency of the n-gram's first word.
func (m *Matcher) ExtractJobKeywords(jobDescription string) []string {
	th := m.cfg.Keywords

	// 1. Tokenize and drop short tokens and stop words
	tokens := textutil.FilterTokens(textutil.Tokenize(jobDescription), th.MinTokenLen, m.lex)
	if len(tokens) == 0 {
		return []string{}
	}

	// 2. Unigram frequencies
	freq := make(map[string]int, len(tokens))
	for _, token := range tokens {
		freq[token]++
	}

	// 3. Ordered union of n-grams, first occurrence wins
	seen := make(map[string]struct{})
	candidates := make([]candidate, 0, len(tokens)*th.MaxNGram)
	for n := 1; n <= th.MaxNGram; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			gram := tokens[i : i+n]
			if n > 1 && m.hasStopWord(gram) {
				continue
			}
			text := strings.Join(gram, " ")
			if _, dup := seen[text]; dup {
				continue
			}
			seen[text] = struct{}{}
			candidates = append(candidates, candidate{text: text, words: n, first: gram[0]})
		}
	}

	// 4. Rank and truncate
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].words != candidates[j].words {
			return candidates[i].words > candidates[j].words
		}
		return freq[candidates[i].first] > freq[candidates[j].first]
	})
	if len(candidates) > th.MaxKeywords {
		candidates = candidates[:th.MaxKeywords]
	}

	keywords := make([]string, len(candidates))
	for i, c := range candidates {
		keywords[i] = c.text
	}
	return keywords
}

func (m *Matcher) hasStopWord(words []string) bool {
	for _, word := range words {
		if m.lex.IsStopWord(word) {
			return true
		}
	}
	return false
}
