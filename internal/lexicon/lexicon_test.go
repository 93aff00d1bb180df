package lexicon

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultLocale(t *testing.T) {
	ClearCache()

	lex, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLocale, lex.Locale())
	assert.Equal(t, "Habilidades", lex.Text("location.skills", nil))
}

func TestLoad_Cached(t *testing.T) {
	ClearCache()

	first, err := Load("en")
	require.NoError(t, err)
	second, err := Load("en")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoad_UnsupportedLocale(t *testing.T) {
	ClearCache()

	_, err := Load("xx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported locale")
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad("nonexistent")
	})
}

func TestLocales(t *testing.T) {
	assert.Equal(t, []string{"en", "pt-BR"}, Locales())
}

func TestMessageCatalogs_SameKeys(t *testing.T) {
	pt := MustLoad("pt-BR").Lists().Messages
	en := MustLoad("en").Lists().Messages

	keys := func(m map[string]string) []string {
		out := make([]string, 0, len(m))
		for k := range m {
			out = append(out, k)
		}
		sort.Strings(out)
		return out
	}
	assert.Equal(t, keys(pt), keys(en))
}

func TestStopWords_Bilingual(t *testing.T) {
	lex := Default()

	for _, word := range []string{"the", "and", "with", "will", "de", "para", "com", "uma"} {
		assert.True(t, lex.IsStopWord(word), word)
	}
	assert.False(t, lex.IsStopWord("python"))
	assert.False(t, lex.IsStopWord("required"))
}

func TestFillerWords(t *testing.T) {
	lex := Default()
	assert.True(t, lex.IsFillerWord("e"))
	assert.False(t, lex.IsFillerWord("go"))
}

func TestText(t *testing.T) {
	lex := Default()

	t.Run("substitutes placeholders", func(t *testing.T) {
		got := lex.Text("location.experience", map[string]string{"Company": "Tech Company"})
		assert.Equal(t, "Experiência: Tech Company", got)
	})

	t.Run("unknown key returns key", func(t *testing.T) {
		assert.Equal(t, "no.such.key", lex.Text("no.such.key", nil))
	})

	t.Run("english catalog", func(t *testing.T) {
		got := MustLoad("en").Text("location.education", map[string]string{"Institution": "MIT"})
		assert.Equal(t, "Education: MIT", got)
	})
}

func TestFormat(t *testing.T) {
	got := Format("{{.A}} and {{.B}} and {{.A}}", map[string]string{"A": "x", "B": "y"})
	assert.Equal(t, "x and y and x", got)
}

func TestQuantityPattern(t *testing.T) {
	pattern := Default().QuantityPattern()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"percent sign", "increased revenue by 30%", 1},
		{"dollar amount", "saved 1,200,000$ per year", 1},
		{"english word", "served 2 million users", 1},
		{"portuguese unit", "reduzi custos em 15 por cento", 1},
		{"team size", "Liderei equipe de 5 desenvolvedores", 1},
		{"case insensitive", "grew to 10 Thousand", 1},
		{"two quantities", "30% faster for 200 clientes", 2},
		{"written-out number", "thirty percent faster", 0},
		{"bare number", "worked 3 years", 0},
		{"english headcount", "Managed a team of 12 engineers", 0},
		{"generic people count", "mentored 4 people", 0},
		{"no prefix match on words", "delivered 5 milestones", 0},
		{"no digits", "Desenvolvi aplicações web", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, pattern.FindAllString(tt.input, -1), tt.want)
		})
	}
}

func TestQuantityPattern_LongestUnitFirst(t *testing.T) {
	match := Default().QuantityPattern().FindString("cresceu 20 por cento")
	assert.Equal(t, "20 por cento", match)
}

func TestWith_Overlay(t *testing.T) {
	base := Default()

	lex, err := base.With(Lists{
		StrongVerbs: []string{"shipped"},
		Messages:    map[string]string{"location.skills": "Competências"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"shipped"}, lex.StrongVerbs())
	assert.Equal(t, base.WeakPhrases(), lex.WeakPhrases())
	assert.Equal(t, "Competências", lex.Text("location.skills", nil))
	assert.Equal(t, "Resumo Profissional", lex.Text("location.summary", nil))

	// base is untouched
	assert.Equal(t, "Habilidades", base.Text("location.skills", nil))
	assert.Contains(t, base.StrongVerbs(), "desenvolvi")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid overlay", func(t *testing.T) {
		path := filepath.Join(dir, "lexicon.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"quantityUnits": ["widgets"]}`), 0o644))

		lex, err := LoadFile(Default(), path)
		require.NoError(t, err)
		assert.True(t, lex.QuantityPattern().MatchString("built 4 widgets"))
		assert.False(t, lex.QuantityPattern().MatchString("grew 30%"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(Default(), filepath.Join(dir, "missing.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read lexicon file")
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

		_, err := LoadFile(Default(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse lexicon file")
	})
}
