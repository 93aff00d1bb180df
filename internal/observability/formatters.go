// Package observability provides human-readable report output for the CLI and
// Prometheus metrics for the server.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-ats/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted text output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to width runes, ending with "..." when cut
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func bar(score, limit int) string {
	const slots = 20
	if limit <= 0 {
		return ""
	}
	filled := max(0, min(slots, score*slots/limit))
	return strings.Repeat("█", filled) + strings.Repeat("░", slots-filled)
}

// PrintScore outputs the overall score, the breakdown and the top suggestions.
func (p *Printer) PrintScore(score *types.ATSScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:         %3d / 100\n\n", score.Overall))

	rows := []struct {
		label string
		value int
	}{
		{"Formatting", score.Breakdown.Formatting},
		{"Keywords", score.Breakdown.Keywords},
		{"Action verbs", score.Breakdown.ActionVerbs},
		{"Quantification", score.Breakdown.Quantification},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-15s %3d  %s\n", row.label, row.value, bar(row.value, 25)))
	}

	if len(score.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		count := min(len(score.Suggestions), maxItemsToShow)
		for i := 0; i < count; i++ {
			s := score.Suggestions[i]
			sb.WriteString(fmt.Sprintf("  [%s] %s\n", s.Category, s.Title))
		}
		if len(score.Suggestions) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(score.Suggestions)-maxItemsToShow))
		}
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywordAnalysis outputs match statistics, missing keywords and suggestions.
func (p *Printer) PrintKeywordAnalysis(analysis *types.KeywordAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match:    %d%% (%d of %d keywords)\n",
		analysis.MatchPercentage, analysis.MatchedKeywords, analysis.TotalKeywords))

	var missing []types.KeywordMatch
	for _, kw := range analysis.Keywords {
		if !kw.Present && kw.Importance != types.ImportanceLow {
			missing = append(missing, kw)
		}
	}
	if len(missing) > 0 {
		sb.WriteString("\nMissing:\n")
		count := min(len(missing), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", missing[i].Keyword, missing[i].Importance))
		}
		if len(missing) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(missing)-maxItemsToShow))
		}
	}

	if len(analysis.Suggestions) > 0 {
		sb.WriteString("\nAdd to:\n")
		count := min(len(analysis.Suggestions), maxItemsToShow)
		for i := 0; i < count; i++ {
			s := analysis.Suggestions[i]
			sb.WriteString(fmt.Sprintf("  %s → %s\n", s.Keyword, s.Section))
		}
	}

	p.printBox("KEYWORD MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPlacement outputs the advice for a single keyword.
func (p *Printer) PrintPlacement(placement *types.KeywordPlacement) {
	if placement == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Keyword:  %s\n", placement.Keyword))
	sb.WriteString(fmt.Sprintf("Kind:     %s\n", placement.Kind))
	sb.WriteString(fmt.Sprintf("Section:  %s\n", placement.Section))
	if placement.Target != "" {
		sb.WriteString(fmt.Sprintf("Target:   %s\n", placement.Target))
	}
	sb.WriteString("\n")
	sb.WriteString(placement.Suggestion)

	p.printBox("KEYWORD PLACEMENT", sb.String())
}

// PrintBatch outputs one line per batch result.
func (p *Printer) PrintBatch(results []types.BatchResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-24s %7s %7s\n", "ID", "SCORE", "MATCH"))
	for _, r := range results {
		score, match := "-", "-"
		if r.Score != nil {
			score = fmt.Sprintf("%d", r.Score.Overall)
		}
		if r.Keywords != nil && r.Keywords.TotalKeywords > 0 {
			match = fmt.Sprintf("%d%%", r.Keywords.MatchPercentage)
		}
		sb.WriteString(fmt.Sprintf("%-24s %7s %7s\n", truncate(r.ID, 24), score, match))
	}

	p.printBox(fmt.Sprintf("BATCH RESULTS (%d)", len(results)), strings.TrimSuffix(sb.String(), "\n"))
}
