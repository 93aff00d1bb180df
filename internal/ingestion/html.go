package ingestion

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelector matches page chrome that never belongs to a job description
const noiseSelector = "nav, footer, header, script, style, noscript, iframe, form, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup"

// blockSelector matches elements whose end should become a line break
const blockSelector = "p, div, li, tr, section, article, h1, h2, h3, h4, h5, h6, ul, ol, table"

// JobDescriptionSelectors returns selectors tried in order to find the posting body.
func JobDescriptionSelectors() []string {
	return []string{
		".job-description",
		".job-content",
		"#job-description",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
	}
}

// HTMLToText extracts the readable text of an HTML job description. Block elements
// become line breaks so sentence and clause boundaries survive.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &Error{Source: FormatHTML, Message: "failed to parse HTML", Cause: err}
	}

	doc.Find(noiseSelector).Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	var content *goquery.Selection
	for _, selector := range JobDescriptionSelectors() {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	// Markup indentation leaves blank and padded lines; keep only content
	var lines []string
	for _, line := range strings.Split(content.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return CleanText(strings.Join(lines, "\n")), nil
}
