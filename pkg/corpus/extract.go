package corpus

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// The reference chapters end with references and self-assessment sections that
// poison retrieval. Both are cut from the page up to the next heading line.
// RE2 has no lookahead, so the heading start is captured and restored.
var (
	referencesRe     = regexp.MustCompile(`(?s)\bREFERENCES\b.*?(\n[A-Z])`)
	selfAssessmentRe = regexp.MustCompile(`(?s)\bSELF[- ]?ASSESSMENT QUESTIONS\b.*?(\n[A-Z])`)
	blankLinesRe     = regexp.MustCompile(`\n{2,}`)
)

// ExtractCleanText pulls the text of every page after the front-matter offset
// and cleans it page by page. startPage is the number of leading pages to
// skip.
func ExtractCleanText(pdfPath string, startPage int) (string, error) {
	f, reader, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	totalPages := reader.NumPage()
	for pageNum := startPage + 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil || pageText == "" {
			continue
		}
		b.WriteString(CleanPageText(pageText))
		b.WriteString("\n")
	}

	return b.String(), nil
}

// CleanPageText strips reference and self-assessment sections and collapses
// runs of blank lines.
func CleanPageText(text string) string {
	text = referencesRe.ReplaceAllString(text, "$1")
	text = selfAssessmentRe.ReplaceAllString(text, "$1")
	text = blankLinesRe.ReplaceAllString(text, "\n")
	return text
}
