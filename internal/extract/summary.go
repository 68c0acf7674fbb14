package extract

import (
	"github.com/PuerkitoBio/goquery"
)

// AidData is the extraction record for financial aid pages.
type AidData struct {
	Summary []string `json:"summary"`
	Note    string   `json:"note"`
}

// AboutData is the extraction record for about/overview pages.
type AboutData struct {
	Overview []string `json:"overview"`
	Note     string   `json:"note"`
}

const (
	maxSummaryParagraphs = 4
	minParagraphLen      = 60
	maxParagraphLen      = 350
	aidNote              = "Financial aid summary extracted from top paragraphs. Use official page for details."
	aboutNote            = "About/overview extracted from top paragraphs. Use official page for details."
)

// Aid extracts the first substantive paragraphs of a financial aid page.
func Aid(document string) AidData {
	return AidData{
		Summary: summaryParagraphs(parse(document), maxSummaryParagraphs),
		Note:    aidNote,
	}
}

// About extracts the first substantive paragraphs of an about page.
func About(document string) AboutData {
	return AboutData{
		Overview: summaryParagraphs(parse(document), maxSummaryParagraphs),
		Note:     aboutNote,
	}
}

// summaryParagraphs keeps the first paragraphs whose visible text falls in
// the substantive window, skipping boilerplate and short nav text.
func summaryParagraphs(doc *goquery.Document, maxParas int) []string {
	paras := []string{}
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		t := textOf(p)
		if len(t) >= minParagraphLen && len(t) <= maxParagraphLen {
			paras = append(paras, t)
		}
		return len(paras) < maxParas
	})
	return paras
}
