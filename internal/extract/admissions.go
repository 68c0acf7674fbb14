package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AdmissionsData is the extraction record for admissions pages.
type AdmissionsData struct {
	Headings     []string `json:"headings"`
	Requirements []string `json:"requirements"`
	Note         string   `json:"note"`
}

const (
	maxHeadings       = 30
	maxRequirements   = 40
	minRequirementLen = 20
	maxRequirementLen = 220
	admissionsNote    = "Admissions requirements are extracted from headings/bullets. Always verify on the official admissions page."
)

var requirementKeywords = []string{
	"recommend", "required", "requirement", "years", "transcript",
	"essay", "teacher", "recommendation", "testing", "sat", "act",
}

// Admissions extracts headings and likely requirement bullets.
func Admissions(document string) AdmissionsData {
	doc := parse(document)

	headings := []string{}
	doc.Find("h1, h2, h3").EachWithBreak(func(i int, h *goquery.Selection) bool {
		if i >= maxHeadings {
			return false
		}
		headings = append(headings, textOf(h))
		return true
	})

	var candidates []string
	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		b := textOf(li)
		if len(b) < minRequirementLen || len(b) > maxRequirementLen {
			return
		}
		if containsAny(strings.ToLower(b), requirementKeywords) {
			candidates = append(candidates, b)
		}
	})

	return AdmissionsData{
		Headings:     headings,
		Requirements: dedupe(candidates, maxRequirements),
		Note:         admissionsNote,
	}
}
