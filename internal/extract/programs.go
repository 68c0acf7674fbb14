package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ProgramsData is the extraction record for programs/majors pages.
type ProgramsData struct {
	Programs      []string `json:"programs"`
	CountEstimate int      `json:"count_estimate"`
	Note          string   `json:"note"`
}

const (
	maxPrograms  = 120
	programsNote = "Programs extracted from link/list texts and filtered heuristically. Official catalogs are the source of truth."
)

// navWords filters obvious navigation chrome out of the link texts.
var navWords = []string{
	"apply", "admission", "financial", "contact", "login",
	"search", "privacy", "cookie", "menu",
}

var disciplineKeywords = []string{
	"studies", "engineering", "science", "mathematics", "history",
	"economics", "biology", "computer", "physics", "chemistry",
	"philosophy", "political", "sociology", "psychology", "language",
	"literature", "art", "music", "anthropology",
}

// Programs extracts program/major names from anchor and list-item texts.
func Programs(document string) ProgramsData {
	doc := parse(document)

	var combined []string
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		t := textOf(a)
		if len(t) < 3 || len(t) > 60 {
			return
		}
		if containsAny(strings.ToLower(t), navWords) {
			return
		}
		combined = append(combined, t)
	})
	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		t := textOf(li)
		if len(t) >= 3 && len(t) <= 80 {
			combined = append(combined, t)
		}
	})

	var programs []string
	for _, t := range combined {
		if containsAny(strings.ToLower(t), disciplineKeywords) {
			programs = append(programs, t)
		}
	}
	uniq := dedupe(programs, maxPrograms)

	return ProgramsData{
		Programs:      uniq,
		CountEstimate: len(uniq),
		Note:          programsNote,
	}
}
