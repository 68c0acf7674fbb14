package extract

import (
	"regexp"
	"strings"
)

// DeadlineBuckets is a coarse early/regular hint inferred from keyword and
// month co-occurrence anywhere on the page. It is a low-confidence heuristic,
// not a parsed date.
type DeadlineBuckets struct {
	Early   *string `json:"early"`
	Regular *string `json:"regular"`
}

// DeadlinesData is the extraction record for deadlines pages.
type DeadlinesData struct {
	Highlights []string        `json:"highlights"`
	DateLines  []string        `json:"date_lines"`
	Inferred   DeadlineBuckets `json:"inferred"`
	Note       string          `json:"note"`
}

const (
	maxDeadlineLines = 25
	deadlinesNote    = "Deadlines extracted from lines containing date/deadline keywords. Confirm on official page."
)

// dateLineRe recognizes "Nov 1", "January 2" style month+day mentions.
var dateLineRe = regexp.MustCompile(`(?i)(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\s+(\d{1,2})\b`)

var deadlineKeywords = []string{
	"deadline", "early", "regular", "decision", "single-choice",
	"financial aid", "questbridge", "due",
}

var monthAbbrevs = []string{
	"nov", "jan", "feb", "mar", "apr", "may",
	"dec", "oct", "sep", "aug", "jul", "jun",
}

// Deadlines extracts deadline highlights and date-bearing lines.
func Deadlines(document string) DeadlinesData {
	lines := textLines(parse(document))

	var candidates []string
	for _, l := range lines {
		low := strings.ToLower(l)
		if !containsAny(low, deadlineKeywords) {
			continue
		}
		if len(l) < 10 || len(l) > 240 {
			continue
		}
		// prefer lines with dates
		if dateLineRe.MatchString(l) || containsAny(low, monthAbbrevs) {
			candidates = append(candidates, l)
		}
	}

	var dateSnips []string
	for _, l := range lines {
		if dateLineRe.MatchString(l) && len(l) >= 10 && len(l) <= 200 {
			dateSnips = append(dateSnips, l)
		}
	}

	var buckets DeadlineBuckets
	joined := strings.ToLower(strings.Join(lines, " | "))
	if strings.Contains(joined, "nov") && strings.Contains(joined, "early") {
		hint := "Likely around Nov (check official page)"
		buckets.Early = &hint
	}
	if strings.Contains(joined, "jan") && strings.Contains(joined, "regular") {
		hint := "Likely around Jan (check official page)"
		buckets.Regular = &hint
	}

	return DeadlinesData{
		Highlights: dedupe(candidates, maxDeadlineLines),
		DateLines:  dedupe(dateSnips, maxDeadlineLines),
		Inferred:   buckets,
		Note:       deadlinesNote,
	}
}
