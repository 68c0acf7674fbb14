package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FeesSummary maps cost categories to the first dollar amount found near
// their label in the page text. Missing categories stay nil.
type FeesSummary struct {
	Tuition  *string `json:"tuition"`
	Fees     *string `json:"fees"`
	Housing  *string `json:"housing"`
	Food     *string `json:"food"`
	Books    *string `json:"books"`
	Travel   *string `json:"travel"`
	Personal *string `json:"personal"`
}

// FeesData is the extraction record for fees pages. Tables keep their row
// and cell structure for display. EstimatedTotalMaybe is a naive sum of the
// resolved categories and is only reported when at least three resolved; it
// is a rough hint, not an official figure.
type FeesData struct {
	Summary             FeesSummary  `json:"summary"`
	EstimatedTotalMaybe *string      `json:"estimated_total_maybe"`
	Tables              [][][]string `json:"tables"`
	Note                string       `json:"note"`
}

const (
	maxFeeTables    = 3
	maxFeeTableRows = 25
	feesNote        = "Fees extracted from official page text/tables; values can vary by year/program. Verify on the official page."
)

var (
	tuitionRe  = moneyRe("tuition")
	feesRe     = moneyRe("fees")
	housingRe  = moneyRe("housing|room")
	foodRe     = moneyRe("food|board|meal")
	booksRe    = moneyRe("books")
	travelRe   = moneyRe("travel|transportation")
	personalRe = moneyRe("personal")
)

// moneyRe matches a labeled keyword followed by a dollar amount within the
// same local text window (no intervening dollar sign).
func moneyRe(labels string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:` + labels + `)[^$]*\$\s*([0-9][0-9,]*)`)
}

// Fees extracts structured cost data from a fees page.
func Fees(document string) FeesData {
	doc := parse(document)
	text := visibleText(doc)

	summary := FeesSummary{
		Tuition:  findMoney(tuitionRe, text),
		Fees:     findMoney(feesRe, text),
		Housing:  findMoney(housingRe, text),
		Food:     findMoney(foodRe, text),
		Books:    findMoney(booksRe, text),
		Travel:   findMoney(travelRe, text),
		Personal: findMoney(personalRe, text),
	}

	var amounts []int
	for _, v := range []*string{
		summary.Tuition, summary.Fees, summary.Housing, summary.Food,
		summary.Books, summary.Travel, summary.Personal,
	} {
		if v == nil {
			continue
		}
		if n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimPrefix(*v, "$"), ",", "")); err == nil {
			amounts = append(amounts, n)
		}
	}

	var total *string
	if len(amounts) >= 3 {
		sum := 0
		for _, n := range amounts {
			sum += n
		}
		t := "$" + groupThousands(sum)
		total = &t
	}

	return FeesData{
		Summary:             summary,
		EstimatedTotalMaybe: total,
		Tables:              extractTables(doc, maxFeeTables, maxFeeTableRows),
		Note:                feesNote,
	}
}

func findMoney(re *regexp.Regexp, text string) *string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v := "$" + m[1]
	return &v
}

// extractTables returns up to maxTables tables as row-of-cells matrices,
// dropping empty cells and empty rows.
func extractTables(doc *goquery.Document, maxTables, maxRows int) [][][]string {
	tables := [][][]string{}
	doc.Find("table").EachWithBreak(func(i int, t *goquery.Selection) bool {
		if i >= maxTables {
			return false
		}
		var rows [][]string
		t.Find("tr").EachWithBreak(func(j int, tr *goquery.Selection) bool {
			if j >= maxRows {
				return false
			}
			var row []string
			tr.Find("th, td").Each(func(_ int, c *goquery.Selection) {
				if txt := textOf(c); txt != "" {
					row = append(row, txt)
				}
			})
			if len(row) > 0 {
				rows = append(rows, row)
			}
			return true
		})
		if len(rows) > 0 {
			tables = append(tables, rows)
		}
		return true
	})
	return tables
}

// groupThousands renders 61234 as "61,234".
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
