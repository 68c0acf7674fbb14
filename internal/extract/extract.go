// Package extract turns raw university page markup into structured records.
// Every extractor is a pure, total function of the document text: malformed
// or empty markup yields empty collections and nil fields, never an error.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"ivywatch/internal/model"
)

// ForPageType dispatches to the extractor for the given page type. Unknown
// types fall back to a truncated plain-text preview.
func ForPageType(pt model.PageType, document string) any {
	switch pt {
	case model.PageFees:
		return Fees(document)
	case model.PageAdmissions:
		return Admissions(document)
	case model.PageDeadlines:
		return Deadlines(document)
	case model.PagePrograms:
		return Programs(document)
	case model.PageAid:
		return Aid(document)
	case model.PageAbout:
		return About(document)
	default:
		return Fallback(document)
	}
}

// FallbackData is the record for page types without a dedicated extractor.
type FallbackData struct {
	TextPreview string `json:"text_preview"`
}

const previewRunes = 2000

// Fallback returns a plain-text preview of the page.
func Fallback(document string) FallbackData {
	text := clean(visibleText(parse(document)))
	runes := []rune(text)
	if len(runes) > previewRunes {
		text = string(runes[:previewRunes])
	}
	return FallbackData{TextPreview: text}
}

var spaceRe = regexp.MustCompile(`\s+`)

// clean collapses whitespace runs and trims.
func clean(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// parse builds a document tree. html.Parse accepts arbitrary input, so a
// failure here only happens on reader errors, which strings.Reader cannot
// produce; extractors treat a nil document as an empty page.
func parse(document string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		empty, _ := goquery.NewDocumentFromReader(strings.NewReader(""))
		return empty
	}
	return doc
}

// textOf joins the visible text nodes under the selection with single
// spaces, skipping script/style/noscript/iframe subtrees.
func textOf(s *goquery.Selection) string {
	var buf strings.Builder
	for _, n := range s.Nodes {
		walkText(n, func(t string) {
			if t = strings.TrimSpace(t); t != "" {
				buf.WriteString(t)
				buf.WriteString(" ")
			}
		})
	}
	return clean(buf.String())
}

// visibleText returns the whole document's visible text, space-joined.
func visibleText(doc *goquery.Document) string {
	return textOf(doc.Selection)
}

// textLines returns the document's visible text split into trimmed,
// non-empty lines, one candidate line per text-node line.
func textLines(doc *goquery.Document) []string {
	var lines []string
	for _, n := range doc.Selection.Nodes {
		walkText(n, func(t string) {
			for _, l := range strings.Split(t, "\n") {
				if l = clean(l); l != "" {
					lines = append(lines, l)
				}
			}
		})
	}
	return lines
}

func walkText(n *html.Node, emit func(string)) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "iframe":
			return
		}
	}
	if n.Type == html.TextNode {
		emit(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkText(c, emit)
	}
}

// dedupe removes duplicates preserving first-seen order, capped at limit.
func dedupe(items []string, limit int) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// containsAny reports whether the lowercased text contains any keyword.
func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
