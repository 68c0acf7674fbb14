package extract

import (
	"strings"
	"testing"
)

const substantivePara = "Our financial aid program meets one hundred percent of demonstrated need for every admitted student, domestic and international alike."

func TestAid_KeepsSubstantiveParagraphs(t *testing.T) {
	doc := `<html><body>
	<p>Menu</p>
	<p>` + substantivePara + `</p>
	<p>` + strings.Repeat("very long paragraph ", 30) + `</p>
	</body></html>`

	got := Aid(doc)

	if len(got.Summary) != 1 {
		t.Fatalf("expected 1 paragraph, got %d: %v", len(got.Summary), got.Summary)
	}
	if got.Summary[0] != substantivePara {
		t.Errorf("unexpected paragraph: %q", got.Summary[0])
	}
	if got.Note == "" {
		t.Errorf("expected a provenance note")
	}
}

func TestAid_CapsParagraphCount(t *testing.T) {
	var b strings.Builder
	b.WriteString("<body>")
	for i := 0; i < 10; i++ {
		b.WriteString("<p>")
		b.WriteString(substantivePara)
		b.WriteString("</p>")
	}
	b.WriteString("</body>")

	got := Aid(b.String())

	if len(got.Summary) != maxSummaryParagraphs {
		t.Errorf("expected %d paragraphs kept, got %d", maxSummaryParagraphs, len(got.Summary))
	}
}

func TestAbout_UsesSameWindow(t *testing.T) {
	doc := "<body><p>" + substantivePara + "</p><p>Short blurb.</p></body>"

	got := About(doc)

	if len(got.Overview) != 1 || got.Overview[0] != substantivePara {
		t.Errorf("unexpected overview: %v", got.Overview)
	}
	if got.Note == aidNote {
		t.Errorf("about pages must carry their own note")
	}
}

func TestAid_Empty(t *testing.T) {
	got := Aid("")

	if len(got.Summary) != 0 {
		t.Errorf("expected no paragraphs for empty input, got %v", got.Summary)
	}
}
