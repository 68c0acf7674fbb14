package extract

import (
	"strconv"
	"strings"
	"testing"
)

func TestPrograms_FromAnchorsAndBullets(t *testing.T) {
	doc := `<html><body>
	<nav><a href="/apply">Apply Now</a><a href="/search">Search</a></nav>
	<a href="/majors/cs">Computer Science</a>
	<a href="/majors/econ">Economics</a>
	<ul>
		<li>African American Studies</li>
		<li>Mechanical Engineering</li>
		<li>FAQ</li>
	</ul>
	</body></html>`

	got := Programs(doc)

	want := []string{
		"Computer Science",
		"Economics",
		"African American Studies",
		"Mechanical Engineering",
	}
	if len(got.Programs) != len(want) {
		t.Fatalf("expected %d programs, got %d: %v", len(want), len(got.Programs), got.Programs)
	}
	for i := range want {
		if got.Programs[i] != want[i] {
			t.Errorf("program %d: got %q, want %q", i, got.Programs[i], want[i])
		}
	}
	if got.CountEstimate != len(want) {
		t.Errorf("count estimate %d does not match program count %d", got.CountEstimate, len(want))
	}
}

func TestPrograms_FiltersNavLinks(t *testing.T) {
	doc := `<body>
	<a href="/a">Admission Science Office</a>
	<a href="/b">History</a>
	</body>`

	got := Programs(doc)

	if len(got.Programs) != 1 || got.Programs[0] != "History" {
		t.Errorf("expected nav-word links dropped, got %v", got.Programs)
	}
}

func TestPrograms_DedupesAnchorAndBullet(t *testing.T) {
	doc := `<body>
	<a href="/bio">Biology</a>
	<ul><li>Biology</li></ul>
	</body>`

	got := Programs(doc)

	if len(got.Programs) != 1 {
		t.Errorf("expected duplicate program collapsed, got %v", got.Programs)
	}
}

func TestPrograms_Cap(t *testing.T) {
	var b strings.Builder
	b.WriteString("<body><ul>")
	for i := 0; i < maxPrograms+30; i++ {
		b.WriteString("<li>Science track ")
		b.WriteString(strconv.Itoa(i))
		b.WriteString("</li>")
	}
	b.WriteString("</ul></body>")

	got := Programs(b.String())

	if len(got.Programs) != maxPrograms {
		t.Errorf("expected list capped at %d programs, got %d", maxPrograms, len(got.Programs))
	}
	if got.CountEstimate != len(got.Programs) {
		t.Errorf("count estimate must track the kept list")
	}
}

func TestPrograms_Empty(t *testing.T) {
	got := Programs("")

	if len(got.Programs) != 0 || got.CountEstimate != 0 {
		t.Errorf("expected empty record for empty input, got %v", got)
	}
	if got.Note == "" {
		t.Errorf("expected a provenance note")
	}
}
