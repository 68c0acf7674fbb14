package registry

import (
	"os"
	"path/filepath"
	"testing"

	"ivywatch/internal/model"
)

func TestDefault_CoversEveryPageType(t *testing.T) {
	sources := Default()

	if len(sources) == 0 {
		t.Fatalf("expected a non-empty default registry")
	}

	byUniversity := make(map[string]map[model.PageType]bool)
	for _, s := range sources {
		if !s.PageType.Valid() {
			t.Errorf("invalid page type %q for %s", s.PageType, s.University)
		}
		if s.URL == "" {
			t.Errorf("empty URL for %s/%s", s.University, s.PageType)
		}
		if byUniversity[s.University] == nil {
			byUniversity[s.University] = make(map[model.PageType]bool)
		}
		byUniversity[s.University][s.PageType] = true
	}

	if len(byUniversity) != 8 {
		t.Errorf("expected 8 universities, got %d", len(byUniversity))
	}
	for name, pts := range byUniversity {
		if len(pts) != len(model.PageTypes) {
			t.Errorf("%s covers %d page types, want %d", name, len(pts), len(model.PageTypes))
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	data := `- university: Stanford
  page_type: fees
  url: https://admission.stanford.edu/afford/
- university: MIT
  page_type: deadlines
  url: https://mitadmissions.org/apply/deadlines/
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	sources, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].University != "Stanford" || sources[0].PageType != model.PageFees {
		t.Errorf("unexpected first source: %+v", sources[0])
	}
	if sources[1].PageType != model.PageDeadlines {
		t.Errorf("unexpected second source: %+v", sources[1])
	}
}

func TestLoadFile_RejectsBadPageType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	data := `- university: Stanford
  page_type: tuition
  url: https://example.edu/
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Errorf("expected an error for unknown page type")
	}
}

func TestLoadFile_RejectsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	data := `- university: ""
  page_type: fees
  url: https://example.edu/
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Errorf("expected an error for a missing university name")
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestUniversities_FirstSeenOrder(t *testing.T) {
	sources := []model.Source{
		{University: "Yale", PageType: model.PageFees, URL: "a"},
		{University: "Brown", PageType: model.PageFees, URL: "b"},
		{University: "Yale", PageType: model.PageAbout, URL: "c"},
	}

	got := Universities(sources)

	want := []string{"Yale", "Brown"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestForUniversity_CaseInsensitive(t *testing.T) {
	sources := Default()

	got := ForUniversity(sources, "harvard")

	if len(got) != len(model.PageTypes) {
		t.Fatalf("expected %d sources for harvard, got %d", len(model.PageTypes), len(got))
	}
	for _, s := range got {
		if s.University != "Harvard" {
			t.Errorf("unexpected university %q", s.University)
		}
	}

	if len(ForUniversity(sources, "Hogwarts")) != 0 {
		t.Errorf("expected no sources for an unknown university")
	}
}
