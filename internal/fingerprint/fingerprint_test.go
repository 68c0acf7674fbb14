package fingerprint

import (
	"strings"
	"testing"
)

func TestHash_IgnoresScriptBlocks(t *testing.T) {
	with := `<html><script>x()</script><body>  Tuition $60,000  Fees $2,000 </body></html>`
	without := `<html><body>  Tuition $60,000  Fees $2,000 </body></html>`

	if Hash(with) != Hash(without) {
		t.Errorf("expected identical hashes with and without script block")
	}
}

func TestHash_IgnoresStyleBlocks(t *testing.T) {
	with := `<html><style type="text/css">body { color: red; }</style><body>Welcome</body></html>`
	without := `<html><body>Welcome</body></html>`

	if Hash(with) != Hash(without) {
		t.Errorf("expected identical hashes with and without style block")
	}
}

func TestHash_IgnoresWhitespaceEdits(t *testing.T) {
	a := "<body>Application   deadline:\n\tNov 1</body>"
	b := "<body>Application deadline: Nov 1</body>"

	if Hash(a) != Hash(b) {
		t.Errorf("expected whitespace-only edits to hash identically")
	}
}

func TestHash_DetectsVisibleTextChange(t *testing.T) {
	a := "<body>Tuition $60,000</body>"
	b := "<body>Tuition $61,000</body>"

	if Hash(a) == Hash(b) {
		t.Errorf("expected different hashes for different visible text")
	}
}

func TestHash_StableAcrossCalls(t *testing.T) {
	doc := "<html><body>Some content</body></html>"
	if Hash(doc) != Hash(doc) {
		t.Errorf("expected hash to be deterministic")
	}
	if len(Hash(doc)) != 64 {
		t.Errorf("expected 64-char hex digest, got %d chars", len(Hash(doc)))
	}
}

func TestNormalize(t *testing.T) {
	doc := "<html>\n<SCRIPT>var x = 1;\nvar y = 2;</SCRIPT>\n<body>  a  b </body></html>"
	got := Normalize(doc)
	want := "<html> <body> a b </body></html>"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
	if strings.Contains(got, "var x") {
		t.Errorf("expected script contents to be stripped")
	}
}

func TestNormalize_MultilineStyle(t *testing.T) {
	doc := "<style>\n.a { color: red; }\n.b { color: blue; }\n</style>text"
	if got := Normalize(doc); got != "text" {
		t.Errorf("Normalize = %q, want %q", got, "text")
	}
}
