// Package fingerprint reduces a fetched document to a stable content hash.
// Two documents that differ only in script/style blocks or whitespace hash
// identically, so volatile markup noise never registers as a content change.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var (
	scriptRe = regexp.MustCompile(`(?is)<script.*?>.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style.*?>.*?</style>`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// Normalize strips script and style blocks and collapses all whitespace runs
// to single spaces.
func Normalize(document string) string {
	s := scriptRe.ReplaceAllString(document, "")
	s = styleRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Hash returns the lowercase hex SHA-256 of the normalized document.
func Hash(document string) string {
	sum := sha256.Sum256([]byte(Normalize(document)))
	return hex.EncodeToString(sum[:])
}
