// Package template locates template files and extracts translatable spans
// from them. Two span syntaxes exist: ${...} markers in any text file, and a
// configurable translation element (default x-trans) in HTML files. &{...}
// marks a literal: text that is emitted verbatim and must survive translation
// untouched.
package template

import (
	"crypto/sha3"
	"encoding/hex"
	"regexp"
	"sort"
	"strings"
)

// Marker matches both translatable (${...}) and literal (&{...}) spans.
// The inner group is non-greedy, so markers cannot nest.
var Marker = regexp.MustCompile(`[&$]\{(?P<inner>.*?)\}`)

// Translation is one translatable span and its translated value.
type Translation struct {
	Key        string
	Original   string
	Translated string
	Comments   []string
	Classes    []string
	Literals   []string
}

// KeyFor derives the stable catalog key for a span: the SHA3-224 digest of
// the original text, with sorted class names appended so the same text styled
// differently gets distinct entries.
func KeyFor(original string, classes []string) string {
	sum := sha3.Sum224([]byte(original))
	key := hex.EncodeToString(sum[:])
	if len(classes) > 0 {
		sorted := append([]string(nil), classes...)
		sort.Strings(sorted)
		key += "_" + strings.Join(sorted, "_")
	}
	return key
}

// New builds a Translation for a freshly extracted span. The translated value
// starts empty; literals embedded in the original are recorded so they can be
// verified after translation.
func New(original string, classes, comments []string) Translation {
	sortedClasses := append([]string(nil), classes...)
	sort.Strings(sortedClasses)

	literalSet := map[string]bool{}
	for _, m := range Marker.FindAllStringSubmatch(original, -1) {
		literalSet[m[1]] = true
	}
	literals := make([]string, 0, len(literalSet))
	for l := range literalSet {
		literals = append(literals, l)
	}
	sort.Strings(literals)

	return Translation{
		Key:      KeyFor(original, sortedClasses),
		Original: original,
		Comments: append([]string(nil), comments...),
		Classes:  sortedClasses,
		Literals: literals,
	}
}

// UnwrapMarkers strips marker syntax from text, leaving the inner content.
// Used on translated values (&{...} literals carried through translation) and
// on default-language output.
func UnwrapMarkers(text string) string {
	return Marker.ReplaceAllString(text, "${inner}")
}
