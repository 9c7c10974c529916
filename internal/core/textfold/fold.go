// Package textfold folds free text into a comparable search key
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 NFD decomposition and removal of combining marks (accents)
// 3 NFKC recomposition
// 4 Unicode case folding
// 5 Width fold fullwidth forms to ASCII
// 6 Collapse whitespace to single spaces and trim
package textfold

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// transformer chains are stateful, pool them
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			norm.NFKC,
			cases.Fold(),
			width.Fold,
		)
	},
}

// Fold returns the search key for s
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		out = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(out), " ")
}

// Matcher tests folded haystacks against one folded needle
type Matcher struct{ needle string }

// NewMatcher folds q once; an empty query matches everything
func NewMatcher(q string) Matcher { return Matcher{needle: Fold(q)} }

// Empty reports whether the query folded to nothing
func (m Matcher) Empty() bool { return m.needle == "" }

// Match reports whether any field contains the query
func (m Matcher) Match(fields ...string) bool {
	if m.needle == "" {
		return true
	}
	for _, f := range fields {
		if f != "" && strings.Contains(Fold(f), m.needle) {
			return true
		}
	}
	return false
}
