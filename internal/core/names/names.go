// Package names provides deterministic normalization for user-supplied
// herd names and animal identifiers
// Pipeline order for names
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFC normalization
// 3 Remove zero-width and format chars
// 4 Collapse whitespace to single spaces and trim
// Tags additionally width fold and upper case so ear-tag scans compare stably
package names

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains for display names
var nameChainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
		)
	},
}

// pool of transformer chains for machine tags
var tagChainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold, // map fullwidth forms to ASCII
		)
	},
}

// Name normalizes a display name following the pipeline described above
// casing is preserved so "Spring Lambs" stays readable
func Name(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := nameChainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	nameChainPool.Put(tr)

	return collapseSpaces(ns)
}

// Tag normalizes a machine identifier such as an ear tag or animal id
// fullwidth digits fold to ASCII and the result is upper-cased
func Tag(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := tagChainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	tagChainPool.Put(tr)

	ns = collapseSpaces(ns)
	return strings.ToUpper(ns)
}

// Valid reports whether a normalized name is usable: non-empty and within max runes
func Valid(s string, max int) bool {
	if s == "" {
		return false
	}
	n := 0
	for range s {
		n++
		if n > max {
			return false
		}
	}
	return true
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims the edges
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
