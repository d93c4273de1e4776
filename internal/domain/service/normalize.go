package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransform strips combining marks after canonical decomposition.
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeLabel canonicalizes a fee label for rule matching: lowercase,
// diacritics removed, punctuation dropped, whitespace collapsed to single
// spaces.
func NormalizeLabel(s string) string {
	folded, _, err := transform.String(foldTransform, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		} else {
			pendingSpace = true
		}
	}
	return b.String()
}

// foldedText is a case- and diacritic-folded shadow copy of a contract body.
// offsets maps every folded byte back to the byte offset of the original rune
// that produced it, with one sentinel entry equal to len(original) at the
// end, so matches found in the folded text can cite verbatim original spans.
type foldedText struct {
	text    string
	offsets []int
}

// foldText builds the folded copy. Each rune is lowercased, canonically
// decomposed, and its combining marks dropped.
func foldText(s string) foldedText {
	var b strings.Builder
	b.Grow(len(s))
	offsets := make([]int, 0, len(s)+1)

	for i, r := range s {
		for _, fr := range norm.NFD.String(string(unicode.ToLower(r))) {
			if unicode.Is(unicode.Mn, fr) {
				continue
			}
			n := utf8.RuneLen(fr)
			b.WriteRune(fr)
			for j := 0; j < n; j++ {
				offsets = append(offsets, i)
			}
		}
	}
	offsets = append(offsets, len(s))

	return foldedText{text: b.String(), offsets: offsets}
}

// origStart returns the original byte offset for a folded match start.
func (f foldedText) origStart(foldedIndex int) int {
	return f.offsets[foldedIndex]
}

// origEnd returns the exclusive original byte offset for a folded match end.
func (f foldedText) origEnd(foldedIndex int) int {
	if foldedIndex >= len(f.offsets) {
		return f.offsets[len(f.offsets)-1]
	}
	return f.offsets[foldedIndex]
}
