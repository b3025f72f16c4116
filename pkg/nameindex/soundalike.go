package nameindex

import (
	"strings"

	"github.com/gnames/gnparser/ent/stemmer"
)

var (
	phoneticPairs = strings.NewReplacer(
		"ae", "e", "oe", "e", "ph", "f", "rh", "r", "th", "t", "ch", "k",
		"cs", "x", "ks", "x", "sc", "s", "ck", "k", "kh", "k", "dj", "j",
	)
	phoneticLetters = strings.NewReplacer(
		"y", "i", "j", "i", "k", "c", "z", "s", "w", "u", "v", "u", "q", "c",
	)
)

// Soundalike folds a normalized canonical name so that common orthographic
// variants of Latin names map to the same key: diphthongs and Greek
// digraphs are simplified, similar sounding letters are merged, doubled
// letters collapsed and epithets stemmed with the gnparser stemmer.
func Soundalike(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if i > 0 {
			w = stemmer.Stem(w).Stem
		}
		w = phoneticPairs.Replace(w)
		rs := []rune(w)
		if len(rs) == 0 {
			continue
		}
		rest := phoneticLetters.Replace(string(rs[1:]))
		words[i] = collapseDoubles(string(rs[0]) + rest)
	}
	return strings.Join(words, " ")
}

func collapseDoubles(s string) string {
	var sb strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && r == prev {
			continue
		}
		sb.WriteRune(r)
		prev = r
	}
	return sb.String()
}
