// Package authorship compares authorships of scientific names. Authors are
// folded to ASCII and compared leniently because abbreviations of the same
// author vary a lot between data sources.
package authorship

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/gnames/gnparser/ent/parsed"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Authorship is a team of authors with an optional year.
type Authorship struct {
	Authors []string
	Year    string
}

// IsEmpty is true when neither authors nor year are given.
func (a Authorship) IsEmpty() bool {
	return len(a.Authors) == 0 && a.Year == ""
}

// Name keeps combination and basionym authorships of a name.
type Name struct {
	Combination Authorship
	Basionym    Authorship
}

// IsEmpty is true when the name has no authorship at all.
func (n Name) IsEmpty() bool {
	return n.Combination.IsEmpty() && n.Basionym.IsEmpty()
}

// FromParsed converts gnparser authorship. The parser keeps a sole
// authorship without parentheses in its "original" group, here it becomes
// the combination authorship.
func FromParsed(p parsed.Parsed) Name {
	var res Name
	au := p.Authorship
	if au == nil {
		return res
	}
	bracketed := strings.HasPrefix(strings.TrimSpace(au.Verbatim), "(")
	orig := fromGroup(au.Original)
	switch {
	case au.Combination != nil:
		res.Basionym = orig
		res.Combination = fromGroup(au.Combination)
	case bracketed:
		res.Basionym = orig
	default:
		res.Combination = orig
	}
	return res
}

func fromGroup(g *parsed.AuthGroup) Authorship {
	var res Authorship
	if g == nil {
		return res
	}
	res.Authors = g.Authors
	if g.Year != nil {
		res.Year = g.Year.Value
	}
	return res
}

var (
	filiusRe     = regexp.MustCompile(`([A-Z][a-z]*)[. ]\s*f(?:il)?\.?\b`)
	translitRe   = regexp.MustCompile(`(?i)([auo])e`)
	punctRe      = regexp.MustCompile(`[^\p{L}\p{N}\s,]+`)
	authorRe     = regexp.MustCompile(`^((?:[a-z]\s)*).*?([a-z]+)( (?:filius|fil|fl|f|bis|ter)\.?)?$`)
	yearRe       = regexp.MustCompile(`\d{4}`)
	asciiFolding = transform.Chain(
		norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC,
	)
	ligatures = strings.NewReplacer(
		"ß", "ss", "æ", "ae", "Æ", "Ae", "œ", "oe", "Œ", "Oe", "ø", "o",
		"Ø", "O", "ł", "l", "Ł", "L", "đ", "d", "Đ", "D",
	)
)

// Normalize converts a single author string into lower case ASCII without
// punctuation except commas. Transliterated umlauts ("ae", "oe", "ue") are
// reduced to a single letter and filius suffixes are unified. Blank input
// returns an empty string.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = filiusRe.ReplaceAllString(s, "$1 filius")
	s = ligatures.Replace(s)
	if folded, _, err := transform.String(asciiFolding, s); err == nil {
		s = folded
	}
	s = translitRe.ReplaceAllString(s, "$1")
	s = punctRe.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

// NormalizeTeam normalizes every author of a team dropping "et al."
// entries.
func NormalizeTeam(a Authorship) []string {
	res := make([]string, 0, len(a.Authors))
	for _, v := range a.Authors {
		v = Normalize(v)
		if v != "" && v != "al" && v != "et al" {
			res = append(res, v)
		}
	}
	return res
}

// Author is a normalized author split into initials, surname and an
// optional suffix such as "filius".
type Author struct {
	Fullname string
	Initials string
	Surname  string
	Suffix   string
}

// NewAuthor splits a normalized author string.
func NewAuthor(s string) Author {
	res := Author{Fullname: s}
	m := authorRe.FindStringSubmatch(s)
	if m == nil {
		res.Surname = strings.TrimSpace(s)
		return res
	}
	res.Initials = strings.TrimSpace(m[1])
	res.Surname = strings.TrimSpace(m[2])
	res.Suffix = strings.TrimSpace(m[3])
	if strings.HasPrefix(res.Suffix, "f") {
		res.Suffix = "filius"
	}
	return res
}

// InitialsOrSuffixDiffer is true when both authors have conflicting
// initials or different suffixes.
func (a Author) InitialsOrSuffixDiffer(o Author) bool {
	return a.initialsDiffer(o) || a.Suffix != o.Suffix
}

func (a Author) initialsDiffer(o Author) bool {
	if a.Initials == "" || o.Initials == "" {
		return false
	}
	if a.Initials == o.Initials {
		return false
	}
	small := strings.ReplaceAll(a.Initials, " ", "")
	large := strings.ReplaceAll(o.Initials, " ", "")
	if len(small) > len(large) {
		small, large = large, small
	}
	return !isSubCollection(small, large)
}

// isSubCollection checks that every character of small occurs in large at
// least as many times.
func isSubCollection(small, large string) bool {
	counts := make(map[rune]int)
	for _, r := range large {
		counts[r]++
	}
	for _, r := range small {
		counts[r]--
		if counts[r] < 0 {
			return false
		}
	}
	return true
}

func parseYear(s string) (int, bool) {
	y := yearRe.FindString(s)
	if y == "" {
		return 0, false
	}
	res, err := strconv.Atoi(y)
	return res, err == nil
}
