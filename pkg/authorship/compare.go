package authorship

import (
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Equality is a three-valued comparison result.
type Equality int

const (
	Unknown Equality = iota
	Equal
	Different
)

func (e Equality) String() string {
	switch e {
	case Equal:
		return "EQUAL"
	case Different:
		return "DIFFERENT"
	}
	return "UNKNOWN"
}

// And combines two results: any difference wins, unknown parts are
// ignored.
func (e Equality) And(o Equality) Equality {
	switch {
	case e == Different || o == Different:
		return Different
	case e == Equal || o == Equal:
		return Equal
	}
	return Unknown
}

const (
	minCommonSubstring       = 4
	minAuthorLengthNoLookup  = 4
	defaultYearTolerance     = 2
	combinationYearTolerance = 1
)

// Comparator compares authorships. An optional map expands abbreviated
// authors (e.g. "l" to "linnaeus") before comparison.
type Comparator struct {
	authors map[string]string
}

// NewComparator creates a comparator. Keys and values of the abbreviation
// map are normalized.
func NewComparator(abbr map[string]string) *Comparator {
	res := &Comparator{authors: make(map[string]string, len(abbr))}
	for k, v := range abbr {
		k, v = Normalize(k), Normalize(v)
		if k != "" && v != "" {
			res.authors[k] = v
		}
	}
	return res
}

// Compare compares the year first and the author teams afterwards. Both
// have to agree for an Equal result; the years may differ by one.
func (c *Comparator) Compare(a1, a2 Authorship) Equality {
	res := compareYears(a1.Year, a2.Year, combinationYearTolerance)
	if res == Different {
		return res
	}
	return res.And(c.compareTeams(a1, a2, minAuthorLengthNoLookup))
}

// CompareAuthorsFirst compares author teams first. When they do not match,
// a known year decides, but a matching year only counts if both teams share
// at least one capital letter.
func (c *Comparator) CompareAuthorsFirst(a1, a2 Authorship) Equality {
	res := c.compareTeams(a1, a2, minAuthorLengthNoLookup)
	if res == Equal {
		return res
	}
	yres := compareYears(a1.Year, a2.Year, defaultYearTolerance)
	if yres == Unknown {
		return res
	}
	if yres == Different || len(a1.Authors) == 0 || len(a2.Authors) == 0 {
		return yres
	}
	if shareCapitals(a1.Authors, a2.Authors) {
		return yres
	}
	return res
}

// CompareNames compares combination authorships and falls back to
// basionym authorships when the former are unknown. Missing brackets are
// tolerated: if both comparisons are unknown, authorships are compared
// across brackets and only a positive result is kept.
func (c *Comparator) CompareNames(n1, n2 Name) Equality {
	recomb := c.Compare(n1.Combination, n2.Combination)
	if recomb != Unknown {
		return recomb
	}
	orig := c.Compare(n1.Basionym, n2.Basionym)
	if orig == Unknown {
		across := Unknown
		if n1.Combination.IsEmpty() {
			across = c.Compare(n1.Basionym, n2.Combination)
		} else if n1.Basionym.IsEmpty() {
			across = c.Compare(n1.Combination, n2.Basionym)
		}
		if across == Equal {
			return Equal
		}
		return Unknown
	}
	return recomb.And(orig)
}

func (c *Comparator) lookup(a string) string {
	if v, ok := c.authors[a]; ok {
		return v
	}
	return a
}

func (c *Comparator) lookupTeam(team []string, maxLen int) []string {
	res := make([]string, len(team))
	for i, v := range team {
		if maxLen <= 0 || len(v) < maxLen {
			res[i] = c.lookup(v)
		} else {
			res[i] = v
		}
	}
	return res
}

func (c *Comparator) compareTeams(a1, a2 Authorship, maxLen int) Equality {
	t1 := c.lookupTeam(NormalizeTeam(a1), maxLen)
	t2 := c.lookupTeam(NormalizeTeam(a2), maxLen)
	if len(t1) == 0 || len(t2) == 0 {
		return Unknown
	}
	res := compareNormalizedTeams(t1, t2)
	if res == Equal {
		return res
	}
	l1 := c.lookupTeam(t1, 0)
	l2 := c.lookupTeam(t2, 0)
	if !slices.Equal(t1, l1) || !slices.Equal(t2, l2) {
		res = compareNormalizedTeams(l1, l2)
	}
	return res
}

// compareNormalizedTeams is positive if any pair of authors matches.
func compareNormalizedTeams(t1, t2 []string) Equality {
	if slices.Equal(t1, t2) {
		return Equal
	}
	for _, v1 := range t1 {
		a1 := NewAuthor(v1)
		for _, v2 := range t2 {
			if compareAuthors(a1, NewAuthor(v2)) == Equal {
				return Equal
			}
		}
	}
	return Different
}

func compareAuthors(a1, a2 Author) Equality {
	if a1.Fullname == a2.Fullname {
		return Equal
	}

	common := commonPrefix(a1.Surname, a2.Surname)
	switch {
	case a1.Surname == a2.Surname || jaro(a1.Surname, a2.Surname) > 90 ||
		len(common) >= minCommonSubstring:
		if a1.InitialsOrSuffixDiffer(a2) {
			return Different
		}
		return Equal
	case !a1.InitialsOrSuffixDiffer(a2) &&
		(a1.Surname == common && strings.HasPrefix(a2.Surname, common) ||
			a2.Surname == common && strings.HasPrefix(a1.Surname, common)):
		return Equal
	case a1.Fullname == common && strings.HasPrefix(a2.Surname, common) ||
		a2.Fullname == common && strings.HasPrefix(a1.Surname, common):
		return Equal
	case len(strings.ReplaceAll(commonPrefix(a1.Fullname, a2.Fullname), " ", "")) >
		minCommonSubstring:
		return Equal
	}
	return Different
}

// jaro returns Jaro-Winkler similarity in percent with a penalty for very
// short names.
func jaro(s1, s2 string) float64 {
	sim := float64(edlib.JaroWinklerSimilarity(s1, s2)) * 100
	if l := len(s1) + len(s2); l < 10 {
		sim -= float64(10-l) * 5
	}
	return sim
}

func commonPrefix(s1, s2 string) string {
	n := min(len(s1), len(s2))
	i := 0
	for i < n && s1[i] == s2[i] {
		i++
	}
	return s1[:i]
}

func compareYears(y1, y2 string, tolerance int) Equality {
	i1, ok1 := parseYear(y1)
	i2, ok2 := parseYear(y2)
	if !ok1 || !ok2 {
		return Unknown
	}
	d := i1 - i2
	if d < 0 {
		d = -d
	}
	if d <= tolerance {
		return Equal
	}
	return Different
}

func shareCapitals(t1, t2 []string) bool {
	caps := make(map[rune]struct{})
	for _, a := range t1 {
		for _, r := range a {
			if r >= 'A' && r <= 'Z' {
				caps[r] = struct{}{}
			}
		}
	}
	for _, a := range t2 {
		for _, r := range a {
			if _, ok := caps[r]; ok {
				return true
			}
		}
	}
	return false
}
