package authorship_test

import (
	"testing"

	"github.com/gnames/gnmatch/pkg/authorship"
	"github.com/gnames/gnparser"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		s, res string
	}{
		{"", ""},
		{"  ", ""},
		{"L.", "l"},
		{"Müller", "muller"},
		{"Mueller", "muller"},
		{"C.L.Koch", "c l koch"},
		{"Grønlund", "gronlund"},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, authorship.Normalize(v.s), v.s)
	}
}

func TestNewAuthor(t *testing.T) {
	a := authorship.NewAuthor("c l koch")
	assert.Equal(t, "c l", a.Initials)
	assert.Equal(t, "koch", a.Surname)
	assert.Empty(t, a.Suffix)

	b := authorship.NewAuthor("a koch")
	assert.True(t, a.InitialsOrSuffixDiffer(b))
	assert.False(t, a.InitialsOrSuffixDiffer(authorship.NewAuthor("koch")))
}

func TestEqualityAnd(t *testing.T) {
	eq, diff, unk := authorship.Equal, authorship.Different, authorship.Unknown
	assert.Equal(t, diff, eq.And(diff))
	assert.Equal(t, eq, eq.And(unk))
	assert.Equal(t, unk, unk.And(unk))
	assert.Equal(t, "EQUAL", eq.String())
}

func TestCompare(t *testing.T) {
	c := authorship.NewComparator(authorship.DefaultAbbreviations)
	au := func(year string, authors ...string) authorship.Authorship {
		return authorship.Authorship{Authors: authors, Year: year}
	}

	tests := []struct {
		msg    string
		a1, a2 authorship.Authorship
		res    authorship.Equality
	}{
		{"empty", au(""), au("", "Mill."), authorship.Unknown},
		{"same", au("", "Mill."), au("", "Mill."), authorship.Equal},
		{"abbreviation", au("", "L."), au("", "Linnaeus"), authorship.Equal},
		{"different", au("", "Mill."), au("1753", "Linnaeus"),
			authorship.Different},
		{"year only", au("1753"), au("1753"), authorship.Equal},
		{"year differs", au("1753"), au("1755"), authorship.Different},
		{"close year", au("1835", "C.L.Koch"), au("1836", "Koch"),
			authorship.Equal},
		{"initials", au("", "A.Koch"), au("", "C.L.Koch"), authorship.Different},
		{"umlaut", au("", "Müller"), au("", "Mueller"), authorship.Equal},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert.Equal(t, v.res, c.Compare(v.a1, v.a2))
		})
	}
}

func TestCompareAuthorsFirst(t *testing.T) {
	c := authorship.NewComparator(nil)
	a1 := authorship.Authorship{Authors: []string{"Smith"}, Year: "1753"}
	a2 := authorship.Authorship{Authors: []string{"Smith"}, Year: "1900"}
	assert.Equal(t, authorship.Equal, c.CompareAuthorsFirst(a1, a2))
	assert.Equal(t, authorship.Different, c.Compare(a1, a2))
}

func TestCompareNames(t *testing.T) {
	c := authorship.NewComparator(nil)
	clerck := authorship.Authorship{Authors: []string{"Clerck"}, Year: "1757"}

	// missing brackets on one side
	n1 := authorship.Name{Basionym: clerck}
	n2 := authorship.Name{Combination: clerck}
	assert.Equal(t, authorship.Equal, c.CompareNames(n1, n2))

	n3 := authorship.Name{
		Basionym:    clerck,
		Combination: authorship.Authorship{Authors: []string{"Simon"}},
	}
	n4 := authorship.Name{
		Basionym:    clerck,
		Combination: authorship.Authorship{Authors: []string{"Thorell"}},
	}
	assert.Equal(t, authorship.Different, c.CompareNames(n3, n4))
	assert.Equal(t, authorship.Unknown, c.CompareNames(authorship.Name{}, n4))
}

func TestFromParsed(t *testing.T) {
	gnp := gnparser.New(gnparser.NewConfig(gnparser.OptWithDetails(true)))

	tests := []struct {
		name       string
		comb, bas  []string
		combYear   string
		basYear    string
		emptyNames bool
	}{
		{"Abies alba Mill.", []string{"Mill."}, nil, "", "", false},
		{"Xysticus cristatus (Clerck, 1757)", nil, []string{"Clerck"}, "",
			"1757", false},
		{"Abies alba", nil, nil, "", "", true},
	}

	for _, v := range tests {
		res := authorship.FromParsed(gnp.ParseName(v.name))
		assert.Equal(t, v.emptyNames, res.IsEmpty(), v.name)
		assert.Equal(t, v.comb, res.Combination.Authors, v.name)
		assert.Equal(t, v.bas, res.Basionym.Authors, v.name)
		assert.Equal(t, v.combYear, res.Combination.Year, v.name)
		assert.Equal(t, v.basYear, res.Basionym.Year, v.name)
	}
}
