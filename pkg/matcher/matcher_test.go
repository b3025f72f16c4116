package matcher_test

import (
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/ent/match"
	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnmatch/pkg/ent/usage"
	"github.com/gnames/gnmatch/pkg/errcode"
	"github.com/gnames/gnmatch/pkg/htcomp"
	"github.com/gnames/gnmatch/pkg/matcher"
	"github.com/gnames/gnmatch/pkg/nameindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmpty(t *testing.T) {
	idx, err := nameindex.New(nil)
	require.NoError(t, err)
	htc, err := htcomp.New()
	require.NoError(t, err)

	_, err = matcher.New(idx, htc)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.IndexEmptyError, gnErr.Code)
}

func TestMatchName(t *testing.T) {
	m := newMatcher(t)
	plants := usage.Classification{Kingdom: "Plantae"}
	animals := usage.Classification{Kingdom: "Animalia"}

	tests := []struct {
		msg     string
		q       match.Query
		tp      match.Type
		key     string
		minConf int
	}{
		{"exact", match.Query{ScientificName: "Abies alba",
			Classification: plants}, match.Exact, "7", 100},
		{"exact with authorship", match.Query{ScientificName: "Abies alba",
			Authorship: "Mill."}, match.Exact, "7", 95},
		{"synonym kingdom", match.Query{ScientificName: "Abies alba Mill.",
			Classification: usage.Classification{Kingdom: "Viridiplantae"}},
			match.Exact, "7", 95},
		{"fuzzy", match.Query{ScientificName: "Abbies alba",
			Classification: plants}, match.Variant, "7", 80},
		{"fuzzy no classification", match.Query{ScientificName: "Abbies alba"},
			match.Variant, "7", 80},
		{"homonym with kingdom", match.Query{ScientificName: "Oenanthe",
			Classification: animals}, match.Exact, "114", 95},
		{"homonym with family", match.Query{ScientificName: "Oenanthe",
			Classification: usage.Classification{Family: "Umbelliferae"}},
			match.Exact, "13", 90},
		{"indetermined species", match.Query{ScientificName: "Xysticus sp."},
			match.HigherRank, "105", 90},
		{"unknown species", match.Query{ScientificName: "Xysticus unknownii",
			Classification: animals}, match.HigherRank, "105", 90},
		{"unknown species with family", match.Query{
			ScientificName: "Abacion unknownii",
			Classification: usage.Classification{Family: "Abacionidae"}},
			match.HigherRank, "122", 90},
		{"classification only", match.Query{ScientificName: "Nonexistus",
			Classification: usage.Classification{Family: "Thomisidae"}},
			match.HigherRank, "104", 90},
	}

	for _, v := range tests {
		res := m.Match(v.q)
		require.NotNil(t, res.Usage, v.msg)
		assert.Equal(t, v.tp, res.Diagnostics.MatchType, v.msg)
		assert.Equal(t, v.key, res.Usage.ID, v.msg)
		assert.GreaterOrEqual(t, res.Diagnostics.Confidence, v.minConf, v.msg)
		assert.LessOrEqual(t, res.Diagnostics.Confidence, 100, v.msg)
	}
}

func TestMatchFuzzyLowerThanExact(t *testing.T) {
	m := newMatcher(t)
	cls := usage.Classification{Kingdom: "Plantae"}
	exact := m.Match(match.Query{ScientificName: "Abies alba", Classification: cls})
	fuzzy := m.Match(match.Query{ScientificName: "Abbies alba", Classification: cls})
	assert.Less(t, fuzzy.Diagnostics.Confidence, exact.Diagnostics.Confidence)
}

func TestMatchAmbiguous(t *testing.T) {
	m := newMatcher(t)
	tests := []struct {
		msg    string
		strict bool
	}{
		{"fuzzy", false},
		{"strict", true},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res := m.Match(match.Query{ScientificName: "Oenanthe", Strict: v.strict})
			assert.False(t, res.IsMatch())
			assert.Nil(t, res.Usage)
			assert.Equal(t, match.None, res.Diagnostics.MatchType)
			assert.Contains(t, res.Diagnostics.Note, "Multiple equal matches")
			keys := make([]string, 0, len(res.Diagnostics.Alternatives))
			for _, v := range res.Diagnostics.Alternatives {
				keys = append(keys, v.Usage.ID)
			}
			assert.ElementsMatch(t, []string{"13", "114"}, keys)
		})
	}
}

func TestMatchWrongKingdom(t *testing.T) {
	m := newMatcher(t)
	res := m.Match(match.Query{
		ScientificName: "Abies alba",
		Classification: usage.Classification{Kingdom: "Animalia"},
		Strict:         true,
	})
	assert.False(t, res.IsMatch())
	assert.Nil(t, res.Usage)
}

func TestMatchKingdomScenario(t *testing.T) {
	m := newMatcher(t)
	query := func(name, kingdom string) match.Query {
		return match.Query{
			ScientificName: name,
			Rank:           rank.Species,
			Classification: usage.Classification{Kingdom: kingdom},
		}
	}

	exact := m.Match(query("Abies alba", "Plantae"))
	require.True(t, exact.IsMatch())
	assert.Equal(t, "7", exact.Usage.ID)
	assert.Equal(t, match.Exact, exact.Diagnostics.MatchType)
	assert.GreaterOrEqual(t, exact.Diagnostics.Confidence, 95)

	res := m.Match(query("Abies alba", "Animalia"))
	assert.False(t, res.IsMatch())
	assert.Equal(t, match.None, res.Diagnostics.MatchType)
	assert.Nil(t, res.Usage)

	res = m.Match(query("Abbies alba", "Plantae"))
	require.True(t, res.IsMatch())
	assert.Equal(t, "7", res.Usage.ID)
	assert.Equal(t, match.Variant, res.Diagnostics.MatchType)
	assert.Less(t, res.Diagnostics.Confidence, exact.Diagnostics.Confidence)
}

func TestMatchAuthorshipOverClassification(t *testing.T) {
	m := newMatcher(t)
	cls := usage.Classification{Class: "Magnoliopsida"}

	tests := []struct {
		msg, auth, key string
	}{
		{"classification only", "", "13"},
		{"right plant author", "L.", "13"},
		{"right bird author", "Vieillot, 1816", "114"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res := m.Match(match.Query{
				ScientificName: "Oenanthe",
				Authorship:     v.auth,
				Classification: cls,
			})
			require.True(t, res.IsMatch())
			assert.Equal(t, v.key, res.Usage.ID)
		})
	}
}

func TestMatchSynonym(t *testing.T) {
	m := newMatcher(t)
	res := m.Match(match.Query{ScientificName: "Abies pectinata"})
	require.True(t, res.IsMatch())
	assert.Equal(t, "8", res.Usage.ID)
	assert.True(t, res.Synonym)
	require.NotNil(t, res.AcceptedUsage)
	assert.Equal(t, "7", res.AcceptedUsage.ID)
	last := res.Classification[len(res.Classification)-1]
	assert.Equal(t, "Abies alba", last.Name)

	res = m.Match(match.Query{ScientificName: "Abies alba"})
	assert.False(t, res.Synonym)
	assert.Nil(t, res.AcceptedUsage)
}

func TestMatchExclude(t *testing.T) {
	m := newMatcher(t)
	res := m.Match(match.Query{
		ScientificName: "Oenanthe",
		ExcludeKeys:    []string{"1"},
	})
	require.True(t, res.IsMatch())
	assert.Equal(t, "114", res.Usage.ID)

	res = m.Match(match.Query{
		ScientificName: "Abies alba",
		ExcludeKeys:    []string{"5"},
		Strict:         true,
	})
	assert.False(t, res.IsMatch())
}

func TestMatchStrict(t *testing.T) {
	m := newMatcher(t)
	res := m.Match(match.Query{ScientificName: "Abbies alba", Strict: true})
	assert.False(t, res.IsMatch())

	res = m.Match(match.Query{ScientificName: "Xysticus unknownii", Strict: true})
	assert.False(t, res.IsMatch())
}

func TestMatchSingleCase(t *testing.T) {
	m := newMatcher(t)
	res := m.Match(match.Query{ScientificName: "abies alba"})
	require.True(t, res.IsMatch())
	assert.Equal(t, "7", res.Usage.ID)

	res = m.Match(match.Query{ScientificName: "abbies alba"})
	assert.False(t, res.IsMatch())
}

func TestMatchEmpty(t *testing.T) {
	m := newMatcher(t)
	for _, v := range []string{"", "   ", "null"} {
		res := m.Match(match.Query{ScientificName: v})
		assert.False(t, res.IsMatch(), v)
		assert.Equal(t, match.None, res.Diagnostics.MatchType, v)
		assert.Nil(t, res.Usage, v)
	}
}

func TestMatchVerbose(t *testing.T) {
	m := newMatcher(t)
	res := m.Match(match.Query{
		ScientificName: "Oenanthe",
		Classification: usage.Classification{Kingdom: "Animalia"},
		Verbose:        true,
	})
	require.True(t, res.IsMatch())
	assert.Contains(t, res.Diagnostics.Note, "Similarity: name=")
	require.Len(t, res.Diagnostics.Alternatives, 1)
	alt := res.Diagnostics.Alternatives[0]
	assert.Equal(t, "13", alt.Usage.ID)
	assert.Less(t, alt.Diagnostics.Confidence, res.Diagnostics.Confidence)
	assert.Empty(t, alt.Diagnostics.Alternatives)
}

func TestMatchDeterministic(t *testing.T) {
	m := newMatcher(t)
	qs := []match.Query{
		{ScientificName: "Oenanthe"},
		{ScientificName: "Abbies alba"},
		{ScientificName: "Xysticus sp."},
		{ScientificName: "Xysticus cristatus (Clerck, 1757)"},
	}
	for _, q := range qs {
		first := m.Match(q)
		for range 5 {
			res := m.Match(q)
			assert.Equal(t, first.Diagnostics.MatchType, res.Diagnostics.MatchType)
			assert.Equal(t, first.Diagnostics.Confidence, res.Diagnostics.Confidence)
			if first.Usage != nil {
				assert.Equal(t, first.Usage.ID, res.Usage.ID)
			}
		}
		c := first.Diagnostics.Confidence
		assert.True(t, c >= 0 && c <= 100, q.ScientificName)
		if first.Diagnostics.MatchType == match.None {
			assert.Nil(t, first.Usage)
		}
	}
}

func TestMatchRank(t *testing.T) {
	m := newMatcher(t)
	res := m.Match(match.Query{ScientificName: "Abies", Rank: rank.Genus})
	require.True(t, res.IsMatch())
	assert.Equal(t, "6", res.Usage.ID)
	assert.Equal(t, match.Exact, res.Diagnostics.MatchType)
}
