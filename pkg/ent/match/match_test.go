package match_test

import (
	"encoding/json"
	"testing"

	"github.com/gnames/gnmatch/pkg/ent/match"
	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnmatch/pkg/ent/usage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abiesAlba() match.NameUsageMatch {
	return match.NameUsageMatch{
		Usage: &usage.NameUsage{ID: "7", ScientificName: "Abies alba Mill."},
		Classification: []usage.RankedName{
			{Key: "1", Name: "Plantae", Rank: rank.Kingdom},
			{Key: "5", Name: "Pinaceae", Rank: rank.Family},
			{Key: "6", Name: "Abies", Rank: rank.Genus},
			{Key: "7", Name: "Abies alba", Rank: rank.Species},
		},
		Diagnostics: match.Diagnostics{MatchType: match.Exact, Confidence: 99},
	}
}

func TestNoMatch(t *testing.T) {
	res := match.NoMatch(100, "No name given")
	assert.False(t, res.IsMatch())
	assert.Equal(t, match.None, res.Diagnostics.MatchType)
	assert.Equal(t, 100, res.Diagnostics.Confidence)
	assert.Equal(t, "No name given", res.Diagnostics.Note)
}

func TestIssues(t *testing.T) {
	var d match.Diagnostics
	d.AddIssue(match.TaxonIDNotFound)
	d.AddIssue(match.TaxonIDNotFound)
	assert.Len(t, d.Issues, 1)
	assert.True(t, d.HasIssue(match.TaxonIDNotFound))
	assert.False(t, d.HasIssue(match.TaxonIDIgnored))
}

func TestHigherTaxa(t *testing.T) {
	m := abiesAlba()
	assert.True(t, m.IsMatch())

	ht, ok := m.HigherTaxon(rank.Family)
	require.True(t, ok)
	assert.Equal(t, "Pinaceae", ht.Name)
	_, ok = m.HigherTaxon(rank.Order)
	assert.False(t, ok)
	assert.Equal(t, []string{"1", "5", "6", "7"}, m.HigherKeys())

	names, keys := m.Flat()
	assert.Len(t, names, len(match.FlatRanks()))
	assert.Equal(t, "Pinaceae", names[4])
	assert.Equal(t, "", keys[3])
	assert.Equal(t, "7", keys[7])
}

func TestClear(t *testing.T) {
	m := abiesAlba()
	m.Clear()
	assert.False(t, m.IsMatch())
	assert.Nil(t, m.Usage)
	assert.Empty(t, m.Classification)
	assert.Equal(t, 99, m.Diagnostics.Confidence)
}

func TestTypeJSON(t *testing.T) {
	bs, err := json.Marshal(match.HigherRank)
	require.NoError(t, err)
	assert.Equal(t, `"HIGHERRANK"`, string(bs))

	var tp match.Type
	require.NoError(t, json.Unmarshal([]byte(`"variant"`), &tp))
	assert.Equal(t, match.Variant, tp)
}

func TestQueryHasIDs(t *testing.T) {
	assert.False(t, match.Query{ScientificName: "Abies"}.HasIDs())
	assert.True(t, match.Query{ScientificNameID: "ext-1"}.HasIDs())
}
