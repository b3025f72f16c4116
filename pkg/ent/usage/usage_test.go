package usage_test

import (
	"testing"

	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnmatch/pkg/ent/usage"
	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	u := usage.NameUsage{ID: "1", ParentID: "2", Status: usage.SynonymStatus}
	assert.Equal(t, usage.Synonym, u.Kind())
	assert.Equal(t, "2", u.AcceptedKey())

	u.AcceptedID = "3"
	assert.Equal(t, "3", u.AcceptedKey())

	u.Status = usage.ProvisionallyAccepted
	assert.Equal(t, usage.Taxon, u.Kind())
	assert.Empty(t, u.AcceptedKey())
}

func TestName(t *testing.T) {
	u := usage.NameUsage{ScientificName: "Abies alba Mill."}
	assert.Equal(t, "Abies alba Mill.", u.Name())
	u.CanonicalName = "Abies alba"
	assert.Equal(t, "Abies alba", u.Name())
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		s   string
		res usage.Status
	}{
		{"", usage.Accepted},
		{"accepted", usage.Accepted},
		{"Heterotypic synonym", usage.SynonymStatus},
		{"pro-parte synonym", usage.AmbiguousSynonym},
		{"PROVISIONALLY_ACCEPTED", usage.ProvisionallyAccepted},
		{"misapplied", usage.Misapplied},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, usage.ParseStatus(v.s), v.s)
	}
	assert.Greater(t, usage.Accepted.Score(), usage.SynonymStatus.Score())
	assert.Less(t, usage.Misapplied.Score(), usage.ProvisionallyAccepted.Score())
}

func TestClassification(t *testing.T) {
	var c usage.Classification
	assert.True(t, c.IsEmpty())
	c.Set(rank.Family, " Pinaceae ")
	c.Set(rank.Tribe, "Abieteae")
	assert.Equal(t, "Pinaceae", c.Get(rank.Family))
	assert.Empty(t, c.Get(rank.Tribe))
	assert.False(t, c.IsEmpty())

	c = usage.FromRankedNames([]usage.RankedName{
		{Key: "1", Name: "Plantae", Rank: rank.Kingdom},
		{Key: "5", Name: "Pinaceae", Rank: rank.Family},
		{Key: "6", Name: "Abies", Rank: rank.Genus},
		{Key: "7", Name: "Abies alba", Rank: rank.Species},
	})
	assert.Equal(t, usage.Classification{
		Kingdom: "Plantae",
		Family:  "Pinaceae",
		Genus:   "Abies",
		Species: "Abies alba",
	}, c)
}
