package rank_test

import (
	"encoding/json"
	"testing"

	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		s   string
		res rank.Rank
	}{
		{"species", rank.Species},
		{"SPECIES", rank.Species},
		{"sp.", rank.Species},
		{"subsp.", rank.Subspecies},
		{"var.", rank.Variety},
		{"f.", rank.Form},
		{"gen.", rank.Genus},
		{"fam.", rank.Family},
		{"species aggregate", rank.SpeciesAggregate},
		{"infraspecific-name", rank.InfraspecificName},
		{"", rank.Unknown},
		{"nonsense", rank.Unknown},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, rank.Parse(v.s), v.s)
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, rank.Family.IsSuprageneric())
	assert.False(t, rank.Genus.IsSuprageneric())
	assert.True(t, rank.Subgenus.IsInfrageneric())
	assert.True(t, rank.SpeciesAggregate.IsSupraspecific())
	assert.True(t, rank.Species.IsSpeciesOrBelow())
	assert.False(t, rank.Species.IsInfraspecific())
	assert.True(t, rank.Variety.IsInfraspecific())
	assert.True(t, rank.Variety.IsInfrasubspecific())
	assert.False(t, rank.Unranked.IsSpeciesOrBelow())
	assert.True(t, rank.Cultivar.IsCultivar())
	assert.True(t, rank.InfragenericName.IsUncomparable())
	assert.True(t, rank.Genus.HigherThan(rank.Species))
	assert.False(t, rank.Unknown.HigherThan(rank.Species))
	assert.False(t, rank.Unknown.IsKnown())
}

func TestJSON(t *testing.T) {
	bs, err := json.Marshal(rank.Genus)
	require.NoError(t, err)
	assert.Equal(t, `"GENUS"`, string(bs))

	bs, err = json.Marshal(rank.Unknown)
	require.NoError(t, err)
	assert.Equal(t, "null", string(bs))

	var r rank.Rank
	require.NoError(t, json.Unmarshal([]byte(`"subsp."`), &r))
	assert.Equal(t, rank.Subspecies, r)
}
