package matcher

import (
	"testing"

	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnmatch/pkg/htcomp"
	"github.com/stretchr/testify/assert"
)

func TestNormConfidence(t *testing.T) {
	tests := []struct {
		score, conf int
	}{
		{-5, 0},
		{0, 0},
		{50, 50},
		{80, 80},
		{85, 85},
		{90, 88},
		{92, 89},
		{95, 91},
		{98, 92},
		{99, 92},
		{100, 93},
		{105, 95},
		{110, 96},
		{115, 97},
		{120, 99},
		{125, 100},
		{200, 100},
	}
	for _, v := range tests {
		assert.Equal(t, v.conf, NormConfidence(v.score), v.score)
	}
}

func TestNormConfidenceMonotonic(t *testing.T) {
	prev := NormConfidence(-10)
	for s := -9; s <= 150; s++ {
		c := NormConfidence(s)
		assert.GreaterOrEqual(t, c, prev, s)
		prev = c
	}
}

func TestRankSimilarity(t *testing.T) {
	tests := []struct {
		msg        string
		query, ref rank.Rank
		res        int
	}{
		{"equal", rank.Species, rank.Species, 6},
		{"equal genus", rank.Genus, rank.Genus, 6},
		{"equal family", rank.Family, rank.Family, 6},
		{"both unranked", rank.Unranked, rank.Unranked, 6},
		{"unranked no reference", rank.Unranked, rank.Unknown, -1},
		{"family unranked", rank.Family, rank.Unranked, 0},
		{"subspecies infraspecific", rank.Subspecies, rank.InfraspecificName, 2},
		{"genus class", rank.Genus, rank.Class, -35},
		{"genus subgenus", rank.Genus, rank.Subgenus, -1},
		{"genus family", rank.Genus, rank.Family, -35},
		{"family kingdom", rank.Family, rank.Kingdom, -35},
		{"subspecies variety", rank.Subspecies, rank.Variety, -9},
		{"species aggregate", rank.Species, rank.SpeciesAggregate, 2},
		{"species subspecies", rank.Species, rank.Subspecies, -30},
		{"unranked", rank.Unranked, rank.Species, 0},
		{"no reference", rank.Species, rank.Unknown, -1},
		{"no ranks", rank.Unknown, rank.Unknown, 0},
		{"no query", rank.Unknown, rank.Species, 0},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert.Equal(t, v.res, RankSimilarity(v.query, v.ref))
		})
	}
}

func TestKingdomSimilarity(t *testing.T) {
	tests := []struct {
		k1, k2 string
		res    int
	}{
		{htcomp.Animalia, htcomp.Animalia, 10},
		{htcomp.Animalia, htcomp.Plantae, -10},
		{htcomp.Bacteria, htcomp.Archaea, 8},
		{htcomp.IncertaeSedis, htcomp.Plantae, 7},
		{"", htcomp.Plantae, 0},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, kingdomSimilarity(v.k1, v.k2), v.k1+"|"+v.k2)
	}
}

func TestIsSingleCase(t *testing.T) {
	tests := []struct {
		name string
		res  bool
	}{
		{"abies alba", true},
		{"ABIES ALBA", true},
		{"Abies alba", false},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, isSingleCase(v.name), v.name)
	}
}
