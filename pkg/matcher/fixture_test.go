package matcher_test

import (
	"context"
	"testing"

	"github.com/gnames/gnmatch/pkg/ent/dataset"
	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnmatch/pkg/ent/usage"
	"github.com/gnames/gnmatch/pkg/htcomp"
	"github.com/gnames/gnmatch/pkg/joinindex"
	"github.com/gnames/gnmatch/pkg/matcher"
	"github.com/gnames/gnmatch/pkg/nameindex"
	"github.com/stretchr/testify/require"
)

func acc(id, parent, name, can string, r rank.Rank) usage.NameUsage {
	return usage.NameUsage{
		ID:             id,
		ParentID:       parent,
		ScientificName: name,
		CanonicalName:  can,
		Rank:           r,
		Status:         usage.Accepted,
	}
}

// backbone is a small classification with a plant and a bird genus
// Oenanthe and a millipede family used by identifier tests.
func backbone() []usage.NameUsage {
	res := []usage.NameUsage{
		acc("1", "", "Plantae", "Plantae", rank.Kingdom),
		acc("2", "1", "Tracheophyta", "Tracheophyta", rank.Phylum),
		acc("3", "2", "Pinopsida", "Pinopsida", rank.Class),
		acc("4", "3", "Pinales", "Pinales", rank.Order),
		acc("5", "4", "Pinaceae", "Pinaceae", rank.Family),
		acc("6", "5", "Abies Mill.", "Abies", rank.Genus),
		acc("7", "6", "Abies alba Mill.", "Abies alba", rank.Species),
		acc("10", "2", "Magnoliopsida", "Magnoliopsida", rank.Class),
		acc("11", "10", "Apiales", "Apiales", rank.Order),
		acc("12", "11", "Apiaceae", "Apiaceae", rank.Family),
		acc("13", "12", "Oenanthe L.", "Oenanthe", rank.Genus),

		acc("100", "", "Animalia", "Animalia", rank.Kingdom),
		acc("101", "100", "Arthropoda", "Arthropoda", rank.Phylum),
		acc("102", "101", "Arachnida", "Arachnida", rank.Class),
		acc("103", "102", "Araneae", "Araneae", rank.Order),
		acc("104", "103", "Thomisidae", "Thomisidae", rank.Family),
		acc("105", "104", "Xysticus C.L.Koch, 1835", "Xysticus", rank.Genus),
		acc("106", "105", "Xysticus cristatus (Clerck, 1757)",
			"Xysticus cristatus", rank.Species),
		acc("110", "100", "Chordata", "Chordata", rank.Phylum),
		acc("111", "110", "Aves", "Aves", rank.Class),
		acc("112", "111", "Passeriformes", "Passeriformes", rank.Order),
		acc("113", "112", "Muscicapidae", "Muscicapidae", rank.Family),
		acc("114", "113", "Oenanthe Vieillot, 1816", "Oenanthe", rank.Genus),
		acc("120", "101", "Diplopoda", "Diplopoda", rank.Class),
		acc("121", "120", "Callipodida", "Callipodida", rank.Order),
		acc("7228", "121", "Abacionidae", "Abacionidae", rank.Family),
		acc("122", "7228", "Abacion", "Abacion", rank.Genus),
		acc("1011638", "122", "Abacion tesselatum Cook, 1904",
			"Abacion tesselatum", rank.Species),
	}
	syn := usage.NameUsage{
		ID:             "8",
		ScientificName: "Abies pectinata DC.",
		CanonicalName:  "Abies pectinata",
		Rank:           rank.Species,
		Status:         usage.SynonymStatus,
		AcceptedID:     "7",
	}
	return append(res, syn)
}

// externalDataset has its own identifiers for a part of the backbone.
func externalDataset() (dataset.Dataset, []usage.NameUsage) {
	ds := dataset.Dataset{
		Key:           "dummy",
		Title:         "Dummy dataset for testing",
		Prefix:        "ext-",
		PrefixMapping: []string{"other-ext-", "other-ext2-"},
	}
	src := []usage.NameUsage{
		acc("ext-1", "", "Animalia", "", rank.Kingdom),
		acc("ext-2", "ext-1", "Arthropoda", "", rank.Phylum),
		acc("ext-3", "ext-2", "Callipodida", "", rank.Order),
		acc("ext-4", "ext-3", "Abacionidae", "", rank.Family),
		acc("ext-5", "ext-4", "Abacion", "", rank.Genus),
		acc("ext-6", "ext-5", "Abacion tesselatum", "", rank.Species),
		acc("ext-7", "ext-6", "Abacion tesselatum iamnew", "", rank.Species),
	}
	return ds, src
}

func newMatcher(t *testing.T) *matcher.Matcher {
	t.Helper()
	idx, err := nameindex.New(backbone())
	require.NoError(t, err)
	htc, err := htcomp.New()
	require.NoError(t, err)
	m, err := matcher.New(idx, htc, matcher.OptJobs(2))
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func newJoinMatcher(t *testing.T) (*matcher.Matcher, joinindex.Stats) {
	t.Helper()
	m := newMatcher(t)
	ds, src := externalDataset()
	ji, stats, err := joinindex.Build(context.Background(), m, ds, src,
		joinindex.OptJobs(2), joinindex.OptBatchSize(3))
	require.NoError(t, err)
	m.AddJoinIndex(ji)
	return m, stats
}
