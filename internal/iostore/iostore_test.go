package iostore_test

import (
	"strconv"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/internal/iostore"
	"github.com/gnames/gnmatch/pkg/ent/dataset"
	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnmatch/pkg/ent/usage"
	"github.com/gnames/gnmatch/pkg/errcode"
	"github.com/gnames/gnmatch/pkg/joinindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inMemory(t *testing.T) *iostore.Store {
	s, err := iostore.Open("", iostore.OptInMemory(true))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func usages(n int) []usage.NameUsage {
	res := make([]usage.NameUsage, n)
	for i := range res {
		id := strconv.Itoa(i + 1)
		res[i] = usage.NameUsage{
			ID:             id,
			ScientificName: "Aus bus" + id,
			Rank:           rank.Species,
			Status:         usage.Accepted,
		}
	}
	res[n-1].Status = usage.SynonymStatus
	res[n-1].AcceptedID = "1"
	return res
}

func assertCode(t *testing.T, err error, code gn.ErrorCode) {
	t.Helper()
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, code, gnErr.Code)
}

func TestUsages(t *testing.T) {
	s := inMemory(t)

	_, _, err := s.Usages()
	assertCode(t, err, errcode.StoreEmptyError)

	us := usages(25_001)
	require.NoError(t, s.SaveUsages("col.sqlite", us))

	res, meta, err := s.Usages()
	require.NoError(t, err)
	assert.Equal(t, us, res)
	assert.Equal(t, "col.sqlite", meta.Source)
	assert.Equal(t, 25_001, meta.Count)
	assert.False(t, meta.Created.IsZero())

	// a new snapshot replaces the old one
	require.NoError(t, s.SaveUsages("small.sqlite", usages(3)))
	res, _, err = s.Usages()
	require.NoError(t, err)
	assert.Len(t, res, 3)
	assert.Equal(t, usage.Synonym, res[2].Kind())

	meta, err = s.MainMeta()
	require.NoError(t, err)
	assert.Equal(t, "small.sqlite", meta.Source)
}

func TestJoinIndexes(t *testing.T) {
	s := inMemory(t)

	keys, err := s.JoinKeys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	ds := dataset.Dataset{Key: "2011", Prefix: "urn:lsid:marinespecies.org:taxname:",
		RemovePrefixForMatching: true}
	ji := joinindex.New(ds, []joinindex.Doc{
		{JoinKey: "146230", ScientificName: "Abra alba", MainKey: "7",
			Classification: []usage.RankedName{
				{Key: "100", Name: "Animalia", Rank: rank.Kingdom},
			}},
		{JoinKey: "1", ScientificName: "Biota", MainKey: "1"},
	})
	require.NoError(t, s.SaveJoinIndex("worms.sqlite", ji))
	ds2 := dataset.Dataset{Key: "2144", Prefix: "urn:lsid:ipni.org:names:"}
	require.NoError(t, s.SaveJoinIndex("ipni.sqlite", joinindex.New(ds2, nil)))

	keys, err = s.JoinKeys()
	require.NoError(t, err)
	assert.Equal(t, []string{"2011", "2144"}, keys)

	res, meta, err := s.JoinIndex("2011")
	require.NoError(t, err)
	assert.Equal(t, 2, meta.Count)
	assert.Equal(t, ds, res.Dataset())
	docs := res.Lookup("146230")
	require.Len(t, docs, 1)
	assert.Equal(t, "7", docs[0].MainKey)
	require.Len(t, docs[0].Classification, 1)
	assert.Equal(t, "100", docs[0].Classification[0].Key)

	empty, _, err := s.JoinIndex("2144")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	_, _, err = s.JoinIndex("42")
	assertCode(t, err, errcode.StoreEmptyError)

	require.NoError(t, s.DeleteJoinIndex("2011"))
	keys, err = s.JoinKeys()
	require.NoError(t, err)
	assert.Equal(t, []string{"2144"}, keys)
}

func TestOnDisk(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	dir := t.TempDir()

	s, err := iostore.Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveUsages("col.sqlite", usages(10)))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "second close is a no-op")

	s, err = iostore.Open(dir)
	require.NoError(t, err)
	defer s.Close()
	res, _, err := s.Usages()
	require.NoError(t, err)
	assert.Len(t, res, 10)
}
