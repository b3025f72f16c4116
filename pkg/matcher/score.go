package matcher

import (
	"math"
	"strings"

	"github.com/gnames/gnmatch/pkg/authorship"
	"github.com/gnames/gnmatch/pkg/ent/match"
	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnmatch/pkg/ent/usage"
	"github.com/gnames/gnmatch/pkg/htcomp"
	"github.com/gnames/gnmatch/pkg/nameindex"
)

const (
	minConfidence            = 80
	minConfidenceHigher      = 90
	minConfidenceAcrossRanks = 1
)

var vagueKingdoms = map[string]struct{}{
	htcomp.Archaea:       {},
	htcomp.Bacteria:      {},
	htcomp.Fungi:         {},
	htcomp.Chromista:     {},
	htcomp.Protozoa:      {},
	htcomp.IncertaeSedis: {},
}

// NormConfidence maps a raw score to a confidence from 0 to 100. Scores up
// to 80 stay as they are, higher scores are compressed logarithmically and
// reach 100 at 125.
func NormConfidence(s int) int {
	if s > 80 {
		f := 75.8 + 26*(math.Log10((float64(s)-70)*1.5)-1)
		s = int(math.Round(f))
	}
	return clamp(0, 100, s)
}

func clamp(lo, hi, v int) int {
	return max(lo, min(hi, v))
}

func incNeg(score, factor int) int {
	if score < 0 {
		return score * factor
	}
	return score
}

// RankSimilarity rates how well a candidate rank fits a query rank, from
// -35 to 6. Unknown ranks are treated as absent.
func RankSimilarity(query, ref rank.Rank) int {
	var res int
	if !ref.IsKnown() {
		if query.IsKnown() {
			res = -1
		}
		return res
	}

	// ranks not represented in a canonical name
	if ref.IsCultivar() || ref == rank.Strain {
		res -= 7
	}
	if ref.IsUncomparable() {
		res -= 3
	}
	if !query.IsKnown() {
		return clamp(-35, 6, res)
	}

	switch {
	case query == ref:
		res += 10
	case either(query, ref, is(rank.InfraspecificName), rank.Rank.IsInfraspecific),
		either(query, ref, is(rank.InfrasubspecificName),
			rank.Rank.IsInfrasubspecific),
		either(query, ref, is(rank.InfragenericName), rank.Rank.IsInfrageneric):
		res += 5
	case either(query, ref, is(rank.InfragenericName), is(rank.Genus)):
		res += 4
	case query.IsOtherOrUnranked() || ref.IsOtherOrUnranked():
		res = 0
	case either(query, ref, is(rank.Species), is(rank.SpeciesAggregate)):
		res += 2
	case epithetsDiffer(query, ref) || epithetsDiffer(ref, query):
		res -= 30
	case either(query, ref, isNot(rank.Rank.IsSuprageneric),
		rank.Rank.IsSuprageneric):
		// genus homonyms of higher taxa, e.g. Vertebrata
		res -= 35
	default:
		d := int(ref) - int(query)
		if d < 0 {
			d = -d
		}
		res -= d
	}
	return clamp(-35, 6, res)
}

func is(r rank.Rank) func(rank.Rank) bool {
	return func(o rank.Rank) bool { return o == r }
}

func isNot(f func(rank.Rank) bool) func(rank.Rank) bool {
	return func(r rank.Rank) bool { return !f(r) }
}

func either(r1, r2 rank.Rank, p1, p2 func(rank.Rank) bool) bool {
	return p1(r1) && p2(r2) || p2(r1) && p1(r2)
}

// epithetsDiffer is true when the ranks imply a different number of
// epithets.
func epithetsDiffer(r1, r2 rank.Rank) bool {
	if (r1 == rank.Species || r1 == rank.SpeciesAggregate) &&
		r2.IsInfraspecific() {
		return true
	}
	return r1.IsSupraspecific() && r1 != rank.SpeciesAggregate &&
		r2.IsSpeciesOrBelow()
}

// kingdomSimilarity rates two kingdoms from -10 to 10; unknown kingdoms
// give 0.
func kingdomSimilarity(k1, k2 string) int {
	switch {
	case k1 == "" || k2 == "":
		return 0
	case k1 == htcomp.IncertaeSedis || k2 == htcomp.IncertaeSedis:
		return 7
	case k1 == k2:
		return 10
	}
	_, vague1 := vagueKingdoms[k1]
	_, vague2 := vagueKingdoms[k2]
	if vague1 && vague2 {
		return 8
	}
	return -10
}

type weights struct {
	r                       rank.Rank
	match, mismatch, absent int
}

var clsWeights = []weights{
	{rank.Phylum, 10, -10, -1},
	{rank.Class, 15, -10, 0},
	{rank.Order, 15, -10, 0},
	{rank.Family, 25, -15, 0},
	// the genus is usually part of the name already
	{rank.Genus, 2, 1, 0},
}

func (m *Matcher) compareRank(
	w weights,
	query, ref usage.Classification,
) int {
	eq, ok := m.htc.Equal(w.r, query.Get(w.r), ref.Get(w.r))
	switch {
	case !ok:
		return w.absent
	case eq:
		return w.match
	}
	return w.mismatch
}

// classificationSimilarity rates the agreement of two classifications from
// -60 to 50. Kingdoms weigh most, as they are often the only rank given.
func (m *Matcher) classificationSimilarity(
	query, ref usage.Classification,
) int {
	res := m.compareRank(weights{rank.Kingdom, 5, -10, -1}, query, ref)
	if res == -10 {
		plantOrAnimal := m.htc.IsInKingdoms(query.Kingdom,
			htcomp.Animalia, htcomp.Plantae)
		switch {
		case plantOrAnimal && m.htc.IsInKingdoms(ref.Kingdom,
			htcomp.Animalia, htcomp.Plantae):
			res = -51
		case plantOrAnimal && m.htc.IsInKingdoms(ref.Kingdom,
			htcomp.Bacteria, htcomp.Archaea, htcomp.Viruses):
			res = -31
		}
	}
	if m.htc.IsInKingdoms(ref.Kingdom, htcomp.Viruses) {
		res -= 10
	}
	for _, w := range clsWeights {
		res += m.compareRank(w, query, ref)
	}
	return clamp(-60, 50, res)
}

// nameSimilarity rates a candidate name against the query canonical name.
// Exact matches get 100 or more, fuzzy ones depend on their lexical
// similarity and the genus.
func nameSimilarity(q *query, c match.NameUsageMatch) int {
	can := c.Usage.Name()
	if strings.EqualFold(q.canonical, can) {
		res := 100
		switch {
		case q.kind.isStrictType():
			res += 20
		case strings.Contains(q.canonical, " "):
			res += 10
		}
		return res
	}

	res := int(nameindex.Similarity(q.canonical, can)) - 5
	if q.kind == otuName {
		// a single character often means a different OTU
		res -= 50
	}
	if i := strings.Index(can, " "); i > 0 {
		if strings.HasPrefix(q.canonical, can[:i]) {
			res += 5
		} else {
			res -= 10
		}
	}
	return res
}

func fuzzyUnlikely(q *query, c match.NameUsageMatch) int {
	if c.Diagnostics.MatchType == match.Variant &&
		c.Usage.Rank.IsSpeciesOrBelow() &&
		strings.HasSuffix(q.canonical, " indet") {
		return -25
	}
	return 0
}

// authorSimilarity rates authorships from -12 to 8. It is 0 when the query
// has no parsed name or any side lacks authorship.
func (m *Matcher) authorSimilarity(q *query, c match.NameUsageMatch) int {
	if !q.parsed || q.auth.IsEmpty() {
		return 0
	}
	ca := m.candidateAuthorship(c.Usage)
	if ca.IsEmpty() {
		return 0
	}

	var res int
	recomb := m.authComp.CompareAuthorsFirst(q.auth.Combination, ca.Combination)
	bracket := m.authComp.CompareAuthorsFirst(q.auth.Basionym, ca.Basionym)
	if bracket == authorship.Unknown {
		// brackets are often forgotten or misplaced
		switch {
		case !q.auth.Basionym.IsEmpty():
			bracket = m.authComp.Compare(q.auth.Basionym, ca.Combination)
		case !ca.Basionym.IsEmpty():
			bracket = m.authComp.Compare(q.auth.Combination, ca.Basionym)
		}
		switch bracket {
		case authorship.Equal:
			res--
		case authorship.Different:
			res++
		}
	}
	res += equalityScore(recomb, 3)
	res += equalityScore(bracket, 1)
	return res
}

func equalityScore(eq authorship.Equality, factor int) int {
	switch eq {
	case authorship.Equal:
		return 2 * factor
	case authorship.Different:
		return -3 * factor
	}
	return 0
}
