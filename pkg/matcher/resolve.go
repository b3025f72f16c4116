package matcher

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/gnames/gnmatch/pkg/ent/match"
	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnmatch/pkg/ent/usage"
)

// mode selects the scoring of candidates.
type mode int

const (
	// fuzzyMode allows fuzzy name hits and weighs the whole classification.
	fuzzyMode mode = iota
	// strictMode uses exact names and punishes contradictions harder.
	strictMode
	// higherMode matches names of higher taxa exactly.
	higherMode
)

func (md mode) String() string {
	switch md {
	case strictMode:
		return "STRICT"
	case higherMode:
		return "HIGHER"
	}
	return "FUZZY"
}

var (
	// linneanRanks are compared to decide if two classifications are equal.
	linneanRanks = []rank.Rank{
		rank.Kingdom, rank.Phylum, rank.Class, rank.Order, rank.Family,
		rank.Genus, rank.Species,
	}

	// denominatorRanks are searched for a common ancestor of equally good
	// candidates, from the lowest rank up.
	denominatorRanks = []rank.Rank{
		rank.Species, rank.Genus, rank.Family, rank.Order, rank.Class,
		rank.Phylum, rank.Kingdom,
	}
)

// queryIndex retrieves candidates. A species aggregate query ignores
// exact hits that are not aggregates, and then all fuzzy hits as well.
func (m *Matcher) queryIndex(
	name string,
	r rank.Rank,
	fuzzy bool,
) []match.NameUsageMatch {
	hits := m.idx.Search(name, fuzzy, m.maxCandidates)
	res := make([]match.NameUsageMatch, 0, len(hits))
	var aggregates bool
	for _, h := range hits {
		if h.Type == match.Exact && r == rank.SpeciesAggregate &&
			h.Doc.Rank != rank.SpeciesAggregate {
			aggregates = true
			continue
		}
		res = append(res, m.fromDoc(h.Doc, h.Type))
	}
	if aggregates {
		res = slices.DeleteFunc(res, func(c match.NameUsageMatch) bool {
			return c.Diagnostics.MatchType == match.Variant
		})
	}
	return res
}

// score sets the raw score of a candidate.
func (m *Matcher) score(
	c *match.NameUsageMatch,
	q *query,
	md mode,
	verbose bool,
) {
	ref := usage.FromRankedNames(c.Classification)
	status := c.Usage.Status.Score()
	var name, auth, cls, rnk, unlikely int
	var notes []string

	switch md {
	case fuzzyMode:
		name = nameSimilarity(q, *c)
		auth = incNeg(m.authorSimilarity(q, *c)*2, 2)
		cls = m.classificationSimilarity(q.cls, ref)
		rnk = RankSimilarity(q.rank, c.Usage.Rank)
		unlikely = fuzzyUnlikely(q, *c)
		notes = []string{
			fmt.Sprintf("Similarity: name=%d", name),
			fmt.Sprintf("authorship=%d", auth),
			fmt.Sprintf("classification=%d", cls),
			fmt.Sprintf("rank=%d", rnk),
			fmt.Sprintf("status=%d", status),
		}
		if unlikely < 0 {
			notes = append(notes, fmt.Sprintf("fuzzy match unlikely=%d", unlikely))
		}
	case strictMode:
		name = nameSimilarity(q, *c)
		auth = incNeg(m.authorSimilarity(q, *c)*4, 8)
		k1, _ := m.htc.ToKingdom(q.cls.Kingdom)
		k2, _ := m.htc.ToKingdom(ref.Kingdom)
		cls = incNeg(kingdomSimilarity(k1, k2), 10)
		rnk = incNeg(RankSimilarity(q.rank, c.Usage.Rank), 10)
		notes = []string{
			fmt.Sprintf("Similarity: name=%d", name),
			fmt.Sprintf("authorship=%d", auth),
			fmt.Sprintf("kingdom=%d", cls),
			fmt.Sprintf("rank=%d", rnk),
			fmt.Sprintf("status=%d", status),
		}
	case higherMode:
		hq := *q
		hq.kind = unknownKind
		name = nameSimilarity(&hq, *c)
		cls = m.classificationSimilarity(q.cls, ref)
		rnk = RankSimilarity(q.rank, c.Usage.Rank) * 2
		notes = []string{
			fmt.Sprintf("Similarity: name=%d", name),
			fmt.Sprintf("classification=%d", cls),
			fmt.Sprintf("rank=%d", rnk),
			fmt.Sprintf("status=%d", status),
		}
	}

	c.SetScore(name + auth + cls + rnk + status + unlikely)
	// a contradicting authorship is not an exact match
	if auth < 0 && c.Diagnostics.MatchType == match.Exact {
		c.Diagnostics.MatchType = match.Variant
	}
	if verbose {
		for _, v := range notes {
			addNote(c, v)
		}
	}
}

// exclude sets the score of candidates to zero when they or one of their
// higher taxa are excluded.
func exclude(cs []match.NameUsageMatch, keys map[string]struct{}) {
	if len(keys) == 0 {
		return
	}
	for i := range cs {
		c := &cs[i]
		if _, ok := keys[c.Usage.ID]; ok {
			c.SetScore(0)
			addNote(c, "excluded by "+c.Usage.ID)
			continue
		}
		for _, k := range c.HigherKeys() {
			if _, ok := keys[k]; ok {
				c.SetScore(0)
				addNote(c, "excluded by "+k)
				break
			}
		}
	}
}

// byScore orders candidates by score, then by name and key.
func byScore(a, b match.NameUsageMatch) int {
	if c := cmp.Compare(b.Score(), a.Score()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Usage.Name(), b.Usage.Name()); c != 0 {
		return c
	}
	return cmp.Compare(a.Usage.ID, b.Usage.ID)
}

// match finds the best candidate for a query in the given mode. Candidates
// that are equally good but belong to different lineages are resolved to
// their lowest common higher taxon, or to no match at all.
func (m *Matcher) match(
	q *query,
	md mode,
	excl map[string]struct{},
	verbose bool,
) match.NameUsageMatch {
	if q.canonical == "" {
		return match.NoMatch(100, "No name given")
	}

	cs := m.queryIndex(q.canonical, q.rank, md == fuzzyMode)
	for i := range cs {
		m.score(&cs[i], q, md, verbose)
	}
	exclude(cs, excl)
	slices.SortFunc(cs, byScore)

	if verbose {
		for i := range cs {
			addNote(&cs[i], fmt.Sprintf("score=%d", cs[i].Score()))
		}
	}

	if len(cs) == 0 {
		return match.NoMatch(100, "")
	}

	best := cs[0]
	bestScore := best.Score()
	var dist int

	if len(cs) == 1 {
		dist = 5
		if verbose {
			addNote(&best, fmt.Sprintf("singleMatch=%d", dist))
		}
	} else {
		secondScore := cs[1].Score()
		acrossClasses := similarButSpanRank(cs, minConfidenceAcrossRanks, rank.Class)

		if bestScore == secondScore || acrossClasses {
			var threshold int
			if acrossClasses {
				threshold = minConfidenceAcrossRanks
			}
			suitable := withinThreshold(cs, threshold)
			if sameClassification(suitable) {
				best = suitable[0]
				addNote(&best, fmt.Sprintf("%d synonym homonyms", len(suitable)))
			} else {
				var ok bool
				if best, ok = m.lowestDenominator(suitable); !ok {
					res := match.NoMatch(99, "Multiple equal matches for "+q.canonical)
					setAlternatives(&res, normalized(cs))
					return res
				}
			}
		}

		dist = min(5, (bestScore-secondScore)/2)
		if verbose {
			addNote(&best, fmt.Sprintf("nextMatch=%d", dist))
		}
	}

	best.Diagnostics.Confidence = NormConfidence(bestScore + dist)

	floor := minConfidence
	if md == higherMode {
		floor = minConfidenceHigher
	}
	if best.Diagnostics.Confidence < floor {
		res := match.NoMatch(99, "No match because of too little confidence")
		if verbose {
			setAlternatives(&res, normalized(cs))
		}
		return res
	}

	if verbose && len(cs) > 1 {
		setAlternatives(&best, normalized(cs))
	}
	return best
}

// normalized returns copies of candidates with normalized confidences.
func normalized(cs []match.NameUsageMatch) []match.NameUsageMatch {
	res := slices.Clone(cs)
	for i := range res {
		res[i].Diagnostics.Confidence = NormConfidence(res[i].Score())
	}
	return res
}

// similarButSpanRank is true if a candidate within threshold of the best
// one has a different classification at or above the rank.
func similarButSpanRank(
	cs []match.NameUsageMatch,
	threshold int,
	r rank.Rank,
) bool {
	if len(cs) < 2 {
		return false
	}
	best := cs[0]
	for _, c := range cs[1:] {
		if best.Score()-c.Score() > threshold {
			break
		}
		if !equalClassification(best, c, r) {
			return true
		}
	}
	return false
}

// equalClassification compares classifications from kingdom down to the
// stop rank. Unknown stop rank compares all Linnean ranks.
func equalClassification(a, b match.NameUsageMatch, stop rank.Rank) bool {
	for _, r := range linneanRanks {
		if stop.IsKnown() && stop.HigherThan(r) {
			break
		}
		na, _ := a.HigherTaxon(r)
		nb, _ := b.HigherTaxon(r)
		if na.Name != nb.Name {
			return false
		}
	}
	return true
}

func sameClassification(cs []match.NameUsageMatch) bool {
	for _, c := range cs[1:] {
		if !equalClassification(cs[0], c, rank.Unknown) {
			return false
		}
	}
	return true
}

// withinThreshold returns the sorted candidates that are within threshold
// of the best one.
func withinThreshold(
	cs []match.NameUsageMatch,
	threshold int,
) []match.NameUsageMatch {
	if len(cs) == 0 {
		return nil
	}
	best := cs[0].Score()
	for i, c := range cs {
		if best-c.Score() > threshold {
			return cs[:i]
		}
	}
	return cs
}

// lowestDenominator returns the lowest higher taxon shared by all
// candidates.
func (m *Matcher) lowestDenominator(
	cs []match.NameUsageMatch,
) (match.NameUsageMatch, bool) {
	for _, r := range denominatorRanks {
		first, ok := cs[0].HigherTaxon(r)
		if !ok || first.Key == "" {
			continue
		}
		shared := true
		for _, c := range cs[1:] {
			if ht, _ := c.HigherTaxon(r); ht.Key != first.Key {
				shared = false
				break
			}
		}
		if !shared {
			continue
		}
		if res, ok := m.byUsageKey(first.Key); ok {
			res.Diagnostics.MatchType = match.HigherRank
			return res, true
		}
	}
	return match.NameUsageMatch{}, false
}

func addNote(c *match.NameUsageMatch, note string) {
	if note == "" {
		return
	}
	if c.Diagnostics.Note == "" {
		c.Diagnostics.Note = note
		return
	}
	c.Diagnostics.Note += "; " + note
}

// setAlternatives attaches candidates to a result. The result itself and
// repeated usages are skipped, alternatives of alternatives are removed.
func setAlternatives(res *match.NameUsageMatch, alts []match.NameUsageMatch) {
	seen := make(map[string]struct{})
	if res.Usage != nil {
		seen[res.Usage.ID] = struct{}{}
	}
	var out []match.NameUsageMatch
	for _, a := range alts {
		if a.Usage == nil {
			continue
		}
		if _, ok := seen[a.Usage.ID]; ok {
			continue
		}
		seen[a.Usage.ID] = struct{}{}
		a.Diagnostics.Alternatives = nil
		out = append(out, a)
	}
	res.Diagnostics.Alternatives = out
}

// higherMatch marks a fallback result and keeps the alternatives of the
// first attempt.
func higherMatch(res, first match.NameUsageMatch) match.NameUsageMatch {
	res.Diagnostics.MatchType = match.HigherRank
	alts := slices.Concat(
		first.Diagnostics.Alternatives,
		res.Diagnostics.Alternatives,
	)
	setAlternatives(&res, alts)
	return res
}

// nextAboveGenusDiffers compares the query classification and the
// classification of a match at the lowest rank above genus that both have.
func nextAboveGenusDiffers(
	cls usage.Classification,
	m match.NameUsageMatch,
) bool {
	for _, r := range []rank.Rank{
		rank.Family, rank.Order, rank.Class, rank.Phylum, rank.Kingdom,
	} {
		h1 := cls.Get(r)
		h2, _ := m.HigherTaxon(r)
		if h1 != "" && h2.Name != "" {
			return !strings.EqualFold(h1, h2.Name)
		}
	}
	return false
}
