package matcher

import (
	"log/slog"
	"strings"

	"github.com/gnames/gnmatch/pkg/ent/match"
	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnmatch/pkg/ent/usage"
)

// higherQueryRanks are classification entries tried when the name itself
// cannot be matched.
// contradiction is the classification similarity at which a usage is
// outside of the lineage of a query: a mismatch of a weighted rank.
const contradiction = -10

var higherQueryRanks = []rank.Rank{
	rank.Species, rank.Genus, rank.Family, rank.Order, rank.Class,
	rank.Phylum, rank.Kingdom,
}

// matchByClassification matches the name of a query supported by its
// rank, authorship and classification. When the name fails and the query
// is not strict, parts of the name and then the classification are tried
// to find at least a higher taxon.
func (m *Matcher) matchByClassification(mq match.Query) match.NameUsageMatch {
	q, noFuzzy := m.parse(mq)
	md := fuzzyMode
	if mq.Strict || noFuzzy {
		md = strictMode
	}
	excl := make(map[string]struct{}, len(mq.ExcludeKeys))
	for _, v := range mq.ExcludeKeys {
		if v = strings.TrimSpace(v); v != "" {
			excl[v] = struct{}{}
		}
	}
	verbose := mq.Verbose || m.verbose

	first := m.match(q, md, excl, verbose)

	// a fuzzy hit in another genus and lineage is less likely than the
	// genus of the query
	if first.Diagnostics.MatchType == match.Variant &&
		first.Usage.Rank.IsSpeciesOrBelow() &&
		q.parsed &&
		!strings.HasPrefix(first.Usage.Name(), q.genus+" ") &&
		nextAboveGenusDiffers(q.cls, first) {
		gq := q.sub(q.genus, rank.Genus)
		gm := m.match(gq, higherMode, excl, verbose)
		if gm.IsMatch() && gm.Usage.Rank == rank.Genus {
			return higherMatch(gm, first)
		}
	}

	if first.IsMatch() || mq.Strict {
		return first
	}

	var supragenericOnly bool
	if q.parsed && q.genus != "" {
		if q.epithet != "" || belowGenus(q.rank) {
			if q.epithet != "" && (q.infraEpithet != "" || q.rank.IsInfraspecific()) {
				sq := q.sub(q.genus+" "+q.epithet, rank.Species)
				if res := m.match(sq, fuzzyMode, excl, verbose); res.IsMatch() {
					return higherMatch(res, first)
				}
			}

			// the first word is not always a genus, e.g. "Chaetognatha
			// eyecount", so its rank stays open
			gq := q.sub(q.genus, rank.Unknown)
			if res := m.match(gq, higherMode, excl, verbose); res.IsMatch() {
				return higherMatch(res, first)
			}
			supragenericOnly = true
		}
	}

	// the backbone knows the name, but not in the lineage of the query,
	// a higher taxon from that lineage would be a wrong answer
	if m.contradicted(q) {
		return noMatch(q, md, first)
	}

	for _, r := range higherQueryRanks {
		if supragenericOnly && !r.IsSuprageneric() {
			continue
		}
		name := q.cls.Get(r)
		if name == "" {
			continue
		}
		hq := q.sub(name, r)
		hq.kind = unknownKind
		if res := m.match(hq, higherMode, excl, verbose); res.IsMatch() {
			return higherMatch(res, first)
		}
	}

	return noMatch(q, md, first)
}

// noMatch reports a failed match with the note, issues and alternatives
// of the first attempt.
func noMatch(q *query, md mode, first match.NameUsageMatch) match.NameUsageMatch {
	slog.Debug("No match", "name", q.canonical, "mode", md.String())
	d := first.Diagnostics
	res := match.NoMatch(d.Confidence, d.Note)
	res.Diagnostics.Issues = d.Issues
	res.Diagnostics.Alternatives = d.Alternatives
	return res
}

// contradicted is true when exact usages of the query name exist and all
// of them conflict with the classification of the query.
func (m *Matcher) contradicted(q *query) bool {
	if q.cls.IsEmpty() {
		return false
	}
	var exact bool
	for _, c := range m.queryIndex(q.canonical, q.rank, false) {
		if c.Diagnostics.MatchType != match.Exact {
			continue
		}
		exact = true
		ref := usage.FromRankedNames(c.Classification)
		if m.classificationSimilarity(q.cls, ref) > contradiction {
			return false
		}
	}
	return exact
}

// sub creates a query for a part of the name or for a higher taxon. Such
// queries carry no authorship.
func (q *query) sub(name string, r rank.Rank) *query {
	return &query{
		canonical: name,
		rank:      r,
		kind:      q.kind,
		cls:       q.cls,
	}
}

func belowGenus(r rank.Rank) bool {
	return r.IsKnown() && r > rank.Genus && !r.IsOtherOrUnranked()
}
