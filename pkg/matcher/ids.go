package matcher

import (
	"log/slog"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnmatch/pkg/ent/match"
)

// identifier is an external id of a query with the issues reported when it
// cannot be used.
type identifier struct {
	id       string
	notFound match.Issue
	ignored  match.Issue
}

// identifiers returns external ids of a query in the order they are tried.
func identifiers(q match.Query) []identifier {
	all := []identifier{
		{q.TaxonID, match.TaxonIDNotFound, match.TaxonIDIgnored},
		{q.TaxonConceptID, match.TaxonConceptIDNotFound, match.TaxonConceptIDIgnored},
		{q.ScientificNameID, match.ScientificNameIDNotFound, match.ScientificNameIDIgnored},
	}
	res := make([]identifier, 0, len(all))
	for _, v := range all {
		if v.id = strings.TrimSpace(v.id); v.id != "" {
			res = append(res, v)
		}
	}
	return res
}

// matchByID looks the id up in the first join index whose dataset
// recognizes it. When the id does not lead to a unique usage of the main
// index, the returned issue tells why.
func (m *Matcher) matchByID(ik identifier) (match.NameUsageMatch, match.Issue) {
	for _, ji := range m.joins {
		ds := ji.Dataset()
		key, ok := ds.ExtractKeyForSearch(ik.id)
		if !ok {
			continue
		}

		docs := ji.Lookup(key)
		switch len(docs) {
		case 0:
			slog.Debug("Identifier not found", "id", ik.id, "dataset", ds.Key)
			return match.NoMatch(100, "Identifier not found"), ik.notFound
		case 1:
		default:
			slog.Warn("Multiple usages for identifier", "id", ik.id,
				"dataset", ds.Key)
			return match.NoMatch(100, "Multiple matches found for the identifier"),
				ik.ignored
		}

		res, ok := m.byUsageKey(docs[0].MainKey)
		if !ok {
			slog.Warn("Joined usage is missing in the main index",
				"id", ik.id, "key", docs[0].MainKey, "dataset", ds.Key)
			return match.NoMatch(100,
				"Identifier recognised in "+ds.Key+", but not matching in main index",
			), ik.ignored
		}
		return res, ""
	}
	return match.NoMatch(100, "Identifier not found"), ik.notFound
}

// checkNameConsistency flags an id match whose name differs from the name
// of the query.
func (m *Matcher) checkNameConsistency(idMatch *match.NameUsageMatch, q match.Query) {
	name := clean(q.ScientificName)
	if name == "" || idMatch.Usage == nil {
		return
	}
	can := name
	if p := m.parseName(name, nomcode.Unknown); p.Parsed && p.Canonical != nil {
		can = p.Canonical.Simple
	}
	if !strings.EqualFold(idMatch.Usage.Name(), can) {
		slog.Debug("Inconsistent name for identifier",
			"key", idMatch.Usage.ID, "usage", idMatch.Usage.Name(), "name", name)
		idMatch.Diagnostics.AddIssue(match.ScientificNameAndIDInconsistent)
	}
}

// checkMatchConsistency flags an id match that disagrees with the match by
// name.
func checkMatchConsistency(idMatch *match.NameUsageMatch, nameMatch match.NameUsageMatch) {
	if !idMatch.IsMatch() || !nameMatch.IsMatch() {
		return
	}
	if idMatch.Usage.ID != nameMatch.Usage.ID {
		idMatch.Diagnostics.AddIssue(match.TaxonMatchNameAndIDAmbiguous)
	}
}
