package iodb

import (
	"strings"

	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnmatch/pkg/ent/usage"
)

// Record is a row of name_string_indices joined with its name string and
// canonical form.
type Record struct {
	RecordID         string
	AcceptedRecordID string
	TaxonomicStatus  string
	Rank             string

	// CodeID: 0-no info, 1-ICZN, 2-ICN, 3-ICNP, 4-ICTV.
	CodeID int

	// Classification, ClassificationIDs and ClassificationRanks are
	// pipe-delimited paths from the root to the record.
	Classification      string
	ClassificationIDs   string
	ClassificationRanks string

	Name      string
	Canonical string
}

var codes = map[int]string{
	1: "zoological",
	2: "botanical",
	3: "bacterial",
	4: "virus",
}

// ToUsages converts records into name usages. A taxon gets its parent
// from the classification path. Synonyms point to their accepted record.
func ToUsages(recs []Record) []usage.NameUsage {
	res := make([]usage.NameUsage, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	for _, v := range recs {
		if v.RecordID == "" {
			continue
		}
		if _, ok := seen[v.RecordID]; ok {
			continue
		}
		seen[v.RecordID] = struct{}{}
		res = append(res, toUsage(v))
	}

	// higher taxa that are only known from classification paths
	for _, v := range recs {
		names, ids, ranks := splitPath(v)
		for i, id := range ids {
			if _, ok := seen[id]; ok || id == "" || names[i] == "" {
				continue
			}
			seen[id] = struct{}{}
			u := usage.NameUsage{
				ID:             id,
				ScientificName: names[i],
				Rank:           rank.Parse(ranks[i]),
				Status:         usage.Accepted,
			}
			if i > 0 {
				u.ParentID = ids[i-1]
			}
			res = append(res, u)
		}
	}
	return res
}

func toUsage(rec Record) usage.NameUsage {
	res := usage.NameUsage{
		ID:             rec.RecordID,
		ScientificName: rec.Name,
		CanonicalName:  rec.Canonical,
		Rank:           rank.Parse(rec.Rank),
		Status:         usage.ParseStatus(rec.TaxonomicStatus),
		Code:           codes[rec.CodeID],
	}

	acc := rec.AcceptedRecordID
	if acc != "" && acc != rec.RecordID {
		res.AcceptedID = acc
		if !res.Status.IsSynonym() {
			res.Status = usage.SynonymStatus
		}
		return res
	}
	if res.Status.IsSynonym() {
		res.Status = usage.ProvisionallyAccepted
	}

	_, ids, _ := splitPath(rec)
	res.ParentID = parentID(rec.RecordID, ids)
	return res
}

// parentID finds the element preceding the record in its classification.
// When the record is not in the path, the path ends at its parent.
func parentID(id string, ids []string) string {
	for i := len(ids) - 1; i >= 0; i-- {
		if ids[i] == id {
			if i == 0 {
				return ""
			}
			return ids[i-1]
		}
	}
	if len(ids) > 0 {
		return ids[len(ids)-1]
	}
	return ""
}

// splitPath returns aligned names, ids and ranks of a classification.
func splitPath(rec Record) (names, ids, ranks []string) {
	if rec.ClassificationIDs == "" {
		return nil, nil, nil
	}
	ids = strings.Split(rec.ClassificationIDs, "|")
	names = align(rec.Classification, len(ids))
	ranks = align(rec.ClassificationRanks, len(ids))
	for i := range ids {
		ids[i] = strings.TrimSpace(ids[i])
		names[i] = strings.TrimSpace(names[i])
	}
	return names, ids, ranks
}

func align(s string, n int) []string {
	res := make([]string, n)
	if s == "" {
		return res
	}
	copy(res, strings.Split(s, "|"))
	return res
}
