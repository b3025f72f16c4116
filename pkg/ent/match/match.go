// Package match contains the query and the result types of name matching.
package match

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnmatch/pkg/ent/usage"
)

// Type tells how a name was matched.
type Type int

const (
	// None means no usage could be matched.
	None Type = iota
	// Exact is a match of the canonical name without penalties.
	Exact
	// Variant is a fuzzy or otherwise imperfect match of the name.
	Variant
	// HigherRank means the name was only resolved to an ancestor taxon.
	HigherRank
)

var typeNames = [...]string{"NONE", "EXACT", "VARIANT", "HIGHERRANK"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return typeNames[0]
	}
	return typeNames[t]
}

func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Type) UnmarshalJSON(bs []byte) error {
	var s string
	if err := json.Unmarshal(bs, &s); err != nil {
		return err
	}
	*t = None
	for i, v := range typeNames {
		if strings.EqualFold(v, s) {
			*t = Type(i)
		}
	}
	return nil
}

// Issue flags a problem noticed while matching a query.
type Issue string

const (
	TaxonIDNotFound                 Issue = "TAXON_ID_NOT_FOUND"
	TaxonConceptIDNotFound          Issue = "TAXON_CONCEPT_ID_NOT_FOUND"
	ScientificNameIDNotFound        Issue = "SCIENTIFIC_NAME_ID_NOT_FOUND"
	TaxonIDIgnored                  Issue = "TAXON_ID_IGNORED"
	TaxonConceptIDIgnored           Issue = "TAXON_CONCEPT_ID_IGNORED"
	ScientificNameIDIgnored         Issue = "SCIENTIFIC_NAME_ID_IGNORED"
	ScientificNameAndIDInconsistent Issue = "SCIENTIFIC_NAME_AND_ID_INCONSISTENT"
	TaxonMatchNameAndIDAmbiguous    Issue = "TAXON_MATCH_NAME_AND_ID_AMBIGUOUS"
)

// Diagnostics explains a match decision.
type Diagnostics struct {
	MatchType Type `json:"matchType"`

	// Confidence is a normalized score from 0 to 100.
	Confidence int `json:"confidence"`

	Note string `json:"note,omitempty"`

	Issues []Issue `json:"issues,omitempty"`

	// Alternatives are runner-up matches, returned in verbose mode and for
	// ambiguous names.
	Alternatives []NameUsageMatch `json:"alternatives,omitempty"`
}

// AddIssue records an issue once.
func (d *Diagnostics) AddIssue(iss Issue) {
	if !slices.Contains(d.Issues, iss) {
		d.Issues = append(d.Issues, iss)
	}
}

// HasIssue checks if the issue was recorded.
func (d Diagnostics) HasIssue(iss Issue) bool {
	return slices.Contains(d.Issues, iss)
}

// NameUsageMatch is the result of matching a query.
type NameUsageMatch struct {
	// Usage is the matched usage, nil when nothing matched.
	Usage *usage.NameUsage `json:"usage"`

	// Synonym is true when Usage is a synonym.
	Synonym bool `json:"synonym"`

	// AcceptedUsage is set if and only if Usage is a synonym.
	AcceptedUsage *usage.NameUsage `json:"acceptedUsage,omitempty"`

	// Classification is the denormalized classification of the matched
	// usage from kingdom down. For synonyms it ends with the accepted
	// usage.
	Classification []usage.RankedName `json:"classification,omitempty"`

	Diagnostics Diagnostics `json:"diagnostics"`

	// score is the raw score before normalization.
	score int
}

// NoMatch creates an empty result with a given confidence and note.
func NoMatch(confidence int, note string) NameUsageMatch {
	return NameUsageMatch{
		Diagnostics: Diagnostics{
			MatchType:  None,
			Confidence: confidence,
			Note:       note,
		},
	}
}

// IsMatch is true when a usage was matched.
func (m NameUsageMatch) IsMatch() bool {
	return m.Usage != nil && m.Diagnostics.MatchType != None
}

// Score returns the raw score of a candidate.
func (m NameUsageMatch) Score() int {
	return m.score
}

// SetScore sets the raw score of a candidate.
func (m *NameUsageMatch) SetScore(s int) {
	m.score = s
}

// HigherTaxon returns the classification entry for the rank.
func (m NameUsageMatch) HigherTaxon(r rank.Rank) (usage.RankedName, bool) {
	for _, v := range m.Classification {
		if v.Rank == r {
			return v, true
		}
	}
	return usage.RankedName{}, false
}

// HigherKeys returns the keys of all classification entries.
func (m NameUsageMatch) HigherKeys() []string {
	res := make([]string, 0, len(m.Classification))
	for _, v := range m.Classification {
		if v.Key != "" {
			res = append(res, v.Key)
		}
	}
	return res
}

// Clear turns the result into a non-match, keeping diagnostics.
func (m *NameUsageMatch) Clear() {
	m.Usage = nil
	m.AcceptedUsage = nil
	m.Synonym = false
	m.Classification = nil
	m.Diagnostics.MatchType = None
}

// flatRanks are the ranks exported as flat fields in tabular output.
var flatRanks = []rank.Rank{
	rank.Kingdom, rank.Phylum, rank.Class, rank.Order, rank.Family,
	rank.Genus, rank.Subgenus, rank.Species,
}

// Flat returns name/key pairs for every Linnean rank from kingdom to
// species. Missing ranks return empty strings.
func (m NameUsageMatch) Flat() (names, keys []string) {
	names = make([]string, len(flatRanks))
	keys = make([]string, len(flatRanks))
	for i, r := range flatRanks {
		if v, ok := m.HigherTaxon(r); ok {
			names[i] = v.Name
			keys[i] = v.Key
		}
	}
	return names, keys
}

// FlatRanks lists ranks returned by Flat.
func FlatRanks() []rank.Rank {
	return slices.Clone(flatRanks)
}
