package match

import (
	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnmatch/pkg/ent/usage"
)

// Query describes a name to match together with supporting evidence.
// All fields are optional.
type Query struct {
	// UsageKey is a key of the main index. When it resolves, the names of
	// the query are ignored.
	UsageKey string `json:"usageKey,omitempty"`

	// TaxonID, TaxonConceptID and ScientificNameID are external
	// identifiers looked up in join indexes.
	TaxonID          string `json:"taxonId,omitempty"`
	TaxonConceptID   string `json:"taxonConceptId,omitempty"`
	ScientificNameID string `json:"scientificNameId,omitempty"`

	ScientificName string `json:"scientificName,omitempty"`
	Authorship     string `json:"authorship,omitempty"`

	Rank rank.Rank `json:"rank,omitempty"`

	Classification usage.Classification `json:"classification,omitempty"`

	// ExcludeKeys removes candidates that are, or belong to, these keys.
	ExcludeKeys []string `json:"excludeKeys,omitempty"`

	// Strict disables fuzzy matching and higher rank fallbacks.
	Strict bool `json:"strict,omitempty"`

	// Verbose adds alternatives to the result.
	Verbose bool `json:"verbose,omitempty"`
}

// HasIDs is true when any external identifier is given.
func (q Query) HasIDs() bool {
	return q.TaxonID != "" || q.TaxonConceptID != "" ||
		q.ScientificNameID != ""
}
