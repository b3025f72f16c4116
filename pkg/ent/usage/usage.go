// Package usage describes name usages of a taxonomic backbone: accepted
// taxa and their synonyms together with their parent links.
package usage

import (
	"strings"

	"github.com/gnames/gnmatch/pkg/ent/rank"
)

// Kind distinguishes accepted taxa from synonyms.
type Kind int

const (
	// Taxon is an accepted or provisionally accepted usage.
	Taxon Kind = iota
	// Synonym points to an accepted usage through AcceptedID.
	Synonym
)

// NameUsage is the indexed unit of a backbone.
type NameUsage struct {
	// ID is a backbone key or a dataset-local identifier.
	ID string `json:"key"`

	// ScientificName is the full name string, often with authorship.
	ScientificName string `json:"name"`

	// CanonicalName is the scientific name without authorship.
	CanonicalName string `json:"canonicalName,omitempty"`

	// Authorship is the free-text authorship of the name.
	Authorship string `json:"authorship,omitempty"`

	Rank rank.Rank `json:"rank,omitempty"`

	Status Status `json:"status"`

	// ParentID links to the parent taxon. For synonyms it is the accepted
	// taxon when AcceptedID is empty.
	ParentID string `json:"parentKey,omitempty"`

	// AcceptedID is set for synonyms only.
	AcceptedID string `json:"acceptedKey,omitempty"`

	// Code is the nomenclatural code, when known ("botanical", "zoological",
	// "bacterial", "virus", "cultivars").
	Code string `json:"code,omitempty"`
}

// Kind tells if the usage is a synonym or a taxon.
func (u NameUsage) Kind() Kind {
	if u.Status.IsSynonym() {
		return Synonym
	}
	return Taxon
}

// AcceptedKey returns the key of the accepted usage for synonyms, or an
// empty string for taxa.
func (u NameUsage) AcceptedKey() string {
	if u.Kind() != Synonym {
		return ""
	}
	if u.AcceptedID != "" {
		return u.AcceptedID
	}
	return u.ParentID
}

// Name returns the canonical name, falling back to the scientific name.
func (u NameUsage) Name() string {
	if u.CanonicalName != "" {
		return u.CanonicalName
	}
	return u.ScientificName
}

// RankedName is a single classification entry of a denormalized
// classification.
type RankedName struct {
	Key  string    `json:"key,omitempty"`
	Name string    `json:"name"`
	Rank rank.Rank `json:"rank"`
}

// Classification is a sparse higher classification of a query. Entries are
// free text and can contain authorship.
type Classification struct {
	Kingdom  string `json:"kingdom,omitempty"`
	Phylum   string `json:"phylum,omitempty"`
	Class    string `json:"class,omitempty"`
	Order    string `json:"order,omitempty"`
	Family   string `json:"family,omitempty"`
	Genus    string `json:"genus,omitempty"`
	Subgenus string `json:"subgenus,omitempty"`
	Species  string `json:"species,omitempty"`
}

// Get returns the classification entry for the rank.
func (c Classification) Get(r rank.Rank) string {
	switch r {
	case rank.Kingdom:
		return c.Kingdom
	case rank.Phylum:
		return c.Phylum
	case rank.Class:
		return c.Class
	case rank.Order:
		return c.Order
	case rank.Family:
		return c.Family
	case rank.Genus:
		return c.Genus
	case rank.Subgenus:
		return c.Subgenus
	case rank.Species:
		return c.Species
	}
	return ""
}

// Set assigns a classification entry. Ranks outside of the Linnean ranks
// are ignored.
func (c *Classification) Set(r rank.Rank, name string) {
	name = strings.TrimSpace(name)
	switch r {
	case rank.Kingdom:
		c.Kingdom = name
	case rank.Phylum:
		c.Phylum = name
	case rank.Class:
		c.Class = name
	case rank.Order:
		c.Order = name
	case rank.Family:
		c.Family = name
	case rank.Genus:
		c.Genus = name
	case rank.Subgenus:
		c.Subgenus = name
	case rank.Species:
		c.Species = name
	}
}

// IsEmpty is true when no entry is set.
func (c Classification) IsEmpty() bool {
	return c == Classification{}
}

// FromRankedNames builds a sparse classification out of a denormalized one.
func FromRankedNames(rns []RankedName) Classification {
	var res Classification
	for _, v := range rns {
		if res.Get(v.Rank) == "" {
			res.Set(v.Rank, v.Name)
		}
	}
	return res
}
