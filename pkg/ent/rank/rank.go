// Package rank provides the ordered list of taxonomic ranks used for
// indexing and scoring. The order of constants matters: distances between
// ranks are computed from their positions.
package rank

import (
	"encoding/json"
	"strings"
)

// Rank is a taxonomic rank. The zero value is Unknown and means that no
// rank was given.
type Rank int

const (
	Unknown Rank = iota
	Superdomain
	Domain
	Subdomain
	Infradomain
	Empire
	Realm
	Subrealm
	Superkingdom
	Kingdom
	Subkingdom
	Infrakingdom
	Superphylum
	Phylum
	Subphylum
	Infraphylum
	Parvphylum
	Microphylum
	Nanophylum
	Claudius
	Gigaclass
	Megaclass
	Superclass
	Class
	Subclass
	Infraclass
	Subterclass
	Parvclass
	Superdivision
	Division
	Subdivision
	Infradivision
	Superlegion
	Legion
	Sublegion
	Infralegion
	Megacohort
	Supercohort
	Cohort
	Subcohort
	Infracohort
	Gigaorder
	Magnorder
	Grandorder
	Mirorder
	Superorder
	Order
	Nanorder
	Hypoorder
	Minorder
	Suborder
	Infraorder
	Parvorder
	SupersectionZoology
	SectionZoology
	SubsectionZoology
	Falanx
	Gigafamily
	Megafamily
	Grandfamily
	Superfamily
	Epifamily
	Family
	Subfamily
	Infrafamily
	Supertribe
	Tribe
	Subtribe
	Infratribe
	SupragenericName
	Supergenus
	Genus
	Subgenus
	Infragenus
	SupersectionBotany
	SectionBotany
	SubsectionBotany
	Superseries
	Series
	Subseries
	InfragenericName
	SpeciesAggregate
	Species
	InfraspecificName
	Grex
	Klepton
	Subspecies
	CultivarGroup
	Convariety
	InfrasubspecificName
	Proles
	Natio
	Aberration
	Morph
	Supervariety
	Variety
	Subvariety
	Superform
	Form
	Subform
	Pathovar
	Biovar
	Chemovar
	Morphovar
	Phagovar
	Serovar
	Chemoform
	FormaSpecialis
	Lusus
	Cultivar
	Mutatio
	Strain
	Other
	Unranked
)

var names = [...]string{
	"", "SUPERDOMAIN", "DOMAIN", "SUBDOMAIN", "INFRADOMAIN", "EMPIRE", "REALM",
	"SUBREALM", "SUPERKINGDOM", "KINGDOM", "SUBKINGDOM", "INFRAKINGDOM",
	"SUPERPHYLUM", "PHYLUM", "SUBPHYLUM", "INFRAPHYLUM", "PARVPHYLUM",
	"MICROPHYLUM", "NANOPHYLUM", "CLAUDIUS", "GIGACLASS", "MEGACLASS",
	"SUPERCLASS", "CLASS", "SUBCLASS", "INFRACLASS", "SUBTERCLASS", "PARVCLASS",
	"SUPERDIVISION", "DIVISION", "SUBDIVISION", "INFRADIVISION", "SUPERLEGION",
	"LEGION", "SUBLEGION", "INFRALEGION", "MEGACOHORT", "SUPERCOHORT", "COHORT",
	"SUBCOHORT", "INFRACOHORT", "GIGAORDER", "MAGNORDER", "GRANDORDER",
	"MIRORDER", "SUPERORDER", "ORDER", "NANORDER", "HYPOORDER", "MINORDER",
	"SUBORDER", "INFRAORDER", "PARVORDER", "SUPERSECTION_ZOOLOGY",
	"SECTION_ZOOLOGY", "SUBSECTION_ZOOLOGY", "FALANX", "GIGAFAMILY",
	"MEGAFAMILY", "GRANDFAMILY", "SUPERFAMILY", "EPIFAMILY", "FAMILY",
	"SUBFAMILY", "INFRAFAMILY", "SUPERTRIBE", "TRIBE", "SUBTRIBE", "INFRATRIBE",
	"SUPRAGENERIC_NAME", "SUPERGENUS", "GENUS", "SUBGENUS", "INFRAGENUS",
	"SUPERSECTION_BOTANY", "SECTION_BOTANY", "SUBSECTION_BOTANY",
	"SUPERSERIES", "SERIES", "SUBSERIES", "INFRAGENERIC_NAME",
	"SPECIES_AGGREGATE", "SPECIES", "INFRASPECIFIC_NAME", "GREX", "KLEPTON",
	"SUBSPECIES", "CULTIVAR_GROUP", "CONVARIETY", "INFRASUBSPECIFIC_NAME",
	"PROLES", "NATIO", "ABERRATION", "MORPH", "SUPERVARIETY", "VARIETY",
	"SUBVARIETY", "SUPERFORM", "FORM", "SUBFORM", "PATHOVAR", "BIOVAR",
	"CHEMOVAR", "MORPHOVAR", "PHAGOVAR", "SEROVAR", "CHEMOFORM",
	"FORMA_SPECIALIS", "LUSUS", "CULTIVAR", "MUTATIO", "STRAIN", "OTHER",
	"UNRANKED",
}

var byName = func() map[string]Rank {
	res := make(map[string]Rank, len(names)+len(abbreviations))
	for i, v := range names {
		if v != "" {
			res[v] = Rank(i)
		}
	}
	for k, v := range abbreviations {
		res[k] = v
	}
	return res
}()

// abbreviations are rank markers as they appear inside scientific names
// and in loosely formatted data.
var abbreviations = map[string]Rank{
	"SP":           Species,
	"SPP":          Species,
	"AGG":          SpeciesAggregate,
	"SSP":          Subspecies,
	"SUBSP":        Subspecies,
	"VAR":          Variety,
	"SUBVAR":       Subvariety,
	"F":            Form,
	"FO":           Form,
	"FORMA":        Form,
	"SUBF":         Subform,
	"CV":           Cultivar,
	"GEN":          Genus,
	"SUBGEN":       Subgenus,
	"SECT":         SectionBotany,
	"SECTION":      SectionBotany,
	"SUBSECT":      SubsectionBotany,
	"SUBSECTION":   SubsectionBotany,
	"SER":          Series,
	"FAM":          Family,
	"SUBFAM":       Subfamily,
	"TRIB":         Tribe,
	"ORD":          Order,
	"CL":           Class,
	"PHYL":         Phylum,
	"DIV":          Division,
	"KINGD":        Kingdom,
	"REG":          Kingdom,
	"PV":           Pathovar,
	"BV":           Biovar,
	"NOTHOSUBSP":   Subspecies,
	"NOTHOVAR":     Variety,
	"INFRASPEC":    InfraspecificName,
	"INFRASP":      InfraspecificName,
	"UNRANKED":     Unranked,
	"NO RANK":      Unranked,
	"NORANK":       Unranked,
	"SPECIES AGGR": SpeciesAggregate,
}

// String returns the upper-case name of the rank. Unknown yields an empty
// string.
func (r Rank) String() string {
	if r < 0 || int(r) >= len(names) {
		return ""
	}
	return names[r]
}

// Parse converts a rank name or abbreviation into a Rank. It is
// case-insensitive, ignores trailing dots and treats spaces and dashes as
// underscores. Unrecognized input returns Unknown.
func Parse(s string) Rank {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return Unknown
	}
	if r, ok := byName[s]; ok {
		return r
	}
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	if r, ok := byName[s]; ok {
		return r
	}
	return Unknown
}

// IsKnown is true when a rank was given.
func (r Rank) IsKnown() bool {
	return r > Unknown && r <= Unranked
}

// IsUncomparable returns true for pseudo-ranks that cannot be placed on the
// scale of ranks.
func (r Rank) IsUncomparable() bool {
	switch r {
	case SupragenericName, InfragenericName, InfraspecificName,
		InfrasubspecificName, Other, Unranked:
		return true
	}
	return false
}

// IsOtherOrUnranked is true for OTHER and UNRANKED.
func (r Rank) IsOtherOrUnranked() bool {
	return r == Other || r == Unranked
}

// IsCultivar is true for ranks governed by the cultivated plants code.
func (r Rank) IsCultivar() bool {
	switch r {
	case Cultivar, CultivarGroup, Grex, Convariety:
		return true
	}
	return false
}

// IsSuprageneric is true for ranks above genus.
func (r Rank) IsSuprageneric() bool {
	return r.IsKnown() && r < Genus
}

// IsInfrageneric is true for ranks between genus and species aggregate.
func (r Rank) IsInfrageneric() bool {
	return r > Genus && r < SpeciesAggregate
}

// IsSupraspecific is true for ranks above species, including aggregates.
func (r Rank) IsSupraspecific() bool {
	return r.IsKnown() && r < Species
}

// IsSpeciesOrBelow is true for species and all infraspecific ranks.
func (r Rank) IsSpeciesOrBelow() bool {
	return r >= Species && !r.IsOtherOrUnranked()
}

// IsInfraspecific is true for ranks below species.
func (r Rank) IsInfraspecific() bool {
	return r > Species && !r.IsOtherOrUnranked()
}

// IsInfrasubspecific is true for ranks below subspecies.
func (r Rank) IsInfrasubspecific() bool {
	return r > Subspecies && !r.IsOtherOrUnranked()
}

// HigherThan is true if r is a higher rank than o. Unknown ranks are never
// higher than anything.
func (r Rank) HigherThan(o Rank) bool {
	return r.IsKnown() && o.IsKnown() && r < o
}

// MarshalJSON renders the rank as its name, or null when unknown.
func (r Rank) MarshalJSON() ([]byte, error) {
	if !r.IsKnown() {
		return []byte("null"), nil
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON reads a rank name.
func (r *Rank) UnmarshalJSON(bs []byte) error {
	var s string
	if string(bs) == "null" {
		*r = Unknown
		return nil
	}
	if err := json.Unmarshal(bs, &s); err != nil {
		return err
	}
	*r = Parse(s)
	return nil
}

// LinneanRanks are the ranks kept in a denormalized classification, from
// the highest to the lowest.
var LinneanRanks = []Rank{
	Kingdom, Phylum, Class, Order, Family, Genus, Subgenus, Species,
}
