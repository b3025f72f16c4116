// Package htcomp normalizes and compares names of higher taxa. Variant
// spellings and synonyms are resolved with static dictionaries, placeholder
// names such as "Incertae sedis" are ignored.
package htcomp

import (
	"strings"
	"unicode"

	"github.com/gnames/gnmatch/pkg/dict"
	"github.com/gnames/gnmatch/pkg/ent/rank"
)

// Kingdom names known to the comparator.
const (
	Animalia      = "Animalia"
	Archaea       = "Archaea"
	Bacteria      = "Bacteria"
	Chromista     = "Chromista"
	Fungi         = "Fungi"
	Plantae       = "Plantae"
	Protozoa      = "Protozoa"
	Viruses       = "Viruses"
	IncertaeSedis = "Incertae sedis"
)

var kingdoms = []string{
	Animalia, Archaea, Bacteria, Chromista, Fungi, Plantae, Protozoa, Viruses,
	IncertaeSedis,
}

// Comparator resolves higher taxon names. It is immutable after creation
// and safe for concurrent use.
type Comparator struct {
	synonyms  map[rank.Rank]map[string]string
	blacklist map[string]struct{}
	kingdoms  map[string]string
}

// New loads the embedded dictionaries.
func New() (*Comparator, error) {
	res := &Comparator{
		synonyms:  make(map[rank.Rank]map[string]string),
		blacklist: make(map[string]struct{}),
		kingdoms:  make(map[string]string),
	}

	bl, err := dict.Blacklist()
	if err != nil {
		return nil, err
	}
	for _, v := range bl {
		if n, ok := Normalize(v); ok {
			res.blacklist[n] = struct{}{}
		}
	}

	for r := range dict.SynonymFiles {
		pairs, err := dict.Synonyms(r)
		if err != nil {
			return nil, err
		}
		res.setSynonyms(r, pairs)
	}

	for _, k := range kingdoms {
		if n, ok := Normalize(k); ok {
			res.kingdoms[n] = k
		}
	}
	for variant, canonical := range res.synonyms[rank.Kingdom] {
		for _, k := range kingdoms {
			if strings.EqualFold(canonical, k) {
				res.kingdoms[variant] = k
			}
		}
	}
	return res, nil
}

// setSynonyms stores normalized variants. A variant whose canonical value
// is itself a variant of another name is dropped to avoid chains.
func (c *Comparator) setSynonyms(r rank.Rank, pairs []dict.Pair) {
	raw := make(map[string]string, len(pairs))
	for _, p := range pairs {
		v, ok1 := Normalize(p.Variant)
		if _, ok := Normalize(p.Canonical); !ok1 || !ok {
			continue
		}
		raw[v] = p.Canonical
	}
	syn := make(map[string]string, len(raw))
	for k, v := range raw {
		nv, _ := Normalize(v)
		if target, ok := raw[nv]; ok && !strings.EqualFold(target, v) {
			continue
		}
		syn[k] = v
	}
	c.synonyms[r] = syn
}

// Normalize uppercases a name and replaces every run of non-letter
// characters with a single space. It returns false for names without any
// letters.
func Normalize(s string) (string, bool) {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 {
		return "", false
	}
	return strings.ToUpper(strings.Join(words, " ")), true
}

// IsBlacklisted is true for placeholder names that are not taxa.
func (c *Comparator) IsBlacklisted(name string) bool {
	n, ok := Normalize(name)
	if !ok {
		return false
	}
	_, ok = c.blacklist[n]
	return ok
}

// Lookup returns the canonical form of a higher taxon name for a rank, or
// the name itself when the dictionary has no entry for it. Empty and
// blacklisted names return false.
func (c *Comparator) Lookup(name string, r rank.Rank) (string, bool) {
	name = strings.TrimSpace(name)
	n, ok := Normalize(name)
	if !ok {
		return "", false
	}
	if _, ok = c.blacklist[n]; ok {
		return "", false
	}
	if v, ok := c.synonyms[r][n]; ok {
		return v, true
	}
	return name, true
}

// LookupNormalized returns the normalized canonical form of a name, which
// is suitable for equality checks.
func (c *Comparator) LookupNormalized(name string, r rank.Rank) (string, bool) {
	v, ok := c.Lookup(name, r)
	if !ok {
		return "", false
	}
	return Normalize(v)
}

// Equal compares two higher taxon names of the same rank. The second value
// is false if either of the names is missing or blacklisted.
func (c *Comparator) Equal(r rank.Rank, n1, n2 string) (bool, bool) {
	v1, ok1 := c.LookupNormalized(n1, r)
	v2, ok2 := c.LookupNormalized(n2, r)
	if !ok1 || !ok2 {
		return false, false
	}
	return v1 == v2, true
}

// ToKingdom converts a name into one of the known kingdoms. It returns
// false for names that are not kingdoms.
func (c *Comparator) ToKingdom(name string) (string, bool) {
	n, ok := Normalize(name)
	if !ok {
		return "", false
	}
	k, ok := c.kingdoms[n]
	return k, ok
}

// IsInKingdoms checks if a name resolves to one of the given kingdoms.
func (c *Comparator) IsInKingdoms(name string, kk ...string) bool {
	k, ok := c.ToKingdom(name)
	if !ok {
		return false
	}
	for _, v := range kk {
		if k == v {
			return true
		}
	}
	return false
}
