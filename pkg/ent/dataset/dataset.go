// Package dataset describes external sources of identifiers that take part
// in identifier-based matching.
package dataset

import (
	"strings"
)

// Dataset describes one external source of identifiers.
type Dataset struct {
	// Key is the backbone dataset id of the source.
	Key string `yaml:"key" json:"key"`

	// Title is a human-readable name of the dataset.
	Title string `yaml:"title" json:"title,omitempty"`

	// Prefix is the canonical prefix of identifiers, for example
	// "urn:lsid:marinespecies.org:taxname:".
	Prefix string `yaml:"prefix" json:"prefix"`

	// PrefixMapping lists alternative prefixes accepted on input. They are
	// replaced by Prefix before searching.
	PrefixMapping []string `yaml:"prefix_mapping" json:"prefixMapping,omitempty"`

	// RemovePrefixForMatching strips Prefix from identifiers before they
	// are searched in the join index.
	RemovePrefixForMatching bool `yaml:"remove_prefix_for_matching" json:"removePrefixForMatching"`

	// SFGA is a path or URL of the dataset archive used to build its join
	// index.
	SFGA string `yaml:"sfga" json:"sfga,omitempty"`

	// AcceptedOnly skips synonyms of the dataset when building the join
	// index.
	AcceptedOnly bool `yaml:"accepted_only" json:"acceptedOnly,omitempty"`
}

// ExtractKeyForSearch returns the key to search in the join index of the
// dataset. The identifier has to start with Prefix or with one of the
// PrefixMapping entries; the longest matching prefix wins. A mapped prefix
// is replaced by Prefix. If RemovePrefixForMatching is set, the prefix is
// stripped and the bare key is returned. The boolean is false when no
// prefix matched.
func (d Dataset) ExtractKeyForSearch(id string) (string, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", false
	}

	var matched string
	for _, p := range d.prefixes() {
		if strings.HasPrefix(id, p) && len(p) > len(matched) {
			matched = p
		}
	}
	if matched == "" {
		return "", false
	}

	bare := id[len(matched):]
	if bare == "" {
		return "", false
	}
	if d.RemovePrefixForMatching {
		return bare, true
	}
	return d.Prefix + bare, true
}

// JoinKey converts an identifier stored in the dataset itself into the
// form used as a join index key.
func (d Dataset) JoinKey(id string) string {
	if d.RemovePrefixForMatching {
		return strings.TrimPrefix(id, d.Prefix)
	}
	if d.Prefix != "" && !strings.HasPrefix(id, d.Prefix) {
		return d.Prefix + id
	}
	return id
}

func (d Dataset) prefixes() []string {
	res := make([]string, 0, len(d.PrefixMapping)+1)
	if d.Prefix != "" {
		res = append(res, d.Prefix)
	}
	for _, v := range d.PrefixMapping {
		if v != "" {
			res = append(res, v)
		}
	}
	return res
}
