// Package nameindex keeps name usages of a backbone in memory and finds
// candidates for a name by exact and fuzzy lookup. The index is built once
// and is read-only afterwards, so concurrent searches need no locking.
package nameindex

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
	"github.com/gnames/gnmatch/pkg/ent/match"
	"github.com/gnames/gnmatch/pkg/ent/usage"
)

// DefaultMaxCandidates limits the number of candidates of a search when no
// limit is given.
const DefaultMaxCandidates = 50

// Doc is an indexed name usage with its denormalized classification.
type Doc struct {
	usage.NameUsage

	// Classification goes from the highest taxon down. For accepted usages
	// it ends with the usage itself, for synonyms with the accepted taxon.
	Classification []usage.RankedName
}

// Candidate is a search hit.
type Candidate struct {
	Doc *Doc

	// Type is Exact when the canonical name equals the searched name
	// case-insensitively, Variant otherwise.
	Type match.Type

	// Distance is the edit distance between the searched name and the
	// canonical name.
	Distance int

	// Similarity is a lexical similarity from 0 to 100.
	Similarity float64
}

// NameIndex finds name usages by name or by key.
type NameIndex struct {
	docs []Doc
	byID map[string]int

	// canonical and scientific name keys to docs
	exact map[string][]int

	// first rune of a key to key length to keys
	buckets map[rune]map[int][]string

	// soundalike form to canonical keys
	sound map[string][]string

	fuzzyPrefix int
}

// Option configures a NameIndex.
type Option func(*NameIndex)

// OptFuzzyPrefix sets how many leading characters have to be equal for a
// fuzzy hit.
func OptFuzzyPrefix(i int) Option {
	return func(ni *NameIndex) {
		if i > 0 {
			ni.fuzzyPrefix = i
		}
	}
}

// New builds an index from name usages. Duplicate keys and usages without
// keys are rejected.
func New(usages []usage.NameUsage, opts ...Option) (*NameIndex, error) {
	res := &NameIndex{
		docs:        make([]Doc, 0, len(usages)),
		byID:        make(map[string]int, len(usages)),
		exact:       make(map[string][]int, len(usages)),
		buckets:     make(map[rune]map[int][]string),
		sound:       make(map[string][]string),
		fuzzyPrefix: 1,
	}
	for _, opt := range opts {
		opt(res)
	}

	for _, u := range usages {
		u.ID = strings.TrimSpace(u.ID)
		if u.ID == "" {
			return nil, MissingIDError(u.ScientificName)
		}
		if _, ok := res.byID[u.ID]; ok {
			return nil, DuplicateIDError(u.ID)
		}
		if u.ParentID == u.ID {
			u.ParentID = ""
		}
		res.byID[u.ID] = len(res.docs)
		res.docs = append(res.docs, Doc{NameUsage: u})
	}

	for i := range res.docs {
		d := &res.docs[i]
		d.Classification = res.denormalize(d.NameUsage)
		res.add(i)
	}
	return res, nil
}

func (ni *NameIndex) add(i int) {
	d := ni.docs[i]
	can := Normalize(d.Name())
	if can == "" {
		return
	}
	if _, ok := ni.exact[can]; !ok {
		r, _ := utf8.DecodeRuneInString(can)
		if ni.buckets[r] == nil {
			ni.buckets[r] = make(map[int][]string)
		}
		l := utf8.RuneCountInString(can)
		ni.buckets[r][l] = append(ni.buckets[r][l], can)
		snd := Soundalike(can)
		ni.sound[snd] = append(ni.sound[snd], can)
	}
	ni.exact[can] = append(ni.exact[can], i)

	sci := Normalize(d.ScientificName)
	if sci != "" && sci != can {
		ni.exact[sci] = append(ni.exact[sci], i)
	}
}

// Len returns the number of indexed usages.
func (ni *NameIndex) Len() int {
	return len(ni.docs)
}

// Usages returns all indexed usages in their original order.
func (ni *NameIndex) Usages() []usage.NameUsage {
	res := make([]usage.NameUsage, len(ni.docs))
	for i := range ni.docs {
		res[i] = ni.docs[i].NameUsage
	}
	return res
}

// GetByUsageKey returns the document for a key.
func (ni *NameIndex) GetByUsageKey(id string) (*Doc, bool) {
	i, ok := ni.byID[strings.TrimSpace(id)]
	if !ok {
		return nil, false
	}
	return &ni.docs[i], true
}

// Normalize lowercases a name and collapses whitespace. The literal "null"
// normalizes to an empty string.
func Normalize(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	if s == "null" {
		return ""
	}
	return s
}

// Search finds candidates for a canonical name. Exact search returns
// usages with the same canonical or scientific name. Fuzzy search adds
// usages within a small edit distance and usages that sound alike.
// Results are sorted by similarity, then by key, and cut to limit entries.
func (ni *NameIndex) Search(name string, fuzzy bool, limit int) []Candidate {
	q := Normalize(name)
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultMaxCandidates
	}

	seen := make(map[int]struct{})
	var res []Candidate
	addKey := func(key string) {
		for _, i := range ni.exact[key] {
			if _, ok := seen[i]; ok {
				continue
			}
			seen[i] = struct{}{}
			res = append(res, ni.candidate(q, i))
		}
	}

	addKey(q)
	if fuzzy {
		for _, key := range ni.fuzzyKeys(q) {
			addKey(key)
		}
	}

	slices.SortFunc(res, func(a, b Candidate) int {
		if c := cmp.Compare(b.Similarity, a.Similarity); c != 0 {
			return c
		}
		return cmp.Compare(a.Doc.ID, b.Doc.ID)
	})
	if len(res) > limit {
		res = res[:limit]
	}
	return res
}

// maxEdits follows the usual fuzzy query setting: one edit for short
// names, two for longer ones.
func maxEdits(q string) int {
	if utf8.RuneCountInString(q) > 10 {
		return 2
	}
	return 1
}

func (ni *NameIndex) fuzzyKeys(q string) []string {
	edits := maxEdits(q)
	l := utf8.RuneCountInString(q)
	r, _ := utf8.DecodeRuneInString(q)
	prefix := q
	if pl := ni.fuzzyPrefix; pl < l {
		prefix = string([]rune(q)[:pl])
	}

	var res []string
	byLen := ni.buckets[r]
	for i := l - edits; i <= l+edits; i++ {
		for _, key := range byLen[i] {
			if key == q || !strings.HasPrefix(key, prefix) {
				continue
			}
			if levenshtein.Distance(q, key, nil) <= edits {
				res = append(res, key)
			}
		}
	}
	for _, key := range ni.sound[Soundalike(q)] {
		if key != q && strings.HasPrefix(key, prefix) {
			res = append(res, key)
		}
	}
	return res
}

func (ni *NameIndex) candidate(q string, i int) Candidate {
	d := &ni.docs[i]
	can := Normalize(d.Name())
	res := Candidate{Doc: d, Type: match.Variant}
	if can == q {
		res.Type = match.Exact
		res.Similarity = 100
		return res
	}
	res.Distance = levenshtein.Distance(q, can, nil)
	res.Similarity = Similarity(q, can)
	return res
}

// Similarity returns the lexical similarity of two names from 0 to 100
// based on their edit distance.
func Similarity(s1, s2 string) float64 {
	s1, s2 = strings.ToLower(s1), strings.ToLower(s2)
	l := max(utf8.RuneCountInString(s1), utf8.RuneCountInString(s2))
	if l == 0 {
		return 0
	}
	d := levenshtein.Distance(s1, s2, nil)
	return 100 * (1 - float64(d)/float64(l))
}
