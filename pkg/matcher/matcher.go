// Package matcher finds the best usage of a backbone for a scientific name.
// Candidates from the name index are scored by name, authorship,
// classification, rank and status similarity. Ambiguous names are resolved
// to a shared higher taxon or rejected, and names that cannot be matched
// fall back to their genus or classification.
//
// A Matcher is read-only after creation and safe for concurrent use.
package matcher

import (
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnames/gnmatch/pkg/authorship"
	"github.com/gnames/gnmatch/pkg/ent/match"
	"github.com/gnames/gnmatch/pkg/htcomp"
	"github.com/gnames/gnmatch/pkg/joinindex"
	"github.com/gnames/gnmatch/pkg/nameindex"
	"github.com/gnames/gnmatch/pkg/parserpool"
	"github.com/gnames/gnparser/ent/parsed"
)

// DefaultCacheSize is the number of parsed names kept in memory.
const DefaultCacheSize = 10_000

// Matcher matches name queries against a name index.
type Matcher struct {
	idx      *nameindex.NameIndex
	htc      *htcomp.Comparator
	authComp *authorship.Comparator

	pool     parserpool.Pool
	ownsPool bool
	cache    *lru.Cache[string, parsed.Parsed]

	joins []*joinindex.JoinIndex

	maxCandidates int
	cacheSize     int
	jobs          int
	verbose       bool
}

// Option configures a Matcher.
type Option func(*Matcher)

// OptMaxCandidates limits the number of candidates retrieved per name.
func OptMaxCandidates(i int) Option {
	return func(m *Matcher) {
		if i > 0 {
			m.maxCandidates = i
		}
	}
}

// OptCacheSize sets the size of the cache of parsed names.
func OptCacheSize(i int) Option {
	return func(m *Matcher) {
		if i > 0 {
			m.cacheSize = i
		}
	}
}

// OptJobs sets the number of parsers of an internal parser pool.
func OptJobs(i int) Option {
	return func(m *Matcher) {
		if i > 0 {
			m.jobs = i
		}
	}
}

// OptVerbose adds scoring notes and alternatives to every result.
func OptVerbose(b bool) Option {
	return func(m *Matcher) {
		m.verbose = b
	}
}

// OptParserPool shares an existing parser pool. The caller keeps the
// responsibility to close it.
func OptParserPool(p parserpool.Pool) Option {
	return func(m *Matcher) {
		m.pool = p
	}
}

// OptJoinIndexes adds indexes of external identifiers.
func OptJoinIndexes(jis ...*joinindex.JoinIndex) Option {
	return func(m *Matcher) {
		m.joins = append(m.joins, jis...)
	}
}

// New creates a matcher for a populated index.
func New(
	idx *nameindex.NameIndex,
	htc *htcomp.Comparator,
	opts ...Option,
) (*Matcher, error) {
	if idx == nil || idx.Len() == 0 {
		return nil, IndexEmptyError()
	}
	res := &Matcher{
		idx:           idx,
		htc:           htc,
		maxCandidates: nameindex.DefaultMaxCandidates,
		cacheSize:     DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(res)
	}

	if res.htc == nil {
		var err error
		if res.htc, err = htcomp.New(); err != nil {
			return nil, err
		}
	}
	res.authComp = authorship.NewComparator(authorship.DefaultAbbreviations)
	if res.pool == nil {
		res.pool = parserpool.New(res.jobs)
		res.ownsPool = true
	}

	var err error
	if res.cache, err = lru.New[string, parsed.Parsed](res.cacheSize); err != nil {
		return nil, err
	}
	return res, nil
}

// AddJoinIndex adds an index of external identifiers. It must not be
// called while queries run.
func (m *Matcher) AddJoinIndex(ji *joinindex.JoinIndex) {
	m.joins = append(m.joins, ji)
}

// JoinIndexes returns the indexes of external identifiers.
func (m *Matcher) JoinIndexes() []*joinindex.JoinIndex {
	return slices.Clone(m.joins)
}

// Close releases the parser pool created by the matcher.
func (m *Matcher) Close() {
	if m.ownsPool {
		m.pool.Close()
	}
}

// Match resolves a query. A resolvable usage key wins over everything
// else. External identifiers win over names, names are matched by
// classification otherwise. Problems are reported as issues of the result,
// Match never fails.
func (m *Matcher) Match(q match.Query) match.NameUsageMatch {
	var keyNotFound bool
	if q.UsageKey != "" {
		if res, ok := m.byUsageKey(q.UsageKey); ok {
			res.Diagnostics.Note = "All provided names were ignored since " +
				"the usageKey was provided"
			if nameindex.Normalize(q.ScientificName) != "" {
				m.checkNameConsistency(&res, q)
				checkMatchConsistency(&res, m.matchByClassification(q))
			}
			return res
		}
		keyNotFound = true
	}

	res := m.matchByClassification(q)
	if keyNotFound {
		res.Diagnostics.AddIssue(match.TaxonIDNotFound)
	}

	for _, ik := range identifiers(q) {
		idMatch, iss := m.matchByID(ik)
		if idMatch.IsMatch() {
			m.checkNameConsistency(&idMatch, q)
			checkMatchConsistency(&idMatch, res)
			return idMatch
		}
		res.Diagnostics.AddIssue(iss)
	}
	return res
}

// fromDoc converts an index document into a result. Synonyms get their
// accepted usage attached.
func (m *Matcher) fromDoc(d *nameindex.Doc, tp match.Type) match.NameUsageMatch {
	u := d.NameUsage
	res := match.NameUsageMatch{
		Usage:          &u,
		Classification: slices.Clone(d.Classification),
		Diagnostics:    match.Diagnostics{MatchType: tp},
	}
	if ak := u.AcceptedKey(); ak != "" {
		res.Synonym = true
		if acc, ok := m.idx.GetByUsageKey(ak); ok {
			au := acc.NameUsage
			res.AcceptedUsage = &au
		}
	}
	return res
}

// byUsageKey returns an exact match with full confidence for a key of the
// main index.
func (m *Matcher) byUsageKey(key string) (match.NameUsageMatch, bool) {
	d, ok := m.idx.GetByUsageKey(key)
	if !ok {
		return match.NameUsageMatch{}, false
	}
	res := m.fromDoc(d, match.Exact)
	res.Diagnostics.Confidence = 100
	return res, true
}
