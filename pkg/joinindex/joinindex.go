// Package joinindex maps identifiers of an external dataset to keys of the
// main index. The mapping is created by matching every usage of the
// dataset against the main index by name and classification.
package joinindex

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/gnames/gnmatch/pkg/ent/dataset"
	"github.com/gnames/gnmatch/pkg/ent/match"
	"github.com/gnames/gnmatch/pkg/ent/usage"
	"github.com/gnames/gnmatch/pkg/nameindex"
	"golang.org/x/sync/errgroup"
)

// Matcher resolves a query against the main index.
type Matcher interface {
	Match(q match.Query) match.NameUsageMatch
}

// Doc links an identifier of a dataset to a usage of the main index.
type Doc struct {
	// JoinKey is the identifier of the dataset in its searchable form.
	JoinKey string

	// ScientificName is the name of the dataset usage.
	ScientificName string

	// MainKey is the key of the matched usage, or of its accepted usage
	// when the match is a synonym.
	MainKey string

	// Classification is the resolved classification of MainKey in the main
	// index, without MainKey itself.
	Classification []usage.RankedName
}

// JoinIndex is a read-only lookup of identifiers of one dataset.
type JoinIndex struct {
	ds   dataset.Dataset
	docs map[string][]Doc
}

// Stats summarizes a build.
type Stats struct {
	// Total is the number of dataset usages considered.
	Total int
	// Matched is the number of usages resolved in the main index.
	Matched int
	// MainKeys is the number of distinct main index usages hit.
	MainKeys int
}

// Option configures a build.
type Option func(*builder)

type builder struct {
	jobs      int
	batchSize int
	progress  func(int)
}

// OptJobs sets the number of concurrent workers.
func OptJobs(i int) Option {
	return func(b *builder) {
		if i > 0 {
			b.jobs = i
		}
	}
}

// OptBatchSize sets how many usages a worker gets at once.
func OptBatchSize(i int) Option {
	return func(b *builder) {
		if i > 0 {
			b.batchSize = i
		}
	}
}

// OptProgress sets a callback receiving the number of processed usages
// after every batch.
func OptProgress(f func(int)) Option {
	return func(b *builder) {
		b.progress = f
	}
}

// New creates a join index from existing documents, for example restored
// from a snapshot.
func New(ds dataset.Dataset, docs []Doc) *JoinIndex {
	res := &JoinIndex{ds: ds, docs: make(map[string][]Doc, len(docs))}
	for _, d := range docs {
		res.docs[d.JoinKey] = append(res.docs[d.JoinKey], d)
	}
	return res
}

// Build matches all usages of a dataset against the main index in strict
// mode. Usages that do not match, or match only a higher rank, are counted
// but not indexed. With AcceptedOnly set on the dataset synonyms are
// skipped.
func Build(
	ctx context.Context,
	m Matcher,
	ds dataset.Dataset,
	src []usage.NameUsage,
	opts ...Option,
) (*JoinIndex, Stats, error) {
	var stats Stats
	b := builder{jobs: 4, batchSize: 10_000}
	for _, opt := range opts {
		opt(&b)
	}

	// the dataset hierarchy provides classifications of its usages
	hier, err := nameindex.New(src)
	if err != nil {
		return nil, stats, BuildError(ds.Key, err)
	}

	var total, matched, processed atomic.Int64
	var mu sync.Mutex
	res := &JoinIndex{ds: ds, docs: make(map[string][]Doc)}
	mainKeys := make(map[string]struct{})

	chIn := make(chan []usage.NameUsage)
	g, ctx := errgroup.WithContext(ctx)

	for range b.jobs {
		g.Go(func() error {
			for batch := range chIn {
				var docs []Doc
				for _, u := range batch {
					if ds.AcceptedOnly && u.Kind() == usage.Synonym {
						continue
					}
					total.Add(1)
					d, ok := joinDoc(m, ds, hier, u)
					if !ok {
						continue
					}
					matched.Add(1)
					docs = append(docs, d)
				}
				mu.Lock()
				for _, d := range docs {
					res.docs[d.JoinKey] = append(res.docs[d.JoinKey], d)
					mainKeys[d.MainKey] = struct{}{}
				}
				mu.Unlock()
				n := processed.Add(int64(len(batch)))
				if b.progress != nil {
					b.progress(int(n))
				}
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(chIn)
		for batch := range slices.Chunk(src, b.batchSize) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- batch:
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, stats, BuildError(ds.Key, err)
	}

	for k := range res.docs {
		slices.SortFunc(res.docs[k], func(a, b Doc) int {
			return cmp.Compare(a.MainKey, b.MainKey)
		})
	}

	stats.Total = int(total.Load())
	stats.Matched = int(matched.Load())
	stats.MainKeys = len(mainKeys)
	return res, stats, nil
}

func joinDoc(
	m Matcher,
	ds dataset.Dataset,
	hier *nameindex.NameIndex,
	u usage.NameUsage,
) (Doc, bool) {
	var res Doc
	var cls usage.Classification
	if d, ok := hier.GetByUsageKey(u.ID); ok {
		rns := d.Classification
		if u.Kind() == usage.Taxon && len(rns) > 0 {
			// the usage itself is not part of its classification
			rns = rns[:len(rns)-1]
		}
		cls = usage.FromRankedNames(rns)
	}

	name := u.ScientificName
	if name == "" {
		name = u.CanonicalName
	}
	q := match.Query{
		ScientificName: name,
		Authorship:     u.Authorship,
		Rank:           u.Rank,
		Classification: cls,
		Strict:         true,
	}
	nm := m.Match(q)
	if !nm.IsMatch() || nm.Diagnostics.MatchType == match.HigherRank {
		return res, false
	}

	mainKey := nm.Usage.ID
	if nm.AcceptedUsage != nil {
		mainKey = nm.AcceptedUsage.ID
	}
	var chain []usage.RankedName
	for _, v := range nm.Classification {
		if v.Key != mainKey {
			chain = append(chain, v)
		}
	}
	res = Doc{
		JoinKey:        ds.JoinKey(u.ID),
		ScientificName: name,
		MainKey:        mainKey,
		Classification: chain,
	}
	return res, true
}

// Dataset returns the dataset of the index.
func (ji *JoinIndex) Dataset() dataset.Dataset {
	return ji.ds
}

// Len returns the number of indexed identifiers.
func (ji *JoinIndex) Len() int {
	return len(ji.docs)
}

// Docs returns all documents ordered by join key.
func (ji *JoinIndex) Docs() []Doc {
	keys := make([]string, 0, len(ji.docs))
	for k := range ji.docs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var res []Doc
	for _, k := range keys {
		res = append(res, ji.docs[k]...)
	}
	return res
}

// Lookup returns the documents for a key already extracted with
// dataset.ExtractKeyForSearch.
func (ji *JoinIndex) Lookup(key string) []Doc {
	return ji.docs[key]
}
