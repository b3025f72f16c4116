// Package ioindex implements indexer.Indexer. It reads backbones from
// SFGA archives or a gnverifier database, builds join indexes and keeps
// everything in the badger store of iostore.
package ioindex

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmatch/internal/iodb"
	"github.com/gnames/gnmatch/internal/iosfga"
	"github.com/gnames/gnmatch/internal/iostore"
	"github.com/gnames/gnmatch/pkg/config"
	"github.com/gnames/gnmatch/pkg/ent/dataset"
	"github.com/gnames/gnmatch/pkg/ent/usage"
	"github.com/gnames/gnmatch/pkg/htcomp"
	"github.com/gnames/gnmatch/pkg/indexer"
	"github.com/gnames/gnmatch/pkg/joinindex"
	"github.com/gnames/gnmatch/pkg/matcher"
	"github.com/gnames/gnmatch/pkg/nameindex"
	"github.com/gnames/gnmatch/pkg/parserpool"
)

type ioindex struct {
	cfg   *config.Config
	store *iostore.Store

	// quiet disables progress bars.
	quiet bool
}

// Option configures the indexer.
type Option func(*ioindex)

// OptQuiet disables progress bars.
func OptQuiet(b bool) Option {
	return func(ix *ioindex) {
		ix.quiet = b
	}
}

// New creates an Indexer that works with the given store.
func New(
	cfg *config.Config,
	st *iostore.Store,
	opts ...Option,
) indexer.Indexer {
	res := &ioindex{cfg: cfg, store: st}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// IndexSFGA reads the main index out of an SFGA archive.
func (ix *ioindex) IndexSFGA(ctx context.Context, src string) error {
	start := time.Now()
	pool := parserpool.New(ix.cfg.JobsNumber)
	defer pool.Close()

	dir := filepath.Join(config.SFGADir(ix.cfg.HomeDir), "main")
	us, err := ix.readSFGA(ctx, src, dir, pool)
	if err != nil {
		return err
	}
	return ix.saveMain(src, us, start)
}

// IndexDatabase reads the main index out of a gnverifier database.
func (ix *ioindex) IndexDatabase(ctx context.Context) error {
	start := time.Now()
	db := ix.cfg.Database
	r, err := iodb.Connect(ctx, &db)
	if err != nil {
		return err
	}
	defer r.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		db.User, db.Host, db.Port, db.Database)

	bar := ix.progressBar(0, "Reading records: ")
	us, err := r.Usages(ctx, db.DataSourceID, bar.set)
	bar.finish()
	if err != nil {
		return err
	}

	src := fmt.Sprintf("postgres://%s:%d/%s?data_source_id=%d",
		db.Host, db.Port, db.Database, db.DataSourceID)
	return ix.saveMain(src, us, start)
}

func (ix *ioindex) saveMain(
	src string,
	us []usage.NameUsage,
	start time.Time,
) error {
	// the index rejects duplicate or empty keys, so a broken backbone
	// never reaches the store
	if _, err := nameindex.New(us); err != nil {
		return err
	}
	if err := ix.store.SaveUsages(src, us); err != nil {
		return err
	}

	dur := time.Since(start)
	slog.Info("Main index is ready",
		"source", src,
		"usages", len(us),
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	gn.Info("Indexed <em>%s</em> usages from <em>%s</em> in %s",
		humanize.Comma(int64(len(us))), src, gnfmt.TimeString(dur.Seconds()))
	return nil
}

// Join builds join indexes. A failed dataset stops the process, join
// indexes of datasets processed before it stay in the store.
func (ix *ioindex) Join(ctx context.Context, dss []dataset.Dataset) error {
	pool := parserpool.New(ix.cfg.JobsNumber)
	defer pool.Close()

	// join indexes are built against the main index only
	m, err := ix.matcher(ctx, nil, matcher.OptParserPool(pool))
	if err != nil {
		return err
	}
	defer m.Close()

	for _, ds := range dss {
		if ds.SFGA == "" {
			return DatasetSourceError(ds.Key)
		}
		start := time.Now()
		gn.Info("Processing dataset <em>%s</em> (%s)", ds.Key, ds.Title)

		dir := filepath.Join(config.SFGADir(ix.cfg.HomeDir), ds.Key)
		us, err := ix.readSFGA(ctx, ds.SFGA, dir, pool)
		if err != nil {
			return err
		}

		ji, err := ix.join(ctx, m, ds, us)
		if err != nil {
			return err
		}
		if err = ix.store.SaveJoinIndex(ds.SFGA, ji); err != nil {
			return err
		}
		gn.Info("Dataset <em>%s</em> is joined in %s", ds.Key,
			gnfmt.TimeString(time.Since(start).Seconds()))
	}
	return nil
}

func (ix *ioindex) join(
	ctx context.Context,
	m joinindex.Matcher,
	ds dataset.Dataset,
	us []usage.NameUsage,
) (*joinindex.JoinIndex, error) {
	bar := ix.progressBar(len(us), "Joining usages: ")
	ji, stats, err := joinindex.Build(ctx, m, ds, us,
		joinindex.OptJobs(ix.cfg.JobsNumber),
		joinindex.OptBatchSize(ix.cfg.BatchSize),
		joinindex.OptProgress(bar.set),
	)
	bar.finish()
	if err != nil {
		return nil, err
	}

	slog.Info("Join index is built",
		"dataset", ds.Key,
		"total", stats.Total,
		"matched", stats.Matched,
		"mainKeys", stats.MainKeys,
		"keys", ji.Len(),
	)
	gn.Info("Matched <em>%s</em> out of <em>%s</em> usages of <em>%s</em> "+
		"to <em>%s</em> main index usages",
		humanize.Comma(int64(stats.Matched)),
		humanize.Comma(int64(stats.Total)),
		ds.Key,
		humanize.Comma(int64(stats.MainKeys)),
	)
	return ji, nil
}

// Matcher restores a matcher from the store. Without keys all stored
// join indexes are loaded.
func (ix *ioindex) Matcher(
	ctx context.Context,
	keys ...string,
) (*matcher.Matcher, error) {
	jis, err := ix.joinIndexes(ctx, keys)
	if err != nil {
		return nil, err
	}
	return ix.matcher(ctx, jis)
}

func (ix *ioindex) matcher(
	ctx context.Context,
	jis []*joinindex.JoinIndex,
	opts ...matcher.Option,
) (*matcher.Matcher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	us, meta, err := ix.store.Usages()
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded main index",
		"source", meta.Source,
		"usages", meta.Count,
		"created", meta.Created.Format(time.RFC3339),
	)

	idx, err := nameindex.New(us,
		nameindex.OptFuzzyPrefix(ix.cfg.Match.FuzzyPrefix))
	if err != nil {
		return nil, err
	}

	htc, err := htcomp.New()
	if err != nil {
		return nil, err
	}

	opts = append([]matcher.Option{
		matcher.OptMaxCandidates(ix.cfg.Match.MaxCandidates),
		matcher.OptCacheSize(ix.cfg.Match.CacheSize),
		matcher.OptJobs(ix.cfg.JobsNumber),
		matcher.OptVerbose(ix.cfg.Match.Verbose),
		matcher.OptJoinIndexes(jis...),
	}, opts...)
	return matcher.New(idx, htc, opts...)
}

func (ix *ioindex) joinIndexes(
	ctx context.Context,
	keys []string,
) ([]*joinindex.JoinIndex, error) {
	stored, err := ix.store.JoinKeys()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		keys = stored
	}

	var res []*joinindex.JoinIndex
	for _, k := range keys {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if !slices.Contains(stored, k) {
			return nil, iostore.StoreEmptyError("join/" + k)
		}
		ji, meta, err := ix.store.JoinIndex(k)
		if err != nil {
			return nil, err
		}
		slog.Info("Loaded join index", "dataset", k, "docs", meta.Count)
		res = append(res, ji)
	}
	return res, nil
}

func (ix *ioindex) readSFGA(
	ctx context.Context,
	src, dir string,
	pool parserpool.Pool,
) ([]usage.NameUsage, error) {
	path, err := iosfga.Fetch(src, dir)
	if err != nil {
		return nil, err
	}
	db, err := iosfga.Open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	r := iosfga.NewReader(db, pool, iosfga.OptJobs(ix.cfg.JobsNumber))
	total, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}

	bar := ix.progressBar(total, "Reading usages: ")
	r = iosfga.NewReader(db, pool,
		iosfga.OptJobs(ix.cfg.JobsNumber),
		iosfga.OptProgress(bar.set),
	)
	res, err := r.Usages(ctx)
	bar.finish()
	return res, err
}
