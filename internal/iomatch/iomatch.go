// Package iomatch matches names from files or standard input in
// parallel and prints results as JSON, CSV or TSV.
package iomatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmatch/pkg/config"
	"github.com/gnames/gnmatch/pkg/ent/match"
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Matcher resolves a query against the main index.
type Matcher interface {
	Match(q match.Query) match.NameUsageMatch
}

// Stats summarizes a batch run.
type Stats struct {
	// Run identifies the batch run in logs and reports.
	Run     string
	Total   int
	Matched int
}

// Batch matches queries with several workers. Results keep the order of
// the input.
type Batch struct {
	m         Matcher
	jobs      int
	batchSize int
	format    string
	strict    bool
	verbose   bool
}

// New creates a Batch that takes workers, batch size, output format and
// matching flags from the configuration.
func New(m Matcher, cfg *config.Config) *Batch {
	return &Batch{
		m:         m,
		jobs:      max(cfg.JobsNumber, 1),
		batchSize: max(cfg.BatchSize, 1),
		format:    cfg.Format,
		strict:    cfg.Match.Strict,
		verbose:   cfg.Match.Verbose,
	}
}

// MatchQuery matches a single query. Authorship can be a part of the
// scientific name.
func (b *Batch) MatchQuery(q match.Query) Output {
	q.ScientificName = strings.TrimSpace(q.ScientificName)
	in := Input{
		ID:    gnuuid.New(q.ScientificName).String(),
		Query: q,
	}
	return b.output(in)
}

// Write prints outputs in the format of the batch.
func (b *Batch) Write(w io.Writer, outs []Output) error {
	return Write(w, b.format, outs)
}

// Run reads queries from r, matches them and writes results to w. Queries
// are processed in chunks of the batch size, so memory use does not grow
// with the input.
func (b *Batch) Run(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	stats := Stats{Run: uuid.NewString()}
	run := stats.Run
	start := time.Now()
	slog.Info("Batch matching started", "run", run, "jobs", b.jobs)

	rd := newReader(r)
	wr := newWriter(w, b.format)
	if err := wr.header(); err != nil {
		return stats, err
	}

	flush := func(chunk []Input) error {
		outs, err := b.matchChunk(ctx, chunk)
		if err != nil {
			return err
		}
		for _, o := range outs {
			stats.Total++
			if o.IsMatch() {
				stats.Matched++
			}
		}
		slog.Debug("Chunk matched", "run", run, "total", stats.Total)
		return wr.write(outs)
	}

	chunk := make([]Input, 0, b.batchSize)
	for {
		in, err := rd.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}
		chunk = append(chunk, in)
		if len(chunk) < b.batchSize {
			continue
		}
		if err = flush(chunk); err != nil {
			return stats, err
		}
		chunk = chunk[:0]
	}
	if len(chunk) > 0 {
		if err := flush(chunk); err != nil {
			return stats, err
		}
	}

	slog.Info("Batch matching finished",
		"run", run,
		"total", stats.Total,
		"matched", stats.Matched,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return stats, nil
}

func (b *Batch) matchChunk(ctx context.Context, ins []Input) ([]Output, error) {
	res := make([]Output, len(ins))
	chIdx := make(chan int)
	g, ctx := errgroup.WithContext(ctx)

	for range min(b.jobs, len(ins)) {
		g.Go(func() error {
			for i := range chIdx {
				res[i] = b.output(ins[i])
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(chIdx)
		for i := range ins {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIdx <- i:
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (b *Batch) output(in Input) Output {
	q := in.Query
	q.Strict = q.Strict || b.strict
	q.Verbose = q.Verbose || b.verbose
	return Output{
		Index:          in.Index,
		ID:             in.ID,
		InputName:      q.ScientificName,
		NameUsageMatch: b.m.Match(q),
	}
}
