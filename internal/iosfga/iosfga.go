// Package iosfga reads name usages out of SFGA archives. SFGA is the
// SQLite flavour of the CoLDP format, its taxon, synonym and name tables
// give a complete backbone or a dataset with its own identifiers.
package iosfga

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gnames/gnlib"
	"github.com/gnames/gnmatch/pkg/config"
	"github.com/gnames/gnmatch/pkg/ent/rank"
	"github.com/gnames/gnmatch/pkg/ent/usage"
	"github.com/gnames/gnmatch/pkg/parserpool"
	"github.com/gnames/gnsys"
	"github.com/sfborg/sflib"
	"golang.org/x/sync/errgroup"

	_ "modernc.org/sqlite"
)

// Fetch downloads or copies an SFGA archive from a path or URL into
// cacheDir, unpacks it and returns the path of its SQLite file. The
// cache directory is cleaned first.
func Fetch(src, cacheDir string) (string, error) {
	if err := gnsys.MakeDir(cacheDir); err != nil {
		return "", SFGAFetchError(src, err)
	}
	if err := gnsys.CleanDir(cacheDir); err != nil {
		return "", SFGAFetchError(src, err)
	}

	arc := sflib.NewSfga()
	if err := arc.Fetch(src, cacheDir); err != nil {
		return "", SFGAFetchError(src, err)
	}

	res := arc.DbPath()
	if res == "" {
		return "", SFGAFetchError(src, errors.New("no SQLite file in archive"))
	}
	return res, nil
}

// Open opens an SFGA SQLite file and checks its version.
func Open(path string) (*sql.DB, error) {
	exists, err := gnsys.FileExists(path)
	if err != nil {
		return nil, SFGAReadError(path, err)
	}
	if !exists {
		return nil, SFGAReadError(path, errors.New("file does not exist"))
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, SFGAReadError(path, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, SFGAReadError(path, err)
	}

	if err = CheckVersion(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// CheckVersion makes sure the SFGA schema is not older than
// config.MinVersionSFGA.
func CheckVersion(db *sql.DB) error {
	var version string
	err := db.QueryRow("SELECT ID FROM VERSION LIMIT 1").Scan(&version)
	if err != nil {
		return SFGAVersionError("", err)
	}
	if !gnlib.IsVersion(version) {
		return SFGAVersionError(version, errors.New("not a version string"))
	}
	if gnlib.CmpVersion(version, config.MinVersionSFGA) < 0 {
		return SFGAVersionError(version,
			fmt.Errorf("version is older than %s", config.MinVersionSFGA))
	}
	return nil
}

// Reader converts rows of an SFGA database into name usages.
type Reader struct {
	db       *sql.DB
	pool     parserpool.Pool
	jobs     int
	progress func(int)
}

// Option configures a Reader.
type Option func(*Reader)

// OptJobs sets the number of parsing workers.
func OptJobs(i int) Option {
	return func(r *Reader) {
		if i > 0 {
			r.jobs = i
		}
	}
}

// OptProgress sets a callback that gets the number of usages read so
// far. It is called from one goroutine.
func OptProgress(f func(int)) Option {
	return func(r *Reader) {
		r.progress = f
	}
}

// NewReader creates a Reader. Names are parsed with the pool to get
// their canonical forms.
func NewReader(db *sql.DB, pool parserpool.Pool, opts ...Option) *Reader {
	res := &Reader{db: db, pool: pool, jobs: 1}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Count returns the number of taxa and synonyms in the database.
func (r *Reader) Count(ctx context.Context) (int, error) {
	var taxa, syns int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM taxon").Scan(&taxa)
	if err != nil {
		return 0, SFGAReadError("taxon", err)
	}
	err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM synonym").Scan(&syns)
	if err != nil {
		return 0, SFGAReadError("synonym", err)
	}
	return taxa + syns, nil
}

// row is a taxon or synonym joined with its name.
type row struct {
	id, parentID, acceptedID string
	status, name, authorship string
	rankID, codeID           string
	synonym                  bool
}

const taxaQuery = `
SELECT t.col__id, COALESCE(t.col__parent_id, ''), '',
  COALESCE(t.col__status_id, ''), n.col__scientific_name,
  COALESCE(n.col__authorship, ''), COALESCE(n.col__rank_id, ''),
  COALESCE(n.col__code_id, '')
FROM taxon t
  JOIN name n ON n.col__id = t.col__name_id
`

// Synonyms of CoLDP can come without an ID.
const synonymsQuery = `
SELECT COALESCE(NULLIF(s.col__id, ''),
    'syn:' || s.col__name_id || ':' || s.col__taxon_id),
  '', s.col__taxon_id, COALESCE(s.col__status_id, ''),
  n.col__scientific_name, COALESCE(n.col__authorship, ''),
  COALESCE(n.col__rank_id, ''), COALESCE(n.col__code_id, '')
FROM synonym s
  JOIN name n ON n.col__id = s.col__name_id
`

// Usages reads all taxa and synonyms. Synonyms keep their accepted
// taxon in AcceptedID.
func (r *Reader) Usages(ctx context.Context) ([]usage.NameUsage, error) {
	chIn := make(chan row)
	chOut := make(chan usage.NameUsage)

	g, ctx := errgroup.WithContext(ctx)
	var wg sync.WaitGroup

	for range r.jobs {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return r.worker(ctx, chIn, chOut)
		})
	}

	go func() {
		wg.Wait()
		close(chOut)
	}()

	var res []usage.NameUsage
	g.Go(func() error {
		for u := range chOut {
			res = append(res, u)
			if r.progress != nil && len(res)%10_000 == 0 {
				r.progress(len(res))
			}
		}
		return nil
	})

	g.Go(func() error {
		defer close(chIn)
		if err := r.readRows(ctx, taxaQuery, false, chIn); err != nil {
			return err
		}
		return r.readRows(ctx, synonymsQuery, true, chIn)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if r.progress != nil {
		r.progress(len(res))
	}
	slog.Info("Read usages from SFGA", "count", len(res))
	return res, nil
}

func (r *Reader) readRows(
	ctx context.Context,
	query string,
	synonym bool,
	chIn chan<- row,
) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return SFGAReadError(tableName(synonym), err)
	}
	defer rows.Close()

	for rows.Next() {
		rw := row{synonym: synonym}
		err = rows.Scan(
			&rw.id, &rw.parentID, &rw.acceptedID, &rw.status,
			&rw.name, &rw.authorship, &rw.rankID, &rw.codeID,
		)
		if err != nil {
			return SFGAReadError(tableName(synonym), err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case chIn <- rw:
		}
	}
	if err = rows.Err(); err != nil {
		return SFGAReadError(tableName(synonym), err)
	}
	return nil
}

func tableName(synonym bool) string {
	if synonym {
		return "synonym"
	}
	return "taxon"
}

func (r *Reader) worker(
	ctx context.Context,
	chIn <-chan row,
	chOut chan<- usage.NameUsage,
) error {
	for rw := range chIn {
		u := r.toUsage(rw)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- u:
		}
	}
	return nil
}

func (r *Reader) toUsage(rw row) usage.NameUsage {
	name := strings.TrimSpace(rw.name)
	auth := strings.TrimSpace(rw.authorship)
	sciName := name
	if auth != "" && !strings.HasSuffix(name, auth) {
		sciName = name + " " + auth
	}

	code := strings.ToLower(rw.codeID)
	res := usage.NameUsage{
		ID:             rw.id,
		ScientificName: sciName,
		Authorship:     auth,
		Rank:           rank.Parse(rw.rankID),
		Status:         usage.ParseStatus(rw.status),
		Code:           code,
	}
	if rw.parentID != rw.id {
		res.ParentID = rw.parentID
	}

	if rw.synonym {
		res.AcceptedID = rw.acceptedID
		if !res.Status.IsSynonym() {
			res.Status = usage.SynonymStatus
		}
	} else if res.Status.IsSynonym() {
		// a synonym in the taxon table still has to be a taxon
		res.Status = usage.ProvisionallyAccepted
	}

	p := r.pool.Parse(sciName, parserpool.Code(code))
	if p.Parsed && p.Canonical != nil {
		res.CanonicalName = p.Canonical.Simple
	}
	return res
}

