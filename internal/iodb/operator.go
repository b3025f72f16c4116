// Package iodb reads a taxonomic backbone from a gnverifier PostgreSQL
// database using pgxpool.
package iodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gnames/gnmatch/pkg/config"
	"github.com/gnames/gnmatch/pkg/ent/usage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Reader holds a connection pool to a gnverifier database.
type Reader struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to PostgreSQL.
func Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) (*Reader, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	// reading is done by one streaming query
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	return &Reader{pool: pool}, nil
}

// Close releases all database connections.
func (r *Reader) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// Pool returns the underlying pgxpool.Pool.
func (r *Reader) Pool() *pgxpool.Pool {
	return r.pool
}

const usagesQuery = `
SELECT nsi.record_id, COALESCE(nsi.accepted_record_id, ''),
  COALESCE(nsi.taxonomic_status, ''), COALESCE(nsi.rank, ''),
  COALESCE(nsi.code_id, 0)::int, COALESCE(nsi.classification, ''),
  COALESCE(nsi.classification_ids, ''),
  COALESCE(nsi.classification_ranks, ''),
  ns.name, COALESCE(c.name, '')
FROM name_string_indices nsi
  JOIN name_strings ns ON ns.id = nsi.name_string_id
  LEFT JOIN canonicals c ON c.id = ns.canonical_id
WHERE nsi.data_source_id = $1
`

// Usages reads all records of a data source and converts them into name
// usages. Higher taxa that exist only in classification paths are added
// as accepted usages.
func (r *Reader) Usages(
	ctx context.Context,
	dataSourceID int,
	progress func(int),
) ([]usage.NameUsage, error) {
	rows, err := r.pool.Query(ctx, usagesQuery, dataSourceID)
	if err != nil {
		return nil, QueryError(dataSourceID, err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		err = rows.Scan(
			&rec.RecordID, &rec.AcceptedRecordID, &rec.TaxonomicStatus,
			&rec.Rank, &rec.CodeID, &rec.Classification, &rec.ClassificationIDs,
			&rec.ClassificationRanks, &rec.Name, &rec.Canonical,
		)
		if err != nil {
			return nil, QueryError(dataSourceID, err)
		}
		recs = append(recs, rec)
		if progress != nil && len(recs)%100_000 == 0 {
			progress(len(recs))
		}
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError(dataSourceID, err)
	}
	if progress != nil {
		progress(len(recs))
	}

	res := ToUsages(recs)
	slog.Info("Read usages from database",
		"data-source", dataSourceID,
		"records", len(recs),
		"usages", len(res),
	)
	return res, nil
}
