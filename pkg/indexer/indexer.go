// Package indexer declares how gnmatch builds and restores its indexes.
// Implementations keep the main index and join indexes in a persistent
// store, so a match session does not have to read the sources again.
package indexer

import (
	"context"

	"github.com/gnames/gnmatch/pkg/ent/dataset"
	"github.com/gnames/gnmatch/pkg/matcher"
)

// Indexer builds indexes once and restores them for matching.
// Builds are single-writer steps and must not run while a matcher created
// from the same store answers queries.
type Indexer interface {
	// IndexSFGA reads all taxa and synonyms of an SFGA archive (local path
	// or URL) and saves them as the main index.
	IndexSFGA(ctx context.Context, src string) error

	// IndexDatabase reads a data source of a gnverifier PostgreSQL database
	// and saves its records as the main index.
	IndexDatabase(ctx context.Context) error

	// Join matches every usage of the datasets against the main index and
	// saves the resulting join indexes. Datasets are processed one by one.
	Join(ctx context.Context, dss []dataset.Dataset) error

	// Matcher restores the main index and the join indexes from the store.
	// If keys are given, only join indexes with these keys are loaded.
	Matcher(ctx context.Context, keys ...string) (*matcher.Matcher, error)
}
