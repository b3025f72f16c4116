// Package iostore keeps snapshots of the main name index and of join
// indexes in a Badger v4 key-value store, so matching can start without
// rereading the backbone. Values are GOB-encoded batches.
package iostore

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmatch/pkg/ent/dataset"
	"github.com/gnames/gnmatch/pkg/ent/usage"
	"github.com/gnames/gnmatch/pkg/joinindex"
	"github.com/gnames/gnsys"
)

// batchSize is the number of records kept under one key.
const batchSize = 10_000

const (
	mainPrefix = "main/"
	joinPrefix = "join/"
)

// Meta describes a stored index.
type Meta struct {
	// Source is the SFGA archive or the database the index came from.
	Source string

	// Count is the number of stored records.
	Count int

	Created time.Time
}

// Store is a Badger database with index snapshots.
type Store struct {
	dir      string
	inMemory bool
	db       *badger.DB
	enc      gnfmt.GNgob
}

// Option configures a Store.
type Option func(*Store)

// OptInMemory keeps the store in memory only.
func OptInMemory(b bool) Option {
	return func(s *Store) {
		s.inMemory = b
	}
}

// Open opens or creates a store in dir.
func Open(dir string, opts ...Option) (*Store, error) {
	res := &Store{dir: dir}
	for _, opt := range opts {
		opt(res)
	}

	options := badger.DefaultOptions(dir)
	if res.inMemory {
		options = badger.DefaultOptions("").WithInMemory(true)
	} else if err := gnsys.MakeDir(dir); err != nil {
		return nil, StoreOpenError(dir, err)
	}
	options.Logger = nil

	db, err := badger.Open(options)
	if err != nil {
		return nil, StoreOpenError(dir, err)
	}
	res.db = db
	slog.Debug("Store opened", "dir", dir, "in-memory", res.inMemory)
	return res, nil
}

// Close closes the Badger database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SaveUsages replaces the usages of the main index.
func (s *Store) SaveUsages(source string, us []usage.NameUsage) error {
	meta := Meta{Source: source, Count: len(us), Created: time.Now()}
	err := saveBatches(s, mainPrefix, meta, us)
	if err != nil {
		return err
	}
	slog.Info("Stored main index", "source", source, "usages", len(us))
	return nil
}

// Usages loads the usages of the main index. StoreEmptyError means the
// index was never saved.
func (s *Store) Usages() ([]usage.NameUsage, Meta, error) {
	return loadBatches[usage.NameUsage](s, mainPrefix)
}

// MainMeta returns the description of the main index.
func (s *Store) MainMeta() (Meta, error) {
	return s.meta(mainPrefix)
}

type joinMeta struct {
	Meta
	Dataset dataset.Dataset
}

// SaveJoinIndex replaces a join index of a dataset.
func (s *Store) SaveJoinIndex(source string, ji *joinindex.JoinIndex) error {
	docs := ji.Docs()
	prefix := joinKeyPrefix(ji.Dataset().Key)
	jm := joinMeta{
		Meta:    Meta{Source: source, Count: len(docs), Created: time.Now()},
		Dataset: ji.Dataset(),
	}
	if err := saveBatches(s, prefix, jm, docs); err != nil {
		return err
	}
	slog.Info("Stored join index", "dataset", ji.Dataset().Key,
		"docs", len(docs))
	return nil
}

// JoinIndex loads a join index of a dataset.
func (s *Store) JoinIndex(key string) (*joinindex.JoinIndex, Meta, error) {
	prefix := joinKeyPrefix(key)
	docs, _, err := loadBatches[joinindex.Doc](s, prefix)
	if err != nil {
		return nil, Meta{}, err
	}
	var jm joinMeta
	if err = s.get(prefix+"meta", &jm); err != nil {
		return nil, Meta{}, err
	}
	return joinindex.New(jm.Dataset, docs), jm.Meta, nil
}

// JoinKeys returns the keys of datasets with stored join indexes.
func (s *Store) JoinKeys() ([]string, error) {
	var res []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(joinPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			k := string(it.Item().Key())
			key, ok := cutMeta(k)
			if ok {
				res = append(res, key)
			}
		}
		return nil
	})
	if err != nil {
		return nil, StoreReadError(joinPrefix, err)
	}
	return res, nil
}

// DeleteJoinIndex removes a join index of a dataset.
func (s *Store) DeleteJoinIndex(key string) error {
	return s.deletePrefix(joinKeyPrefix(key))
}

func (s *Store) deletePrefix(prefix string) error {
	var keys [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return StoreReadError(prefix, err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, k := range keys {
		if err = wb.Delete(k); err != nil {
			return StoreWriteError(prefix, err)
		}
	}
	if err = wb.Flush(); err != nil {
		return StoreWriteError(prefix, err)
	}
	return nil
}

func joinKeyPrefix(key string) string {
	return joinPrefix + key + "/"
}

// cutMeta extracts the dataset key out of "join/<key>/meta".
func cutMeta(k string) (string, bool) {
	const suffix = "/meta"
	if len(k) <= len(joinPrefix)+len(suffix) ||
		k[len(k)-len(suffix):] != suffix {
		return "", false
	}
	return k[len(joinPrefix) : len(k)-len(suffix)], true
}

func saveBatches[T any](s *Store, prefix string, meta any, items []T) error {
	if err := s.deletePrefix(prefix); err != nil {
		return err
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for i := 0; i*batchSize < len(items); i++ {
		end := min((i+1)*batchSize, len(items))
		val, err := s.enc.Encode(items[i*batchSize : end])
		if err != nil {
			return StoreWriteError(prefix, err)
		}
		key := fmt.Sprintf("%sb/%08d", prefix, i)
		if err = wb.Set([]byte(key), val); err != nil {
			return StoreWriteError(prefix, err)
		}
	}

	// meta goes last, its presence marks a complete snapshot
	val, err := s.enc.Encode(meta)
	if err != nil {
		return StoreWriteError(prefix, err)
	}
	if err = wb.Set([]byte(prefix+"meta"), val); err != nil {
		return StoreWriteError(prefix, err)
	}

	if err = wb.Flush(); err != nil {
		return StoreWriteError(prefix, err)
	}
	return nil
}

func loadBatches[T any](s *Store, prefix string) ([]T, Meta, error) {
	meta, err := s.meta(prefix)
	if err != nil {
		return nil, meta, err
	}

	res := make([]T, 0, meta.Count)
	err = s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		bp := []byte(prefix + "b/")
		for it.Seek(bp); it.ValidForPrefix(bp); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var batch []T
			if err = s.enc.Decode(val, &batch); err != nil {
				return err
			}
			res = append(res, batch...)
		}
		return nil
	})
	if err != nil {
		return nil, meta, StoreReadError(prefix, err)
	}
	return res, meta, nil
}

func (s *Store) meta(prefix string) (Meta, error) {
	var res Meta
	if prefix == mainPrefix {
		err := s.get(prefix+"meta", &res)
		return res, err
	}
	var jm joinMeta
	err := s.get(prefix+"meta", &jm)
	return jm.Meta, err
}

func (s *Store) get(key string, obj any) error {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return StoreEmptyError(key)
	}
	if err != nil {
		return StoreReadError(key, err)
	}
	if err = s.enc.Decode(val, obj); err != nil {
		return StoreReadError(key, err)
	}
	return nil
}
