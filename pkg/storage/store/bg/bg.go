// Package bg implements store.DB on top of badger.
package bg

import (
	"errors"

	"github.com/basm-script/bscp/pkg/storage/store"
	"github.com/dgraph-io/badger"
	"go.uber.org/zap"
)

// New opens (or creates) the database in dir.
func New(dir string, log *zap.Logger) (store.DB, error) {
	return open(badger.DefaultOptions(dir), log)
}

func open(opts badger.Options, log *zap.Logger) (store.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := badger.Open(opts.WithLogger(badgerLogger{log.Named("badger").Sugar()}))
	if err != nil {
		return nil, err
	}
	return &bgStore{db: db}, nil
}

func (db *bgStore) Sync() error {
	return db.db.Sync()
}

func (db *bgStore) Close() error {
	return db.db.Close()
}

func (db *bgStore) Del(k []byte) error {
	return db.db.Update(func(tx *badger.Txn) error {
		return tx.Delete(k)
	})
}

func (db *bgStore) Set(k, v []byte) error {
	return db.db.Update(func(tx *badger.Txn) error {
		return tx.Set(k, v)
	})
}

func (db *bgStore) Get(k []byte) ([]byte, error) {
	var v []byte
	err := db.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(k)
		if err != nil {
			return err
		}
		v, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, store.NotExist
	}
	return v, err
}
