package bg

import (
	"bytes"

	"github.com/basm-script/bscp/pkg/storage/store"
	"github.com/dgraph-io/badger"
)

func (db *bgStore) NewIterator(prefix []byte, start []byte) store.Iterator {
	opt := badger.DefaultIteratorOptions
	opt.Prefix = prefix
	tx := db.db.NewTransaction(false)
	itr := tx.NewIterator(opt)
	if bytes.Compare(start, prefix) < 0 {
		start = prefix
	}
	itr.Seek(start)
	return &bgIterator{
		tx:     tx,
		itr:    itr,
		prefix: prefix,
	}
}

// Next moves to the next key; the first call positions on the first key.
func (itr *bgIterator) Next() bool {
	if itr.started {
		itr.itr.Next()
	}
	itr.started = true
	return itr.itr.ValidForPrefix(itr.prefix)
}

func (itr *bgIterator) Error() error {
	return itr.err
}

func (itr *bgIterator) Key() []byte {
	return itr.itr.Item().KeyCopy(nil)
}

func (itr *bgIterator) Value() []byte {
	v, err := itr.itr.Item().ValueCopy(nil)
	if err != nil {
		itr.err = err
		return nil
	}
	return v
}

func (itr *bgIterator) Release() {
	itr.itr.Close()
	itr.tx.Discard()
}
