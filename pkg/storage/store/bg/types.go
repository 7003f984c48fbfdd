package bg

import (
	"github.com/dgraph-io/badger"
	"go.uber.org/zap"
)

type bgStore struct {
	db *badger.DB
}

type bgIterator struct {
	err     error
	started bool
	tx      *badger.Txn
	itr     *badger.Iterator
	prefix  []byte
}

// badgerLogger routes badger's own messages to zap.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}
