package store

import "errors"

var (
	NotExist = errors.New("NotExist")
)

type DB interface {
	Sync() error

	Close() error
	// kv
	Del([]byte) error
	Set([]byte, []byte) error
	Get([]byte) ([]byte, error)

	// NewIterator walks the keys with the given prefix, starting at start
	// or the first key after it.
	NewIterator([]byte, []byte) Iterator
}

type Iterator interface {
	Next() bool

	Error() error

	Key() []byte

	Value() []byte

	Release()
}
