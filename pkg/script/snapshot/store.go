package snapshot

import (
	"github.com/basm-script/bscp/pkg/script/value"
	"github.com/basm-script/bscp/pkg/storage/store"
)

var keyPrefix = []byte("snapshot/")

func key(name string) []byte {
	return append(append([]byte{}, keyPrefix...), name...)
}

// Save stores v under name in canonical CBOR.
func Save(db store.DB, name string, v *value.Value) error {
	data, err := EncodeCBOR(v)
	if err != nil {
		return err
	}
	return db.Set(key(name), data)
}

// Load rebuilds the tree saved under name. A missing name is store.NotExist.
func Load(db store.DB, name string, owner *value.Value) (*value.Value, error) {
	data, err := db.Get(key(name))
	if err != nil {
		return nil, err
	}
	return DecodeCBOR(owner, data)
}

// Restore copies the fields saved under name into obj, replacing fields of
// the same name.
func Restore(db store.DB, name string, obj *value.Value) error {
	v, err := Load(db, name, obj)
	if err != nil {
		return err
	}
	var keys []string
	v.Each(func(key string, f *value.Field) bool {
		keys = append(keys, key)
		return true
	})
	for _, k := range keys {
		f, _ := v.Field(k)
		val := f.Value
		v.Remove(k)
		obj.Put(k, val)
	}
	return nil
}

// List returns the saved names in order.
func List(db store.DB) ([]string, error) {
	itr := db.NewIterator(keyPrefix, nil)
	defer itr.Release()

	var names []string
	for itr.Next() {
		names = append(names, string(itr.Key()[len(keyPrefix):]))
	}
	return names, itr.Error()
}

func Delete(db store.DB, name string) error {
	return db.Del(key(name))
}
