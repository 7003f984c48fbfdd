package strlit

import (
	"github.com/basm-script/bscp/pkg/script/value"
	"github.com/bluele/gcache"
)

const defaultCacheSize = 512

// Decoder decodes string tokens and keeps the most recently used results,
// so a literal evaluated in a loop or repeated across statements is only
// decoded once.
type Decoder struct {
	cache gcache.Cache
}

// NewDecoder creates a decoder remembering up to size literals. A size of
// zero or less selects the default.
func NewDecoder(size int) *Decoder {
	if size <= 0 {
		size = defaultCacheSize
	}
	return &Decoder{
		cache: gcache.New(size).LRU().LoaderFunc(func(key interface{}) (interface{}, error) {
			return Unquote(key.(string))
		}).Build(),
	}
}

// Bytes returns the decoded bytes of a raw string token, quotes included.
// The returned slice is shared and must not be modified.
func (d *Decoder) Bytes(raw string) ([]byte, error) {
	b, err := d.cache.Get(raw)
	if err != nil {
		return nil, err
	}
	return b.([]byte), nil
}

// Object decodes a raw string token into a new string object owned by
// owner.
func (d *Decoder) Object(owner *value.Value, raw string) (*value.Value, error) {
	b, err := d.Bytes(raw)
	if err != nil {
		return nil, err
	}
	return value.FromBytes(owner, b), nil
}

// Len reports how many literals are cached.
func (d *Decoder) Len() int {
	return d.cache.Len(false)
}
