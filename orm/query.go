package orm

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

// bucketQuery serves key and prefix queries of a single bucket. Returned
// keys do not contain the bucket prefix.
type bucketQuery struct {
	prefix []byte
}

var _ weave.QueryHandler = (*bucketQuery)(nil)

func (q *bucketQuery) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	key := append(append([]byte{}, q.prefix...), data...)
	switch mod {
	case weave.KeyQueryMod:
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []weave.Model{weave.Pair(data, value)}, nil
	case weave.PrefixQueryMod:
		return q.prefixScan(db, key)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %q", mod)
	}
}

func (q *bucketQuery) prefixScan(db weave.ReadOnlyKVStore, prefix []byte) ([]weave.Model, error) {
	it, err := db.Iterator(prefix, weave.PrefixEnd(prefix))
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []weave.Model
	for {
		k, v, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, weave.Pair(k[len(q.prefix):], v))
	}
}
