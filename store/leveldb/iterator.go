package leveldb

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
)

type levelIter struct {
	it      iterator.Iterator
	reverse bool
	started bool
}

var _ weave.Iterator = (*levelIter)(nil)

func newIterator(db *leveldb.DB, start, end []byte, reverse bool) *levelIter {
	return &levelIter{
		it:      db.NewIterator(rangeOf(start, end), nil),
		reverse: reverse,
	}
}

func (i *levelIter) Next() (key, value []byte, err error) {
	var ok bool
	switch {
	case !i.started && i.reverse:
		ok = i.it.Last()
	case !i.started:
		ok = i.it.First()
	case i.reverse:
		ok = i.it.Prev()
	default:
		ok = i.it.Next()
	}
	i.started = true

	if !ok {
		if err := i.it.Error(); err != nil {
			return nil, nil, errors.Wrapf(errors.ErrDatabase, "iterate: %s", err)
		}
		return nil, nil, errors.ErrIteratorDone
	}

	// Returned slices are only valid until the next move, so copy them and
	// strip the namespace prefix.
	k := i.it.Key()
	key = append([]byte{}, k[len(dataPrefix):]...)
	value = append([]byte{}, i.it.Value()...)
	return key, value, nil
}

func (i *levelIter) Release() {
	i.it.Release()
}
