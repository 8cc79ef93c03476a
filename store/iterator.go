package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/weave-escrow/errors"
)

// cacheIter merges the items cached in a btree with the iterator of the
// store below. Cached values take precedence and cached deletes hide the
// parent entries.
type cacheIter struct {
	items []btree.Item
	idx   int

	parent     Iterator
	parentDone bool
	peeked     bool
	pkey, pval []byte

	ascending bool
}

var _ Iterator = (*cacheIter)(nil)

func newCacheIter(items []btree.Item, parent Iterator, ascending bool) *cacheIter {
	return &cacheIter{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
}

func (i *cacheIter) peekParent() error {
	if i.peeked || i.parentDone {
		return nil
	}
	k, v, err := i.parent.Next()
	switch {
	case err == nil:
		i.pkey, i.pval, i.peeked = k, v, true
	case errors.ErrIteratorDone.Is(err):
		i.parentDone = true
	default:
		return err
	}
	return nil
}

// Next returns the next key/value pair in iteration order.
func (i *cacheIter) Next() (key, value []byte, err error) {
	for {
		if err := i.peekParent(); err != nil {
			return nil, nil, err
		}
		haveCached := i.idx < len(i.items)
		if !haveCached && !i.peeked {
			return nil, nil, errors.ErrIteratorDone
		}

		useCached := haveCached
		if haveCached && i.peeked {
			cmp := bytes.Compare(i.items[i.idx].(keyer).Key(), i.pkey)
			if !i.ascending {
				cmp = -cmp
			}
			switch {
			case cmp > 0:
				useCached = false
			case cmp == 0:
				// Cached entry overrides the parent one.
				i.peeked = false
			}
		}

		if !useCached {
			i.peeked = false
			return i.pkey, i.pval, nil
		}

		item := i.items[i.idx]
		i.idx++
		if s, ok := item.(setItem); ok {
			return s.key, s.value, nil
		}
		// deleted item, skip it
	}
}

// Release releases the parent iterator.
func (i *cacheIter) Release() {
	i.items = nil
	i.parent.Release()
}
