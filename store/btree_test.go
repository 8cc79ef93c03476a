package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value,
// iterating over ranges, and general fuzzing
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// base is the root of our data, we can layer on top and
	// all queries should work
	base := devnull.CacheWrap()

	// make sure the btree is empty at start but returns results
	// that are writen to it
	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil)
	require.NoError(t, base.Set(k, v))
	assertGetHas(t, base, k, v)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assertGetHas(t, cache, k, v)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assertGetHas(t, cache, k2, nil)
	require.NoError(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2)
	assertGetHas(t, base, k2, nil)

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assertGetHas(t, base, k, v)
	assertGetHas(t, base, k2, v2)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	assertGetHas(t, c2, k, v)
	assertGetHas(t, c2, k2, v2)
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()

	// and commit another
	c3 := base.CacheWrap()
	assertGetHas(t, c3, k, v)
	assertGetHas(t, c3, k2, v2)
	require.NoError(t, c3.Delete(k))
	require.NoError(t, c3.Write())

	// make sure it commits proper
	assertGetHas(t, base, k, nil)
	assertGetHas(t, base, k2, v2)
	assertGetHas(t, base, k3, nil)
}

// TestBTreeCacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func TestBTreeCacheConflicts(t *testing.T) {
	devnull := BTreeCacheable{EmptyKVStore{}}

	ks := randKeys(10, 16)
	vs := randKeys(20, 40)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			childOps:      []Op{SetOp(ks[1], vs[11]), SetOp(ks[3], vs[7]), DelOp(ks[2])},
			parentQueries: []Model{{Key: ks[1], Value: vs[1]}, {Key: ks[2], Value: vs[2]}, {Key: ks[3]}},
			childQueries:  []Model{{Key: ks[1], Value: vs[11]}, {Key: ks[2]}, {Key: ks[3], Value: vs[7]}},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent := devnull.CacheWrap()
			for _, op := range tc.parentOps {
				require.NoError(t, op.Apply(parent))
			}

			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				require.NoError(t, op.Apply(child))
			}

			for _, q := range tc.parentQueries {
				assertGetHas(t, parent, q.Key, q.Value)
			}
			for _, q := range tc.childQueries {
				assertGetHas(t, child, q.Key, q.Value)
			}

			// write child to parent and make sure it also shows proper data
			require.NoError(t, child.Write())
			for _, q := range tc.childQueries {
				assertGetHas(t, parent, q.Key, q.Value)
			}
		})
	}
}

// TestSliceIterator makes sure the basic slice iterator works
func TestSliceIterator(t *testing.T) {
	const size = 10

	ks := randKeys(size, 8)
	vs := randKeys(size, 40)

	models := make([]Model, size)
	for i := 0; i < size; i++ {
		models[i].Key = ks[i]
		models[i].Value = vs[i]
	}
	verifyIterator(t, models, NewSliceIterator(models))
}

// TestBTreeCacheBasicIterator makes sure the basic iterator
// works. Includes random deletes, but not nested iterators.
func TestBTreeCacheBasicIterator(t *testing.T) {
	const size = 50
	const deleteCount = 20
	const totalSize = size + deleteCount

	models := make([]Model, totalSize)
	for i := 0; i < totalSize; i++ {
		models[i].Key = randBytes(8)
		models[i].Value = randBytes(40)
	}

	base := BTreeCacheable{EmptyKVStore{}}.CacheWrap()
	for i := 0; i < totalSize; i++ {
		require.NoError(t, base.Set(models[i].Key, models[i].Value))
	}
	for i := 0; i < deleteCount; i++ {
		require.NoError(t, base.Delete(models[i].Key))
	}
	models = models[deleteCount:]
	sortModels(models)

	verifyIterator(t, models, mustIter(base.Iterator(nil, nil)))
	verifyIterator(t, models[10:], mustIter(base.Iterator(models[10].Key, nil)))
	verifyIterator(t, models[:size-8], mustIter(base.Iterator(nil, models[size-8].Key)))
	verifyIterator(t, models[17:28], mustIter(base.Iterator(models[17].Key, models[28].Key)))

	verifyIterator(t, reverse(models), mustIter(base.ReverseIterator(nil, nil)))
	verifyIterator(t, reverse(models[34:]), mustIter(base.ReverseIterator(models[34].Key, nil)))
	verifyIterator(t, reverse(models[:19]), mustIter(base.ReverseIterator(nil, models[19].Key)))
	verifyIterator(t, reverse(models[6:26]), mustIter(base.ReverseIterator(models[6].Key, models[26].Key)))
}

// TestBTreeCacheIterator tests iterating over ranges that
// span both the parent and child caches, combining different
// values, overwrites, and deletes
func TestBTreeCacheIterator(t *testing.T) {
	parent := MemStore()
	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, parent.Set([]byte(k), []byte("parent-"+k)))
	}
	child := parent.CacheWrap()
	require.NoError(t, child.Set([]byte("b"), []byte("child-b")))
	require.NoError(t, child.Delete([]byte("c")))
	require.NoError(t, child.Set([]byte("e"), []byte("child-e")))

	want := []Model{
		{Key: []byte("a"), Value: []byte("parent-a")},
		{Key: []byte("b"), Value: []byte("child-b")},
		{Key: []byte("d"), Value: []byte("parent-d")},
		{Key: []byte("e"), Value: []byte("child-e")},
	}
	verifyIterator(t, want, mustIter(child.Iterator(nil, nil)))
	verifyIterator(t, reverse(want), mustIter(child.ReverseIterator(nil, nil)))
	verifyIterator(t, want[1:3], mustIter(child.Iterator([]byte("b"), []byte("e"))))
}

func assertGetHas(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	has, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, want != nil, has)
}

func mustIter(it Iterator, err error) Iterator {
	if err != nil {
		panic(err)
	}
	return it
}

func verifyIterator(t testing.TB, models []Model, iter Iterator) {
	t.Helper()
	defer iter.Release()
	for i := 0; i < len(models); i++ {
		k, v, err := iter.Next()
		require.NoError(t, err, "%d", i)
		assert.Equal(t, models[i].Key, k, "%d", i)
		assert.Equal(t, models[i].Value, v, "%d", i)
	}
	_, _, err := iter.Next()
	assert.True(t, errors.ErrIteratorDone.Is(err))
}

func sortModels(models []Model) {
	sort.Slice(models, func(i, j int) bool {
		return bytes.Compare(models[i].Key, models[j].Key) < 0
	})
}

// reverse returns a copy of the slice with elements in reverse order
func reverse(models []Model) []Model {
	max := len(models)
	res := make([]Model, max)
	for i := 0; i < max; i++ {
		res[i] = models[max-1-i]
	}
	return res
}

// randKeys returns a slice of count keys, all of length
func randKeys(count, length int) [][]byte {
	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = randBytes(length)
	}
	return res
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	_, _ = rand.Read(res)
	return res
}
