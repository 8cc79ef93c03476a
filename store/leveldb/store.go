/*
Package leveldb provides a persistent weave.CommitKVStore on top of
goleveldb.

All application data is kept under a data prefix. Commit information is
stored next to it, so that a restarted node can continue from the last
committed version and app hash.
*/
package leveldb

import (
	"crypto/sha256"
	"encoding/binary"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	dataPrefix    = []byte{'d'}
	versionKey    = []byte("m:version")
	hashKey       = []byte("m:hash")
	pendingPrefix = []byte("m:pending")
)

// CommitStore is a weave.CommitKVStore backed by a goleveldb database.
//
// Every write batch updates a running digest of all changes. Commit folds
// that digest into the previous app hash, which gives every node that
// processed the same transactions the same hash.
type CommitStore struct {
	db      *leveldb.DB
	version int64
	hash    []byte
	pending []byte
}

var _ weave.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore opens (or creates) a database in the given directory.
func NewCommitStore(dir string) (*CommitStore, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %q: %s", dir, err)
	}
	return newCommitStore(db)
}

// NewMemCommitStore returns a store that keeps all data in memory. It is
// meant for tests.
func NewMemCommitStore() (*CommitStore, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open: %s", err)
	}
	return newCommitStore(db)
}

func newCommitStore(db *leveldb.DB) (*CommitStore, error) {
	s := &CommitStore{db: db}
	if err := s.LoadLatestVersion(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database.
func (s *CommitStore) Close() error {
	return s.db.Close()
}

// Get returns the value at last committed state.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	return s.adapter().Get(key)
}

// CacheWrap returns a cache that writes all changes to the database in a
// single atomic batch.
func (s *CommitStore) CacheWrap() weave.KVCacheWrap {
	a := s.adapter()
	return store.NewBTreeCacheWrap(a, a.NewBatch(), nil)
}

// Commit stores the next version together with the new app hash.
func (s *CommitStore) Commit() (weave.CommitID, error) {
	h := sha256.New()
	_, _ = h.Write(s.hash)
	_, _ = h.Write(s.pending)
	hash := h.Sum(nil)
	version := s.version + 1

	b := new(leveldb.Batch)
	b.Put(versionKey, encodeVersion(version))
	b.Put(hashKey, hash)
	b.Delete(pendingPrefix)
	if err := s.db.Write(b, nil); err != nil {
		return weave.CommitID{}, errors.Wrapf(errors.ErrDatabase, "commit: %s", err)
	}
	s.version = version
	s.hash = hash
	s.pending = nil
	return s.LatestVersion()
}

// LoadLatestVersion reads the last committed version and hash. A fresh
// database starts at version zero with an empty hash.
func (s *CommitStore) LoadLatestVersion() error {
	raw, err := s.db.Get(versionKey, nil)
	switch {
	case err == leveldb.ErrNotFound:
		s.version, s.hash = 0, nil
	case err != nil:
		return errors.Wrapf(errors.ErrDatabase, "load version: %s", err)
	default:
		if len(raw) != 8 {
			return errors.Wrap(errors.ErrDatabase, "corrupted version")
		}
		s.version = int64(binary.BigEndian.Uint64(raw))
		if s.hash, err = s.db.Get(hashKey, nil); err != nil {
			return errors.Wrapf(errors.ErrDatabase, "load hash: %s", err)
		}
	}

	// Changes written after the last commit are not part of any version
	// yet, but their digest must survive a restart.
	switch pending, err := s.db.Get(pendingPrefix, nil); {
	case err == leveldb.ErrNotFound:
		s.pending = nil
	case err != nil:
		return errors.Wrapf(errors.ErrDatabase, "load pending: %s", err)
	default:
		s.pending = pending
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() (weave.CommitID, error) {
	return weave.CommitID{
		Version: s.version,
		Hash:    s.hash,
	}, nil
}

func (s *CommitStore) adapter() *adapter {
	return &adapter{store: s}
}

func encodeVersion(v int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(v))
	return raw
}

func dataKey(key []byte) []byte {
	return append(append([]byte{}, dataPrefix...), key...)
}

// adapter exposes the data namespace of the database as a weave.KVStore.
type adapter struct {
	store *CommitStore
}

var _ weave.KVStore = (*adapter)(nil)

func (a *adapter) Get(key []byte) ([]byte, error) {
	val, err := a.store.db.Get(dataKey(key), nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "get: %s", err)
	}
	return val, nil
}

func (a *adapter) Has(key []byte) (bool, error) {
	ok, err := a.store.db.Has(dataKey(key), nil)
	if err != nil {
		return false, errors.Wrapf(errors.ErrDatabase, "has: %s", err)
	}
	return ok, nil
}

func (a *adapter) Set(key, value []byte) error {
	b := a.NewBatch()
	if err := b.Set(key, value); err != nil {
		return err
	}
	return b.Write()
}

func (a *adapter) Delete(key []byte) error {
	b := a.NewBatch()
	if err := b.Delete(key); err != nil {
		return err
	}
	return b.Write()
}

func (a *adapter) Iterator(start, end []byte) (weave.Iterator, error) {
	return newIterator(a.store.db, start, end, false), nil
}

func (a *adapter) ReverseIterator(start, end []byte) (weave.Iterator, error) {
	return newIterator(a.store.db, start, end, true), nil
}

func (a *adapter) NewBatch() weave.Batch {
	return &batch{store: a.store, b: new(leveldb.Batch)}
}

// batch writes all operations in one atomic leveldb write and updates the
// pending change digest.
type batch struct {
	store *CommitStore
	b     *leveldb.Batch
	ops   []store.Op
}

func (b *batch) Set(key, value []byte) error {
	b.b.Put(dataKey(key), value)
	b.ops = append(b.ops, store.SetOp(key, value))
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(dataKey(key))
	b.ops = append(b.ops, store.DelOp(key))
	return nil
}

func (b *batch) Write() error {
	if len(b.ops) == 0 {
		return nil
	}
	pending := digest(b.store.pending, b.ops)
	b.b.Put(pendingPrefix, pending)
	if err := b.store.db.Write(b.b, nil); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "write batch: %s", err)
	}
	b.store.pending = pending
	b.b.Reset()
	b.ops = nil
	return nil
}

// digest folds the given operations into the previous digest.
func digest(prev []byte, ops []store.Op) []byte {
	h := sha256.New()
	_, _ = h.Write(prev)
	var size [8]byte
	for _, op := range ops {
		if op.IsSetOp() {
			_, _ = h.Write([]byte{1})
		} else {
			_, _ = h.Write([]byte{0})
		}
		binary.BigEndian.PutUint64(size[:], uint64(len(op.Key())))
		_, _ = h.Write(size[:])
		_, _ = h.Write(op.Key())
		binary.BigEndian.PutUint64(size[:], uint64(len(op.Value())))
		_, _ = h.Write(size[:])
		_, _ = h.Write(op.Value())
	}
	return h.Sum(nil)
}

// rangeOf returns the leveldb range of the data namespace for [start, end).
func rangeOf(start, end []byte) *util.Range {
	r := &util.Range{Start: dataKey(start)}
	if end != nil {
		r.Limit = dataKey(end)
	} else {
		r.Limit = weave.PrefixEnd(dataPrefix)
	}
	return r
}
