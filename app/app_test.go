package app

import (
	"context"
	"testing"
	"time"

	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/iov-one/weave-escrow/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

// rawQuery returns the value stored under the queried key.
type rawQuery struct{}

func (rawQuery) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	v, err := db.Get(data)
	if err != nil || v == nil {
		return nil, err
	}
	return []weave.Model{weave.Pair(data, v)}, nil
}

// recordingInit remembers the genesis options it was given.
type recordingInit struct {
	opts weave.Options
}

func (i *recordingInit) FromGenesis(opts weave.Options, db weave.KVStore) error {
	i.opts = opts
	return nil
}

// pathDecoder treats the raw transaction bytes as the message path.
func pathDecoder(raw []byte) (weave.Tx, error) {
	if string(raw) == "panic" {
		panic("cannot decode")
	}
	return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: string(raw)}}, nil
}

func newTestApp(t *testing.T) (BaseApp, *recordingInit, func()) {
	t.Helper()
	db, cleanup := weavetest.CommitKVStore(t)

	r := NewRouter()
	r.Handle("test/write", &weavetest.WriteHandler{Key: []byte("written"), Value: []byte("yes")})
	r.Handle("test/fail", &weavetest.WriteHandler{Key: []byte("failed"), Value: []byte("yes"), Err: errors.ErrState})
	handler := ChainDecorators(
		utils.NewRecovery(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	).WithHandler(r)

	qr := weave.NewQueryRouter()
	qr.Register("/raw", rawQuery{})

	genesis := &recordingInit{}
	store := NewStoreApp("test", db, qr, context.Background()).WithInit(ChainInitializers(genesis))
	return NewBaseApp(store, pathDecoder, handler, false), genesis, cleanup
}

func TestBaseApp(t *testing.T) {
	app, genesis, cleanup := newTestApp(t)
	defer cleanup()

	app.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain",
		AppStateBytes: []byte(`{"ledger": {"native_ticker": "IOV"}}`),
	})
	assert.Equal(t, "test-chain", app.GetChainID())
	require.Contains(t, genesis.opts, "ledger")

	// The chain can be initialized only once.
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "another-chain", AppStateBytes: []byte(`{}`)})
	})

	app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Now()}})

	check := app.CheckTx([]byte("test/write"))
	assert.Equal(t, uint32(0), check.Code, check.Log)

	deliver := app.DeliverTx([]byte("test/write"))
	assert.Equal(t, uint32(0), deliver.Code, deliver.Log)

	failed := app.DeliverTx([]byte("test/fail"))
	assert.Equal(t, errors.ErrState.ABCICode(), failed.Code)

	missing := app.DeliverTx([]byte("test/missing"))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), missing.Code)

	panicked := app.DeliverTx([]byte("panic"))
	assert.Equal(t, errors.ErrPanic.ABCICode(), panicked.Code)

	app.EndBlock(abci.RequestEndBlock{Height: 1})
	commit := app.Commit()
	assert.NotEmpty(t, commit.Data)

	info := app.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)

	q := app.Query(abci.RequestQuery{Path: "/raw", Data: []byte("written")})
	require.Equal(t, uint32(0), q.Code, q.Log)
	assert.Equal(t, int64(1), q.Height)
	var keys, values ResultSet
	require.NoError(t, keys.Unmarshal(q.Key))
	require.NoError(t, values.Unmarshal(q.Value))
	models, err := JoinResults(&keys, &values)
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, []byte("yes"), models[0].Value)

	// The failed transaction must not leave anything behind.
	q = app.Query(abci.RequestQuery{Path: "/raw", Data: []byte("failed")})
	require.Equal(t, uint32(0), q.Code, q.Log)
	require.NoError(t, values.Unmarshal(q.Value))
	assert.Empty(t, values.Results)

	q = app.Query(abci.RequestQuery{Path: "/unknown"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), q.Code)
}

func TestInitChainRequiresAppState(t *testing.T) {
	app, _, cleanup := newTestApp(t)
	defer cleanup()

	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "test-chain"})
	})
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "bad", AppStateBytes: []byte(`{}`)})
	})
}

func TestSplitPath(t *testing.T) {
	cases := map[string]struct {
		path     string
		wantPath string
		wantMod  string
	}{
		"plain":  {path: "/escrows", wantPath: "/escrows"},
		"prefix": {path: "/escrows?prefix", wantPath: "/escrows", wantMod: "prefix"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			path, mod := splitPath(tc.path)
			assert.Equal(t, tc.wantPath, path)
			assert.Equal(t, tc.wantMod, mod)
		})
	}
}
