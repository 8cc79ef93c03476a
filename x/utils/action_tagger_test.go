package utils

import (
	"context"
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/store"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionTagger(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/exchange"}}
	tagger := NewActionTagger()

	res, err := tagger.Deliver(ctx, db, tx, &weavetest.Handler{})
	require.NoError(t, err)
	require.Len(t, res.Tags, 1)
	assert.Equal(t, ActionKey, string(res.Tags[0].Key))
	assert.Equal(t, "escrow/exchange", string(res.Tags[0].Value))

	// Failed transactions are not tagged.
	_, err = tagger.Deliver(ctx, db, tx, &weavetest.Handler{DeliverErr: errors.ErrState})
	assert.True(t, errors.ErrState.Is(err))

	// Check is passed through.
	chk, err := tagger.Check(ctx, db, tx, &weavetest.Handler{})
	require.NoError(t, err)
	assert.NotNil(t, chk)
}
