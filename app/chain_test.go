package app

import (
	"context"
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/iov-one/weave-escrow/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	c1 := &weavetest.Decorator{}
	c2 := &weavetest.Decorator{}
	var skipped *weavetest.Decorator
	h := &weavetest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		skipped,
		utils.NewRecovery(),
		c2,
	).WithHandler(h)

	ctx := context.Background()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/chain"}}
	_, err := stack.Check(ctx, nil, tx)
	require.NoError(t, err)
	_, err = stack.Deliver(ctx, nil, tx)
	require.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainRecoversPanic(t *testing.T) {
	outer := &weavetest.Decorator{}
	inner := &weavetest.Decorator{}

	stack := ChainDecorators(
		outer,
		utils.NewRecovery(),
		inner,
	).WithHandler(&weavetest.PanicHandler{Msg: "boom"})

	_, err := stack.Deliver(context.Background(), nil, nil)
	require.Error(t, err)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Equal(t, 1, outer.DeliverCallCount())
	assert.Equal(t, 1, inner.DeliverCallCount())
}

func TestChainStopsOnDecoratorError(t *testing.T) {
	failing := &weavetest.Decorator{CheckErr: errors.ErrUnauthorized}
	h := &weavetest.Handler{}

	stack := ChainDecorators(failing).Chain(&weavetest.Decorator{}).WithHandler(h)
	_, err := stack.Check(context.Background(), nil, nil)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 0, h.CallCount())
}
